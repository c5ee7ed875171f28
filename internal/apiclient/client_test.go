package apiclient

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFetchWordListSendsConditionalRequest(t *testing.T) {
	var gotEtag, gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotEtag = r.Header.Get("If-None-Match")
		gotAuth = r.Header.Get("Authorization")
		if gotEtag == `"v1"` {
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.Header().Set("ETag", `"v2"`)
		w.Write([]byte("casa,120\n"))
	}))
	defer server.Close()

	c := New(server.URL, "secret")

	_, err := c.FetchWordList("eng", "spa", `"v1"`)
	if !errors.Is(err, ErrNotModified) {
		t.Errorf("matching token: got %v, want ErrNotModified", err)
	}
	if gotAuth != "Bearer secret" {
		t.Errorf("auth header: got %q", gotAuth)
	}

	wl, err := c.FetchWordList("eng", "spa", "")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	defer wl.Body.Close()

	if wl.ETag != `"v2"` {
		t.Errorf("etag: got %q, want %q", wl.ETag, `"v2"`)
	}
	body, err := io.ReadAll(wl.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if string(body) != "casa,120\n" {
		t.Errorf("body: got %q", body)
	}
}

func TestFetchWordListPath(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write(nil)
	}))
	defer server.Close()

	c := New(server.URL, "")
	wl, err := c.FetchWordList("eng", "spa", "")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	wl.Body.Close()

	if gotPath != "/api/wordlist/eng/spa.csv" {
		t.Errorf("path: got %q", gotPath)
	}
}

func TestSyncReviewsRequest(t *testing.T) {
	var gotPath, gotMethod, gotCSRF, gotContentType string
	var gotReq SyncRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		gotCSRF = r.Header.Get("X-CSRF-Token")
		gotContentType = r.Header.Get("Content-Type")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}

		stats := `{"frequencyClass":2,"correct":0,"incorrect":0}`
		json.NewEncoder(w).Encode(SyncResponse{DifficultyStats: &stats})
	}))
	defer server.Close()

	c := New(server.URL, "secret")
	c.CSRFToken = "csrf-token"

	req := &SyncRequest{
		Latest: 5,
		Reviews: []SyncReview{
			{Word: "casa", Learned: "2026-03-01 12:00:00", Reviewed: "2026-03-02 12:00:00", Interval: 24, SequenceNumber: 6},
		},
		DifficultyStats: "{}",
		IntervalStats:   "[]",
	}
	resp, err := c.SyncReviews("eng", "spa", req)
	if err != nil {
		t.Fatalf("sync: %v", err)
	}

	if gotPath != "/api/sync/eng/spa" {
		t.Errorf("path: got %q", gotPath)
	}
	if gotMethod != "POST" {
		t.Errorf("method: got %q", gotMethod)
	}
	if gotCSRF != "csrf-token" {
		t.Errorf("csrf header: got %q", gotCSRF)
	}
	if gotContentType != "application/json" {
		t.Errorf("content type: got %q", gotContentType)
	}
	if gotReq.Latest != 5 || len(gotReq.Reviews) != 1 || gotReq.Reviews[0].SequenceNumber != 6 {
		t.Errorf("request body: got %+v", gotReq)
	}

	if resp.DifficultyStats == nil {
		t.Fatal("difficulty stats should be present")
	}
	if resp.IntervalStats != nil {
		t.Error("interval stats should be absent")
	}
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		status int
		body   string
		want   error
	}{
		{http.StatusUnauthorized, `{"code":"unauthorized","message":"bad token"}`, ErrUnauthorized},
		{http.StatusUnauthorized, "", ErrUnauthorized},
		{http.StatusForbidden, `{"code":"forbidden","message":"csrf"}`, ErrForbidden},
		{http.StatusNotFound, "", ErrNotFound},
	}

	for _, tt := range tests {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
			w.Write([]byte(tt.body))
		}))

		c := New(server.URL, "secret")
		_, err := c.Courses()
		if !errors.Is(err, tt.want) {
			t.Errorf("status %d: got %v, want %v", tt.status, err, tt.want)
		}
		server.Close()
	}
}

func TestCourses(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/courses" {
			t.Errorf("path: got %q", r.URL.Path)
		}
		w.Write([]byte(`{"courses":[{"l1":{"code":"eng","name":"English"},"l2":{"code":"spa","name":"Spanish"}}]}`))
	}))
	defer server.Close()

	courses, err := New(server.URL, "").Courses()
	if err != nil {
		t.Fatalf("courses: %v", err)
	}
	if len(courses) != 1 || courses[0].L2.Code != "spa" {
		t.Errorf("courses: got %+v", courses)
	}
}

func TestVocabularyQueryParams(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"words":[{"word":"casa","strength":0.9}]}`))
	}))
	defer server.Close()

	words, err := New(server.URL, "").Vocabulary("eng", "spa", VocabularyOptions{Limit: 10, SortBy: "due", After: "casa"})
	if err != nil {
		t.Fatalf("vocabulary: %v", err)
	}
	if len(words) != 1 || words[0].Word != "casa" {
		t.Errorf("words: got %+v", words)
	}
	if gotQuery != "after=casa&limit=10&sortBy=due" {
		t.Errorf("query: got %q", gotQuery)
	}
}

func TestLanguages(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/languages" {
			t.Errorf("path: got %q", r.URL.Path)
		}
		w.Write([]byte(`{"languages":[{"code":"spa","name":"Spanish","bcp47":"es"}]}`))
	}))
	defer server.Close()

	langs, err := New(server.URL, "").Languages()
	if err != nil {
		t.Fatalf("languages: %v", err)
	}
	if len(langs) != 1 || langs[0].BCP47 != "es" {
		t.Errorf("languages: got %+v", langs)
	}
}

func TestSentences(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"sentences":[{"id":7,"text":"la casa es grande"}]}`))
	}))
	defer server.Close()

	sentences, err := New(server.URL, "").Sentences("eng", "spa", 1)
	if err != nil {
		t.Fatalf("sentences: %v", err)
	}
	if len(sentences) != 1 || sentences[0].ID != 7 {
		t.Errorf("sentences: got %+v", sentences)
	}
	if gotQuery != "l1=eng&l2=spa&limit=1" {
		t.Errorf("query: got %q", gotQuery)
	}
}

func TestHealthCheck(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/healthz" {
			t.Errorf("path: got %q", r.URL.Path)
		}
		w.Write([]byte(`{"status":"ok"}`))
	}))
	defer server.Close()

	resp, err := New(server.URL, "").HealthCheck()
	if err != nil {
		t.Fatalf("health: %v", err)
	}
	if resp.Status != "ok" {
		t.Errorf("status: got %q", resp.Status)
	}
}
