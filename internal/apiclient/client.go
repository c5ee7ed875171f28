// Package apiclient is an HTTP client for the vocabulary server.
package apiclient

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// Sentinel errors for common HTTP error classes.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")

	// ErrNotModified reports that a conditional fetch matched the
	// caller's freshness token and no payload was returned.
	ErrNotModified = errors.New("not modified")
)

// Client is an HTTP client for the vocabulary server.
type Client struct {
	BaseURL   string
	Token     string
	CSRFToken string
	HTTP      *http.Client
}

// New creates a new client.
func New(baseURL, token string) *Client {
	return &Client{
		BaseURL: baseURL,
		Token:   token,
		HTTP:    &http.Client{Timeout: 30 * time.Second},
	}
}

// --- Wire types ---

// SyncReview is a review event on the wire. Timestamps are RFC 3339
// strings; Interval is in hours.
type SyncReview struct {
	Word           string  `json:"word"`
	Learned        string  `json:"learned"`
	Reviewed       string  `json:"reviewed"`
	Interval       float64 `json:"interval"`
	SequenceNumber int64   `json:"sequenceNumber"`
}

// SyncRequest is the body for POST /api/sync/{l1}/{l2}.
// Latest is the largest sequence number the client believes the server
// has acknowledged. The stats fields are opaque serialized tables passed
// through verbatim.
type SyncRequest struct {
	Latest          int64        `json:"latest"`
	Reviews         []SyncReview `json:"reviews"`
	DifficultyStats string       `json:"difficultyStats"`
	IntervalStats   string       `json:"intervalStats"`
}

// SyncResponse is the server's reply. All fields optional; absent means
// "nothing new".
type SyncResponse struct {
	Reviews         []SyncReview `json:"reviews,omitempty"`
	DifficultyStats *string      `json:"difficultyStats,omitempty"`
	IntervalStats   *string      `json:"intervalStats,omitempty"`
}

// WordList is a streamed word-list payload. Callers must close Body.
type WordList struct {
	Body io.ReadCloser
	ETag string
}

// HealthResponse is the response from GET /healthz.
type HealthResponse struct {
	Status string `json:"status"`
}

// --- Word list ---

// FetchWordList requests the course word list, conditional on the given
// freshness token. Returns ErrNotModified when the server's copy matches
// the token. The returned body streams the raw CSV payload.
func (c *Client) FetchWordList(l1, l2, etag string) (*WordList, error) {
	path := fmt.Sprintf("/api/wordlist/%s/%s.csv", url.PathEscape(l1), url.PathEscape(l2))
	req, err := http.NewRequest("GET", c.BaseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	if etag != "" {
		req.Header.Set("If-None-Match", etag)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return &WordList{Body: resp.Body, ETag: resp.Header.Get("ETag")}, nil
	case http.StatusNotModified:
		resp.Body.Close()
		return nil, ErrNotModified
	case http.StatusUnauthorized:
		resp.Body.Close()
		return nil, ErrUnauthorized
	case http.StatusNotFound:
		resp.Body.Close()
		return nil, ErrNotFound
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		resp.Body.Close()
		return nil, fmt.Errorf("word list: HTTP %d: %s", resp.StatusCode, string(body))
	}
}

// --- Sync ---

// SyncReviews submits pending reviews and stats to the server.
func (c *Client) SyncReviews(l1, l2 string, req *SyncRequest) (*SyncResponse, error) {
	var resp SyncResponse
	path := fmt.Sprintf("/api/sync/%s/%s", url.PathEscape(l1), url.PathEscape(l2))
	if err := c.do("POST", path, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// --- Catalog and progress endpoints ---

type coursesSchema struct {
	Courses []Course `json:"courses"`
}

// Course pairs two languages, as reported by /api/courses.
type Course struct {
	L1 Language `json:"l1"`
	L2 Language `json:"l2"`
}

// Language is a supported language.
type Language struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	BCP47 string `json:"bcp47"`
}

// Courses lists the courses the server offers.
func (c *Client) Courses() ([]Course, error) {
	var resp coursesSchema
	if err := c.do("GET", "/api/courses", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Courses, nil
}

type languagesSchema struct {
	Languages []Language `json:"languages"`
}

// Languages lists the supported learner languages.
func (c *Client) Languages() ([]Language, error) {
	var resp languagesSchema
	if err := c.do("GET", "/api/languages", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Languages, nil
}

// VocabWord is a vocabulary entry from /vocab.
type VocabWord struct {
	Word     string  `json:"word"`
	Learned  string  `json:"learned"`
	Reviewed string  `json:"reviewed"`
	Due      string  `json:"due"`
	Strength float64 `json:"strength"`
}

type vocabularySchema struct {
	Words []VocabWord `json:"words"`
}

// VocabularyOptions controls a Vocabulary query. Zero values fall back
// to the server defaults (limit 50, sorted by word).
type VocabularyOptions struct {
	Limit  int
	After  string
	SortBy string // "word", "reviewed", "due", or "strength"
}

// Vocabulary fetches the learner's vocabulary for a course.
func (c *Client) Vocabulary(l1, l2 string, opts VocabularyOptions) ([]VocabWord, error) {
	if opts.Limit <= 0 {
		opts.Limit = 50
	}
	if opts.SortBy == "" {
		opts.SortBy = "word"
	}

	params := url.Values{}
	params.Set("limit", strconv.Itoa(opts.Limit))
	params.Set("sortBy", opts.SortBy)
	if opts.After != "" {
		params.Set("after", opts.After)
	}

	var resp vocabularySchema
	path := fmt.Sprintf("/%s/%s/vocab?%s", url.PathEscape(l1), url.PathEscape(l2), params.Encode())
	if err := c.do("GET", path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Words, nil
}

// Activity is one day of review outcomes.
type Activity struct {
	Forgotten    int `json:"forgotten"`
	Unimproved   int `json:"unimproved"`
	Crammed      int `json:"crammed"`
	Learned      int `json:"learned"`
	Strengthened int `json:"strengthened"`
}

// ActivityHistory is the learner's review activity over the past year,
// plus aggregates for anything older.
type ActivityHistory struct {
	Activities []Activity `json:"activities"`
	Aggregates Activity   `json:"aggregates"`
}

// ActivityHistory fetches the learner's activity history for a course.
func (c *Client) ActivityHistory(l1, l2 string) (*ActivityHistory, error) {
	var resp ActivityHistory
	path := fmt.Sprintf("/%s/%s/activity", url.PathEscape(l1), url.PathEscape(l2))
	if err := c.do("GET", path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Sentence is a random example sentence.
type Sentence struct {
	ID        int64  `json:"id"`
	TatoebaID *int64 `json:"tatoebaID,omitempty"`
	Text      string `json:"text"`
}

type sentencesSchema struct {
	Sentences []Sentence `json:"sentences"`
}

// Sentences fetches random example sentences for a course.
func (c *Client) Sentences(l1, l2 string, limit int) ([]Sentence, error) {
	if limit <= 0 {
		limit = 1
	}
	params := url.Values{}
	params.Set("l1", l1)
	params.Set("l2", l2)
	params.Set("limit", strconv.Itoa(limit))

	var resp sentencesSchema
	if err := c.do("GET", "/api/sentences?"+params.Encode(), nil, &resp); err != nil {
		return nil, err
	}
	return resp.Sentences, nil
}

// HealthCheck hits the /healthz endpoint to verify server reachability.
func (c *Client) HealthCheck() (*HealthResponse, error) {
	var resp HealthResponse
	if err := c.do("GET", "/healthz", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// --- HTTP helpers ---

// apiError is the standard error body from the server.
type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *apiError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Code
}

// do executes a JSON request against the server.
func (c *Client) do(method, path string, body, result any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, c.BaseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	if c.CSRFToken != "" && method != "GET" {
		req.Header.Set("X-CSRF-Token", c.CSRFToken)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var apiErr apiError
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Code != "" {
			switch resp.StatusCode {
			case http.StatusUnauthorized:
				return fmt.Errorf("%w: %s", ErrUnauthorized, apiErr.Message)
			case http.StatusForbidden:
				return fmt.Errorf("%w: %s", ErrForbidden, apiErr.Message)
			case http.StatusNotFound:
				return fmt.Errorf("%w: %s", ErrNotFound, apiErr.Message)
			default:
				return &apiErr
			}
		}
		switch resp.StatusCode {
		case http.StatusUnauthorized:
			return ErrUnauthorized
		case http.StatusForbidden:
			return ErrForbidden
		case http.StatusNotFound:
			return ErrNotFound
		}
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(respBody))
	}

	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("unmarshal response: %w", err)
		}
	}

	return nil
}
