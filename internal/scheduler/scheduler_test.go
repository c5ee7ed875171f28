package scheduler

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/ellard/glosa/internal/db"
	"github.com/ellard/glosa/internal/models"
)

func setupScheduler(t *testing.T) (*Scheduler, *db.DB) {
	t.Helper()
	d, err := db.Open(filepath.Join(t.TempDir(), "course.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { d.Close() })
	return &Scheduler{DB: d}, d
}

func TestAnswerFirstCorrect(t *testing.T) {
	s, d := setupScheduler(t)
	now := time.Now().UTC()

	pr, err := s.AnswerAt("casa", true, now)
	if err != nil {
		t.Fatalf("answer: %v", err)
	}

	if pr.SequenceNumber != 1 {
		t.Errorf("sequence: got %d, want 1", pr.SequenceNumber)
	}
	// A new word answered correctly moves from 0 to the first rung.
	if pr.Interval != 24 {
		t.Errorf("interval: got %v, want 24", pr.Interval)
	}
	if !pr.Learned.Equal(now) || !pr.Reviewed.Equal(now) {
		t.Error("first review should set learned and reviewed to now")
	}

	pending, err := db.PendingReviews(d.Conn())
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("outbox: got %d entries, want 1", len(pending))
	}
}

func TestAnswerLadderGrowth(t *testing.T) {
	s, _ := setupScheduler(t)
	t0 := time.Now().UTC().Add(-100 * time.Hour)

	pr, err := s.AnswerAt("casa", true, t0)
	if err != nil {
		t.Fatalf("first answer: %v", err)
	}
	if pr.Interval != 24 {
		t.Fatalf("first interval: got %v, want 24", pr.Interval)
	}

	// Answer again after the word falls due: next rung, doubling.
	pr, err = s.AnswerAt("casa", true, t0.Add(25*time.Hour))
	if err != nil {
		t.Fatalf("second answer: %v", err)
	}
	if pr.Interval != 48 {
		t.Errorf("second interval: got %v, want 48", pr.Interval)
	}

	pr, err = s.AnswerAt("casa", true, t0.Add(80*time.Hour))
	if err != nil {
		t.Fatalf("third answer: %v", err)
	}
	if pr.Interval != 96 {
		t.Errorf("third interval: got %v, want 96", pr.Interval)
	}
}

func TestAnswerIncorrectResets(t *testing.T) {
	s, _ := setupScheduler(t)
	t0 := time.Now().UTC().Add(-100 * time.Hour)

	if _, err := s.AnswerAt("casa", true, t0); err != nil {
		t.Fatalf("first answer: %v", err)
	}
	pr, err := s.AnswerAt("casa", false, t0.Add(25*time.Hour))
	if err != nil {
		t.Fatalf("second answer: %v", err)
	}
	if pr.Interval != 0 {
		t.Errorf("interval after wrong answer: got %v, want 0", pr.Interval)
	}
}

func TestAnswerKeepsLearnedDate(t *testing.T) {
	s, _ := setupScheduler(t)
	t0 := time.Now().UTC().Add(-100 * time.Hour)

	if _, err := s.AnswerAt("casa", true, t0); err != nil {
		t.Fatalf("first answer: %v", err)
	}
	pr, err := s.AnswerAt("casa", true, t0.Add(25*time.Hour))
	if err != nil {
		t.Fatalf("second answer: %v", err)
	}
	if !pr.Learned.Equal(t0) {
		t.Errorf("learned: got %v, want %v", pr.Learned, t0)
	}
}

func TestAnswerSequenceStrictlyIncreases(t *testing.T) {
	s, d := setupScheduler(t)
	now := time.Now().UTC()

	var last int64
	for i, word := range []string{"casa", "cane", "pane"} {
		pr, err := s.AnswerAt(word, true, now.Add(time.Duration(i)*time.Minute))
		if err != nil {
			t.Fatalf("answer %q: %v", word, err)
		}
		if pr.SequenceNumber <= last {
			t.Errorf("sequence not increasing: %d after %d", pr.SequenceNumber, last)
		}
		last = pr.SequenceNumber
	}

	// Sequence numbers continue past the watermark, never reusing
	// acknowledged numbers.
	if err := db.SetWatermark(d.Conn(), 10); err != nil {
		t.Fatalf("set watermark: %v", err)
	}
	pr, err := s.AnswerAt("perro", true, now)
	if err != nil {
		t.Fatalf("answer after watermark: %v", err)
	}
	if pr.SequenceNumber != 11 {
		t.Errorf("sequence after watermark 10: got %d, want 11", pr.SequenceNumber)
	}
}

func TestCrammedAnswerSkipsStats(t *testing.T) {
	s, d := setupScheduler(t)
	t0 := time.Now().UTC()

	if _, err := s.AnswerAt("casa", true, t0); err != nil {
		t.Fatalf("first answer: %v", err)
	}
	// Reviewed again long before due: a cram, not evidence about the
	// interval.
	if _, err := s.AnswerAt("casa", true, t0.Add(time.Minute)); err != nil {
		t.Fatalf("crammed answer: %v", err)
	}

	var correct int
	err := d.Conn().QueryRow(`SELECT correct FROM interval_stats WHERE interval_hours = 24`).Scan(&correct)
	if err != nil {
		t.Fatalf("read interval stats: %v", err)
	}
	if correct != 0 {
		t.Errorf("crammed answer counted toward interval stats: got %d, want 0", correct)
	}

	err = d.Conn().QueryRow(`SELECT correct FROM difficulty_stats WHERE id = 1`).Scan(&correct)
	if err != nil {
		t.Fatalf("read difficulty stats: %v", err)
	}
	if correct != 1 {
		t.Errorf("difficulty correct: got %d, want 1 (first answer only)", correct)
	}
}

func TestDueWords(t *testing.T) {
	s, _ := setupScheduler(t)
	now := time.Now().UTC()

	// Wrong answer an hour ago: due immediately.
	if _, err := s.AnswerAt("casa", false, now.Add(-time.Hour)); err != nil {
		t.Fatalf("answer: %v", err)
	}
	// Correct answer: due in 24 hours.
	if _, err := s.AnswerAt("cane", true, now.Add(-time.Hour)); err != nil {
		t.Fatalf("answer: %v", err)
	}

	due, err := s.Due(10)
	if err != nil {
		t.Fatalf("due: %v", err)
	}
	if len(due) != 1 || due[0] != "casa" {
		t.Errorf("due: got %v, want [casa]", due)
	}
}

func TestNewWordsPrefersDifficulty(t *testing.T) {
	s, d := setupScheduler(t)

	words := []models.Word{
		{Word: "uno", FrequencyClass: 1},
		{Word: "dos", FrequencyClass: 2},
		{Word: "tres", FrequencyClass: 3},
		{Word: "cuatro", FrequencyClass: 4},
	}
	for _, w := range words {
		if err := db.PutWord(d.Conn(), db.PartitionUnseen, w); err != nil {
			t.Fatalf("put word: %v", err)
		}
	}
	if _, err := d.Conn().Exec(`UPDATE difficulty_stats SET frequency_class = 3 WHERE id = 1`); err != nil {
		t.Fatalf("set difficulty: %v", err)
	}

	got, err := s.NewWords(3)
	if err != nil {
		t.Fatalf("new words: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("new words: got %d, want 3", len(got))
	}
	// At-or-above the preferred class first, then backfill from easier
	// words.
	if got[0].Word != "tres" || got[1].Word != "cuatro" || got[2].Word != "dos" {
		t.Errorf("new words order: got %v", got)
	}
}
