// Package scheduler keeps spaced-repetition state for the learner:
// which words are due, what interval each word is on, and the per-interval
// and difficulty statistics that tune the spacing ladder.
package scheduler

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/ellard/glosa/internal/db"
	"github.com/ellard/glosa/internal/models"
)

// Scheduler records review answers and picks words to study.
type Scheduler struct {
	DB *db.DB
}

// Answer records the learner's answer for a word: updates the tuning
// statistics, computes the next interval, and queues a pending review
// with the next sequence number. One transaction.
func (s *Scheduler) Answer(word string, correct bool) (*models.PendingReview, error) {
	return s.AnswerAt(word, correct, time.Now().UTC())
}

// AnswerAt is Answer with an explicit clock.
func (s *Scheduler) AnswerAt(word string, correct bool, now time.Time) (*models.PendingReview, error) {
	var pr models.PendingReview
	err := s.DB.WithTx(func(tx *sql.Tx) error {
		prev, err := db.MostRecentReview(tx, word)
		if err != nil {
			return err
		}

		// Crammed reviews (answered before the word was due) don't count
		// toward tuning.
		if prev == nil || !now.Before(prev.Due()) {
			if err := updateStats(tx, prev, correct); err != nil {
				return err
			}
		}

		interval, err := nextIntervalFor(tx, prev, correct)
		if err != nil {
			return err
		}

		learned := now
		if prev != nil {
			learned = prev.Learned
		}

		seq, err := db.NextSequenceNumber(tx)
		if err != nil {
			return err
		}

		pr = models.PendingReview{
			Review: models.Review{
				Word:     word,
				Learned:  learned,
				Reviewed: now,
				Interval: interval,
			},
			SequenceNumber: seq,
		}
		if err := db.EnqueueReview(tx, pr); err != nil {
			return err
		}

		return autoTune(tx)
	})
	if err != nil {
		return nil, fmt.Errorf("record answer for %q: %w", word, err)
	}
	return &pr, nil
}

// Due returns up to n words due for review, soonest first.
func (s *Scheduler) Due(n int) ([]string, error) {
	return db.DueWords(s.DB.Conn(), time.Now().UTC(), n)
}

// NewWords picks up to n unlearned words near the learner's current
// difficulty.
func (s *Scheduler) NewWords(n int) ([]models.Word, error) {
	class, err := PreferredClass(s.DB.Conn())
	if err != nil {
		return nil, err
	}
	return db.NewWords(s.DB.Conn(), n, class)
}

// PreferredClass returns the learner's current difficulty estimate.
func PreferredClass(q db.Querier) (int, error) {
	var class int
	err := q.QueryRow(`SELECT frequency_class FROM difficulty_stats WHERE id = 1`).Scan(&class)
	if err != nil {
		return 0, fmt.Errorf("read difficulty: %w", err)
	}
	return class, nil
}

// nextIntervalFor computes the interval (hours) for the next review.
// A wrong answer resets the word; a correct one advances it up the
// ladder.
func nextIntervalFor(q db.Querier, prev *models.Review, correct bool) (float64, error) {
	if !correct {
		return 0, nil
	}
	current := 0.0
	if prev != nil {
		current = prev.Interval
	}
	return nextInterval(q, current)
}

// updateStats bumps the answer counters for the interval the word was on
// and for the learner's difficulty estimate.
func updateStats(q db.Querier, prev *models.Review, correct bool) error {
	interval := 0.0
	if prev != nil {
		interval = prev.Interval
	}

	column := "correct"
	if !correct {
		column = "incorrect"
	}

	query := fmt.Sprintf(`UPDATE interval_stats SET %s = %s + 1 WHERE interval_hours = ?`, column, column)
	if _, err := q.Exec(query, interval); err != nil {
		return fmt.Errorf("update interval stats: %w", err)
	}

	query = fmt.Sprintf(`UPDATE difficulty_stats SET %s = %s + 1 WHERE id = 1`, column, column)
	if _, err := q.Exec(query); err != nil {
		return fmt.Errorf("update difficulty stats: %w", err)
	}
	return nil
}
