package db

import (
	"fmt"
	"time"

	"github.com/ellard/glosa/internal/models"
)

// IsReviewed reports whether the word appears in the acknowledged-review
// log. This is the membership test the word-list classifier uses.
func IsReviewed(q Querier, word string) (bool, error) {
	var one int
	err := q.QueryRow(`SELECT 1 FROM reviewed_words WHERE word = ?`, word).Scan(&one)
	if err != nil {
		if isNoRows(err) {
			return false, nil
		}
		return false, fmt.Errorf("reviewed lookup %q: %w", word, err)
	}
	return true, nil
}

// UpsertReview writes an acknowledged review into the log, replacing any
// existing row for the same word (last write wins).
func UpsertReview(q Querier, r models.Review) error {
	_, err := q.Exec(`
		INSERT INTO reviewed_words (word, learned, reviewed, interval_hours, due)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (word) DO UPDATE SET
			learned = excluded.learned,
			reviewed = excluded.reviewed,
			interval_hours = excluded.interval_hours,
			due = excluded.due`,
		r.Word, FormatTime(r.Learned), FormatTime(r.Reviewed), r.Interval, FormatTime(r.Due()))
	if err != nil {
		return fmt.Errorf("upsert review %q: %w", r.Word, err)
	}
	return nil
}

// GetReview returns the acknowledged review for a word, or nil.
func GetReview(q Querier, word string) (*models.Review, error) {
	row := q.QueryRow(`SELECT word, learned, reviewed, interval_hours FROM reviewed_words WHERE word = ?`, word)
	r, err := scanReview(row)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get review %q: %w", word, err)
	}
	return r, nil
}

// MostRecentReview returns the latest review state for a word, pending
// or acknowledged. A pending review always postdates the acknowledged
// one for the same word, so the outbox is consulted first.
func MostRecentReview(q Querier, word string) (*models.Review, error) {
	row := q.QueryRow(`
		SELECT word, learned, reviewed, interval_hours FROM pending_reviews
		WHERE word = ? ORDER BY sequence_number DESC LIMIT 1`, word)
	r, err := scanReview(row)
	if err == nil {
		return r, nil
	}
	if !isNoRows(err) {
		return nil, fmt.Errorf("pending lookup %q: %w", word, err)
	}
	return GetReview(q, word)
}

// DueWords returns up to n words due for review at the given time,
// soonest first. Words with a newer pending review are only due if the
// pending review itself is due.
func DueWords(q Querier, now time.Time, n int) ([]string, error) {
	rows, err := q.Query(`
		SELECT word, max(due) AS latest FROM (
			SELECT word, due FROM reviewed_words
			UNION ALL
			SELECT word, due FROM pending_reviews
		)
		GROUP BY word
		HAVING latest < ?
		ORDER BY latest ASC
		LIMIT ?`,
		FormatTime(now), n)
	if err != nil {
		return nil, fmt.Errorf("query due words: %w", err)
	}
	defer rows.Close()

	var words []string
	for rows.Next() {
		var word, due string
		if err := rows.Scan(&word, &due); err != nil {
			return nil, fmt.Errorf("scan due word: %w", err)
		}
		words = append(words, word)
	}
	return words, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReview(row rowScanner) (*models.Review, error) {
	var r models.Review
	var learned, reviewed string
	if err := row.Scan(&r.Word, &learned, &reviewed, &r.Interval); err != nil {
		return nil, err
	}

	var err error
	if r.Learned, err = ParseTime(learned); err != nil {
		return nil, err
	}
	if r.Reviewed, err = ParseTime(reviewed); err != nil {
		return nil, err
	}
	return &r, nil
}
