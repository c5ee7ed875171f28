package db

import (
	"fmt"

	"github.com/ellard/glosa/internal/models"
)

// NextSequenceNumber returns the sequence number for the next pending
// review: one past the largest number ever used, whether still queued
// or already acknowledged.
func NextSequenceNumber(q Querier) (int64, error) {
	watermark, err := Watermark(q)
	if err != nil {
		return 0, err
	}

	var queued int64
	err = q.QueryRow(`SELECT coalesce(max(sequence_number), 0) FROM pending_reviews`).Scan(&queued)
	if err != nil {
		return 0, fmt.Errorf("max pending sequence: %w", err)
	}

	next := watermark + 1
	if queued >= next {
		next = queued + 1
	}
	return next, nil
}

// EnqueueReview appends a review to the outbox.
func EnqueueReview(q Querier, pr models.PendingReview) error {
	_, err := q.Exec(`
		INSERT INTO pending_reviews (sequence_number, word, learned, reviewed, interval_hours, due)
		VALUES (?, ?, ?, ?, ?, ?)`,
		pr.SequenceNumber, pr.Word, FormatTime(pr.Learned), FormatTime(pr.Reviewed),
		pr.Interval, FormatTime(pr.Due()))
	if err != nil {
		return fmt.Errorf("enqueue review seq=%d: %w", pr.SequenceNumber, err)
	}
	return nil
}

// PendingReviews returns outbox entries with sequence numbers above the
// watermark, in ascending order. Entries at or below the watermark were
// already acknowledged and are never resubmitted.
func PendingReviews(q Querier) ([]models.PendingReview, error) {
	watermark, err := Watermark(q)
	if err != nil {
		return nil, err
	}

	rows, err := q.Query(`
		SELECT sequence_number, word, learned, reviewed, interval_hours
		FROM pending_reviews
		WHERE sequence_number > ?
		ORDER BY sequence_number ASC`, watermark)
	if err != nil {
		return nil, fmt.Errorf("query pending reviews: %w", err)
	}
	defer rows.Close()

	var pending []models.PendingReview
	for rows.Next() {
		var pr models.PendingReview
		var learned, reviewed string
		if err := rows.Scan(&pr.SequenceNumber, &pr.Word, &learned, &reviewed, &pr.Interval); err != nil {
			return nil, fmt.Errorf("scan pending review: %w", err)
		}
		if pr.Learned, err = ParseTime(learned); err != nil {
			return nil, err
		}
		if pr.Reviewed, err = ParseTime(reviewed); err != nil {
			return nil, err
		}
		pending = append(pending, pr)
	}
	return pending, rows.Err()
}

// PruneOutbox removes acknowledged entries (sequence number at or below
// upTo) from the outbox.
func PruneOutbox(q Querier, upTo int64) error {
	if _, err := q.Exec(`DELETE FROM pending_reviews WHERE sequence_number <= ?`, upTo); err != nil {
		return fmt.Errorf("prune outbox: %w", err)
	}
	return nil
}
