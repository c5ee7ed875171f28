// Package reviewsync reconciles locally recorded reviews with the
// server. Reviews queue in a local outbox with per-device sequence
// numbers; the watermark tracks the largest number the server has
// acknowledged and only ever moves forward.
package reviewsync

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/ellard/glosa/internal/apiclient"
	"github.com/ellard/glosa/internal/db"
	"github.com/ellard/glosa/internal/models"
	"github.com/ellard/glosa/internal/scheduler"
)

// Engine submits pending reviews and applies the server's response.
type Engine struct {
	DB     *db.DB
	Client *apiclient.Client
	L1     string
	L2     string
}

// Outcome summarises a completed sync.
type Outcome struct {
	Submitted     int   // pending reviews included in the request
	Watermark     int64 // watermark after the sync
	MergedReviews int   // reviews the server knew about that we didn't
	StatsReplaced bool  // server sent corrected stats blobs
}

// Sync submits everything in the outbox along with the current stats
// blobs, then reconciles the response: server-side reviews are merged
// into the acknowledged log (last write wins), server stats replace the
// local ones outright, the watermark advances to the largest submitted
// sequence number, and acknowledged outbox entries are pruned.
//
// A transport failure leaves the outbox and watermark untouched, so the
// call is retryable as-is: the server treats sequence numbers at or
// below the request's latest value as no-ops.
func (e *Engine) Sync() (*Outcome, error) {
	latest, err := e.DB.Watermark()
	if err != nil {
		return nil, err
	}
	pending, err := db.PendingReviews(e.DB.Conn())
	if err != nil {
		return nil, err
	}
	difficulty, err := scheduler.ExportDifficultyStats(e.DB.Conn())
	if err != nil {
		return nil, err
	}
	intervals, err := scheduler.ExportIntervalStats(e.DB.Conn())
	if err != nil {
		return nil, err
	}

	req := &apiclient.SyncRequest{
		Latest:          latest,
		Reviews:         toWire(pending),
		DifficultyStats: difficulty,
		IntervalStats:   intervals,
	}

	resp, err := e.Client.SyncReviews(e.L1, e.L2, req)
	if err != nil {
		return nil, fmt.Errorf("submit reviews: %w", err)
	}

	outcome := &Outcome{Submitted: len(pending), Watermark: latest}
	err = e.DB.WithTx(func(tx *sql.Tx) error {
		// Everything we submitted is now durable on the server; the
		// acknowledged log is what the word-list classifier consults.
		for _, pr := range pending {
			if err := db.UpsertReview(tx, pr.Review); err != nil {
				return err
			}
		}

		// Reviews from other devices, merged last so the server's view
		// of a word wins over our stale copy.
		for _, sr := range resp.Reviews {
			r, err := fromWire(sr)
			if err != nil {
				slog.Warn("skipping unparseable server review", "word", sr.Word, "err", err)
				continue
			}
			if err := db.UpsertReview(tx, r); err != nil {
				return err
			}
			outcome.MergedReviews++
		}

		if resp.DifficultyStats != nil {
			if err := scheduler.ImportDifficultyStats(tx, *resp.DifficultyStats); err != nil {
				return err
			}
			outcome.StatsReplaced = true
		}
		if resp.IntervalStats != nil {
			if err := scheduler.ImportIntervalStats(tx, *resp.IntervalStats); err != nil {
				return err
			}
			outcome.StatsReplaced = true
		}

		// Watermark only advances once the submission is confirmed, and
		// only if anything was submitted.
		if n := len(pending); n > 0 {
			acked := pending[n-1].SequenceNumber
			if err := db.SetWatermark(tx, acked); err != nil {
				return err
			}
			if err := db.PruneOutbox(tx, acked); err != nil {
				return err
			}
			outcome.Watermark = acked
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("reconcile sync response: %w", err)
	}
	return outcome, nil
}

func toWire(pending []models.PendingReview) []apiclient.SyncReview {
	reviews := make([]apiclient.SyncReview, 0, len(pending))
	for _, pr := range pending {
		reviews = append(reviews, apiclient.SyncReview{
			Word:           pr.Word,
			Learned:        db.FormatTime(pr.Learned),
			Reviewed:       db.FormatTime(pr.Reviewed),
			Interval:       pr.Interval,
			SequenceNumber: pr.SequenceNumber,
		})
	}
	return reviews
}

func fromWire(sr apiclient.SyncReview) (models.Review, error) {
	learned, err := db.ParseTime(sr.Learned)
	if err != nil {
		return models.Review{}, err
	}
	reviewed, err := db.ParseTime(sr.Reviewed)
	if err != nil {
		return models.Review{}, err
	}
	return models.Review{
		Word:     sr.Word,
		Learned:  learned,
		Reviewed: reviewed,
		Interval: sr.Interval,
	}, nil
}
