package wordlist

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/ellard/glosa/internal/apiclient"
	"github.com/ellard/glosa/internal/db"
	"github.com/ellard/glosa/internal/models"
)

// Refresher rebuilds the local seen/unseen partitions from the server's
// word list when the list has changed.
type Refresher struct {
	DB     *db.DB
	Client *apiclient.Client
	L1     string
	L2     string
}

// RefreshResult summarises a refresh.
type RefreshResult struct {
	Refreshed bool // false when the stored token was still current
	Seen      int
	Unseen    int
	Skipped   int // malformed records dropped
	Version   string
}

// Refresh fetches the course word list and, if its freshness token
// differs from the stored one, rebuilds both word partitions in a single
// transaction. Safe to call on every session start: the unchanged-token
// path does no partition work.
//
// Each decoded record is classified against the acknowledged-review log:
// reviewed words land in the seen partition, everything else in unseen.
// Malformed records (field count other than two, or a frequency class
// that isn't a finite number) are skipped with a warning. The new token
// is written last, so a failure mid-rebuild leaves the old token in
// place and the next call redoes the refresh.
func (r *Refresher) Refresh() (*RefreshResult, error) {
	stored, err := r.DB.WordListVersion()
	if err != nil {
		return nil, err
	}

	wl, err := r.Client.FetchWordList(r.L1, r.L2, stored)
	if errors.Is(err, apiclient.ErrNotModified) {
		return &RefreshResult{Version: stored}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetch word list: %w", err)
	}
	defer wl.Body.Close()

	if wl.ETag != "" && wl.ETag == stored {
		// Server ignored the conditional request but the payload is the
		// version we already have.
		return &RefreshResult{Version: stored}, nil
	}

	scanner := NewScanner(wl.Body)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read word list: %w", err)
		}
		// Empty body is an ambiguous upstream condition: succeed without
		// touching the partitions, but withhold the token so the next
		// call retries rather than trusting it as up to date.
		slog.Warn("word list body is empty, keeping current partitions",
			"l1", r.L1, "l2", r.L2, "etag", wl.ETag)
		return &RefreshResult{Version: stored}, nil
	}

	result := &RefreshResult{Refreshed: true, Version: wl.ETag}
	err = r.DB.WithTx(func(tx *sql.Tx) error {
		if err := db.ClearWordPartitions(tx); err != nil {
			return err
		}

		for {
			if err := classify(tx, scanner.Record(), result); err != nil {
				return err
			}
			if !scanner.Scan() {
				break
			}
		}
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("read word list: %w", err)
		}

		// Token last: a crash before commit leaves the old token and the
		// next refresh starts over.
		return db.SetWordListVersion(tx, wl.ETag)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// classify routes one decoded record into a partition. Malformed records
// are dropped with a warning; only storage errors fail the refresh.
func classify(tx *sql.Tx, record []string, result *RefreshResult) error {
	word, class, ok := parseRecord(record)
	if !ok {
		slog.Warn("skipping malformed word-list record", "record", strings.Join(record, ","))
		result.Skipped++
		return nil
	}

	reviewed, err := db.IsReviewed(tx, word.Word)
	if err != nil {
		return err
	}

	partition := db.PartitionUnseen
	if reviewed {
		partition = db.PartitionSeen
	}
	word.FrequencyClass = class
	if err := db.PutWord(tx, partition, word); err != nil {
		return err
	}

	if reviewed {
		result.Seen++
	} else {
		result.Unseen++
	}
	return nil
}

// parseRecord validates a decoded record: exactly two fields, the second
// a finite number.
func parseRecord(record []string) (models.Word, int, bool) {
	if len(record) != 2 {
		return models.Word{}, 0, false
	}
	word := strings.TrimSpace(record[0])
	if word == "" {
		return models.Word{}, 0, false
	}
	class, err := strconv.ParseFloat(strings.TrimSpace(record[1]), 64)
	if err != nil || math.IsNaN(class) || math.IsInf(class, 0) {
		return models.Word{}, 0, false
	}
	return models.Word{Word: word}, int(class), true
}
