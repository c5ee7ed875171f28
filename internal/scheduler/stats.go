package scheduler

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ellard/glosa/internal/db"
)

// difficultyStats is the serialized form of the difficulty_stats row.
type difficultyStats struct {
	FrequencyClass int `json:"frequencyClass"`
	Correct        int `json:"correct"`
	Incorrect      int `json:"incorrect"`
}

// intervalStat is one serialized interval_stats row.
type intervalStat struct {
	Interval  float64 `json:"interval"`
	Correct   int     `json:"correct"`
	Incorrect int     `json:"incorrect"`
}

// ExportDifficultyStats serializes the difficulty counters for sync
// transport. The sync engine treats the result as opaque.
func ExportDifficultyStats(q db.Querier) (string, error) {
	var s difficultyStats
	err := q.QueryRow(`SELECT frequency_class, correct, incorrect FROM difficulty_stats WHERE id = 1`).
		Scan(&s.FrequencyClass, &s.Correct, &s.Incorrect)
	if err != nil {
		return "", fmt.Errorf("read difficulty stats: %w", err)
	}
	data, err := json.Marshal(s)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ExportIntervalStats serializes the interval ladder for sync transport.
func ExportIntervalStats(q db.Querier) (string, error) {
	rows, err := q.Query(`SELECT interval_hours, correct, incorrect FROM interval_stats ORDER BY interval_hours ASC`)
	if err != nil {
		return "", fmt.Errorf("read interval stats: %w", err)
	}
	defer rows.Close()

	stats := []intervalStat{}
	for rows.Next() {
		var s intervalStat
		if err := rows.Scan(&s.Interval, &s.Correct, &s.Incorrect); err != nil {
			return "", fmt.Errorf("scan interval stats: %w", err)
		}
		stats = append(stats, s)
	}
	if err := rows.Err(); err != nil {
		return "", err
	}

	data, err := json.Marshal(stats)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ImportDifficultyStats replaces the difficulty counters with a
// server-provided blob. No merging: the server copy wins outright.
func ImportDifficultyStats(q db.Querier, blob string) error {
	var s difficultyStats
	if err := json.Unmarshal([]byte(blob), &s); err != nil {
		return fmt.Errorf("parse difficulty stats: %w", err)
	}
	_, err := q.Exec(`
		UPDATE difficulty_stats SET frequency_class = ?, correct = ?, incorrect = ?
		WHERE id = 1`,
		s.FrequencyClass, s.Correct, s.Incorrect)
	if err != nil {
		return fmt.Errorf("replace difficulty stats: %w", err)
	}
	return nil
}

// ImportIntervalStats replaces the interval ladder with a
// server-provided blob.
func ImportIntervalStats(q db.Querier, blob string) error {
	var stats []intervalStat
	if err := json.Unmarshal([]byte(blob), &stats); err != nil {
		return fmt.Errorf("parse interval stats: %w", err)
	}

	if _, err := q.Exec(`DELETE FROM interval_stats`); err != nil {
		return fmt.Errorf("clear interval stats: %w", err)
	}
	for _, s := range stats {
		_, err := q.Exec(`INSERT INTO interval_stats (interval_hours, correct, incorrect) VALUES (?, ?, ?)`,
			s.Interval, s.Correct, s.Incorrect)
		if err != nil {
			return fmt.Errorf("insert interval stats: %w", err)
		}
	}
	return nil
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
