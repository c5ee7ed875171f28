// Spacing-ladder auto-tuning. Intervals double by default; when the
// answer counters show an interval is too hard or too easy, it is nudged
// toward the midpoint of its neighbors.
package scheduler

import (
	"fmt"
	"math"

	"github.com/ellard/glosa/internal/db"
)

const dayHours = 24.0

// wilson returns a Wilson score bound for correct/(correct+incorrect).
// Negative z gives a lower bound, positive z an upper bound.
func wilson(correct, incorrect int, z float64) float64 {
	n := float64(correct + incorrect)
	if n == 0 {
		// No evidence: neutral value that triggers neither tuning rule.
		if z < 0 {
			return 0
		}
		return 1
	}
	p := float64(correct) / n
	q := z * z / n
	center := p + q/2
	margin := z * math.Sqrt(p*(1-p)/n+q/(4*n))
	return (center + margin) / (1 + q)
}

func isTooEasy(correct, incorrect int) bool {
	// One-sided 80% confidence; higher confidence needs too many samples.
	lower := wilson(correct, incorrect, -0.845)
	return lower > 0.875
}

func isTooHard(correct, incorrect int) bool {
	// One-sided 99% confidence.
	upper := wilson(correct, incorrect, 2.325)
	return upper < 0.8
}

// autoTune adjusts the difficulty estimate and the interval ladder from
// the accumulated answer counters.
func autoTune(q db.Querier) error {
	if err := tuneDifficulty(q); err != nil {
		return err
	}

	rows, err := q.Query(`SELECT interval_hours, correct, incorrect FROM interval_stats ORDER BY interval_hours ASC`)
	if err != nil {
		return fmt.Errorf("query interval stats: %w", err)
	}
	defer rows.Close()

	type bucket struct {
		interval           float64
		correct, incorrect int
	}
	var buckets []bucket
	for rows.Next() {
		var b bucket
		if err := rows.Scan(&b.interval, &b.correct, &b.incorrect); err != nil {
			return fmt.Errorf("scan interval stats: %w", err)
		}
		buckets = append(buckets, b)
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, b := range buckets {
		// Leave the 0 and 1-day rungs alone.
		if b.interval <= dayHours {
			continue
		}
		if isTooHard(b.correct, b.incorrect) {
			if err := decreaseInterval(q, b.interval); err != nil {
				return err
			}
		} else if isTooEasy(b.correct, b.incorrect) {
			if err := increaseInterval(q, b.interval); err != nil {
				return err
			}
		}
	}
	return nil
}

func tuneDifficulty(q db.Querier) error {
	var correct, incorrect int
	err := q.QueryRow(`SELECT correct, incorrect FROM difficulty_stats WHERE id = 1`).Scan(&correct, &incorrect)
	if err != nil {
		return fmt.Errorf("read difficulty stats: %w", err)
	}

	if isTooHard(correct, incorrect) {
		return adjustDifficulty(q, `max(0, frequency_class - 1)`)
	} else if isTooEasy(correct, incorrect) {
		return adjustDifficulty(q, `frequency_class + 1`)
	}
	return nil
}

func adjustDifficulty(q db.Querier, expr string) error {
	query := fmt.Sprintf(`UPDATE difficulty_stats SET frequency_class = %s, correct = 0, incorrect = 0 WHERE id = 1`, expr)
	if _, err := q.Exec(query); err != nil {
		return fmt.Errorf("adjust difficulty: %w", err)
	}
	return nil
}

// previousInterval returns the biggest ladder rung below interval.
func previousInterval(q db.Querier, interval float64) (float64, error) {
	if interval <= dayHours {
		return 0, nil
	}
	var prev float64
	err := q.QueryRow(`SELECT coalesce(max(interval_hours), 0) FROM interval_stats WHERE interval_hours < ?`, interval).Scan(&prev)
	if err != nil {
		return 0, fmt.Errorf("previous interval: %w", err)
	}
	return prev, nil
}

func intervalExists(q db.Querier, interval float64) (bool, error) {
	var one int
	err := q.QueryRow(`SELECT 1 FROM interval_stats WHERE interval_hours = ?`, interval).Scan(&one)
	if err != nil {
		if isNoRows(err) {
			return false, nil
		}
		return false, fmt.Errorf("interval lookup: %w", err)
	}
	return true, nil
}

// replaceInterval moves a rung to a new value, resetting its counters
// and shifting every review on the old rung along with it.
func replaceInterval(q db.Querier, interval, replacement float64) error {
	_, err := q.Exec(`
		UPDATE interval_stats SET interval_hours = ?, correct = 0, incorrect = 0
		WHERE interval_hours = ?`, replacement, interval)
	if err != nil {
		return fmt.Errorf("replace interval: %w", err)
	}

	for _, table := range []string{"reviewed_words", "pending_reviews"} {
		_, err := q.Exec(fmt.Sprintf(`
			UPDATE %s SET
				interval_hours = ?,
				due = datetime(reviewed, printf('+%%f hours', ?))
			WHERE interval_hours = ?`, table),
			replacement, replacement, interval)
		if err != nil {
			return fmt.Errorf("reschedule %s: %w", table, err)
		}
	}
	return nil
}

// mergeInterval folds a rung into an existing one.
func mergeInterval(q db.Querier, interval, replacement float64) error {
	if _, err := q.Exec(`DELETE FROM interval_stats WHERE interval_hours = ?`, interval); err != nil {
		return fmt.Errorf("drop interval: %w", err)
	}
	for _, table := range []string{"reviewed_words", "pending_reviews"} {
		_, err := q.Exec(fmt.Sprintf(`UPDATE %s SET interval_hours = ? WHERE interval_hours = ?`, table),
			replacement, interval)
		if err != nil {
			return fmt.Errorf("merge %s: %w", table, err)
		}
	}
	return nil
}

func decreaseInterval(q db.Querier, interval float64) error {
	if interval <= dayHours {
		return nil
	}

	prev, err := previousInterval(q, interval)
	if err != nil {
		return err
	}
	mid := (prev + interval) / 2

	if exists, err := intervalExists(q, mid); err != nil {
		return err
	} else if exists {
		return mergeInterval(q, interval, mid)
	}
	return replaceInterval(q, interval, mid)
}

func maxInterval(q db.Querier) (float64, error) {
	var max float64
	err := q.QueryRow(`SELECT coalesce(max(interval_hours), 0) FROM interval_stats`).Scan(&max)
	if err != nil {
		return 0, fmt.Errorf("max interval: %w", err)
	}
	return max, nil
}

func insertInterval(q db.Querier, interval float64) error {
	if _, err := q.Exec(`INSERT OR IGNORE INTO interval_stats (interval_hours) VALUES (?)`, interval); err != nil {
		return fmt.Errorf("insert interval: %w", err)
	}
	return nil
}

// insertMissingIntervals extends the doubling ladder far enough that a
// rung larger than interval exists.
func insertMissingIntervals(q db.Querier, interval float64) error {
	max, err := maxInterval(q)
	if err != nil {
		return err
	}
	if max > interval {
		return nil
	}

	next := 2 * max
	if next <= 0 {
		next = dayHours
	}
	for next <= interval {
		if err := insertInterval(q, next); err != nil {
			return err
		}
		next *= 2
	}
	return insertInterval(q, next)
}

// nextInterval returns the smallest ladder rung above interval, growing
// the ladder if needed.
func nextInterval(q db.Querier, interval float64) (float64, error) {
	if err := insertMissingIntervals(q, interval); err != nil {
		return 0, err
	}

	var next float64
	err := q.QueryRow(`SELECT min(interval_hours) FROM interval_stats WHERE interval_hours > ?`, interval).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("next interval: %w", err)
	}
	return next, nil
}

func increaseInterval(q db.Querier, interval float64) error {
	next, err := nextInterval(q, interval)
	if err != nil {
		return err
	}
	mid := (interval + next) / 2

	if exists, err := intervalExists(q, mid); err != nil {
		return err
	} else if exists {
		return mergeInterval(q, interval, mid)
	}
	return replaceInterval(q, interval, mid)
}
