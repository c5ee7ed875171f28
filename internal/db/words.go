package db

import (
	"fmt"

	"github.com/ellard/glosa/internal/models"
)

// Partition names the two word-list partitions.
type Partition string

const (
	PartitionSeen   Partition = "seen_words"
	PartitionUnseen Partition = "unseen_words"
)

// ClearWordPartitions empties both word-list partitions. Called at the
// start of a rebuild so stale rows never mix with fresh ones.
func ClearWordPartitions(q Querier) error {
	if _, err := q.Exec(`DELETE FROM seen_words`); err != nil {
		return fmt.Errorf("clear seen_words: %w", err)
	}
	if _, err := q.Exec(`DELETE FROM unseen_words`); err != nil {
		return fmt.Errorf("clear unseen_words: %w", err)
	}
	return nil
}

// PutWord upserts a word into the given partition.
func PutWord(q Querier, p Partition, w models.Word) error {
	_, err := q.Exec(fmt.Sprintf(`
		INSERT INTO %s (word, frequency_class) VALUES (?, ?)
		ON CONFLICT (word) DO UPDATE SET frequency_class = excluded.frequency_class`, p),
		w.Word, w.FrequencyClass)
	if err != nil {
		return fmt.Errorf("put word %q into %s: %w", w.Word, p, err)
	}
	return nil
}

// CountWords returns the number of words in a partition.
func CountWords(q Querier, p Partition) (int, error) {
	var n int
	if err := q.QueryRow(fmt.Sprintf(`SELECT count(*) FROM %s`, p)).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", p, err)
	}
	return n, nil
}

// LookupWord returns the word's row from a partition, or nil if absent.
func LookupWord(q Querier, p Partition, word string) (*models.Word, error) {
	var w models.Word
	err := q.QueryRow(fmt.Sprintf(`SELECT word, frequency_class FROM %s WHERE word = ?`, p), word).
		Scan(&w.Word, &w.FrequencyClass)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("lookup %q in %s: %w", word, p, err)
	}
	return &w, nil
}

// ListWords returns up to n words from a partition ordered by word.
// Pass a negative n for no limit.
func ListWords(q Querier, p Partition, n int) ([]models.Word, error) {
	rows, err := q.Query(fmt.Sprintf(`SELECT word, frequency_class FROM %s ORDER BY word LIMIT ?`, p), n)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", p, err)
	}
	defer rows.Close()

	var words []models.Word
	for rows.Next() {
		var w models.Word
		if err := rows.Scan(&w.Word, &w.FrequencyClass); err != nil {
			return nil, fmt.Errorf("scan %s row: %w", p, err)
		}
		words = append(words, w)
	}
	return words, rows.Err()
}

// NewWords picks up to n unlearned words, preferring words at or above
// the given frequency class, then filling in from easier words.
func NewWords(q Querier, n, preferredClass int) ([]models.Word, error) {
	words, err := newWordsQuery(q, n, `frequency_class >= ? ORDER BY frequency_class ASC, word ASC`, preferredClass)
	if err != nil {
		return nil, err
	}
	if preferredClass <= 0 || len(words) >= n {
		return words, nil
	}

	more, err := newWordsQuery(q, n-len(words), `frequency_class < ? ORDER BY frequency_class DESC, word ASC`, preferredClass)
	if err != nil {
		return nil, err
	}
	return append(words, more...), nil
}

func newWordsQuery(q Querier, n int, where string, class int) ([]models.Word, error) {
	query := `SELECT word, frequency_class FROM unseen_words WHERE ` + where + ` LIMIT ?`
	rows, err := q.Query(query, class, n)
	if err != nil {
		return nil, fmt.Errorf("query new words: %w", err)
	}
	defer rows.Close()

	var words []models.Word
	for rows.Next() {
		var w models.Word
		if err := rows.Scan(&w.Word, &w.FrequencyClass); err != nil {
			return nil, fmt.Errorf("scan new word: %w", err)
		}
		words = append(words, w)
	}
	return words, rows.Err()
}
