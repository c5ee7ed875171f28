package db

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"
)

// Well-known meta keys.
const (
	metaWordListVersion = "word_list_version"
	metaLatestAckedSeq  = "latest_acked_seq"
)

// GetMeta returns the value stored under key, or "" if absent.
func GetMeta(q Querier, key string) (string, error) {
	var value string
	err := q.QueryRow(`SELECT value FROM meta WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get meta %q: %w", key, err)
	}
	return value, nil
}

// SetMeta upserts a meta key.
func SetMeta(q Querier, key, value string) error {
	_, err := q.Exec(`
		INSERT INTO meta (key, value) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value`,
		key, value)
	if err != nil {
		return fmt.Errorf("set meta %q: %w", key, err)
	}
	return nil
}

// WordListVersion returns the freshness token of the word list the
// seen/unseen partitions were built from, or "" if never refreshed.
func (db *DB) WordListVersion() (string, error) {
	return GetMeta(db.conn, metaWordListVersion)
}

// SetWordListVersion records the freshness token. Callers must only do
// this after the partitions have been fully rewritten.
func SetWordListVersion(q Querier, token string) error {
	return SetMeta(q, metaWordListVersion, token)
}

// Watermark returns the largest sequence number the server has
// acknowledged, or 0 if nothing has been synced yet.
func Watermark(q Querier) (int64, error) {
	value, err := GetMeta(q, metaLatestAckedSeq)
	if err != nil {
		return 0, err
	}
	if value == "" {
		return 0, nil
	}
	seq, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse watermark %q: %w", value, err)
	}
	return seq, nil
}

// SetWatermark advances the acknowledged-sequence watermark. Refuses to
// move backwards.
func SetWatermark(q Querier, seq int64) error {
	current, err := Watermark(q)
	if err != nil {
		return err
	}
	if seq < current {
		return fmt.Errorf("watermark cannot decrease: %d < %d", seq, current)
	}
	return SetMeta(q, metaLatestAckedSeq, strconv.FormatInt(seq, 10))
}

// Watermark reads the watermark outside a transaction.
func (db *DB) Watermark() (int64, error) {
	return Watermark(db.conn)
}
