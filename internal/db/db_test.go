package db

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	d, err := Open(filepath.Join(t.TempDir(), "course.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() { d.Close() })
	return d
}

func TestOpenCreatesDatabase(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "courses", "eng-spa.db")

	d, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer d.Close()

	if _, err := os.Stat(path); err != nil {
		t.Errorf("database file not created: %v", err)
	}

	var version int
	if err := d.Conn().QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		t.Fatalf("read user_version: %v", err)
	}
	if version != SchemaVersion {
		t.Errorf("user_version: got %d, want %d", version, SchemaVersion)
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "course.db")

	d, err := Open(path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	if err := SetMeta(d.Conn(), "k", "v"); err != nil {
		t.Fatalf("set meta: %v", err)
	}
	d.Close()

	d, err = Open(path)
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	defer d.Close()

	v, err := GetMeta(d.Conn(), "k")
	if err != nil {
		t.Fatalf("get meta: %v", err)
	}
	if v != "v" {
		t.Errorf("meta survived reopen: got %q, want %q", v, "v")
	}
}

func TestOpenRejectsNewerSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "course.db")

	d, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := d.Conn().Exec("PRAGMA user_version = 99"); err != nil {
		t.Fatalf("bump version: %v", err)
	}
	d.Close()

	if _, err := Open(path); err == nil {
		t.Error("Open should refuse a database from a newer version")
	}
}

func TestWithTxRollsBackOnError(t *testing.T) {
	d := openTestDB(t)

	wantErr := errors.New("boom")
	err := d.WithTx(func(tx *sql.Tx) error {
		if err := SetMeta(tx, "k", "v"); err != nil {
			return err
		}
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("WithTx: got %v, want %v", err, wantErr)
	}

	v, err := GetMeta(d.Conn(), "k")
	if err != nil {
		t.Fatalf("get meta: %v", err)
	}
	if v != "" {
		t.Errorf("write should have rolled back, got %q", v)
	}
}

func TestWithWriteLockBlocksConcurrentWriter(t *testing.T) {
	d := openTestDB(t)

	other := newWriteLocker(d.path)
	if err := other.acquire(defaultTimeout); err != nil {
		t.Fatalf("acquire: %v", err)
	}
	defer other.release()

	err := d.WithWriteLock(func() error { return nil })
	if err == nil {
		t.Error("WithWriteLock should time out while another process holds the lock")
	}
}

func TestTimeRoundTrip(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 30, 45, 0, time.UTC)
	s := FormatTime(now)
	if s != "2026-03-01 12:30:45" {
		t.Errorf("FormatTime: got %q", s)
	}

	parsed, err := ParseTime(s)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !parsed.Equal(now) {
		t.Errorf("round trip: got %v, want %v", parsed, now)
	}
}

func TestParseTimeAcceptsRFC3339(t *testing.T) {
	parsed, err := ParseTime("2026-03-01T12:30:45Z")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if parsed.Hour() != 12 {
		t.Errorf("hour: got %d, want 12", parsed.Hour())
	}

	if _, err := ParseTime("not a timestamp"); err == nil {
		t.Error("ParseTime should reject garbage")
	}
}

func TestFormatTimeConvertsToUTC(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*3600)
	local := time.Date(2026, 3, 1, 14, 0, 0, 0, loc)
	if s := FormatTime(local); s != "2026-03-01 12:00:00" {
		t.Errorf("FormatTime: got %q, want UTC rendering", s)
	}
}
