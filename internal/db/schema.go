package db

// SchemaVersion is the current database schema version
const SchemaVersion = 2

const schema = `
-- Version metadata and sync state (key/value)
CREATE TABLE IF NOT EXISTS meta (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
);

-- Acknowledged reviews: the server has durably recorded these.
-- due is derived from reviewed + interval_hours at write time.
CREATE TABLE IF NOT EXISTS reviewed_words (
    word TEXT PRIMARY KEY,
    learned DATETIME NOT NULL,
    reviewed DATETIME NOT NULL,
    interval_hours REAL NOT NULL DEFAULT 0,
    due DATETIME NOT NULL
);

-- Word-list partition: words the learner has reviewed at least once
CREATE TABLE IF NOT EXISTS seen_words (
    word TEXT PRIMARY KEY,
    frequency_class INTEGER NOT NULL
);

-- Word-list partition: words the learner has never reviewed
CREATE TABLE IF NOT EXISTS unseen_words (
    word TEXT PRIMARY KEY,
    frequency_class INTEGER NOT NULL
);

-- Outbox: reviews recorded locally but not yet acknowledged
CREATE TABLE IF NOT EXISTS pending_reviews (
    sequence_number INTEGER PRIMARY KEY,
    word TEXT NOT NULL,
    learned DATETIME NOT NULL,
    reviewed DATETIME NOT NULL,
    interval_hours REAL NOT NULL DEFAULT 0,
    due DATETIME NOT NULL
);

-- Per-interval answer counters, used to tune the spacing ladder
CREATE TABLE IF NOT EXISTS interval_stats (
    interval_hours REAL PRIMARY KEY,
    correct INTEGER NOT NULL DEFAULT 0,
    incorrect INTEGER NOT NULL DEFAULT 0
);

-- Single-row difficulty estimate for the learner
CREATE TABLE IF NOT EXISTS difficulty_stats (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    frequency_class INTEGER NOT NULL DEFAULT 0,
    correct INTEGER NOT NULL DEFAULT 0,
    incorrect INTEGER NOT NULL DEFAULT 0
);

CREATE INDEX IF NOT EXISTS idx_unseen_class ON unseen_words(frequency_class);
CREATE INDEX IF NOT EXISTS idx_reviewed_due ON reviewed_words(due);
CREATE INDEX IF NOT EXISTS idx_pending_word ON pending_reviews(word);
`

// seedSQL inserts rows that must exist before first use.
const seedSQL = `
INSERT OR IGNORE INTO difficulty_stats (id, frequency_class, correct, incorrect) VALUES (1, 0, 0, 0);
INSERT OR IGNORE INTO interval_stats (interval_hours) VALUES (0), (24);
`
