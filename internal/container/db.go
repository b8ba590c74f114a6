// Package container persists merged chats into a hierarchical single-file
// store: one group per chat, group attributes, and parallel per-message
// columns in final sorted order.
package container

import (
	"database/sql"
	"errors"
	"fmt"
	"os"

	_ "modernc.org/sqlite"
)

const (
	formatName    = "chatvault-container"
	formatVersion = "1"
)

// ErrOutputExists is returned when creating a container at a path that is
// already occupied and overwriting was not requested.
var ErrOutputExists = errors.New("output file already exists")

// ErrNotContainer is returned when a file opens as a database but lacks the
// container format marker.
var ErrNotContainer = errors.New("not a chat container")

const schema = `
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA busy_timeout = 5000;

CREATE TABLE IF NOT EXISTS meta (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS chats (
    chat_id             TEXT PRIMARY KEY,
    original_chat_id    TEXT,
    chat_name           TEXT NOT NULL,
    message_count       INTEGER NOT NULL,
    unique_sender_count INTEGER NOT NULL,
    has_deepl           INTEGER NOT NULL DEFAULT 0,
    has_m2m100          INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS messages (
    chat_id        TEXT NOT NULL,
    seq            INTEGER NOT NULL,
    ts             REAL,
    ts_str         TEXT NOT NULL DEFAULT '',
    sender_alias   TEXT NOT NULL DEFAULT '',
    message        TEXT NOT NULL DEFAULT '',
    message_id     INTEGER NOT NULL DEFAULT -1,
    message_deepl  TEXT NOT NULL DEFAULT '',
    message_m2m100 TEXT NOT NULL DEFAULT '',
    PRIMARY KEY (chat_id, seq)
);
`

// DB is an open container file.
type DB struct {
	db   *sql.DB
	path string
}

// Create makes a fresh container at path. An existing file is refused unless
// overwrite is set, in which case it is replaced, never appended to.
func Create(path string, overwrite bool) (*DB, error) {
	if _, err := os.Stat(path); err == nil {
		if !overwrite {
			return nil, fmt.Errorf("%w: %s", ErrOutputExists, path)
		}
		if err := os.Remove(path); err != nil {
			return nil, fmt.Errorf("remove existing output: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("create container: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	if _, err := db.Exec(
		"INSERT OR REPLACE INTO meta (key, value) VALUES ('format', ?), ('format_version', ?)",
		formatName, formatVersion,
	); err != nil {
		db.Close()
		return nil, fmt.Errorf("write format marker: %w", err)
	}
	return &DB{db: db, path: path}, nil
}

// Open opens an existing container read-only and verifies the format marker.
func Open(path string) (*DB, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("open container: %w", err)
	}

	var format string
	err = db.QueryRow("SELECT value FROM meta WHERE key = 'format'").Scan(&format)
	if err != nil || format != formatName {
		db.Close()
		return nil, fmt.Errorf("%w: %s", ErrNotContainer, path)
	}
	return &DB{db: db, path: path}, nil
}

func (d *DB) Close() error {
	return d.db.Close()
}

// Path returns the file path the container was opened at.
func (d *DB) Path() string {
	return d.path
}

// Raw exposes the underlying handle for the writer and reader.
func (d *DB) Raw() *sql.DB {
	return d.db
}

// ChatCount returns the number of groups in the container.
func (d *DB) ChatCount() (int, error) {
	var n int
	err := d.db.QueryRow("SELECT COUNT(*) FROM chats").Scan(&n)
	return n, err
}

// MessageCount returns the number of message rows across all groups.
func (d *DB) MessageCount() (int, error) {
	var n int
	err := d.db.QueryRow("SELECT COUNT(*) FROM messages").Scan(&n)
	return n, err
}
