package kv

import (
	"context"
	"database/sql"
	"fmt"

	// BLANK IMPORT:
	// `_ "modernc.org/sqlite"` is a side-effect only import: the package's
	// init() registers itself with database/sql as a driver named
	// "sqlite". After this import, sql.Open("sqlite", ...) works.
	//
	// WHY modernc.org/sqlite INSTEAD OF github.com/mattn/go-sqlite3?
	// mattn/go-sqlite3 uses CGo, which needs a C compiler and makes
	// cross-compilation painful. modernc.org/sqlite is a pure Go
	// translation of SQLite — works everywhere Go works.
	_ "modernc.org/sqlite"
)

// Store is the key-value contract every directory is built on. It is the
// Go rendition of the device store the app used: get/set/remove by string
// key, plus a batched remove. Values are opaque strings (JSON, here).
//
// Get reports (value, ok, err): ok is false when the key is absent, which
// is NOT an error — an empty store is the normal first-launch state.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	MultiRemove(ctx context.Context, keys ...string) error
}

// DB is a Store backed by a single SQLite table. It also hands out the
// directory implementations (Users, Entries, Tags, Sessions) that share
// the connection.
//
// WHY SQLITE UNDER A KEY-VALUE CONTRACT?
// The persistence model we must preserve is "one JSON string per fixed
// key" — a schema-less blob store. SQLite gives us a durable, crash-safe
// file for those blobs without inventing a storage engine, and tests get
// a free in-memory store via ":memory:".
type DB struct {
	conn *sql.DB
}

var _ Store = (*DB)(nil)

// Open opens (or creates) the store at dbPath and prepares the kv table.
//
// dbPath examples:
//   - "data/paperpal.db" → file-based, persistent
//   - ":memory:"         → in-memory, great for tests, lost on close
func Open(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("kv: opening database: %w", err)
	}

	// sql.Open only creates the pool — Ping forces a real connection so a
	// bad path or permission problem surfaces here, not on first use.
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("kv: pinging database: %w", err)
	}

	// WAL mode lets reads proceed while a write is in flight. Writes to a
	// single kv row are tiny but the server handles concurrent requests.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("kv: setting WAL mode: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("kv: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the underlying connection pool. Always defer this next to
// Open — it flushes the WAL and releases the file lock.
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate creates the kv table. CREATE TABLE IF NOT EXISTS is idempotent,
// so this is safe on every start.
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS kv (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`)
	if err != nil {
		return fmt.Errorf("creating kv table: %w", err)
	}
	return nil
}

// Get returns the value stored under key. ok is false when the key has
// never been set (or was removed) — that case returns no error.
func (db *DB) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := db.conn.QueryRowContext(ctx,
		`SELECT value FROM kv WHERE key = ?`, key,
	).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("kv: getting %q: %w", key, err)
	}
	return value, true, nil
}

// Set stores value under key, overwriting any previous value. The write
// is a single statement, so from the caller's perspective it is atomic.
func (db *DB) Set(ctx context.Context, key, value string) error {
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("kv: setting %q: %w", key, err)
	}
	return nil
}

// Remove deletes the value under key. Removing an absent key succeeds.
func (db *DB) Remove(ctx context.Context, key string) error {
	_, err := db.conn.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key)
	if err != nil {
		return fmt.Errorf("kv: removing %q: %w", key, err)
	}
	return nil
}

// MultiRemove deletes several keys in one transaction, so a crash can't
// leave a half-removed group (the remember-me tuple spans three keys).
func (db *DB) MultiRemove(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("kv: beginning multi-remove: %w", err)
	}
	defer tx.Rollback()

	for _, key := range keys {
		if _, err := tx.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
			return fmt.Errorf("kv: removing %q: %w", key, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("kv: committing multi-remove: %w", err)
	}
	return nil
}

// Reset wipes every application key. The app exposed the same operation
// as its "clear all data" developer helper; here it backs tests and the
// (dangerous) manual reset path.
func (db *DB) Reset(ctx context.Context) error {
	return db.MultiRemove(ctx, AllKeys()...)
}
