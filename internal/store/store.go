// Package store is the local offline library: durable books, notes, and
// reading-progress collections backed by an embedded SQLite database.
//
// The store is independent of the remote API; its string book ids live in
// a different identifier space than the server's integer ids and the two
// are never reconciled.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	_ "modernc.org/sqlite"
)

// Sentinel errors for the store package.
var (
	// ErrNotFound is returned when a record does not exist. Absence is a
	// normal outcome, not a failure.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate is returned by insert-only operations on id collision.
	ErrDuplicate = errors.New("record already exists")

	// ErrUnavailable wraps storage-layer failures (locked database,
	// exhausted disk, closed store). Callers must not assume it is
	// transient.
	ErrUnavailable = errors.New("storage unavailable")
)

// migrations are applied in order; user_version tracks the last applied
// index. Appending a migration adds a collection without touching records
// in existing tables.
var migrations = []string{
	// v1: books and notes
	`CREATE TABLE books (
		id       TEXT PRIMARY KEY,
		title    TEXT NOT NULL,
		author   TEXT NOT NULL DEFAULT '',
		cover    TEXT NOT NULL DEFAULT '',
		progress INTEGER NOT NULL DEFAULT 0,
		chapters TEXT,
		metadata TEXT
	);
	CREATE TABLE notes (
		id            TEXT PRIMARY KEY,
		book_id       TEXT NOT NULL,
		text          TEXT NOT NULL,
		selected_text TEXT NOT NULL DEFAULT '',
		chapter       INTEGER NOT NULL DEFAULT 0,
		timestamp     INTEGER NOT NULL
	);
	CREATE INDEX idx_notes_book_id ON notes(book_id);`,

	// v2: reading progress, keyed by book id (one row per book)
	`CREATE TABLE progress (
		book_id      TEXT PRIMARY KEY,
		chapter_id   TEXT NOT NULL DEFAULT '',
		position     INTEGER NOT NULL DEFAULT 0,
		timestamp    INTEGER NOT NULL,
		last_read_at INTEGER NOT NULL
	);`,
}

// Store is the local library database.
type Store struct {
	db     *sql.DB
	logger *slog.Logger
}

// Option customises Open behaviour.
type Option func(*Store)

// WithLogger sets the store's logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// Open opens (creating on first use) the library database at path and
// applies any pending schema migrations. Safe to call on every entry
// path; SQLite serializes concurrent openers via the busy timeout.
func Open(path string, opts ...Option) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("%w: mkdir: %v", ErrUnavailable, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: open: %v", ErrUnavailable, err)
	}

	// busy_timeout must come first: until it is set, a concurrent
	// opener holding the write lock surfaces as a raw SQLITE_BUSY
	// instead of waiting.
	pragmas := []string{
		"PRAGMA busy_timeout = 10000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("%w: %s: %v", ErrUnavailable, p, err)
		}
	}

	s := &Store{db: db, logger: slog.Default()}
	for _, o := range opts {
		o(s)
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// OpenMemory opens an in-memory store for testing. MaxOpenConns(1)
// ensures all queries hit the same in-memory database. Closed via
// t.Cleanup automatically.
func OpenMemory(t testing.TB) *Store {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("store.OpenMemory: %v", err)
	}
	s.db.SetMaxOpenConns(1)
	t.Cleanup(func() { s.Close() })
	return s
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	ctx := context.Background()
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("%w: migrate: %v", ErrUnavailable, err)
	}
	defer conn.Close()

	// Take the write lock before reading user_version so concurrent
	// first-run openers queue on the busy timeout and then see the
	// already-applied schema instead of racing the CREATE TABLEs.
	if _, err := conn.ExecContext(ctx, "BEGIN IMMEDIATE"); err != nil {
		return fmt.Errorf("%w: begin migration: %v", ErrUnavailable, err)
	}
	rollback := func() { _, _ = conn.ExecContext(ctx, "ROLLBACK") }

	var version int
	if err := conn.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		rollback()
		return fmt.Errorf("%w: read schema version: %v", ErrUnavailable, err)
	}

	if version > len(migrations) {
		rollback()
		return fmt.Errorf("%w: database schema version %d is newer than this client", ErrUnavailable, version)
	}

	for i := version; i < len(migrations); i++ {
		if _, err := conn.ExecContext(ctx, migrations[i]); err != nil {
			rollback()
			return fmt.Errorf("%w: apply migration %d: %v", ErrUnavailable, i+1, err)
		}
	}

	if version < len(migrations) {
		if _, err := conn.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", len(migrations))); err != nil {
			rollback()
			return fmt.Errorf("%w: bump schema version: %v", ErrUnavailable, err)
		}
		s.logger.Debug("applied library migrations", "from", version, "to", len(migrations))
	}

	if _, err := conn.ExecContext(ctx, "COMMIT"); err != nil {
		return fmt.Errorf("%w: commit migration: %v", ErrUnavailable, err)
	}
	return nil
}

// SchemaVersion returns the applied schema version.
func (s *Store) SchemaVersion(ctx context.Context) (int, error) {
	var version int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return version, nil
}

// isDuplicate reports whether err is a primary key collision.
func isDuplicate(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
