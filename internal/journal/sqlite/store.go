// Package sqlite provides a SQLite-backed journal store so a session's
// adventure log survives the process.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/tippi-fifestarr/scoundrel/internal/journal"
	"github.com/tippi-fifestarr/scoundrel/internal/journal/sqlite/migrations"
	"github.com/tippi-fifestarr/scoundrel/internal/platform/storage/sqlitemigrate"
)

// Store persists journal entries in SQLite.
type Store struct {
	sqlDB *sql.DB
	clock func() time.Time
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

// Open opens a SQLite journal store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.Apply(sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB, clock: time.Now}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// Append inserts one journal entry and returns it with its id assigned.
func (s *Store) Append(ctx context.Context, entry journal.Entry) (journal.Entry, error) {
	if err := ctx.Err(); err != nil {
		return journal.Entry{}, err
	}
	if s == nil || s.sqlDB == nil {
		return journal.Entry{}, fmt.Errorf("storage is not configured")
	}
	sessionID := strings.TrimSpace(entry.SessionID)
	if sessionID == "" {
		return journal.Entry{}, fmt.Errorf("session id is required")
	}
	if strings.TrimSpace(entry.Message) == "" {
		return journal.Entry{}, fmt.Errorf("message is required")
	}
	at := entry.At
	if at.IsZero() {
		at = s.clock()
	}

	result, err := s.sqlDB.ExecContext(ctx,
		"INSERT INTO journal_entries (session_id, at, message) VALUES (?, ?, ?)",
		sessionID, toMillis(at), entry.Message,
	)
	if err != nil {
		return journal.Entry{}, fmt.Errorf("insert journal entry: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return journal.Entry{}, fmt.Errorf("journal entry id: %w", err)
	}

	entry.ID = id
	entry.SessionID = sessionID
	entry.At = at.UTC().Truncate(time.Millisecond)
	return entry, nil
}

// ListBySession returns every entry for one session in append order.
func (s *Store) ListBySession(ctx context.Context, sessionID string) ([]journal.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, fmt.Errorf("session id is required")
	}

	rows, err := s.sqlDB.QueryContext(ctx,
		"SELECT id, session_id, at, message FROM journal_entries WHERE session_id = ? ORDER BY id",
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("list journal entries: %w", err)
	}
	defer rows.Close()

	var entries []journal.Entry
	for rows.Next() {
		var entry journal.Entry
		var at int64
		if err := rows.Scan(&entry.ID, &entry.SessionID, &at, &entry.Message); err != nil {
			return nil, fmt.Errorf("scan journal entry: %w", err)
		}
		entry.At = fromMillis(at)
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate journal entries: %w", err)
	}
	return entries, nil
}

// NewSink returns a journal sink that persists lines for the session the
// provider names at write time. Lines written before a session exists are
// dropped; append failures are logged, not surfaced, so narration never
// blocks play.
func NewSink(store *Store, sessionID func() string) journal.Sink {
	return &storeSink{store: store, sessionID: sessionID}
}

type storeSink struct {
	store     *Store
	sessionID func() string
}

func (s *storeSink) Log(message string) {
	if s.store == nil || s.sessionID == nil {
		return
	}
	id := s.sessionID()
	if id == "" {
		return
	}
	if _, err := s.store.Append(context.Background(), journal.Entry{SessionID: id, Message: message}); err != nil {
		log.Printf("journal append: %v", err)
	}
}
