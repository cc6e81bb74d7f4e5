package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/tippi-fifestarr/scoundrel/internal/journal"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "journal.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open("   "); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestAppendAssignsIDAndTimestamp(t *testing.T) {
	store := openTestStore(t)
	fixed := time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)
	store.clock = func() time.Time { return fixed }

	entry, err := store.Append(context.Background(), journal.Entry{
		SessionID: "game-1",
		Message:   "New game started!",
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if entry.ID == 0 {
		t.Fatal("expected assigned id")
	}
	if !entry.At.Equal(fixed) {
		t.Fatalf("expected clock timestamp, got %v", entry.At)
	}
}

func TestAppendValidation(t *testing.T) {
	store := openTestStore(t)

	tests := []struct {
		name  string
		entry journal.Entry
	}{
		{name: "missing session id", entry: journal.Entry{Message: "hello"}},
		{name: "blank session id", entry: journal.Entry{SessionID: "  ", Message: "hello"}},
		{name: "missing message", entry: journal.Entry{SessionID: "game-1"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := store.Append(context.Background(), tc.entry); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestListBySessionReturnsAppendOrder(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	lines := []string{
		"New game started!",
		"Equipped 4♦ (Weapon).",
		"Fought 9♠ (Monster) using your 4♦ weapon.",
	}
	for _, line := range lines {
		if _, err := store.Append(ctx, journal.Entry{SessionID: "game-1", Message: line}); err != nil {
			t.Fatalf("append %q: %v", line, err)
		}
	}
	if _, err := store.Append(ctx, journal.Entry{SessionID: "game-2", Message: "New game started!"}); err != nil {
		t.Fatalf("append other session: %v", err)
	}

	entries, err := store.ListBySession(ctx, "game-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != len(lines) {
		t.Fatalf("expected %d entries, got %d", len(lines), len(entries))
	}
	for i, entry := range entries {
		if entry.Message != lines[i] {
			t.Fatalf("entry %d: expected %q, got %q", i, lines[i], entry.Message)
		}
		if entry.SessionID != "game-1" {
			t.Fatalf("entry %d: unexpected session %q", i, entry.SessionID)
		}
	}
}

func TestListBySessionEmpty(t *testing.T) {
	store := openTestStore(t)

	entries, err := store.ListBySession(context.Background(), "game-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no entries, got %d", len(entries))
	}
}

func TestSinkPersistsForCurrentSession(t *testing.T) {
	store := openTestStore(t)

	var current string
	sink := NewSink(store, func() string { return current })

	sink.Log("dropped before any session exists")
	current = "game-1"
	sink.Log("Room skipped! New room dealt.")

	entries, err := store.ListBySession(context.Background(), "game-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 1 || entries[0].Message != "Room skipped! New room dealt." {
		t.Fatalf("unexpected entries %+v", entries)
	}
}
