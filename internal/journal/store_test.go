package journal_test

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"tenebractl/internal/daemonctl"
	"tenebractl/internal/journal"
	"tenebractl/internal/logging"
)

func openStore(t *testing.T) *journal.Store {
	t.Helper()
	store, err := journal.Open(filepath.Join(t.TempDir(), "state", "journal.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestAppendAndRecentNewestFirst(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i, outcome := range []string{"ok", "failed", "ok"} {
		_, err := store.Append(ctx, journal.Entry{
			Action:    "start",
			Outcome:   outcome,
			PID:       100 + i,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
		if err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	entries, err := store.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].PID != 102 || entries[1].PID != 101 {
		t.Fatalf("unexpected order %+v", entries)
	}
	if !entries[0].CreatedAt.Equal(base.Add(2 * time.Minute)) {
		t.Fatalf("timestamp not preserved: %v", entries[0].CreatedAt)
	}

	all, err := store.Recent(ctx, 0)
	if err != nil || len(all) != 3 {
		t.Fatalf("expected all 3 entries, got %d (%v)", len(all), err)
	}
}

func TestAppendRequiresActionAndOutcome(t *testing.T) {
	store := openStore(t)
	if _, err := store.Append(context.Background(), journal.Entry{Action: "start"}); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestPruneRemovesOldEntries(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	now := time.Now()
	_, _ = store.Append(ctx, journal.Entry{Action: "stop", Outcome: "ok", CreatedAt: now.Add(-48 * time.Hour)})
	_, _ = store.Append(ctx, journal.Entry{Action: "stop", Outcome: "ok", CreatedAt: now})

	removed, err := store.Prune(ctx, now.Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected 1 removed, got %d", removed)
	}
}

func TestPruneCutoffWithinOneSecond(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	whole := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	_, _ = store.Append(ctx, journal.Entry{Action: "start", Outcome: "ok", CreatedAt: whole})
	_, _ = store.Append(ctx, journal.Entry{Action: "stop", Outcome: "ok", CreatedAt: whole.Add(900 * time.Millisecond)})

	removed, err := store.Prune(ctx, whole.Add(500*time.Millisecond))
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if removed != 1 {
		t.Fatalf("expected 1 removed, got %d", removed)
	}
	entries, err := store.Recent(ctx, 0)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 1 || entries[0].Action != "stop" {
		t.Fatalf("unexpected survivors %+v", entries)
	}
	if !entries[0].CreatedAt.Equal(whole.Add(900 * time.Millisecond)) {
		t.Fatalf("timestamp changed in storage: %s", entries[0].CreatedAt)
	}
}

func TestOpenRejectsSchemaMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")
	store, err := journal.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	store.Close()

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("sql.Open: %v", err)
	}
	if _, err := db.Exec("UPDATE schema_version SET version = 99"); err != nil {
		t.Fatalf("update version: %v", err)
	}
	db.Close()

	if _, err := journal.Open(path); !errors.Is(err, journal.ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
}

func TestRecorderStoresControllerEvents(t *testing.T) {
	store := openStore(t)
	record := journal.Recorder(store, logging.NewNop())
	record(daemonctl.Event{
		LaunchID: "launch-1",
		Action:   daemonctl.ActionStart,
		Outcome:  daemonctl.OutcomeFailed,
		Errno:    2,
		Detail:   "launch exec: no such file or directory",
	})

	entries, err := store.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	got := entries[0]
	if got.LaunchID != "launch-1" || got.Action != "start" || got.Outcome != "failed" || got.Errno != 2 {
		t.Fatalf("unexpected entry %+v", got)
	}
	if got.CreatedAt.IsZero() {
		t.Fatal("expected timestamp")
	}
}
