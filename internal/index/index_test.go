package index

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/halstad/chronicle/internal/apperr"
	"github.com/halstad/chronicle/internal/storage"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	f, err := os.CreateTemp("", "chronicle-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	f.Close()
	t.Cleanup(func() { os.Remove(f.Name()) })

	db, err := Open(f.Name())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSchemaCreation(t *testing.T) {
	db := testDB(t)
	var count int
	if err := db.conn.QueryRow(`SELECT count(*) FROM entries`).Scan(&count); err != nil {
		t.Fatalf("entries table missing: %v", err)
	}
}

func TestUpsertAndGetChecksum(t *testing.T) {
	db := testDB(t)
	row := EntryRow{
		Date:      "2026-01-31",
		Title:     "A Good Saturday",
		Summary:   "Shipped the thing.",
		Checksum:  "abc123",
		UpdatedAt: time.Now(),
	}
	if err := db.UpsertEntry(row, "full entry body"); err != nil {
		t.Fatalf("UpsertEntry: %v", err)
	}
	cs, err := db.GetChecksum("2026-01-31")
	if err != nil {
		t.Fatalf("GetChecksum: %v", err)
	}
	if cs != "abc123" {
		t.Errorf("checksum = %q, want %q", cs, "abc123")
	}
}

func TestUpsertUpdatesExisting(t *testing.T) {
	db := testDB(t)
	now := time.Now()
	_ = db.UpsertEntry(EntryRow{Date: "2026-01-31", Title: "Old", Checksum: "1", UpdatedAt: now}, "old body")
	_ = db.UpsertEntry(EntryRow{Date: "2026-01-31", Title: "New", Checksum: "2", UpdatedAt: now}, "new body")

	e, err := db.GetEntry("2026-01-31")
	if err != nil {
		t.Fatalf("GetEntry: %v", err)
	}
	if e.Title != "New" || e.Checksum != "2" {
		t.Errorf("entry = %+v, want updated row", e)
	}

	rows, err := db.ListEntries()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Errorf("got %d rows, upsert should not duplicate", len(rows))
	}
}

func TestGetEntry_NotFound(t *testing.T) {
	db := testDB(t)
	_, err := db.GetEntry("2099-01-01")
	if !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestDeleteEntry(t *testing.T) {
	db := testDB(t)
	_ = db.UpsertEntry(EntryRow{Date: "2026-01-31", Checksum: "x", UpdatedAt: time.Now()}, "body")

	if err := db.DeleteEntry("2026-01-31"); err != nil {
		t.Fatalf("DeleteEntry: %v", err)
	}
	cs, _ := db.GetChecksum("2026-01-31")
	if cs != "" {
		t.Errorf("deleted entry still has checksum %q", cs)
	}
}

func TestListEntries_DateOrder(t *testing.T) {
	db := testDB(t)
	for _, d := range []string{"2026-01-31", "2026-01-02", "2026-01-15"} {
		_ = db.UpsertEntry(EntryRow{Date: d, Checksum: d, UpdatedAt: time.Now()}, "body")
	}
	rows, err := db.ListEntries()
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"2026-01-02", "2026-01-15", "2026-01-31"}
	if len(rows) != len(want) {
		t.Fatalf("got %d rows, want %d", len(rows), len(want))
	}
	for i, w := range want {
		if rows[i].Date != w {
			t.Errorf("rows[%d].Date = %q, want %q", i, rows[i].Date, w)
		}
	}
}

func TestGetChecksum_NotFound(t *testing.T) {
	db := testDB(t)
	cs, err := db.GetChecksum("2099-01-01")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cs != "" {
		t.Errorf("expected empty checksum, got %q", cs)
	}
}

func TestSearch_Basic(t *testing.T) {
	db := testDB(t)
	_ = db.UpsertEntry(EntryRow{Date: "2026-01-31", Title: "Search Me", Checksum: "1", UpdatedAt: time.Now()}, "uniqueword appears here")

	results, err := db.Search("uniqueword", 10)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(results) != 1 || results[0].Date != "2026-01-31" {
		t.Errorf("search results = %+v, want 1 hit for 2026-01-31", results)
	}
}

func syncTestEnv(t *testing.T) (string, storage.Provider, *DB) {
	t.Helper()
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "diary"), 0o755); err != nil {
		t.Fatal(err)
	}
	store, err := storage.NewFS(root)
	if err != nil {
		t.Fatal(err)
	}
	return root, store, testDB(t)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestSync_IndexesDatedEntriesOnly(t *testing.T) {
	root, store, db := syncTestEnv(t)
	_ = os.WriteFile(filepath.Join(root, "diary", "2026-01-31.md"), []byte("# 2026-01-31 — Indexed\n\n## Summary\nA day.\n"), 0o644)
	_ = os.WriteFile(filepath.Join(root, "diary", "quotes.md"), []byte("# Quote Hall of Fame 💬\n"), 0o644)

	if err := Sync(db, store, "diary", quietLogger()); err != nil {
		t.Fatalf("Sync: %v", err)
	}

	e, err := db.GetEntry("2026-01-31")
	if err != nil {
		t.Fatalf("entry not indexed: %v", err)
	}
	if e.Title != "Indexed" {
		t.Errorf("title = %q", e.Title)
	}
	if e.Summary != "A day." {
		t.Errorf("summary = %q", e.Summary)
	}

	rows, _ := db.ListEntries()
	if len(rows) != 1 {
		t.Errorf("got %d rows, corpus files must not be indexed", len(rows))
	}
}

func TestSync_RemovesStale(t *testing.T) {
	root, store, db := syncTestEnv(t)
	p := filepath.Join(root, "diary", "2026-01-30.md")
	_ = os.WriteFile(p, []byte("# 2026-01-30 — Gone Soon\n"), 0o644)

	if err := Sync(db, store, "diary", quietLogger()); err != nil {
		t.Fatal(err)
	}
	_ = os.Remove(p)
	if err := Sync(db, store, "diary", quietLogger()); err != nil {
		t.Fatal(err)
	}

	cs, _ := db.GetChecksum("2026-01-30")
	if cs != "" {
		t.Error("stale entry survived sync")
	}
}

func TestSync_SkipsUnchanged(t *testing.T) {
	root, store, db := syncTestEnv(t)
	_ = os.WriteFile(filepath.Join(root, "diary", "2026-01-31.md"), []byte("# 2026-01-31 — Same\n"), 0o644)

	if err := Sync(db, store, "diary", quietLogger()); err != nil {
		t.Fatal(err)
	}
	first, err := db.GetEntry("2026-01-31")
	if err != nil {
		t.Fatal(err)
	}

	if err := Sync(db, store, "diary", quietLogger()); err != nil {
		t.Fatal(err)
	}
	second, err := db.GetEntry("2026-01-31")
	if err != nil {
		t.Fatal(err)
	}
	if !first.UpdatedAt.Equal(second.UpdatedAt) {
		t.Error("unchanged entry was re-indexed")
	}
}
