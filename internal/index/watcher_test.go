package index

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/halstad/chronicle/internal/storage"
)

// watcherTestEnv sets up a journal root with a diary dir, storage, and DB.
func watcherTestEnv(t *testing.T) (string, storage.Provider, *DB) {
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

// eventually polls fn every tick until it returns true or timeout elapses.
func eventually(t *testing.T, timeout, tick time.Duration, fn func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if fn() {
			return
		}
		time.Sleep(tick)
	}
	t.Error(msg)
}

func TestWatcher_NewEntryIndexed(t *testing.T) {
	root, store, db := watcherTestEnv(t)
	logger := quietLogger()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	var events []string

	go Watch(ctx, db, store, "diary", filepath.Join(root, "diary"), logger, func(kind, date string) {
		mu.Lock()
		events = append(events, kind+":"+date)
		mu.Unlock()
	})

	time.Sleep(100 * time.Millisecond)

	_ = os.WriteFile(filepath.Join(root, "diary", "2026-01-31.md"), []byte("# 2026-01-31 — Fresh\n"), 0o644)

	eventually(t, 5*time.Second, 50*time.Millisecond, func() bool {
		cs, _ := db.GetChecksum("2026-01-31")
		return cs != ""
	}, "new entry not indexed by watcher")

	eventually(t, 2*time.Second, 50*time.Millisecond, func() bool {
		mu.Lock()
		defer mu.Unlock()
		for _, e := range events {
			if e == "created:2026-01-31" {
				return true
			}
		}
		return false
	}, "expected created:2026-01-31 callback")
}

func TestWatcher_CorpusFilesIgnored(t *testing.T) {
	root, store, db := watcherTestEnv(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go Watch(ctx, db, store, "diary", filepath.Join(root, "diary"), quietLogger(), nil)
	time.Sleep(100 * time.Millisecond)

	_ = os.WriteFile(filepath.Join(root, "diary", "quotes.md"), []byte("# Quote Hall of Fame 💬\n"), 0o644)
	time.Sleep(300 * time.Millisecond)

	rows, _ := db.ListEntries()
	if len(rows) != 0 {
		t.Errorf("corpus file was indexed: %+v", rows)
	}
}

func TestWatcher_DeleteRemovesFromIndex(t *testing.T) {
	root, store, db := watcherTestEnv(t)
	logger := quietLogger()

	p := filepath.Join(root, "diary", "2026-01-30.md")
	_ = os.WriteFile(p, []byte("# 2026-01-30 — Delete Me\n"), 0o644)
	Sync(db, store, "diary", logger)

	cs, _ := db.GetChecksum("2026-01-30")
	if cs == "" {
		t.Fatal("precondition: entry should be indexed")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go Watch(ctx, db, store, "diary", filepath.Join(root, "diary"), logger, nil)
	time.Sleep(100 * time.Millisecond)

	_ = os.Remove(p)

	eventually(t, 5*time.Second, 50*time.Millisecond, func() bool {
		cs, _ := db.GetChecksum("2026-01-30")
		return cs == ""
	}, "deleted entry still in index")
}

func TestWatcher_RenameReconciles(t *testing.T) {
	root, store, db := watcherTestEnv(t)
	logger := quietLogger()

	_ = os.WriteFile(filepath.Join(root, "diary", "2026-01-29.md"), []byte("# 2026-01-29 — Rename\n"), 0o644)
	Sync(db, store, "diary", logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go Watch(ctx, db, store, "diary", filepath.Join(root, "diary"), logger, nil)
	time.Sleep(100 * time.Millisecond)

	_ = os.Rename(filepath.Join(root, "diary", "2026-01-29.md"), filepath.Join(root, "diary", "2026-01-30.md"))

	eventually(t, 5*time.Second, 50*time.Millisecond, func() bool {
		oldCS, _ := db.GetChecksum("2026-01-29")
		newCS, _ := db.GetChecksum("2026-01-30")
		return oldCS == "" && newCS != ""
	}, "rename reconciliation failed: old date should be removed and new date indexed")
}
