// Package testutil provides shared test helpers for setting up journal
// workspaces and databases.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/halstad/chronicle/internal/index"
	"github.com/halstad/chronicle/internal/storage"
)

// Journal is a temporary journal workspace with the conventional diary
// and memory subdirectories.
type Journal struct {
	Root      string
	Store     storage.Provider
	DiaryDir  string
	MemoryDir string
}

// NewJournal creates a temporary journal rooted in t.TempDir().
func NewJournal(t *testing.T) *Journal {
	t.Helper()
	root := t.TempDir()
	store, err := storage.NewFS(root)
	if err != nil {
		t.Fatal(err)
	}
	return &Journal{
		Root:      root,
		Store:     store,
		DiaryDir:  "diary",
		MemoryDir: "memory",
	}
}

// WriteEntry stores a dated diary entry file.
func (j *Journal) WriteEntry(t *testing.T, date, content string) {
	t.Helper()
	j.WriteFile(t, filepath.Join(j.DiaryDir, date+".md"), content)
}

// WriteFile stores an arbitrary file relative to the journal root.
func (j *Journal) WriteFile(t *testing.T, rel, content string) {
	t.Helper()
	if err := j.Store.Write(rel, []byte(content)); err != nil {
		t.Fatalf("write %s: %v", rel, err)
	}
}

// ReadFile returns the contents of a file relative to the journal root.
func (j *Journal) ReadFile(t *testing.T, rel string) string {
	t.Helper()
	data, err := j.Store.Read(rel)
	if err != nil {
		t.Fatalf("read %s: %v", rel, err)
	}
	return string(data)
}

// FileExists reports whether a file exists relative to the journal root.
func (j *Journal) FileExists(rel string) bool {
	_, err := os.Stat(filepath.Join(j.Root, rel))
	return err == nil
}

// TestDB creates a temporary SQLite database that is automatically cleaned up.
func TestDB(t *testing.T) *index.DB {
	t.Helper()
	dbFile, err := os.CreateTemp("", "chronicle-test-*.db")
	if err != nil {
		t.Fatal(err)
	}
	dbFile.Close()
	t.Cleanup(func() { os.Remove(dbFile.Name()) })

	db, err := index.Open(dbFile.Name())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}
