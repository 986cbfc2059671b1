// Package storage defines the journal file-system abstraction.
package storage

import "github.com/halstad/chronicle/internal/models"

// Provider is the interface for journal file operations. Paths are
// relative to the journal root (the directory that holds the diary and
// memory subtrees).
type Provider interface {
	// List returns metadata for every .md file under dir (relative to root).
	List(dir string) ([]models.FileInfo, error)
	// Read returns the raw bytes of the file at path.
	Read(path string) ([]byte, error)
	// Write atomically replaces the file at path (tmp + fsync + rename).
	Write(path string, content []byte) error
	// Append adds content to the end of the file at path, creating it if
	// needed. This is a plain open-append-close: archive corpora grow by
	// appension only and are never rewritten.
	Append(path string, content []byte) error
	// Exists reports whether a file exists at path.
	Exists(path string) (bool, error)
	// Delete removes the file at path.
	Delete(path string) error
}
