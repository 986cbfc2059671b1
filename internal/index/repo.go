package index

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/halstad/chronicle/internal/apperr"
)

// EntryRow represents a row in the entries table.
type EntryRow struct {
	Date      string
	Title     string
	Summary   string
	Checksum  string
	UpdatedAt time.Time
}

// SearchResult represents one search hit.
type SearchResult struct {
	Date    string
	Title   string
	Snippet string
}

// UpsertEntry inserts or replaces an entry and its FTS row within a transaction.
func (db *DB) UpsertEntry(e EntryRow, body string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	// Upsert entries table (includes body for fallback search).
	_, err = tx.Exec(`
		INSERT INTO entries (date, title, summary, checksum, body, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			title      = excluded.title,
			summary    = excluded.summary,
			checksum   = excluded.checksum,
			body       = excluded.body,
			updated_at = excluded.updated_at
	`, e.Date, e.Title, e.Summary, e.Checksum, body, e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("index: upsert entry: %w", err)
	}

	// FTS upsert (no-op when FTS5 tag is absent).
	if err := ftsUpsert(tx, e.Date, e.Title, body); err != nil {
		return err
	}

	return tx.Commit()
}

// DeleteEntry removes an entry and its FTS row.
func (db *DB) DeleteEntry(date string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	ftsDelete(tx, date)
	_, _ = tx.Exec(`DELETE FROM entries WHERE date = ?`, date)

	return tx.Commit()
}

// GetEntry returns one indexed entry by date.
func (db *DB) GetEntry(date string) (*EntryRow, error) {
	var e EntryRow
	err := db.conn.QueryRow(`
		SELECT date, title, summary, checksum, updated_at
		FROM entries WHERE date = ?
	`, date).Scan(&e.Date, &e.Title, &e.Summary, &e.Checksum, &e.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("index: entry %s: %w", date, apperr.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("index: get entry: %w", err)
	}
	return &e, nil
}

// ListEntries returns all indexed entries ordered by date ascending.
func (db *DB) ListEntries() ([]EntryRow, error) {
	rows, err := db.conn.Query(`
		SELECT date, title, summary, checksum, updated_at
		FROM entries ORDER BY date ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("index: list entries: %w", err)
	}
	defer rows.Close()

	var out []EntryRow
	for rows.Next() {
		var e EntryRow
		if err := rows.Scan(&e.Date, &e.Title, &e.Summary, &e.Checksum, &e.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// GetChecksum returns the stored checksum for an entry, or empty string if not found.
func (db *DB) GetChecksum(date string) (string, error) {
	var cs string
	err := db.conn.QueryRow(`SELECT checksum FROM entries WHERE date = ?`, date).Scan(&cs)
	if err != nil {
		return "", nil // not found is fine
	}
	return cs, nil
}

// AllChecksums returns date → checksum for every indexed entry.
func (db *DB) AllChecksums() (map[string]string, error) {
	rows, err := db.conn.Query(`SELECT date, checksum FROM entries`)
	if err != nil {
		return nil, fmt.Errorf("index: all checksums: %w", err)
	}
	defer rows.Close()
	out := make(map[string]string)
	for rows.Next() {
		var date, cs string
		if err := rows.Scan(&date, &cs); err != nil {
			return nil, err
		}
		out[date] = cs
	}
	return out, rows.Err()
}
