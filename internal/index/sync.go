package index

import (
	"log/slog"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/halstad/chronicle/internal/extract"
	"github.com/halstad/chronicle/internal/models"
	"github.com/halstad/chronicle/internal/storage"
)

// datedFile matches diary entry filenames. Corpus files (quotes.md and
// friends) live in the same directory and are deliberately not indexed.
var datedFile = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}\.md$`)

// Sync walks the diary directory and brings the index up to date:
//   - new/changed entries are extracted and upserted
//   - entries removed from disk are deleted from the index
func Sync(db *DB, store storage.Provider, diaryDir string, logger *slog.Logger) error {
	metas, err := store.List(diaryDir)
	if err != nil {
		return err
	}

	checksums, err := db.AllChecksums()
	if err != nil {
		return err
	}

	disk := make(map[string]struct{}, len(metas))
	for _, m := range metas {
		date, ok := entryDate(m.Path)
		if !ok {
			continue
		}
		disk[date] = struct{}{}

		if checksums[date] == m.Checksum {
			continue
		}

		data, err := store.Read(m.Path)
		if err != nil {
			logger.Warn("sync: read failed", slog.String("path", m.Path), slog.String("error", err.Error()))
			continue
		}
		if err := indexEntry(db, date, data); err != nil {
			logger.Warn("sync: index failed", slog.String("date", date), slog.String("error", err.Error()))
		} else {
			logger.Debug("sync: indexed", slog.String("date", date))
		}
	}

	// Remove stale entries.
	for date := range checksums {
		if _, ok := disk[date]; !ok {
			if err := db.DeleteEntry(date); err != nil {
				logger.Warn("sync: delete failed", slog.String("date", date), slog.String("error", err.Error()))
			} else {
				logger.Debug("sync: removed stale", slog.String("date", date))
			}
		}
	}

	return nil
}

// entryDate extracts the entry date from a diary file path, reporting
// whether the path names a dated entry at all.
func entryDate(p string) (string, bool) {
	base := path.Base(p)
	if !datedFile.MatchString(base) {
		return "", false
	}
	return strings.TrimSuffix(base, ".md"), true
}

// indexEntry extracts data and upserts it into the DB.
func indexEntry(db *DB, date string, data []byte) error {
	entry := extract.Entry(string(data), date)

	row := EntryRow{
		Date:      date,
		Title:     entry.Title,
		Summary:   entry.Sections[models.CategorySummary],
		Checksum:  storage.Checksum(data),
		UpdatedAt: time.Now(),
	}
	return db.UpsertEntry(row, entry.Raw)
}
