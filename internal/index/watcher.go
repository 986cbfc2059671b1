package index

import (
	"context"
	"log/slog"
	"path"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/halstad/chronicle/internal/storage"
)

// EventCallback is called after a watcher-driven index change.
// kind is one of "created", "updated", "deleted".
type EventCallback func(kind string, date string)

// Watch starts an fsnotify watcher on the diary directory and processes
// file change events until ctx is cancelled. It calls cb (if non-nil)
// after each successful index mutation.
//
// The diary directory is flat, so no recursive watching is needed. Only
// dated entry files are processed; corpus files and editor temp files in
// the same directory are ignored. Rename events trigger a reconciliation
// pass that removes stale index entries whose files no longer exist on
// disk.
func Watch(ctx context.Context, db *DB, store storage.Provider, diaryDir, diaryAbs string, logger *slog.Logger, cb EventCallback) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(diaryAbs); err != nil {
		return err
	}

	logger.Info("watcher: started", slog.String("dir", diaryAbs))

	// reconcileTimer is used to debounce rename reconciliation.
	var reconcileTimer *time.Timer
	var reconcileCh <-chan time.Time

	scheduleReconcile := func() {
		if reconcileTimer == nil {
			reconcileTimer = time.NewTimer(200 * time.Millisecond)
			reconcileCh = reconcileTimer.C
		} else {
			reconcileTimer.Reset(200 * time.Millisecond)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if reconcileTimer != nil {
				reconcileTimer.Stop()
			}
			logger.Info("watcher: stopped")
			return nil

		case <-reconcileCh:
			reconcileAfterRename(db, store, diaryDir, logger, cb)

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}

			date, isEntry := entryDate(ev.Name)
			if !isEntry {
				continue
			}
			rel := path.Join(diaryDir, date+".md")

			switch {
			case ev.Op&(fsnotify.Create|fsnotify.Write) != 0:
				data, readErr := store.Read(rel)
				if readErr != nil {
					logger.Warn("watcher: read failed", slog.String("date", date), slog.String("error", readErr.Error()))
					continue
				}
				kind := "updated"
				if cs, _ := db.GetChecksum(date); cs == "" {
					kind = "created"
				}
				if idxErr := indexEntry(db, date, data); idxErr != nil {
					logger.Warn("watcher: index failed", slog.String("date", date), slog.String("error", idxErr.Error()))
					continue
				}
				logger.Debug("watcher: indexed", slog.String("date", date), slog.String("op", kind))
				if cb != nil {
					cb(kind, date)
				}

			case ev.Op&fsnotify.Remove != 0:
				if delErr := db.DeleteEntry(date); delErr != nil {
					logger.Warn("watcher: delete failed", slog.String("date", date), slog.String("error", delErr.Error()))
					continue
				}
				logger.Debug("watcher: deleted", slog.String("date", date))
				if cb != nil {
					cb("deleted", date)
				}

			case ev.Op&fsnotify.Rename != 0:
				// fsnotify fires Rename on the OLD path only. The new
				// path will arrive as a separate Create event (if it
				// stays in the diary dir). We delete the old entry
				// immediately and schedule a short reconciliation pass
				// to catch any stragglers.
				if delErr := db.DeleteEntry(date); delErr != nil {
					logger.Warn("watcher: rename delete failed", slog.String("date", date), slog.String("error", delErr.Error()))
				} else {
					logger.Debug("watcher: rename old deleted", slog.String("date", date))
					if cb != nil {
						cb("deleted", date)
					}
				}
				scheduleReconcile()
			}

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}

// reconcileAfterRename does a lightweight sync using batch lookups:
// finds index entries without a corresponding file on disk and removes
// them, and indexes on-disk entries the index has not seen.
func reconcileAfterRename(db *DB, store storage.Provider, diaryDir string, logger *slog.Logger, cb EventCallback) {
	checksums, err := db.AllChecksums()
	if err != nil {
		logger.Warn("reconcile: all checksums failed", slog.String("error", err.Error()))
		return
	}

	metas, err := store.List(diaryDir)
	if err != nil {
		logger.Warn("reconcile: list failed", slog.String("error", err.Error()))
		return
	}

	disk := make(map[string]string, len(metas))
	for _, m := range metas {
		if date, ok := entryDate(m.Path); ok {
			disk[date] = m.Checksum
		}
	}

	for date := range checksums {
		if _, ok := disk[date]; !ok {
			if delErr := db.DeleteEntry(date); delErr == nil {
				logger.Debug("reconcile: removed stale", slog.String("date", date))
				if cb != nil {
					cb("deleted", date)
				}
			}
		}
	}

	for date, cs := range disk {
		if checksums[date] == cs {
			continue
		}
		data, readErr := store.Read(path.Join(diaryDir, date+".md"))
		if readErr != nil {
			continue
		}
		if idxErr := indexEntry(db, date, data); idxErr == nil {
			logger.Debug("reconcile: indexed new", slog.String("date", date))
			if cb != nil {
				cb("created", date)
			}
		}
	}
}
