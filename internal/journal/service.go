package journal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path"
	"time"

	"github.com/halstad/chronicle/internal/apperr"
	"github.com/halstad/chronicle/internal/archive"
	"github.com/halstad/chronicle/internal/compile"
	"github.com/halstad/chronicle/internal/extract"
	"github.com/halstad/chronicle/internal/gentask"
	"github.com/halstad/chronicle/internal/index"
	"github.com/halstad/chronicle/internal/models"
	"github.com/halstad/chronicle/internal/storage"
)

// Service coordinates journal operations across storage and the index.
type Service struct {
	store     storage.Provider
	db        *index.DB
	archiver  *archive.Archiver
	builder   *gentask.Builder
	compiler  *compile.Compiler
	diaryDir  string
	memoryDir string
	policy    archive.Policy
	logger    *slog.Logger
}

// NewService creates a journal service. A nil logger selects slog.Default.
func NewService(store storage.Provider, db *index.DB, diaryDir, memoryDir string, pol archive.Policy, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		store:     store,
		db:        db,
		archiver:  archive.New(store, diaryDir, memoryDir, logger),
		builder:   gentask.NewBuilder(store, diaryDir, memoryDir, nil, logger),
		compiler:  compile.New(nil, nil),
		diaryDir:  diaryDir,
		memoryDir: memoryDir,
		policy:    pol,
		logger:    logger,
	}
}

// entryPath returns the diary-relative path for a date.
func (s *Service) entryPath(date string) string {
	return path.Join(s.diaryDir, date+".md")
}

// validDate rejects anything that is not a real ISO calendar date.
func validDate(date string) error {
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return fmt.Errorf("%q: %w", date, apperr.ErrInvalidDate)
	}
	return nil
}

// ListDates returns all entry dates, ascending.
func (s *Service) ListDates(_ context.Context) ([]string, error) {
	return ListDates(s.store, s.diaryDir)
}

// Entry reads one entry from storage and extracts its structured view.
func (s *Service) Entry(_ context.Context, date string) (*models.DiaryEntry, error) {
	if err := validDate(date); err != nil {
		return nil, err
	}
	data, err := s.store.Read(s.entryPath(date))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("entry %s: %w", date, apperr.ErrNotFound)
		}
		return nil, err
	}
	return extract.Entry(string(data), date), nil
}

// Entries reads every entry in ascending date order. A file that vanishes
// between listing and reading is skipped rather than failing the whole read.
func (s *Service) Entries(ctx context.Context) ([]*models.DiaryEntry, error) {
	dates, err := s.ListDates(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*models.DiaryEntry, 0, len(dates))
	for _, date := range dates {
		entry, err := s.Entry(ctx, date)
		if err != nil {
			if errors.Is(err, apperr.ErrNotFound) {
				continue
			}
			return nil, err
		}
		out = append(out, entry)
	}
	return out, nil
}

// SaveEntry writes an entry for the date and indexes it. Saving over an
// existing date replaces the entry; the journal keeps one entry per day.
func (s *Service) SaveEntry(_ context.Context, date string, content []byte) (*models.DiaryEntry, error) {
	if err := validDate(date); err != nil {
		return nil, err
	}
	if err := s.store.Write(s.entryPath(date), content); err != nil {
		return nil, err
	}
	if err := s.IndexEntry(date, content); err != nil {
		return nil, err
	}
	s.logger.Info("journal: entry saved", slog.String("date", date))
	return extract.Entry(string(content), date), nil
}

// DeleteEntry removes an entry from storage and the index.
func (s *Service) DeleteEntry(_ context.Context, date string) error {
	if err := validDate(date); err != nil {
		return err
	}
	if err := s.store.Delete(s.entryPath(date)); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("entry %s: %w", date, apperr.ErrNotFound)
		}
		return err
	}
	return s.db.DeleteEntry(date)
}

// Search delegates full-text search to the index.
func (s *Service) Search(_ context.Context, query string, limit int) ([]index.SearchResult, error) {
	return s.db.Search(query, limit)
}

// Archive runs the archiving pass for one entry: corpus appends plus the
// daily chronicle, per the configured policy.
func (s *Service) Archive(ctx context.Context, date string) error {
	entry, err := s.Entry(ctx, date)
	if err != nil {
		return err
	}
	return s.archiver.Archive(entry.Raw, date, s.policy)
}

// ReadArchive returns the raw contents of one knowledge corpus.
func (s *Service) ReadArchive(_ context.Context, topic string) ([]byte, error) {
	return s.archiver.ReadTopic(topic)
}

// ArchiveTopics lists the available corpus names.
func (s *Service) ArchiveTopics(_ context.Context) []string {
	return archive.Topics()
}

// Compile builds the full document structure from every entry on disk.
func (s *Service) Compile(ctx context.Context) (*models.CompiledDocument, error) {
	entries, err := s.Entries(ctx)
	if err != nil {
		return nil, err
	}
	return s.compiler.Compile(entries)
}

// CompileHTML compiles the journal and renders the printable HTML artifact.
func (s *Service) CompileHTML(ctx context.Context) (string, error) {
	doc, err := s.Compile(ctx)
	if err != nil {
		return "", err
	}
	return compile.RenderHTML(doc)
}

// BuildTask assembles the generation payload for a date.
func (s *Service) BuildTask(_ context.Context, date string) (*models.GenerationTask, error) {
	if err := validDate(date); err != nil {
		return nil, err
	}
	return s.builder.Build(date)
}

// IndexEntry upserts one entry into the index.
// Exported so that save and watcher paths share one code path.
func (s *Service) IndexEntry(date string, data []byte) error {
	entry := extract.Entry(string(data), date)
	return s.db.UpsertEntry(index.EntryRow{
		Date:      date,
		Title:     entry.Title,
		Summary:   entry.Sections[models.CategorySummary],
		Checksum:  storage.Checksum(data),
		UpdatedAt: time.Now(),
	}, entry.Raw)
}
