package internal

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/halstad/chronicle/internal/index"
	"github.com/halstad/chronicle/internal/journal"
	"github.com/halstad/chronicle/internal/mcpserver"
	"github.com/halstad/chronicle/internal/storage"
)

// NewLogger builds the structured JSON logger. One-shot commands and the
// MCP server log to stderr: stdout carries their payload.
func NewLogger(cfg *Config, w *os.File) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
}

// OpenService wires storage, the SQLite index and the journal service
// for one-shot commands and the MCP server. The returned closer releases
// the index.
func OpenService(cfg *Config, logger *slog.Logger) (*journal.Service, func() error, error) {
	diaryAbs := filepath.Join(cfg.Journal.Root, cfg.Journal.DiaryDir)
	memoryAbs := filepath.Join(cfg.Journal.Root, cfg.Journal.MemoryDir)
	for _, dir := range []string{diaryAbs, memoryAbs} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("create journal dir: %w", err)
		}
	}

	store, err := storage.NewFS(cfg.Journal.Root)
	if err != nil {
		return nil, nil, fmt.Errorf("init storage: %w", err)
	}

	db, err := index.Open(cfg.SQLite.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("init index: %w", err)
	}

	if err := index.Sync(db, store, cfg.Journal.DiaryDir, logger); err != nil {
		logger.Warn("initial sync failed", slog.String("error", err.Error()))
	}

	svc := journal.NewService(store, db, cfg.Journal.DiaryDir, cfg.Journal.MemoryDir, cfg.Memory.Policy(), logger)
	return svc, db.Close, nil
}

// RunMCP starts the MCP server on stdin/stdout. Logging goes to stderr
// so the stdio transport stays clean.
func RunMCP(_ context.Context, opts ...Option) error {
	app := &application{}
	for _, opt := range opts {
		opt(app)
	}
	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	logger := NewLogger(app.config, os.Stderr)
	slog.SetDefault(logger)

	svc, closeIndex, err := OpenService(app.config, logger)
	if err != nil {
		return err
	}
	defer closeIndex() //nolint:errcheck

	logger.Info("MCP server starting on stdio")
	return mcpserver.New(svc).ServeStdio()
}
