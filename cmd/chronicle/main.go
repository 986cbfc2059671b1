package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/urfave/cli/v3"

	"github.com/halstad/chronicle/internal"
	"github.com/halstad/chronicle/internal/journal"
	pkgconfig "github.com/halstad/chronicle/pkg/config"
)

// loadConfig reads the config file, falling back to defaults when the
// file does not exist (local one-shot use needs no config).
func loadConfig(path string) (*internal.Config, error) {
	cfg := internal.NewDefaultConfig()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	if err := pkgconfig.Load(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

// dateArg resolves the --date flag, defaulting to today.
func dateArg(cmd *cli.Command) string {
	if d := cmd.String("date"); d != "" {
		return d
	}
	return time.Now().Format("2006-01-02")
}

func serve(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd.String("config"))
	if err != nil {
		return err
	}
	if err := internal.Run(ctx, internal.WithConfig(cfg)); err != nil {
		return fmt.Errorf("app run error: %w", err)
	}
	return nil
}

func mcp(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd.String("config"))
	if err != nil {
		return err
	}
	return internal.RunMCP(ctx, internal.WithConfig(cfg))
}

// withService runs fn against a fully wired journal service.
func withService(cmd *cli.Command, fn func(ctx context.Context, svc *journal.Service) error) error {
	cfg, err := loadConfig(cmd.String("config"))
	if err != nil {
		return err
	}
	logger := internal.NewLogger(cfg, os.Stderr)
	slog.SetDefault(logger)

	svc, closeIndex, err := internal.OpenService(cfg, logger)
	if err != nil {
		return err
	}
	defer closeIndex() //nolint:errcheck

	return fn(context.Background(), svc)
}

func task(_ context.Context, cmd *cli.Command) error {
	return withService(cmd, func(ctx context.Context, s *journal.Service) error {
		t, err := s.BuildTask(ctx, dateArg(cmd))
		if err != nil {
			return err
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(t)
	})
}

func save(_ context.Context, cmd *cli.Command) error {
	return withService(cmd, func(ctx context.Context, s *journal.Service) error {
		file := cmd.String("file")
		var content []byte
		var err error
		if file == "" || file == "-" {
			content, err = io.ReadAll(os.Stdin)
		} else {
			content, err = os.ReadFile(file)
		}
		if err != nil {
			return fmt.Errorf("read entry content: %w", err)
		}
		entry, err := s.SaveEntry(ctx, dateArg(cmd), content)
		if err != nil {
			return err
		}
		if err := s.Archive(ctx, entry.Date); err != nil {
			return fmt.Errorf("entry saved but archiving failed: %w", err)
		}
		fmt.Printf("saved and archived %s: %s\n", entry.Date, entry.Title)
		return nil
	})
}

func archiveCmd(_ context.Context, cmd *cli.Command) error {
	return withService(cmd, func(ctx context.Context, s *journal.Service) error {
		date := dateArg(cmd)
		if err := s.Archive(ctx, date); err != nil {
			return err
		}
		fmt.Printf("archived %s\n", date)
		return nil
	})
}

func compileCmd(_ context.Context, cmd *cli.Command) error {
	return withService(cmd, func(ctx context.Context, s *journal.Service) error {
		html, err := s.CompileHTML(ctx)
		if err != nil {
			return err
		}
		out := cmd.String("output")
		if out == "" || out == "-" {
			_, err = os.Stdout.WriteString(html)
			return err
		}
		if err := os.WriteFile(out, []byte(html), 0o644); err != nil {
			return fmt.Errorf("write document: %w", err)
		}
		fmt.Printf("compiled journal to %s\n", out)
		return nil
	})
}

func main() {
	configFlag := &cli.StringFlag{
		Name:        "config",
		Aliases:     []string{"c"},
		Usage:       "Path to config file",
		DefaultText: "config/config.yaml",
		Value:       "config/config.yaml",
		Sources:     cli.EnvVars("APP_CONFIG_FILE"),
	}
	dateFlag := &cli.StringFlag{
		Name:        "date",
		Aliases:     []string{"d"},
		Usage:       "Entry date (YYYY-MM-DD)",
		DefaultText: "today",
	}

	cmd := &cli.Command{
		Name:  "chronicle",
		Usage: "Journal keeper for an AI agent's diary: extraction, archiving, and document compilation",
		Flags: []cli.Flag{configFlag},
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Run the HTTP API with the diary watcher and SSE",
				Action: serve,
				Flags:  []cli.Flag{configFlag},
			},
			{
				Name:   "mcp",
				Usage:  "Run the MCP server on stdio",
				Action: mcp,
				Flags:  []cli.Flag{configFlag},
			},
			{
				Name:   "task",
				Usage:  "Print the generation payload for a date as JSON",
				Action: task,
				Flags:  []cli.Flag{configFlag, dateFlag},
			},
			{
				Name:   "save",
				Usage:  "Save a diary entry from a file (or stdin) and run the archiving pass",
				Action: save,
				Flags: []cli.Flag{configFlag, dateFlag,
					&cli.StringFlag{
						Name:    "file",
						Aliases: []string{"f"},
						Usage:   "Entry content file ('-' for stdin)",
					},
				},
			},
			{
				Name:   "archive",
				Usage:  "Run the archiving pass for a date's entry",
				Action: archiveCmd,
				Flags:  []cli.Flag{configFlag, dateFlag},
			},
			{
				Name:   "compile",
				Usage:  "Compile all entries into the printable HTML document",
				Action: compileCmd,
				Flags: []cli.Flag{configFlag,
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file ('-' for stdout)",
						Value:   "journal.html",
					},
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
