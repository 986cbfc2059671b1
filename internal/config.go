package internal

import (
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/halstad/chronicle/internal/archive"
)

// Auth modes.
const (
	AuthModeDisabled = "disabled"
	AuthModeToken    = "token"
)

// Config represents the application configuration.
type Config struct {
	App     ApplicationConfig `yaml:"app"`
	Journal JournalConfig     `yaml:"journal"`
	SQLite  SQLiteConfig      `yaml:"sqlite"`
	Memory  MemoryConfig      `yaml:"memory"`
	Auth    AuthConfig        `yaml:"auth"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Journal.Validate(); err != nil {
		return err
	}
	if err := c.SQLite.Validate(); err != nil {
		return err
	}
	if err := c.Memory.Validate(); err != nil {
		return err
	}
	return c.Auth.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// JournalConfig holds the journal root and its subdirectory layout.
// DiaryDir and MemoryDir are relative to Root.
type JournalConfig struct {
	Root      string `yaml:"root"`
	DiaryDir  string `yaml:"diary_dir"`
	MemoryDir string `yaml:"memory_dir"`
}

// Validate validates the journal configuration.
func (c *JournalConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Root, validation.Required),
		validation.Field(&c.DiaryDir, validation.Required),
		validation.Field(&c.MemoryDir, validation.Required),
	)
}

// SQLiteConfig holds SQLite database configuration.
type SQLiteConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the SQLite configuration.
func (c *SQLiteConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// MemoryConfig controls how archiving integrates with the daily memory
// logs: whether the chronicle block is appended and in which format.
type MemoryConfig struct {
	Enabled       bool   `yaml:"enabled"`
	AppendToDaily bool   `yaml:"append_to_daily"`
	Format        string `yaml:"format"`
}

// Validate validates the memory integration configuration.
func (c *MemoryConfig) Validate() error {
	// Normalise empty format to "summary".
	if c.Format == "" {
		c.Format = archive.FormatSummary
	}
	return validation.ValidateStruct(c,
		validation.Field(&c.Format, validation.Required,
			validation.In(archive.FormatLink, archive.FormatFull, archive.FormatSummary)),
	)
}

// Policy converts the configuration into the archiver's policy value.
func (c *MemoryConfig) Policy() archive.Policy {
	return archive.Policy{
		Enabled:       c.Enabled,
		AppendToDaily: c.AppendToDaily,
		Format:        c.Format,
	}
}

// AuthConfig holds authentication configuration.
//
// Mode controls how authentication is enforced:
//   - "disabled" (default): no authentication required, suitable for local dev.
//   - "token": Bearer token authentication; Token must be non-empty.
type AuthConfig struct {
	Mode  string `yaml:"mode"`
	Token string `yaml:"token"`
}

// Validate validates the auth configuration.
func (c *AuthConfig) Validate() error {
	// Normalise empty mode to "disabled" for backward compatibility.
	if c.Mode == "" {
		c.Mode = AuthModeDisabled
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Mode, validation.Required, validation.In(AuthModeDisabled, AuthModeToken)),
	); err != nil {
		return err
	}
	if c.Mode == AuthModeToken && c.Token == "" {
		return fmt.Errorf("auth: mode is %q but token is empty", AuthModeToken)
	}
	return nil
}

// AuthEnabled returns true when authentication is active.
func (c *AuthConfig) AuthEnabled() bool {
	return c.Mode == AuthModeToken
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		Journal: JournalConfig{
			Root:      "./journal",
			DiaryDir:  "diary",
			MemoryDir: "memory",
		},
		SQLite: SQLiteConfig{
			Path: "./chronicle.db",
		},
		Memory: MemoryConfig{
			Enabled:       true,
			AppendToDaily: true,
			Format:        archive.FormatSummary,
		},
		Auth: AuthConfig{
			Mode: AuthModeDisabled,
		},
	}
}
