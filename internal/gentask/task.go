// Package gentask builds the payload handed to the external writing
// agent: persona instructions, a context-rich prompt, and a token
// budget. Submitting the payload and collecting the finished entry
// happen outside this core.
package gentask

import (
	"fmt"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/halstad/chronicle/internal/apperr"
	"github.com/halstad/chronicle/internal/models"
	"github.com/halstad/chronicle/internal/storage"
)

const (
	// maxTokens is the output budget granted to the writing agent.
	maxTokens = 2000

	// Context caps, in runes. The payload gathers generous but bounded
	// context so one oversized session log cannot crowd out the rest.
	todayLogCap  = 15000
	recentLogCap = 5000
	corpusCap    = 2000

	// recentDays is how many days of prior session logs are gathered.
	recentDays = 2
)

// persistentContext maps corpus files to their context section labels,
// in the order they appear in the prompt.
var persistentContext = []struct {
	file  string
	label string
}{
	{"quotes.md", "## Quote Hall of Fame (existing):"},
	{"curiosity.md", "## Curiosity Backlog (existing):"},
	{"decisions.md", "## Decision Log (existing):"},
	{"relationship.md", "## Relationship Notes (existing):"},
}

// Builder gathers journal context and assembles generation tasks.
type Builder struct {
	store     storage.Provider
	diaryDir  string
	memoryDir string
	now       func() time.Time
	logger    *slog.Logger
}

// NewBuilder creates a Builder. A nil clock selects time.Now.
func NewBuilder(store storage.Provider, diaryDir, memoryDir string, now func() time.Time, logger *slog.Logger) *Builder {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{store: store, diaryDir: diaryDir, memoryDir: memoryDir, now: now, logger: logger}
}

// Build assembles the generation task for one date. It fails with
// apperr.ErrNoContext when neither a session log for the date nor any
// recent session exists: an empty prompt would only produce garbage.
func (b *Builder) Build(date string) (*models.GenerationTask, error) {
	todayLog := b.sessionLog(date, todayLogCap, "\n\n[... truncated for context ...]")
	recent := b.recentSessions()

	if todayLog == "" && recent == "" {
		return nil, fmt.Errorf("gentask: %s: %w", date, apperr.ErrNoContext)
	}

	var parts []string
	if todayLog != "" {
		parts = append(parts, fmt.Sprintf("## Today's Session Log (%s):\n%s", date, todayLog))
	}
	if recent != "" {
		parts = append(parts, "## Recent Session Context:\n"+recent)
	}
	for _, pc := range persistentContext {
		content := b.readCapped(path.Join(b.diaryDir, pc.file), corpusCap, "\n[... truncated ...]")
		if content != "" {
			parts = append(parts, pc.label+"\n"+content)
		}
	}

	context := strings.Join(parts, "\n\n---\n\n")
	b.logger.Debug("gentask: context gathered",
		slog.String("date", date), slog.Int("context_len", len(context)))

	return &models.GenerationTask{
		System:    systemPrompt,
		Prompt:    fmt.Sprintf(promptTemplate, date, context, date),
		MaxTokens: maxTokens,
	}, nil
}

// sessionLog reads one day's memory log, capped.
func (b *Builder) sessionLog(date string, limit int, marker string) string {
	return b.readCapped(path.Join(b.memoryDir, date+".md"), limit, marker)
}

// recentSessions gathers the last few days of session logs (today
// backwards), each capped individually and headed by its date.
func (b *Builder) recentSessions() string {
	var sessions []string
	for i := 0; i < recentDays; i++ {
		date := b.now().AddDate(0, 0, -i).Format("2006-01-02")
		content := b.sessionLog(date, recentLogCap, "\n[... truncated ...]")
		if content != "" {
			sessions = append(sessions, fmt.Sprintf("## %s\n%s", date, content))
		}
	}
	return strings.Join(sessions, "\n\n")
}

// readCapped returns a file's contents truncated to limit runes, with
// the marker appended when the cut happened. A missing file reads as empty.
func (b *Builder) readCapped(p string, limit int, marker string) string {
	exists, err := b.store.Exists(p)
	if err != nil || !exists {
		return ""
	}
	data, err := b.store.Read(p)
	if err != nil {
		return ""
	}
	runes := []rune(string(data))
	if len(runes) <= limit {
		return string(data)
	}
	return string(runes[:limit]) + marker
}
