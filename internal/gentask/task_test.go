package gentask

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/halstad/chronicle/internal/apperr"
	"github.com/halstad/chronicle/internal/testutil"
)

func fixedNow() time.Time {
	return time.Date(2026, 1, 31, 21, 0, 0, 0, time.UTC)
}

func newBuilder(t *testing.T) (*Builder, *testutil.Journal) {
	t.Helper()
	j := testutil.NewJournal(t)
	return NewBuilder(j.Store, j.DiaryDir, j.MemoryDir, fixedNow, nil), j
}

func TestBuild_NoContextFails(t *testing.T) {
	b, _ := newBuilder(t)
	_, err := b.Build("2026-01-31")
	if !errors.Is(err, apperr.ErrNoContext) {
		t.Fatalf("err = %v, want ErrNoContext", err)
	}
}

func TestBuild_TodayLogOnly(t *testing.T) {
	b, j := newBuilder(t)
	j.WriteFile(t, "memory/2026-01-31.md", "Worked on the indexer all day.")

	task, err := b.Build("2026-01-31")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if task.MaxTokens != 2000 {
		t.Errorf("MaxTokens = %d, want 2000", task.MaxTokens)
	}
	if !strings.Contains(task.Prompt, "## Today's Session Log (2026-01-31):") {
		t.Error("today's session header missing")
	}
	if !strings.Contains(task.Prompt, "Worked on the indexer all day.") {
		t.Error("today's log content missing")
	}
	if !strings.Contains(task.Prompt, "Write your personal diary entry for 2026-01-31.") {
		t.Error("prompt preamble missing or wrong date")
	}
	if !strings.Contains(task.Prompt, "# 2026-01-31 — [Creative Title Based on the Day]") {
		t.Error("entry skeleton heading missing or wrong date")
	}
	if !strings.Contains(task.System, "personal diary") {
		t.Error("system persona missing")
	}
}

func TestBuild_RecentSessionsAloneSuffice(t *testing.T) {
	b, j := newBuilder(t)
	// No log for the requested date, but yesterday counts as recent.
	j.WriteFile(t, "memory/2026-01-30.md", "Yesterday's notes.")

	task, err := b.Build("2026-01-31")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if !strings.Contains(task.Prompt, "## Recent Session Context:") {
		t.Error("recent context header missing")
	}
	if !strings.Contains(task.Prompt, "## 2026-01-30\nYesterday's notes.") {
		t.Error("dated recent session missing")
	}
}

func TestBuild_RecentWindowExcludesOlderLogs(t *testing.T) {
	b, j := newBuilder(t)
	j.WriteFile(t, "memory/2026-01-31.md", "today")
	j.WriteFile(t, "memory/2026-01-30.md", "yesterday")
	j.WriteFile(t, "memory/2026-01-29.md", "too old")

	task, err := b.Build("2026-01-31")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(task.Prompt, "yesterday") {
		t.Error("day-1 log should be within the recent window")
	}
	if strings.Contains(task.Prompt, "too old") {
		t.Error("day-2 log leaked into the recent window")
	}
}

func TestBuild_PersistentContextOrderAndLabels(t *testing.T) {
	b, j := newBuilder(t)
	j.WriteFile(t, "memory/2026-01-31.md", "today")
	j.WriteFile(t, "diary/quotes.md", "> \"Ship it.\"")
	j.WriteFile(t, "diary/decisions.md", "Chose SQLite.")

	task, err := b.Build("2026-01-31")
	if err != nil {
		t.Fatal(err)
	}
	quotes := strings.Index(task.Prompt, "## Quote Hall of Fame (existing):")
	decisions := strings.Index(task.Prompt, "## Decision Log (existing):")
	if quotes < 0 || decisions < 0 {
		t.Fatalf("labels missing: quotes=%d decisions=%d", quotes, decisions)
	}
	if quotes > decisions {
		t.Error("quotes should precede decisions")
	}
	// Absent corpora contribute nothing, not an empty labeled block.
	if strings.Contains(task.Prompt, "## Curiosity Backlog (existing):") {
		t.Error("missing corpus produced a context block")
	}
}

func TestBuild_TodayLogCapped(t *testing.T) {
	b, j := newBuilder(t)
	j.WriteFile(t, "memory/2026-01-31.md", strings.Repeat("x", todayLogCap+100))

	task, err := b.Build("2026-01-31")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(task.Prompt, "[... truncated for context ...]") {
		t.Error("oversized log not marked truncated")
	}
	if strings.Contains(task.Prompt, strings.Repeat("x", todayLogCap+1)) {
		t.Error("log exceeded its cap")
	}
}

func TestBuild_CorpusCapped(t *testing.T) {
	b, j := newBuilder(t)
	j.WriteFile(t, "memory/2026-01-31.md", "today")
	j.WriteFile(t, "diary/quotes.md", strings.Repeat("q", corpusCap+50))

	task, err := b.Build("2026-01-31")
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(task.Prompt, strings.Repeat("q", corpusCap+1)) {
		t.Error("corpus exceeded its cap")
	}
}

func TestBuild_SectionsSeparated(t *testing.T) {
	b, j := newBuilder(t)
	j.WriteFile(t, "memory/2026-01-31.md", "today")
	j.WriteFile(t, "diary/quotes.md", "a quote")

	task, err := b.Build("2026-01-31")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(task.Prompt, "\n\n---\n\n") {
		t.Error("context sections not separated by rules")
	}
}
