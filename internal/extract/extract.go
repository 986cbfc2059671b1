// Package extract recovers the structured view of a diary entry from
// loosely formatted markdown. Every extraction is an ordered chain of
// named rules, most specific first; absence of a value is a defined
// outcome, never an error.
package extract

import (
	"regexp"
	"strings"
	"time"

	"github.com/halstad/chronicle/internal/models"
)

const (
	titleMaxRunes     = 60
	highlightMaxRunes = 200
	ellipsis          = "..."

	// genericTitle is the last-resort title when the entry date itself
	// cannot be parsed.
	genericTitle = "Journal Entry"
)

var (
	bareDateRe  = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
	punctOnlyRe = regexp.MustCompile(`^[\s—–-]*$`)

	// "# 📔 Cami's Diary - Creative Title" and variants.
	diaryHeadingRe = regexp.MustCompile(`(?im)^#\s*(?:📔\s*)?(?:\w+'?s?\s+)?diary\s*[-—–]\s*(.+)$`)
	// "# 2026-01-31 — Creative Title".
	datedHeadingRe = regexp.MustCompile(`(?m)^#\s+\d{4}-\d{2}-\d{2}\s*[—–-]\s*([^#\n]+)$`)

	summaryBlockRe = regexp.MustCompile(`(?is)##\s*summary\s*\n+(.+?)(?:\n\n|\n##|\z)`)
	sentenceEndRe  = regexp.MustCompile(`[.!?]`)

	highlightRe = regexp.MustCompile(`(?is)##\s*(?:🌟\s*)?today'?s?\s*highlight\s*\n+(.+?)(?:\n##|\z)`)
	boldRe      = regexp.MustCompile(`\*\*(.+?)\*\*`)

	quoteRe     = regexp.MustCompile(`(?is)##\s*quote.*?\n+>\s*(.+?)(?:\n\n|\z)`)
	quoteContRe = regexp.MustCompile(`\n>\s*`)

	emojiRe = regexp.MustCompile(`[\x{1F300}-\x{1F9FF}]`)
)

// titleRule is one step of the title fallback chain. Rules run in order;
// the first one that yields a title wins.
type titleRule struct {
	name string
	fn   func(raw, date string) (string, bool)
}

// titleChain implements the specificity-first title policy: explicit
// authored headings outrank structural inference, which outranks the
// content-derived summary guess, which outranks the pure-date fallback.
var titleChain = []titleRule{
	{name: "diary-heading", fn: titleFromDiaryHeading},
	{name: "dated-heading", fn: titleFromDatedHeading},
	{name: "summary-sentence", fn: titleFromSummary},
	{name: "weekday", fn: titleFromWeekday},
}

// Title resolves the display title of an entry from its raw text and date.
func Title(raw, date string) string {
	for _, r := range titleChain {
		if t, ok := r.fn(raw, date); ok {
			return t
		}
	}
	return genericTitle
}

func titleFromDiaryHeading(raw, _ string) (string, bool) {
	m := diaryHeadingRe.FindStringSubmatch(raw)
	if m == nil {
		return "", false
	}
	title := strings.TrimSpace(m[1])
	// A heading that just repeats the date is no title at all.
	if bareDateRe.MatchString(title) {
		return "", false
	}
	return title, true
}

func titleFromDatedHeading(raw, _ string) (string, bool) {
	m := datedHeadingRe.FindStringSubmatch(raw)
	if m == nil {
		return "", false
	}
	title := strings.TrimSpace(m[1])
	if title == "" || punctOnlyRe.MatchString(title) {
		return "", false
	}
	return title, true
}

func titleFromSummary(raw, _ string) (string, bool) {
	m := summaryBlockRe.FindStringSubmatch(raw)
	if m == nil {
		return "", false
	}
	first := strings.TrimSpace(sentenceEndRe.Split(strings.TrimSpace(m[1]), -1)[0])
	if first == "" {
		return "", false
	}
	return truncate(first, titleMaxRunes), true
}

func titleFromWeekday(_, date string) (string, bool) {
	dt, err := time.Parse("2006-01-02", date)
	if err != nil {
		return "", false
	}
	return dt.Weekday().String() + "'s Reflections", true
}

// Highlight returns the first paragraph of the "Today's Highlight"
// section, bold markers stripped and truncated to 200 runes. The empty
// string means the entry has no highlight.
func Highlight(raw string) string {
	m := highlightRe.FindStringSubmatch(raw)
	if m == nil {
		return ""
	}
	para, _, _ := strings.Cut(strings.TrimSpace(m[1]), "\n\n")
	para = boldRe.ReplaceAllString(para, "$1")
	return truncate(para, highlightMaxRunes)
}

// QuoteOfDay returns the block-quoted line(s) of the Quote section joined
// into a single line, or the empty string when absent.
func QuoteOfDay(raw string) string {
	m := quoteRe.FindStringSubmatch(raw)
	if m == nil {
		return ""
	}
	return quoteContRe.ReplaceAllString(strings.TrimSpace(m[1]), " ")
}

// StripEmoji removes decorative glyphs from a title for use in navigation
// labels. If stripping leaves nothing, the original is kept.
func StripEmoji(title string) string {
	clean := strings.TrimSpace(emojiRe.ReplaceAllString(title, ""))
	if clean == "" {
		return title
	}
	return clean
}

// Entry derives the full structured view of a diary entry.
func Entry(raw, date string) *models.DiaryEntry {
	return &models.DiaryEntry{
		Date:       date,
		Raw:        raw,
		Title:      Title(raw, date),
		Highlight:  Highlight(raw),
		QuoteOfDay: QuoteOfDay(raw),
		Sections:   Sections(raw),
	}
}

// truncate shortens s to at most max runes, marking the cut with an
// ellipsis that counts toward the limit.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-len(ellipsis)]) + ellipsis
}
