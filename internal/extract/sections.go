package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/halstad/chronicle/internal/models"
)

// minSectionRunes is the minimum body length (after trim) for a section
// to count as content. Shorter bodies are placeholder noise like "N/A".
const minSectionRunes = 11

// chronicleFallbackSummary is embedded in the daily memory log when an
// entry carries no recognizable summary at all.
const chronicleFallbackSummary = "Diary entry generated."

// sectionHeaders is the fixed header vocabulary. The text must match the
// authored header exactly (including the glyph); matching is
// case-insensitive.
var sectionHeaders = map[models.Category]string{
	models.CategorySummary:      "Summary",
	models.CategoryProjects:     "Projects Worked On",
	models.CategoryWins:         "Wins 🎉",
	models.CategoryFrustrations: "Frustrations 😤",
	models.CategoryLearnings:    "Learnings 📚",
	models.CategoryEmotional:    "Emotional State",
	models.CategoryInteractions: "Notable Interactions",
	models.CategoryQuote:        "Quote of the Day 💬",
	models.CategoryCuriosity:    "Things I'm Curious About 🔮",
	models.CategoryDecisions:    "Key Decisions Made 🏛️",
	models.CategoryRelationship: "Relationship Notes 🤝",
	models.CategoryTomorrow:     "Tomorrow's Focus",
}

// sectionRes holds one compiled pattern per category, built once at init.
var sectionRes = func() map[models.Category]*regexp.Regexp {
	out := make(map[models.Category]*regexp.Regexp, len(sectionHeaders))
	for cat, header := range sectionHeaders {
		out[cat] = regexp.MustCompile(`(?is)##\s*` + regexp.QuoteMeta(header) + `\s*\n(.+?)(?:\n##|\z)`)
	}
	return out
}()

// strictSummaryRe is the chronicle-integration summary pattern: unlike the
// title chain's summary rule it captures the whole section, not just the
// first paragraph, and matches case-sensitively.
var strictSummaryRe = regexp.MustCompile(`(?s)## Summary\n(.+?)(?:\n##|\z)`)

// strictTitleRe accepts only the canonical dated heading with an em dash,
// the shape the generation template asks for.
var strictTitleRe = regexp.MustCompile(`(?m)^# \d{4}-\d{2}-\d{2} — (.+)$`)

// Section extracts the body of one named category section. ok is false
// when the section is absent or its trimmed body is below the minimum
// content gate.
func Section(raw string, cat models.Category) (body string, ok bool) {
	re, known := sectionRes[cat]
	if !known {
		return "", false
	}
	m := re.FindStringSubmatch(raw)
	if m == nil {
		return "", false
	}
	body = strings.TrimSpace(m[1])
	if utf8.RuneCountInString(body) < minSectionRunes {
		return "", false
	}
	return body, true
}

// Sections extracts every recognized category section with content.
func Sections(raw string) map[models.Category]string {
	out := make(map[models.Category]string)
	for cat := range sectionHeaders {
		if body, ok := Section(raw, cat); ok {
			out[cat] = body
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// StrictTitle extracts the title from the canonical "# YYYY-MM-DD — Title"
// heading, with no fallbacks. Used for the bolded title line of the daily
// chronicle, where a guessed title would be misleading.
func StrictTitle(raw string) (string, bool) {
	m := strictTitleRe.FindStringSubmatch(raw)
	if m == nil {
		return "", false
	}
	return strings.TrimSpace(m[1]), true
}

// ChronicleSummary returns the text embedded in the daily memory log for
// format=summary: the full Summary section when present, otherwise the
// first body line after the title heading, otherwise a fixed fallback.
func ChronicleSummary(raw string) string {
	if m := strictSummaryRe.FindStringSubmatch(raw); m != nil {
		return strings.TrimSpace(m[1])
	}

	lines := strings.Split(raw, "\n")
	for i, line := range lines {
		if !strings.HasPrefix(line, "#") {
			continue
		}
		// Scan the few lines after the heading for prose.
		end := i + 5
		if end > len(lines) {
			end = len(lines)
		}
		for j := i + 1; j < end; j++ {
			s := strings.TrimSpace(lines[j])
			if s != "" && !strings.HasPrefix(s, "#") {
				return s
			}
		}
	}
	return chronicleFallbackSummary
}
