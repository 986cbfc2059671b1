// Package compile builds the ordered document representation of the
// journal: cover metadata, table of contents, per-entry sections, and
// colophon. The result is handed to an external layout engine; this
// package decides structure, not pagination.
package compile

import (
	"bytes"
	"fmt"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/halstad/chronicle/internal/apperr"
	"github.com/halstad/chronicle/internal/extract"
	"github.com/halstad/chronicle/internal/models"
)

const (
	coverTitle    = "Agent Chronicle"
	coverSubtitle = "A Digital Mind's Journal"
	colophonText  = "Compiled from the daily journal\nCrafted with care by Chronicle"
)

// BodyRenderer converts an entry's markdown into the document subtree
// embedded in its compiled section. The compiler only decides what
// surrounds that subtree.
type BodyRenderer interface {
	Render(markdown string) (string, error)
}

// GoldmarkRenderer is the default BodyRenderer.
type GoldmarkRenderer struct {
	md goldmark.Markdown
}

// NewGoldmarkRenderer creates a renderer with tables, strikethrough, and
// smart punctuation enabled.
func NewGoldmarkRenderer() *GoldmarkRenderer {
	return &GoldmarkRenderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM, extension.Typographer),
		),
	}
}

// Render converts markdown source to an HTML fragment.
func (r *GoldmarkRenderer) Render(src string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("compile: convert markdown: %w", err)
	}
	return buf.String(), nil
}

// Compiler assembles CompiledDocuments from ordered entry sets.
type Compiler struct {
	renderer BodyRenderer
	now      func() time.Time
}

// New creates a Compiler. A nil renderer selects goldmark; a nil clock
// selects time.Now.
func New(renderer BodyRenderer, now func() time.Time) *Compiler {
	if renderer == nil {
		renderer = NewGoldmarkRenderer()
	}
	if now == nil {
		now = time.Now
	}
	return &Compiler{renderer: renderer, now: now}
}

// Compile builds the document from entries, which must already be in
// ascending date order (the locator's contract). An empty entry set is
// the distinct "no document" outcome, not a zero-page document.
func (c *Compiler) Compile(entries []*models.DiaryEntry) (*models.CompiledDocument, error) {
	if len(entries) == 0 {
		return nil, apperr.ErrNoEntries
	}

	doc := &models.CompiledDocument{
		Cover: models.Cover{
			Title:      coverTitle,
			Subtitle:   coverSubtitle,
			DateRange:  dateRangeLabel(entries[0].Date, entries[len(entries)-1].Date),
			EntryCount: len(entries),
		},
	}

	for i, e := range entries {
		anchor := fmt.Sprintf("entry-%d", i+1)
		title := extract.StripEmoji(e.Title)

		doc.TOC = append(doc.TOC, models.TOCItem{
			Date:   e.Date,
			Anchor: anchor,
			Title:  title,
		})

		weekday, monthDay, year := displayDate(e.Date)
		body, err := c.renderer.Render(e.Raw)
		if err != nil {
			return nil, fmt.Errorf("compile: entry %s: %w", e.Date, err)
		}

		doc.Entries = append(doc.Entries, models.EntrySection{
			Date:      e.Date,
			Anchor:    anchor,
			Weekday:   weekday,
			MonthDay:  monthDay,
			Year:      year,
			Title:     title,
			Highlight: e.Highlight,
			BodyHTML:  body,
		})
	}

	doc.Colophon = models.Colophon{
		Text:        colophonText,
		GeneratedAt: c.now().Format("January 02, 2006 at 15:04"),
	}
	return doc, nil
}

// dateRangeLabel derives the cover's span text. A single entry shows its
// full date; a same-year span elides the repeated year; a multi-year span
// collapses to month/year endpoints.
func dateRangeLabel(first, last string) string {
	fd, errF := time.Parse("2006-01-02", first)
	ld, errL := time.Parse("2006-01-02", last)
	if errF != nil || errL != nil {
		return first + " → " + last
	}
	switch {
	case first == last:
		return fd.Format("January 02, 2006")
	case fd.Year() == ld.Year():
		return fd.Format("January 02") + " – " + ld.Format("January 02, 2006")
	default:
		return fd.Format("January 2006") + " – " + ld.Format("January 2006")
	}
}

// displayDate splits an ISO date into the weekday/month-day/year triple
// shown in an entry header. An unparsable date keeps its raw string as
// the middle element.
func displayDate(date string) (weekday, monthDay, year string) {
	dt, err := time.Parse("2006-01-02", date)
	if err != nil {
		return "", date, ""
	}
	return dt.Weekday().String(), dt.Format("January 02"), dt.Format("2006")
}
