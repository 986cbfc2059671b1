// Package models defines the domain types for Chronicle.
package models

import "time"

// Category identifies one of the recognized "##" sections of a diary entry.
type Category string

// The fixed section vocabulary. Header text (including glyphs) lives in
// the extract package; these are the stable keys used across the core.
const (
	CategorySummary      Category = "summary"
	CategoryProjects     Category = "projects"
	CategoryWins         Category = "wins"
	CategoryFrustrations Category = "frustrations"
	CategoryLearnings    Category = "learnings"
	CategoryEmotional    Category = "emotional_state"
	CategoryInteractions Category = "interactions"
	CategoryQuote        Category = "quote"
	CategoryCuriosity    Category = "curiosity"
	CategoryDecisions    Category = "decisions"
	CategoryRelationship Category = "relationship"
	CategoryTomorrow     Category = "tomorrow_focus"
)

// DiaryEntry is one dated journal document: the raw markdown as stored
// on disk plus the structured view derived from it.
type DiaryEntry struct {
	Date       string              `json:"date"` // ISO YYYY-MM-DD, unique per entry
	Raw        string              `json:"-"`
	Title      string              `json:"title"`
	Highlight  string              `json:"highlight,omitempty"`
	QuoteOfDay string              `json:"quote_of_day,omitempty"`
	Sections   map[Category]string `json:"sections,omitempty"`
}

// FileInfo is a lightweight representation returned by storage list operations.
type FileInfo struct {
	Path      string    `json:"path"`
	Checksum  string    `json:"checksum"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Cover holds the metadata rendered on the compiled document's cover page.
type Cover struct {
	Title      string `json:"title"`
	Subtitle   string `json:"subtitle"`
	DateRange  string `json:"date_range"`
	EntryCount int    `json:"entry_count"`
}

// TOCItem is one row of the table of contents. Anchor is derived from the
// entry's 1-based position and links the TOC to its entry section.
type TOCItem struct {
	Date   string `json:"date"`
	Anchor string `json:"anchor"`
	Title  string `json:"title"`
}

// EntrySection is one entry as it appears in the compiled document.
type EntrySection struct {
	Date      string `json:"date"`
	Anchor    string `json:"anchor"`
	Weekday   string `json:"weekday"`
	MonthDay  string `json:"month_day"`
	Year      string `json:"year"`
	Title     string `json:"title"`
	Highlight string `json:"highlight,omitempty"`
	BodyHTML  string `json:"-"`
}

// Colophon is the fixed closing block of the compiled document.
type Colophon struct {
	Text        string `json:"text"`
	GeneratedAt string `json:"generated_at"`
}

// CompiledDocument is the transient, fully ordered representation of the
// journal handed to the layout engine. It is rebuilt wholesale on every
// compilation and has no identity of its own.
type CompiledDocument struct {
	Cover    Cover          `json:"cover"`
	TOC      []TOCItem      `json:"toc"`
	Entries  []EntrySection `json:"entries"`
	Colophon Colophon       `json:"colophon"`
}

// GenerationTask is the payload handed to the external writing agent.
// It is the sole contract between the core and the generation side.
type GenerationTask struct {
	System    string `json:"system"`
	Prompt    string `json:"prompt"`
	MaxTokens int    `json:"max_tokens"`
}
