package api

import (
	"github.com/halstad/chronicle/internal/models"
)

// SaveEntryRequest is the request body for saving an entry.
type SaveEntryRequest struct {
	Content string `json:"content" example:"# 2026-01-31 — A Good Day\n..." validate:"required"`
}

// EntryDetail is the full entry response: the structured view plus the
// raw markdown as stored on disk.
type EntryDetail struct {
	*models.DiaryEntry
	Content string `json:"content"`
}

// EntryListItem is a lightweight item in a list response.
type EntryListItem struct {
	Date      string `json:"date" example:"2026-01-31" validate:"required"`
	Title     string `json:"title" example:"A Good Saturday"`
	Highlight string `json:"highlight,omitempty"`
}

// EntryListResponse wraps entry listings.
type EntryListResponse struct {
	Entries []EntryListItem `json:"entries" validate:"required"`
	Total   int             `json:"total" example:"42" validate:"required"`
}

// SearchResult is a single search hit in the API response.
type SearchResult struct {
	Date    string `json:"date" example:"2026-01-31" validate:"required"`
	Title   string `json:"title" example:"A Good Saturday" validate:"required"`
	Snippet string `json:"snippet" example:"...matched text..." validate:"required"`
}

// SearchResponse wraps search results.
type SearchResponse struct {
	Results []SearchResult `json:"results" validate:"required"`
}

// ArchiveResponse returns one knowledge corpus.
type ArchiveResponse struct {
	Topic   string `json:"topic" example:"quotes" validate:"required"`
	Content string `json:"content" validate:"required"`
}

// TaskResponse is the generation payload (aliased from the domain layer).
type TaskResponse = models.GenerationTask
