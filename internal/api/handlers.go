package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/halstad/chronicle/internal/apperr"
	"github.com/halstad/chronicle/internal/journal"
)

// Handler holds API route handlers.
type Handler struct {
	svc *journal.Service
}

// NewHandler creates a new Handler.
func NewHandler(svc *journal.Service) *Handler {
	return &Handler{svc: svc}
}

// ListEntries handles GET /api/entries.
//
//	@Summary		List journal entries in date order
//	@Tags			entries
//	@Produce		json
//	@Success		200	{object}	EntryListResponse
//	@Security		BearerAuth
//	@Router			/entries [get]
func (h *Handler) ListEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := h.svc.Entries(r.Context())
	if err != nil {
		slog.Error("list entries failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	items := make([]EntryListItem, len(entries))
	for i, e := range entries {
		items[i] = EntryListItem{Date: e.Date, Title: e.Title, Highlight: e.Highlight}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"entries": items,
		"total":   len(items),
	})
}

// GetEntry handles GET /api/entries/{date}.
//
//	@Summary		Get a single entry by date
//	@Tags			entries
//	@Produce		json
//	@Param			date	path		string	true	"Entry date (YYYY-MM-DD)"
//	@Success		200		{object}	EntryDetail
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/entries/{date} [get]
func (h *Handler) GetEntry(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")
	entry, err := h.svc.Entry(r.Context(), date)
	if err != nil {
		switch {
		case errors.Is(err, apperr.ErrInvalidDate):
			writeJSON(w, http.StatusBadRequest, errorBody("invalid date"))
		case errors.Is(err, apperr.ErrNotFound):
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		default:
			slog.Error("get entry failed", slog.String("date", date), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	writeJSON(w, http.StatusOK, EntryDetail{DiaryEntry: entry, Content: entry.Raw})
}

// SaveEntry handles PUT /api/entries/{date}.
//
//	@Summary		Save an entry (create or replace)
//	@Tags			entries
//	@Accept			json
//	@Produce		json
//	@Param			date	path		string				true	"Entry date (YYYY-MM-DD)"
//	@Param			body	body		SaveEntryRequest	true	"Entry content"
//	@Success		200		{object}	EntryDetail
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/entries/{date} [put]
func (h *Handler) SaveEntry(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 10<<20)
	date := chi.URLParam(r, "date")

	var req SaveEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if req.Content == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("content is required"))
		return
	}

	entry, err := h.svc.SaveEntry(r.Context(), date, []byte(req.Content))
	if err != nil {
		if errors.Is(err, apperr.ErrInvalidDate) {
			writeJSON(w, http.StatusBadRequest, errorBody("invalid date"))
		} else {
			slog.Error("save entry failed", slog.String("date", date), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	writeJSON(w, http.StatusOK, EntryDetail{DiaryEntry: entry, Content: entry.Raw})
}

// DeleteEntry handles DELETE /api/entries/{date}.
//
//	@Summary		Delete an entry
//	@Tags			entries
//	@Param			date	path	string	true	"Entry date (YYYY-MM-DD)"
//	@Success		204		"Entry deleted"
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/entries/{date} [delete]
func (h *Handler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")
	if err := h.svc.DeleteEntry(r.Context(), date); err != nil {
		if errors.Is(err, apperr.ErrInvalidDate) {
			writeJSON(w, http.StatusBadRequest, errorBody("invalid date"))
			return
		}
		slog.Error("delete entry failed", slog.String("date", date), slog.String("error", err.Error()))
		writeJSON(w, http.StatusNotFound, errorBody("not found"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ArchiveEntry handles POST /api/entries/{date}/archive.
//
//	@Summary		Run the archiving pass for one entry
//	@Tags			archives
//	@Param			date	path	string	true	"Entry date (YYYY-MM-DD)"
//	@Success		204		"Entry archived"
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/entries/{date}/archive [post]
func (h *Handler) ArchiveEntry(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")
	if err := h.svc.Archive(r.Context(), date); err != nil {
		switch {
		case errors.Is(err, apperr.ErrInvalidDate):
			writeJSON(w, http.StatusBadRequest, errorBody("invalid date"))
		case errors.Is(err, apperr.ErrNotFound):
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		default:
			slog.Error("archive entry failed", slog.String("date", date), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetArchive handles GET /api/archives/{topic}.
//
//	@Summary		Read one knowledge corpus
//	@Tags			archives
//	@Produce		json
//	@Param			topic	path		string	true	"Corpus topic"	Enums(quotes, curiosity, decisions, relationship)
//	@Success		200		{object}	ArchiveResponse
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/archives/{topic} [get]
func (h *Handler) GetArchive(w http.ResponseWriter, r *http.Request) {
	topic := chi.URLParam(r, "topic")
	data, err := h.svc.ReadArchive(r.Context(), topic)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorBody("not found"))
		} else {
			slog.Error("read archive failed", slog.String("topic", topic), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	writeJSON(w, http.StatusOK, ArchiveResponse{Topic: topic, Content: string(data)})
}

// Search handles GET /api/search.
//
//	@Summary		Full-text search across entries
//	@Tags			search
//	@Produce		json
//	@Param			q		query		string	true	"Search query"
//	@Param			limit	query		int		false	"Max results"
//	@Success		200		{object}	SearchResponse
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/search [get]
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("query parameter 'q' is required"))
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	results, err := h.svc.Search(r.Context(), q, limit)
	if err != nil {
		slog.Error("search failed", slog.String("query", q), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	out := make([]SearchResult, len(results))
	for i, res := range results {
		out[i] = SearchResult{Date: res.Date, Title: res.Title, Snippet: res.Snippet}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"results": out,
	})
}

// GetDocument handles GET /api/document.
//
// The default response is the printable HTML artifact; format=json
// returns the compiled structure instead.
//
//	@Summary		Compile the journal into its document form
//	@Tags			document
//	@Produce		html
//	@Param			format	query		string	false	"Response format"	Enums(html, json)
//	@Success		200		{string}	string	"Compiled document"
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/document [get]
func (h *Handler) GetDocument(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("format") == "json" {
		doc, err := h.svc.Compile(r.Context())
		if err != nil {
			h.writeCompileError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, doc)
		return
	}

	html, err := h.svc.CompileHTML(r.Context())
	if err != nil {
		h.writeCompileError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(html))
}

func (h *Handler) writeCompileError(w http.ResponseWriter, err error) {
	if errors.Is(err, apperr.ErrNoEntries) {
		writeJSON(w, http.StatusNotFound, errorBody("no journal entries"))
		return
	}
	slog.Error("compile failed", slog.String("error", err.Error()))
	writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
}

// GetTask handles GET /api/task/{date}.
//
//	@Summary		Build the generation payload for a date
//	@Tags			task
//	@Produce		json
//	@Param			date	path		string	true	"Entry date (YYYY-MM-DD)"
//	@Success		200		{object}	TaskResponse
//	@Failure		404		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/task/{date} [get]
func (h *Handler) GetTask(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")
	task, err := h.svc.BuildTask(r.Context(), date)
	if err != nil {
		switch {
		case errors.Is(err, apperr.ErrInvalidDate):
			writeJSON(w, http.StatusBadRequest, errorBody("invalid date"))
		case errors.Is(err, apperr.ErrNoContext):
			writeJSON(w, http.StatusNotFound, errorBody("no context available"))
		default:
			slog.Error("build task failed", slog.String("date", date), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	writeJSON(w, http.StatusOK, task)
}
