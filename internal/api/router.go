package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/halstad/chronicle/internal/journal"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
func NewRouter(svc *journal.Service, authEnabled bool, token string, sseHandler http.Handler) chi.Router {
	h := NewHandler(svc)

	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Entries.
	r.Get("/entries", h.ListEntries)
	r.Get("/entries/{date}", h.GetEntry)
	r.Put("/entries/{date}", h.SaveEntry)
	r.Delete("/entries/{date}", h.DeleteEntry)
	r.Post("/entries/{date}/archive", h.ArchiveEntry)

	// Knowledge corpora.
	r.Get("/archives/{topic}", h.GetArchive)

	// Search.
	r.Get("/search", h.Search)

	// Compiled document.
	r.Get("/document", h.GetDocument)

	// Generation payload.
	r.Get("/task/{date}", h.GetTask)

	// SSE endpoint (protected by same auth middleware).
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
