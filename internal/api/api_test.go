package api

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/halstad/chronicle/internal/archive"
	"github.com/halstad/chronicle/internal/journal"
	"github.com/halstad/chronicle/internal/testutil"
)

const sampleEntry = `# 2026-01-31 — A Good Saturday

## Summary
Shipped the feature and had fun doing it.

## Quote of the Day 💬
> "Ship it."
— after the last test went green
`

// testEnv sets up a temp journal, SQLite DB, service, and router.
// An empty authToken means disabled mode.
func testEnv(t *testing.T, authToken string) (*journal.Service, http.Handler) {
	t.Helper()

	j := testutil.NewJournal(t)
	db := testutil.TestDB(t)
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	pol := archive.Policy{Enabled: true, AppendToDaily: true, Format: archive.FormatSummary}

	svc := journal.NewService(j.Store, db, j.DiaryDir, j.MemoryDir, pol, logger)
	router := NewRouter(svc, authToken != "", authToken, nil)
	return svc, router
}

func saveEntry(t *testing.T, router http.Handler, date, content string) {
	t.Helper()
	body, _ := json.Marshal(map[string]string{"content": content})
	req := httptest.NewRequest(http.MethodPut, "/entries/"+date, bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("save status = %d, body = %s", w.Code, w.Body.String())
	}
}

func TestSaveAndGetEntry(t *testing.T) {
	_, router := testEnv(t, "")
	saveEntry(t, router, "2026-01-31", sampleEntry)

	req := httptest.NewRequest(http.MethodGet, "/entries/2026-01-31", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d", w.Code)
	}
	var entry EntryDetail
	_ = json.Unmarshal(w.Body.Bytes(), &entry)
	if entry.Date != "2026-01-31" {
		t.Errorf("date = %q", entry.Date)
	}
	if entry.Title != "A Good Saturday" {
		t.Errorf("title = %q, want A Good Saturday", entry.Title)
	}
	if !strings.Contains(entry.Content, "## Summary") {
		t.Error("raw content missing from response")
	}
}

func TestSaveEntry_InvalidDate(t *testing.T) {
	_, router := testEnv(t, "")
	body, _ := json.Marshal(map[string]string{"content": "x"})
	req := httptest.NewRequest(http.MethodPut, "/entries/2026-13-99", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestSaveEntry_EmptyContent(t *testing.T) {
	_, router := testEnv(t, "")
	body, _ := json.Marshal(map[string]string{"content": ""})
	req := httptest.NewRequest(http.MethodPut, "/entries/2026-01-31", bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestGetEntry_NotFound(t *testing.T) {
	_, router := testEnv(t, "")
	req := httptest.NewRequest(http.MethodGet, "/entries/2099-01-01", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestListEntries(t *testing.T) {
	_, router := testEnv(t, "")
	saveEntry(t, router, "2026-01-31", sampleEntry)
	saveEntry(t, router, "2026-01-30", "# 2026-01-30 — Friday\n")

	req := httptest.NewRequest(http.MethodGet, "/entries", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp EntryListResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Total != 2 || len(resp.Entries) != 2 {
		t.Fatalf("total = %d, entries = %d", resp.Total, len(resp.Entries))
	}
	if resp.Entries[0].Date != "2026-01-30" || resp.Entries[1].Date != "2026-01-31" {
		t.Errorf("entries not in date order: %+v", resp.Entries)
	}
}

func TestDeleteEntry(t *testing.T) {
	_, router := testEnv(t, "")
	saveEntry(t, router, "2026-01-31", sampleEntry)

	req := httptest.NewRequest(http.MethodDelete, "/entries/2026-01-31", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/entries/2026-01-31", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("get after delete = %d, want 404", w.Code)
	}
}

func TestSearch(t *testing.T) {
	_, router := testEnv(t, "")
	saveEntry(t, router, "2026-01-31", sampleEntry)

	req := httptest.NewRequest(http.MethodGet, "/search?q=Shipped", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp SearchResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if len(resp.Results) != 1 || resp.Results[0].Date != "2026-01-31" {
		t.Errorf("results = %+v", resp.Results)
	}

	// Missing query is a client error.
	req = httptest.NewRequest(http.MethodGet, "/search", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing q status = %d, want 400", w.Code)
	}
}

func TestArchiveFlow(t *testing.T) {
	_, router := testEnv(t, "")
	saveEntry(t, router, "2026-01-31", sampleEntry)

	req := httptest.NewRequest(http.MethodPost, "/entries/2026-01-31/archive", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent {
		t.Fatalf("archive status = %d, body = %s", w.Code, w.Body.String())
	}

	req = httptest.NewRequest(http.MethodGet, "/archives/quotes", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("get archive status = %d", w.Code)
	}
	var resp ArchiveResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Topic != "quotes" || !strings.Contains(resp.Content, "### 2026-01-31") {
		t.Errorf("archive response = %+v", resp)
	}
}

func TestGetArchive_UnknownTopic(t *testing.T) {
	_, router := testEnv(t, "")
	req := httptest.NewRequest(http.MethodGet, "/archives/nonsense", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestGetDocument(t *testing.T) {
	_, router := testEnv(t, "")
	saveEntry(t, router, "2026-01-31", sampleEntry)

	req := httptest.NewRequest(http.MethodGet, "/document", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("content type = %q", ct)
	}
	if !strings.Contains(w.Body.String(), `id="entry-1"`) {
		t.Error("document missing entry section")
	}

	// JSON structure variant.
	req = httptest.NewRequest(http.MethodGet, "/document?format=json", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("json status = %d", w.Code)
	}
	var doc struct {
		Cover struct {
			EntryCount int `json:"entry_count"`
		} `json:"cover"`
	}
	_ = json.Unmarshal(w.Body.Bytes(), &doc)
	if doc.Cover.EntryCount != 1 {
		t.Errorf("entry count = %d", doc.Cover.EntryCount)
	}
}

func TestGetDocument_EmptyJournal(t *testing.T) {
	_, router := testEnv(t, "")
	req := httptest.NewRequest(http.MethodGet, "/document", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestGetTask(t *testing.T) {
	_, router := testEnv(t, "")

	// No context at all: 404.
	req := httptest.NewRequest(http.MethodGet, "/task/2026-01-31", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("no-context status = %d, want 404", w.Code)
	}
}

func TestAuth(t *testing.T) {
	_, router := testEnv(t, "secret-token")

	// No token: 401.
	req := httptest.NewRequest(http.MethodGet, "/entries", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("no token status = %d, want 401", w.Code)
	}

	// Wrong token: 401.
	req = httptest.NewRequest(http.MethodGet, "/entries", nil)
	req.Header.Set("Authorization", "Bearer wrong")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("wrong token status = %d, want 401", w.Code)
	}

	// Correct token: 200.
	req = httptest.NewRequest(http.MethodGet, "/entries", nil)
	req.Header.Set("Authorization", "Bearer secret-token")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("valid token status = %d, want 200", w.Code)
	}
}
