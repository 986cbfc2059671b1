// Package archive accumulates extracted entry fragments into the
// long-lived per-topic corpora and annotates the daily memory log.
package archive

import (
	"fmt"
	"log/slog"
	"path"
	"strings"

	"github.com/halstad/chronicle/internal/apperr"
	"github.com/halstad/chronicle/internal/extract"
	"github.com/halstad/chronicle/internal/models"
	"github.com/halstad/chronicle/internal/storage"
)

// Chronicle formats.
const (
	FormatLink    = "link"
	FormatFull    = "full"
	FormatSummary = "summary"
)

// chronicleMarker is the unique header that makes the daily-memory append
// idempotent: one chronicle block per date, ever.
const chronicleMarker = "## 📜 Daily Chronicle"

// Policy mirrors the memory-integration configuration block.
type Policy struct {
	Enabled       bool
	AppendToDaily bool
	Format        string // link | full | summary
}

// corpus binds a category to its persistent file and first-write preamble.
type corpus struct {
	Topic    string
	Category models.Category
	Filename string
	Preamble string
}

// The four knowledge corpora. Preambles match the files as they have
// always been written; changing them would fork existing journals.
var corpora = []corpus{
	{
		Topic:    "quotes",
		Category: models.CategoryQuote,
		Filename: "quotes.md",
		Preamble: "# Quote Hall of Fame 💬\n\nMemorable quotes from my human.\n\n---\n\n",
	},
	{
		Topic:    "curiosity",
		Category: models.CategoryCuriosity,
		Filename: "curiosity.md",
		Preamble: "# Curiosity Backlog 🔮\n\nThings I want to explore.\n\n---\n\n## Active\n\n",
	},
	{
		Topic:    "decisions",
		Category: models.CategoryDecisions,
		Filename: "decisions.md",
		Preamble: "# Decision Archaeology 🏛️\n\nJudgment calls worth remembering.\n\n---\n\n",
	},
	{
		Topic:    "relationship",
		Category: models.CategoryRelationship,
		Filename: "relationship.md",
		Preamble: "# Relationship Evolution 🤝\n\nHow my dynamic with my human evolves.\n\n---\n\n",
	},
}

// Topics returns the names of the knowledge corpora.
func Topics() []string {
	out := make([]string, len(corpora))
	for i, c := range corpora {
		out[i] = c.Topic
	}
	return out
}

// Archiver appends extracted fragments to the corpus files and the daily
// memory log. Writes are plain appends with no locking: the journal
// assumes a single writer process (caller-enforced).
type Archiver struct {
	store     storage.Provider
	diaryDir  string // diary directory, relative to the journal root
	memoryDir string // memory directory, relative to the journal root
	logger    *slog.Logger
}

// New creates an Archiver over the given journal store.
func New(store storage.Provider, diaryDir, memoryDir string, logger *slog.Logger) *Archiver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Archiver{store: store, diaryDir: diaryDir, memoryDir: memoryDir, logger: logger}
}

// Archive runs the full archiving pass for one entry: corpus appends
// first, then the daily chronicle.
func (a *Archiver) Archive(raw, date string, pol Policy) error {
	if err := a.ArchiveCorpora(raw, date); err != nil {
		return err
	}
	return a.AppendChronicle(raw, date, pol)
}

// ArchiveCorpora extracts the four category fragments from raw and
// appends each present one as a dated subsection of its corpus, creating
// the file with its preamble on first use.
//
// There is deliberately no duplicate detection here: running twice for
// the same date appends twice. At-most-once invocation per date is the
// caller's contract.
func (a *Archiver) ArchiveCorpora(raw, date string) error {
	for _, c := range corpora {
		body, ok := extract.Section(raw, c.Category)
		if !ok {
			continue
		}
		p := path.Join(a.diaryDir, c.Filename)
		exists, err := a.store.Exists(p)
		if err != nil {
			return err
		}
		if !exists {
			if err := a.store.Append(p, []byte(c.Preamble)); err != nil {
				return err
			}
		}
		frag := fmt.Sprintf("\n### %s\n%s\n", date, body)
		if err := a.store.Append(p, []byte(frag)); err != nil {
			return err
		}
		a.logger.Debug("archive: appended fragment",
			slog.String("topic", c.Topic), slog.String("date", date))
	}
	return nil
}

// AppendChronicle adds the Daily Chronicle block to the date's memory
// log according to the integration policy. Unlike the corpus appends
// this is idempotent: an existing chronicle block makes it a no-op.
func (a *Archiver) AppendChronicle(raw, date string, pol Policy) error {
	if !pol.Enabled || !pol.AppendToDaily {
		return nil
	}

	logPath := path.Join(a.memoryDir, date+".md")

	var block string
	switch pol.Format {
	case FormatLink:
		block = fmt.Sprintf("\n\n%s\n[View diary entry](%s)\n",
			chronicleMarker, path.Join(a.diaryDir, date+".md"))
	case FormatFull:
		block = fmt.Sprintf("\n\n%s\n%s\n", chronicleMarker, raw)
	default: // summary
		var titleLine string
		if title, ok := extract.StrictTitle(raw); ok {
			titleLine = fmt.Sprintf("**%s**\n\n", title)
		}
		block = fmt.Sprintf("\n\n%s\n%s%s\n", chronicleMarker, titleLine, extract.ChronicleSummary(raw))
	}

	exists, err := a.store.Exists(logPath)
	if err != nil {
		return err
	}
	if exists {
		existing, err := a.store.Read(logPath)
		if err != nil {
			return err
		}
		if strings.Contains(string(existing), chronicleMarker) {
			a.logger.Debug("archive: chronicle already present", slog.String("date", date))
			return nil
		}
		return a.store.Append(logPath, []byte(block))
	}

	header := fmt.Sprintf("# %s\n\n*Daily memory log*\n", date)
	return a.store.Append(logPath, []byte(header+block))
}

// ReadTopic returns the raw contents of one knowledge corpus.
func (a *Archiver) ReadTopic(topic string) ([]byte, error) {
	for _, c := range corpora {
		if c.Topic != topic {
			continue
		}
		p := path.Join(a.diaryDir, c.Filename)
		exists, err := a.store.Exists(p)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, fmt.Errorf("corpus %s: %w", topic, apperr.ErrNotFound)
		}
		return a.store.Read(p)
	}
	return nil, fmt.Errorf("unknown topic %q: %w", topic, apperr.ErrNotFound)
}
