package compile

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/halstad/chronicle/internal/models"
)

// documentTemplate is the class-structured skeleton consumed by the
// layout engine. Styling is intentionally absent.
const documentTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8"/>
<title>{{.Cover.Title}}</title>
</head>
<body>
<section class="cover">
<div class="cover-ornament-top">◆ ◆ ◆</div>
<h1 class="cover-title">{{.Cover.Title}}</h1>
<div class="cover-subtitle">{{.Cover.Subtitle}}</div>
<div class="cover-date-range">{{.Cover.DateRange}}</div>
<div class="cover-entry-count">{{.Cover.EntryCount}} {{.EntryWord}}</div>
<div class="cover-ornament-bottom">◇ ◇ ◇</div>
</section>
<section class="toc">
<header class="toc-header">
<h2 class="toc-title">Contents</h2>
<div class="toc-subtitle">Journal Entries</div>
</header>
<ul class="toc-list">
{{range .TOC}}<li class="toc-item"><span class="toc-date">{{.Date}}</span><span class="toc-entry-title"><a href="#{{.Anchor}}">{{.Title}}</a></span></li>
{{end}}</ul>
</section>
{{range .Entries}}<section class="entry" id="{{.Anchor}}">
<header class="entry-header">
<div class="entry-weekday">{{.Weekday}}</div>
<h1 class="entry-date-main">{{.MonthDay}}</h1>
<div class="entry-year">{{.Year}}</div>
<div class="entry-title">{{.Title}}</div>
</header>
{{if .Highlight}}<div class="entry-highlight">{{.Highlight}}</div>
{{end}}<div class="entry-content">
{{.Body}}</div>
<footer class="entry-footer"><div class="entry-footer-ornament">✦ ✦ ✦</div></footer>
</section>
{{end}}<section class="colophon">
<div class="colophon-ornament">◆ ◆ ◆</div>
<div class="colophon-text">{{.Colophon.Text}}</div>
<div class="colophon-generated">Generated on {{.Colophon.GeneratedAt}}</div>
</section>
</body>
</html>
`

var docTmpl = template.Must(template.New("document").Parse(documentTemplate))

// entryView wraps an EntrySection so the already-rendered body fragment
// passes through unescaped while every authored string stays escaped.
type entryView struct {
	models.EntrySection
	Body template.HTML
}

type documentView struct {
	Cover     models.Cover
	EntryWord string
	TOC       []models.TOCItem
	Entries   []entryView
	Colophon  models.Colophon
}

// RenderHTML assembles a compiled document into the single HTML artifact
// handed to the layout engine.
func RenderHTML(doc *models.CompiledDocument) (string, error) {
	view := documentView{
		Cover:    doc.Cover,
		Colophon: doc.Colophon,
		TOC:      doc.TOC,
	}
	view.EntryWord = "Entries"
	if doc.Cover.EntryCount == 1 {
		view.EntryWord = "Entry"
	}
	for _, e := range doc.Entries {
		view.Entries = append(view.Entries, entryView{EntrySection: e, Body: template.HTML(e.BodyHTML)})
	}

	var buf bytes.Buffer
	if err := docTmpl.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("compile: render document: %w", err)
	}
	return buf.String(), nil
}
