// Package dashboard composes rendered charts into a single HTML page.
package dashboard

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"github.com/KaramelBytes/heartviz/internal/chart"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.New("page.html").Funcs(template.FuncMap{
	"pct": func(part, whole int) string {
		if whole == 0 {
			return "0%"
		}
		return fmt.Sprintf("%.1f%%", 100*float64(part)/float64(whole))
	},
}).ParseFS(templateFS, "templates/page.html"))

// Section is one chart on the page.
type Section struct {
	ID        string
	Title     string
	SVG       template.HTML
	TableHTML template.HTML
	Included  int
	Excluded  int
}

// Page is the dashboard document.
type Page struct {
	Title    string
	Source   string
	Rows     int
	Warnings []string
	Sections []Section
	Sidebar  Sidebar
	// Error replaces the sections when the data could not be loaded.
	Error string
	// Link builds the href of a chart's SVG; nil links to "<id>.svg".
	Link func(id string) string
}

// NewSection wraps a rendered chart. The SVG is trusted output of
// chart.Render; the table is Markdown converted to HTML.
func NewSection(r chart.Result) Section {
	return Section{
		ID:        r.Data.ID,
		Title:     r.Data.Title,
		SVG:       template.HTML(stripProlog(string(r.SVG))),
		TableHTML: template.HTML(MarkdownHTML(r.Data.Markdown())),
		Included:  r.Data.Included,
		Excluded:  r.Data.Excluded,
	}
}

// MarkdownHTML converts Markdown with table support to HTML.
func MarkdownHTML(md string) string {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	r := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags | mdhtml.SkipHTML})
	return string(markdown.ToHTML([]byte(md), p, r))
}

// stripProlog drops the XML declaration so the SVG can be inlined.
func stripProlog(s string) string {
	if i := strings.Index(s, "<svg"); i > 0 {
		return s[i:]
	}
	return s
}

type view struct {
	*Page
	SidebarClass string
	SidebarState string
}

// Write renders the page.
func Write(w io.Writer, p *Page) error {
	if p.Link == nil {
		p.Link = func(id string) string { return id + ".svg" }
	}
	if err := pageTemplate.Execute(w, view{Page: p, SidebarClass: p.Sidebar.Class(), SidebarState: p.Sidebar.State()}); err != nil {
		return fmt.Errorf("render dashboard: %w", err)
	}
	return nil
}
