package web

import (
	"html/template"
	"io"

	"github.com/desertthunder/moodboard/internal/models"
	"github.com/desertthunder/moodboard/internal/players"
)

// Page is the view model for the board page.
type Page struct {
	Title      string
	Categories []string
	Active     string
	Query      string
	Cards      []Card
	// Total counts every item on the board, not only the filtered cards.
	Total int
	Error string
}

// Filters lists the category filter options, "All" first.
func (p Page) Filters() []string {
	return append([]string{models.AllCategories}, p.Categories...)
}

// IsActive reports whether name is the selected category filter.
func (p Page) IsActive(name string) bool {
	if p.Active == "" {
		return name == models.AllCategories
	}
	return p.Active == name
}

// Scripts returns the provider scripts the cards need, each once, in card order.
func (p Page) Scripts() []players.Script {
	reg := players.NewScriptRegistry()
	for _, c := range p.Cards {
		if c.Script != nil {
			reg.Ensure(nil, *c.Script)
		}
	}
	return reg.Scripts()
}

// NewPage builds a page for items, assigning each card a fresh mount point.
func NewPage(categories []string, items []*models.Item, active, query string, total int) Page {
	cards := make([]Card, 0, len(items))
	for _, it := range items {
		cards = append(cards, NewCard(it, models.NewMountPoint()))
	}
	return Page{
		Title:      "Moodboard",
		Categories: categories,
		Active:     active,
		Query:      query,
		Cards:      cards,
		Total:      total,
	}
}

var pageTmpl = template.Must(template.New("page").Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<style>
body{font-family:system-ui,sans-serif;margin:0;background:#111;color:#eee}
header,main{max-width:1200px;margin:0 auto;padding:1rem}
.grid{display:grid;grid-template-columns:repeat(auto-fill,minmax(320px,1fr));gap:1rem}
.card{background:#1c1c1c;border-radius:8px;overflow:hidden}
.media iframe,.media img,.media video{width:100%;aspect-ratio:16/9;border:0;display:block}
.media-tiktok iframe{aspect-ratio:9/16}
.content{padding:.75rem}
.tag{background:#333;border-radius:4px;padding:0 .4rem;margin-right:.5rem}
.filters a{margin-right:.5rem;color:#aaa}
.filters a.active{color:#fff;font-weight:bold}
.note,.url{color:#aaa;font-size:.9em;word-break:break-all}
.error{color:#f66}
</style>
</head>
<body>
<header>
<h1>{{.Title}}</h1>
<form class="add" method="post" action="/items">
<input name="url" placeholder="Paste a YouTube, Vimeo, TikTok, Instagram, Facebook or media URL" required>
<input name="title" placeholder="Title">
<select name="category">{{range .Categories}}<option>{{.}}</option>{{end}}</select>
<input name="notes" placeholder="Notes">
<button type="submit">Add</button>
</form>
{{- if .Error}}
<p class="error">{{.Error}}</p>
{{- end}}
<nav class="filters">
{{- range .Filters}}
<a href="/?category={{.}}{{if $.Query}}&q={{$.Query}}{{end}}"{{if $.IsActive .}} class="active"{{end}}>{{.}}</a>
{{- end}}
</nav>
<form class="search" method="get" action="/">
{{- if .Active}}<input type="hidden" name="category" value="{{.Active}}">{{end}}
<input name="q" value="{{.Query}}" placeholder="Search titles and notes">
</form>
<p class="links"><a href="/api/export?format=json">Export JSON</a> <a href="/api/export?format=csv">Export CSV</a> <a href="/api/export?format=markdown">Export Markdown</a></p>
<form class="import" method="post" action="/import" enctype="multipart/form-data">
<input type="file" name="file" accept="application/json,.json">
<button type="submit">Import</button>
</form>
</header>
<main>
{{- if .Cards}}
<section class="grid">
{{- range .Cards}}
{{.Render}}
{{- end}}
</section>
{{- else if .Total}}
<p class="empty">No items match.</p>
{{- else}}
<p class="empty">No items yet. Paste a link above and hit "Add".</p>
{{- end}}
</main>
{{- range .Scripts}}
<script id="{{.ID}}" src="{{.Src}}" async></script>
{{- end}}
</body>
</html>
`))

// RenderPage writes the full board page.
func RenderPage(w io.Writer, p Page) error {
	return pageTmpl.Execute(w, p)
}
