// internal/render/html.go
//
// HTML output for rows and boards.
// Rows are emitted as their custom element tags with a declarative shadow
// root mirroring the browser structure:
//
//	<wordle-row length="5"><template shadowrootmode="open">
//	  <div id="row"><wordle-tile part="tile" state="correct" data-states="--evaluated --correct">…</wordle-tile>…</div>
//	</template>CRANE</wordle-row>
//
// Custom states are not expressible in markup, so they are written to a
// `data-states` attribute for styling.

package render

import (
	"html/template"
	"io"
	"regexp"
	"strings"

	"github.com/robalobadob/wordle-elements/internal/element"
	"github.com/robalobadob/wordle-elements/internal/row"
	"github.com/robalobadob/wordle-elements/internal/tile"
)

const templates = `
{{- define "tile" -}}
{{.Open}}<template shadowrootmode="open"><div id="tile">{{.Letter}}</div></template>{{.Letter}}{{.Close}}
{{- end -}}
{{- define "row" -}}
{{.Open}}<template shadowrootmode="open"><div id="row">{{range .Tiles}}{{template "tile" .}}{{end}}</div></template>{{.Content}}{{.Close}}
{{- end -}}
{{- define "board" -}}
<section class="wordle-board">{{if .Title}}<h2>{{.Title}}</h2>{{end}}{{range .Rows}}{{template "row" .}}{{end}}</section>
{{- end -}}
`

var tmpl = template.Must(template.New("render").Parse(templates))

type tileNode struct {
	Open, Close template.HTML
	Letter      string
}

type rowNode struct {
	Open, Close template.HTML
	Content     string
	Tiles       []tileNode
}

type boardNode struct {
	Title string
	Rows  []rowNode
}

// HTML writes r as markup.
func HTML(w io.Writer, r *row.Row) error {
	return tmpl.ExecuteTemplate(w, "row", newRowNode(r))
}

// BoardHTML writes a titled section containing rows.
func BoardHTML(w io.Writer, title string, rows []*row.Row) error {
	b := boardNode{Title: title}
	for _, r := range rows {
		b.Rows = append(b.Rows, newRowNode(r))
	}
	return tmpl.ExecuteTemplate(w, "board", b)
}

func newRowNode(r *row.Row) rowNode {
	n := rowNode{
		Open:    openTag(r.TagName(), r.Attributes()),
		Close:   closeTag(r.TagName()),
		Content: r.TextContent(),
	}
	for _, t := range r.Tiles() {
		n.Tiles = append(n.Tiles, newTileNode(t))
	}
	return n
}

func newTileNode(t tile.Element) tileNode {
	attrs := t.Attributes()
	if parts := t.Parts(); len(parts) > 0 {
		attrs = append(attrs, element.Attribute{Name: "part", Value: strings.Join(parts, " ")})
	}
	attrs = append(attrs, element.Attribute{Name: "data-states", Value: t.Flags().String()})
	return tileNode{
		Open:   openTag(t.TagName(), attrs),
		Close:  closeTag(t.TagName()),
		Letter: t.Letter(),
	}
}

var attrName = regexp.MustCompile(`^[a-z][a-z0-9_.-]*$`)

func openTag(tag string, attrs []element.Attribute) template.HTML {
	var b strings.Builder
	b.WriteByte('<')
	b.WriteString(safeTag(tag))
	for _, a := range attrs {
		if !attrName.MatchString(a.Name) {
			continue
		}
		b.WriteByte(' ')
		b.WriteString(a.Name)
		if a.Value != "" {
			b.WriteString(`="`)
			b.WriteString(template.HTMLEscapeString(a.Value))
			b.WriteByte('"')
		}
	}
	b.WriteByte('>')
	return template.HTML(b.String())
}

func closeTag(tag string) template.HTML {
	return template.HTML("</" + safeTag(tag) + ">")
}

// safeTag guards against tag names that could break out of markup.
func safeTag(tag string) string {
	if tile.ValidName(tag) {
		return tag
	}
	return "span"
}
