// Package view renders the server-side HTML pages of the records UI.
// Templates are embedded in the binary and get sprig's helpers plus the
// label filters from package labels.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/Masterminds/sprig"

	"github.com/pkordes/menrva/internal/domain"
	"github.com/pkordes/menrva/internal/labels"
)

//go:embed templates/*.html
var templateFS embed.FS

// Uncategorized is the heading for terms whose source has no category name.
const Uncategorized = "Uncategorized"

// RecordPage is the data for the record detail page.
type RecordPage struct {
	Record   domain.Record
	URL      string
	Subjects []SubjectGroup
}

// SubjectGroup is a run of terms sharing a subject category.
type SubjectGroup struct {
	Category string
	Terms    []domain.Term
}

// SearchPage is the data for the search results page.
type SearchPage struct {
	Records []domain.Record
	Page    int
	Total   int
}

// Renderer executes the embedded page templates.
type Renderer struct {
	pages map[string]*template.Template
}

// NewRenderer parses every page template. It fails only if an embedded
// template is malformed.
func NewRenderer() (*Renderer, error) {
	base, err := template.New("base").Funcs(Funcs()).ParseFS(templateFS, "templates/base.html")
	if err != nil {
		return nil, fmt.Errorf("view.NewRenderer: parse base: %w", err)
	}

	r := &Renderer{pages: make(map[string]*template.Template)}
	for _, page := range []string{"record", "search"} {
		clone, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("view.NewRenderer: clone base: %w", err)
		}
		t, err := clone.ParseFS(templateFS, "templates/"+page+".html")
		if err != nil {
			return nil, fmt.Errorf("view.NewRenderer: parse %s: %w", page, err)
		}
		r.pages[page] = t
	}
	return r, nil
}

// Funcs returns the template functions available to every page.
// Label filters take precedence over sprig helpers of the same name.
func Funcs() template.FuncMap {
	fm := sprig.HtmlFuncMap()
	for name, fn := range labels.FuncMap() {
		fm[name] = fn
	}
	return fm
}

// RenderRecord writes the detail page for a record.
func (r *Renderer) RenderRecord(w io.Writer, page RecordPage) error {
	return r.render(w, "record", page)
}

// RenderSearch writes the search results page.
func (r *Renderer) RenderSearch(w io.Writer, page SearchPage) error {
	return r.render(w, "search", page)
}

// render buffers the output so a template error never leaves a half-written page.
func (r *Renderer) render(w io.Writer, name string, data any) error {
	var buf bytes.Buffer
	if err := r.pages[name].ExecuteTemplate(&buf, "base", data); err != nil {
		return fmt.Errorf("view.Renderer.render %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// GroupSubjects groups terms by the category name of their source,
// keeping the order in which categories first appear.
func GroupSubjects(terms []domain.Term) []SubjectGroup {
	var groups []SubjectGroup
	pos := make(map[string]int)
	for _, term := range terms {
		category, ok := labels.SubjectCategoryName(term.Source)
		if !ok {
			category = Uncategorized
		}
		i, seen := pos[category]
		if !seen {
			i = len(groups)
			pos[category] = i
			groups = append(groups, SubjectGroup{Category: category})
		}
		groups[i].Terms = append(groups[i].Terms, term)
	}
	return groups
}
