package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"
)

// ErrTemplateRender indicates the page template failed to parse or execute.
var ErrTemplateRender = errors.New("page template rendering failed")

// NavEntry is one letter link in the navigation list.
type NavEntry struct {
	Label string // "A"
	Href  string // "#a"
}

// RenderedEntry is an entry whose text is already escaped for HTML.
type RenderedEntry struct {
	Term       template.HTML
	Definition template.HTML
}

// Section is one letter of the page. Entries is empty for letters without terms.
type Section struct {
	ID      string // "a"
	Heading string // "A"
	Entries []RenderedEntry
}

// PageData is everything the page template sees.
type PageData struct {
	Lang        string
	Title       string
	Stylesheets []string
	Script      string
	HomeHref    string
	HomeLabel   string
	Nav         []NavEntry
	Sections    []Section
}

// NewSection builds the section for letter, escaping entries with inline.
func NewSection(letter rune, entries []Entry, inline func(string) string) Section {
	s := Section{
		ID:      strings.ToLower(string(letter)),
		Heading: strings.ToUpper(string(letter)),
	}
	if len(entries) == 0 {
		return s
	}

	s.Entries = make([]RenderedEntry, len(entries))
	for i, e := range entries {
		s.Entries[i] = RenderedEntry{
			// #nosec G203 -- inline escapes everything except its own <i> tags
			Term:       template.HTML(inline(e.Term)),
			Definition: template.HTML(inline(e.Definition)), // #nosec G203
		}
	}
	return s
}

// NewNavEntry returns the navigation link for letter.
func NewNavEntry(letter rune) NavEntry {
	return NavEntry{
		Label: strings.ToUpper(string(letter)),
		Href:  "#" + strings.ToLower(string(letter)),
	}
}

// PageRenderer abstracts turning page data into a complete HTML document.
type PageRenderer interface {
	Render(ctx context.Context, data *PageData) (string, error)
}

// TemplateRenderer renders pages with html/template.
type TemplateRenderer struct {
	tmpl *template.Template
}

// NewTemplateRenderer parses tmplContent as the page template.
func NewTemplateRenderer(tmplContent string) (*TemplateRenderer, error) {
	tmpl, err := template.New("glossary").Option("missingkey=error").Parse(tmplContent)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing: %v", ErrTemplateRender, err)
	}
	return &TemplateRenderer{tmpl: tmpl}, nil
}

// Render executes the template. Output depends only on data, so the same
// glossary always yields the same bytes.
func (r *TemplateRenderer) Render(ctx context.Context, data *PageData) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if data == nil {
		return "", fmt.Errorf("%w: nil page data", ErrTemplateRender)
	}

	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrTemplateRender, err)
	}
	return buf.String(), nil
}

// Compile-time interface check.
var _ PageRenderer = (*TemplateRenderer)(nil)
