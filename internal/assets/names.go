package assets

// Built-in asset names.
const (
	// GlossaryTemplateName is the html/template used for the glossary page.
	GlossaryTemplateName = "glossary"

	// PrintStyleName is injected into the page before PDF export.
	PrintStyleName = "print"
)

// assetKind describes where one category of asset lives under a base
// directory and which sentinel reports a missing entry.
type assetKind struct {
	dir      string
	ext      string
	notFound error
}

var (
	styleKind    = assetKind{dir: "styles", ext: ".css", notFound: ErrStyleNotFound}
	templateKind = assetKind{dir: "templates", ext: ".html", notFound: ErrTemplateNotFound}
)

// relPath returns the slash-separated path of name relative to a base directory.
func (k assetKind) relPath(name string) string {
	return k.dir + "/" + name + k.ext
}
