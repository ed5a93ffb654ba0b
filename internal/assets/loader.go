package assets

// AssetLoader loads the glossary page template and the stylesheets injected
// around it. Names carry no directory or extension.
type AssetLoader interface {
	// LoadStyle returns styles/{name}.css, or ErrStyleNotFound.
	LoadStyle(name string) (string, error)

	// LoadTemplate returns templates/{name}.html, or ErrTemplateNotFound.
	LoadTemplate(name string) (string, error)
}
