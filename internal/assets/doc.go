// Package assets provides the page template and stylesheets used to render
// the glossary.
//
// # Loader Architecture
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in assets)
//	    ├── FilesystemLoader  - loads from a custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// AssetResolver is what the generator uses. A custom directory may override
// only the page template and keep the embedded print style, or the reverse.
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   └── {name}.css       # e.g. print.css, injected before PDF export
//	└── templates/
//	    └── {name}.html      # e.g. glossary.html, an html/template page
//
// # Security
//
// Asset names are validated to prevent path traversal. FilesystemLoader
// resolves symlinks and verifies paths stay within basePath.
package assets
