// Package glossgen builds a static HTML glossary page from per-letter
// source files written in a small LaTeX dialect.
//
// # Quick Start
//
// Create a generator, generate the page, and close when done:
//
//	gen, err := glossgen.NewGenerator()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer gen.Close()
//
//	result, err := gen.Generate(ctx, glossgen.Input{
//	    SourceDir:  "tex",
//	    OutputPath: "glossary.html",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if !result.Written {
//	    fmt.Println("no terms found")
//	}
//
// # Source Format
//
// The source directory holds up to 26 files named a.tex through z.tex.
// Every line of the form
//
//	\term{Word} the definition, which may use \textit{emphasis}
//
// becomes one glossary entry filed under the letter of its file. A missing
// letter file simply contributes no terms. A definition always ends at the
// end of its line.
//
// # Generation Pipeline
//
//  1. Build: each letter file is read and scanned concurrently (bounded by
//     WithWorkers); entries are sorted case-insensitively into a Glossary.
//  2. Render: the glossary is escaped and executed through the page template.
//     Every letter A-Z gets a section; only populated letters get a
//     navigation link.
//  3. Write: the page replaces the output file atomically, so a failed run
//     never leaves a truncated page behind.
//  4. PDF (optional): the written page is printed through headless Chrome.
//
// Build and Render are exported for callers that need only one stage.
//
// # Custom Assets
//
// The page template and the print stylesheet can be overridden:
//
//	gen, err := glossgen.NewGenerator(glossgen.WithAssetPath("/path/to/assets"))
//
// Asset directory structure:
//
//	assets/
//	├── styles/
//	│   └── print.css
//	└── templates/
//	    └── glossary.html
//
// Missing files fall back to the embedded defaults.
//
// # Browser Requirements
//
// PDF export requires Chrome/Chromium. The go-rod library downloads a managed
// Chromium on first use. In containers and CI set ROD_NO_SANDBOX=1, and use
// ROD_BROWSER_BIN to point at an installed browser.
package glossgen
