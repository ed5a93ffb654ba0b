package main

import (
	"fmt"
	"io"
)

// printUsage prints the usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: glossgen [flags] [source-dir]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Build a static HTML glossary page from per-letter source files.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  source-dir    Directory holding a.tex ... z.tex (default: config input.dir, then ./tex)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>       HTML output file (default: glossary.html)")
	fmt.Fprintln(w, "      --ext <ext>           Source file extension (default: tex)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>         Letter files read in parallel (0 = auto, max 26)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Page:")
	fmt.Fprintln(w, "      --title <s>           Page title")
	fmt.Fprintln(w, "      --lang <s>            Page language")
	fmt.Fprintln(w, "      --stylesheet <href>   Stylesheet href (repeatable)")
	fmt.Fprintln(w, "      --script <src>        Script src (\"\" = none)")
	fmt.Fprintln(w, "      --home <href>         Home link href")
	fmt.Fprintln(w, "      --home-label <s>      Home link text")
	fmt.Fprintln(w, "      --macro <name>        Emphasis macro rendered as italics (repeatable)")
	fmt.Fprintln(w, "      --asset-path <dir>    Custom templates/ and styles/ directory")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "PDF:")
	fmt.Fprintln(w, "      --pdf <path>          Also export the page to PDF (requires Chrome)")
	fmt.Fprintln(w, "  -p, --page-size <s>       Page size: letter, a4, legal")
	fmt.Fprintln(w, "      --margin <f>          Margin in inches (0-3)")
	fmt.Fprintln(w, "  -t, --timeout <d>         Export timeout (e.g., 30s, 2m)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Tagging:")
	fmt.Fprintln(w, "      --tag <dir>           Mark glossary terms with $^G$ in the documents under dir")
	fmt.Fprintln(w, "      --tag-exclude <name>  Directory or file name to skip (repeatable)")
	fmt.Fprintln(w, "      --tag-dry-run         Report marks without rewriting files")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show workers, per-letter counts and timing")
	fmt.Fprintln(w, "      --print-config        Print the resolved configuration and exit")
	fmt.Fprintln(w, "      --version             Show version information")
	fmt.Fprintln(w, "  -h, --help                Show this help")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  GLOSSGEN_CONFIG, GLOSSGEN_INPUT_DIR, GLOSSGEN_OUTPUT, GLOSSGEN_PDF,")
	fmt.Fprintln(w, "  GLOSSGEN_EXTENSION, GLOSSGEN_TITLE, GLOSSGEN_LANG, GLOSSGEN_ASSET_PATH,")
	fmt.Fprintln(w, "  GLOSSGEN_PAGE_SIZE, GLOSSGEN_TIMEOUT, GLOSSGEN_WORKERS, GLOSSGEN_TAG_DIR")
	fmt.Fprintln(w, "  Priority: flags > environment > config file > defaults")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Exit codes:")
	fmt.Fprintln(w, "  0 success or no terms found, 1 general, 2 usage/config, 3 I/O, 4 browser")
}
