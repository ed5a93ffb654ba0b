package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags that shape console output.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// pageFlags holds the page content flags.
type pageFlags struct {
	title       string
	lang        string
	stylesheets []string
	script      string
	home        string
	homeLabel   string
	macros      []string
}

// pdfFlags holds PDF export flags.
type pdfFlags struct {
	output string
	size   string
	margin float64
}

// tagFlags holds document tagging flags.
type tagFlags struct {
	dir     string
	exclude []string
	dryRun  bool
}

// cliFlags holds every glossgen flag.
type cliFlags struct {
	common      commonFlags
	output      string
	ext         string
	assetPath   string
	workers     int
	timeout     string
	page        pageFlags
	pdf         pdfFlags
	tag         tagFlags
	printConfig bool
	version     bool
	help        bool

	// changed records flags given explicitly, for flags whose zero value is meaningful.
	changed map[string]bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show workers, per-letter counts and timing")
}

// addPageFlags adds page content flags to a FlagSet.
func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.StringVar(&f.title, "title", "", "page title")
	fs.StringVar(&f.lang, "lang", "", "page language (html lang attribute)")
	fs.StringArrayVar(&f.stylesheets, "stylesheet", nil, "stylesheet href (repeatable, replaces the configured list)")
	fs.StringVar(&f.script, "script", "", "script src (\"\" = no script)")
	fs.StringVar(&f.home, "home", "", "home link href")
	fs.StringVar(&f.homeLabel, "home-label", "", "home link text")
	fs.StringSliceVar(&f.macros, "macro", nil, "emphasis macro rendered as italics (repeatable)")
}

// addPDFFlags adds PDF export flags to a FlagSet.
func addPDFFlags(fs *flag.FlagSet, f *pdfFlags) {
	fs.StringVar(&f.output, "pdf", "", "also export the page to this PDF file")
	fs.StringVarP(&f.size, "page-size", "p", "", "PDF page size: letter, a4, legal")
	fs.Float64Var(&f.margin, "margin", 0, "PDF margin in inches (0-3)")
}

// addTagFlags adds document tagging flags to a FlagSet.
func addTagFlags(fs *flag.FlagSet, f *tagFlags) {
	fs.StringVar(&f.dir, "tag", "", "mark glossary terms with $^G$ in the documents under this directory")
	fs.StringSliceVar(&f.exclude, "tag-exclude", nil, "directory or file name skipped while tagging (repeatable)")
	fs.BoolVar(&f.dryRun, "tag-dry-run", false, "report the marks tagging would add without rewriting files")
}

// newFlagSet declares every flag on a fresh FlagSet bound to f.
func newFlagSet(f *cliFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("glossgen", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.SortFlags = false

	fs.StringVarP(&f.output, "output", "o", "", "HTML output file")
	fs.StringVar(&f.ext, "ext", "", "source file extension (default: tex)")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
	fs.IntVarP(&f.workers, "workers", "w", 0, "letter files read in parallel (0 = auto)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "PDF export timeout (e.g., 30s, 2m)")

	addCommonFlags(fs, &f.common)
	addPageFlags(fs, &f.page)
	addPDFFlags(fs, &f.pdf)
	addTagFlags(fs, &f.tag)

	fs.BoolVar(&f.printConfig, "print-config", false, "print the resolved configuration as YAML and exit")
	fs.BoolVar(&f.version, "version", false, "show version information")
	fs.BoolVarP(&f.help, "help", "h", false, "show this help")
	return fs
}

// parseFlags parses command line arguments (without the program name) and
// returns the flags and positional arguments.
func parseFlags(args []string) (*cliFlags, []string, error) {
	f := &cliFlags{changed: make(map[string]bool)}
	fs := newFlagSet(f)

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	fs.Visit(func(fl *flag.Flag) {
		f.changed[fl.Name] = true
	})
	return f, fs.Args(), nil
}
