package glossgen

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/alnah/go-glossgen/internal/assets"
	"github.com/alnah/go-glossgen/internal/fileutil"
	"github.com/alnah/go-glossgen/internal/pipeline"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.PageRenderer = (*pipeline.TemplateRenderer)(nil)
	_ pipeline.CSSInjector  = (*pipeline.CSSInjection)(nil)
	_ pdfRenderer           = (*rodRenderer)(nil)
)

// Generator turns a directory of letter files into a glossary page.
// Create with NewGenerator, call Generate (or Build and Render), and Close
// when done. A Generator is safe for concurrent use.
type Generator struct {
	cfg               generatorConfig
	assetLoader       assets.AssetLoader
	publicAssetLoader AssetLoader
	expander          *pipeline.EmphasisExpander
	renderer          pipeline.PageRenderer
	cssInjector       pipeline.CSSInjector

	mu  sync.Mutex
	pdf pdfRenderer // created on first PDF export
}

// Input contains generation parameters.
type Input struct {
	SourceDir  string       // directory holding a.tex ... z.tex (required)
	OutputPath string       // HTML page path (required)
	PDFPath    string       // PDF path (optional, empty = no PDF)
	Page       *Page        // page settings (optional, nil = defaults)
	PDF        *PDFSettings // PDF settings (optional, nil = defaults)
	Tag        *TagInput    // documents to mark with GlossaryMark (optional, nil = none)
}

// Result describes a generation run.
type Result struct {
	Glossary   *Glossary
	Terms      int    // total entries
	Letters    int    // populated letters
	HTML       string // rendered page, empty when no terms were found
	OutputPath string
	Written    bool // false when no terms were found
	PDFPath    string
	Tagged     *TagResult // nil unless Input.Tag was set and the page was written
	Duration   time.Duration
}

// NewGenerator creates a Generator with default configuration.
// Returns an error if the extension or a macro name is invalid, or if the
// page template cannot be loaded or parsed.
func NewGenerator(opts ...Option) (*Generator, error) {
	g := &Generator{
		cfg:         defaultGeneratorConfig(),
		assetLoader: assets.NewEmbeddedLoader(),
		cssInjector: &pipeline.CSSInjection{},
	}

	for _, opt := range opts {
		opt(g)
	}

	if err := fileutil.ValidateExtension(g.cfg.extension); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidExtension, err)
	}

	if g.cfg.assetPath != "" {
		resolver, err := assets.NewAssetResolver(g.cfg.assetPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
		}
		g.assetLoader = resolver
	}
	if g.publicAssetLoader != nil {
		g.assetLoader = g.publicAssetLoader
	}

	expander, err := pipeline.NewEmphasisExpander(g.cfg.macros...)
	if err != nil {
		return nil, err
	}
	g.expander = expander

	if g.renderer == nil {
		tmpl, err := g.assetLoader.LoadTemplate(assets.GlossaryTemplateName)
		if err != nil {
			return nil, fmt.Errorf("loading page template: %w", err)
		}
		g.renderer, err = pipeline.NewTemplateRenderer(tmpl)
		if err != nil {
			return nil, err
		}
	}

	return g, nil
}

// AssetSource describes where the page template and print style come from:
// "embedded", the custom asset directory, or "custom loader".
func (g *Generator) AssetSource() string {
	if g.publicAssetLoader != nil {
		return "custom loader"
	}
	if r, ok := g.assetLoader.(*assets.AssetResolver); ok && r.HasCustomLoader() {
		return g.cfg.assetPath + " (embedded fallback)"
	}
	return "embedded"
}

// Workers returns the number of letter files read concurrently.
func (g *Generator) Workers() int {
	return g.cfg.workers
}

// Build reads every letter file in sourceDir and returns the glossary.
// A missing letter file contributes no terms; any other read failure
// returns ErrReadSource. The first failure cancels the remaining reads.
func (g *Generator) Build(ctx context.Context, sourceDir string) (*Glossary, error) {
	if sourceDir == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidSourceDir)
	}
	if info, err := os.Stat(sourceDir); err == nil && !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrInvalidSourceDir, sourceDir)
	}

	buckets := make([][]Entry, len(Alphabet))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(g.cfg.workers)
	for i, letter := range Alphabet {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			entries, err := g.readLetter(sourceDir, letter)
			if err != nil {
				return err
			}
			buckets[i] = entries
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sections := make(map[rune][]Entry, len(Alphabet))
	for i, letter := range Alphabet {
		if len(buckets[i]) > 0 {
			sections[letter] = buckets[i]
		}
	}
	return NewGlossary(sections)
}

// readLetter extracts the entries of one letter file.
func (g *Generator) readLetter(dir string, letter rune) ([]Entry, error) {
	path := filepath.Join(dir, strings.ToLower(string(letter))+"."+g.cfg.extension)

	data, err := os.ReadFile(path) // #nosec G304 -- path built from a fixed letter set
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrReadSource, path, err)
	}

	return pipeline.ExtractTerms(string(data)), nil
}

// Render returns the complete HTML page for glossary. A nil page uses
// DefaultPage. The same glossary and page always render the same bytes.
func (g *Generator) Render(ctx context.Context, glossary *Glossary, page *Page) (string, error) {
	if glossary == nil {
		return "", ErrNilGlossary
	}
	if page == nil {
		page = DefaultPage()
	}
	if err := page.Validate(); err != nil {
		return "", err
	}

	data := &pipeline.PageData{
		Lang:        page.Lang,
		Title:       page.Title,
		Stylesheets: page.Stylesheets,
		Script:      page.Script,
		HomeHref:    page.HomeHref,
		HomeLabel:   page.HomeLabel,
		Nav:         make([]pipeline.NavEntry, 0, glossary.Len()),
		Sections:    make([]pipeline.Section, 0, len(Alphabet)),
	}
	for _, letter := range glossary.letters {
		data.Nav = append(data.Nav, pipeline.NewNavEntry(letter))
	}
	for _, letter := range Alphabet {
		data.Sections = append(data.Sections, pipeline.NewSection(letter, glossary.sections[letter], g.expander.Inline))
	}

	return g.renderer.Render(ctx, data)
}

// Generate builds the glossary, renders it and writes the page, then
// optionally tags documents (Input.Tag) and exports a PDF (Input.PDFPath).
// When no terms are found nothing is written and Result.Written is false.
// The page replaces OutputPath atomically; if writing fails the previous
// file is left untouched. Recovers from internal panics.
func (g *Generator) Generate(ctx context.Context, input Input) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	start := g.cfg.now()

	if err := validateInput(input); err != nil {
		return nil, err
	}

	glossary, err := g.Build(ctx, input.SourceDir)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Glossary:   glossary,
		Terms:      glossary.Count(),
		Letters:    glossary.Len(),
		OutputPath: input.OutputPath,
	}
	if glossary.Count() == 0 {
		res.Duration = g.cfg.now().Sub(start)
		return res, nil
	}

	html, err := g.Render(ctx, glossary, input.Page)
	if err != nil {
		return nil, err
	}
	res.HTML = html

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// #nosec G306 -- the page is published, so it is world-readable
	if err := fileutil.WriteFileAtomic(input.OutputPath, []byte(html), 0o644); err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrWriteOutput, input.OutputPath, err)
	}
	res.Written = true

	if input.Tag != nil {
		tagInput := *input.Tag
		tagInput.Skip = append(slices.Clone(tagInput.Skip), input.SourceDir)
		tagged, err := g.Tag(ctx, glossary, tagInput)
		if err != nil {
			return nil, fmt.Errorf("tagging documents: %w", err)
		}
		res.Tagged = tagged
	}

	if input.PDFPath != "" {
		if err := g.exportPDF(ctx, html, input); err != nil {
			return nil, fmt.Errorf("exporting PDF: %w", err)
		}
		res.PDFPath = input.PDFPath
	}

	res.Duration = g.cfg.now().Sub(start)
	return res, nil
}

// Close releases resources (headless Chrome, if a PDF was exported).
func (g *Generator) Close() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.pdf == nil {
		return nil
	}
	err := g.pdf.Close()
	g.pdf = nil
	return err
}

// validateInput checks that required fields are present and valid.
//
// This is a TRUST BOUNDARY for direct library users who build Input manually.
// CLI users have their input validated earlier by Config.Validate() at load time.
func validateInput(input Input) error {
	if input.SourceDir == "" {
		return fmt.Errorf("%w: empty path", ErrInvalidSourceDir)
	}
	if input.OutputPath == "" {
		return ErrEmptyOutputPath
	}
	if input.PDFPath != "" && filepath.Clean(input.PDFPath) == filepath.Clean(input.OutputPath) {
		return ErrOutputConflict
	}
	if input.Tag != nil && input.Tag.Root == "" {
		return fmt.Errorf("%w: empty path", ErrInvalidTagRoot)
	}
	if err := input.Page.Validate(); err != nil {
		return err
	}
	return input.PDF.Validate()
}
