package glossgen

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-glossgen/internal/assets"
	"github.com/alnah/go-glossgen/internal/fileutil"
	"github.com/alnah/go-glossgen/internal/process"
)

// pdfRenderer abstracts PDF rendering from an HTML file to enable testing without a browser.
type pdfRenderer interface {
	RenderFromFile(ctx context.Context, filePath string, settings *PDFSettings) ([]byte, error)
	Close() error
}

// exportPDF prints the page to input.PDFPath. The print stylesheet is
// injected into a scratch copy written next to the page, so relative
// stylesheet and script links resolve exactly as they do for the page.
func (g *Generator) exportPDF(ctx context.Context, html string, input Input) error {
	settings := input.PDF
	if settings == nil {
		settings = DefaultPDFSettings()
	}

	printCSS, err := g.assetLoader.LoadStyle(assets.PrintStyleName)
	if err != nil {
		return fmt.Errorf("loading print style: %w", err)
	}
	html = g.cssInjector.InjectCSS(ctx, html, printCSS)

	tmpPath, cleanup, err := fileutil.WriteTempFile(filepath.Dir(input.OutputPath), html, "html")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	defer cleanup()

	absPath, err := filepath.Abs(tmpPath)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", tmpPath, err)
	}

	ctx, cancel := context.WithTimeout(ctx, g.cfg.timeout)
	defer cancel()

	data, err := g.pdfRenderer().RenderFromFile(ctx, absPath, settings)
	if err != nil {
		return err
	}

	// #nosec G306 -- PDF output files are intended to be readable
	if err := fileutil.WriteFileAtomic(input.PDFPath, data, 0o644); err != nil {
		return fmt.Errorf("%w %s: %w", ErrWriteOutput, input.PDFPath, err)
	}
	return nil
}

// pdfRenderer returns the renderer, creating it on first use.
func (g *Generator) pdfRenderer() pdfRenderer {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.pdf == nil {
		g.pdf = newRodRenderer(g.cfg.timeout)
	}
	return g.pdf
}

// rodRenderer implements pdfRenderer using go-rod.
// Rod automatically downloads Chromium on first run if not found.
type rodRenderer struct {
	mu       sync.Mutex
	launcher *launcher.Launcher
	browser  *rod.Browser
	timeout  time.Duration
}

// newRodRenderer creates a rodRenderer with the given timeout.
func newRodRenderer(timeout time.Duration) *rodRenderer {
	return &rodRenderer{timeout: timeout}
}

// ensureBrowser lazily launches and connects to the browser.
func (r *rodRenderer) ensureBrowser() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.browser != nil {
		return nil
	}

	l := launcher.New()

	// Use pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("CI") == "true" || os.Getenv("ROD_NO_SANDBOX") == "1" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		process.KillProcessGroup(l.PID())
		l.Kill()
		return fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	r.launcher = l
	r.browser = browser
	return nil
}

// Close releases browser resources. Chrome helper processes are killed
// with the browser so none outlive the run.
func (r *rodRenderer) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var err error
	if r.browser != nil {
		err = r.browser.Close()
		r.browser = nil
	}
	if r.launcher != nil {
		process.KillProcessGroup(r.launcher.PID())
		r.launcher.Kill()
		r.launcher = nil
	}
	return err
}

// RenderFromFile opens a local HTML file in headless Chrome and renders it to PDF.
// Returns explicit errors instead of panicking when browser operations fail.
func (r *rodRenderer) RenderFromFile(ctx context.Context, filePath string, settings *PDFSettings) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := r.ensureBrowser(); err != nil {
		return nil, err
	}

	page, err := r.browser.Page(proto.TargetCreateTarget{URL: "file://" + filepath.ToSlash(filePath)})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer page.Close()

	// Wait for page to load with timeout from context or default
	timeout := r.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}

	if err := page.Timeout(timeout).WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reader, err := page.Context(ctx).PDF(buildPrintOptions(settings))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	pdfBuf, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}

	return pdfBuf, nil
}

// buildPrintOptions converts settings to Chrome print parameters.
func buildPrintOptions(settings *PDFSettings) *proto.PagePrintToPDF {
	if settings == nil {
		settings = DefaultPDFSettings()
	}
	paper := settings.paper()

	return &proto.PagePrintToPDF{
		PaperWidth:      floatPtr(paper.width),
		PaperHeight:     floatPtr(paper.height),
		MarginTop:       floatPtr(settings.Margin),
		MarginBottom:    floatPtr(settings.Margin),
		MarginLeft:      floatPtr(settings.Margin),
		MarginRight:     floatPtr(settings.Margin),
		PrintBackground: true,
	}
}

// floatPtr returns a pointer to a float64 value.
func floatPtr(v float64) *float64 {
	return &v
}
