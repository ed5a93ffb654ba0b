package glossgen

import (
	"fmt"
	"strings"

	"github.com/alnah/go-glossgen/internal/config"
)

// Page configures the fixed parts of the glossary page.
type Page struct {
	Title       string   // <title> and <h1>
	Lang        string   // <html lang>
	Stylesheets []string // hrefs, linked in order
	Script      string   // deferred script src; empty = none
	HomeHref    string   // #header-logo target
	HomeLabel   string   // #header-logo text
}

// DefaultPage returns the page settings used when Input.Page is nil.
func DefaultPage() *Page {
	return &Page{
		Title:       config.DefaultTitle,
		Lang:        config.DefaultLang,
		Stylesheets: append([]string(nil), config.DefaultStylesheets...),
		Script:      config.DefaultScript,
		HomeHref:    config.DefaultHomeHref,
		HomeLabel:   config.DefaultHomeLabel,
	}
}

// Validate checks that page settings are usable.
// Returns nil if p is nil (nil means use defaults).
func (p *Page) Validate() error {
	if p == nil {
		return nil
	}
	if strings.TrimSpace(p.Title) == "" {
		return fmt.Errorf("%w: title is empty", ErrInvalidPage)
	}
	if strings.TrimSpace(p.Lang) == "" {
		return fmt.Errorf("%w: lang is empty", ErrInvalidPage)
	}
	for i, href := range p.Stylesheets {
		if strings.TrimSpace(href) == "" {
			return fmt.Errorf("%w: stylesheet %d is empty", ErrInvalidPage, i)
		}
	}
	return nil
}

// Page size constants.
const (
	PageSizeLetter = "letter"
	PageSizeA4     = "a4"
	PageSizeLegal  = "legal"
)

// Margin bounds in inches.
const (
	MinMargin     = 0.0
	MaxMargin     = 3.0
	DefaultMargin = config.DefaultPDFMargin
)

// paperSize is a page size in inches, portrait.
type paperSize struct {
	width, height float64
}

var paperSizes = map[string]paperSize{
	PageSizeLetter: {8.5, 11},
	PageSizeA4:     {8.27, 11.69},
	PageSizeLegal:  {8.5, 14},
}

// PDFSettings configures the exported PDF.
type PDFSettings struct {
	Size   string  // "letter", "a4", "legal"
	Margin float64 // inches, applied to all sides
}

// DefaultPDFSettings returns PDF settings with default values.
func DefaultPDFSettings() *PDFSettings {
	return &PDFSettings{
		Size:   config.DefaultPDFSize,
		Margin: DefaultMargin,
	}
}

// Validate checks that PDF settings are valid.
// Returns nil if s is nil (nil means use defaults).
// Does not mutate - uses case-insensitive comparison.
func (s *PDFSettings) Validate() error {
	if s == nil {
		return nil
	}
	if _, ok := paperSizes[strings.ToLower(s.Size)]; !ok {
		return fmt.Errorf("%w: %q", ErrInvalidPageSize, s.Size)
	}
	if s.Margin < MinMargin || s.Margin > MaxMargin {
		return fmt.Errorf("%w: %.2f (must be between %.2f and %.2f)", ErrInvalidMargin, s.Margin, MinMargin, MaxMargin)
	}
	return nil
}

// paper returns the paper dimensions for s; s must be valid.
func (s *PDFSettings) paper() paperSize {
	return paperSizes[strings.ToLower(s.Size)]
}
