package glossgen

import (
	"errors"

	"github.com/alnah/go-glossgen/internal/assets"
	"github.com/alnah/go-glossgen/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrInvalidSourceDir = errors.New("invalid source directory")
	ErrReadSource       = errors.New("failed to read source file")
	ErrWriteOutput      = errors.New("failed to write output file")
	ErrEmptyOutputPath  = errors.New("output path cannot be empty")
	ErrOutputConflict   = errors.New("PDF path must differ from output path")
	ErrInvalidLetter    = errors.New("glossary letter must be A-Z")
	ErrInvalidExtension = errors.New("invalid source extension")
	ErrNilGlossary      = errors.New("glossary cannot be nil")
	ErrInvalidTagRoot   = errors.New("invalid tag root directory")

	// Rendering errors.
	ErrTemplateRender   = pipeline.ErrTemplateRender
	ErrInvalidMacroName = pipeline.ErrInvalidMacroName
	ErrInvalidPage      = errors.New("invalid page settings")

	// PDF export errors.
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrPDFGeneration  = errors.New("PDF generation failed")

	// PDF settings validation errors.
	ErrInvalidPageSize = errors.New("invalid page size")
	ErrInvalidMargin   = errors.New("invalid margin")

	// Asset loading errors.
	ErrStyleNotFound    = assets.ErrStyleNotFound
	ErrTemplateNotFound = assets.ErrTemplateNotFound
	ErrInvalidAssetPath = errors.New("invalid asset path")
)
