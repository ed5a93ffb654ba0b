package main

import (
	"errors"
	"os"

	"github.com/alnah/go-glossgen"
	"github.com/alnah/go-glossgen/internal/config"
)

// Exit codes for the glossgen CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Page written, or no terms found
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or validation
	ExitIO      = 3 // Unreadable source, unwritable output
	ExitBrowser = 4 // Browser/Chrome errors during PDF export
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, glossgen.ErrBrowserConnect) ||
		errors.Is(err, glossgen.ErrPageCreate) ||
		errors.Is(err, glossgen.ErrPageLoad) ||
		errors.Is(err, glossgen.ErrPDFGeneration) {
		return ExitBrowser
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, glossgen.ErrInvalidExtension) ||
		errors.Is(err, glossgen.ErrInvalidMacroName) ||
		errors.Is(err, glossgen.ErrInvalidPage) ||
		errors.Is(err, glossgen.ErrInvalidPageSize) ||
		errors.Is(err, glossgen.ErrInvalidMargin) ||
		errors.Is(err, glossgen.ErrEmptyOutputPath) ||
		errors.Is(err, glossgen.ErrOutputConflict) ||
		errors.Is(err, glossgen.ErrInvalidAssetPath) ||
		errors.Is(err, glossgen.ErrStyleNotFound) ||
		errors.Is(err, glossgen.ErrTemplateNotFound) ||
		errors.Is(err, glossgen.ErrTemplateRender) ||
		errors.Is(err, ErrInvalidTimeout) ||
		errors.Is(err, ErrTooManyArgs) {
		return ExitUsage
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, glossgen.ErrInvalidSourceDir) ||
		errors.Is(err, glossgen.ErrInvalidTagRoot) ||
		errors.Is(err, glossgen.ErrReadSource) ||
		errors.Is(err, glossgen.ErrWriteOutput) {
		return ExitIO
	}

	return ExitGeneral
}
