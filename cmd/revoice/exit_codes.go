package main

import (
	"context"
	"errors"
	"os"
	"strings"

	revoice "github.com/alnah/go-revoice"
	"github.com/alnah/go-revoice/internal/assets"
	"github.com/alnah/go-revoice/internal/config"
	"github.com/alnah/go-revoice/internal/decode"
	"github.com/alnah/go-revoice/internal/hints"
	"github.com/alnah/go-revoice/internal/logging"
)

// Exit codes for the revoice CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // All invoices generated or valid
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, options or invoice data
	ExitIO      = 3 // File not found, permission denied, write failures
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, revoice.ErrBrowserConnect) ||
		errors.Is(err, revoice.ErrPageCreate) ||
		errors.Is(err, revoice.ErrPageLoad) ||
		errors.Is(err, revoice.ErrPDFGeneration) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, decode.ErrReadFile) ||
		errors.Is(err, assets.ErrAssetRead) ||
		errors.Is(err, revoice.ErrHTMLGeneration) ||
		errors.Is(err, revoice.ErrWriteHTML) ||
		errors.Is(err, revoice.ErrWritePDF) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUnknownCommand) ||
		errors.Is(err, ErrInvalidFlags) ||
		errors.Is(err, ErrInvalidTimeout) ||
		errors.Is(err, ErrInvalidLocale) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, logging.ErrInvalidLevel) ||
		errors.Is(err, logging.ErrInvalidFormat) ||
		errors.Is(err, decode.ErrUnsupportedFormat) ||
		errors.Is(err, decode.ErrSyntax) ||
		errors.Is(err, decode.ErrNilData) ||
		errors.Is(err, decode.ErrInputTooLarge) ||
		errors.Is(err, assets.ErrPathTraversal) ||
		errors.Is(err, revoice.ErrTemplateNotFound) ||
		errors.Is(err, revoice.ErrInvalidDataObject) ||
		errors.Is(err, revoice.ErrTemplateRender) ||
		errors.Is(err, revoice.ErrInvalidFormat) ||
		errors.Is(err, revoice.ErrInvalidOrientation) ||
		errors.Is(err, revoice.ErrInvalidMargin) ||
		errors.Is(err, revoice.ErrInvalidName) ||
		errors.Is(err, revoice.ErrUnsupportedNomenclature) ||
		errors.Is(err, revoice.ErrInvalidTemplateDir) {
		return ExitUsage
	}

	return ExitGeneral
}

// hintFor returns an actionable hint for err, or "".
func hintFor(err error) string {
	var cerr *configError
	switch {
	case errors.As(err, &cerr) && errors.Is(err, config.ErrConfigNotFound):
		var searched []string
		if !strings.ContainsAny(cerr.name, `/\`) {
			searched = config.SearchPaths(cerr.name)
		}
		return hints.ForConfigNotFound(searched)
	case errors.Is(err, revoice.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, revoice.ErrPageLoad):
		return hints.ForTimeout()
	case errors.Is(err, revoice.ErrTemplateNotFound):
		return hints.ForTemplateNotFound(revoice.BundledTemplates())
	case errors.Is(err, revoice.ErrInvalidDataObject):
		return hints.ForInvalidData()
	case errors.Is(err, revoice.ErrWriteHTML), errors.Is(err, revoice.ErrWritePDF):
		return hints.ForOutputDirectory()
	}
	return ""
}
