package revoice

import (
	"errors"

	"github.com/alnah/go-revoice/internal/assets"
)

// Sentinel errors for library operations.
var (
	// ErrTemplateNotFound is returned when a template name or path does not
	// resolve to an existing template.
	ErrTemplateNotFound = assets.ErrTemplateNotFound

	ErrInvalidDataObject = errors.New("invalid data object")
	ErrTemplateRender    = errors.New("template rendering failed")
	ErrHTMLGeneration    = errors.New("HTML generation failed")
	ErrWriteHTML         = errors.New("failed to write HTML file")

	// Browser errors.
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrWritePDF       = errors.New("failed to write PDF file")

	// Options validation errors.
	ErrInvalidFormat           = errors.New("invalid paper format")
	ErrInvalidOrientation      = errors.New("invalid orientation")
	ErrInvalidMargin           = errors.New("invalid margin")
	ErrInvalidName             = errors.New("invalid output name")
	ErrUnsupportedNomenclature = errors.New("unsupported nomenclature")
	ErrInvalidTemplateDir      = errors.New("invalid template directory")
)
