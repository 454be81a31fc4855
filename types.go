package revoice

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/alnah/go-revoice/internal/assets"
	"github.com/alnah/go-revoice/internal/render"
)

// InvoiceData is the caller-supplied invoice record. It must hold a
// non-empty "items" list; every other field is passed to the template as is.
type InvoiceData = map[string]any

// LineItem is one billable entry (amount, tax, quantity) as seen by the
// aggregation helpers.
type LineItem = render.LineItem

// Paper format constants.
const (
	FormatA3      = "A3"
	FormatA4      = "A4"
	FormatA5      = "A5"
	FormatLetter  = "Letter"
	FormatLegal   = "Legal"
	FormatTabloid = "Tabloid"
)

// Orientation constants.
const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// NomenclatureHash names output files after a digest of the rendered HTML.
const NomenclatureHash = "hash"

// Defaults applied to zero-valued Options fields.
const (
	DefaultTemplate    = assets.DefaultTemplateName
	DefaultFormat      = FormatA3
	DefaultOrientation = OrientationPortrait
	DefaultMargin      = "1cm"
)

// paperSize holds portrait dimensions in inches.
type paperSize struct {
	width, height float64
}

const mmPerInch = 25.4

// paperSizes is keyed by lowercase format name.
var paperSizes = map[string]paperSize{
	"a3":      {297 / mmPerInch, 420 / mmPerInch},
	"a4":      {210 / mmPerInch, 297 / mmPerInch},
	"a5":      {148 / mmPerInch, 210 / mmPerInch},
	"letter":  {8.5, 11},
	"legal":   {8.5, 14},
	"tabloid": {11, 17},
}

// Options configures one generation. Zero-valued fields take the defaults
// from DefaultOptions.
type Options struct {
	Template     string // bundled name or filesystem path (default "default")
	Destination  string // output directory (default <os temp dir>/revoice)
	Format       string // A3, A4, A5, Letter, Legal, Tabloid (default A3)
	Orientation  string // portrait, landscape (default portrait)
	Margin       string // CSS length in mm, cm, in or px; bare numbers are mm (default 1cm)
	Name         string // explicit file name without extension
	Nomenclature string // "hash" or empty
}

// DefaultOptions returns the options used for fields the caller leaves empty.
func DefaultOptions() Options {
	return Options{
		Template:    DefaultTemplate,
		Destination: filepath.Join(os.TempDir(), "revoice"),
		Format:      DefaultFormat,
		Orientation: DefaultOrientation,
		Margin:      DefaultMargin,
	}
}

// withDefaults returns o merged over DefaultOptions; non-empty caller values win.
func (o Options) withDefaults() Options {
	merged := DefaultOptions()
	if o.Template != "" {
		merged.Template = o.Template
	}
	if o.Destination != "" {
		merged.Destination = o.Destination
	}
	if o.Format != "" {
		merged.Format = o.Format
	}
	if o.Orientation != "" {
		merged.Orientation = o.Orientation
	}
	if o.Margin != "" {
		merged.Margin = o.Margin
	}
	merged.Name = o.Name
	merged.Nomenclature = o.Nomenclature
	return merged
}

// Validate checks o after merging it over the defaults.
func (o Options) Validate() error {
	m := o.withDefaults()

	if _, err := m.pageSettings(); err != nil {
		return err
	}

	if m.Name != "" {
		if err := validateName(m.Name); err != nil {
			return err
		}
	}

	switch m.Nomenclature {
	case "", NomenclatureHash:
	default:
		return fmt.Errorf("%w: %q (only %q is supported)", ErrUnsupportedNomenclature, m.Nomenclature, NomenclatureHash)
	}

	return nil
}

// PageSettings is the resolved PDF geometry, in inches.
type PageSettings struct {
	Width     float64 // portrait width
	Height    float64 // portrait height
	Margin    float64 // applied to all sides
	Landscape bool
}

// pageSettings resolves Format, Orientation and Margin.
func (o Options) pageSettings() (PageSettings, error) {
	size, ok := paperSizes[strings.ToLower(o.Format)]
	if !ok {
		return PageSettings{}, fmt.Errorf("%w: %q (must be A3, A4, A5, Letter, Legal or Tabloid)", ErrInvalidFormat, o.Format)
	}

	var landscape bool
	switch strings.ToLower(o.Orientation) {
	case OrientationPortrait:
	case OrientationLandscape:
		landscape = true
	default:
		return PageSettings{}, fmt.Errorf("%w: %q (must be portrait or landscape)", ErrInvalidOrientation, o.Orientation)
	}

	margin, err := ParseMargin(o.Margin)
	if err != nil {
		return PageSettings{}, err
	}
	if 2*margin >= math.Min(size.width, size.height) {
		return PageSettings{}, fmt.Errorf("%w: %q leaves no printable area on %s", ErrInvalidMargin, o.Margin, o.Format)
	}

	return PageSettings{
		Width:     size.width,
		Height:    size.height,
		Margin:    margin,
		Landscape: landscape,
	}, nil
}

// marginPattern matches a non-negative length with an optional unit.
var marginPattern = regexp.MustCompile(`^(\d+(?:\.\d+)?|\.\d+)\s*(mm|cm|in|px)?$`)

// inchesPerUnit converts a margin unit to inches.
var inchesPerUnit = map[string]float64{
	"":   1 / mmPerInch,
	"mm": 1 / mmPerInch,
	"cm": 10 / mmPerInch,
	"in": 1,
	"px": 1.0 / 96,
}

// ParseMargin converts a CSS length ("1cm", "10mm", "0.5in", "48px") to
// inches. A bare number is read as millimetres.
func ParseMargin(s string) (float64, error) {
	m := marginPattern.FindStringSubmatch(strings.ToLower(strings.TrimSpace(s)))
	if m == nil {
		return 0, fmt.Errorf("%w: %q (want a length in mm, cm, in or px)", ErrInvalidMargin, s)
	}

	v, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrInvalidMargin, s, err)
	}

	return v * inchesPerUnit[m[2]], nil
}

// Result describes a generated invoice.
type Result struct {
	HTML     string // rendered markup
	HTMLPath string
	PDFPath  string
}
