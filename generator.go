package revoice

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/alnah/go-revoice/internal/assets"
	"github.com/alnah/go-revoice/internal/fileutil"
	"github.com/alnah/go-revoice/internal/render"
	"github.com/alnah/go-revoice/internal/schema"
)

// defaultTimeout bounds one browser session when no timeout is specified.
const defaultTimeout = 30 * time.Second

// Generator runs the invoice pipeline. It holds no per-call state and is
// safe for concurrent use.
type Generator struct {
	cfg       generatorConfig
	assets    *assets.AssetResolver
	engine    *render.Engine
	validator *schema.Validator
	pdf       pdfRenderer
	logger    *zap.Logger
}

// generatorConfig holds internal configuration for Generator.
type generatorConfig struct {
	timeout     time.Duration
	templateDir string
	locale      language.Tag
}

// Option configures a Generator.
type Option func(*Generator)

// WithTimeout bounds each browser session.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("revoice: WithTimeout duration must be positive")
	}
	return func(g *Generator) {
		g.cfg.timeout = d
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(logger *zap.Logger) Option {
	return func(g *Generator) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// WithTemplateDir adds a directory whose <name>.html files override
// bundled templates of the same name.
func WithTemplateDir(dir string) Option {
	return func(g *Generator) {
		g.cfg.templateDir = dir
	}
}

// WithLocale sets the locale used to format amounts in currencies without a
// registered convention.
func WithLocale(tag language.Tag) Option {
	return func(g *Generator) {
		g.cfg.locale = tag
	}
}

// withPDFRenderer replaces the browser-backed renderer (tests).
func withPDFRenderer(r pdfRenderer) Option {
	return func(g *Generator) {
		g.pdf = r
	}
}

// NewGenerator creates a Generator. Returns an error if the template
// directory is invalid or the bundled schema does not compile.
func NewGenerator(opts ...Option) (*Generator, error) {
	g := &Generator{
		cfg: generatorConfig{
			timeout: defaultTimeout,
			locale:  language.English,
		},
		logger: zap.NewNop(),
	}

	for _, opt := range opts {
		opt(g)
	}

	resolver, err := assets.NewAssetResolver(g.cfg.templateDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTemplateDir, err)
	}
	g.assets = resolver

	g.validator, err = schema.Default()
	if err != nil {
		return nil, err
	}

	g.engine = render.New(render.WithLocale(g.cfg.locale))

	// Create PDF renderer if not injected (e.g., by tests)
	if g.pdf == nil {
		g.pdf = newRodRenderer(g.cfg.timeout, g.logger)
	}

	return g, nil
}

// GenerateInvoice validates data, loads the template and returns the
// rendered HTML. Nothing is written to disk.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (g *Generator) GenerateInvoice(ctx context.Context, data InvoiceData, opts Options) (html string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	opts = opts.withDefaults()
	if err := opts.Validate(); err != nil {
		return "", err
	}

	return g.renderHTML(ctx, data, opts)
}

// GenerateHTMLInvoice runs the full pipeline and returns once both the HTML
// and the PDF file exist. When PDF printing fails the HTML file is left in
// place.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (g *Generator) GenerateHTMLInvoice(ctx context.Context, data InvoiceData, opts Options) (result *Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	opts = opts.withDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	page, err := opts.pageSettings()
	if err != nil {
		return nil, err
	}

	html, err := g.renderHTML(ctx, data, opts)
	if err != nil {
		return nil, err
	}

	g.logger.Debug("writing HTML", zap.String("destination", opts.Destination))
	htmlPath, err := writeHTML(html, opts)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pdfPath := fileutil.ReplaceExt(htmlPath, "pdf")
	g.logger.Debug("printing PDF", zap.String("html", htmlPath))
	if err := g.pdf.RenderFile(ctx, htmlPath, pdfPath, page); err != nil {
		return nil, fmt.Errorf("rendering PDF: %w", err)
	}

	g.logger.Info("invoice generated", zap.String("html", htmlPath), zap.String("pdf", pdfPath))
	return &Result{HTML: html, HTMLPath: htmlPath, PDFPath: pdfPath}, nil
}

// renderHTML runs validation, template loading and rendering. opts must
// already carry defaults.
func (g *Generator) renderHTML(ctx context.Context, data InvoiceData, opts Options) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	g.logger.Debug("validating invoice data")
	if err := g.validator.Validate(data); err != nil {
		var verr *schema.ValidationError
		if errors.As(err, &verr) {
			return "", fmt.Errorf("%w: %w", ErrInvalidDataObject, verr)
		}
		return "", fmt.Errorf("%w: %v", ErrInvalidDataObject, err)
	}

	loc := assets.ResolveLocation(opts.Template)
	g.logger.Debug("loading template", zap.Stringer("location", loc))
	text, err := g.assets.Load(loc)
	if err != nil {
		return "", err
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	html, err := g.engine.Render(loc.Path, text, data)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrTemplateRender, err)
	}

	html, err = render.ResolveAssetPaths(html, g.assetDir(loc))
	if err != nil {
		return "", fmt.Errorf("%w: resolving asset paths: %v", ErrTemplateRender, err)
	}

	return html, nil
}

// assetDir is the directory relative references of the template at loc
// resolve against: the template's own directory for path templates, the
// template directory for named ones. Bundled templates reference nothing.
func (g *Generator) assetDir(loc Location) string {
	if !loc.Bundled {
		return filepath.Dir(loc.Path)
	}
	return g.cfg.templateDir
}

// Validate checks data against the invoice schema. It returns nil for valid
// data and otherwise an error whose message joins every violation with "; ".
// Use errors.As with *ValidationError to inspect individual reasons.
func Validate(data any) error {
	v, err := schema.Default()
	if err != nil {
		return err
	}
	return v.Validate(data)
}

// ValidationError lists every constraint an invoice violates.
type ValidationError = schema.ValidationError

// Location identifies a bundled template or a template file.
type Location = assets.Location

// ResolveTemplateLocation maps a template identifier to its location: an
// empty identifier selects the default template, an alphanumeric one a
// bundled template, and anything else is used verbatim as a path.
func ResolveTemplateLocation(id string) Location {
	return assets.ResolveLocation(id)
}

// BundledTemplates lists the names of the templates compiled into the library.
func BundledTemplates() []string {
	return assets.BundledTemplates()
}
