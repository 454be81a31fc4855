package revoice

// Notes:
// - The browser is replaced by mockRenderer, which writes a fake PDF to the
//   requested path. Real Chrome runs only in the integration suite.
// - Every test writes to its own t.TempDir() destination.

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

// mockRenderer implements pdfRenderer for testing.
type mockRenderer struct {
	mu    sync.Mutex
	err   error
	panic bool
	calls []string
	pages []PageSettings
}

func (m *mockRenderer) RenderFile(_ context.Context, htmlPath, pdfPath string, page PageSettings) error {
	m.mu.Lock()
	m.calls = append(m.calls, htmlPath)
	m.pages = append(m.pages, page)
	m.mu.Unlock()

	if m.panic {
		panic("renderer exploded")
	}
	if m.err != nil {
		return m.err
	}
	return os.WriteFile(pdfPath, []byte("%PDF-1.4 fake"), 0o600)
}

func (m *mockRenderer) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

func newTestGenerator(t *testing.T, mock *mockRenderer, opts ...Option) *Generator {
	t.Helper()
	opts = append(opts, withPDFRenderer(mock))
	g, err := NewGenerator(opts...)
	require.NoError(t, err)
	return g
}

func minimalInvoice() InvoiceData {
	return InvoiceData{
		"items": []any{
			map[string]any{"amount": 10, "tax": 1, "quantity": 2},
		},
	}
}

func fullInvoice() InvoiceData {
	return InvoiceData{
		"number":   "2024-001",
		"date":     "2024-03-01",
		"currency": "USD",
		"seller":   map[string]any{"name": "ACME <Ltd>", "email": "billing@acme.test"},
		"buyer":    map[string]any{"name": "O'Brien & Co"},
		"notes":    "Paid by **wire transfer**",
		"items": []any{
			map[string]any{"description": "Consulting", "amount": 10, "tax": 1, "quantity": 2},
			map[string]any{"description": "Hosting", "amount": "5.50", "quantity": 1},
		},
	}
}

var hashFileName = regexp.MustCompile(`^[0-9a-f]{128}\.(html|pdf)$`)

// ---------------------------------------------------------------------------
// TestGenerateInvoice - HTML-only pipeline
// ---------------------------------------------------------------------------

func TestGenerateInvoice(t *testing.T) {
	t.Parallel()

	g := newTestGenerator(t, &mockRenderer{})
	ctx := context.Background()

	t.Run("default template starts with doctype", func(t *testing.T) {
		t.Parallel()
		html, err := g.GenerateInvoice(ctx, minimalInvoice(), Options{})
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(html, "<!DOCTYPE html>"), html[:min(len(html), 40)])
	})

	t.Run("computed totals and escaped data", func(t *testing.T) {
		t.Parallel()
		html, err := g.GenerateInvoice(ctx, fullInvoice(), Options{})
		require.NoError(t, err)
		assert.Contains(t, html, "$25.50", "subtotal 10*2 + 5.50")
		assert.Contains(t, html, "$27.50", "grand total")
		assert.Contains(t, html, "ACME &lt;Ltd&gt;")
		assert.Contains(t, html, "O'Brien &amp; Co")
		assert.NotContains(t, html, "&#39;")
		assert.Contains(t, html, "2024-001")
		assert.Contains(t, html, "March 1, 2024")
		assert.Contains(t, html, "<strong>wire transfer</strong>")
	})

	t.Run("bundled template by name", func(t *testing.T) {
		t.Parallel()
		html, err := g.GenerateInvoice(ctx, fullInvoice(), Options{Template: "minimal"})
		require.NoError(t, err)
		assert.Contains(t, html, "—", "entities decoded")
		assert.Contains(t, html, "Total: $27.50")
	})

	t.Run("template by path", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "custom.html")
		require.NoError(t, os.WriteFile(path, []byte(`<p>{{format (subtotal .items)}}</p>`), 0o600))

		html, err := g.GenerateInvoice(ctx, minimalInvoice(), Options{Template: path})
		require.NoError(t, err)
		assert.Equal(t, "<p>20.00</p>", html)
	})

	t.Run("template assets resolve next to the template", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		path := filepath.Join(dir, "logo.html")
		require.NoError(t, os.WriteFile(path, []byte(`<img src="logo.png"><p>{{.number}}</p>`), 0o600))

		html, err := g.GenerateInvoice(ctx, fullInvoice(), Options{Template: path})
		require.NoError(t, err)
		assert.Contains(t, html, `src="file://`)
		assert.Contains(t, html, filepath.ToSlash(filepath.Join(dir, "logo.png")))
	})

	t.Run("unknown template name", func(t *testing.T) {
		t.Parallel()
		_, err := g.GenerateInvoice(ctx, minimalInvoice(), Options{Template: "doesnotexist42"})
		require.ErrorIs(t, err, ErrTemplateNotFound)
	})

	t.Run("unknown template path", func(t *testing.T) {
		t.Parallel()
		_, err := g.GenerateInvoice(ctx, minimalInvoice(), Options{Template: "./no/such/template.html"})
		require.ErrorIs(t, err, ErrTemplateNotFound)
	})

	t.Run("broken template", func(t *testing.T) {
		t.Parallel()
		path := filepath.Join(t.TempDir(), "broken.html")
		require.NoError(t, os.WriteFile(path, []byte(`{{range}}`), 0o600))

		_, err := g.GenerateInvoice(ctx, minimalInvoice(), Options{Template: path})
		require.ErrorIs(t, err, ErrTemplateRender)
	})

	t.Run("invalid data", func(t *testing.T) {
		t.Parallel()
		_, err := g.GenerateInvoice(ctx, InvoiceData{}, Options{})
		require.ErrorIs(t, err, ErrInvalidDataObject)

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.NotEmpty(t, verr.Reasons)
		assert.True(t, strings.HasPrefix(err.Error(), "invalid data object: "), err.Error())
	})

	t.Run("invalid data wins over missing template", func(t *testing.T) {
		t.Parallel()
		_, err := g.GenerateInvoice(ctx, InvoiceData{}, Options{Template: "doesnotexist42"})
		require.ErrorIs(t, err, ErrInvalidDataObject)
		assert.NotErrorIs(t, err, ErrTemplateNotFound)
	})

	t.Run("canceled context", func(t *testing.T) {
		t.Parallel()
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := g.GenerateInvoice(cctx, minimalInvoice(), Options{})
		require.ErrorIs(t, err, context.Canceled)
	})
}

// ---------------------------------------------------------------------------
// TestGenerateHTMLInvoice - Full pipeline with mock browser
// ---------------------------------------------------------------------------

func TestGenerateHTMLInvoice(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("writes html and pdf side by side", func(t *testing.T) {
		t.Parallel()
		mock := &mockRenderer{}
		g := newTestGenerator(t, mock)
		dest := t.TempDir()

		res, err := g.GenerateHTMLInvoice(ctx, minimalInvoice(), Options{Destination: dest})
		require.NoError(t, err)

		assert.Equal(t, filepath.Join(dest, "index.html"), res.HTMLPath)
		assert.Equal(t, filepath.Join(dest, "index.pdf"), res.PDFPath)
		assert.FileExists(t, res.HTMLPath)
		assert.FileExists(t, res.PDFPath)

		written, err := os.ReadFile(res.HTMLPath)
		require.NoError(t, err)
		assert.Equal(t, res.HTML, string(written))

		require.Len(t, mock.pages, 1)
		assert.InDelta(t, 297/25.4, mock.pages[0].Width, 1e-9, "A3 by default")
	})

	t.Run("hash names are stable across runs", func(t *testing.T) {
		t.Parallel()
		g := newTestGenerator(t, &mockRenderer{})
		dest := t.TempDir()
		opts := Options{Destination: dest, Nomenclature: NomenclatureHash}

		first, err := g.GenerateHTMLInvoice(ctx, fullInvoice(), opts)
		require.NoError(t, err)
		second, err := g.GenerateHTMLInvoice(ctx, fullInvoice(), opts)
		require.NoError(t, err)

		assert.Equal(t, first.HTMLPath, second.HTMLPath)
		assert.Equal(t, first.PDFPath, second.PDFPath)
		assert.Regexp(t, hashFileName, filepath.Base(first.HTMLPath))

		entries, err := os.ReadDir(dest)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		for _, e := range entries {
			assert.Regexp(t, hashFileName, e.Name())
		}
	})

	t.Run("explicit name", func(t *testing.T) {
		t.Parallel()
		g := newTestGenerator(t, &mockRenderer{})
		dest := t.TempDir()

		res, err := g.GenerateHTMLInvoice(ctx, minimalInvoice(), Options{Destination: dest, Name: "INV-7", Nomenclature: "hash"})
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dest, "INV-7.pdf"), res.PDFPath)
	})

	t.Run("page settings reach the renderer", func(t *testing.T) {
		t.Parallel()
		mock := &mockRenderer{}
		g := newTestGenerator(t, mock)

		_, err := g.GenerateHTMLInvoice(ctx, minimalInvoice(), Options{
			Destination: t.TempDir(),
			Format:      "Letter",
			Orientation: "landscape",
			Margin:      "0.5in",
		})
		require.NoError(t, err)
		require.Len(t, mock.pages, 1)
		assert.Equal(t, PageSettings{Width: 8.5, Height: 11, Margin: 0.5, Landscape: true}, mock.pages[0])
	})

	t.Run("unknown template", func(t *testing.T) {
		t.Parallel()
		mock := &mockRenderer{}
		g := newTestGenerator(t, mock)
		dest := t.TempDir()

		_, err := g.GenerateHTMLInvoice(ctx, minimalInvoice(), Options{Destination: dest, Template: "doesnotexist42"})
		require.ErrorIs(t, err, ErrTemplateNotFound)
		assert.Zero(t, mock.callCount())
	})

	t.Run("invalid data stops before writing", func(t *testing.T) {
		t.Parallel()
		mock := &mockRenderer{}
		g := newTestGenerator(t, mock)
		dest := filepath.Join(t.TempDir(), "out")

		_, err := g.GenerateHTMLInvoice(ctx, InvoiceData{"items": []any{}}, Options{Destination: dest})
		require.ErrorIs(t, err, ErrInvalidDataObject)
		assert.Zero(t, mock.callCount())
		assert.NoDirExists(t, dest)
	})

	t.Run("invalid options stop before writing", func(t *testing.T) {
		t.Parallel()
		mock := &mockRenderer{}
		g := newTestGenerator(t, mock)

		_, err := g.GenerateHTMLInvoice(ctx, minimalInvoice(), Options{Destination: t.TempDir(), Format: "B5"})
		require.ErrorIs(t, err, ErrInvalidFormat)
		assert.Zero(t, mock.callCount())
	})

	t.Run("pdf failure keeps html", func(t *testing.T) {
		t.Parallel()
		g := newTestGenerator(t, &mockRenderer{err: ErrHTMLGeneration})
		dest := t.TempDir()

		_, err := g.GenerateHTMLInvoice(ctx, minimalInvoice(), Options{Destination: dest})
		require.ErrorIs(t, err, ErrHTMLGeneration)
		assert.FileExists(t, filepath.Join(dest, "index.html"))
		assert.NoFileExists(t, filepath.Join(dest, "index.pdf"))
	})

	t.Run("renderer panic becomes error", func(t *testing.T) {
		t.Parallel()
		g := newTestGenerator(t, &mockRenderer{panic: true})

		_, err := g.GenerateHTMLInvoice(ctx, minimalInvoice(), Options{Destination: t.TempDir()})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "internal error")
	})
}

// ---------------------------------------------------------------------------
// TestNewGenerator - Options
// ---------------------------------------------------------------------------

func TestNewGenerator(t *testing.T) {
	t.Parallel()

	t.Run("template directory overrides bundled names", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "default.html"), []byte(`custom {{grandtotal .items}}`), 0o600))

		g := newTestGenerator(t, &mockRenderer{}, WithTemplateDir(dir))
		html, err := g.GenerateInvoice(context.Background(), minimalInvoice(), Options{})
		require.NoError(t, err)
		assert.Equal(t, "custom 22", html)
	})

	t.Run("invalid template directory", func(t *testing.T) {
		t.Parallel()
		_, err := NewGenerator(WithTemplateDir(filepath.Join(t.TempDir(), "missing")))
		require.ErrorIs(t, err, ErrInvalidTemplateDir)
	})

	t.Run("logger receives stage events", func(t *testing.T) {
		t.Parallel()
		core, logs := observer.New(zap.DebugLevel)
		g := newTestGenerator(t, &mockRenderer{}, WithLogger(zap.New(core)))

		_, err := g.GenerateHTMLInvoice(context.Background(), minimalInvoice(), Options{Destination: t.TempDir()})
		require.NoError(t, err)
		assert.Equal(t, 1, logs.FilterMessage("invoice generated").Len())
		assert.Equal(t, 1, logs.FilterMessage("validating invoice data").Len())
	})

	t.Run("timeout is kept", func(t *testing.T) {
		t.Parallel()
		g, err := NewGenerator(WithTimeout(time.Minute))
		require.NoError(t, err)
		assert.Equal(t, time.Minute, g.cfg.timeout)
		rr, ok := g.pdf.(*rodRenderer)
		require.True(t, ok)
		assert.Equal(t, time.Minute, rr.timeout)
	})

	t.Run("non-positive timeout panics", func(t *testing.T) {
		t.Parallel()
		assert.Panics(t, func() { WithTimeout(0) })
	})
}

// ---------------------------------------------------------------------------
// Package-level helpers
// ---------------------------------------------------------------------------

func TestValidate(t *testing.T) {
	t.Parallel()

	require.NoError(t, Validate(minimalInvoice()))
	require.NoError(t, Validate(map[string]any{"items": minimalInvoice()["items"], "extra": true}))

	err := Validate(map[string]any{})
	require.Error(t, err)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
}

func TestResolveTemplateLocation(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "templates/default.html", ResolveTemplateLocation("").Path)
	assert.Equal(t, "templates/minimal.html", ResolveTemplateLocation("minimal").Path)
	assert.Equal(t, "../x.html", ResolveTemplateLocation("../x.html").Path)
	assert.ElementsMatch(t, []string{"default", "minimal"}, BundledTemplates())
}
