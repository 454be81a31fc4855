package revoice

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"

	"github.com/alnah/go-revoice/internal/fileutil"
	"github.com/alnah/go-revoice/internal/process"
)

// pdfRenderer prints an HTML file to a PDF file.
type pdfRenderer interface {
	RenderFile(ctx context.Context, htmlPath, pdfPath string, page PageSettings) error
}

// Compile-time interface check.
var _ pdfRenderer = (*rodRenderer)(nil)

// Chrome flags letting a file:// page load sibling files and cross-origin
// resources referenced by templates.
const (
	flagFileAccess  = "allow-file-access-from-files"
	flagWebSecurity = "disable-web-security"
)

// browserHandle owns one headless Chrome process.
type browserHandle struct {
	launcher *launcher.Launcher
	browser  *rod.Browser
}

// acquireBrowser launches Chrome and connects to it. The caller must call
// release on the returned handle.
func acquireBrowser(ctx context.Context) (*browserHandle, error) {
	l := launcher.New().Context(ctx)

	// Use pre-installed browser if specified (Docker/containerized environments)
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}

	// NoSandbox required for CI and containerized environments
	if os.Getenv("CI") == "true" || os.Getenv("ROD_NO_SANDBOX") == "1" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}

	l = l.Set(flagFileAccess).Set(flagWebSecurity)

	u, err := l.Launch()
	if err != nil {
		l.Kill()
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	h := &browserHandle{launcher: l}

	browser := rod.New().ControlURL(u).Context(ctx)
	if err := browser.Connect(); err != nil {
		h.release()
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}
	h.browser = browser

	return h, nil
}

// release closes the browser and kills the launcher process group.
// Safe to call on a partially initialized handle.
func (h *browserHandle) release() {
	if h.browser != nil {
		_ = h.browser.Close()
		h.browser = nil
	}
	if h.launcher != nil {
		pid := h.launcher.PID()
		h.launcher.Kill()
		process.KillProcessGroup(pid)
		h.launcher = nil
	}
}

// rodRenderer implements pdfRenderer with one browser per call.
type rodRenderer struct {
	timeout time.Duration
	logger  *zap.Logger
}

func newRodRenderer(timeout time.Duration, logger *zap.Logger) *rodRenderer {
	return &rodRenderer{timeout: timeout, logger: logger}
}

// RenderFile opens htmlPath in headless Chrome and writes the printed PDF to
// pdfPath. The browser is released on every return path.
func (r *rodRenderer) RenderFile(ctx context.Context, htmlPath, pdfPath string, page PageSettings) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	h, err := acquireBrowser(ctx)
	if err != nil {
		return err
	}
	defer h.release()
	r.logger.Debug("browser acquired", zap.Int("pid", h.launcher.PID()))

	fileURL, err := fileURLFor(htmlPath)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPageCreate, err)
	}

	p, err := h.browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer func() { _ = p.Close() }()

	if err := p.Navigate(fileURL); err != nil {
		var navErr *rod.NavigationError
		if errors.As(err, &navErr) {
			return fmt.Errorf("%w: %s", ErrHTMLGeneration, navErr.Reason)
		}
		return fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	if err := p.WaitLoad(); err != nil {
		return fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	reader, err := p.PDF(buildPDFOptions(page))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPDFGeneration, err)
	}

	pdf, err := io.ReadAll(reader)
	if err != nil {
		return fmt.Errorf("%w: reading PDF stream: %v", ErrPDFGeneration, err)
	}

	if err := fileutil.WriteFileAtomic(pdfPath, pdf); err != nil {
		return fmt.Errorf("%w: %v", ErrWritePDF, err)
	}

	return nil
}

// buildPDFOptions maps page geometry onto Chrome's print parameters.
func buildPDFOptions(page PageSettings) *proto.PagePrintToPDF {
	return &proto.PagePrintToPDF{
		Landscape:       page.Landscape,
		PaperWidth:      floatPtr(page.Width),
		PaperHeight:     floatPtr(page.Height),
		MarginTop:       floatPtr(page.Margin),
		MarginBottom:    floatPtr(page.Margin),
		MarginLeft:      floatPtr(page.Margin),
		MarginRight:     floatPtr(page.Margin),
		PrintBackground: true,
	}
}

// fileURLFor returns the file:// URL of path.
func fileURLFor(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	slashed := filepath.ToSlash(abs)
	if !strings.HasPrefix(slashed, "/") {
		slashed = "/" + slashed // Windows drive letters
	}

	return (&url.URL{Scheme: "file", Path: slashed}).String(), nil
}

// floatPtr returns a pointer to a float64 value.
func floatPtr(v float64) *float64 {
	return &v
}
