// Package markdown converts short Markdown texts, such as invoice notes and
// payment terms, to HTML fragments.
package markdown

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// ErrConversion indicates Markdown conversion failed.
var ErrConversion = errors.New("markdown conversion failed")

// highlightStyle colours fenced code blocks. Styles are inlined because
// invoice templates carry no highlighting stylesheet.
const highlightStyle = "github"

// Converter converts Markdown to HTML. It is safe for concurrent use.
type Converter struct {
	md goldmark.Markdown
}

// New creates a Converter with GFM extensions and syntax highlighting.
// Raw HTML in the source is omitted from the output.
func New() *Converter {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM, // Tables, strikethrough, autolinks, task lists
			highlighting.NewHighlighting(
				highlighting.WithStyle(highlightStyle),
				highlighting.WithFormatOptions(
					chromahtml.TabWidth(4),
				),
			),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(), // Line breaks in notes are kept
			html.WithXHTML(),
		),
	)
	return &Converter{md: md}
}

// ToHTML converts src to an HTML fragment ready to be placed in a template.
func (c *Converter) ToHTML(src string) (template.HTML, error) {
	if src == "" {
		return "", nil
	}

	var buf bytes.Buffer
	if err := c.md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("%w: %v", ErrConversion, err)
	}

	return template.HTML(buf.String()), nil // #nosec G203 -- goldmark output, raw HTML disabled
}
