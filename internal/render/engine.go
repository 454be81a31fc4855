package render

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"time"

	"golang.org/x/text/language"

	"github.com/alnah/go-revoice/internal/dateutil"
	"github.com/alnah/go-revoice/internal/markdown"
)

// Sentinel errors for rendering.
var (
	ErrTemplateParse   = errors.New("template parse failed")
	ErrTemplateExecute = errors.New("template execution failed")
)

// Engine renders invoice templates.
type Engine struct {
	locale language.Tag
	now    func() time.Time
	md     *markdown.Converter
}

// Option configures an Engine.
type Option func(*Engine)

// WithLocale sets the locale used to format amounts whose currency has no
// registered convention. Defaults to English.
func WithLocale(tag language.Tag) Option {
	return func(e *Engine) {
		e.locale = tag
	}
}

// WithClock sets the time source behind the "today" date value.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// New creates an Engine.
func New(opts ...Option) *Engine {
	e := &Engine{locale: language.English, now: time.Now, md: markdown.New()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Render parses text as an HTML template named name and executes it against
// data. Character references in the output's text are then decoded, keeping
// only "&lt;", "&gt;" and "&amp;" escaped.
func (e *Engine) Render(name, text string, data any) (string, error) {
	tmpl, err := template.New(name).
		Funcs(e.funcMap()).
		Parse(text)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTemplateParse, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrTemplateExecute, err)
	}

	out, err := decodeTextEntities(buf.String())
	if err != nil {
		return "", fmt.Errorf("%w: decoding entities: %v", ErrTemplateExecute, err)
	}
	return out, nil
}

// funcMap returns the helpers for a single Render call.
func (e *Engine) funcMap() template.FuncMap {
	formatter := newCurrencyFormatter(e.locale)
	now := e.now()
	return template.FuncMap{
		"sum":        Sum,
		"product":    Product,
		"format":     Format,
		"subtotal":   Subtotal,
		"taxtotal":   TaxTotal,
		"grandtotal": GrandTotal,
		"currency":   formatter.Format,
		"date": func(layout string, value any) (string, error) {
			return dateutil.Format(layout, value, now)
		},
		"markdown": e.markdown,
	}
}

// markdown renders a data value as Markdown. Non-string values are
// formatted with fmt first; nil renders nothing.
func (e *Engine) markdown(value any) (template.HTML, error) {
	switch v := value.(type) {
	case nil:
		return "", nil
	case string:
		return e.md.ToHTML(v)
	default:
		return e.md.ToHTML(fmt.Sprint(v))
	}
}
