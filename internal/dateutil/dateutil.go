// Package dateutil formats invoice dates with user-friendly layouts.
package dateutil

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"
)

// ErrInvalidLayout indicates an invalid date layout string.
var ErrInvalidLayout = errors.New("invalid date layout")

// MaxLayoutLength limits layout length to prevent abuse.
const MaxLayoutLength = 50

// DefaultLayout is used when a layout is empty.
const DefaultLayout = "YYYY-MM-DD"

// Today is the date value that resolves to the current day.
const Today = "today"

// tokens maps layout tokens to Go time layout components.
// Ordered by length descending for greedy matching.
var tokens = []struct {
	token string
	goFmt string
}{
	{"YYYY", "2006"},
	{"MMMM", "January"},
	{"MMM", "Jan"},
	{"YY", "06"},
	{"MM", "01"},
	{"DD", "02"},
	{"M", "1"},
	{"D", "2"},
}

// Presets provides named shortcuts for common layouts.
var Presets = map[string]string{
	"iso":      "YYYY-MM-DD",
	"european": "DD/MM/YYYY",
	"us":       "MM/DD/YYYY",
	"long":     "MMMM D, YYYY",
}

// inputLayouts are tried in order when a date is given as a string.
var inputLayouts = []string{
	time.DateOnly,
	time.RFC3339,
	time.DateTime,
}

// Layout is a parsed date layout. Token parts hold Go time layouts; literal
// parts are written as is, so "15" or "Jan" outside a token never reaches
// time.Format.
type Layout []part

type part struct {
	text    string
	literal bool
}

// Format writes t using the layout.
func (l Layout) Format(t time.Time) string {
	var b strings.Builder
	for _, p := range l {
		if p.literal {
			b.WriteString(p.text)
			continue
		}
		b.WriteString(t.Format(p.text))
	}
	return b.String()
}

func (l Layout) appendLiteral(text string) Layout {
	if text == "" {
		return l
	}
	if n := len(l); n > 0 && l[n-1].literal {
		l[n-1].text += text
		return l
	}
	return append(l, part{text: text, literal: true})
}

// ParseLayout parses a layout or preset name.
// Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D. Text in brackets is kept
// literally: "[Due] DD/MM" gives "Due 05/03". Other characters pass through.
func ParseLayout(layout string) (Layout, error) {
	if layout == "" {
		layout = DefaultLayout
	}
	if len(layout) > MaxLayoutLength {
		return nil, fmt.Errorf("%w: exceeds %d characters", ErrInvalidLayout, MaxLayoutLength)
	}
	if preset, ok := Presets[strings.ToLower(layout)]; ok {
		layout = preset
	}

	var parsed Layout
	for rest := layout; rest != ""; {
		if literal, ok := strings.CutPrefix(rest, "["); ok {
			text, after, closed := strings.Cut(literal, "]")
			if !closed {
				return nil, fmt.Errorf("%w: unclosed bracket at position %d", ErrInvalidLayout, len(layout)-len(rest))
			}
			parsed = parsed.appendLiteral(text)
			rest = after
			continue
		}

		if goFmt, after, ok := cutToken(rest); ok {
			parsed = append(parsed, part{text: goFmt})
			rest = after
			continue
		}

		_, size := utf8.DecodeRuneInString(rest)
		parsed = parsed.appendLiteral(rest[:size])
		rest = rest[size:]
	}

	return parsed, nil
}

// cutToken returns the Go form of the token at the start of s and what remains.
func cutToken(s string) (goFmt, rest string, ok bool) {
	for _, t := range tokens {
		if after, found := strings.CutPrefix(s, t.token); found {
			return t.goFmt, after, true
		}
	}
	return "", s, false
}

// Resolve interprets value as a date. It accepts time.Time, Today and
// strings in ISO 8601 date, RFC 3339 or "2006-01-02 15:04:05" form.
// ok is false for anything else.
func Resolve(value any, now time.Time) (t time.Time, ok bool) {
	switch v := value.(type) {
	case time.Time:
		return v, true
	case *time.Time:
		if v == nil {
			return time.Time{}, false
		}
		return *v, true
	case string:
		s := strings.TrimSpace(v)
		if strings.EqualFold(s, Today) {
			return now, true
		}
		for _, layout := range inputLayouts {
			if parsed, err := time.Parse(layout, s); err == nil {
				return parsed, true
			}
		}
	}
	return time.Time{}, false
}

// Format renders value with layout. Values that are not dates are returned
// unchanged so free-form text such as "on receipt" survives.
func Format(layout string, value any, now time.Time) (string, error) {
	parsed, err := ParseLayout(layout)
	if err != nil {
		return "", err
	}

	t, ok := Resolve(value, now)
	if !ok {
		if value == nil {
			return "", nil
		}
		return fmt.Sprint(value), nil
	}
	return parsed.Format(t), nil
}
