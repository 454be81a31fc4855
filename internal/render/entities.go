package render

import (
	"errors"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// markupEscaper re-escapes the characters that would change the document
// structure if written literally in text.
var markupEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// rawTextElements hold text that is never entity-decoded by a browser.
var rawTextElements = map[atom.Atom]bool{
	atom.Script:    true,
	atom.Style:     true,
	atom.Xmp:       true,
	atom.Iframe:    true,
	atom.Noembed:   true,
	atom.Noframes:  true,
	atom.Noscript:  true,
	atom.Plaintext: true,
}

// decodeTextEntities turns character references in text nodes into literal
// characters: "O&#39;Brien" becomes "O'Brien" and "&euro;" becomes "€".
// "&lt;", "&gt;" and "&amp;" stay escaped. Tags, attribute values, comments
// and raw text elements are copied unchanged.
func decodeTextEntities(doc string) (string, error) {
	if !strings.Contains(doc, "&") {
		return doc, nil
	}

	var b strings.Builder
	b.Grow(len(doc))

	z := html.NewTokenizer(strings.NewReader(doc))
	inRawText := false
	for {
		tt := z.Next()
		raw := z.Raw()

		switch tt {
		case html.ErrorToken:
			b.Write(raw)
			if err := z.Err(); !errors.Is(err, io.EOF) {
				return "", err
			}
			return b.String(), nil

		case html.TextToken:
			if inRawText || !strings.Contains(string(raw), "&") {
				b.Write(raw)
				continue
			}
			b.WriteString(markupEscaper.Replace(html.UnescapeString(string(raw))))

		case html.StartTagToken:
			b.Write(raw)
			name, _ := z.TagName()
			inRawText = rawTextElements[atom.Lookup(name)]

		default:
			b.Write(raw)
			inRawText = false
		}
	}
}
