package render

import (
	"net/url"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// assetAttrs lists the attributes that reference files a template ships with.
var assetAttrs = map[atom.Atom]string{
	atom.Img:  "src",
	atom.Link: "href",
}

// ResolveAssetPaths rewrites relative img[src] and link[href] references
// in doc to absolute file:// URLs under baseDir, so a template's logo and
// stylesheet still load once the HTML is written elsewhere. An empty
// baseDir returns doc unchanged. References escaping baseDir are left as is.
func ResolveAssetPaths(doc, baseDir string) (string, error) {
	if baseDir == "" || !(strings.Contains(doc, "src=") || strings.Contains(doc, "href=")) {
		return doc, nil
	}

	absDir, err := filepath.Abs(baseDir)
	if err != nil {
		return "", err
	}

	root, fragment, err := parseDocument(doc)
	if err != nil {
		return "", err
	}

	var changed bool
	walk(root, func(n *html.Node) {
		key, ok := assetAttrs[n.DataAtom]
		if !ok {
			return
		}
		for i, attr := range n.Attr {
			if attr.Key != key || !isRelativeRef(attr.Val) {
				continue
			}
			abs := filepath.Join(absDir, filepath.FromSlash(attr.Val))
			if !isUnder(abs, absDir) {
				continue
			}
			n.Attr[i].Val = fileURL(abs)
			changed = true
		}
	})

	if !changed {
		return doc, nil
	}

	out, err := renderDocument(root, fragment)
	if err != nil {
		return "", err
	}
	return decodeTextEntities(out)
}

// parseDocument parses full documents as such and everything else as a
// body fragment, so fragments are not wrapped in <html><body>.
func parseDocument(doc string) (*html.Node, bool, error) {
	head := strings.ToLower(strings.TrimSpace(doc))
	if strings.HasPrefix(head, "<!doctype") || strings.HasPrefix(head, "<html") {
		root, err := html.Parse(strings.NewReader(doc))
		return root, false, err
	}

	body := &html.Node{Type: html.ElementNode, DataAtom: atom.Body, Data: "body"}
	nodes, err := html.ParseFragment(strings.NewReader(doc), body)
	if err != nil {
		return nil, true, err
	}

	root := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		root.AppendChild(n)
	}
	return root, true, nil
}

func renderDocument(root *html.Node, fragment bool) (string, error) {
	var b strings.Builder
	if !fragment {
		err := html.Render(&b, root)
		return b.String(), err
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&b, c); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}

func walk(n *html.Node, visit func(*html.Node)) {
	if n.Type == html.ElementNode {
		visit(n)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, visit)
	}
}

// isRelativeRef reports whether ref is a relative file reference: not empty,
// not an anchor, not absolute and without a URL scheme.
func isRelativeRef(ref string) bool {
	if ref == "" || strings.HasPrefix(ref, "#") || strings.HasPrefix(ref, "//") || filepath.IsAbs(ref) {
		return false
	}
	u, err := url.Parse(ref)
	return err == nil && u.Scheme == ""
}

// isUnder reports whether path lies inside dir.
func isUnder(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	return err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func fileURL(abs string) string {
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String()
}
