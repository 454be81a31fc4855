package render

// Notes:
// - Expectations use Unix paths; the test is skipped on Windows where
//   file URLs gain a drive letter.

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveAssetPaths(t *testing.T) {
	t.Parallel()
	if runtime.GOOS == "windows" {
		t.Skip("unix paths")
	}

	tests := []struct {
		name string
		doc  string
		dir  string
		want string
	}{
		{
			name: "no base dir",
			doc:  `<img src="logo.png">`,
			want: `<img src="logo.png">`,
		},
		{
			name: "fragment image",
			doc:  `<img src="logo.png" alt="ACME">`,
			dir:  "/tpl",
			want: `<img src="file:///tpl/logo.png" alt="ACME"/>`,
		},
		{
			name: "dot slash and nested dirs",
			doc:  `<img src="./img/logo.png">`,
			dir:  "/tpl",
			want: `<img src="file:///tpl/img/logo.png"/>`,
		},
		{
			name: "spaces are escaped",
			doc:  `<img src="my logo.png">`,
			dir:  "/tpl",
			want: `<img src="file:///tpl/my%20logo.png"/>`,
		},
		{
			name: "urls untouched",
			doc:  `<img src="https://cdn.example.com/a.png"><img src="data:image/png;base64,AA==">`,
			dir:  "/tpl",
			want: `<img src="https://cdn.example.com/a.png"><img src="data:image/png;base64,AA==">`,
		},
		{
			name: "absolute path untouched",
			doc:  `<img src="/srv/logo.png">`,
			dir:  "/tpl",
			want: `<img src="/srv/logo.png">`,
		},
		{
			name: "traversal untouched",
			doc:  `<img src="../secret.png">`,
			dir:  "/tpl",
			want: `<img src="../secret.png">`,
		},
		{
			name: "anchors untouched",
			doc:  `<a href="#total">total</a>`,
			dir:  "/tpl",
			want: `<a href="#total">total</a>`,
		},
		{
			name: "text stays literal after rewrite",
			doc:  `<p>O'Brien &amp; Co &lt;Ltd&gt;</p><img src="logo.png">`,
			dir:  "/tpl",
			want: `<p>O'Brien &amp; Co &lt;Ltd&gt;</p><img src="file:///tpl/logo.png"/>`,
		},
		{
			name: "no references",
			doc:  `<p>20.00</p>`,
			dir:  "/tpl",
			want: `<p>20.00</p>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ResolveAssetPaths(tt.doc, tt.dir)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveAssetPaths_FullDocument(t *testing.T) {
	t.Parallel()
	if runtime.GOOS == "windows" {
		t.Skip("unix paths")
	}

	doc := `<!DOCTYPE html><html><head><link rel="stylesheet" href="invoice.css"></head><body><img src="logo.png"></body></html>`

	got, err := ResolveAssetPaths(doc, "/tpl")
	require.NoError(t, err)

	assert.Contains(t, got, `<!DOCTYPE html>`)
	assert.Contains(t, got, `href="file:///tpl/invoice.css"`)
	assert.Contains(t, got, `src="file:///tpl/logo.png"`)
}
