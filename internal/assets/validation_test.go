package assets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsTemplateName(t *testing.T) {
	t.Parallel()

	tests := map[string]bool{
		"default":     true,
		"Minimal":     true,
		"v2":          true,
		"2024":        true,
		"":            false,
		"my-template": false,
		"my_template": false,
		"a.html":      false,
		"../x":        false,
		"dir/name":    false,
		`dir\name`:    false,
		"with space":  false,
		"naïve":       false,
	}

	for id, want := range tests {
		assert.Equal(t, want, IsTemplateName(id), "IsTemplateName(%q)", id)
	}
}

func TestValidateAssetName(t *testing.T) {
	t.Parallel()

	require.NoError(t, ValidateAssetName("default"))
	require.ErrorIs(t, ValidateAssetName(""), ErrInvalidAssetName)
	require.ErrorIs(t, ValidateAssetName("a/b"), ErrInvalidAssetName)
	require.ErrorIs(t, ValidateAssetName("a.b"), ErrInvalidAssetName)
}

func TestEmbeddedLoader(t *testing.T) {
	t.Parallel()

	loader := NewEmbeddedLoader()

	got, err := loader.LoadTemplate("default")
	require.NoError(t, err)
	assert.Contains(t, got, "grandtotal")

	_, err = loader.LoadTemplate("nonexistent")
	require.ErrorIs(t, err, ErrTemplateNotFound)

	schema, err := loader.LoadSchema("item")
	require.NoError(t, err)
	assert.Contains(t, schema, "#Item")
}
