package decode_test

// Notes:
// - JSON inputs go through the YAML decoder; the tests pin that integers stay
//   integers (uint64) and fractions stay float64, which schema validation
//   relies on.
// - File reads from t.TempDir() only.

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alnah/go-revoice/internal/decode"
)

type testConfig struct {
	Name    string `yaml:"name"`
	Count   int    `yaml:"count"`
	Enabled bool   `yaml:"enabled"`
}

// ---------------------------------------------------------------------------
// TestUnmarshal - Parses JSON and YAML into Go values
// ---------------------------------------------------------------------------

func TestUnmarshal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    []byte
		dest    any
		wantErr error
		check   func(t *testing.T, v any)
	}{
		{
			name: "valid YAML",
			data: []byte("name: test\ncount: 42\nenabled: true"),
			dest: &testConfig{},
			check: func(t *testing.T, v any) {
				cfg := v.(*testConfig)
				assert.Equal(t, "test", cfg.Name)
				assert.Equal(t, 42, cfg.Count)
				assert.True(t, cfg.Enabled)
			},
		},
		{
			name: "valid JSON",
			data: []byte(`{"name": "json", "count": 7}`),
			dest: &testConfig{},
			check: func(t *testing.T, v any) {
				cfg := v.(*testConfig)
				assert.Equal(t, "json", cfg.Name)
				assert.Equal(t, 7, cfg.Count)
			},
		},
		{
			name: "JSON into generic map keeps nested items",
			data: []byte(`{"items": [{"amount": 10.5, "quantity": 2}]}`),
			dest: &map[string]any{},
			check: func(t *testing.T, v any) {
				m := *v.(*map[string]any)
				items, ok := m["items"].([]any)
				require.True(t, ok, "items should decode to []any, got %T", m["items"])
				require.Len(t, items, 1)
				item, ok := items[0].(map[string]any)
				require.True(t, ok)
				assert.Equal(t, 10.5, item["amount"])
				assert.EqualValues(t, 2, item["quantity"])
			},
		},
		{
			name:    "nil data",
			data:    nil,
			dest:    &testConfig{},
			wantErr: decode.ErrNilData,
		},
		{
			name:    "empty data",
			data:    []byte{},
			dest:    &testConfig{},
			wantErr: decode.ErrNilData,
		},
		{
			name:    "nil destination",
			data:    []byte("name: test"),
			dest:    nil,
			wantErr: decode.ErrNilDestination,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := decode.Unmarshal(tt.data, tt.dest)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			if tt.check != nil {
				tt.check(t, tt.dest)
			}
		})
	}
}

func TestUnmarshal_SyntaxError(t *testing.T) {
	t.Parallel()

	err := decode.Unmarshal([]byte("name: [unclosed"), &testConfig{})
	require.ErrorIs(t, err, decode.ErrSyntax)
	assert.True(t, strings.HasPrefix(err.Error(), "decode:"), "error = %q", err)
}

func TestUnmarshal_InputTooLarge(t *testing.T) {
	t.Parallel()

	data := make([]byte, decode.MaxInputSize+1)
	for i := range data {
		data[i] = 'a'
	}

	err := decode.Unmarshal(data, &testConfig{})
	require.ErrorIs(t, err, decode.ErrInputTooLarge)
}

// ---------------------------------------------------------------------------
// TestUnmarshalStrict - Rejects unknown fields
// ---------------------------------------------------------------------------

func TestUnmarshalStrict(t *testing.T) {
	t.Parallel()

	var cfg testConfig
	require.NoError(t, decode.UnmarshalStrict([]byte("name: ok"), &cfg))
	assert.Equal(t, "ok", cfg.Name)

	err := decode.UnmarshalStrict([]byte("name: ok\nunknown: field"), &testConfig{})
	require.Error(t, err)
}

// ---------------------------------------------------------------------------
// TestFile - Reads data files by extension
// ---------------------------------------------------------------------------

func TestFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "invoice.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"name": "from-json"}`), 0o600))

	yamlPath := filepath.Join(dir, "invoice.YML")
	require.NoError(t, os.WriteFile(yamlPath, []byte("name: from-yaml"), 0o600))

	t.Run("json file", func(t *testing.T) {
		t.Parallel()
		var cfg testConfig
		require.NoError(t, decode.File(jsonPath, &cfg))
		assert.Equal(t, "from-json", cfg.Name)
	})

	t.Run("yaml file with uppercase extension", func(t *testing.T) {
		t.Parallel()
		var cfg testConfig
		require.NoError(t, decode.File(yamlPath, &cfg))
		assert.Equal(t, "from-yaml", cfg.Name)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		t.Parallel()
		err := decode.File(filepath.Join(dir, "invoice.txt"), &testConfig{})
		require.ErrorIs(t, err, decode.ErrUnsupportedFormat)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		err := decode.File(filepath.Join(dir, "missing.json"), &testConfig{})
		require.ErrorIs(t, err, decode.ErrReadFile)
	})
}

func TestIsSupportedFile(t *testing.T) {
	t.Parallel()

	tests := map[string]bool{
		"a.json":      true,
		"a.yaml":      true,
		"a.yml":       true,
		"dir/a.JSON":  true,
		"a.txt":       false,
		"a":           false,
		"a.json.bak":  false,
		".hidden.yml": true,
	}

	for path, want := range tests {
		assert.Equal(t, want, decode.IsSupportedFile(path), path)
	}
}
