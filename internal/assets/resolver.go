package assets

import (
	"errors"
	"fmt"
	"os"
)

// AssetResolver combines custom and embedded loaders with fallback logic.
// When a custom loader is configured, it tries custom first, then falls back
// to embedded if the template is not found in the custom location.
type AssetResolver struct {
	custom   TemplateLoader // nil if no custom path configured
	embedded *EmbeddedLoader
}

// NewAssetResolver creates an AssetResolver.
// If customBasePath is empty, only embedded assets are used.
// Returns error if customBasePath is set but invalid.
func NewAssetResolver(customBasePath string) (*AssetResolver, error) {
	resolver := &AssetResolver{
		embedded: NewEmbeddedLoader(),
	}

	if customBasePath != "" {
		fsLoader, err := NewFilesystemLoader(customBasePath)
		if err != nil {
			return nil, err
		}
		resolver.custom = fsLoader
	}

	return resolver, nil
}

// LoadTemplate loads a named template, trying the custom loader first.
func (r *AssetResolver) LoadTemplate(name string) (string, error) {
	if r.custom == nil {
		return r.embedded.LoadTemplate(name)
	}

	content, err := r.custom.LoadTemplate(name)
	if err == nil {
		return content, nil
	}

	// Only fall back for "not found", not validation or I/O errors
	if !errors.Is(err, ErrTemplateNotFound) {
		return "", err
	}

	return r.embedded.LoadTemplate(name)
}

// LoadSchema loads a bundled schema. Schemas are a fixed contract and are
// never overridden by the custom directory.
func (r *AssetResolver) LoadSchema(name string) (string, error) {
	return r.embedded.LoadSchema(name)
}

// Load reads the template text at loc. Bundled locations go through
// LoadTemplate; path locations are read from disk verbatim.
func (r *AssetResolver) Load(loc Location) (string, error) {
	if loc.Bundled {
		return r.LoadTemplate(loc.Name)
	}

	content, err := os.ReadFile(loc.Path) // #nosec G304 -- user-provided template path
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrTemplateNotFound, loc.Path)
		}
		return "", fmt.Errorf("%w: %v", ErrAssetRead, err)
	}

	return string(content), nil
}

// Compile-time interface check.
var _ TemplateLoader = (*AssetResolver)(nil)
