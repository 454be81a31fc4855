package assets

import (
	"fmt"
	"regexp"
)

// templateNamePattern matches identifiers that name a bundled template.
var templateNamePattern = regexp.MustCompile(`^[A-Za-z0-9]+$`)

// IsTemplateName reports whether id is composed solely of ASCII letters and
// digits, which makes it a bundled-template name rather than a path.
func IsTemplateName(id string) bool {
	return templateNamePattern.MatchString(id)
}

// ValidateAssetName checks that name can be looked up in an asset directory.
// Only alphanumeric names are accepted, which rules out separators, dots and
// traversal sequences.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if !IsTemplateName(name) {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
