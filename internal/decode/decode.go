// Package decode reads invoice data and configuration documents.
// YAML is a superset of JSON, so both formats go through the same YAML
// decoder; the package isolates that dependency from callers.
package decode

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
)

// MaxInputSize limits decoded documents to prevent memory exhaustion (default 4MB).
var MaxInputSize = 4 << 20

var (
	ErrNilData           = errors.New("decode: nil or empty data")
	ErrNilDestination    = errors.New("decode: nil destination pointer")
	ErrInputTooLarge     = errors.New("decode: input exceeds maximum size")
	ErrUnsupportedFormat = errors.New("decode: unsupported file extension")
	ErrReadFile          = errors.New("decode: failed to read file")
	ErrSyntax            = errors.New("decode: malformed document")
)

// supportedExtensions lists the data file extensions accepted by File.
var supportedExtensions = map[string]bool{
	".json": true,
	".yaml": true,
	".yml":  true,
}

func validateInput(data []byte, v any) error {
	if len(data) == 0 {
		return ErrNilData
	}
	if len(data) > MaxInputSize {
		return fmt.Errorf("%w: %d bytes (max %d)", ErrInputTooLarge, len(data), MaxInputSize)
	}
	if v == nil {
		return ErrNilDestination
	}
	return nil
}

// Unmarshal decodes a JSON or YAML document into v.
func Unmarshal(data []byte, v any) error {
	if err := validateInput(data, v); err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %v", ErrSyntax, err)
	}
	return nil
}

// UnmarshalStrict rejects unknown fields in the input.
func UnmarshalStrict(data []byte, v any) error {
	if err := validateInput(data, v); err != nil {
		return err
	}
	if err := yaml.UnmarshalWithOptions(data, v, yaml.Strict()); err != nil {
		return fmt.Errorf("%w: %v", ErrSyntax, err)
	}
	return nil
}

// IsSupportedFile reports whether path has a .json, .yaml or .yml extension.
func IsSupportedFile(path string) bool {
	return supportedExtensions[strings.ToLower(filepath.Ext(path))]
}

// File reads and decodes the document at path. The extension selects
// nothing beyond acceptance: every supported format is parsed as YAML.
func File(path string, v any) error {
	if !IsSupportedFile(path) {
		return fmt.Errorf("%w: %q (want .json, .yaml or .yml)", ErrUnsupportedFormat, filepath.Ext(path))
	}

	data, err := os.ReadFile(path) // #nosec G304 -- data file path is user-provided
	if err != nil {
		return fmt.Errorf("%w: %v", ErrReadFile, err)
	}

	return Unmarshal(data, v)
}
