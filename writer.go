package revoice

import (
	"encoding/hex"
	"fmt"
	"path/filepath"

	"golang.org/x/crypto/blake2b"

	"github.com/alnah/go-revoice/internal/fileutil"
)

// defaultBaseName names output files when neither Name nor a nomenclature
// is given.
const defaultBaseName = "index"

// contentHash returns the hex BLAKE2b-512 digest of the rendered HTML.
func contentHash(html string) string {
	sum := blake2b.Sum512([]byte(html))
	return hex.EncodeToString(sum[:])
}

// validateName checks that name is usable as a single file name.
func validateName(name string) error {
	if err := fileutil.ValidateBaseName(name); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidName, err)
	}
	return nil
}

// baseName resolves the output file name: Name, then the content hash when
// Nomenclature is "hash", then "index".
func baseName(html string, opts Options) (string, error) {
	switch {
	case opts.Name != "":
		if err := validateName(opts.Name); err != nil {
			return "", err
		}
		return opts.Name, nil
	case opts.Nomenclature == NomenclatureHash:
		return contentHash(html), nil
	case opts.Nomenclature == "":
		return defaultBaseName, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedNomenclature, opts.Nomenclature)
	}
}

// writeHTML writes html to <Destination>/<name>.html, creating the
// destination if needed, and returns the written path.
func writeHTML(html string, opts Options) (string, error) {
	name, err := baseName(html, opts)
	if err != nil {
		return "", err
	}

	if err := fileutil.EnsureDir(opts.Destination); err != nil {
		return "", fmt.Errorf("%w: %v", ErrWriteHTML, err)
	}

	path := filepath.Join(opts.Destination, name+".html")
	if err := fileutil.WriteFileAtomic(path, []byte(html)); err != nil {
		return "", fmt.Errorf("%w: %v", ErrWriteHTML, err)
	}

	return path, nil
}
