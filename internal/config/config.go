// Package config loads revoice configuration files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-revoice/internal/decode"
	"github.com/alnah/go-revoice/internal/fileutil"
)

// AppName names the per-user configuration directory.
const AppName = "go-revoice"

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxPathLength         = 4096 // PATH_MAX on Linux
	MaxNameLength         = 255  // NAME_MAX, file name of the output
	MaxNomenclatureLength = 20   // "hash"
	MaxFormatLength       = 10   // "a4", "tabloid"
	MaxOrientationLength  = 10   // "portrait", "landscape"
	MaxMarginLength       = 20   // "12.5mm"
	MaxLocaleLength       = 35   // BCP 47 tags used in practice
)

// MaxWorkers bounds the batch worker count accepted from config.
const MaxWorkers = 64

// Config holds all configuration for invoice generation.
type Config struct {
	Template    string       `yaml:"template"`    // bundled name or path (empty = "default")
	TemplateDir string       `yaml:"templateDir"` // overrides bundled templates by name
	Output      OutputConfig `yaml:"output"`
	Page        PageConfig   `yaml:"page"`
	Locale      string       `yaml:"locale"`  // fallback locale for amounts, e.g. "fr-FR"
	Timeout     string       `yaml:"timeout"` // Go duration, e.g. "30s" (empty = library default)
	Workers     int          `yaml:"workers"` // batch parallelism (0 = automatic)
	Log         LogConfig    `yaml:"log"`
}

// OutputConfig defines where and under which name files are written.
type OutputConfig struct {
	Destination  string `yaml:"destination"`
	Name         string `yaml:"name"`
	Nomenclature string `yaml:"nomenclature"` // "" or "hash"
}

// PageConfig defines PDF page settings.
type PageConfig struct {
	Format      string `yaml:"format"`      // A3, A4, A5, Letter, Legal, Tabloid
	Orientation string `yaml:"orientation"` // portrait, landscape
	Margin      string `yaml:"margin"`      // CSS length: "1cm", "10mm", "0.5in"
}

// LogConfig defines logger settings.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DefaultConfig returns an empty configuration; empty fields fall back to
// library defaults.
func DefaultConfig() *Config {
	return &Config{}
}

// Validate checks field lengths and the values that do not depend on the
// library (durations, worker count). Page geometry is checked where it is
// used.
func (c *Config) Validate() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"template", c.Template, MaxPathLength},
		{"templateDir", c.TemplateDir, MaxPathLength},
		{"output.destination", c.Output.Destination, MaxPathLength},
		{"output.name", c.Output.Name, MaxNameLength},
		{"output.nomenclature", c.Output.Nomenclature, MaxNomenclatureLength},
		{"page.format", c.Page.Format, MaxFormatLength},
		{"page.orientation", c.Page.Orientation, MaxOrientationLength},
		{"page.margin", c.Page.Margin, MaxMarginLength},
		{"locale", c.Locale, MaxLocaleLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	if _, err := c.TimeoutDuration(); err != nil {
		return err
	}

	if c.Workers < 0 || c.Workers > MaxWorkers {
		return fmt.Errorf("%w: workers must be between 0 and %d, got %d", ErrInvalidValue, MaxWorkers, c.Workers)
	}

	return nil
}

// TimeoutDuration parses Timeout. An empty value yields zero.
func (c *Config) TimeoutDuration() (time.Duration, error) {
	if c.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("%w: timeout %q: %v", ErrInvalidValue, c.Timeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: timeout must be positive, got %s", ErrInvalidValue, d)
	}
	return d, nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if isFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := decode.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// SearchPaths lists the files tried for a config name, in lookup order:
// name.yaml and name.yml in the current directory, then in
// <user config dir>/go-revoice/.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, AppName, name+ext))
		}
	}

	return paths
}

// resolveConfigPath returns the first existing file of SearchPaths.
func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}
