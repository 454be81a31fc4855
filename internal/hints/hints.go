// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-revoice/internal/fileutil"
)

// IsInContainer reports whether the process runs in a Docker container,
// which creates /.dockerenv.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ciEnvVars are set by the CI providers whose runners lack a Chrome sandbox.
var ciEnvVars = []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL"}

func inCI() bool {
	for _, key := range ciEnvVars {
		if os.Getenv(key) != "" {
			return true
		}
	}
	return false
}

// ForBrowserConnect suggests the ROD_* variables that fit the environment:
// disabling the sandbox in CI or containers, and pointing at a local Chrome
// when rod would otherwise download one.
func ForBrowserConnect() string {
	var hints []string

	sandboxed := os.Getenv("ROD_NO_SANDBOX") != "1"
	if sandboxed && (inCI() || IsInContainer()) {
		hints = append(hints, "set ROD_NO_SANDBOX=1 when running in Docker or CI")
	}

	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to an installed Chrome or Chromium")
	}

	return formatHints(hints)
}

// ForTimeout returns a hint about increasing timeout for slow renders.
func ForTimeout() string {
	return format("for templates with remote assets, use --timeout flag")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-revoice/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/go-revoice") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForTemplateNotFound lists the bundled templates and explains how paths
// are recognised.
func ForTemplateNotFound(available []string) string {
	var hints []string
	if len(available) > 0 {
		hints = append(hints, "bundled: "+strings.Join(available, ", "))
	}
	hints = append(hints, "names with other characters than letters and digits are read as paths")
	return formatHints(hints)
}

// ForInvalidData points to the fields every invoice needs.
func ForInvalidData() string {
	return format("each invoice needs items: [{amount, quantity}, ...]; run 'revoice validate' to list all problems")
}

// format prefixes hint with the marker every hint starts with.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins hints on one line.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
