package hints

// Notes:
// - ForBrowserConnect tests cannot use t.Parallel() because they:
//   1. Use t.Setenv() which modifies process environment
//   2. Modify the package-level IsInContainer variable

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func stubContainer(t *testing.T, inContainer bool) {
	t.Helper()
	orig := IsInContainer
	t.Cleanup(func() { IsInContainer = orig })
	IsInContainer = func() bool { return inContainer }
}

func clearCIEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL"} {
		t.Setenv(key, "")
	}
}

// ---------------------------------------------------------------------------
// TestForBrowserConnect - Environment-dependent suggestions
// ---------------------------------------------------------------------------

func TestForBrowserConnect(t *testing.T) {
	tests := []struct {
		name        string
		ci          string
		container   bool
		noSandbox   string
		browserBin  string
		wantSandbox bool
		wantBin     bool
	}{
		{name: "in CI", ci: "true", wantSandbox: true, wantBin: true},
		{name: "in Docker", container: true, wantSandbox: true, wantBin: true},
		{name: "sandbox already disabled", container: true, noSandbox: "1", wantBin: true},
		{name: "browser bin set", browserBin: "/usr/bin/chromium"},
		{name: "desktop without bin", wantBin: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stubContainer(t, tt.container)
			clearCIEnv(t)
			t.Setenv("CI", tt.ci)
			t.Setenv("ROD_NO_SANDBOX", tt.noSandbox)
			t.Setenv("ROD_BROWSER_BIN", tt.browserBin)

			hint := ForBrowserConnect()

			assert.Equal(t, tt.wantSandbox, strings.Contains(hint, "ROD_NO_SANDBOX"), hint)
			assert.Equal(t, tt.wantBin, strings.Contains(hint, "ROD_BROWSER_BIN"), hint)
			if !tt.wantSandbox && !tt.wantBin {
				assert.Empty(t, hint)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Static hints
// ---------------------------------------------------------------------------

func TestForConfigNotFound(t *testing.T) {
	t.Parallel()

	hint := ForConfigNotFound([]string{"work.yaml", "/home/me/.config/go-revoice/work.yaml"})
	assert.Contains(t, hint, "--config")
	assert.Contains(t, hint, "or create /home/me/.config/go-revoice/work.yaml")

	hint = ForConfigNotFound(nil)
	assert.NotContains(t, hint, "or create")
}

func TestForTemplateNotFound(t *testing.T) {
	t.Parallel()

	hint := ForTemplateNotFound([]string{"default", "minimal"})
	assert.Contains(t, hint, "bundled: default, minimal")
	assert.Contains(t, hint, "paths")

	assert.NotContains(t, ForTemplateNotFound(nil), "bundled:")
}

func TestFormat_Consistency(t *testing.T) {
	t.Parallel()

	for _, hint := range []string{
		ForTimeout(),
		ForOutputDirectory(),
		ForInvalidData(),
		ForTemplateNotFound(nil),
		ForConfigNotFound(nil),
	} {
		assert.True(t, strings.HasPrefix(hint, "\n  hint: "), "%q", hint)
		assert.Equal(t, 1, strings.Count(hint, "hint:"), "%q", hint)
	}
}

func TestFormatHints_Empty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, formatHints(nil))
	assert.Empty(t, format(""))
}
