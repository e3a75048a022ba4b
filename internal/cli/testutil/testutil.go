// Package testutil provides fixtures and output assertions for CLI tests.
package testutil

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
)

// UserCatalog is a small formula file used by verify tests.
const UserCatalog = `constants:
  - name: golden_cube
    symbol: "φ³"
    expr: "pow(phi, 3)"
    experimental: 4.2360679775
    uncertainty: 1e-9
  - name: lucas_square
    symbol: "m_s/m_d"
    sector: quarks
    expr: "lucas(3) * lucas(3)"
    experimental: 20.0
`

// WriteCatalogFile writes content to a temporary formula file and returns its path.
func WriteCatalogFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write catalog file: %v", err)
	}
	return path
}

// StatePath returns a state database path inside a temporary directory.
func StatePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), ".goldensearch", "state.db")
}

// ansiPattern matches ANSI escape codes.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// AssertNoANSI checks that a string contains no ANSI escape codes.
func AssertNoANSI(t *testing.T, s string) {
	t.Helper()
	if ansiPattern.MatchString(s) {
		t.Errorf("string contains ANSI escape codes: %q", s)
	}
}

// AssertValidMarkdown performs basic markdown validation.
// It checks for unclosed code fences and basic structure.
func AssertValidMarkdown(t *testing.T, md string) {
	t.Helper()

	fenceCount := strings.Count(md, "```")
	if fenceCount%2 != 0 {
		t.Errorf("unbalanced code fences in markdown: found %d occurrences", fenceCount)
	}

	lines := strings.Split(md, "\n")
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") && strings.TrimLeft(trimmed, "# ") == "" {
			t.Errorf("empty header at line %d: %q", i+1, line)
		}
	}
}
