package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/atomicstack/tasktray-quicklaunch/internal/logging"
)

// WriteShortcutFile writes lines to a shortcut file inside a fresh temp dir
// and returns its path.
func WriteShortcutFile(t *testing.T, lines ...string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "TaskTrayQuickLaunch.ini")
	content := ""
	if len(lines) > 0 {
		content = strings.Join(lines, "\n") + "\n"
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write shortcut file: %v", err)
	}
	return path
}

// ReadLines returns the non-empty lines of path.
func ReadLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	var out []string
	for _, line := range strings.Split(string(data), "\n") {
		if line = strings.TrimRight(line, "\r"); line != "" {
			out = append(out, line)
		}
	}
	return out
}

// RedirectLogs points the shared log at a temp file for the test's lifetime.
func RedirectLogs(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.log")
	logging.Configure(path)
	t.Cleanup(func() { logging.Configure("") })
	return path
}
