package logging

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestErrorAppendsToConfiguredFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "app.log")
	Configure(path)
	t.Cleanup(func() { Configure("") })

	Error(errors.New("first failure"))
	Errorf("second failure: %d", 2)
	Error(nil)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	text := string(data)
	if !strings.Contains(text, "first failure") || !strings.Contains(text, "second failure: 2") {
		t.Fatalf("unexpected log contents %q", text)
	}
	if got := strings.Count(text, "\n"); got != 2 {
		t.Fatalf("expected 2 lines, got %d", got)
	}
}

func TestTraceOnlyWhenEnabled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.log")
	Configure(path)
	t.Cleanup(func() {
		Configure("")
		SetTraceEnabled(false)
	})

	Trace("ignored", nil)
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected no log file before tracing is enabled, got %v", err)
	}

	SetTraceEnabled(true)
	if !TraceEnabled() {
		t.Fatalf("expected tracing to report enabled")
	}
	Trace("store.save", map[string]interface{}{"count": 3})

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read trace: %v", err)
	}
	var entry struct {
		Event   string                 `json:"event"`
		Payload map[string]interface{} `json:"payload"`
	}
	if err := json.Unmarshal(data, &entry); err != nil {
		t.Fatalf("decode trace: %v", err)
	}
	if entry.Event != "store.save" || entry.Payload["count"] != float64(3) {
		t.Fatalf("unexpected trace entry %+v", entry)
	}
}

func TestConfigureBlankFallsBackToDefault(t *testing.T) {
	Configure("   ")
	if Path() != defaultLogFile {
		t.Fatalf("expected default path, got %q", Path())
	}
}
