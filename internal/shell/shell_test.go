package shell

import (
	"errors"
	"testing"

	"github.com/atomicstack/tasktray-quicklaunch/internal/testutil"
	"github.com/ncruces/zenity"
)

func TestLauncherOpen(t *testing.T) {
	testutil.RedirectLogs(t)
	orig := startFn
	defer func() { startFn = orig }()
	var opened []string
	startFn = func(input string) error {
		opened = append(opened, input)
		if input == "bad" {
			return errors.New("no handler")
		}
		return nil
	}
	l := NewLauncher()
	if err := l.Open("  https://example.com  "); err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := l.Open(" "); !errors.Is(err, ErrEmptyTarget) {
		t.Fatalf("expected ErrEmptyTarget, got %v", err)
	}
	if err := l.Open("bad"); err == nil {
		t.Fatalf("expected launch failure to be reported")
	}
	if len(opened) != 2 || opened[0] != "https://example.com" {
		t.Fatalf("unexpected launches %v", opened)
	}
}

func TestPickerCancelAndFailure(t *testing.T) {
	testutil.RedirectLogs(t)
	orig := selectFn
	defer func() { selectFn = orig }()

	selectFn = func(...zenity.Option) (string, error) { return "", zenity.ErrCanceled }
	if _, ok, err := NewPicker().PickFile(); ok || err != nil {
		t.Fatalf("cancel should be silent, got ok=%v err=%v", ok, err)
	}

	selectFn = func(...zenity.Option) (string, error) { return "", errors.New("no display") }
	if _, ok, err := NewPicker().PickFolder(); ok || err == nil {
		t.Fatalf("expected failure, got ok=%v err=%v", ok, err)
	}

	var gotOptions int
	selectFn = func(opts ...zenity.Option) (string, error) {
		gotOptions = len(opts)
		return "/tmp/picked", nil
	}
	path, ok, err := NewPicker().PickFolder()
	if !ok || err != nil || path != "/tmp/picked" {
		t.Fatalf("unexpected pick %q %v %v", path, ok, err)
	}
	if gotOptions != 2 {
		t.Fatalf("expected title and directory options, got %d", gotOptions)
	}
}

func TestClipboardText(t *testing.T) {
	orig := readClipboardFn
	defer func() { readClipboardFn = orig }()
	readClipboardFn = func() (string, error) { return "  https://example.com/x \r\nsecond line", nil }
	if got := NewClipboard().Text(); got != "https://example.com/x" {
		t.Fatalf("unexpected clipboard text %q", got)
	}
	readClipboardFn = func() (string, error) { return "", errors.New("no clipboard") }
	if got := NewClipboard().Text(); got != "" {
		t.Fatalf("expected empty text on failure, got %q", got)
	}
}

func TestPromptAndWarn(t *testing.T) {
	testutil.RedirectLogs(t)
	origEntry, origWarn := entryFn, warnFn
	defer func() { entryFn, warnFn = origEntry, origWarn }()

	entryFn = func(text string, opts ...zenity.Option) (string, error) {
		if text != "Path" || len(opts) != 2 {
			t.Fatalf("unexpected prompt %q with %d options", text, len(opts))
		}
		return "C:\\tools", nil
	}
	got, ok, err := NewPicker().Prompt("Path", "C:\\")
	if !ok || err != nil || got != "C:\\tools" {
		t.Fatalf("unexpected prompt result %q %v %v", got, ok, err)
	}

	entryFn = func(string, ...zenity.Option) (string, error) { return "", zenity.ErrCanceled }
	if _, ok, err := NewPicker().Prompt("Path", ""); ok || err != nil {
		t.Fatalf("cancel should be silent, got ok=%v err=%v", ok, err)
	}

	var warned string
	warnFn = func(text string, _ ...zenity.Option) error {
		warned = text
		return errors.New("no display")
	}
	NewPicker().Warn("bad path")
	if warned != "bad path" {
		t.Fatalf("expected warning shown, got %q", warned)
	}
}
