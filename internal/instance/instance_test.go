package instance

import (
	"errors"
	"runtime"
	"testing"
	"time"
)

func uniqueName(t *testing.T) string {
	t.Helper()
	return "ttql-test-" + t.Name() + "-" + time.Now().Format("150405.000000000")
}

func TestAcquireTwice(t *testing.T) {
	if runtime.GOOS != "windows" {
		orig := lockDirFn
		dir := t.TempDir()
		lockDirFn = func() string { return dir }
		defer func() { lockDirFn = orig }()
	}
	name := uniqueName(t)
	first, err := Acquire(name)
	if err != nil {
		t.Fatalf("first acquire: %v", err)
	}
	defer first.Release()

	if _, err := Acquire(name); !errors.Is(err, ErrAlreadyRunning) {
		t.Fatalf("expected ErrAlreadyRunning, got %v", err)
	}
	if err := first.Release(); err != nil {
		t.Fatalf("release: %v", err)
	}
	if err := first.Release(); err != nil {
		t.Fatalf("second release should be a no-op: %v", err)
	}
	again, err := Acquire(name)
	if err != nil {
		t.Fatalf("acquire after release: %v", err)
	}
	again.Release()
}

func TestSanitize(t *testing.T) {
	if got := sanitize(`a/b\c d`); got != "a_b_c_d" {
		t.Fatalf("unexpected sanitized name %q", got)
	}
	if got := sanitize(""); got != DefaultName {
		t.Fatalf("expected default name, got %q", got)
	}
}
