package state

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/atomicstack/tasktray-quicklaunch/internal/logging"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "state-log")
	if err == nil {
		logging.Configure(filepath.Join(dir, "test.log"))
	}
	code := m.Run()
	if dir != "" {
		os.RemoveAll(dir)
	}
	os.Exit(code)
}

type stubIcons struct {
	calls []string
	icon  []byte
}

func (s *stubIcons) Resolve(target string) []byte {
	s.calls = append(s.calls, target)
	return s.icon
}

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "TaskTrayQuickLaunch.ini")
	return NewStore(path, "1.2.3", nil), path
}

func targets(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Target
	}
	return out
}

func TestAddRejectsCaseInsensitiveDuplicate(t *testing.T) {
	icons := &stubIcons{icon: []byte{1}}
	s := NewStore("unused", "1", icons)
	if !s.Add("Docs", `C:\Docs`, "") {
		t.Fatalf("expected first add to succeed")
	}
	if s.Add("docs again", `c:\docs`, "") {
		t.Fatalf("expected duplicate add to be rejected")
	}
	if s.Len() != 1 {
		t.Fatalf("expected 1 entry, got %d", s.Len())
	}
	if len(icons.calls) != 1 {
		t.Fatalf("expected icon resolved once, got %v", icons.calls)
	}
	if entry, _ := s.At(0); len(entry.Icon) != 1 {
		t.Fatalf("expected icon attached")
	}
}

func TestAddRejectsEmptyTarget(t *testing.T) {
	s := NewStore("unused", "1", nil)
	if s.Add("blank", "   ", "") {
		t.Fatalf("expected blank target to be rejected")
	}
}

func TestUniquenessUnderRandomAddRemove(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	pool := []string{`C:\A`, `c:\a`, `C:\B`, "https://x.test", "HTTPS://X.TEST", `D:\c`, `d:\C`}
	s := NewStore("unused", "1", nil)
	for i := 0; i < 500; i++ {
		target := pool[rng.Intn(len(pool))]
		if rng.Intn(3) == 0 {
			s.Remove(target)
		} else {
			s.Add(fmt.Sprintf("n%d", i), target, "")
		}
		seen := map[string]bool{}
		for _, entry := range s.Entries() {
			key := strings.ToLower(entry.Target)
			if seen[key] {
				t.Fatalf("step %d: duplicate target %q in %v", i, entry.Target, targets(s.Entries()))
			}
			seen[key] = true
		}
	}
}

func TestRemoveFirstMatchOnly(t *testing.T) {
	s := NewStore("unused", "1", nil)
	s.Add("a", "/a", "")
	s.Add("b", "/b", "")
	if !s.Remove("/A") {
		t.Fatalf("expected case-insensitive remove")
	}
	if s.Remove("/missing") {
		t.Fatalf("expected missing remove to be a no-op")
	}
	if got := targets(s.Entries()); len(got) != 1 || got[0] != "/b" {
		t.Fatalf("unexpected entries %v", got)
	}
}

func TestIndexOf(t *testing.T) {
	s := NewStore("unused", "1", nil)
	s.Add("a", "/a", "")
	s.Add("b", "/b", "")
	if idx, ok := s.IndexOf("/B"); !ok || idx != 1 {
		t.Fatalf("expected index 1, got %d %v", idx, ok)
	}
	if _, ok := s.IndexOf("/c"); ok {
		t.Fatalf("expected missing target")
	}
	if _, ok := s.IndexOf(""); ok {
		t.Fatalf("expected empty target to be absent")
	}
}

func TestMoveBoundariesAndInverse(t *testing.T) {
	s := NewStore("unused", "1", nil)
	for _, target := range []string{"/a", "/b", "/c", "/d"} {
		s.Add(target, target, "")
	}
	if s.MoveUp(0) {
		t.Fatalf("moveUp at 0 must be a no-op")
	}
	if s.MoveDown(3) {
		t.Fatalf("moveDown at last index must be a no-op")
	}
	if s.MoveUp(-1) || s.MoveDown(10) {
		t.Fatalf("out of range moves must be no-ops")
	}
	before := strings.Join(targets(s.Entries()), ",")
	for i := 1; i < 3; i++ {
		if !s.MoveUp(i) {
			t.Fatalf("moveUp(%d) failed", i)
		}
		if !s.MoveDown(i - 1) {
			t.Fatalf("moveDown(%d) failed", i-1)
		}
		if after := strings.Join(targets(s.Entries()), ","); after != before {
			t.Fatalf("swap twice at %d changed order: %s -> %s", i, before, after)
		}
	}
}

func TestMoveUpTwiceFromIndexOne(t *testing.T) {
	s := NewStore("unused", "1", nil)
	for _, target := range []string{"/a", "/b", "/c"} {
		s.Add(target, target, "")
	}
	s.MoveUp(1)
	s.MoveUp(0)
	got := targets(s.Entries())
	if len(got) != 3 || got[0] != "/b" || got[1] != "/a" || got[2] != "/c" {
		t.Fatalf("unexpected order %v", got)
	}
}

func TestPlaceholderLifecycle(t *testing.T) {
	s, path := newTestStore(t)
	s.Add("Docs", `C:\Docs`, "")
	idx, err := s.AddPlaceholder("new shortcut")
	if err != nil || idx != 1 {
		t.Fatalf("expected placeholder at 1, got %d %v", idx, err)
	}
	if _, err := s.AddPlaceholder("again"); err != ErrPlaceholderExists {
		t.Fatalf("expected ErrPlaceholderExists, got %v", err)
	}
	if s.MoveUp(1) {
		t.Fatalf("placeholder must not move")
	}
	if err := s.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if strings.Contains(string(data), "new shortcut") {
		t.Fatalf("placeholder persisted: %q", data)
	}
	if !s.RemovePlaceholder() || s.PlaceholderIndex() != -1 {
		t.Fatalf("expected placeholder removed")
	}
	if s.RemovePlaceholder() {
		t.Fatalf("expected second remove to be a no-op")
	}
}

func TestRename(t *testing.T) {
	s := NewStore("unused", "1", nil)
	s.Add("old", "/a", "")
	if !s.Rename(0, "  new  ") {
		t.Fatalf("expected rename to succeed")
	}
	if entry, _ := s.At(0); entry.Name != "new" {
		t.Fatalf("unexpected name %q", entry.Name)
	}
	if s.Rename(0, " ") || s.Rename(0, "a|b") || s.Rename(5, "x") {
		t.Fatalf("expected invalid renames to be rejected")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s, path := newTestStore(t)
	s.Add("Docs", `C:\Docs`, "")
	s.Add("Site", "https://example.com/page/", "work")
	s.Add("Notes", "/home/me/notes.txt", "")
	if err := s.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}
	loaded := NewStore(path, "1.2.3", nil)
	if err := loaded.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}
	if !sameEntries(loaded.Entries(), s.Entries()) {
		t.Fatalf("round trip mismatch: %+v vs %+v", loaded.Entries(), s.Entries())
	}
	data, _ := os.ReadFile(path)
	if !strings.HasPrefix(string(data), "# TaskTrayQuickLaunch v1.2.3\n") {
		t.Fatalf("missing header: %q", data)
	}
}

func TestLoadMissingFileRecreatesIt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fresh.ini")
	s := NewStore(path, "9", nil)
	if err := s.Load(); err == nil {
		t.Fatalf("expected load error for missing file")
	}
	if s.Len() != 0 {
		t.Fatalf("expected empty store")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected fresh file: %v", err)
	}
	if string(data) != "# TaskTrayQuickLaunch v9\n" {
		t.Fatalf("unexpected fresh file %q", data)
	}
}

func TestLoadDropsDuplicateLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dups.ini")
	content := "a|/x\nb|/X\nc|/y\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	s := NewStore(path, "1", nil)
	if err := s.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}
	if got := targets(s.Entries()); len(got) != 2 || got[0] != "/x" || got[1] != "/y" {
		t.Fatalf("unexpected entries %v", got)
	}
}

func TestSaveFailureIsReturnedNotFatal(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(filepath.Join(dir, "missing", "sub", "file.ini"), "1", nil)
	s.Add("a", "/a", "")
	if err := s.Save(); err == nil {
		t.Fatalf("expected save error for missing directory")
	}
	if s.Len() != 1 {
		t.Fatalf("in-memory list must survive a failed save")
	}
}

func TestReloadAdoptsExternalChanges(t *testing.T) {
	icons := &stubIcons{}
	path := filepath.Join(t.TempDir(), "reload.ini")
	s := NewStore(path, "1", icons)
	s.Add("a", "/a", "")
	if err := s.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}
	changed, err := s.Reload()
	if err != nil || changed {
		t.Fatalf("expected unchanged reload, got %v %v", changed, err)
	}
	if err := os.WriteFile(path, []byte("# header\nb|/b\na|/a\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := s.AddPlaceholder("typing"); err != nil {
		t.Fatalf("placeholder: %v", err)
	}
	changed, err = s.Reload()
	if err != nil || !changed {
		t.Fatalf("expected changed reload, got %v %v", changed, err)
	}
	got := targets(s.Entries())
	if len(got) != 3 || got[0] != "/b" || got[1] != "/a" || got[2] != "" {
		t.Fatalf("unexpected entries after reload %v", got)
	}
	if len(icons.calls) != 2 || icons.calls[1] != "/b" {
		t.Fatalf("expected icon resolved only for new target, got %v", icons.calls)
	}
}
