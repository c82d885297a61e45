package ui

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/atomicstack/tasktray-quicklaunch/internal/backend"
	"github.com/atomicstack/tasktray-quicklaunch/internal/menu"
	"github.com/atomicstack/tasktray-quicklaunch/internal/presentation"
	"github.com/atomicstack/tasktray-quicklaunch/internal/state"
	"github.com/atomicstack/tasktray-quicklaunch/internal/testutil"
	tea "github.com/charmbracelet/bubbletea"
)

func TestAddMoveAndRelaunchFlow(t *testing.T) {
	url := "https://example.com/docs/page"
	env := newTestEnv(t, url, "alpha", "bravo")

	env.hover(1, 0)
	env.runManageCommand(t, menu.CommandAddPath)
	env.key(tea.KeyEnter)
	if env.store.Len() != 3 {
		t.Fatalf("expected url entry added, got %d", env.store.Len())
	}

	page := env.model().snapshot.Entries[2].ID
	env.click(4, env.rowY(t, rowEntry, page), tea.MouseButtonRight)
	env.runManageCommand(t, menu.CommandMoveUp)
	// bindings are reissued after every save
	page = env.model().snapshot.Entries[1].ID
	env.click(4, env.rowY(t, rowEntry, page), tea.MouseButtonRight)
	env.runManageCommand(t, menu.CommandMoveUp)

	want := []string{
		state.Header("1.0"),
		"page|" + url + "|",
		"alpha|" + env.targets[0] + "|",
		"bravo|" + env.targets[1] + "|",
	}
	got := testutil.ReadLines(t, env.path)
	if len(got) != len(want) {
		t.Fatalf("unexpected file:\n%v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("line %d: expected %q, got %q", i, want[i], got[i])
		}
	}

	if env.model().snapshot.Selected != 0 {
		t.Fatalf("expected selection to follow the moved entry, got %d", env.model().snapshot.Selected)
	}
	env.key(tea.KeyEnter)
	if len(env.launcher.opened) != 1 || env.launcher.opened[0] != url {
		t.Fatalf("expected url launched, got %v", env.launcher.opened)
	}
}

func TestExternalEditWhileEditingIsDeferred(t *testing.T) {
	env := newTestEnv(t, "", "alpha")
	env.runManageCommand(t, menu.CommandAddPath)

	extra := filepath.Join(env.dir, "zeta.txt")
	if err := os.WriteFile(extra, []byte("z"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	content := state.Header("1.0") + "\nalpha|" + env.targets[0] + "|\nzeta|" + extra + "|\n"
	if err := os.WriteFile(env.path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	env.h.Send(backendEventMsg{event: backend.Event{Kind: backend.KindShortcuts, Path: env.path}})
	if env.state() != presentation.MainOpenEditing {
		t.Fatalf("expected edit to survive the reload, got %v", env.state())
	}
	if entry, _ := env.store.At(1); !entry.IsPlaceholder() {
		t.Fatalf("expected reload deferred, got %+v", entry)
	}

	env.advance(time.Second)
	env.key(tea.KeyEsc)
	if env.store.Len() != 2 {
		t.Fatalf("expected deferred reload applied on close, got %d entries", env.store.Len())
	}
	if entry, _ := env.store.At(1); entry.Target != extra {
		t.Fatalf("unexpected entry after reload %+v", entry)
	}
}
