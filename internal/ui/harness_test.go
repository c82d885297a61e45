package ui

import (
	"testing"

	"github.com/atomicstack/tasktray-quicklaunch/internal/presentation"
	tea "github.com/charmbracelet/bubbletea"
)

func TestHarnessSnapshotFollowsDispatcher(t *testing.T) {
	env := newTestEnv(t, "", "alpha", "bravo")
	env.h.Key(tea.KeyTab)
	env.h.Key(tea.KeyDown)
	snap := env.h.Snapshot()
	if snap.State != presentation.MainOpen || env.h.State() != snap.State {
		t.Fatalf("expected MainOpen from both views, got %v and %v", snap.State, env.h.State())
	}
	if len(snap.Entries) != 2 || !snap.Entries[0].Selected || snap.Entries[0].Name != "alpha" {
		t.Fatalf("unexpected entries %+v", snap.Entries)
	}
	env.store.RemoveAt(0)
	if got := env.h.Snapshot().Entries; len(got) != 1 || got[0].Name != "bravo" {
		t.Fatalf("expected live snapshot after store change, got %+v", got)
	}
	if len(env.model().snapshot.Entries) != 2 {
		t.Fatalf("rendered snapshot should wait for the next update")
	}
}

func TestHarnessWithoutModel(t *testing.T) {
	h := NewHarness(nil)
	h.Key(tea.KeyTab)
	h.Type("x")
	if h.View() != "" || h.State() != presentation.Closed || len(h.Snapshot().Entries) != 0 {
		t.Fatalf("expected an inert harness")
	}
}
