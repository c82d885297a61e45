package tray

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/atomicstack/tasktray-quicklaunch/internal/data/dispatcher"
	"github.com/atomicstack/tasktray-quicklaunch/internal/icon"
	"github.com/atomicstack/tasktray-quicklaunch/internal/menu"
	"github.com/atomicstack/tasktray-quicklaunch/internal/presentation"
	"github.com/atomicstack/tasktray-quicklaunch/internal/state"
	"github.com/atomicstack/tasktray-quicklaunch/internal/testutil"
)

type fakeItem struct {
	title    string
	tooltip  string
	icon     []byte
	hidden   bool
	disabled bool
	children []*fakeItem
}

func (f *fakeItem) SetTitle(title string)     { f.title = title }
func (f *fakeItem) SetTooltip(tooltip string) { f.tooltip = tooltip }
func (f *fakeItem) SetIcon(icon []byte)       { f.icon = icon }
func (f *fakeItem) Show()                     { f.hidden = false }
func (f *fakeItem) Hide()                     { f.hidden = true }
func (f *fakeItem) Enable()                   { f.disabled = false }
func (f *fakeItem) Disable()                  { f.disabled = true }
func (f *fakeItem) Clicked() <-chan struct{}  { return nil }

func (f *fakeItem) AddSubItem(title, tooltip string) Item {
	child := &fakeItem{title: title, tooltip: tooltip}
	f.children = append(f.children, child)
	return child
}

type fakeHost struct {
	items      []*fakeItem
	separators int
	quit       bool
	tooltip    string
}

func (h *fakeHost) SetIcon([]byte)            {}
func (h *fakeHost) SetTooltip(tooltip string) { h.tooltip = tooltip }
func (h *fakeHost) AddSeparator()             { h.separators++ }
func (h *fakeHost) Quit()                     { h.quit = true }

func (h *fakeHost) AddItem(title, tooltip string) Item {
	item := &fakeItem{title: title, tooltip: tooltip}
	h.items = append(h.items, item)
	return item
}

type scriptedPrompter struct {
	answers []string
	asked   []string
	warned  []string
}

func (p *scriptedPrompter) Prompt(label, initial string) (string, bool, error) {
	p.asked = append(p.asked, initial)
	if len(p.answers) == 0 {
		return "", false, nil
	}
	answer := p.answers[0]
	p.answers = p.answers[1:]
	return answer, true, nil
}

func (p *scriptedPrompter) Warn(message string) {
	p.warned = append(p.warned, message)
}

type recordingLauncher struct{ opened []string }

func (r *recordingLauncher) Open(target string) error {
	r.opened = append(r.opened, target)
	return nil
}

type stubClipboard string

func (s stubClipboard) Text() string { return string(s) }

type trayEnv struct {
	tray     *Tray
	host     *fakeHost
	store    *state.Store
	prompter *scriptedPrompter
	launcher *recordingLauncher
	dir      string
}

type mapIcons map[string][]byte

func (m mapIcons) Resolve(target string) []byte { return m[target] }

func newTrayEnv(t *testing.T, clip string, lines ...string) *trayEnv {
	t.Helper()
	return newTrayEnvWithIcons(t, nil, clip, lines...)
}

func newTrayEnvWithIcons(t *testing.T, icons state.IconResolver, clip string, lines ...string) *trayEnv {
	t.Helper()
	testutil.RedirectLogs(t)
	path := testutil.WriteShortcutFile(t, append([]string{state.Header("1.0")}, lines...)...)
	store := state.NewStore(path, "1.0", icons)
	if err := store.Load(); err != nil {
		t.Fatalf("load: %v", err)
	}
	env := &trayEnv{
		host:     &fakeHost{},
		store:    store,
		prompter: &scriptedPrompter{},
		launcher: &recordingLauncher{},
		dir:      filepath.Dir(path),
	}
	d := dispatcher.New(dispatcher.Options{
		Store:     store,
		Machine:   presentation.New(presentation.Options{}),
		Launcher:  env.launcher,
		Clipboard: stubClipboard(clip),
	})
	env.tray = New(env.host, Options{Dispatcher: d, Prompter: env.prompter})
	env.tray.build()
	return env
}

func (e *trayEnv) visibleLaunchTitles() []string {
	var titles []string
	for _, s := range e.tray.slots {
		item := s.launch.(*fakeItem)
		if !item.hidden {
			titles = append(titles, item.title)
		}
	}
	return titles
}

func TestBuildLaysOutFixedItemsAndSlots(t *testing.T) {
	env := newTrayEnv(t, "", "alpha|/a|", "bravo|/b|")
	if len(env.tray.slots) != 2 {
		t.Fatalf("expected two slots, got %d", len(env.tray.slots))
	}
	if got := env.visibleLaunchTitles(); len(got) != 2 || got[0] != "alpha" || got[1] != "bravo" {
		t.Fatalf("unexpected titles %v", got)
	}
	manage := env.tray.manage.(*fakeItem)
	if manage.children[0].title != menu.VersionLabel("1.0") || !manage.children[0].disabled {
		t.Fatalf("expected disabled version row, got %+v", manage.children[0])
	}
	first := env.tray.slots[0]
	if !first.actions[menu.CommandMoveUp].(*fakeItem).disabled {
		t.Fatalf("first entry cannot move up")
	}
	last := env.tray.slots[1]
	if !last.actions[menu.CommandMoveDown].(*fakeItem).disabled {
		t.Fatalf("last entry cannot move down")
	}
	if env.host.separators != 1 || env.host.tooltip == "" {
		t.Fatalf("expected separator and tooltip")
	}
}

func TestClickLaunchesSlot(t *testing.T) {
	env := newTrayEnv(t, "", "alpha|/a|", "bravo|/b|")
	env.tray.handleClick(click{slot: 1})
	if len(env.launcher.opened) != 1 || env.launcher.opened[0] != "/b" {
		t.Fatalf("expected /b launched, got %v", env.launcher.opened)
	}
}

func TestSlotActionsActOnTheirEntry(t *testing.T) {
	env := newTrayEnv(t, "", "alpha|/a|", "bravo|/b|", "charlie|/c|")
	env.tray.handleClick(click{command: menu.CommandMoveUp, slot: 2})
	if got := env.visibleLaunchTitles(); got[1] != "charlie" {
		t.Fatalf("expected charlie moved up, got %v", got)
	}
	env.tray.handleClick(click{command: menu.CommandDelete, slot: 0})
	if got := env.visibleLaunchTitles(); len(got) != 2 || got[0] != "charlie" {
		t.Fatalf("expected alpha deleted, got %v", got)
	}
	if len(env.tray.slots) != 3 || !env.tray.slots[2].launch.(*fakeItem).hidden {
		t.Fatalf("expected spare slot hidden")
	}
}

func TestReusedSlotDropsPreviousIcon(t *testing.T) {
	icons := mapIcons{"/a": []byte("ICON-A")}
	env := newTrayEnvWithIcons(t, icons, "", "alpha|/a|", "bravo|/b|")
	if got := string(env.tray.slots[0].launch.(*fakeItem).icon); got != "ICON-A" {
		t.Fatalf("expected alpha icon on slot 0, got %q", got)
	}
	env.tray.handleClick(click{command: menu.CommandDelete, slot: 0})
	first := env.tray.slots[0]
	if first.launch.(*fakeItem).title != "bravo" {
		t.Fatalf("expected bravo in slot 0, got %q", first.launch.(*fakeItem).title)
	}
	for _, item := range []Item{first.launch, first.manage} {
		if got := item.(*fakeItem).icon; !bytes.Equal(got, icon.Blank()) {
			t.Fatalf("expected blank icon after reuse, got %q", got)
		}
	}
}

func TestRenamePromptsWithCurrentName(t *testing.T) {
	env := newTrayEnv(t, "", "alpha|/a|")
	env.prompter.answers = []string{"bad|name", "zulu"}
	env.tray.handleClick(click{command: menu.CommandRename, slot: 0})
	if len(env.prompter.asked) != 2 || env.prompter.asked[0] != "alpha" {
		t.Fatalf("unexpected prompts %v", env.prompter.asked)
	}
	if len(env.prompter.warned) != 1 {
		t.Fatalf("expected one rejection warning, got %v", env.prompter.warned)
	}
	if entry, _ := env.store.At(0); entry.Name != "zulu" {
		t.Fatalf("expected rename, got %+v", entry)
	}
	if _, editing := env.tray.d.Machine().Editing(); editing {
		t.Fatalf("expected edit finished")
	}
}

func TestAddPathFromClipboard(t *testing.T) {
	target := filepath.Join(t.TempDir(), "notes.md")
	if err := os.WriteFile(target, []byte("n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	env := newTrayEnv(t, target, "alpha|/a|")
	env.prompter.answers = []string{target}
	env.tray.handleClick(click{command: menu.CommandAddPath, slot: -1})
	if env.prompter.asked[0] != target {
		t.Fatalf("expected clipboard prefill, got %v", env.prompter.asked)
	}
	if got := env.visibleLaunchTitles(); len(got) != 2 || got[1] != "notes" {
		t.Fatalf("expected new slot, got %v", got)
	}
}

func TestAddPathCanceledLeavesNoPlaceholder(t *testing.T) {
	env := newTrayEnv(t, "", "alpha|/a|")
	env.tray.handleClick(click{command: menu.CommandAddPath, slot: -1})
	if env.store.Len() != 1 || env.store.PlaceholderIndex() != -1 {
		t.Fatalf("expected placeholder discarded, got %d entries", env.store.Len())
	}
	if got := env.visibleLaunchTitles(); len(got) != 1 {
		t.Fatalf("expected placeholder never shown, got %v", got)
	}
}

func TestExitQuitsHost(t *testing.T) {
	env := newTrayEnv(t, "", "alpha|/a|")
	env.tray.handleClick(click{command: menu.CommandExit, slot: -1})
	if !env.host.quit {
		t.Fatalf("expected host quit")
	}
}

func TestStaleSlotIgnored(t *testing.T) {
	env := newTrayEnv(t, "", "alpha|/a|")
	env.tray.handleClick(click{slot: 5})
	if len(env.launcher.opened) != 0 {
		t.Fatalf("expected no launch for a missing slot")
	}
}
