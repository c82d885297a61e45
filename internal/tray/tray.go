// Package tray is the native notification-area front-end. Shortcuts are
// top-level menu items that launch on click; a Manage submenu carries the
// add commands and one submenu per shortcut with its management actions.
// A single loop goroutine owns the dispatcher, so every store mutation and
// presentation transition still happens on one thread.
package tray

import (
	"context"
	"sync"
	"time"

	"github.com/atomicstack/tasktray-quicklaunch/internal/backend"
	"github.com/atomicstack/tasktray-quicklaunch/internal/data/dispatcher"
	"github.com/atomicstack/tasktray-quicklaunch/internal/icon"
	"github.com/atomicstack/tasktray-quicklaunch/internal/logging/events"
	"github.com/atomicstack/tasktray-quicklaunch/internal/menu"
	"github.com/atomicstack/tasktray-quicklaunch/internal/presentation"
	"github.com/getlantern/systray"
)

// DefaultTickInterval drives the dispatcher's deadlines.
const DefaultTickInterval = 250 * time.Millisecond

// Prompter collects inline edit text, which a native menu cannot host.
type Prompter interface {
	Prompt(label, initial string) (string, bool, error)
	Warn(message string)
}

// Options configures the tray.
type Options struct {
	Dispatcher   *dispatcher.Dispatcher
	Watcher      *backend.Watcher
	Prompter     Prompter
	Tooltip      string
	TickInterval time.Duration
}

var runFn = systray.Run

// Run shows the tray icon and blocks until the Exit command.
func Run(opts Options) error {
	t := New(systrayHost{}, opts)
	runFn(t.onReady, t.onExit)
	return nil
}

// click is one native menu selection, forwarded to the loop.
type click struct {
	command string
	slot    int
}

// slot is the reusable pair of items for the shortcut at one index.
type slot struct {
	launch  Item
	manage  Item
	actions map[string]Item
}

var slotActions = []string{
	menu.CommandMoveUp,
	menu.CommandMoveDown,
	menu.CommandRename,
	menu.CommandDelete,
}

// Tray mirrors dispatcher snapshots into native menu items.
type Tray struct {
	host   Host
	opts   Options
	d      *dispatcher.Dispatcher
	clicks chan click

	manage  Item
	version Item
	fixed   map[string]Item
	slots   []*slot

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New prepares a tray over host. Nothing is drawn until onReady.
func New(host Host, opts Options) *Tray {
	if opts.Tooltip == "" {
		opts.Tooltip = "TaskTrayQuickLaunch"
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Tray{
		host:   host,
		opts:   opts,
		d:      opts.Dispatcher,
		clicks: make(chan click, 16),
		fixed:  make(map[string]Item),
		ctx:    ctx,
		cancel: cancel,
	}
}

func (t *Tray) onReady() {
	t.build()
	t.wg.Add(1)
	go t.loop()
}

func (t *Tray) onExit() {
	t.cancel()
	t.wg.Wait()
	events.App.Exit("tray")
}

// build creates the fixed items and the first set of shortcut slots.
func (t *Tray) build() {
	t.host.SetIcon(icon.TrayIcon())
	t.host.SetTooltip(t.opts.Tooltip)

	t.manage = t.host.AddItem("Manage", "Add, reorder and remove shortcuts")
	snap := t.d.Snapshot()
	t.version = t.manage.AddSubItem(menu.VersionLabel(snap.Version), "")
	t.version.Disable()
	for _, id := range []string{menu.CommandAddFile, menu.CommandAddFolder, menu.CommandAddPath} {
		t.fixed[id] = t.manage.AddSubItem(menu.CommandLabels()[id], "")
		t.forward(t.fixed[id], click{command: id, slot: -1})
	}
	for _, id := range []string{menu.CommandClose, menu.CommandExit} {
		t.fixed[id] = t.host.AddItem(menu.CommandLabels()[id], "")
		t.forward(t.fixed[id], click{command: id, slot: -1})
	}
	t.host.AddSeparator()
	t.rebuild()
}

// rebuild grows the slot pool to fit the snapshot and hides the rest.
// Native items can only be hidden, never removed.
func (t *Tray) rebuild() {
	snap := t.d.Snapshot()
	for len(t.slots) < len(snap.Entries) {
		t.slots = append(t.slots, t.newSlot(len(t.slots)))
	}
	for i, s := range t.slots {
		if i >= len(snap.Entries) || snap.Entries[i].Placeholder {
			s.launch.Hide()
			s.manage.Hide()
			continue
		}
		entry := snap.Entries[i]
		s.launch.SetTitle(entry.Name)
		s.launch.SetTooltip(entry.Target)
		s.manage.SetTitle(entry.Name)
		img := entry.Icon
		if len(img) == 0 {
			img = icon.Blank()
		}
		s.launch.SetIcon(img)
		s.manage.SetIcon(img)
		s.actions[menu.CommandMoveUp].Enable()
		s.actions[menu.CommandMoveDown].Enable()
		if i == 0 {
			s.actions[menu.CommandMoveUp].Disable()
		}
		if i == len(snap.Entries)-1 {
			s.actions[menu.CommandMoveDown].Disable()
		}
		s.launch.Show()
		s.manage.Show()
	}
}

func (t *Tray) newSlot(index int) *slot {
	s := &slot{
		launch:  t.host.AddItem("", ""),
		manage:  t.manage.AddSubItem("", ""),
		actions: make(map[string]Item, len(slotActions)),
	}
	t.forward(s.launch, click{slot: index})
	for _, id := range slotActions {
		item := s.manage.AddSubItem(menu.CommandLabels()[id], "")
		s.actions[id] = item
		t.forward(item, click{command: id, slot: index})
	}
	return s
}

// forward relays an item's clicks to the loop until the tray stops.
func (t *Tray) forward(item Item, c click) {
	ch := item.Clicked()
	if ch == nil {
		return
	}
	go func() {
		for {
			select {
			case <-t.ctx.Done():
				return
			case _, ok := <-ch:
				if !ok {
					return
				}
				select {
				case t.clicks <- c:
				case <-t.ctx.Done():
					return
				}
			}
		}
	}()
}

func (t *Tray) loop() {
	defer t.wg.Done()
	var tick <-chan time.Time
	if t.opts.TickInterval > 0 {
		ticker := time.NewTicker(t.opts.TickInterval)
		defer ticker.Stop()
		tick = ticker.C
	}
	var watch <-chan backend.Event
	if t.opts.Watcher != nil {
		watch = t.opts.Watcher.Events()
	}
	for {
		select {
		case <-t.ctx.Done():
			return
		case c := <-t.clicks:
			t.handleClick(c)
		case now := <-tick:
			t.apply(t.d.Handle(dispatcher.Event{Kind: dispatcher.KindTick, Time: now}))
		case evt, ok := <-watch:
			if !ok {
				watch = nil
				continue
			}
			t.apply(t.d.HandleBackend(evt))
		}
	}
}

// handleClick turns a native selection into dispatcher events. Entry
// actions first select their entry the way a secondary click would.
func (t *Tray) handleClick(c click) {
	if c.slot >= 0 {
		id := t.bindingID(c.slot)
		if id == "" {
			return
		}
		button := dispatcher.ButtonPrimary
		if c.command != "" {
			button = dispatcher.ButtonSecondary
		}
		res := t.d.Handle(dispatcher.Event{Kind: dispatcher.KindEntryClick, Button: button, ItemID: id})
		if c.command == "" {
			t.apply(res)
			return
		}
	}
	t.apply(t.d.Handle(dispatcher.Event{Kind: dispatcher.KindCommand, Command: c.command}))
}

func (t *Tray) bindingID(index int) string {
	snap := t.d.Snapshot()
	if index < 0 || index >= len(snap.Entries) {
		return ""
	}
	return snap.Entries[index].ID
}

// apply folds a result into the native menu. A started edit is finished
// with a prompt, since native menus have no inline text fields.
func (t *Tray) apply(res dispatcher.Result) {
	if res.EditStarted {
		res = t.finishEdit(res.EditText)
	}
	if res.Rebuild {
		t.rebuild()
	}
	if res.Quit {
		t.host.Quit()
	}
}

func (t *Tray) finishEdit(initial string) dispatcher.Result {
	label := "Shortcut target (file, folder or URL)"
	if edit, ok := t.d.Machine().Editing(); ok && edit.Mode == presentation.EditRename {
		label = "Shortcut name"
	}
	for {
		text, ok, err := t.prompt(label, initial)
		if err != nil || !ok {
			res := t.d.Handle(dispatcher.Event{Kind: dispatcher.KindEditCancel})
			res.Rebuild = true
			return res
		}
		res := t.d.Handle(dispatcher.Event{Kind: dispatcher.KindEditSubmit, Text: text})
		if !res.Rejected {
			return res
		}
		t.warn(rejection(label))
		initial = text
	}
}

func (t *Tray) prompt(label, initial string) (string, bool, error) {
	if t.opts.Prompter == nil {
		return "", false, nil
	}
	return t.opts.Prompter.Prompt(label, initial)
}

func (t *Tray) warn(message string) {
	if t.opts.Prompter != nil {
		t.opts.Prompter.Warn(message)
	}
}

func rejection(label string) string {
	if label == "Shortcut name" {
		return "The name must be non-empty and must not contain '|'."
	}
	return "That is not an existing file, folder or URL."
}
