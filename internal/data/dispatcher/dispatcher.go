package dispatcher

import (
	"strings"
	"time"

	"github.com/atomicstack/tasktray-quicklaunch/internal/backend"
	"github.com/atomicstack/tasktray-quicklaunch/internal/logging"
	"github.com/atomicstack/tasktray-quicklaunch/internal/logging/events"
	"github.com/atomicstack/tasktray-quicklaunch/internal/menu"
	"github.com/atomicstack/tasktray-quicklaunch/internal/presentation"
	"github.com/atomicstack/tasktray-quicklaunch/internal/state"
	"github.com/atomicstack/tasktray-quicklaunch/internal/target"
)

// Launcher opens a target with the shell's default handler.
type Launcher interface {
	Open(target string) error
}

// Picker shows modal selection dialogs. ok is false on cancel.
type Picker interface {
	PickFile() (string, bool, error)
	PickFolder() (string, bool, error)
}

// Clipboard supplies the initial text for an inline path edit.
type Clipboard interface {
	Text() string
}

// Kind identifies the gesture carried by an Event.
type Kind int

const (
	KindIconHover Kind = iota
	KindIconClick
	KindEntryHover
	KindEntryClick
	KindCommand
	KindEditSubmit
	KindEditCancel
	KindEscape
	KindDismiss
	KindTick
	KindFileChanged
)

// Button distinguishes primary and secondary clicks.
type Button int

const (
	ButtonPrimary Button = iota
	ButtonSecondary
)

// Event is one gesture from a front-end. ItemID is a binding identifier for
// entry gestures, Command a menu command ID, Text the submitted edit text.
type Event struct {
	Kind    Kind
	Button  Button
	ItemID  string
	Command string
	Text    string
	Time    time.Time
}

// Result tells the front-end what to refresh.
type Result struct {
	Rebuild     bool
	Redraw      bool
	Quit        bool
	EditStarted bool
	EditText    string
	Rejected    bool
	Launched    string
}

// Options wires the dispatcher's collaborators. Picker and Clipboard may be
// nil; the commands that need them then do nothing.
type Options struct {
	Store     *state.Store
	Machine   *presentation.Machine
	Launcher  Launcher
	Picker    Picker
	Clipboard Clipboard
	Now       func() time.Time
}

// Dispatcher routes gestures to store mutations and presentation
// transitions. It is driven from one event loop and is not safe for
// concurrent use.
type Dispatcher struct {
	store     *state.Store
	machine   *presentation.Machine
	registry  *menu.Registry
	bindings  *menu.Bindings
	launcher  Launcher
	picker    Picker
	clipboard Clipboard
	now       func() time.Time

	reloadPending bool
}

// New builds a dispatcher and binds the store's current entries.
func New(opts Options) *Dispatcher {
	if opts.Machine == nil {
		opts.Machine = presentation.New(presentation.Options{})
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	d := &Dispatcher{
		store:     opts.Store,
		machine:   opts.Machine,
		registry:  menu.BuildRegistry(),
		launcher:  opts.Launcher,
		picker:    opts.Picker,
		clipboard: opts.Clipboard,
		now:       opts.Now,
	}
	d.rebind()
	return d
}

// Machine exposes the presentation state for rendering.
func (d *Dispatcher) Machine() *presentation.Machine {
	return d.machine
}

// Registry exposes the management command definitions.
func (d *Dispatcher) Registry() *menu.Registry {
	return d.registry
}

// Handle applies one gesture.
func (d *Dispatcher) Handle(evt Event) Result {
	now := evt.Time
	if now.IsZero() {
		now = d.now()
	}
	switch evt.Kind {
	case KindIconHover:
		return Result{Redraw: d.machine.HoverIcon(now)}
	case KindIconClick:
		if evt.Button == ButtonSecondary {
			d.machine.OpenSub(now)
			return Result{Redraw: true}
		}
		return d.closed(d.machine.PrimaryClick(now))
	case KindEntryHover:
		idx, ok := d.bindings.Index(evt.ItemID)
		if !ok {
			return Result{}
		}
		return Result{Redraw: d.machine.HoverEntry(idx, now)}
	case KindEntryClick:
		return d.entryClick(evt, now)
	case KindCommand:
		return d.command(evt.Command, now)
	case KindEditSubmit:
		return d.submit(evt.Text, now)
	case KindEditCancel:
		return d.cancelEdit(now)
	case KindEscape:
		if d.machine.CloseSub(now) {
			return Result{Redraw: true}
		}
		return d.closed(d.machine.Close(now, presentation.ReasonEscape))
	case KindDismiss:
		return d.closed(d.machine.Close(now, presentation.ReasonDismiss))
	case KindTick:
		discarded, closed := d.machine.Tick(now)
		if !closed {
			return Result{}
		}
		return d.closed(discarded)
	case KindFileChanged:
		return d.reload()
	}
	return Result{}
}

// HandleBackend folds a watcher event into the loop.
func (d *Dispatcher) HandleBackend(evt backend.Event) Result {
	if evt.Err != nil {
		logging.Error(evt.Err)
		return Result{}
	}
	if evt.Kind != backend.KindShortcuts {
		return Result{}
	}
	return d.Handle(Event{Kind: KindFileChanged})
}

func (d *Dispatcher) entryClick(evt Event, now time.Time) Result {
	idx, ok := d.bindings.Index(evt.ItemID)
	if !ok {
		return Result{}
	}
	entry, ok := d.store.At(idx)
	if !ok {
		return Result{}
	}
	if evt.Button == ButtonSecondary {
		if entry.IsPlaceholder() {
			return Result{}
		}
		d.machine.Select(idx)
		d.machine.OpenSub(now)
		return Result{Redraw: true}
	}
	if entry.IsPlaceholder() {
		return Result{}
	}
	if d.launcher != nil {
		_ = d.launcher.Open(entry.Target)
	}
	res := d.closed(d.machine.Close(now, presentation.ReasonLaunch))
	res.Launched = entry.Target
	return res
}

func (d *Dispatcher) command(id string, now time.Time) Result {
	res := Result{Redraw: d.machine.CloseSub(now)}
	enabled := d.registry.Enabled(id, d.hasSelection())
	events.Command.Dispatch(id, enabled)
	if !enabled {
		return res
	}
	switch id {
	case menu.CommandAddFile:
		return d.pickAndAdd(res, d.pickFile, target.FileName)
	case menu.CommandAddFolder:
		return d.pickAndAdd(res, d.pickFolder, target.DeriveName)
	case menu.CommandAddPath:
		return d.beginAddPath(res, now)
	case menu.CommandMoveUp, menu.CommandMoveDown:
		return d.move(res, id == menu.CommandMoveUp)
	case menu.CommandRename:
		return d.beginRename(res, now)
	case menu.CommandDelete:
		sel := d.machine.Selected()
		if d.store.RemoveAt(sel) {
			d.machine.Select(-1)
			d.commit()
			res.Rebuild = true
		}
		return res
	case menu.CommandClose:
		closed := d.closed(d.machine.Close(now, presentation.ReasonCommand))
		closed.Redraw = true
		return closed
	case menu.CommandExit:
		closed := d.closed(d.machine.Close(now, presentation.ReasonCommand))
		closed.Quit = true
		events.App.Exit("command")
		return closed
	}
	return res
}

func (d *Dispatcher) pickFile() (string, bool, error) {
	if d.picker == nil {
		return "", false, nil
	}
	return d.picker.PickFile()
}

func (d *Dispatcher) pickFolder() (string, bool, error) {
	if d.picker == nil {
		return "", false, nil
	}
	return d.picker.PickFolder()
}

func (d *Dispatcher) pickAndAdd(res Result, pick func() (string, bool, error), name func(string) string) Result {
	path, ok, err := pick()
	if err != nil || !ok {
		return res
	}
	if d.store.Add(name(path), path, "") {
		d.commit()
		res.Rebuild = true
	}
	return res
}

func (d *Dispatcher) beginAddPath(res Result, now time.Time) Result {
	if _, editing := d.machine.Editing(); editing {
		events.Menu.EditRejected("add-path while editing")
		res.Rejected = true
		return res
	}
	idx, err := d.store.AddPlaceholder(menu.PlaceholderLabel)
	if err != nil {
		res.Rejected = true
		return res
	}
	if err := d.machine.BeginEdit(idx, presentation.EditAdd, now); err != nil {
		d.store.RemovePlaceholder()
		res.Rejected = true
		return res
	}
	d.rebind()
	res.Rebuild = true
	res.Redraw = true
	res.EditStarted = true
	if d.clipboard != nil {
		res.EditText = d.clipboard.Text()
	}
	return res
}

func (d *Dispatcher) beginRename(res Result, now time.Time) Result {
	sel := d.machine.Selected()
	entry, ok := d.store.At(sel)
	if !ok {
		return res
	}
	if err := d.machine.BeginEdit(sel, presentation.EditRename, now); err != nil {
		res.Rejected = true
		return res
	}
	res.Redraw = true
	res.EditStarted = true
	res.EditText = entry.Name
	return res
}

func (d *Dispatcher) move(res Result, up bool) Result {
	sel := d.machine.Selected()
	next := sel + 1
	move := d.store.MoveDown
	if up {
		next = sel - 1
		move = d.store.MoveUp
	}
	moved := move(sel)
	if !moved {
		return res
	}
	d.machine.Select(next)
	d.commit()
	res.Rebuild = true
	return res
}

func (d *Dispatcher) submit(text string, now time.Time) Result {
	edit, ok := d.machine.Editing()
	if !ok {
		return Result{}
	}
	text = strings.TrimSpace(text)
	switch edit.Mode {
	case presentation.EditRename:
		if !d.store.Rename(edit.Index, text) {
			events.Menu.EditRejected(text)
			return Result{Rejected: true}
		}
	default:
		if target.Classify(text) == target.KindUnknown {
			events.Menu.EditRejected(text)
			return Result{Rejected: true}
		}
		d.store.RemovePlaceholder()
		d.store.Add(target.DeriveName(text), text, "")
	}
	d.machine.EndEdit(now, true)
	d.commit()
	res := d.applyPendingReload()
	res.Rebuild = true
	res.Redraw = true
	return res
}

func (d *Dispatcher) cancelEdit(now time.Time) Result {
	edit, ok := d.machine.EndEdit(now, false)
	if !ok {
		return Result{}
	}
	d.discard(&edit)
	res := d.applyPendingReload()
	res.Rebuild = true
	res.Redraw = true
	return res
}

// closed finishes any transition that hid the menus: an unfinished add is
// dropped without saving and a deferred reload is applied.
func (d *Dispatcher) closed(discarded *presentation.Edit) Result {
	res := Result{Redraw: true}
	if discarded != nil {
		d.discard(discarded)
		res.Rebuild = true
	}
	if pending := d.applyPendingReload(); pending.Rebuild {
		res.Rebuild = true
	}
	return res
}

func (d *Dispatcher) discard(edit *presentation.Edit) {
	if edit.Mode != presentation.EditAdd {
		return
	}
	if d.store.RemovePlaceholder() {
		d.rebind()
	}
}

func (d *Dispatcher) reload() Result {
	if _, editing := d.machine.Editing(); editing {
		d.reloadPending = true
		return Result{}
	}
	changed, err := d.store.Reload()
	if err != nil {
		logging.Errorf("reload %s: %v", d.store.Path(), err)
		return Result{}
	}
	if !changed {
		return Result{}
	}
	d.machine.Select(-1)
	d.rebind()
	return Result{Rebuild: true, Redraw: true}
}

func (d *Dispatcher) applyPendingReload() Result {
	if !d.reloadPending {
		return Result{}
	}
	d.reloadPending = false
	return d.reload()
}

func (d *Dispatcher) commit() {
	_ = d.store.Save()
	d.rebind()
}

func (d *Dispatcher) rebind() {
	d.bindings = menu.Bind(d.store.Entries())
}

func (d *Dispatcher) hasSelection() bool {
	if _, editing := d.machine.Editing(); editing {
		return false
	}
	entry, ok := d.store.At(d.machine.Selected())
	return ok && !entry.IsPlaceholder()
}
