// Package presentation holds the menu lifecycle: which menus are open,
// whether an entry is being edited, selection locking and the idle and
// suppression deadlines. Time is passed in by the caller, so the machine owns
// no goroutines or timers and is driven entirely from one event loop.
package presentation

import (
	"errors"
	"time"

	"github.com/atomicstack/tasktray-quicklaunch/internal/logging/events"
)

const (
	DefaultIdleTimeout    = 10 * time.Second
	DefaultSuppressWindow = time.Second
)

// ErrAlreadyEditing rejects a second edit while one is pending.
var ErrAlreadyEditing = errors.New("an edit is already in progress")

// State is the derived presentation state.
type State int

const (
	Closed State = iota
	MainOpen
	MainOpenEditing
	SubOpen
)

func (s State) String() string {
	switch s {
	case MainOpen:
		return "main-open"
	case MainOpenEditing:
		return "main-open-editing"
	case SubOpen:
		return "sub-open"
	default:
		return "closed"
	}
}

// EditMode distinguishes a new placeholder from renaming an existing entry.
type EditMode int

const (
	EditAdd EditMode = iota
	EditRename
)

func (m EditMode) String() string {
	if m == EditRename {
		return "rename"
	}
	return "add"
}

// Edit identifies the entry whose text is being typed.
type Edit struct {
	Index int
	Mode  EditMode
}

// Reason records why the menus closed.
type Reason string

const (
	ReasonToggle  Reason = "toggle"
	ReasonEscape  Reason = "escape"
	ReasonDismiss Reason = "dismiss"
	ReasonCommand Reason = "command"
	ReasonLaunch  Reason = "launch"
	ReasonIdle    Reason = "idle"
)

// Options tunes the two deadlines. Zero values pick the defaults.
type Options struct {
	IdleTimeout    time.Duration
	SuppressWindow time.Duration
}

// Machine is the explicit presentation state owned by the dispatcher.
type Machine struct {
	idleTimeout time.Duration
	suppress    time.Duration

	mainOpen        bool
	subOpen         bool
	edit            *Edit
	selected        int
	selectionLocked bool
	suppressUntil   time.Time
	idleDeadline    time.Time
}

// New returns a closed machine.
func New(opts Options) *Machine {
	if opts.IdleTimeout <= 0 {
		opts.IdleTimeout = DefaultIdleTimeout
	}
	if opts.SuppressWindow <= 0 {
		opts.SuppressWindow = DefaultSuppressWindow
	}
	return &Machine{
		idleTimeout: opts.IdleTimeout,
		suppress:    opts.SuppressWindow,
		selected:    -1,
	}
}

// State derives the current state. The sub menu takes precedence.
func (m *Machine) State() State {
	switch {
	case m.subOpen:
		return SubOpen
	case m.mainOpen && m.edit != nil:
		return MainOpenEditing
	case m.mainOpen:
		return MainOpen
	default:
		return Closed
	}
}

// MainOpen reports whether the shortcut menu is visible.
func (m *Machine) MainOpen() bool {
	return m.mainOpen
}

// SubOpen reports whether the management menu is visible.
func (m *Machine) SubOpen() bool {
	return m.subOpen
}

// Selected returns the selected entry index or -1.
func (m *Machine) Selected() int {
	return m.selected
}

func (m *Machine) SelectionLocked() bool {
	return m.selectionLocked
}

// IdleDeadline is zero while the idle timer is disarmed.
func (m *Machine) IdleDeadline() time.Time {
	return m.idleDeadline
}

func (m *Machine) SuppressUntil() time.Time {
	return m.suppressUntil
}

// Editing returns a copy of the pending edit.
func (m *Machine) Editing() (Edit, bool) {
	if m.edit == nil {
		return Edit{}, false
	}
	return *m.edit, true
}

// Suppressed reports whether ambient hover is ignored at now.
func (m *Machine) Suppressed(now time.Time) bool {
	return now.Before(m.suppressUntil)
}

// HoverIcon opens the main menu from Closed unless inside the suppression
// window, and counts as activity for the idle timer.
func (m *Machine) HoverIcon(now time.Time) bool {
	if m.Suppressed(now) {
		events.Menu.Suppressed("hover")
		return false
	}
	opened := false
	if !m.mainOpen && !m.subOpen {
		m.mainOpen = true
		opened = true
		events.Menu.Open("main")
	}
	m.refreshIdleTimer(now, true)
	return opened
}

// PrimaryClick toggles: any open state closes, Closed opens the main menu
// without arming the idle timer. The discarded edit, if any, is returned.
func (m *Machine) PrimaryClick(now time.Time) *Edit {
	if m.mainOpen || m.subOpen {
		return m.Close(now, ReasonToggle)
	}
	m.mainOpen = true
	m.idleDeadline = time.Time{}
	events.Menu.Open("main")
	m.refreshIdleTimer(now, false)
	return nil
}

// OpenSub shows the management menu and freezes the selection under it.
func (m *Machine) OpenSub(now time.Time) {
	if !m.subOpen {
		events.Menu.Open("sub")
	}
	m.subOpen = true
	m.selectionLocked = true
	m.refreshIdleTimer(now, false)
}

// CloseSub hides only the management menu.
func (m *Machine) CloseSub(now time.Time) bool {
	if !m.subOpen {
		return false
	}
	m.subOpen = false
	m.selectionLocked = false
	events.Menu.Close("sub", string(ReasonCommand))
	m.refreshIdleTimer(now, true)
	return true
}

// BeginEdit opens the main menu on the entry at index in the given mode and
// keeps it open until the edit ends.
func (m *Machine) BeginEdit(index int, mode EditMode, now time.Time) error {
	if m.edit != nil {
		return ErrAlreadyEditing
	}
	if !m.mainOpen {
		events.Menu.Open("main")
	}
	m.mainOpen = true
	m.edit = &Edit{Index: index, Mode: mode}
	events.Menu.EditBegin(index, mode.String())
	m.refreshIdleTimer(now, false)
	return nil
}

// EndEdit clears the pending edit and returns it.
func (m *Machine) EndEdit(now time.Time, committed bool) (Edit, bool) {
	if m.edit == nil {
		return Edit{}, false
	}
	ended := *m.edit
	m.edit = nil
	events.Menu.EditEnd(ended.Index, ended.Mode.String(), committed)
	m.refreshIdleTimer(now, true)
	return ended, true
}

// HoverEntry selects index unless selection is locked. At most one entry is
// selected at a time.
func (m *Machine) HoverEntry(index int, now time.Time) bool {
	if m.selectionLocked || !m.mainOpen {
		return false
	}
	changed := m.selected != index
	m.selected = index
	if changed {
		events.Menu.Select(index)
	}
	m.refreshIdleTimer(now, true)
	return changed
}

// Select sets the selection regardless of the lock, for selection that
// follows an entry the user acted on directly.
func (m *Machine) Select(index int) {
	if m.selected != index {
		events.Menu.Select(index)
	}
	m.selected = index
}

// Close hides both menus, unlocks selection and drops any pending edit,
// which is returned so the caller can discard its placeholder. Every reason
// except idle expiry starts the suppression window.
func (m *Machine) Close(now time.Time, reason Reason) *Edit {
	discarded := m.edit
	if m.mainOpen {
		events.Menu.Close("main", string(reason))
	}
	if m.subOpen {
		events.Menu.Close("sub", string(reason))
	}
	m.mainOpen = false
	m.subOpen = false
	m.edit = nil
	m.selected = -1
	m.selectionLocked = false
	m.idleDeadline = time.Time{}
	if reason != ReasonIdle {
		m.suppressUntil = now.Add(m.suppress)
	}
	return discarded
}

// Tick closes everything once the idle deadline has passed.
func (m *Machine) Tick(now time.Time) (*Edit, bool) {
	if m.idleDeadline.IsZero() || now.Before(m.idleDeadline) {
		return nil, false
	}
	return m.Close(now, ReasonIdle), true
}

// refreshIdleTimer is the one place the idle deadline changes after a
// transition. It is disarmed while editing, while the management menu is up
// and while the main menu is hidden; otherwise activity pushes it out.
func (m *Machine) refreshIdleTimer(now time.Time, activity bool) {
	if !m.mainOpen || m.subOpen || m.edit != nil {
		m.idleDeadline = time.Time{}
		return
	}
	if activity {
		m.idleDeadline = now.Add(m.idleTimeout)
	}
}
