package ui

import (
	"reflect"
	"time"

	"github.com/atomicstack/tasktray-quicklaunch/internal/backend"
	"github.com/atomicstack/tasktray-quicklaunch/internal/data/dispatcher"
	"github.com/atomicstack/tasktray-quicklaunch/internal/menu"
	"github.com/atomicstack/tasktray-quicklaunch/internal/presentation"
	"github.com/atomicstack/tasktray-quicklaunch/internal/theme"
	"github.com/atomicstack/tasktray-quicklaunch/internal/ui/command"
	uistate "github.com/atomicstack/tasktray-quicklaunch/internal/ui/state"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type level = uistate.Level

const (
	mainLevelID = "shortcuts"
	subLevelID  = "manage"

	// DefaultTickInterval drives the idle and suppression deadlines.
	DefaultTickInterval = 250 * time.Millisecond

	infoLifetime = 5 * time.Second
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Options configures the popup model.
type Options struct {
	Dispatcher   *dispatcher.Dispatcher
	Watcher      *backend.Watcher
	Width        int
	Height       int
	ShowFooter   bool
	TickInterval time.Duration
	Now          func() time.Time
}

// Model implements the Bubble Tea model for the quick-launch popup. It holds
// only view state; the dispatcher owns the menus and the shortcut list.
type Model struct {
	dispatcher *dispatcher.Dispatcher
	snapshot   dispatcher.Snapshot

	main  *level
	sub   *level
	input textinput.Model

	errMsg     string
	infoMsg    string
	infoExpire time.Time

	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool

	backend        *backend.Watcher
	backendLastErr string
	tickInterval   time.Duration
	now            func() time.Time

	handlers map[reflect.Type]msgHandler
	bus      *command.Bus
}

// NewModel initialises the UI state from the dispatcher's current snapshot.
func NewModel(opts Options) *Model {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	input := textinput.New()
	input.Prompt = ""
	input.CharLimit = 1024
	input.Cursor.SetMode(cursor.CursorStatic)
	if styles.Editing != nil {
		input.TextStyle = styles.Editing.Copy()
	}
	if styles.Cursor != nil {
		input.Cursor.Style = styles.Cursor.Copy()
	}
	m := &Model{
		dispatcher:   opts.Dispatcher,
		main:         uistate.NewLevel(mainLevelID, nil),
		sub:          uistate.NewLevel(subLevelID, nil),
		input:        input,
		showFooter:   opts.ShowFooter,
		backend:      opts.Watcher,
		tickInterval: opts.TickInterval,
		now:          opts.Now,
		bus:          command.New(),
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	m.registerHandlers()
	m.refresh()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{}
	if m.backend != nil {
		cmds = append(cmds, waitForBackendEvent(m.backend))
	}
	if cmd := m.tickCmd(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 2)
	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):          m.handleKeyMsg,
		reflect.TypeOf(tea.MouseMsg{}):        m.handleMouseMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}):   m.handleWindowSizeMsg,
		reflect.TypeOf(tickMsg{}):             m.handleTickMsg,
		reflect.TypeOf(command.DispatchMsg{}): m.handleDispatchMsg,
		reflect.TypeOf(backendEventMsg{}):     m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):      m.handleBackendDoneMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// dispatch hands one gesture to the dispatcher and folds the result into
// the view.
func (m *Model) dispatch(evt dispatcher.Event) tea.Cmd {
	if m.dispatcher == nil {
		return nil
	}
	return m.apply(m.dispatcher.Handle(evt))
}

func (m *Model) apply(res dispatcher.Result) tea.Cmd {
	if res.EditStarted {
		m.input.SetValue(res.EditText)
		m.input.CursorEnd()
		m.input.Focus()
		m.main.ClearFilter()
		m.errMsg = ""
	}
	if res.Rejected {
		m.errMsg = m.rejectionMessage()
	}
	if res.Launched != "" {
		m.setInfo("Opened " + res.Launched)
	}
	m.refresh()
	if res.Quit {
		return tea.Quit
	}
	return nil
}

func (m *Model) rejectionMessage() string {
	if !m.snapshot.Editing {
		return "finish the current edit first"
	}
	if m.snapshot.Edit.Mode == presentation.EditRename {
		return "name must be non-empty and must not contain '|'"
	}
	return "not an existing file, folder or URL"
}

// refresh re-reads the dispatcher snapshot and mirrors it into the levels.
func (m *Model) refresh() {
	if m.dispatcher == nil {
		return
	}
	prevState := m.snapshot.State
	m.snapshot = m.dispatcher.Snapshot()

	m.main.UpdateItems(entryItems(m.snapshot.Entries))
	if m.snapshot.Selected >= 0 && m.snapshot.Selected < len(m.snapshot.Entries) {
		m.main.SetCursorID(m.snapshot.Entries[m.snapshot.Selected].ID)
	} else if m.snapshot.Editing && m.snapshot.Edit.Index < len(m.snapshot.Entries) {
		m.main.SetCursorID(m.snapshot.Entries[m.snapshot.Edit.Index].ID)
	} else {
		m.main.Cursor = -1
	}

	m.sub.UpdateItems(m.snapshot.Commands)
	if m.snapshot.State == presentation.SubOpen && prevState != presentation.SubOpen {
		m.sub.Home()
	}

	if !m.snapshot.Editing && m.input.Focused() {
		m.input.Blur()
		m.input.SetValue("")
	}
	if m.snapshot.State == presentation.Closed {
		m.main.ClearFilter()
		m.main.Cursor = -1
		if prevState != presentation.Closed {
			m.errMsg = ""
		}
	}
	m.syncViewport()
}

func entryItems(entries []dispatcher.EntryView) []menu.Item {
	items := make([]menu.Item, len(entries))
	for i, entry := range entries {
		items[i] = menu.Item{ID: entry.ID, Label: entry.Name}
	}
	return items
}

func (m *Model) entryView(id string) (dispatcher.EntryView, bool) {
	for _, entry := range m.snapshot.Entries {
		if entry.ID == id {
			return entry, true
		}
	}
	return dispatcher.EntryView{}, false
}

func (m *Model) mainOpen() bool {
	switch m.snapshot.State {
	case presentation.MainOpen, presentation.MainOpenEditing:
		return true
	case presentation.SubOpen:
		return m.dispatcher != nil && m.dispatcher.Machine().MainOpen()
	}
	return false
}

func (m *Model) subOpen() bool {
	return m.snapshot.State == presentation.SubOpen
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = m.now().Add(infoLifetime)
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && m.now().After(m.infoExpire) {
		m.infoMsg = ""
		m.infoExpire = time.Time{}
	}
	return m.infoMsg
}
