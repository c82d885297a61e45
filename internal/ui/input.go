package ui

import (
	"unicode"

	"github.com/atomicstack/tasktray-quicklaunch/internal/data/dispatcher"
	"github.com/atomicstack/tasktray-quicklaunch/internal/logging/events"
	"github.com/atomicstack/tasktray-quicklaunch/internal/presentation"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if keyMsg.String() == "ctrl+c" {
		events.App.Exit("interrupt")
		return tea.Quit
	}
	if m.snapshot.Editing {
		return m.handleEditingKey(keyMsg)
	}
	switch keyMsg.String() {
	case "tab":
		return m.dispatch(m.event(dispatcher.KindIconClick))
	case "shift+tab":
		if m.mainOpen() && !m.subOpen() {
			if item, ok := m.main.Current(); ok {
				evt := m.event(dispatcher.KindEntryClick)
				evt.Button = dispatcher.ButtonSecondary
				evt.ItemID = item.ID
				return m.dispatch(evt)
			}
		}
		evt := m.event(dispatcher.KindIconClick)
		evt.Button = dispatcher.ButtonSecondary
		return m.dispatch(evt)
	case "esc":
		return m.handleEscapeKey()
	}
	switch {
	case m.subOpen():
		return m.handleSubKey(keyMsg)
	case m.mainOpen():
		return m.handleMainKey(keyMsg)
	}
	switch keyMsg.String() {
	case "enter", " ":
		return m.dispatch(m.event(dispatcher.KindIconClick))
	case "q":
		events.App.Exit("key")
		return tea.Quit
	}
	return nil
}

// handleEditingKey routes everything except submit and escape to the inline
// text input.
func (m *Model) handleEditingKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEnter:
		evt := m.event(dispatcher.KindEditSubmit)
		evt.Text = m.input.Value()
		return m.dispatch(evt)
	case tea.KeyEsc:
		return m.dispatch(m.event(dispatcher.KindEscape))
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *Model) handleEscapeKey() tea.Cmd {
	if m.snapshot.State == presentation.Closed {
		return nil
	}
	if !m.subOpen() && m.main.Filter != "" {
		m.main.ClearFilter()
		events.Filter.Cleared()
		m.syncViewport()
		return nil
	}
	m.errMsg = ""
	return m.dispatch(m.event(dispatcher.KindEscape))
}

func (m *Model) handleSubKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up", "k":
		m.sub.Step(-1)
	case "down", "j":
		m.sub.Step(1)
	case "home":
		m.sub.Home()
	case "end":
		m.sub.End()
	case "enter", " ":
		if item, ok := m.sub.Current(); ok {
			return m.runCommand(item)
		}
	}
	return nil
}

func (m *Model) handleMainKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "up":
		return m.stepMain(-1)
	case "down":
		return m.stepMain(1)
	case "pgup":
		return m.stepMain(-m.maxVisibleItems())
	case "pgdown":
		return m.stepMain(m.maxVisibleItems())
	case "home":
		m.main.Home()
		return m.hoverCursor()
	case "end":
		m.main.End()
		return m.hoverCursor()
	case "enter":
		item, ok := m.main.Current()
		if !ok {
			return nil
		}
		evt := m.event(dispatcher.KindEntryClick)
		evt.ItemID = item.ID
		return m.dispatch(evt)
	case "ctrl+u":
		if m.main.Filter == "" {
			return nil
		}
		m.main.ClearFilter()
		events.Filter.Cleared()
		return m.hoverCursor()
	}
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyCtrlH:
		if !m.main.Backspace() {
			return nil
		}
		events.Filter.Backspace(m.main.Filter)
		return m.hoverCursor()
	case tea.KeySpace:
		if m.main.Filter == "" {
			return nil
		}
		m.main.AppendFilter(" ")
		events.Filter.Append(m.main.Filter)
		return m.hoverCursor()
	case tea.KeyRunes:
		if msg.Alt || len(msg.Runes) == 0 {
			return nil
		}
		for _, r := range msg.Runes {
			if unicode.IsControl(r) {
				return nil
			}
		}
		m.main.AppendFilter(string(msg.Runes))
		events.Filter.Append(m.main.Filter)
		return m.hoverCursor()
	}
	return nil
}
