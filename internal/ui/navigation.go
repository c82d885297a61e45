package ui

import (
	"github.com/atomicstack/tasktray-quicklaunch/internal/data/dispatcher"
	"github.com/atomicstack/tasktray-quicklaunch/internal/menu"
	"github.com/atomicstack/tasktray-quicklaunch/internal/ui/command"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) event(kind dispatcher.Kind) dispatcher.Event {
	return dispatcher.Event{Kind: kind, Time: m.now()}
}

// stepMain moves the keyboard cursor and reports it to the dispatcher as a
// hover so selection follows the keyboard the same way it follows the mouse.
func (m *Model) stepMain(delta int) tea.Cmd {
	if !m.main.Step(delta) {
		return nil
	}
	return m.hoverCursor()
}

func (m *Model) hoverCursor() tea.Cmd {
	item, ok := m.main.Current()
	if !ok {
		m.syncViewport()
		return nil
	}
	return m.hoverEntry(item.ID)
}

func (m *Model) hoverEntry(id string) tea.Cmd {
	evt := m.event(dispatcher.KindEntryHover)
	evt.ItemID = id
	return m.dispatch(evt)
}

// runCommand sends a management command through the bus; it reaches the
// dispatcher on the next update as a command.DispatchMsg.
func (m *Model) runCommand(item menu.Item) tea.Cmd {
	evt := m.event(dispatcher.KindCommand)
	evt.Command = item.ID
	if item.ID == menu.VersionID {
		evt.Command = ""
	}
	return m.bus.Execute(command.Request{
		ID:       item.ID,
		Label:    item.Label,
		Disabled: item.Disabled,
		Event:    evt,
	})
}

func (m *Model) handleDispatchMsg(msg tea.Msg) tea.Cmd {
	dispatchMsg, ok := msg.(command.DispatchMsg)
	if !ok {
		return nil
	}
	return m.dispatch(dispatchMsg.Event)
}

func (m *Model) syncViewport() {
	m.main.EnsureCursorVisible(m.maxVisibleItems())
}

// maxVisibleItems is the number of shortcut rows that fit once the tray bar,
// the menu chrome and the management menu are accounted for.
func (m *Model) maxVisibleItems() int {
	if m.height <= 0 {
		return -1
	}
	used := 4 // tray bar, header, filter prompt, status
	if m.subOpen() {
		used += 2 + len(m.sub.Items)
	}
	if m.showFooter {
		used += 2
	}
	remain := m.height - used
	if remain < 1 {
		return 1
	}
	return remain
}
