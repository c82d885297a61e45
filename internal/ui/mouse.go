package ui

import (
	"github.com/atomicstack/tasktray-quicklaunch/internal/data/dispatcher"
	"github.com/atomicstack/tasktray-quicklaunch/internal/presentation"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
)

// rowAt maps a screen cell to a layout row. ok is false outside the popup,
// including the part of the tray bar right of the icon.
func (m *Model) rowAt(x, y int) (row, bool) {
	rows := m.layout()
	if y < 0 || y >= len(rows) || x < 0 {
		return row{}, false
	}
	r := rows[y]
	if r.kind == rowTray && x >= ansi.StringWidth(trayLabel()) {
		return row{}, false
	}
	if r.kind == rowBlank && m.snapshot.State == presentation.Closed {
		return row{}, false
	}
	return r, true
}

func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	ev, ok := msg.(tea.MouseMsg)
	if !ok {
		return nil
	}
	r, hit := m.rowAt(ev.X, ev.Y)
	switch ev.Action {
	case tea.MouseActionMotion:
		if !hit {
			return nil
		}
		return m.mouseHover(r)
	case tea.MouseActionPress:
		switch ev.Button {
		case tea.MouseButtonLeft:
			return m.mousePress(r, hit, dispatcher.ButtonPrimary)
		case tea.MouseButtonRight:
			return m.mousePress(r, hit, dispatcher.ButtonSecondary)
		case tea.MouseButtonWheelUp:
			if m.mainOpen() && !m.snapshot.Editing {
				return m.stepMain(-1)
			}
		case tea.MouseButtonWheelDown:
			if m.mainOpen() && !m.snapshot.Editing {
				return m.stepMain(1)
			}
		}
	}
	return nil
}

func (m *Model) mouseHover(r row) tea.Cmd {
	switch r.kind {
	case rowTray:
		return m.dispatch(m.event(dispatcher.KindIconHover))
	case rowEntry:
		return m.hoverEntry(r.id)
	case rowCommand:
		if !r.item.Disabled {
			m.sub.SetCursorID(r.id)
		}
	}
	return nil
}

func (m *Model) mousePress(r row, hit bool, button dispatcher.Button) tea.Cmd {
	if !hit {
		if m.snapshot.State == presentation.Closed {
			return nil
		}
		return m.dispatch(m.event(dispatcher.KindDismiss))
	}
	switch r.kind {
	case rowTray:
		evt := m.event(dispatcher.KindIconClick)
		evt.Button = button
		return m.dispatch(evt)
	case rowEntry:
		if entry, ok := m.entryView(r.id); ok && entry.Editing {
			return nil
		}
		evt := m.event(dispatcher.KindEntryClick)
		evt.Button = button
		evt.ItemID = r.id
		return m.dispatch(evt)
	case rowCommand:
		return m.runCommand(r.item)
	}
	return nil
}
