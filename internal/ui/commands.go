package ui

import (
	"time"

	"github.com/atomicstack/tasktray-quicklaunch/internal/data/dispatcher"
	tea "github.com/charmbracelet/bubbletea"
)

// tickMsg drives the idle and suppression deadlines. The dispatcher reads
// the model clock rather than the tick time so tests can control both.
type tickMsg struct {
	at time.Time
}

func (m *Model) tickCmd() tea.Cmd {
	if m.tickInterval <= 0 {
		return nil
	}
	return tea.Tick(m.tickInterval, func(t time.Time) tea.Msg {
		return tickMsg{at: t}
	})
}

func (m *Model) handleTickMsg(msg tea.Msg) tea.Cmd {
	if _, ok := msg.(tickMsg); !ok {
		return nil
	}
	cmds := make([]tea.Cmd, 0, 2)
	if cmd := m.dispatch(m.event(dispatcher.KindTick)); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if next := m.tickCmd(); next != nil {
		cmds = append(cmds, next)
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}
