package command

import (
	"fmt"

	"github.com/atomicstack/tasktray-quicklaunch/internal/data/dispatcher"
	"github.com/atomicstack/tasktray-quicklaunch/internal/logging/events"
	tea "github.com/charmbracelet/bubbletea"
)

// Request encapsulates a menu command chosen in the popup.
type Request struct {
	ID       string
	Label    string
	Disabled bool
	Event    dispatcher.Event
}

// DispatchMsg carries a queued gesture back into the update loop, where the
// dispatcher applies it.
type DispatchMsg struct {
	Event dispatcher.Event
}

// Bus turns command selections into Bubble Tea commands while emitting
// trace logs. The returned command never touches application state itself.
type Bus struct{}

// New initialises a command bus instance.
func New() *Bus {
	return &Bus{}
}

// Execute queues req for the next update.
func (b *Bus) Execute(req Request) tea.Cmd {
	events.Command.Queue(req.ID, req.Label)
	return func() tea.Msg {
		if req.Disabled {
			events.Command.Skip(req.ID, req.Label)
			return nil
		}
		if req.Event.Kind == dispatcher.KindCommand && req.Event.Command == "" {
			events.Command.NoOp(req.ID, req.Label)
			return nil
		}
		msg := DispatchMsg{Event: req.Event}
		events.Command.Result(req.ID, req.Label, fmt.Sprintf("%T", msg))
		return msg
	}
}
