package ui

import (
	"github.com/atomicstack/tasktray-quicklaunch/internal/data/dispatcher"
	"github.com/atomicstack/tasktray-quicklaunch/internal/presentation"
	tea "github.com/charmbracelet/bubbletea"
)

// Harness drives the popup without a terminal. Commands returned by the
// model run synchronously, so timers and watcher reads must be fed in by
// the caller.
type Harness struct {
	model *Model
}

// NewHarness wraps model.
func NewHarness(model *Model) *Harness {
	return &Harness{model: model}
}

// Send routes msg through the model and drains the resulting commands.
func (h *Harness) Send(msg tea.Msg) {
	if h.model == nil {
		return
	}
	h.update(msg)
}

// Key presses a single non-printing key.
func (h *Harness) Key(k tea.KeyType) {
	h.Send(tea.KeyMsg{Type: k})
}

// Type enters s as one rune burst, as a paste or fast typist would.
func (h *Harness) Type(s string) {
	h.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

// Click presses button at cell (x, y).
func (h *Harness) Click(x, y int, button tea.MouseButton) {
	h.Send(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: button})
}

// Hover moves the pointer to cell (x, y).
func (h *Harness) Hover(x, y int) {
	h.Send(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion})
}

// update applies one message and every follow-up message its commands
// produce. Batched commands are not expanded.
func (h *Harness) update(msg tea.Msg) {
	for msg != nil {
		mdl, cmd := h.model.Update(msg)
		if updated, ok := mdl.(*Model); ok {
			h.model = updated
		}
		if cmd == nil {
			return
		}
		msg = cmd()
	}
}

// Snapshot reads the dispatcher directly, bypassing the copy the model
// keeps for rendering.
func (h *Harness) Snapshot() dispatcher.Snapshot {
	if h.model == nil || h.model.dispatcher == nil {
		return dispatcher.Snapshot{}
	}
	return h.model.dispatcher.Snapshot()
}

// State is the presentation state the popup last rendered.
func (h *Harness) State() presentation.State {
	if h.model == nil {
		return presentation.Closed
	}
	return h.model.snapshot.State
}

// View returns the current view string.
func (h *Harness) View() string {
	if h.model == nil {
		return ""
	}
	return h.model.View()
}

// Model exposes the underlying model.
func (h *Harness) Model() *Model {
	return h.model
}
