// Package shell wraps the operating-system collaborators: opening targets
// with their default handler, modal file and folder pickers, and the
// clipboard.
package shell

import (
	"errors"
	"fmt"
	"strings"

	"github.com/atomicstack/tasktray-quicklaunch/internal/logging"
	"github.com/atomicstack/tasktray-quicklaunch/internal/logging/events"
	"github.com/skratchdot/open-golang/open"
)

// ErrEmptyTarget rejects launching nothing.
var ErrEmptyTarget = errors.New("empty launch target")

var startFn = open.Start

// Launcher opens targets with the shell's default handler and does not wait
// for the spawned process.
type Launcher struct{}

// NewLauncher returns a Launcher.
func NewLauncher() *Launcher {
	return &Launcher{}
}

// Open hands target to the shell. Failures are logged and returned; they are
// never fatal.
func (l *Launcher) Open(target string) error {
	target = strings.TrimSpace(target)
	if target == "" {
		return ErrEmptyTarget
	}
	events.Launch.Open(target)
	if err := startFn(target); err != nil {
		wrapped := fmt.Errorf("launch %s: %w", target, err)
		logging.Error(wrapped)
		events.Launch.Failed(target, err)
		return wrapped
	}
	return nil
}
