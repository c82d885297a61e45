package shell

import (
	"errors"
	"fmt"

	"github.com/atomicstack/tasktray-quicklaunch/internal/logging"
	"github.com/ncruces/zenity"
)

const promptTitle = "TaskTrayQuickLaunch"

var (
	entryFn = zenity.Entry
	warnFn  = zenity.Warning
)

// Prompt asks for one line of text, prefilled with initial. ok is false
// when the user cancels.
func (p *Picker) Prompt(label, initial string) (string, bool, error) {
	text, err := entryFn(label, zenity.Title(promptTitle), zenity.EntryText(initial))
	if errors.Is(err, zenity.ErrCanceled) {
		return "", false, nil
	}
	if err != nil {
		wrapped := fmt.Errorf("prompt: %w", err)
		logging.Error(wrapped)
		return "", false, wrapped
	}
	return text, true, nil
}

// Warn shows a modal warning. Failures to show it are only logged.
func (p *Picker) Warn(message string) {
	if err := warnFn(message, zenity.Title(promptTitle)); err != nil && !errors.Is(err, zenity.ErrCanceled) {
		logging.Error(fmt.Errorf("warn: %w", err))
	}
}
