package shell

import (
	"errors"
	"fmt"

	"github.com/atomicstack/tasktray-quicklaunch/internal/logging"
	"github.com/ncruces/zenity"
)

const (
	fileDialogTitle   = "Select a file to add as a shortcut"
	folderDialogTitle = "Select a folder to add as a shortcut"
)

var selectFn = zenity.SelectFile

// Picker shows modal file and folder dialogs. Both calls block until the
// user dismisses the dialog.
type Picker struct{}

// NewPicker returns a Picker.
func NewPicker() *Picker {
	return &Picker{}
}

// PickFile asks for a file. ok is false when the user cancels.
func (p *Picker) PickFile() (string, bool, error) {
	return pick(zenity.Title(fileDialogTitle))
}

// PickFolder asks for a directory. ok is false when the user cancels.
func (p *Picker) PickFolder() (string, bool, error) {
	return pick(zenity.Title(folderDialogTitle), zenity.Directory())
}

func pick(options ...zenity.Option) (string, bool, error) {
	path, err := selectFn(options...)
	if errors.Is(err, zenity.ErrCanceled) {
		return "", false, nil
	}
	if err != nil {
		wrapped := fmt.Errorf("picker: %w", err)
		logging.Error(wrapped)
		return "", false, wrapped
	}
	if path == "" {
		return "", false, nil
	}
	return path, true, nil
}
