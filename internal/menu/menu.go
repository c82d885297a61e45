package menu

import (
	"fmt"

	"github.com/atomicstack/tasktray-quicklaunch/internal/state"
)

// Item represents a selectable menu entry.
type Item struct {
	ID       string
	Label    string
	Disabled bool
}

// Management command identifiers. The prefix before ':' groups commands that
// share an enablement rule.
const (
	CommandAddFile   = "add:file"
	CommandAddFolder = "add:folder"
	CommandAddPath   = "add:path"
	CommandMoveUp    = "entry:move-up"
	CommandMoveDown  = "entry:move-down"
	CommandRename    = "entry:rename"
	CommandDelete    = "entry:delete"
	CommandClose     = "menu:close"
	CommandExit      = "app:exit"

	VersionID = "version"
)

// PlaceholderLabel names the in-progress entry when the clipboard is empty.
const PlaceholderLabel = "new shortcut"

// VersionLabel is the disabled first row of the management menu.
func VersionLabel(version string) string {
	return fmt.Sprintf("%s v%s", state.AppName, version)
}

// CommandLabels maps command identifiers to their menu text.
func CommandLabels() map[string]string {
	return map[string]string{
		CommandAddFile:   "Add File",
		CommandAddFolder: "Add Folder",
		CommandAddPath:   "Add Path",
		CommandMoveUp:    "Move Up",
		CommandMoveDown:  "Move Down",
		CommandRename:    "Rename",
		CommandDelete:    "Delete",
		CommandClose:     "Close",
		CommandExit:      "Exit",
	}
}

// CommandOrder lists the management commands in display order.
func CommandOrder() []string {
	return []string{
		CommandAddFile,
		CommandAddFolder,
		CommandAddPath,
		CommandMoveUp,
		CommandMoveDown,
		CommandRename,
		CommandDelete,
		CommandClose,
		CommandExit,
	}
}
