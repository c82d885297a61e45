package shell

import (
	"strings"

	"github.com/atotto/clipboard"
)

var readClipboardFn = clipboard.ReadAll

// Clipboard reads the system clipboard.
type Clipboard struct{}

// NewClipboard returns a Clipboard.
func NewClipboard() *Clipboard {
	return &Clipboard{}
}

// Text returns the trimmed first line of the clipboard, or "" when it is
// empty or unreadable.
func (c *Clipboard) Text() string {
	text, err := readClipboardFn()
	if err != nil {
		return ""
	}
	text = strings.TrimSpace(text)
	if idx := strings.IndexAny(text, "\r\n"); idx >= 0 {
		text = strings.TrimSpace(text[:idx])
	}
	return text
}
