package state

import "github.com/atomicstack/tasktray-quicklaunch/internal/menu"

// Level is one visible list, either the shortcut rows or the management
// commands, with its filter, cursor and viewport.
type Level struct {
	ID             string
	Items          []menu.Item
	Full           []menu.Item
	Filter         string
	Cursor         int
	LastCursor     int
	ViewportOffset int
}

// NewLevel constructs a Level with no cursor.
func NewLevel(id string, items []menu.Item) *Level {
	l := &Level{ID: id, Cursor: -1, LastCursor: -1}
	l.UpdateItems(items)
	return l
}

// IndexOf returns the visible position of an item identifier.
func (l *Level) IndexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, item := range l.Items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// UpdateItems replaces the items and reapplies the filter. The cursor stays
// on the same identifier when it survives.
func (l *Level) UpdateItems(items []menu.Item) {
	current, hadCurrent := l.Current()
	l.Full = CloneItems(items)
	l.applyFilter()
	if hadCurrent {
		if idx := l.IndexOf(current.ID); idx >= 0 {
			l.Cursor = idx
		}
	}
	if l.ViewportOffset > len(l.Items)-1 || l.ViewportOffset < 0 {
		l.ViewportOffset = 0
	}
}

// Current returns the item under the cursor.
func (l *Level) Current() (menu.Item, bool) {
	if l.Cursor < 0 || l.Cursor >= len(l.Items) {
		return menu.Item{}, false
	}
	return l.Items[l.Cursor], true
}

// SetCursorID moves the cursor onto id, or clears it when id is not visible.
func (l *Level) SetCursorID(id string) bool {
	old := l.Cursor
	l.Cursor = l.IndexOf(id)
	return old != l.Cursor
}
