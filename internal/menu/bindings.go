package menu

import (
	"github.com/atomicstack/tasktray-quicklaunch/internal/state"
	"github.com/google/uuid"
)

// Bindings ties opaque menu item identifiers to shortcut indexes. It is
// rebuilt after every store mutation, so stale identifiers stop resolving.
type Bindings struct {
	ids     []string
	indexes map[string]int
}

// Bind issues a fresh identifier for every entry.
func Bind(entries []state.Entry) *Bindings {
	b := &Bindings{
		ids:     make([]string, len(entries)),
		indexes: make(map[string]int, len(entries)),
	}
	for i := range entries {
		id := uuid.NewString()
		b.ids[i] = id
		b.indexes[id] = i
	}
	return b
}

// Index resolves an item identifier.
func (b *Bindings) Index(id string) (int, bool) {
	if b == nil {
		return -1, false
	}
	idx, ok := b.indexes[id]
	return idx, ok
}

// ID returns the identifier issued for index.
func (b *Bindings) ID(index int) string {
	if b == nil || index < 0 || index >= len(b.ids) {
		return ""
	}
	return b.ids[index]
}

// Len reports how many entries are bound.
func (b *Bindings) Len() int {
	if b == nil {
		return 0
	}
	return len(b.ids)
}

// EntryItems converts entries into menu items carrying their bound IDs.
func EntryItems(entries []state.Entry, b *Bindings) []Item {
	items := make([]Item, 0, len(entries))
	for i, entry := range entries {
		items = append(items, Item{ID: b.ID(i), Label: entry.Name})
	}
	return items
}
