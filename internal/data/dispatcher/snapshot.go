package dispatcher

import (
	"github.com/atomicstack/tasktray-quicklaunch/internal/menu"
	"github.com/atomicstack/tasktray-quicklaunch/internal/presentation"
	"github.com/atomicstack/tasktray-quicklaunch/internal/target"
)

// EntryView is one shortcut row as a front-end renders it.
type EntryView struct {
	ID          string
	Name        string
	Target      string
	Kind        target.Kind
	Icon        []byte
	Selected    bool
	Editing     bool
	Placeholder bool
}

// Snapshot is a read-only copy of everything a front-end draws.
type Snapshot struct {
	State    presentation.State
	Entries  []EntryView
	Selected int
	Edit     presentation.Edit
	Editing  bool
	Commands []menu.Item
	Version  string
}

// Snapshot captures the current store and presentation state.
func (d *Dispatcher) Snapshot() Snapshot {
	edit, editing := d.machine.Editing()
	entries := d.store.Entries()
	views := make([]EntryView, 0, len(entries))
	for i, entry := range entries {
		view := EntryView{
			ID:          d.bindings.ID(i),
			Name:        entry.Name,
			Target:      entry.Target,
			Icon:        entry.Icon,
			Selected:    i == d.machine.Selected(),
			Editing:     editing && i == edit.Index,
			Placeholder: entry.IsPlaceholder(),
		}
		if !view.Placeholder {
			view.Kind = target.Classify(entry.Target)
		}
		views = append(views, view)
	}
	return Snapshot{
		State:    d.machine.State(),
		Entries:  views,
		Selected: d.machine.Selected(),
		Edit:     edit,
		Editing:  editing,
		Commands: d.registry.Items(d.store.Version(), d.hasSelection()),
		Version:  d.store.Version(),
	}
}
