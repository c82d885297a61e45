package menu

import "strings"

// Node represents a command definition within the registry.
type Node struct {
	ID                string
	Label             string
	Group             string
	RequiresSelection bool
}

// Registry exposes lookup utilities for management command definitions.
type Registry struct {
	order []string
	nodes map[string]*Node
}

// BuildRegistry constructs the registry from the label and order tables.
// Commands in the "entry" group act on the selected shortcut and are
// disabled without one.
func BuildRegistry() *Registry {
	labels := CommandLabels()
	nodes := make(map[string]*Node, len(labels))
	for id, label := range labels {
		group, _ := groupKey(id)
		nodes[id] = &Node{
			ID:                id,
			Label:             label,
			Group:             group,
			RequiresSelection: group == "entry",
		}
	}
	return &Registry{order: CommandOrder(), nodes: nodes}
}

// Find locates a node by ID.
func (r *Registry) Find(id string) (*Node, bool) {
	node, ok := r.nodes[id]
	return node, ok
}

// Enabled reports whether id can run given the current selection.
func (r *Registry) Enabled(id string, hasSelection bool) bool {
	node, ok := r.nodes[id]
	if !ok {
		return false
	}
	return !node.RequiresSelection || hasSelection
}

// Items renders the management menu: the disabled version row followed by
// every command, with selection-bound commands disabled when nothing is
// selected.
func (r *Registry) Items(version string, hasSelection bool) []Item {
	items := make([]Item, 0, len(r.order)+1)
	items = append(items, Item{ID: VersionID, Label: VersionLabel(version), Disabled: true})
	for _, id := range r.order {
		node := r.nodes[id]
		items = append(items, Item{
			ID:       id,
			Label:    node.Label,
			Disabled: !r.Enabled(id, hasSelection),
		})
	}
	return items
}

func groupKey(id string) (string, string) {
	idx := strings.Index(id, ":")
	if idx < 0 {
		return "", id
	}
	return id[:idx], id[idx+1:]
}
