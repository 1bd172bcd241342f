package state

import (
	"strings"

	"github.com/atomicstack/emu-settings-control/internal/menu"
)

// Level is one screen of the menu stack: the entries loaded for a node, the
// filter narrowing them, the cursor and the marks of multi-select screens.
type Level struct {
	ID             string
	Title          string
	Items          []menu.Item
	Full           []menu.Item
	Filter         string
	FilterCursor   int
	Cursor         int
	MultiSelect    bool
	Radio          bool
	Selected       map[string]struct{}
	MarksChanged   bool
	Data           interface{}
	LastCursor     int
	Node           *menu.Node
	ViewportOffset int
}

// NewLevel builds a level holding items and binds it to node.
func NewLevel(id, title string, items []menu.Item, node *menu.Node) *Level {
	l := &Level{
		ID:         id,
		Title:      title,
		LastCursor: -1,
		Selected:   make(map[string]struct{}),
	}
	l.UpdateItems(items)
	l.Bind(node)
	return l
}

// Bind attaches node and copies its flags. Radio levels move the cursor to
// the entry in effect; multi-select levels mark the enabled entries unless
// the user already toggled some.
func (l *Level) Bind(node *menu.Node) {
	if node == nil {
		return
	}
	l.Node = node
	l.MultiSelect = node.MultiSelect
	l.Radio = node.Radio
	if l.Radio {
		if idx := l.ActiveIndex(); idx >= 0 {
			l.Cursor = idx
		}
	}
	if l.MultiSelect && len(l.Selected) == 0 && !l.MarksChanged {
		l.MarkActive()
	}
}

// IndexOf returns the visible index of the entry with id, or -1.
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

// ChildIndex returns the index of the entry that opened the level childID.
// Child ids extend the entry id with a "parent:" prefix.
func (l *Level) ChildIndex(childID string) int {
	if idx := l.IndexOf(childID); idx >= 0 {
		return idx
	}
	if i := strings.LastIndexByte(childID, ':'); i >= 0 {
		return l.IndexOf(childID[i+1:])
	}
	return -1
}

// UpdateItems replaces the entries, drops marks for entries that vanished
// and reapplies the current filter.
func (l *Level) UpdateItems(items []menu.Item) {
	l.Full = CloneItems(items)
	l.CleanupSelections()
	l.applyFilter()
}

// CloneItems copies items into a fresh slice.
func CloneItems(items []menu.Item) []menu.Item {
	return append([]menu.Item(nil), items...)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
