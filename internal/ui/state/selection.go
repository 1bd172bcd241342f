package state

import "github.com/atomicstack/emu-settings-control/internal/menu"

// Marks live in Selected keyed by entry id. MarksChanged tells a refresh
// whether the marks still mirror the backend or hold unsaved toggles.

// CleanupSelections drops marks whose entry is gone.
func (l *Level) CleanupSelections() {
	if len(l.Selected) == 0 {
		return
	}
	present := make(map[string]bool, len(l.Full))
	for _, item := range l.Full {
		present[item.ID] = true
	}
	for id := range l.Selected {
		if !present[id] {
			delete(l.Selected, id)
		}
	}
}

func (l *Level) IsSelected(id string) bool {
	_, ok := l.Selected[id]
	return ok
}

// ToggleSelection flips the mark on id.
func (l *Level) ToggleSelection(id string) {
	if l.Selected == nil {
		l.Selected = make(map[string]struct{})
	}
	if l.IsSelected(id) {
		delete(l.Selected, id)
		return
	}
	l.Selected[id] = struct{}{}
}

// ToggleCurrentSelection flips the mark under the cursor on multi-select
// levels and flags the marks as edited.
func (l *Level) ToggleCurrentSelection() {
	if !l.MultiSelect || l.Cursor < 0 || l.Cursor >= len(l.Items) {
		return
	}
	l.ToggleSelection(l.Items[l.Cursor].ID)
	l.MarksChanged = true
}

// MarkActive resets the marks to the entries the backend reports as enabled.
func (l *Level) MarkActive() {
	l.Selected = make(map[string]struct{}, len(l.Full))
	for _, item := range l.Full {
		if item.Active {
			l.Selected[item.ID] = struct{}{}
		}
	}
	l.MarksChanged = false
}

// ActiveIndex returns the visible index of the first entry in effect, or -1.
func (l *Level) ActiveIndex() int {
	for i, item := range l.Items {
		if item.Active {
			return i
		}
	}
	return -1
}

func (l *Level) ClearSelection() {
	clear(l.Selected)
}

// SelectedItems returns the marked entries in display order.
func (l *Level) SelectedItems() []menu.Item {
	var marked []menu.Item
	for _, item := range l.Items {
		if l.IsSelected(item.ID) {
			marked = append(marked, item)
		}
	}
	return marked
}
