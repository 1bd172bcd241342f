// Package selection provides a list that keeps at most one item selected.
package selection

import (
	"fmt"

	"github.com/atomicstack/emu-settings-control/internal/model"
)

// NoSelection is reported when a list has no selected item.
const NoSelection = -1

// FallbackPolicy picks the index that becomes selected after the selected
// item at removed was taken out, leaving remaining items. It returns
// NoSelection to leave the list without a selection.
type FallbackPolicy func(removed, remaining int) int

// FallbackFirst selects the first remaining item.
func FallbackFirst(_, remaining int) int {
	if remaining == 0 {
		return NoSelection
	}
	return 0
}

// FallbackPrevious selects the item that preceded the removed one.
func FallbackPrevious(removed, remaining int) int {
	if remaining == 0 {
		return NoSelection
	}
	idx := removed - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= remaining {
		idx = remaining - 1
	}
	return idx
}

// FallbackNone leaves the list without a selection.
func FallbackNone(int, int) int {
	return NoSelection
}

// List keeps display-ordered items of which at most one is
// selected. It is not safe for concurrent use; callers drive it from the UI
// update loop.
type List[T model.Selectable] struct {
	items    []T
	selected int
	fallback FallbackPolicy
}

// New takes ownership of items. If several are flagged as
// selected, only the first keeps its flag.
func New[T model.Selectable](items []T, fallback FallbackPolicy) *List[T] {
	if fallback == nil {
		fallback = FallbackFirst
	}
	l := &List[T]{selected: NoSelection, fallback: fallback}
	l.Reset(items)
	return l
}

// Reset replaces the items, normalising the selection flags.
func (l *List[T]) Reset(items []T) {
	l.items = append([]T(nil), items...)
	l.selected = NoSelection
	for i, item := range l.items {
		if !item.Selected() {
			continue
		}
		if l.selected == NoSelection {
			l.selected = i
			continue
		}
		item.SetSelected(false)
	}
}

// Len returns the number of items.
func (l *List[T]) Len() int {
	return len(l.items)
}

// Item returns the item at index.
func (l *List[T]) Item(index int) T {
	l.checkIndex("Item", index)
	return l.items[index]
}

// Items returns a copy of the items in display order.
func (l *List[T]) Items() []T {
	return append([]T(nil), l.items...)
}

// SelectedIndex returns the selected index or NoSelection.
func (l *List[T]) SelectedIndex() int {
	return l.selected
}

// Selected returns the selected item, if any.
func (l *List[T]) Selected() (T, bool) {
	var zero T
	if l.selected == NoSelection {
		return zero, false
	}
	return l.items[l.selected], true
}

// IndexFunc returns the first index whose item satisfies match.
func (l *List[T]) IndexFunc(match func(T) bool) int {
	for i, item := range l.items {
		if match(item) {
			return i
		}
	}
	return NoSelection
}

// Append adds an unselected item at the end and returns its index.
func (l *List[T]) Append(item T) int {
	item.SetSelected(false)
	l.items = append(l.items, item)
	return len(l.items) - 1
}

// SelectItem makes index the only selected item and then reports it through
// onSelected. Selecting the already selected index leaves the items as they
// are.
func (l *List[T]) SelectItem(index int, onSelected func(int)) {
	l.checkIndex("SelectItem", index)
	if index != l.selected {
		if l.selected != NoSelection {
			prev := l.items[l.selected]
			prev.SetSelected(false)
			prev.OnSelectionStateChanged(false)
		}
		next := l.items[index]
		next.SetSelected(true)
		next.OnSelectionStateChanged(true)
		l.selected = index
	}
	if onSelected != nil {
		onSelected(index)
	}
}

// RemoveSelectableItem removes the item at index. If it was selected, the
// fallback policy chooses the replacement. onRemoved receives the removed
// index and the resulting selected index (NoSelection when none).
func (l *List[T]) RemoveSelectableItem(index int, onRemoved func(removed, selected int)) {
	l.checkIndex("RemoveSelectableItem", index)
	removed := l.items[index]
	wasSelected := index == l.selected
	l.items = append(l.items[:index], l.items[index+1:]...)

	switch {
	case wasSelected:
		removed.SetSelected(false)
		removed.OnSelectionStateChanged(false)
		l.selected = NoSelection
		if next := l.fallback(index, len(l.items)); next >= 0 && next < len(l.items) {
			item := l.items[next]
			item.SetSelected(true)
			item.OnSelectionStateChanged(true)
			l.selected = next
		}
	case l.selected > index:
		l.selected--
	}
	if onRemoved != nil {
		onRemoved(index, l.selected)
	}
}

func (l *List[T]) checkIndex(op string, index int) {
	if index < 0 || index >= len(l.items) {
		panic(fmt.Sprintf("selection: %s index %d out of range [0,%d)", op, index, len(l.items)))
	}
}
