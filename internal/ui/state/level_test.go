package state

import (
	"testing"

	"github.com/atomicstack/emu-settings-control/internal/menu"
)

func TestChildIndexMatchesLastSegment(t *testing.T) {
	l := newTestLevel("select", "install", "clear")
	if idx := l.ChildIndex("drivers:install"); idx != 1 {
		t.Fatalf("expected install at 1, got %d", idx)
	}
	if idx := l.ChildIndex("clear"); idx != 2 {
		t.Fatalf("expected exact match 2, got %d", idx)
	}
	if idx := l.ChildIndex("drivers:missing"); idx != -1 {
		t.Fatalf("expected -1, got %d", idx)
	}
}

func TestBindRadioStartsOnActiveEntry(t *testing.T) {
	items := []menu.Item{
		{ID: "system", Label: "System GPU driver"},
		{ID: "/d/turnip.zip", Label: "Turnip", Active: true},
	}
	l := NewLevel("drivers:select", "select", items, &menu.Node{Radio: true})
	if !l.Radio || l.Cursor != 1 {
		t.Fatalf("expected radio level on active entry, got radio=%v cursor=%d", l.Radio, l.Cursor)
	}

	l.SetFilter("sys", 3)
	l.LastCursor = -1
	l.SetFilter("", 0)
	if l.Cursor != 1 {
		t.Fatalf("expected cursor back on the active entry, got %d", l.Cursor)
	}
}

func TestBindMultiSelectMarksEnabledEntries(t *testing.T) {
	items := []menu.Item{{ID: "Update", Label: "Update", Active: true}, {ID: "DLC", Label: "DLC"}}
	l := NewLevel("addons", "addons", items, &menu.Node{MultiSelect: true})
	if !l.IsSelected("Update") || l.IsSelected("DLC") {
		t.Fatalf("unexpected marks %v", l.Selected)
	}
	l.ToggleCurrentSelection()
	l.Bind(l.Node)
	if l.IsSelected("Update") {
		t.Fatal("expected rebinding to keep user toggles")
	}
}
