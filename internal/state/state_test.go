package state

import (
	"testing"

	"github.com/atomicstack/emu-settings-control/internal/menu"
)

func TestDriverStoreCopiesEntries(t *testing.T) {
	store := NewDriverStore()
	entries := []menu.DriverEntry{{ID: menu.SystemDriverID, Title: "System"}}
	store.SetEntries(entries)
	entries[0].Title = "changed"
	got := store.Entries()
	if got[0].Title != "System" {
		t.Fatalf("store should keep its own copy, got %q", got[0].Title)
	}
	got[0].Title = "mutated"
	if store.Entries()[0].Title != "System" {
		t.Fatalf("Entries should return a copy")
	}
	store.SetShowClear(true)
	if !store.ShowClear() {
		t.Fatalf("expected show clear")
	}
}

func TestEmptyStoresReturnNil(t *testing.T) {
	if NewSettingStore().Entries() != nil {
		t.Fatalf("expected nil settings")
	}
	if NewAddonStore().Entries() != nil {
		t.Fatalf("expected nil addons")
	}
	if NewPlayerStore().Entries() != nil {
		t.Fatalf("expected nil players")
	}
}

func TestSettingStoreGame(t *testing.T) {
	store := NewSettingStore()
	store.SetGame("0100")
	store.SetEntries([]menu.SettingEntry{{Key: "theme"}})
	if store.Game() != "0100" || len(store.Entries()) != 1 {
		t.Fatalf("unexpected store state")
	}
}
