package state

import "github.com/atomicstack/emu-settings-control/internal/menu"

type DriverStore interface {
	Entries() []menu.DriverEntry
	SetEntries([]menu.DriverEntry)
	ShowClear() bool
	SetShowClear(bool)
}

type driverStore struct {
	entries   []menu.DriverEntry
	showClear bool
}

func NewDriverStore() DriverStore {
	return &driverStore{}
}

func (d *driverStore) Entries() []menu.DriverEntry {
	return cloneEntries(d.entries)
}

func (d *driverStore) SetEntries(entries []menu.DriverEntry) {
	d.entries = cloneEntries(entries)
}

func (d *driverStore) ShowClear() bool {
	return d.showClear
}

func (d *driverStore) SetShowClear(show bool) {
	d.showClear = show
}

func cloneEntries[T any](entries []T) []T {
	if len(entries) == 0 {
		return nil
	}
	dup := make([]T, len(entries))
	copy(dup, entries)
	return dup
}
