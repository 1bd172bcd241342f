package dispatcher

import (
	"github.com/atomicstack/emu-settings-control/internal/backend"
	"github.com/atomicstack/emu-settings-control/internal/control"
	"github.com/atomicstack/emu-settings-control/internal/menu"
	"github.com/atomicstack/emu-settings-control/internal/state"
)

type Result struct {
	DriversUpdated  bool
	SettingsUpdated bool
	AddonsUpdated   bool
	PlayersUpdated  bool
}

type Dispatcher struct {
	drivers  state.DriverStore
	settings state.SettingStore
	addons   state.AddonStore
	players  state.PlayerStore
}

func New(d state.DriverStore, s state.SettingStore, a state.AddonStore, p state.PlayerStore) *Dispatcher {
	return &Dispatcher{drivers: d, settings: s, addons: a, players: p}
}

func (d *Dispatcher) Handle(evt backend.Event) Result {
	var res Result
	if evt.Err != nil {
		return res
	}
	switch evt.Kind {
	case backend.KindDrivers:
		if snapshot, ok := evt.Data.(control.DriverSnapshot); ok {
			d.drivers.SetEntries(menu.DriverEntriesFromSnapshot(snapshot))
			d.drivers.SetShowClear(snapshot.ShowClear)
			res.DriversUpdated = true
		}
	case backend.KindSettings:
		if snapshot, ok := evt.Data.(control.SettingSnapshot); ok {
			d.settings.SetEntries(menu.SettingEntriesFromSnapshot(snapshot))
			d.settings.SetGame(snapshot.Game)
			d.addons.SetEntries(menu.AddonEntriesFromSnapshot(snapshot))
			d.players.SetEntries(menu.PlayerEntriesFromSnapshot(snapshot))
			res.SettingsUpdated = true
			res.AddonsUpdated = true
			res.PlayersUpdated = true
		}
	}
	return res
}
