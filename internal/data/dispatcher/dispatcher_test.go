package dispatcher

import (
	"errors"
	"testing"

	"github.com/atomicstack/emu-settings-control/internal/backend"
	"github.com/atomicstack/emu-settings-control/internal/control"
	"github.com/atomicstack/emu-settings-control/internal/model"
	"github.com/atomicstack/emu-settings-control/internal/state"
)

func newDispatcher() (*Dispatcher, state.DriverStore, state.SettingStore, state.AddonStore, state.PlayerStore) {
	d, s, a, p := state.NewDriverStore(), state.NewSettingStore(), state.NewAddonStore(), state.NewPlayerStore()
	return New(d, s, a, p), d, s, a, p
}

func TestHandleDriverSnapshot(t *testing.T) {
	disp, drivers, _, _, _ := newDispatcher()
	res := disp.Handle(backend.Event{Kind: backend.KindDrivers, Data: control.DriverSnapshot{
		Drivers:   []control.DriverInfo{{Title: "System", System: true, Active: true}},
		ShowClear: true,
	}})
	if !res.DriversUpdated || res.SettingsUpdated {
		t.Fatalf("unexpected result %+v", res)
	}
	if len(drivers.Entries()) != 1 || !drivers.ShowClear() {
		t.Fatalf("driver store not updated")
	}
}

func TestHandleSettingSnapshot(t *testing.T) {
	disp, _, settingStore, addons, players := newDispatcher()
	res := disp.Handle(backend.Event{Kind: backend.KindSettings, Data: control.SettingSnapshot{
		Game:     "0100",
		Settings: []control.SettingInfo{{Key: "theme", Value: "Default"}},
		Addons:   []model.Patch{{Name: "Update", Enabled: true}},
		Players:  []control.PlayerInfo{{Player: 1}},
	}})
	if !res.SettingsUpdated || !res.AddonsUpdated || !res.PlayersUpdated {
		t.Fatalf("unexpected result %+v", res)
	}
	if settingStore.Game() != "0100" || len(settingStore.Entries()) != 1 {
		t.Fatalf("setting store not updated")
	}
	if len(addons.Entries()) != 1 || len(players.Entries()) != 1 {
		t.Fatalf("addon/player stores not updated")
	}
}

func TestHandleIgnoresErrorsAndWrongData(t *testing.T) {
	disp, drivers, _, _, _ := newDispatcher()
	if res := disp.Handle(backend.Event{Kind: backend.KindDrivers, Err: errors.New("boom")}); res.DriversUpdated {
		t.Fatalf("error events must not update stores")
	}
	if res := disp.Handle(backend.Event{Kind: backend.KindDrivers, Data: "nope"}); res.DriversUpdated {
		t.Fatalf("unexpected data must be ignored")
	}
	if drivers.Entries() != nil {
		t.Fatalf("store should be untouched")
	}
}
