package ui

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/emu-settings-control/internal/backend"
	"github.com/atomicstack/emu-settings-control/internal/control"
	"github.com/atomicstack/emu-settings-control/internal/model"
	"github.com/atomicstack/emu-settings-control/internal/settings"
	"github.com/atomicstack/emu-settings-control/internal/setup"
)

// fakeController keeps snapshots in memory and records every mutation.
type fakeController struct {
	mu       sync.Mutex
	drivers  control.DriverSnapshot
	settings control.SettingSnapshot
	pending  bool
	calls    []string
}

func newFakeController() *fakeController {
	return &fakeController{
		drivers: control.DriverSnapshot{
			Drivers: []control.DriverInfo{
				{Title: "System GPU driver", System: true, Active: true},
				{Title: "Turnip", Version: "24.1", Vendor: "Mesa", Path: "/drivers/turnip.zip"},
				{Title: "Adreno", Version: "615", Vendor: "Qualcomm", Path: "/drivers/adreno.zip"},
			},
		},
		settings: control.SettingSnapshot{
			Game: "0100F2C0115B6000",
			Settings: []control.SettingInfo{
				{
					Key: settings.KeyRendererBackend, Title: "Renderer backend", Kind: settings.KindInt,
					Value: "Vulkan", GlobalValue: "Vulkan", Global: true, OptionActive: 1,
					Options: []model.Option{{Label: "OpenGL", Value: 0}, {Label: "Vulkan", Value: 1}, {Label: "Null", Value: 2}},
				},
				{Key: settings.KeyDiskShaderCache, Title: "Use disk shader cache", Kind: settings.KindBoolean, Value: "on", GlobalValue: "on", Global: true},
				{Key: settings.KeyAudioVolume, Title: "Audio volume", Kind: settings.KindByte, Value: "80", GlobalValue: "100"},
				{Key: settings.KeyDriverPath, Title: "GPU driver", Kind: settings.KindString, Global: true},
			},
			Addons: []model.Patch{
				{Name: "Update", Version: "1.2.0", Type: model.PatchUpdate, Enabled: true},
				{Name: "Expansion Pass", Version: "1.0", Type: model.PatchDLC},
				{Name: "60fps", Version: "2", Type: model.PatchMod, Enabled: true},
			},
			Players: []control.PlayerInfo{
				{Player: 1, Profile: "Pro Controller", Bindings: []model.InputBinding{{Button: "A", Type: model.InputButton}}},
				{Player: 2},
			},
		},
	}
}

func (f *fakeController) record(format string, args ...interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
}

func (f *fakeController) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeController) SelectDriver(path string) (string, error) {
	f.record("select %s", path)
	f.mu.Lock()
	defer f.mu.Unlock()
	title := ""
	for i := range f.drivers.Drivers {
		d := &f.drivers.Drivers[i]
		d.Active = d.Path == path
		if d.Active {
			title = d.Title
			f.drivers.Selected = i
		}
	}
	if title == "" {
		return "", fmt.Errorf("driver %s not installed", path)
	}
	return title, nil
}

func (f *fakeController) RemoveDriver(path string) (string, error) {
	f.record("remove %s", path)
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, d := range f.drivers.Drivers {
		if d.Path == path && !d.System {
			f.drivers.Drivers = append(f.drivers.Drivers[:i], f.drivers.Drivers[i+1:]...)
			if d.Active {
				f.drivers.Drivers[0].Active = true
				f.drivers.Selected = 0
			}
			return d.Title, nil
		}
	}
	return "", fmt.Errorf("driver %s not installed", path)
}

func (f *fakeController) InstallDriver(src string) (model.InstallResult, string, error) {
	f.record("install %s", src)
	return model.InstallSuccess, "Installed", nil
}

func (f *fakeController) ClearDriverOverride() error {
	f.record("clear")
	return nil
}

func (f *fakeController) ToggleSetting(key string) (string, error) {
	f.record("toggle %s", key)
	return "off", nil
}

func (f *fakeController) SetSetting(key, value string) (string, error) {
	f.record("set %s=%s", key, value)
	return value, nil
}

func (f *fakeController) SelectSettingOption(key string, value int) (string, error) {
	f.record("option %s=%d", key, value)
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.settings.Settings {
		s := &f.settings.Settings[i]
		if s.Key == key {
			s.OptionActive = value
			s.Value = s.Options[value].Label
			return s.Value, nil
		}
	}
	return "", fmt.Errorf("unknown setting %s", key)
}

func (f *fakeController) ResetSetting(key string) (string, error) {
	f.record("reset %s", key)
	return "default", nil
}

func (f *fakeController) ApplyAddons(names []string) (int, error) {
	f.record("addons [%s]", strings.Join(names, ","))
	f.mu.Lock()
	defer f.mu.Unlock()
	enabled := map[string]bool{}
	for _, n := range names {
		enabled[n] = true
	}
	for i := range f.settings.Addons {
		f.settings.Addons[i].Enabled = enabled[f.settings.Addons[i].Name]
	}
	return len(names), nil
}

func (f *fakeController) SetInputProfile(player int, profile string) error {
	f.record("profile %d=%s", player, profile)
	return nil
}

func (f *fakeController) DriversFingerprint() (string, error)  { return "d", nil }
func (f *fakeController) SettingsFingerprint() (string, error) { return "s", nil }

func (f *fakeController) FetchDrivers() (control.DriverSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	snap := f.drivers
	snap.Drivers = append([]control.DriverInfo(nil), f.drivers.Drivers...)
	return snap, nil
}

func (f *fakeController) FetchSettings() (control.SettingSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	snap := f.settings
	snap.Settings = append([]control.SettingInfo(nil), f.settings.Settings...)
	snap.Addons = append([]model.Patch(nil), f.settings.Addons...)
	return snap, nil
}

func (f *fakeController) SetupPending() bool { return f.pending }

func (f *fakeController) SetupDialog() setup.Dialog {
	return setup.Dialog{Title: "Welcome", Message: "Hello there", Confirm: "OK"}
}

func (f *fakeController) ConfirmSetup() error {
	f.record("setup")
	f.pending = false
	return nil
}

func (f *fakeController) lastCall(t *testing.T) string {
	t.Helper()
	calls := f.Calls()
	if len(calls) == 0 {
		t.Fatalf("expected a backend call")
	}
	return calls[len(calls)-1]
}

func newFakeHarness(t *testing.T, width, height int) (*Harness, *fakeController) {
	t.Helper()
	ctrl := newFakeController()
	m := NewModel(ctrl, width, height, false, false, nil, "")
	return NewHarness(m), ctrl
}

// enter moves the cursor to id on the current level and presses enter.
func enter(t *testing.T, h *Harness, id string) {
	t.Helper()
	current := h.Model().currentLevel()
	idx := current.IndexOf(id)
	if idx < 0 {
		t.Fatalf("item %q not found on level %s", id, current.ID)
	}
	current.Cursor = idx
	h.SendKey(tea.KeyEnter)
}

func currentID(h *Harness) string {
	if lvl := h.Model().currentLevel(); lvl != nil {
		return lvl.ID
	}
	return ""
}

func errorEvent() backend.Event {
	return backend.Event{Kind: backend.KindSettings, Err: errors.New("settings unreadable")}
}
