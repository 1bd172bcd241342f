package control

import (
	"errors"
	"fmt"
	"os"

	"github.com/atomicstack/emu-settings-control/internal/logging"
	"github.com/atomicstack/emu-settings-control/internal/logging/events"
	"github.com/atomicstack/emu-settings-control/internal/model"
	"github.com/atomicstack/emu-settings-control/internal/settings"
)

// DriverInfo is a read-only copy of a driver entry.
type DriverInfo struct {
	Title       string
	Version     string
	Description string
	Author      string
	Vendor      string
	Library     string
	Path        string
	System      bool
	Active      bool
}

// DriverSnapshot is the driver picker state at one point in time.
type DriverSnapshot struct {
	Drivers   []DriverInfo
	Selected  int
	ShowClear bool
	Game      string
}

// SettingInfo is a read-only copy of a setting and its resolved values.
type SettingInfo struct {
	Key          string
	Title        string
	Description  string
	Kind         settings.Kind
	Value        string
	GlobalValue  string
	Global       bool
	Options      []model.Option
	OptionActive int
}

// PlayerInfo describes one controller slot.
type PlayerInfo struct {
	Player   int
	Profile  string
	Bindings []model.InputBinding
}

// SettingSnapshot groups everything read from the settings file.
type SettingSnapshot struct {
	Game     string
	Settings []SettingInfo
	Addons   []model.Patch
	Players  []PlayerInfo
}

// DriversFingerprint changes whenever the driver directory does.
func (c *Controller) DriversFingerprint() (string, error) {
	return c.repo.Fingerprint()
}

// SettingsFingerprint changes whenever the settings file does.
func (c *Controller) SettingsFingerprint() (string, error) {
	return c.settingsFingerprint()
}

func (c *Controller) settingsFingerprint() (string, error) {
	info, err := os.Stat(c.store.Path())
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d:%d", info.Size(), info.ModTime().UnixNano()), nil
}

// FetchDrivers rescans the driver directory and returns the picker state.
func (c *Controller) FetchDrivers() (DriverSnapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.drivers.Reload(); err != nil {
		logging.Error(err)
	}
	return c.driverSnapshot(), nil
}

func (c *Controller) driverSnapshot() DriverSnapshot {
	snap := DriverSnapshot{
		Selected:  c.drivers.SelectedIndex(),
		ShowClear: c.drivers.ShowClearButton(),
		Game:      c.store.PerGame(),
	}
	for _, d := range c.drivers.Drivers() {
		snap.Drivers = append(snap.Drivers, DriverInfo{
			Title:       d.Title,
			Version:     d.Version,
			Description: d.Description,
			Author:      d.Author,
			Vendor:      d.Vendor,
			Library:     d.Library,
			Path:        d.Path,
			System:      d.IsSystem(),
			Active:      d.Selected(),
		})
	}
	return snap
}

// FetchSettings re-reads the settings file when it changed on disk and
// returns the resolved values.
func (c *Controller) FetchSettings() (SettingSnapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	stamp, err := c.settingsFingerprint()
	if err != nil {
		return SettingSnapshot{}, err
	}
	if stamp != c.settingsStamp && !c.store.Dirty() {
		if err := c.store.Reload(); err != nil {
			return SettingSnapshot{}, err
		}
		events.Settings.Reload(c.store.Path())
		c.settingsStamp = stamp
		// the driver path may have changed underneath the picker
		if err := c.drivers.Reload(); err != nil {
			logging.Error(fmt.Errorf("reload drivers: %w", err))
		}
	}
	return c.settingSnapshot(), nil
}

func (c *Controller) settingSnapshot() SettingSnapshot {
	game := c.store.PerGame()
	snap := SettingSnapshot{Game: game}
	for _, s := range c.catalogue.All() {
		info := SettingInfo{
			Key:          s.Key(),
			Title:        s.Title(),
			Description:  s.Description(),
			Kind:         s.Kind(),
			Value:        s.ValueString(false),
			GlobalValue:  s.ValueString(true),
			Global:       s.Global(),
			OptionActive: -1,
		}
		if is, ok := s.(*settings.IntSetting); ok {
			info.Options = is.Options()
			if list := is.OptionList(false); list.Len() > 0 {
				info.OptionActive = list.SelectedIndex()
			}
		}
		snap.Settings = append(snap.Settings, info)
	}
	if game != "" {
		snap.Addons = c.store.Addons(game)
	}
	for p := 1; p <= MaxPlayers; p++ {
		snap.Players = append(snap.Players, PlayerInfo{
			Player:   p,
			Profile:  c.store.InputProfile(p),
			Bindings: c.store.InputBindings(p),
		})
	}
	return snap
}
