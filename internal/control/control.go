// Package control is the single entry point the UI uses to read and change
// emulator state. It owns the settings store, the driver repository and the
// driver picker, and serialises access to them so menu actions can run from
// Bubble Tea commands.
package control

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/atomicstack/emu-settings-control/internal/driver"
	"github.com/atomicstack/emu-settings-control/internal/logging"
	"github.com/atomicstack/emu-settings-control/internal/model"
	"github.com/atomicstack/emu-settings-control/internal/native"
	"github.com/atomicstack/emu-settings-control/internal/selection"
	"github.com/atomicstack/emu-settings-control/internal/settings"
	"github.com/atomicstack/emu-settings-control/internal/setup"
)

// MaxPlayers is the number of controller slots exposed in the input menu.
const MaxPlayers = 8

const driversDirName = "gpu_drivers"

// ErrNoGame is returned for operations that need a per-game context.
var ErrNoGame = errors.New("no game selected")

// Options configures Open.
type Options struct {
	ConfigDir  string
	DriversDir string
	Game       string
	Fallback   selection.FallbackPolicy
}

// Controller serialises access to the native backend.
type Controller struct {
	mu        sync.Mutex
	store     *native.Store
	repo      *native.DriverRepository
	catalogue *settings.Catalogue
	drivers   *driver.ViewModel
	setup     *setup.Flow

	settingsStamp string
}

// Open loads the settings store and the installed drivers.
func Open(opts Options) (*Controller, error) {
	dir := expandHome(strings.TrimSpace(opts.ConfigDir))
	if dir == "" {
		return nil, fmt.Errorf("config directory required")
	}
	store, err := native.OpenStore(dir)
	if err != nil {
		return nil, err
	}
	store.SetPerGame(opts.Game)
	catalogue := settings.NewCatalogue(store)

	driversDir := expandHome(strings.TrimSpace(opts.DriversDir))
	if driversDir == "" {
		driversDir = filepath.Join(dir, driversDirName)
	}
	repo := native.NewDriverRepository(driversDir)

	var vmOpts []driver.Option
	if opts.Fallback != nil {
		vmOpts = append(vmOpts, driver.WithFallback(opts.Fallback))
	}
	vm, err := driver.NewViewModel(repo, store, catalogue.DriverPath(), vmOpts...)
	if err != nil {
		// unreadable packages are skipped; the picker stays usable
		logging.Error(err)
	}
	c := &Controller{
		store:     store,
		repo:      repo,
		catalogue: catalogue,
		drivers:   vm,
		setup:     setup.New(store),
	}
	c.settingsStamp, _ = c.settingsFingerprint()
	return c, nil
}

// Game returns the active per-game context, empty for global.
func (c *Controller) Game() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store.PerGame()
}

// SettingsPath returns the settings file.
func (c *Controller) SettingsPath() string {
	return c.store.Path()
}

// DriversDir returns the driver package directory.
func (c *Controller) DriversDir() string {
	return c.repo.Dir()
}

// SelectDriver activates the driver with the given package path; an empty
// path selects the system driver.
func (c *Controller) SelectDriver(path string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	idx := c.drivers.IndexOfPath(path)
	if idx == selection.NoSelection {
		return "", fmt.Errorf("driver %s not installed", path)
	}
	if err := c.drivers.Select(idx); err != nil {
		return "", err
	}
	d, _ := c.drivers.Selected()
	return d.Title, nil
}

// RemoveDriver deletes the package at path.
func (c *Controller) RemoveDriver(path string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	idx := c.drivers.IndexOfPath(path)
	if idx == selection.NoSelection {
		return "", fmt.Errorf("driver %s not installed", path)
	}
	removed, err := c.drivers.Remove(idx)
	if removed == nil {
		return "", err
	}
	return removed.Title, err
}

// InstallDriver copies the package at src into the driver directory.
func (c *Controller) InstallDriver(src string) (model.InstallResult, string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	src = expandHome(strings.TrimSpace(src))
	result, d, err := c.drivers.Install(src)
	name := filepath.Base(src)
	if d != nil {
		name = d.Title
	}
	return result, name, err
}

// ClearDriverOverride drops the per-game driver choice.
func (c *Controller) ClearDriverOverride() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.store.PerGame() == "" {
		return ErrNoGame
	}
	return c.drivers.ClearOverride()
}

// ToggleSetting flips a boolean setting and returns the new display value.
func (c *Controller) ToggleSetting(key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, err := c.catalogue.Lookup(key)
	if err != nil {
		return "", err
	}
	b, ok := s.(*settings.BooleanSetting)
	if !ok {
		return "", fmt.Errorf("%s is a %s setting", key, s.Kind())
	}
	b.Toggle()
	return b.ValueString(false), c.save()
}

// SetSetting parses value into the setting registered under key.
func (c *Controller) SetSetting(key, value string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, err := c.catalogue.Lookup(key)
	if err != nil {
		return "", err
	}
	e, ok := s.(settings.Editable)
	if !ok {
		return "", fmt.Errorf("%s cannot be edited as text", key)
	}
	if err := e.SetFromString(value); err != nil {
		return "", err
	}
	return s.ValueString(false), c.save()
}

// SelectSettingOption picks the option with the given value.
func (c *Controller) SelectSettingOption(key string, value int) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, err := c.catalogue.Lookup(key)
	if err != nil {
		return "", err
	}
	is, ok := s.(*settings.IntSetting)
	if !ok || len(is.Options()) == 0 {
		return "", fmt.Errorf("%s has no options", key)
	}
	list := is.OptionList(false)
	idx := list.IndexFunc(func(o *model.Option) bool { return o.Value == value })
	if idx == selection.NoSelection {
		return "", fmt.Errorf("%w: %d is not an option of %s", settings.ErrInvalidValue, value, key)
	}
	list.SelectItem(idx, func(i int) {
		is.SetInt(int32(list.Item(i).Value))
	})
	return is.ValueString(false), c.save()
}

// ResetSetting drops a per-game override or restores the default.
func (c *Controller) ResetSetting(key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	s, err := c.catalogue.Lookup(key)
	if err != nil {
		return "", err
	}
	s.Reset()
	return s.ValueString(false), c.save()
}

// ApplyAddons enables exactly the named add-ons of the active game.
func (c *Controller) ApplyAddons(names []string) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	game := c.store.PerGame()
	if game == "" {
		return 0, ErrNoGame
	}
	c.store.SetAddonsEnabled(game, names)
	enabled := 0
	for _, p := range c.store.Addons(game) {
		if p.Enabled {
			enabled++
		}
	}
	return enabled, c.save()
}

// SetInputProfile binds a named profile to a controller slot.
func (c *Controller) SetInputProfile(player int, profile string) error {
	if player < 1 || player > MaxPlayers {
		return fmt.Errorf("player %d out of range", player)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store.SetInputProfile(player, strings.TrimSpace(profile))
	return c.save()
}

// SetupPending reports whether the first launch welcome is due.
func (c *Controller) SetupPending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.setup.Pending()
}

// SetupDialog returns the welcome content.
func (c *Controller) SetupDialog() setup.Dialog {
	return c.setup.Dialog()
}

// ConfirmSetup records that the welcome was acknowledged.
func (c *Controller) ConfirmSetup() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	err := c.setup.Confirm()
	c.settingsStamp, _ = c.settingsFingerprint()
	return err
}

func (c *Controller) save() error {
	if err := c.store.Save(); err != nil {
		return err
	}
	c.settingsStamp, _ = c.settingsFingerprint()
	return nil
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
