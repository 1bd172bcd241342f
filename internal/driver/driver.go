// Package driver is the view-model behind the GPU driver picker: the system
// driver followed by installed packages, exactly one of them active.
package driver

import (
	"errors"
	"fmt"

	"github.com/atomicstack/emu-settings-control/internal/i18n"
	"github.com/atomicstack/emu-settings-control/internal/logging/events"
	"github.com/atomicstack/emu-settings-control/internal/model"
	"github.com/atomicstack/emu-settings-control/internal/native"
	"github.com/atomicstack/emu-settings-control/internal/selection"
	"github.com/atomicstack/emu-settings-control/internal/settings"
)

// ErrSystemDriver is returned when removing the built-in driver.
var ErrSystemDriver = errors.New("system driver cannot be removed")

// Repository stores driver packages.
type Repository interface {
	List() ([]*model.Driver, error)
	Install(src string) (model.InstallResult, *model.Driver, error)
	Remove(path string) error
}

// ViewModel owns the driver selection and persists it to the driver path
// setting.
type ViewModel struct {
	repo     Repository
	backend  native.Settings
	path     *settings.StringSetting
	list     *selection.List[*model.Driver]
	fallback selection.FallbackPolicy
}

// Option configures a ViewModel.
type Option func(*ViewModel)

// WithFallback overrides the policy used after removing the active driver.
func WithFallback(policy selection.FallbackPolicy) Option {
	return func(vm *ViewModel) {
		vm.fallback = policy
	}
}

// NewViewModel builds the picker and loads the installed packages. A listing
// error for individual packages is returned together with a usable model.
func NewViewModel(repo Repository, backend native.Settings, path *settings.StringSetting, opts ...Option) (*ViewModel, error) {
	vm := &ViewModel{repo: repo, backend: backend, path: path, fallback: selection.FallbackFirst}
	for _, opt := range opts {
		opt(vm)
	}
	vm.list = selection.New[*model.Driver](nil, vm.fallback)
	return vm, vm.Reload()
}

// SystemDriver returns a fresh entry for the built-in driver.
func SystemDriver() *model.Driver {
	return &model.Driver{
		Title:       i18n.T("system_gpu_driver"),
		Description: i18n.T("system_gpu_driver_description"),
	}
}

// Reload rebuilds the list from the repository and selects the entry whose
// path matches the driver path setting, or the system driver.
func (vm *ViewModel) Reload() error {
	packages, err := vm.repo.List()
	items := make([]*model.Driver, 0, len(packages)+1)
	items = append(items, SystemDriver())
	items = append(items, packages...)

	active := vm.path.Text(false)
	selected := 0
	for i, d := range items {
		d.SetSelected(false)
		if active != "" && d.Path == active {
			selected = i
		}
	}
	items[selected].SetSelected(true)
	vm.list.Reset(items)
	events.Driver.Reload(len(items), selected)
	return err
}

// Drivers returns the entries in display order.
func (vm *ViewModel) Drivers() []*model.Driver {
	return vm.list.Items()
}

// Len returns the number of entries including the system driver.
func (vm *ViewModel) Len() int {
	return vm.list.Len()
}

// SelectedIndex returns the active entry.
func (vm *ViewModel) SelectedIndex() int {
	return vm.list.SelectedIndex()
}

// Selected returns the active driver.
func (vm *ViewModel) Selected() (*model.Driver, bool) {
	return vm.list.Selected()
}

// IndexOfPath returns the entry with the given package path.
func (vm *ViewModel) IndexOfPath(path string) int {
	return vm.list.IndexFunc(func(d *model.Driver) bool { return d.Path == path })
}

// Select activates the driver at index and persists its path.
func (vm *ViewModel) Select(index int) error {
	var err error
	vm.list.SelectItem(index, func(i int) {
		err = vm.persist(vm.list.Item(i).Path)
	})
	return err
}

// Remove deletes the package at index. Removing the active driver activates
// the fallback entry and persists it.
func (vm *ViewModel) Remove(index int) (*model.Driver, error) {
	target := vm.list.Item(index)
	if target.IsSystem() {
		return nil, ErrSystemDriver
	}
	if err := vm.repo.Remove(target.Path); err != nil {
		return nil, err
	}
	// the setting is authoritative; the list flag can lag an external edit
	wasActive := target.Selected() || (target.Path != "" && target.Path == vm.path.Text(false))
	var err error
	vm.list.RemoveSelectableItem(index, func(_, selected int) {
		if !wasActive {
			return
		}
		path := ""
		if selected != selection.NoSelection {
			path = vm.list.Item(selected).Path
		}
		err = vm.persist(path)
	})
	return target, err
}

// Install adds the package at src and activates it when it was installed.
func (vm *ViewModel) Install(src string) (model.InstallResult, *model.Driver, error) {
	result, installed, err := vm.repo.Install(src)
	if err != nil || !result.Installed() {
		return result, installed, err
	}
	// unrelated packages failing to parse do not undo the install
	_ = vm.Reload()
	index := vm.IndexOfPath(installed.Path)
	if index == selection.NoSelection {
		return result, installed, fmt.Errorf("installed driver %s not listed", installed.Path)
	}
	return result, installed, vm.Select(index)
}

// ShowClearButton reports whether the driver path is overridden for the
// active game.
func (vm *ViewModel) ShowClearButton() bool {
	return vm.backend.PerGame() != "" && !vm.path.Global()
}

// ClearOverride drops the per-game driver path and reselects accordingly.
func (vm *ViewModel) ClearOverride() error {
	vm.path.SetGlobal(true)
	if err := vm.backend.Save(); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return vm.Reload()
}

func (vm *ViewModel) persist(path string) error {
	vm.path.SetText(path)
	if err := vm.backend.Save(); err != nil {
		return fmt.Errorf("save driver path: %w", err)
	}
	return nil
}

// ResultMessage renders the localized status for an install outcome.
func ResultMessage(result model.InstallResult, name string) string {
	data := map[string]interface{}{"Name": name}
	switch result {
	case model.InstallOverwrite:
		return i18n.TData("install_overwrite", data)
	case model.InstallFailure:
		return i18n.TData("install_failure", data)
	case model.InstallBaseInstallAttempted:
		return i18n.T("install_base_attempted")
	default:
		return i18n.TData("install_success", data)
	}
}
