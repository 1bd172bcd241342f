package menu

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/emu-settings-control/internal/control"
	"github.com/atomicstack/emu-settings-control/internal/driver"
	"github.com/atomicstack/emu-settings-control/internal/format/table"
	"github.com/atomicstack/emu-settings-control/internal/i18n"
	"github.com/atomicstack/emu-settings-control/internal/logging/events"
)

// SystemDriverID is the item id of the built-in driver, which has no package
// path of its own.
const SystemDriverID = "system"

// DriverEntry represents a GPU driver for menu loaders.
type DriverEntry struct {
	ID          string
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

func loadDriversMenu(ctx Context) ([]Item, error) {
	ids := []string{"select", "install"}
	if ctx.ShowClear {
		ids = append(ids, "clear")
	}
	return menuItemsFromIDs(ids), nil
}

func loadDriverSelectMenu(ctx Context) ([]Item, error) {
	return DriverItems(ctx.Drivers), nil
}

// DriverItems renders the picker rows, system driver first.
func DriverItems(entries []DriverEntry) []Item {
	if len(entries) == 0 {
		return nil
	}
	rows := make([][]string, 0, len(entries))
	for _, entry := range entries {
		vendor := entry.Vendor
		if entry.System {
			vendor = ""
		}
		rows = append(rows, []string{entry.Title, entry.Version, vendor})
	}
	labels := table.FormatColumns(rows, []table.Column{
		{Align: table.AlignLeft, Max: 40},
		{Align: table.AlignLeft, Max: 16},
		{Align: table.AlignLeft, Max: 20},
	})
	items := make([]Item, 0, len(entries))
	for i, entry := range entries {
		items = append(items, Item{ID: entry.ID, Label: labels[i], Active: entry.Active})
	}
	return items
}

// FindDriver returns the entry with the given item id.
func FindDriver(entries []DriverEntry, id string) (DriverEntry, bool) {
	for _, entry := range entries {
		if entry.ID == id {
			return entry, true
		}
	}
	return DriverEntry{}, false
}

func driverPath(id string) string {
	if id == SystemDriverID {
		return ""
	}
	return id
}

func DriverSelectAction(ctx Context, item Item) tea.Cmd {
	b, err := ctx.backend()
	if err != nil {
		return failed(err)
	}
	path := driverPath(strings.TrimSpace(item.ID))
	return func() tea.Msg {
		title, err := b.SelectDriver(path)
		if err != nil {
			return ActionResult{Err: err}
		}
		events.Driver.Select(path, title)
		return ActionResult{Info: i18n.TData("driver_selected", map[string]interface{}{"Name": title})}
	}
}

func DriverRemoveAction(ctx Context, item Item) tea.Cmd {
	b, err := ctx.backend()
	if err != nil {
		return failed(err)
	}
	target := strings.TrimSpace(item.ID)
	if target == "" || target == SystemDriverID {
		return failed(driver.ErrSystemDriver)
	}
	return func() tea.Msg {
		events.Driver.Remove(target)
		title, err := b.RemoveDriver(target)
		if err != nil {
			return ActionResult{Err: err}
		}
		return ActionResult{Info: i18n.TData("driver_removed", map[string]interface{}{"Name": title})}
	}
}

func DriverInstallAction(ctx Context, item Item) tea.Cmd {
	return func() tea.Msg {
		events.Driver.InstallPrompt()
		return ValuePrompt{
			Context:     ctx,
			Action:      "drivers:install",
			Title:       "Install driver package",
			Placeholder: "/path/to/driver.zip",
		}
	}
}

// DriverInstallCommand installs the package at src and selects it.
func DriverInstallCommand(ctx Context, src string) tea.Cmd {
	b, err := ctx.backend()
	if err != nil {
		return failed(err)
	}
	return func() tea.Msg {
		if strings.TrimSpace(src) == "" {
			return ActionResult{Err: fmt.Errorf("driver package path required")}
		}
		result, name, err := b.InstallDriver(src)
		events.Driver.Install(src, result.String())
		msg := driver.ResultMessage(result, name)
		if err != nil {
			return ActionResult{Err: fmt.Errorf("%s: %w", msg, err)}
		}
		if !result.Installed() {
			return ActionResult{Err: fmt.Errorf("%s", msg)}
		}
		return ActionResult{Info: msg}
	}
}

func DriverClearAction(ctx Context, item Item) tea.Cmd {
	b, err := ctx.backend()
	if err != nil {
		return failed(err)
	}
	return func() tea.Msg {
		events.Driver.ClearOverride(ctx.Game)
		if err := b.ClearDriverOverride(); err != nil {
			return ActionResult{Err: err}
		}
		return ActionResult{Info: i18n.T("driver_override_cleared"), Back: true}
	}
}

// DriverEntriesFromSnapshot converts a picker snapshot into menu entries.
func DriverEntriesFromSnapshot(snap control.DriverSnapshot) []DriverEntry {
	entries := make([]DriverEntry, 0, len(snap.Drivers))
	for _, d := range snap.Drivers {
		id := d.Path
		if d.System {
			id = SystemDriverID
		}
		entries = append(entries, DriverEntry{
			ID:          id,
			Title:       d.Title,
			Version:     d.Version,
			Description: d.Description,
			Author:      d.Author,
			Vendor:      d.Vendor,
			Library:     d.Library,
			Path:        d.Path,
			System:      d.System,
			Active:      d.Active,
		})
	}
	return entries
}
