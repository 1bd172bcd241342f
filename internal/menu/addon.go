package menu

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/emu-settings-control/internal/control"
	"github.com/atomicstack/emu-settings-control/internal/format/table"
	"github.com/atomicstack/emu-settings-control/internal/i18n"
	"github.com/atomicstack/emu-settings-control/internal/logging/events"
	"github.com/atomicstack/emu-settings-control/internal/model"
)

// AddonEntry represents an installed update, DLC or mod of the active game.
type AddonEntry struct {
	Name    string
	Version string
	Type    model.PatchType
	Enabled bool
}

// TypeLabel is the localized patch type name.
func (e AddonEntry) TypeLabel() string {
	switch e.Type {
	case model.PatchDLC:
		return i18n.T("patch_dlc")
	case model.PatchMod:
		return i18n.T("patch_mod")
	default:
		return i18n.T("patch_update")
	}
}

func loadAddonsMenu(ctx Context) ([]Item, error) {
	if ctx.Game == "" {
		return nil, control.ErrNoGame
	}
	return AddonItems(ctx.Addons), nil
}

// AddonItems renders the add-ons with enabled ones marked active.
func AddonItems(entries []AddonEntry) []Item {
	if len(entries) == 0 {
		return nil
	}
	rows := make([][]string, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, []string{entry.Name, entry.Version, entry.TypeLabel()})
	}
	labels := table.Format(rows, []table.Alignment{table.AlignLeft, table.AlignLeft, table.AlignLeft})
	items := make([]Item, 0, len(entries))
	for i, entry := range entries {
		items = append(items, Item{ID: entry.Name, Label: labels[i], Active: entry.Enabled})
	}
	return items
}

// AddonApplyAction enables the marked add-ons and disables the rest. The item
// id carries the marked names joined by newlines.
func AddonApplyAction(ctx Context, item Item) tea.Cmd {
	b, err := ctx.backend()
	if err != nil {
		return failed(err)
	}
	names := splitMarked(item.ID)
	return func() tea.Msg {
		events.Addon.Apply(ctx.Game, names)
		count, err := b.ApplyAddons(names)
		if err != nil {
			return ActionResult{Err: err}
		}
		return ActionResult{Info: i18n.TPlural("addons_applied", count)}
	}
}

func splitMarked(raw string) []string {
	parts := strings.Split(raw, "\n")
	names := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			names = append(names, trimmed)
		}
	}
	return names
}

// AddonEntriesFromSnapshot converts the active game's patches into entries.
func AddonEntriesFromSnapshot(snap control.SettingSnapshot) []AddonEntry {
	entries := make([]AddonEntry, 0, len(snap.Addons))
	for _, p := range snap.Addons {
		entries = append(entries, AddonEntry{
			Name:    p.Name,
			Version: p.Version,
			Type:    p.Type,
			Enabled: p.Enabled,
		})
	}
	return entries
}
