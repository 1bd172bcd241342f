package menu

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/emu-settings-control/internal/control"
	"github.com/atomicstack/emu-settings-control/internal/format/table"
	"github.com/atomicstack/emu-settings-control/internal/i18n"
	"github.com/atomicstack/emu-settings-control/internal/logging/events"
	"github.com/atomicstack/emu-settings-control/internal/model"
)

// PlayerEntry represents one controller slot for menu loaders.
type PlayerEntry struct {
	Player   int
	Profile  string
	Bindings []model.InputBinding
}

// ProfileLabel is the profile name, or "Not set" when none is bound.
func (e PlayerEntry) ProfileLabel() string {
	if strings.TrimSpace(e.Profile) == "" {
		return i18n.T("not_set")
	}
	return e.Profile
}

func loadInputMenu(Context) ([]Item, error) {
	return menuItemsFromIDs([]string{"profiles", "bindings"}), nil
}

func loadInputProfilesMenu(ctx Context) ([]Item, error) {
	return PlayerProfileItems(ctx.Players), nil
}

func loadInputBindingsMenu(ctx Context) ([]Item, error) {
	return InputBindingItems(ctx.Players), nil
}

// PlayerProfileItems renders one row per controller slot.
func PlayerProfileItems(entries []PlayerEntry) []Item {
	if len(entries) == 0 {
		return nil
	}
	rows := make([][]string, 0, len(entries))
	for _, entry := range entries {
		bindings := ""
		if n := len(entry.Bindings); n > 0 {
			bindings = fmt.Sprintf("%d bindings", n)
		}
		rows = append(rows, []string{fmt.Sprintf("Player %d", entry.Player), entry.ProfileLabel(), bindings})
	}
	labels := table.Format(rows, []table.Alignment{table.AlignLeft, table.AlignLeft, table.AlignRight})
	items := make([]Item, 0, len(entries))
	for i, entry := range entries {
		items = append(items, Item{ID: strconv.Itoa(entry.Player), Label: labels[i]})
	}
	return items
}

// InputBindingItems lists every mapped control with its decoded source.
func InputBindingItems(entries []PlayerEntry) []Item {
	rows := [][]string{}
	ids := []string{}
	for _, entry := range entries {
		for _, binding := range entry.Bindings {
			rows = append(rows, []string{
				fmt.Sprintf("P%d", entry.Player),
				binding.Button,
				binding.Label(),
			})
			ids = append(ids, fmt.Sprintf("%d:%s", entry.Player, binding.Button))
		}
	}
	if len(rows) == 0 {
		return nil
	}
	labels := table.Format(rows, []table.Alignment{table.AlignLeft, table.AlignLeft, table.AlignLeft})
	items := make([]Item, 0, len(rows))
	for i := range rows {
		items = append(items, Item{ID: ids[i], Label: labels[i]})
	}
	return items
}

func InputProfileAction(ctx Context, item Item) tea.Cmd {
	player, err := strconv.Atoi(strings.TrimSpace(item.ID))
	if err != nil {
		return failed(fmt.Errorf("invalid player %q", item.ID))
	}
	initial := ""
	for _, entry := range ctx.Players {
		if entry.Player == player {
			initial = entry.Profile
		}
	}
	return func() tea.Msg {
		events.Input.ProfilePrompt(player)
		return ValuePrompt{
			Context:     ctx,
			Action:      "input:profiles",
			Target:      strconv.Itoa(player),
			Title:       fmt.Sprintf("Profile for player %d", player),
			Initial:     initial,
			Placeholder: "profile-name",
		}
	}
}

// InputProfileCommand binds profile to player; an empty profile clears it.
func InputProfileCommand(ctx Context, target, profile string) tea.Cmd {
	b, err := ctx.backend()
	if err != nil {
		return failed(err)
	}
	player, err := strconv.Atoi(strings.TrimSpace(target))
	if err != nil {
		return failed(fmt.Errorf("invalid player %q", target))
	}
	profile = strings.TrimSpace(profile)
	return func() tea.Msg {
		events.Input.SetProfile(player, profile)
		if err := b.SetInputProfile(player, profile); err != nil {
			return ActionResult{Err: err}
		}
		data := map[string]interface{}{"Player": player, "Profile": profile}
		if profile == "" {
			return ActionResult{Info: i18n.TData("profile_cleared", data)}
		}
		return ActionResult{Info: i18n.TData("profile_set", data)}
	}
}

// PlayerEntriesFromSnapshot converts controller slots into menu entries.
func PlayerEntriesFromSnapshot(snap control.SettingSnapshot) []PlayerEntry {
	entries := make([]PlayerEntry, 0, len(snap.Players))
	for _, p := range snap.Players {
		entries = append(entries, PlayerEntry{
			Player:   p.Player,
			Profile:  p.Profile,
			Bindings: append([]model.InputBinding(nil), p.Bindings...),
		})
	}
	return entries
}
