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
	"github.com/atomicstack/emu-settings-control/internal/settings"
)

// SettingEntry represents a setting and its resolved values for menu loaders.
type SettingEntry struct {
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

// DisplayValue is Value with a placeholder for empty text.
func (e SettingEntry) DisplayValue() string {
	if strings.TrimSpace(e.Value) == "" {
		return i18n.T("not_set")
	}
	return e.Value
}

// Scope names where the value comes from, or "" without a game context.
func (e SettingEntry) Scope(game string) string {
	if game == "" {
		return ""
	}
	if e.Global {
		return i18n.T("scope_global")
	}
	return i18n.T("scope_per_game")
}

func loadSettingsMenu(ctx Context) ([]Item, error) {
	return SettingItems(ctx), nil
}

// SettingItems renders one row per setting. The driver path is managed from
// the drivers menu and is left out.
func SettingItems(ctx Context) []Item {
	entries := make([]SettingEntry, 0, len(ctx.Settings))
	for _, entry := range ctx.Settings {
		if entry.Key == settings.KeyDriverPath {
			continue
		}
		entries = append(entries, entry)
	}
	if len(entries) == 0 {
		return nil
	}
	rows := make([][]string, 0, len(entries))
	for _, entry := range entries {
		rows = append(rows, []string{entry.Title, entry.DisplayValue(), entry.Scope(ctx.Game)})
	}
	labels := table.FormatColumns(rows, []table.Column{
		{Align: table.AlignLeft, Max: 32},
		{Align: table.AlignRight, Max: 24},
		{Align: table.AlignLeft},
	})
	items := make([]Item, 0, len(entries))
	for i, entry := range entries {
		items = append(items, Item{ID: entry.Key, Label: labels[i]})
	}
	return items
}

// FindSetting returns the entry registered under key.
func FindSetting(entries []SettingEntry, key string) (SettingEntry, bool) {
	for _, entry := range entries {
		if entry.Key == key {
			return entry, true
		}
	}
	return SettingEntry{}, false
}

// SettingOptionItems lists the options of an option-valued setting with the
// current one marked active. Item ids take the form key=value.
func SettingOptionItems(entry SettingEntry) []Item {
	items := make([]Item, 0, len(entry.Options))
	for i, opt := range entry.Options {
		items = append(items, Item{
			ID:     fmt.Sprintf("%s=%d", entry.Key, opt.Value),
			Label:  opt.Label,
			Active: i == entry.OptionActive,
		})
	}
	return items
}

func parseOptionID(id string) (string, int, error) {
	idx := strings.LastIndex(id, "=")
	if idx <= 0 {
		return "", 0, fmt.Errorf("invalid option %q", id)
	}
	value, err := strconv.Atoi(id[idx+1:])
	if err != nil {
		return "", 0, fmt.Errorf("invalid option %q", id)
	}
	return id[:idx], value, nil
}

// SettingAction toggles booleans, opens the option picker for option-valued
// settings and the text form for everything else.
func SettingAction(ctx Context, item Item) tea.Cmd {
	key := strings.TrimSpace(item.ID)
	entry, ok := FindSetting(ctx.Settings, key)
	if !ok {
		return failed(fmt.Errorf("%w: %s", settings.ErrUnknownSetting, key))
	}
	switch {
	case entry.Kind == settings.KindBoolean:
		return SettingToggleCommand(ctx, entry)
	case len(entry.Options) > 0:
		return func() tea.Msg {
			events.Settings.OptionPrompt(entry.Key, len(entry.Options))
			return OptionPrompt{Context: ctx, Key: entry.Key, Title: entry.Title}
		}
	default:
		initial := entry.Value
		return func() tea.Msg {
			events.Settings.EditPrompt(entry.Key)
			return ValuePrompt{
				Context:     ctx,
				Action:      "settings:edit",
				Target:      entry.Key,
				Title:       fmt.Sprintf("Set %s", entry.Title),
				Initial:     initial,
				Placeholder: entry.Kind.String(),
			}
		}
	}
}

// SettingToggleCommand flips a boolean setting.
func SettingToggleCommand(ctx Context, entry SettingEntry) tea.Cmd {
	b, err := ctx.backend()
	if err != nil {
		return failed(err)
	}
	return func() tea.Msg {
		value, err := b.ToggleSetting(entry.Key)
		if err != nil {
			return ActionResult{Err: err}
		}
		events.Settings.Toggle(entry.Key, value)
		return settingResult("setting_updated", entry.Title, value)
	}
}

func SettingOptionAction(ctx Context, item Item) tea.Cmd {
	b, err := ctx.backend()
	if err != nil {
		return failed(err)
	}
	key, value, err := parseOptionID(item.ID)
	if err != nil {
		return failed(err)
	}
	title := key
	if entry, ok := FindSetting(ctx.Settings, key); ok {
		title = entry.Title
	}
	return func() tea.Msg {
		display, err := b.SelectSettingOption(key, value)
		if err != nil {
			return ActionResult{Err: err}
		}
		events.Settings.Set(key, display, ctx.Game == "")
		res := settingResult("setting_updated", title, display)
		res.Back = true
		return res
	}
}

// SettingEditCommand stores free text for the setting under key.
func SettingEditCommand(ctx Context, key, value string) tea.Cmd {
	b, err := ctx.backend()
	if err != nil {
		return failed(err)
	}
	title := key
	if entry, ok := FindSetting(ctx.Settings, key); ok {
		title = entry.Title
	}
	return func() tea.Msg {
		display, err := b.SetSetting(key, value)
		if err != nil {
			return ActionResult{Err: err}
		}
		events.Settings.Set(key, display, ctx.Game == "")
		return settingResult("setting_updated", title, display)
	}
}

func SettingResetAction(ctx Context, item Item) tea.Cmd {
	b, err := ctx.backend()
	if err != nil {
		return failed(err)
	}
	key := strings.TrimSpace(item.ID)
	entry, ok := FindSetting(ctx.Settings, key)
	if !ok {
		return failed(fmt.Errorf("%w: %s", settings.ErrUnknownSetting, key))
	}
	return func() tea.Msg {
		events.Settings.Reset(key)
		display, err := b.ResetSetting(key)
		if err != nil {
			return ActionResult{Err: err}
		}
		return settingResult("setting_reset", entry.Title, display)
	}
}

func settingResult(id, title, value string) ActionResult {
	if strings.TrimSpace(value) == "" {
		value = i18n.T("not_set")
	}
	return ActionResult{Info: i18n.TData(id, map[string]interface{}{"Title": title, "Value": value})}
}

// SettingEntriesFromSnapshot converts resolved settings into menu entries.
func SettingEntriesFromSnapshot(snap control.SettingSnapshot) []SettingEntry {
	entries := make([]SettingEntry, 0, len(snap.Settings))
	for _, s := range snap.Settings {
		entries = append(entries, SettingEntry{
			Key:          s.Key,
			Title:        s.Title,
			Description:  s.Description,
			Kind:         s.Kind,
			Value:        s.Value,
			GlobalValue:  s.GlobalValue,
			Global:       s.Global,
			Options:      append([]model.Option(nil), s.Options...),
			OptionActive: s.OptionActive,
		})
	}
	return entries
}
