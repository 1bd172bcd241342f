package menu

import (
	"errors"
	"strings"
	"unicode"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/emu-settings-control/internal/model"
)

// Item represents a selectable menu entry. Active marks the entry that is
// currently in effect (the chosen driver, the current option, an enabled
// add-on).
type Item struct {
	ID     string
	Label  string
	Active bool
}

// Level describes a breadcrumb component for display purposes.
type Level struct {
	ID    string
	Title string
	Items []Item
}

// Context carries runtime data needed by loader functions.
type Context struct {
	Backend   Backend
	Game      string
	Drivers   []DriverEntry
	ShowClear bool
	Settings  []SettingEntry
	Addons    []AddonEntry
	Players   []PlayerEntry
}

// Backend performs the mutations behind menu actions.
type Backend interface {
	SelectDriver(path string) (string, error)
	RemoveDriver(path string) (string, error)
	InstallDriver(src string) (model.InstallResult, string, error)
	ClearDriverOverride() error
	ToggleSetting(key string) (string, error)
	SetSetting(key, value string) (string, error)
	SelectSettingOption(key string, value int) (string, error)
	ResetSetting(key string) (string, error)
	ApplyAddons(names []string) (int, error)
	SetInputProfile(player int, profile string) error
}

var errNoBackend = errors.New("settings backend unavailable")

func (c Context) backend() (Backend, error) {
	if c.Backend == nil {
		return nil, errNoBackend
	}
	return c.Backend, nil
}

// Loader populates submenu entries on demand.
type Loader func(Context) ([]Item, error)

type Action func(Context, Item) tea.Cmd

// ActionResult communicates the outcome of executing a menu action. Back asks
// the UI to leave the current level once the action succeeded.
type ActionResult struct {
	Info string
	Err  error
	Back bool
}

// ValuePrompt requests free text input for an action.
type ValuePrompt struct {
	Context     Context
	Action      string
	Target      string
	Title       string
	Initial     string
	Placeholder string
}

// OptionPrompt requests the option picker for an option-valued setting.
type OptionPrompt struct {
	Context Context
	Key     string
	Title   string
}

// RootItems returns the top-level menu entries.
func RootItems() []Item {
	return []Item{
		{ID: "drivers", Label: "drivers"},
		{ID: "settings", Label: "settings"},
		{ID: "input", Label: "input"},
		{ID: "addons", Label: "addons"},
	}
}

func menuItemsFromIDs(ids []string) []Item {
	items := make([]Item, 0, len(ids))
	for _, id := range ids {
		items = append(items, Item{ID: id, Label: prettyLabel(id)})
	}
	return items
}

func prettyLabel(id string) string {
	if id == "" {
		return id
	}
	parts := strings.FieldsFunc(id, func(r rune) bool {
		return r == '-' || r == '_' || r == ' '
	})
	for i, part := range parts {
		if part == "" {
			continue
		}
		runes := []rune(part)
		for j := 1; j < len(runes); j++ {
			runes[j] = unicode.ToLower(runes[j])
		}
		parts[i] = string(runes)
	}
	return strings.Join(parts, " ")
}

func failed(err error) tea.Cmd {
	return func() tea.Msg { return ActionResult{Err: err} }
}
