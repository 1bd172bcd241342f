package ui

import (
	"github.com/atomicstack/emu-settings-control/internal/backend"
	"github.com/atomicstack/emu-settings-control/internal/menu"
	tea "github.com/charmbracelet/bubbletea"
)

func waitForBackendEvent(w *backend.Watcher) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-w.Events()
		if !ok {
			return backendDoneMsg{}
		}
		return backendEventMsg{event: evt}
	}
}

type backendEventMsg struct {
	event backend.Event
}

type backendDoneMsg struct{}

// refreshMsg carries snapshots fetched right after a mutation so the menus
// do not wait for the next poll.
type refreshMsg struct {
	events []backend.Event
}

func (m *Model) handleBackendEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(backendEventMsg)
	if !ok {
		return nil
	}
	m.applyBackendEvent(eventMsg.event)
	if m.backend != nil {
		return waitForBackendEvent(m.backend)
	}
	return nil
}

func (m *Model) handleBackendDoneMsg(msg tea.Msg) tea.Cmd {
	m.backend = nil
	return nil
}

func (m *Model) handleRefreshMsg(msg tea.Msg) tea.Cmd {
	refresh, ok := msg.(refreshMsg)
	if !ok {
		return nil
	}
	for _, evt := range refresh.events {
		m.applyBackendEvent(evt)
	}
	return nil
}

func fetchSnapshots(src backend.Source) []backend.Event {
	drivers, err := src.FetchDrivers()
	driverEvt := backend.Event{Kind: backend.KindDrivers, Data: drivers, Err: err}
	settings, err := src.FetchSettings()
	settingsEvt := backend.Event{Kind: backend.KindSettings, Data: settings, Err: err}
	return []backend.Event{driverEvt, settingsEvt}
}

func (m *Model) refreshCmd() tea.Cmd {
	if m.ctrl == nil {
		return nil
	}
	src := m.ctrl
	return func() tea.Msg {
		return refreshMsg{events: fetchSnapshots(src)}
	}
}

func (m *Model) applyBackendEvent(evt backend.Event) {
	if m.backendState == nil {
		m.backendState = make(map[backend.Kind]error)
	}
	m.backendState[evt.Kind] = evt.Err
	if evt.Err != nil {
		m.backendLastErr = evt.Err.Error()
		return
	}

	res := m.dispatcher.Handle(evt)
	ctx := m.menuContext()

	if res.DriversUpdated {
		if lvl := m.findLevelByID("drivers"); lvl != nil {
			if node, ok := m.registry.Find("drivers"); ok && node.Loader != nil {
				if items, err := node.Loader(ctx); err == nil {
					lvl.UpdateItems(items)
					m.syncViewport(lvl)
				}
			}
		}
		if lvl := m.findLevelByID("drivers:select"); lvl != nil {
			m.refreshRadioLevel(lvl, menu.DriverItems(ctx.Drivers))
		}
	}

	if res.SettingsUpdated {
		if lvl := m.findLevelByID("settings"); lvl != nil {
			lvl.UpdateItems(menu.SettingItems(ctx))
			m.syncViewport(lvl)
		}
		if lvl := m.findLevelByID("settings:option"); lvl != nil {
			if key, ok := lvl.Data.(string); ok {
				if entry, found := menu.FindSetting(ctx.Settings, key); found {
					m.refreshRadioLevel(lvl, menu.SettingOptionItems(entry))
				}
			}
		}
	}

	if res.AddonsUpdated {
		if lvl := m.findLevelByID("addons"); lvl != nil {
			lvl.UpdateItems(menu.AddonItems(ctx.Addons))
			if !lvl.MarksChanged {
				lvl.MarkActive()
			}
			m.syncViewport(lvl)
		}
	}

	if res.PlayersUpdated {
		if lvl := m.findLevelByID("input:profiles"); lvl != nil {
			lvl.UpdateItems(menu.PlayerProfileItems(ctx.Players))
			m.syncViewport(lvl)
		}
		if lvl := m.findLevelByID("input:bindings"); lvl != nil {
			lvl.UpdateItems(menu.InputBindingItems(ctx.Players))
			m.syncViewport(lvl)
		}
	}

	if warn, _ := m.hasBackendIssue(); !warn {
		m.backendLastErr = ""
	}
}

// refreshRadioLevel replaces the items of a radio level. The cursor follows
// the active entry unless the user has a filter typed.
func (m *Model) refreshRadioLevel(lvl *level, items []menu.Item) {
	lvl.UpdateItems(items)
	if lvl.Filter == "" {
		if idx := lvl.ActiveIndex(); idx >= 0 {
			lvl.Cursor = idx
		}
	}
	m.syncViewport(lvl)
}

func (m *Model) hasBackendIssue() (bool, string) {
	for _, err := range m.backendState {
		if err != nil {
			msg := m.backendLastErr
			if msg == "" {
				msg = err.Error()
			}
			return true, msg
		}
	}
	return false, ""
}
