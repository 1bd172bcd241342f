package ui

import (
	"fmt"

	"github.com/atomicstack/emu-settings-control/internal/menu"
	tea "github.com/charmbracelet/bubbletea"
)

type promptResult struct {
	Cmd  tea.Cmd
	Info string
	Err  error
}

// withPrompt resets the pending state left by the action that raised the
// prompt and then runs action.
func (m *Model) withPrompt(action func() promptResult) tea.Cmd {
	m.loading = false
	m.pendingID = ""
	m.pendingLabel = ""
	m.forceClearInfo()
	m.errMsg = ""
	if action == nil {
		return nil
	}
	result := action()
	if result.Err != nil {
		m.errMsg = result.Err.Error()
		return nil
	}
	if result.Info != "" {
		m.setInfo(result.Info)
	}
	return result.Cmd
}

func (m *Model) handleValuePromptMsg(msg tea.Msg) tea.Cmd {
	prompt, ok := msg.(menu.ValuePrompt)
	if !ok {
		return nil
	}
	return m.withPrompt(func() promptResult {
		return promptResult{Cmd: m.startValueForm(prompt)}
	})
}

func (m *Model) handleOptionPromptMsg(msg tea.Msg) tea.Cmd {
	prompt, ok := msg.(menu.OptionPrompt)
	if !ok {
		return nil
	}
	return m.withPrompt(func() promptResult {
		return promptResult{Err: m.startOptionPicker(prompt)}
	})
}

// startOptionPicker pushes a radio level listing the options of the setting
// named by the prompt. The level remembers the key so backend refreshes can
// rebuild it.
func (m *Model) startOptionPicker(prompt menu.OptionPrompt) error {
	entry, ok := menu.FindSetting(m.settings.Entries(), prompt.Key)
	if !ok {
		return fmt.Errorf("unknown setting %q", prompt.Key)
	}
	items := menu.SettingOptionItems(entry)
	title := prompt.Title
	if title == "" {
		title = entry.Title
	}
	node, _ := m.registry.Find("settings:option")
	lvl := newLevel("settings:option", title, items, node)
	lvl.Data = prompt.Key
	m.applyNodeSettings(lvl)
	if parent := m.currentLevel(); parent != nil {
		parent.LastCursor = parent.Cursor
	}
	m.stack = append(m.stack, lvl)
	m.syncViewport(lvl)
	return nil
}
