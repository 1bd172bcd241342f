package ui

import (
	"strings"

	"github.com/atomicstack/emu-settings-control/internal/menu"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) handleValueForm(msg tea.Msg) (bool, tea.Cmd) {
	if m.valueForm == nil {
		m.mode = ModeMenu
		return false, nil
	}
	if _, ok := msg.(tea.KeyMsg); !ok {
		// Only keys belong to the form; everything else still reaches the
		// regular handlers.
		cmd, _, _ := m.valueForm.Update(msg)
		return false, cmd
	}
	cmd, done, cancel := m.valueForm.Update(msg)
	if cancel {
		m.valueForm = nil
		m.mode = ModeMenu
		return true, cmd
	}
	if done {
		ctx := m.valueForm.Context()
		value := m.valueForm.Value()
		target := m.valueForm.Target()
		actionID := m.valueForm.ActionID()
		pendingLabel := m.valueForm.PendingLabel()
		m.valueForm = nil
		m.mode = ModeMenu
		m.loading = true
		m.pendingID = actionID
		m.pendingLabel = pendingLabel
		if cmd == nil {
			cmd = menu.ValueCommandForAction(actionID, ctx, target, value)
		}
		return true, cmd
	}
	return true, cmd
}

func (m *Model) startValueForm(prompt menu.ValuePrompt) tea.Cmd {
	m.valueForm = menu.NewValueForm(prompt)
	m.mode = ModeValueForm
	return nil
}

func (m *Model) viewValueFormWithHeader(header string) string {
	lines := []string{}
	if header != "" {
		lines = append(lines, header)
	}
	lines = append(lines, m.valueForm.Title(), "", m.valueForm.InputView())
	if err := m.valueForm.Error(); err != "" {
		lines = append(lines, "", styles.Error.Render(err))
	}
	lines = append(lines, "", m.valueForm.Help())
	return strings.Join(lines, "\n")
}
