package ui

import (
	"unicode"

	"github.com/atomicstack/emu-settings-control/internal/logging/events"
	uistate "github.com/atomicstack/emu-settings-control/internal/ui/state"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const filterPlaceholder = "(type to filter)"

func (m *Model) updateFilterCursorModel(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.filterCursor, cmd = m.filterCursor.Update(msg)
	return cmd
}

func (m *Model) noteFilterCursorChange(l *level, before int) {
	if l == nil {
		return
	}
	if before != l.FilterCursorPos() {
		m.filterCursorDirty = true
	}
}

type caretMove struct {
	move func(*uistate.Level) bool
	word bool
}

var caretKeys = map[string]caretMove{
	"ctrl+a": {move: (*uistate.Level).MoveFilterCursorStart},
	"home":   {move: (*uistate.Level).MoveFilterCursorStart},
	"ctrl+e": {move: (*uistate.Level).MoveFilterCursorEnd},
	"end":    {move: (*uistate.Level).MoveFilterCursorEnd},
	"left":   {move: (*uistate.Level).MoveFilterCursorRuneBackward},
	"right":  {move: (*uistate.Level).MoveFilterCursorRuneForward},
	"alt+b":  {move: (*uistate.Level).MoveFilterCursorWordBackward, word: true},
	"alt+f":  {move: (*uistate.Level).MoveFilterCursorWordForward, word: true},
}

// handleTextInput applies filter editing keys to the current level and
// reports whether the key was consumed. home and end only move the caret
// while a filter is typed; otherwise they fall through to cursor movement.
func (m *Model) handleTextInput(msg tea.KeyMsg) bool {
	if m.loading {
		return false
	}
	current := m.currentLevel()
	if current == nil {
		return false
	}
	key := msg.String()
	if caret, ok := caretKeys[key]; ok {
		if current.Filter == "" {
			return false
		}
		before := current.FilterCursorPos()
		if !caret.move(current) {
			return key != "home" && key != "end"
		}
		m.noteFilterCursorChange(current, before)
		events.Filter.Caret(current.ID, current.FilterCursor, caret.word)
		return true
	}
	switch key {
	case "ctrl+u":
		if current.Filter == "" {
			return false
		}
		before := current.FilterCursorPos()
		current.SetFilter("", 0)
		m.noteFilterCursorChange(current, before)
		m.clearMessages()
		events.Filter.Edit(current.ID, events.FilterClear, "")
		m.syncViewport(current)
		return true
	case "ctrl+w":
		before := current.FilterCursorPos()
		if !current.DeleteFilterWordBackward() {
			return false
		}
		m.noteFilterCursorChange(current, before)
		m.clearMessages()
		events.Filter.Edit(current.ID, events.FilterWordBackspace, current.Filter)
		m.syncViewport(current)
		return true
	}
	switch msg.Type {
	case tea.KeyBackspace, tea.KeyCtrlH:
		return m.removeFilterRune()
	case tea.KeySpace:
		return m.appendToFilter(" ")
	case tea.KeyRunes:
		if msg.Alt || len(msg.Runes) == 0 {
			return false
		}
		for _, r := range msg.Runes {
			if unicode.IsControl(r) {
				return false
			}
		}
		return m.appendToFilter(string(msg.Runes))
	}
	return false
}

func (m *Model) clearMessages() {
	m.forceClearInfo()
	m.errMsg = ""
}

func (m *Model) appendToFilter(text string) bool {
	if text == "" {
		return false
	}
	current := m.currentLevel()
	if current == nil {
		return false
	}
	before := current.FilterCursorPos()
	if !current.InsertFilterText(text) {
		return false
	}
	m.noteFilterCursorChange(current, before)
	m.clearMessages()
	events.Filter.Edit(current.ID, events.FilterAppend, current.Filter)
	m.syncViewport(current)
	return true
}

func (m *Model) removeFilterRune() bool {
	current := m.currentLevel()
	if current == nil {
		return false
	}
	before := current.FilterCursorPos()
	if !current.DeleteFilterRuneBackward() {
		return false
	}
	m.noteFilterCursorChange(current, before)
	m.clearMessages()
	events.Filter.Edit(current.ID, events.FilterBackspace, current.Filter)
	m.syncViewport(current)
	return true
}

func renderWith(style *lipgloss.Style, value string) string {
	if style == nil || value == "" {
		return value
	}
	return style.Render(value)
}

// filterPrompt renders the filter line with the caret drawn over the rune
// at the filter cursor.
func (m *Model) filterPrompt() string {
	prompt := "» "
	if styles.FilterPrompt != nil {
		prompt = styles.FilterPrompt.Render(prompt)
	}
	current := m.currentLevel()
	if current == nil {
		return prompt
	}
	if styles.Filter != nil {
		m.filterCursor.TextStyle = styles.Filter.Copy()
	} else {
		m.filterCursor.TextStyle = lipgloss.Style{}
	}
	if current.Filter == "" {
		runes := []rune(filterPlaceholder)
		if styles.FilterPlaceholder != nil {
			m.filterCursor.TextStyle = styles.FilterPlaceholder.Copy()
		}
		caret := m.renderFilterCursor(string(runes[0]))
		return prompt + caret + renderWith(styles.FilterPlaceholder, string(runes[1:]))
	}
	runes := []rune(current.Filter)
	pos := current.FilterCursorPos()
	if pos < 0 {
		pos = 0
	}
	if pos > len(runes) {
		pos = len(runes)
	}
	caretRune := " "
	after := ""
	if pos < len(runes) {
		caretRune = string(runes[pos])
		after = renderWith(styles.Filter, string(runes[pos+1:]))
	}
	before := renderWith(styles.Filter, string(runes[:pos]))
	return prompt + before + m.renderFilterCursor(caretRune) + after
}

func (m *Model) renderFilterCursor(char string) string {
	if char == "" {
		char = " "
	}
	m.filterCursor.SetChar(char)
	base := m.filterCursor.TextStyle.Copy().Inline(true)
	if m.filterCursor.Blink {
		return base.Render(char)
	}
	if styles.Cursor != nil {
		return base.Inherit(styles.Cursor.Copy().Inline(true)).Blink(false).Render(char)
	}
	return base.Reverse(true).Render(char)
}
