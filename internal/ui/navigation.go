package ui

import (
	"fmt"
	"strings"

	"github.com/atomicstack/emu-settings-control/internal/logging"
	"github.com/atomicstack/emu-settings-control/internal/logging/events"
	"github.com/atomicstack/emu-settings-control/internal/menu"
	"github.com/atomicstack/emu-settings-control/internal/ui/command"
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) handleEscapeKey() tea.Cmd {
	if len(m.stack) <= 1 {
		return tea.Quit
	}
	m.popLevel()
	m.clearMessages()
	return nil
}

// popLevel leaves the current level and restores the parent cursor.
func (m *Model) popLevel() {
	if len(m.stack) <= 1 {
		return
	}
	current := m.currentLevel()
	parent := m.stack[len(m.stack)-2]
	m.stack = m.stack[:len(m.stack)-1]
	if parent == nil {
		return
	}
	if parent.LastCursor >= 0 && parent.LastCursor < len(parent.Items) {
		parent.Cursor = parent.LastCursor
	} else if idx := parent.ChildIndex(current.ID); idx >= 0 {
		parent.Cursor = idx
	} else if len(parent.Items) > 0 {
		parent.Cursor = len(parent.Items) - 1
	}
	parent.LastCursor = -1
	m.syncViewport(parent)
}

func (m *Model) beginPending(id, label string) {
	m.loading = true
	m.pendingID = id
	m.pendingLabel = label
	m.clearMessages()
}

func (m *Model) handleEnterKey() tea.Cmd {
	if m.loading {
		return nil
	}
	current := m.currentLevel()
	if current == nil {
		return nil
	}
	node := current.Node
	if node == nil {
		node, _ = m.registry.Find(current.ID)
	}
	if node != nil && node.SubmitMarks {
		return m.submitMarks(current, node)
	}
	if len(current.Items) == 0 {
		return nil
	}
	ctx := m.menuContext()
	item := current.Items[current.Cursor]
	events.UI.MenuEnter(current.ID, item.ID, item.Label, current.Filter)
	beforeCursor := current.FilterCursorPos()
	current.SetFilter("", 0)
	m.noteFilterCursorChange(current, beforeCursor)
	if idx := current.IndexOf(item.ID); idx >= 0 {
		current.Cursor = idx
	}
	if current.MultiSelect {
		if selected := current.SelectedItems(); len(selected) > 0 {
			item = joinItems(selected)
			current.ClearSelection()
		}
	}
	if node != nil {
		if child, ok := node.Children[item.ID]; ok {
			if child.Loader != nil {
				current.LastCursor = current.Cursor
				m.beginPending(child.ID, item.Label)
				return m.loadMenuCmd(child.ID, item.Label, child.Loader)
			}
			if child.Action != nil {
				m.beginPending(child.ID, item.Label)
				return m.bus.Execute(ctx, command.Request{ID: child.ID, Label: item.Label, Handler: child.Action, Item: item})
			}
		}
		if node.Action != nil {
			m.beginPending(node.ID, item.Label)
			return m.bus.Execute(ctx, command.Request{ID: node.ID, Label: item.Label, Handler: node.Action, Item: item})
		}
	}
	m.setInfo(fmt.Sprintf("Selected %s (no action available)", item.Label))
	return nil
}

// submitMarks hands the marked entries of the level to its action. An empty
// set is a valid submission. The filter is cleared first so marks hidden by
// it are kept.
func (m *Model) submitMarks(current *level, node *menu.Node) tea.Cmd {
	if node.Action == nil {
		return nil
	}
	before := current.FilterCursorPos()
	current.SetFilter("", 0)
	m.noteFilterCursorChange(current, before)
	item := joinItems(current.SelectedItems())
	events.UI.MenuEnter(current.ID, item.ID, item.Label, current.Filter)
	current.MarksChanged = false
	m.beginPending(node.ID, item.Label)
	return m.bus.Execute(m.menuContext(), command.Request{ID: node.ID, Label: item.Label, Handler: node.Action, Item: item})
}

func joinItems(items []menu.Item) menu.Item {
	ids := make([]string, 0, len(items))
	labels := make([]string, 0, len(items))
	for _, sel := range items {
		ids = append(ids, sel.ID)
		labels = append(labels, sel.Label)
	}
	return menu.Item{ID: strings.Join(ids, "\n"), Label: strings.Join(labels, ", ")}
}

func (m *Model) handleDeleteKey() tea.Cmd {
	if m.loading {
		return nil
	}
	current := m.currentLevel()
	if current == nil || current.Node == nil || current.Node.Delete == nil {
		return nil
	}
	if len(current.Items) == 0 {
		return nil
	}
	item := current.Items[current.Cursor]
	id := current.Node.ID + ":delete"
	m.beginPending(id, item.Label)
	return m.bus.Execute(m.menuContext(), command.Request{ID: id, Label: item.Label, Handler: current.Node.Delete, Item: item})
}

func (m *Model) moveCursorBy(delta int) {
	current := m.currentLevel()
	if current == nil {
		return
	}
	n := len(current.Items)
	if n == 0 {
		return
	}
	current.Cursor = (current.Cursor + delta + n) % n
	events.UI.MenuCursor(current.ID, current.Cursor)
	m.syncViewport(current)
}

func (m *Model) moveCursorWith(move func(*level) bool) {
	current := m.currentLevel()
	if current == nil {
		return
	}
	if move(current) {
		events.UI.MenuCursor(current.ID, current.Cursor)
	}
	m.syncViewport(current)
}

func (m *Model) syncViewport(l *level) {
	if l == nil {
		return
	}
	l.EnsureCursorVisible(m.maxVisibleItems())
}

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if m.mode != ModeMenu {
		return nil
	}
	if keyMsg.Type == tea.KeyTab {
		if current := m.currentLevel(); current != nil && current.MultiSelect {
			current.ToggleCurrentSelection()
		}
		return nil
	}
	if m.handleTextInput(keyMsg) {
		return nil
	}
	visible := m.maxVisibleItems()
	switch keyMsg.String() {
	case "ctrl+c":
		return tea.Quit
	case "esc":
		return m.handleEscapeKey()
	case "enter":
		return m.handleEnterKey()
	case "delete":
		return m.handleDeleteKey()
	case "up", "ctrl+p":
		m.moveCursorBy(-1)
	case "down", "ctrl+n":
		m.moveCursorBy(1)
	case "pgup":
		m.moveCursorWith(func(l *level) bool { return l.MoveCursorPageUp(visible) })
	case "pgdown":
		m.moveCursorWith(func(l *level) bool { return l.MoveCursorPageDown(visible) })
	case "home":
		m.moveCursorWith((*level).MoveCursorHome)
	case "end":
		m.moveCursorWith((*level).MoveCursorEnd)
	}
	return nil
}

func (m *Model) handleCategoryLoadedMsg(msg tea.Msg) tea.Cmd {
	update, ok := msg.(categoryLoadedMsg)
	if !ok {
		return nil
	}
	if update.id != m.pendingID {
		return nil
	}
	m.loading = false
	m.pendingID = ""
	m.pendingLabel = ""
	if update.err != nil {
		m.errMsg = update.err.Error()
		return nil
	}
	m.errMsg = ""
	node, _ := m.registry.Find(update.id)
	lvl := newLevel(update.id, update.title, update.items, node)
	m.applyNodeSettings(lvl)
	m.syncViewport(lvl)
	m.stack = append(m.stack, lvl)
	if len(lvl.Items) == 0 {
		m.setInfo("No entries found.")
	} else if m.infoMsg != "" {
		m.clearInfo()
	}
	return nil
}

// applyNodeSettings binds the level to its registry node when it was built
// without one.
func (m *Model) applyNodeSettings(l *level) {
	if l == nil {
		return
	}
	if l.Node == nil {
		if node, ok := m.registry.Find(l.ID); ok {
			l.Node = node
		}
	}
	l.Bind(l.Node)
}

func (m *Model) findLevelByID(id string) *level {
	for _, lvl := range m.stack {
		if lvl.ID == id {
			return lvl
		}
	}
	return nil
}

func (m *Model) applyRootMenuOverride(requested string) {
	trimmed := strings.TrimSpace(requested)
	if trimmed == "" {
		m.rootMenuID = ""
		m.rootTitle = defaultRootTitle
		return
	}
	id := strings.ToLower(trimmed)
	node, ok := m.registry.Find(id)
	if !ok || node.Loader == nil {
		m.errMsg = fmt.Sprintf("Unknown root menu %q", trimmed)
		m.rootMenuID = ""
		m.rootTitle = defaultRootTitle
		return
	}

	items, err := node.Loader(m.menuContext())
	if err != nil {
		logging.Error(err)
		m.errMsg = fmt.Sprintf("Failed to load %s menu: %v", id, err)
	}

	title := strings.TrimSpace(headerSegmentCleaner.Replace(node.ID))
	root := newLevel(node.ID, title, items, node)
	m.applyNodeSettings(root)
	m.syncViewport(root)
	m.stack = []*level{root}
	m.rootMenuID = node.ID

	segment := headerSegmentForLevel(root)
	if segment == "" {
		segment = title
	}
	m.rootTitle = segment
}

func (m *Model) currentLevel() *level {
	if len(m.stack) == 0 {
		return nil
	}
	return m.stack[len(m.stack)-1]
}
