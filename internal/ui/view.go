package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

const (
	footerText        = "↑/↓ move  enter select  tab mark  del remove/reset  esc back  ctrl+c quit"
	inlineDetailsRows = 8
	bottomBarRows     = 2
)

type styledLine struct {
	text          string
	style         *lipgloss.Style
	prefixStyle   *lipgloss.Style
	highlightFrom int
	raw           bool // text carries ANSI escapes already
}

// View implements tea.Model.
func (m *Model) View() string {
	header := m.menuHeader()
	switch m.mode {
	case ModeSetup:
		return m.viewSetupDialog()
	case ModeValueForm:
		if m.valueForm != nil {
			return m.viewValueFormWithHeader(header)
		}
	}
	if m.hasSideDetails() {
		return m.viewSideBySide(header)
	}
	return m.viewVertical(header)
}

func (m *Model) viewSetupDialog() string {
	d := m.dialog
	button := renderWith(styles.DialogButton, d.Confirm)
	body := strings.Join([]string{
		renderWith(styles.DialogTitle, d.Title),
		"",
		d.Message,
		"",
		button,
	}, "\n")
	if styles.Dialog == nil {
		return body
	}
	style := styles.Dialog.Copy()
	if m.width > 8 {
		style = style.Width(m.width - 4)
	}
	view := style.Render(body)
	if m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, view)
	}
	return view
}

// itemLines renders the visible window of the current level.
func (m *Model) itemLines(width int) []styledLine {
	current := m.currentLevel()
	if current == nil {
		return nil
	}
	m.syncViewport(current)
	if len(current.Items) == 0 {
		msg := "(no entries)"
		if current.Filter != "" {
			msg = fmt.Sprintf("No matches for %q", current.Filter)
		}
		return []styledLine{{text: msg, style: styles.Info}}
	}
	start, end := current.Window(m.maxVisibleItems())
	displayItems := current.Items[start:end]
	lines := make([]styledLine, 0, len(displayItems))
	for i, item := range displayItems {
		lines = append(lines, m.buildItemLine(item.ID, item.Label, item.Active, start+i, current, width))
	}
	return lines
}

func (m *Model) trailerLines() []styledLine {
	lines := []styledLine{}
	if info := m.currentInfo(); info != "" {
		lines = append(lines, styledLine{}, styledLine{text: info, style: styles.Info})
	}
	if m.showFooter {
		lines = append(lines, styledLine{}, styledLine{text: footerText, style: styles.Footer})
	}
	return lines
}

// bottomBar is the status line and the filter prompt, spanning the full
// width. Errors take precedence over backend warnings.
func (m *Model) bottomBar() string {
	var status styledLine
	if m.errMsg != "" {
		status = styledLine{text: fmt.Sprintf("Error: %s", m.errMsg), style: styles.Error}
	} else if warn, msg := m.hasBackendIssue(); warn {
		status = styledLine{text: fmt.Sprintf("Backend: %s", msg), style: styles.Error}
	} else if m.loading && m.pendingLabel != "" {
		status = styledLine{text: fmt.Sprintf("Working on %s…", m.pendingLabel), style: styles.Loading}
	}
	lines := applyWidth([]styledLine{status, {text: m.filterPrompt(), raw: true}}, m.width)
	return renderLines(lines)
}

// viewVertical is the single column layout. Levels with details show them
// below the items when the terminal is too narrow for a side panel.
func (m *Model) viewVertical(header string) string {
	lines := make([]styledLine, 0, 16)
	if header != "" {
		lines = append(lines, styledLine{text: header, style: styles.Header})
	}
	lines = append(lines, m.itemLines(m.width)...)
	if details := m.activeDetails(); details != nil {
		lines = append(lines, styledLine{}, styledLine{text: details.title, style: styles.DetailsTitle})
		bodyStyle := styles.DetailsBody
		if details.err != "" {
			bodyStyle = styles.DetailsError
		}
		for _, line := range inlineDetails(details, m.width) {
			lines = append(lines, styledLine{text: line, style: bodyStyle})
		}
	}
	lines = append(lines, m.trailerLines()...)
	lines = limitHeight(lines, m.height-bottomBarRows, m.width)
	lines = applyWidth(lines, m.width)
	return renderLines(lines) + "\n" + m.bottomBar()
}

func inlineDetails(details *detailsData, width int) []string {
	lines := details.lines(width)
	if len(lines) > inlineDetailsRows {
		lines = lines[:inlineDetailsRows]
	}
	return lines
}

// viewSideBySide renders the menu on the left and the details panel on the
// right, above the full-width bottom bar.
func (m *Model) viewSideBySide(header string) string {
	menuW := m.menuColumnWidth()
	panelW := m.detailsPanelWidth()

	contentLines := make([]styledLine, 0, 16)
	if header != "" {
		contentLines = append(contentLines, styledLine{text: header, style: styles.Header})
	}
	contentLines = append(contentLines, m.itemLines(menuW)...)
	contentLines = append(contentLines, m.trailerLines()...)

	panelH := m.height - bottomBarRows
	if panelH < 3 {
		panelH = 3
	}
	if len(contentLines) > panelH {
		contentLines = contentLines[:panelH]
	}
	for len(contentLines) < panelH {
		contentLines = append(contentLines, styledLine{})
	}
	leftRows := strings.Split(renderLines(applyWidth(contentLines, menuW)), "\n")
	for i, row := range leftRows {
		w := lipgloss.Width(row)
		if w > menuW {
			leftRows[i] = truncate.StringWithTail(row, uint(menuW-1), "…")
		} else if w < menuW {
			leftRows[i] = row + strings.Repeat(" ", menuW-w)
		}
	}
	right := m.renderDetailsPanel(m.activeDetails(), panelW, panelH)
	top := lipgloss.JoinHorizontal(lipgloss.Top, strings.Join(leftRows, "\n"), right)
	return top + "\n" + m.bottomBar()
}

// buildItemLine constructs a single styledLine for a menu item. When width
// is positive the text is padded so the cursor highlight spans the column.
func (m *Model) buildItemLine(id, label string, active bool, idx int, current *level, width int) styledLine {
	indicator := "▌"
	lineStyle := styles.Item
	indicatorStyle := styles.ItemIndicator
	marker := ""
	switch {
	case current.MultiSelect:
		mark := " "
		if current.IsSelected(id) {
			mark = "✓"
		}
		marker = fmt.Sprintf("[%s] ", mark)
	case current.Radio:
		marker = "( ) "
		if active {
			marker = "(•) "
		}
	}
	if idx == current.Cursor {
		indicatorStyle = styles.SelectedItemIndicator
		lineStyle = styles.SelectedItem
	}
	fullText := indicator + " " + marker + label
	if width > 0 {
		if pad := width - len([]rune(fullText)); pad > 0 {
			fullText += strings.Repeat(" ", pad)
		}
	}
	return styledLine{
		text:          fullText,
		style:         lineStyle,
		prefixStyle:   indicatorStyle,
		highlightFrom: 1,
	}
}

func (m *Model) menuHeader() string {
	segments := m.headerSegments()
	if len(segments) == 0 {
		return ""
	}
	return strings.Join(segments, menuHeaderSeparator)
}

func (m *Model) headerSegments() []string {
	depth := len(m.stack)
	if depth == 0 {
		return nil
	}
	root := strings.TrimSpace(m.rootTitle)
	if root == "" {
		root = defaultRootTitle
	}
	if depth == 1 {
		return []string{root}
	}
	segments := make([]string, 0, depth)
	if m.rootMenuID != "" {
		segments = append(segments, root)
	}
	for i := 1; i < depth; i++ {
		if segment := headerSegmentForLevel(m.stack[i]); segment != "" {
			segments = append(segments, segment)
		}
	}
	if len(segments) == 0 {
		return []string{root}
	}
	return segments
}

// headerSegmentForLevel names a level by the last component of its id.
// The option picker is named after the setting it edits.
func headerSegmentForLevel(l *level) string {
	if l == nil {
		return ""
	}
	candidate := strings.TrimSpace(l.ID)
	if candidate == "settings:option" && strings.TrimSpace(l.Title) != "" {
		candidate = l.Title
	}
	if candidate == "" {
		candidate = strings.TrimSpace(l.Title)
	}
	if idx := strings.LastIndex(candidate, ":"); idx >= 0 {
		candidate = candidate[idx+1:]
	}
	fields := strings.Fields(strings.ToLower(headerSegmentCleaner.Replace(candidate)))
	return strings.Join(fields, " ")
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	if current := m.currentLevel(); current != nil {
		m.syncViewport(current)
	}
	return nil
}

func (m *Model) maxVisibleItems() int {
	if m.height <= 0 {
		return -1
	}
	used := bottomBarRows
	if header := m.menuHeader(); header != "" {
		used++
	}
	if info := m.currentInfo(); info != "" {
		used += 2
	}
	if m.showFooter {
		used += 2
	}
	if current := m.currentLevel(); current != nil && detailsLevel(current.ID) && !m.hasSideDetails() {
		used += 2 + inlineDetailsRows
	}
	remain := m.height - used
	if remain < 1 {
		return 1
	}
	return remain
}

func (m *Model) setInfo(message string) {
	m.infoMsg = message
	m.infoExpire = time.Now().Add(5 * time.Second)
}

func (m *Model) clearInfo() {
	if m.infoMsg == "" {
		return
	}
	if !m.infoExpire.IsZero() && time.Now().Before(m.infoExpire) {
		return
	}
	m.forceClearInfo()
}

func (m *Model) forceClearInfo() {
	m.infoMsg = ""
	m.infoExpire = time.Time{}
}

func (m *Model) currentInfo() string {
	if m.infoMsg != "" && !m.infoExpire.IsZero() && time.Now().After(m.infoExpire) {
		m.forceClearInfo()
	}
	return m.infoMsg
}

func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []styledLine{{text: truncateText("…", width)}}
	}
	trimmed := make([]styledLine, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	return append(trimmed, styledLine{text: truncateText("…", width)})
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		if line.raw {
			if lipgloss.Width(line.text) > width {
				line.text = truncate.StringWithTail(line.text, uint(width-1), "…")
			}
		} else {
			line.text = truncateText(line.text, width)
		}
		result[i] = line
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			out[i] = text
			continue
		}
		runes := []rune(text)
		if line.highlightFrom > 0 && line.highlightFrom < len(runes) {
			head := renderWith(line.prefixStyle, string(runes[:line.highlightFrom]))
			tail := renderWith(line.style, string(runes[line.highlightFrom:]))
			text = head + tail
		} else {
			text = renderWith(line.style, text)
		}
		out[i] = text
	}
	return strings.Join(out, "\n")
}

func truncateText(text string, width int) string {
	if width <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	if width == 1 {
		return string(runes[:1])
	}
	return string(runes[:width-1]) + "…"
}
