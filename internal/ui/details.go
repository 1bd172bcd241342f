package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/atomicstack/emu-settings-control/internal/menu"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

const (
	detailsPanelMinWidth = 36
	detailsPanelFraction = 0.45
)

type detailRow struct {
	key   string
	value string
}

// detailsData is what the side panel shows for the entry under the cursor.
type detailsData struct {
	title string
	rows  []detailRow
	body  string
	err   string
}

func detailsLevel(id string) bool {
	switch id {
	case "drivers:select", "settings", "settings:option", "addons", "input:profiles":
		return true
	}
	return false
}

// activeDetails resolves the entry under the cursor against the stores.
// It returns nil when the level has no details or nothing is highlighted.
func (m *Model) activeDetails() *detailsData {
	current := m.currentLevel()
	if current == nil || !detailsLevel(current.ID) {
		return nil
	}
	if current.Cursor < 0 || current.Cursor >= len(current.Items) {
		return nil
	}
	item := current.Items[current.Cursor]
	switch current.ID {
	case "drivers:select":
		entry, ok := menu.FindDriver(m.drivers.Entries(), item.ID)
		if !ok {
			return &detailsData{title: item.ID, err: "driver no longer installed"}
		}
		return driverDetails(entry)
	case "settings":
		entry, ok := menu.FindSetting(m.settings.Entries(), item.ID)
		if !ok {
			return &detailsData{title: item.ID, err: "unknown setting"}
		}
		return settingDetails(entry, m.settings.Game())
	case "settings:option":
		key, _ := current.Data.(string)
		entry, ok := menu.FindSetting(m.settings.Entries(), key)
		if !ok {
			return nil
		}
		d := settingDetails(entry, m.settings.Game())
		d.rows = append(d.rows, detailRow{key: "Highlighted", value: item.Label})
		return d
	case "addons":
		for _, entry := range m.addons.Entries() {
			if entry.Name == item.ID {
				return addonDetails(entry, current.IsSelected(entry.Name))
			}
		}
	case "input:profiles":
		player, err := strconv.Atoi(item.ID)
		if err != nil {
			return nil
		}
		for _, entry := range m.players.Entries() {
			if entry.Player == player {
				return playerDetails(entry)
			}
		}
	}
	return nil
}

func driverDetails(entry menu.DriverEntry) *detailsData {
	rows := []detailRow{
		{key: "Version", value: entry.Version},
		{key: "Vendor", value: entry.Vendor},
		{key: "Author", value: entry.Author},
		{key: "Library", value: entry.Library},
	}
	if !entry.System {
		rows = append(rows, detailRow{key: "Package", value: entry.Path})
	}
	if entry.Active {
		rows = append(rows, detailRow{key: "Status", value: "in use"})
	}
	return &detailsData{title: entry.Title, rows: rows, body: entry.Description}
}

func settingDetails(entry menu.SettingEntry, game string) *detailsData {
	rows := []detailRow{
		{key: "Key", value: entry.Key},
		{key: "Type", value: entry.Kind.String()},
		{key: "Value", value: entry.DisplayValue()},
	}
	if scope := entry.Scope(game); scope != "" {
		rows = append(rows, detailRow{key: "Scope", value: scope})
		if !entry.Global {
			rows = append(rows, detailRow{key: "Global value", value: entry.GlobalValue})
		}
	}
	return &detailsData{title: entry.Title, rows: rows, body: entry.Description}
}

func addonDetails(entry menu.AddonEntry, marked bool) *detailsData {
	state := "disabled"
	if entry.Enabled {
		state = "enabled"
	}
	if marked != entry.Enabled {
		state += " (changes on apply)"
	}
	return &detailsData{title: entry.Name, rows: []detailRow{
		{key: "Version", value: entry.Version},
		{key: "Type", value: entry.TypeLabel()},
		{key: "State", value: state},
	}}
}

func playerDetails(entry menu.PlayerEntry) *detailsData {
	rows := []detailRow{{key: "Profile", value: entry.ProfileLabel()}}
	for _, binding := range entry.Bindings {
		rows = append(rows, detailRow{key: binding.Button, value: binding.Label()})
	}
	return &detailsData{title: fmt.Sprintf("Player %d", entry.Player), rows: rows}
}

// lines flattens the details into display rows with aligned keys.
func (d *detailsData) lines(width int) []string {
	if d == nil {
		return nil
	}
	if d.err != "" {
		return []string{d.err}
	}
	keyWidth := 0
	for _, row := range d.rows {
		if w := lipgloss.Width(row.key); w > keyWidth {
			keyWidth = w
		}
	}
	out := make([]string, 0, len(d.rows)+4)
	for _, row := range d.rows {
		value := row.value
		if strings.TrimSpace(value) == "" {
			value = "-"
		}
		out = append(out, fmt.Sprintf("%-*s  %s", keyWidth, row.key, value))
	}
	if body := strings.TrimSpace(d.body); body != "" {
		out = append(out, "")
		out = append(out, wrapWords(body, width)...)
	}
	return out
}

func wrapWords(text string, width int) []string {
	if width <= 0 {
		return []string{text}
	}
	var lines []string
	line := ""
	for _, word := range strings.Fields(text) {
		switch {
		case line == "":
			line = word
		case lipgloss.Width(line)+1+lipgloss.Width(word) <= width:
			line += " " + word
		default:
			lines = append(lines, line)
			line = word
		}
	}
	if line != "" {
		lines = append(lines, line)
	}
	return lines
}

// hasSideDetails reports whether the current level is drawn with the
// details panel on the right.
func (m *Model) hasSideDetails() bool {
	current := m.currentLevel()
	if current == nil || !detailsLevel(current.ID) {
		return false
	}
	return m.detailsPanelWidth() > 0
}

// detailsPanelWidth returns 0 when the terminal is too narrow to split.
func (m *Model) detailsPanelWidth() int {
	if m.width <= 0 {
		return 0
	}
	w := int(float64(m.width) * detailsPanelFraction)
	if w < detailsPanelMinWidth {
		return 0
	}
	return w
}

func (m *Model) menuColumnWidth() int {
	return m.width - m.detailsPanelWidth()
}

// renderDetailsPanel draws the bordered box with exactly height rows and
// totalWidth columns.
func (m *Model) renderDetailsPanel(details *detailsData, totalWidth, height int) string {
	const (
		tlc = "╭"
		trc = "╮"
		blc = "╰"
		brc = "╯"
		hz  = "─"
		vt  = "│"
	)
	innerW := totalWidth - 2
	innerH := height - 2
	if innerW < 1 {
		innerW = 1
	}
	if innerH < 1 {
		innerH = 1
	}

	title := "Details"
	var content []string
	bodyStyle := styles.DetailsBody
	if details != nil {
		if t := strings.TrimSpace(details.title); t != "" {
			title = t
		}
		content = details.lines(innerW - 1)
		if details.err != "" {
			bodyStyle = styles.DetailsError
		}
	}

	titleSeg := " " + title + " "
	dashes := totalWidth - 4 - lipgloss.Width(titleSeg)
	if dashes < 0 {
		titleSeg = truncate.StringWithTail(titleSeg, uint(totalWidth-4), "…")
		dashes = totalWidth - 4 - lipgloss.Width(titleSeg)
	}
	if dashes < 0 {
		dashes = 0
	}
	border := func(s string) string { return renderWith(styles.DetailsBorder, s) }
	rows := make([]string, 0, height)
	rows = append(rows, border(tlc+hz)+renderWith(styles.DetailsTitle, titleSeg)+border(strings.Repeat(hz, dashes)+hz+trc))
	for i := 0; i < innerH; i++ {
		text := ""
		if i < len(content) {
			text = " " + content[i]
		}
		w := lipgloss.Width(text)
		if w > innerW {
			text = truncate.StringWithTail(text, uint(innerW-1), "…")
			w = lipgloss.Width(text)
		}
		if w < innerW {
			text += strings.Repeat(" ", innerW-w)
		}
		rows = append(rows, border(vt)+renderWith(bodyStyle, text)+border(vt))
	}
	rows = append(rows, border(blc+strings.Repeat(hz, innerW)+brc))
	return strings.Join(rows, "\n")
}
