package menu

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/emu-settings-control/internal/logging/events"
)

// ValueForm collects one line of text for a driver install, a setting edit or
// an input profile.
type ValueForm struct {
	input  textinput.Model
	ctx    Context
	err    string
	target string
	action string
	title  string
	help   string
}

func NewValueForm(prompt ValuePrompt) *ValueForm {
	ti := textinput.New()
	ti.Placeholder = prompt.Placeholder
	ti.CharLimit = 256
	ti.Focus()
	if prompt.Initial != "" {
		ti.SetValue(prompt.Initial)
	}
	title := strings.TrimSpace(prompt.Title)
	if title == "" {
		title = prettyLabel(prompt.Action)
	}
	help := "Press Enter to save. Esc to cancel."
	if prompt.Action == "drivers:install" {
		help = "Press Enter to install. Esc to cancel."
	}
	form := &ValueForm{
		input:  ti,
		ctx:    prompt.Context,
		target: strings.TrimSpace(prompt.Target),
		action: prompt.Action,
		title:  title,
		help:   help,
	}
	form.err = form.validate()
	return form
}

func (f *ValueForm) Context() Context  { return f.ctx }
func (f *ValueForm) Value() string     { return strings.TrimSpace(f.input.Value()) }
func (f *ValueForm) InputView() string { return f.input.View() }
func (f *ValueForm) Error() string     { return f.err }
func (f *ValueForm) ActionID() string  { return f.action }
func (f *ValueForm) Target() string    { return f.target }
func (f *ValueForm) Title() string     { return f.title }
func (f *ValueForm) Help() string      { return f.help }

func (f *ValueForm) PendingLabel() string {
	value := f.Value()
	if value == "" {
		return f.action
	}
	if f.target != "" {
		return fmt.Sprintf("%s → %s", f.target, value)
	}
	return value
}

func (f *ValueForm) Update(msg tea.Msg) (tea.Cmd, bool, bool) {
	switch m := msg.(type) {
	case tea.KeyMsg:
		switch m.String() {
		case "ctrl+u":
			if f.input.Value() != "" {
				f.input.SetValue("")
				f.input.CursorStart()
				f.err = f.validate()
			}
			return nil, false, false
		}
		switch m.Type {
		case tea.KeyEsc:
			f.traceCancel(events.ReasonEscape)
			return nil, false, true
		case tea.KeyEnter:
			value := f.Value()
			if value == "" && f.requiresValue() {
				f.traceCancel(events.ReasonEmpty)
				return nil, false, true
			}
			if err := f.validate(); err != "" {
				f.err = err
				return nil, false, false
			}
			f.err = ""
			return ValueCommandForAction(f.action, f.ctx, f.target, value), true, false
		}
	}

	updated, cmd := f.input.Update(msg)
	f.input = updated
	f.err = f.validate()
	return cmd, false, false
}

func (f *ValueForm) requiresValue() bool {
	return f.action != "input:profiles"
}

func (f *ValueForm) validate() string {
	value := f.Value()
	switch f.action {
	case "drivers:install":
		if value == "" {
			return "Package path required"
		}
		lower := strings.ToLower(value)
		if !strings.HasSuffix(lower, ".zip") && !strings.HasSuffix(lower, ".7z") {
			return "Driver packages are .zip or .7z archives"
		}
	case "settings:edit":
		if value == "" {
			return "Value required"
		}
	}
	return ""
}

func (f *ValueForm) traceCancel(reason events.FormReason) {
	switch f.action {
	case "drivers:install":
		events.Driver.CancelInstall(reason)
	case "settings:edit":
		events.Settings.CancelEdit(f.target, reason)
	}
}

// ValueCommandForAction builds the command that applies a submitted value.
func ValueCommandForAction(actionID string, ctx Context, target, value string) tea.Cmd {
	switch actionID {
	case "drivers:install":
		return DriverInstallCommand(ctx, value)
	case "settings:edit":
		return SettingEditCommand(ctx, target, value)
	case "input:profiles":
		return InputProfileCommand(ctx, target, value)
	default:
		return failed(fmt.Errorf("unknown action %s", actionID))
	}
}
