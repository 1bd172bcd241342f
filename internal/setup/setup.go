// Package setup tracks the one-time welcome step shown on first launch.
package setup

import (
	"fmt"

	"github.com/atomicstack/emu-settings-control/internal/i18n"
	"github.com/atomicstack/emu-settings-control/internal/native"
)

// FirstLaunchKey is the preference cleared once the welcome is confirmed.
const FirstLaunchKey = "first_app_launch"

// Dialog is the localized content of the welcome prompt.
type Dialog struct {
	Title   string
	Message string
	Confirm string
}

// Flow decides whether the welcome prompt is due and records its completion.
type Flow struct {
	prefs    native.Preferences
	finished bool
}

// New returns a flow backed by prefs.
func New(prefs native.Preferences) *Flow {
	return &Flow{prefs: prefs}
}

// Pending reports whether the welcome prompt still has to be shown.
func (f *Flow) Pending() bool {
	if f.finished {
		return false
	}
	return f.prefs.Bool(FirstLaunchKey, true)
}

// Dialog returns the prompt content.
func (f *Flow) Dialog() Dialog {
	return Dialog{
		Title:   i18n.T("first_launch_dialog_title"),
		Message: i18n.T("first_launch_dialog_message"),
		Confirm: i18n.T("first_launch_dialog_ok"),
	}
}

// Confirm marks first launch as done and persists it.
func (f *Flow) Confirm() error {
	f.prefs.SetBool(FirstLaunchKey, false)
	f.finished = true
	if err := f.prefs.Save(); err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}
	return nil
}

// Finished reports whether setup completed during this run or earlier.
func (f *Flow) Finished() bool {
	return !f.Pending()
}
