package app

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/emu-settings-control/internal/backend"
	"github.com/atomicstack/emu-settings-control/internal/control"
	"github.com/atomicstack/emu-settings-control/internal/i18n"
	"github.com/atomicstack/emu-settings-control/internal/logging/events"
	"github.com/atomicstack/emu-settings-control/internal/ui"
)

// Config describes user-provided application options.
type Config struct {
	ConfigDir    string
	DriversDir   string
	Game         string
	Width        int
	Height       int
	ShowFooter   bool
	Verbose      bool
	RootMenu     string
	Lang         string
	PollInterval time.Duration
}

// Run bootstraps and executes the Bubble Tea program.
func Run(cfg Config) error {
	if err := i18n.Init(cfg.Lang); err != nil {
		return fmt.Errorf("load messages: %w", err)
	}
	ctrl, err := control.Open(control.Options{
		ConfigDir:  cfg.ConfigDir,
		DriversDir: cfg.DriversDir,
		Game:       cfg.Game,
	})
	if err != nil {
		return fmt.Errorf("open settings: %w", err)
	}
	watcher := backend.NewWatcher(ctrl, cfg.PollInterval)
	defer watcher.Stop()
	model := ui.NewModel(ctrl, cfg.Width, cfg.Height, cfg.ShowFooter, cfg.Verbose, watcher, cfg.RootMenu)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	events.App.Stop(exitReason(err))
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}

func exitReason(err error) string {
	if err == nil {
		return "quit"
	}
	return err.Error()
}
