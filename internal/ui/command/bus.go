// Package command turns menu actions into Bubble Tea commands.
package command

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/emu-settings-control/internal/logging"
	"github.com/atomicstack/emu-settings-control/internal/logging/events"
	"github.com/atomicstack/emu-settings-control/internal/menu"
)

// Request is one action invocation on a menu entry.
type Request struct {
	ID      string
	Label   string
	Handler menu.Action
	Item    menu.Item
}

// Bus runs menu actions off the update loop.
type Bus struct{}

func New() *Bus {
	return &Bus{}
}

// Execute wraps the request into a command. Failed action results are also
// written to the error log so backend failures survive the status line.
func (b *Bus) Execute(ctx menu.Context, req Request) tea.Cmd {
	events.Command.Queue(req.ID, req.Label)
	return func() tea.Msg {
		if req.Handler == nil {
			events.Command.Skip(req.ID, req.Label)
			return nil
		}
		cmd := req.Handler(ctx, req.Item)
		if cmd == nil {
			events.Command.NoOp(req.ID, req.Label)
			return nil
		}
		msg := cmd()
		events.Command.Result(req.ID, req.Label, fmt.Sprintf("%T", msg))
		if result, ok := msg.(menu.ActionResult); ok && result.Err != nil {
			logging.Error(fmt.Errorf("%s %q: %w", req.ID, req.Label, result.Err))
		}
		return msg
	}
}
