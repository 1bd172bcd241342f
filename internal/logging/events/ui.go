package events

import "github.com/atomicstack/emu-settings-control/internal/logging"

type fields = map[string]interface{}

type UITracer struct{}

type FilterTracer struct{}

type ActionTracer struct{}

type CommandTracer struct{}

var (
	UI      = UITracer{}
	Filter  = FilterTracer{}
	Action  = ActionTracer{}
	Command = CommandTracer{}
)

// FilterEdit names a change to a level's filter query.
type FilterEdit string

const (
	FilterAppend        FilterEdit = "append"
	FilterBackspace     FilterEdit = "backspace"
	FilterWordBackspace FilterEdit = "word-backspace"
	FilterClear         FilterEdit = "clear"
)

func (UITracer) MenuEnter(levelID, itemID, label, filter string) {
	logging.Trace("menu.enter", fields{"level": levelID, "item": itemID, "label": label, "filter": filter})
}

func (UITracer) MenuCursor(levelID string, cursor int) {
	logging.Trace("menu.cursor", fields{"level": levelID, "cursor": cursor})
}

func (ActionTracer) Error(err error) {
	if err != nil {
		logging.Trace("action.error", fields{"error": err.Error()})
	}
}

func (ActionTracer) Success(info string) {
	logging.Trace("action.success", fields{"info": info})
}

// Edit records a change to the query of levelID.
func (FilterTracer) Edit(levelID string, edit FilterEdit, query string) {
	logging.Trace("filter."+string(edit), fields{"level": levelID, "filter": query})
}

// Caret records the filter caret moving to pos, by rune or by word.
func (FilterTracer) Caret(levelID string, pos int, byWord bool) {
	logging.Trace("filter.caret", fields{"level": levelID, "cursor": pos, "word": byWord})
}

func (CommandTracer) Queue(id, label string) {
	commandStage("queue", id, label, "")
}

func (CommandTracer) Skip(id, label string) {
	commandStage("skip", id, label, "")
}

func (CommandTracer) NoOp(id, label string) {
	commandStage("noop", id, label, "")
}

func (CommandTracer) Result(id, label, msgType string) {
	commandStage("result", id, label, msgType)
}

func commandStage(stage, id, label, msgType string) {
	payload := fields{"id": id, "label": label}
	if msgType != "" {
		payload["msg"] = msgType
	}
	logging.Trace("command."+stage, payload)
}
