package events

import "github.com/atomicstack/emu-settings-control/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Stop(reason string) {
	logging.Trace("app.stop", map[string]interface{}{"reason": reason})
}

func (AppTracer) Setup(pending bool) {
	logging.Trace("app.setup", map[string]interface{}{"pending": pending})
}

func (AppTracer) SetupConfirmed() {
	logging.Trace("app.setup.confirm", nil)
}
