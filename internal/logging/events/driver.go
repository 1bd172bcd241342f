package events

import "github.com/atomicstack/emu-settings-control/internal/logging"

type DriverTracer struct{}

type FormReason string

const (
	ReasonEscape FormReason = "escape"
	ReasonEmpty  FormReason = "empty"
)

var Driver = DriverTracer{}

func (DriverTracer) Select(path, title string) {
	logging.Trace("driver.select", map[string]interface{}{"path": path, "title": title})
}

func (DriverTracer) Remove(path string) {
	logging.Trace("driver.remove", map[string]interface{}{"path": path})
}

func (DriverTracer) InstallPrompt() {
	logging.Trace("driver.install.prompt", nil)
}

func (DriverTracer) Install(src, result string) {
	logging.Trace("driver.install", map[string]interface{}{"source": src, "result": result})
}

func (DriverTracer) CancelInstall(reason FormReason) {
	logging.Trace("driver.install.cancel", map[string]interface{}{"reason": string(reason)})
}

func (DriverTracer) ClearOverride(game string) {
	logging.Trace("driver.clear", map[string]interface{}{"game": game})
}

func (DriverTracer) Reload(count, selected int) {
	logging.Trace("driver.reload", map[string]interface{}{"count": count, "selected": selected})
}
