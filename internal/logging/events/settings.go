package events

import "github.com/atomicstack/emu-settings-control/internal/logging"

type SettingsTracer struct{}

type AddonTracer struct{}

type InputTracer struct{}

type BackendTracer struct{}

var (
	Settings = SettingsTracer{}
	Addon    = AddonTracer{}
	Input    = InputTracer{}
	Backend  = BackendTracer{}
)

func (SettingsTracer) Toggle(key, value string) {
	logging.Trace("settings.toggle", map[string]interface{}{"key": key, "value": value})
}

func (SettingsTracer) OptionPrompt(key string, options int) {
	logging.Trace("settings.option.prompt", map[string]interface{}{"key": key, "options": options})
}

func (SettingsTracer) EditPrompt(key string) {
	logging.Trace("settings.edit.prompt", map[string]interface{}{"key": key})
}

func (SettingsTracer) Set(key, value string, global bool) {
	logging.Trace("settings.set", map[string]interface{}{"key": key, "value": value, "global": global})
}

func (SettingsTracer) CancelEdit(key string, reason FormReason) {
	logging.Trace("settings.edit.cancel", map[string]interface{}{"key": key, "reason": string(reason)})
}

func (SettingsTracer) Reset(key string) {
	logging.Trace("settings.reset", map[string]interface{}{"key": key})
}

func (SettingsTracer) Reload(path string) {
	logging.Trace("settings.reload", map[string]interface{}{"path": path})
}

func (AddonTracer) Apply(game string, enabled []string) {
	logging.Trace("addons.apply", map[string]interface{}{"game": game, "enabled": enabled})
}

func (InputTracer) ProfilePrompt(player int) {
	logging.Trace("input.profile.prompt", map[string]interface{}{"player": player})
}

func (InputTracer) SetProfile(player int, profile string) {
	logging.Trace("input.profile.set", map[string]interface{}{"player": player, "profile": profile})
}

func (BackendTracer) Poll(kind string, polls int64, changed bool) {
	logging.Trace("backend.poll", map[string]interface{}{"kind": kind, "polls": polls, "changed": changed})
}
