package menu

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/emu-settings-control/internal/control"
	"github.com/atomicstack/emu-settings-control/internal/driver"
	"github.com/atomicstack/emu-settings-control/internal/model"
	"github.com/atomicstack/emu-settings-control/internal/settings"
)

type call struct {
	name string
	args []string
}

type fakeBackend struct {
	calls         []call
	installResult model.InstallResult
	installErr    error
	err           error
}

func (f *fakeBackend) record(name string, args ...string) {
	f.calls = append(f.calls, call{name: name, args: args})
}

func (f *fakeBackend) last() call {
	if len(f.calls) == 0 {
		return call{}
	}
	return f.calls[len(f.calls)-1]
}

func (f *fakeBackend) SelectDriver(path string) (string, error) {
	f.record("select", path)
	if path == "" {
		return "System GPU driver", f.err
	}
	return "Turnip", f.err
}

func (f *fakeBackend) RemoveDriver(path string) (string, error) {
	f.record("remove", path)
	return "Turnip", f.err
}

func (f *fakeBackend) InstallDriver(src string) (model.InstallResult, string, error) {
	f.record("install", src)
	return f.installResult, "Turnip", f.installErr
}

func (f *fakeBackend) ClearDriverOverride() error {
	f.record("clear")
	return f.err
}

func (f *fakeBackend) ToggleSetting(key string) (string, error) {
	f.record("toggle", key)
	return "off", f.err
}

func (f *fakeBackend) SetSetting(key, value string) (string, error) {
	f.record("set", key, value)
	return value, f.err
}

func (f *fakeBackend) SelectSettingOption(key string, value int) (string, error) {
	f.record("option", key, strings.Repeat("*", value))
	return "Vulkan", f.err
}

func (f *fakeBackend) ResetSetting(key string) (string, error) {
	f.record("reset", key)
	return "100", f.err
}

func (f *fakeBackend) ApplyAddons(names []string) (int, error) {
	f.record("addons", names...)
	return len(names), f.err
}

func (f *fakeBackend) SetInputProfile(player int, profile string) error {
	f.record("profile", strings.Repeat("*", player), profile)
	return f.err
}

func run(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	if cmd == nil {
		t.Fatalf("expected command")
	}
	return cmd()
}

func result(t *testing.T, cmd tea.Cmd) ActionResult {
	t.Helper()
	res, ok := run(t, cmd).(ActionResult)
	if !ok {
		t.Fatalf("expected ActionResult")
	}
	return res
}

func testContext(b Backend) Context {
	return Context{
		Backend: b,
		Game:    "0100ABCD",
		Drivers: []DriverEntry{
			{ID: SystemDriverID, Title: "System GPU driver", System: true, Active: true},
			{ID: "/d/turnip.zip", Title: "Turnip", Version: "24.1", Vendor: "Mesa", Path: "/d/turnip.zip"},
		},
		Settings: []SettingEntry{
			{Key: settings.KeyDiskShaderCache, Title: "Use disk shader cache", Kind: settings.KindBoolean, Value: "on", Global: true},
			{Key: settings.KeyRendererBackend, Title: "Renderer backend", Kind: settings.KindInt, Value: "Vulkan",
				Options: []model.Option{{Label: "OpenGL", Value: 0}, {Label: "Vulkan", Value: 1}}, OptionActive: 1},
			{Key: settings.KeyAudioVolume, Title: "Audio volume", Kind: settings.KindByte, Value: "80"},
			{Key: settings.KeyDriverPath, Title: "GPU driver", Kind: settings.KindString},
		},
		Addons: []AddonEntry{
			{Name: "Update", Version: "1.2.0", Type: model.PatchUpdate, Enabled: true},
			{Name: "Expansion", Version: "1.0", Type: model.PatchDLC},
		},
		Players: []PlayerEntry{
			{Player: 1, Profile: "pro", Bindings: []model.InputBinding{{Button: "A", Type: model.InputButton}}},
			{Player: 2},
		},
	}
}

func TestRegistryFlagsAndChildren(t *testing.T) {
	reg := BuildRegistry()
	sel, ok := reg.Find("drivers:select")
	if !ok || !sel.Radio || sel.Loader == nil || sel.Action == nil || sel.Delete == nil {
		t.Fatalf("unexpected drivers:select node %+v", sel)
	}
	addons, ok := reg.Find("addons")
	if !ok || !addons.MultiSelect || !addons.SubmitMarks {
		t.Fatalf("expected multi-select addons node, got %+v", addons)
	}
	if opt, ok := reg.Child("settings", "option"); !ok || !opt.Radio {
		t.Fatalf("expected radio option child under settings")
	}
	if node, ok := reg.Find("settings"); !ok || node.Delete == nil || node.Action == nil {
		t.Fatalf("expected settings node with reset and edit actions")
	}
	for _, id := range []string{"drivers", "settings", "input", "addons"} {
		if _, ok := reg.Child("root", id); !ok {
			t.Fatalf("expected root child %s", id)
		}
	}
}

func TestDriversMenuShowsClearOnlyWithOverride(t *testing.T) {
	items, _ := loadDriversMenu(Context{})
	if len(items) != 2 {
		t.Fatalf("expected select and install, got %+v", items)
	}
	items, _ = loadDriversMenu(Context{ShowClear: true})
	if len(items) != 3 || items[2].ID != "clear" {
		t.Fatalf("expected clear entry, got %+v", items)
	}
}

func TestDriverItemsMarkActive(t *testing.T) {
	items := DriverItems(testContext(nil).Drivers)
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].ID != SystemDriverID || !items[0].Active || items[1].Active {
		t.Fatalf("unexpected active markers %+v", items)
	}
	if !strings.Contains(items[1].Label, "24.1") || !strings.Contains(items[1].Label, "Mesa") {
		t.Fatalf("expected version and vendor in %q", items[1].Label)
	}
}

func TestDriverEntriesFromSnapshot(t *testing.T) {
	snap := control.DriverSnapshot{Drivers: []control.DriverInfo{
		{Title: "System GPU driver", System: true, Active: true},
		{Title: "Turnip", Path: "/d/turnip.zip"},
	}}
	entries := DriverEntriesFromSnapshot(snap)
	if entries[0].ID != SystemDriverID || entries[1].ID != "/d/turnip.zip" {
		t.Fatalf("unexpected ids %+v", entries)
	}
}

func TestDriverSelectActionMapsSystemDriver(t *testing.T) {
	b := &fakeBackend{}
	res := result(t, DriverSelectAction(testContext(b), Item{ID: SystemDriverID}))
	if res.Err != nil {
		t.Fatalf("unexpected error %v", res.Err)
	}
	if got := b.last(); got.name != "select" || got.args[0] != "" {
		t.Fatalf("expected empty path selection, got %+v", got)
	}
	if res.Info != "Using System GPU driver" {
		t.Fatalf("unexpected info %q", res.Info)
	}
}

func TestDriverRemoveActionRejectsSystemDriver(t *testing.T) {
	b := &fakeBackend{}
	res := result(t, DriverRemoveAction(testContext(b), Item{ID: SystemDriverID}))
	if !errors.Is(res.Err, driver.ErrSystemDriver) {
		t.Fatalf("expected ErrSystemDriver, got %v", res.Err)
	}
	if len(b.calls) != 0 {
		t.Fatalf("backend should not be called")
	}
	res = result(t, DriverRemoveAction(testContext(b), Item{ID: "/d/turnip.zip"}))
	if res.Err != nil || res.Info != "Removed Turnip" {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestDriverInstallCommandResults(t *testing.T) {
	b := &fakeBackend{installResult: model.InstallOverwrite}
	res := result(t, DriverInstallCommand(testContext(b), "/tmp/turnip.zip"))
	if res.Err != nil || res.Info != "Replaced existing Turnip" {
		t.Fatalf("unexpected overwrite result %+v", res)
	}
	b = &fakeBackend{installResult: model.InstallFailure, installErr: errors.New("no meta.json")}
	res = result(t, DriverInstallCommand(testContext(b), "/tmp/bad.zip"))
	if res.Err == nil || !strings.Contains(res.Err.Error(), "Could not install") {
		t.Fatalf("expected failure message, got %+v", res)
	}
}

func TestDriverClearActionLeavesLevel(t *testing.T) {
	b := &fakeBackend{}
	res := result(t, DriverClearAction(testContext(b), Item{ID: "clear"}))
	if res.Err != nil || !res.Back {
		t.Fatalf("expected successful back result, got %+v", res)
	}
}

func TestSettingItemsSkipDriverPathAndShowScope(t *testing.T) {
	ctx := testContext(nil)
	items := SettingItems(ctx)
	if len(items) != 3 {
		t.Fatalf("expected 3 settings, got %d", len(items))
	}
	for _, item := range items {
		if item.ID == settings.KeyDriverPath {
			t.Fatalf("driver path should be hidden")
		}
	}
	if !strings.HasSuffix(items[0].Label, "global") {
		t.Fatalf("expected global scope in %q", items[0].Label)
	}
	if !strings.HasSuffix(items[2].Label, "per-game") {
		t.Fatalf("expected per-game scope in %q", items[2].Label)
	}
	ctx.Game = ""
	if strings.Contains(SettingItems(ctx)[0].Label, "global") {
		t.Fatalf("scope should be hidden without a game")
	}
}

func TestSettingActionDispatchesByKind(t *testing.T) {
	b := &fakeBackend{}
	ctx := testContext(b)

	res := result(t, SettingAction(ctx, Item{ID: settings.KeyDiskShaderCache}))
	if res.Err != nil || b.last().name != "toggle" {
		t.Fatalf("expected toggle, got %+v / %+v", res, b.last())
	}

	prompt, ok := run(t, SettingAction(ctx, Item{ID: settings.KeyRendererBackend})).(OptionPrompt)
	if !ok || prompt.Key != settings.KeyRendererBackend {
		t.Fatalf("expected option prompt, got %+v", prompt)
	}

	value, ok := run(t, SettingAction(ctx, Item{ID: settings.KeyAudioVolume})).(ValuePrompt)
	if !ok || value.Action != "settings:edit" || value.Initial != "80" {
		t.Fatalf("expected edit prompt, got %+v", value)
	}

	res = result(t, SettingAction(ctx, Item{ID: "nope"}))
	if !errors.Is(res.Err, settings.ErrUnknownSetting) {
		t.Fatalf("expected ErrUnknownSetting, got %v", res.Err)
	}
}

func TestSettingOptionItemsAndAction(t *testing.T) {
	b := &fakeBackend{}
	ctx := testContext(b)
	entry, _ := FindSetting(ctx.Settings, settings.KeyRendererBackend)
	items := SettingOptionItems(entry)
	if len(items) != 2 || items[0].Active || !items[1].Active {
		t.Fatalf("unexpected option items %+v", items)
	}
	if items[0].ID != settings.KeyRendererBackend+"=0" {
		t.Fatalf("unexpected option id %q", items[0].ID)
	}
	res := result(t, SettingOptionAction(ctx, items[1]))
	if res.Err != nil || !res.Back {
		t.Fatalf("expected back result, got %+v", res)
	}
	if got := b.last(); got.name != "option" || got.args[0] != settings.KeyRendererBackend || got.args[1] != "*" {
		t.Fatalf("unexpected backend call %+v", got)
	}
	if res.Info != "Renderer backend set to Vulkan" {
		t.Fatalf("unexpected info %q", res.Info)
	}
	res = result(t, SettingOptionAction(ctx, Item{ID: "broken"}))
	if res.Err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestSettingResetAction(t *testing.T) {
	b := &fakeBackend{}
	res := result(t, SettingResetAction(testContext(b), Item{ID: settings.KeyAudioVolume}))
	if res.Err != nil || res.Info != "Audio volume reset to 100" {
		t.Fatalf("unexpected reset result %+v", res)
	}
}

func TestInputItems(t *testing.T) {
	ctx := testContext(nil)
	profiles := PlayerProfileItems(ctx.Players)
	if len(profiles) != 2 || profiles[0].ID != "1" {
		t.Fatalf("unexpected profile items %+v", profiles)
	}
	if !strings.Contains(profiles[1].Label, "Not set") {
		t.Fatalf("expected fallback label, got %q", profiles[1].Label)
	}
	bindings := InputBindingItems(ctx.Players)
	if len(bindings) != 1 || bindings[0].ID != "1:A" || !strings.Contains(bindings[0].Label, "Button") {
		t.Fatalf("unexpected binding items %+v", bindings)
	}
}

func TestInputProfileCommandClears(t *testing.T) {
	b := &fakeBackend{}
	res := result(t, InputProfileCommand(testContext(b), "2", "  "))
	if res.Err != nil || res.Info != "Player 2 profile cleared" {
		t.Fatalf("unexpected result %+v", res)
	}
	if got := b.last(); got.args[1] != "" {
		t.Fatalf("expected empty profile, got %+v", got)
	}
	res = result(t, InputProfileCommand(testContext(b), "x", "pro"))
	if res.Err == nil {
		t.Fatalf("expected invalid player error")
	}
}

func TestAddonsRequireGame(t *testing.T) {
	ctx := testContext(nil)
	ctx.Game = ""
	if _, err := loadAddonsMenu(ctx); !errors.Is(err, control.ErrNoGame) {
		t.Fatalf("expected ErrNoGame, got %v", err)
	}
	items, err := loadAddonsMenu(testContext(nil))
	if err != nil || len(items) != 2 || !items[0].Active || items[1].Active {
		t.Fatalf("unexpected addon items %+v (%v)", items, err)
	}
	if !strings.Contains(items[1].Label, "DLC") {
		t.Fatalf("expected localized patch type in %q", items[1].Label)
	}
}

func TestAddonApplyActionAcceptsEmptySet(t *testing.T) {
	b := &fakeBackend{}
	res := result(t, AddonApplyAction(testContext(b), Item{ID: ""}))
	if res.Err != nil || res.Info != "0 add-ons enabled" {
		t.Fatalf("unexpected result %+v", res)
	}
	res = result(t, AddonApplyAction(testContext(b), Item{ID: "Update\nExpansion"}))
	if got := b.last(); len(got.args) != 2 || res.Info != "2 add-ons enabled" {
		t.Fatalf("unexpected apply %+v / %+v", got, res)
	}
}

func TestActionsWithoutBackendFail(t *testing.T) {
	res := result(t, DriverSelectAction(Context{}, Item{ID: SystemDriverID}))
	if res.Err == nil {
		t.Fatalf("expected missing backend error")
	}
}

func TestPrettyLabel(t *testing.T) {
	if got := prettyLabel("select_DRIVER"); got != "select driver" {
		t.Fatalf("unexpected label %q", got)
	}
}
