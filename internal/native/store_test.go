package native

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/atomicstack/emu-settings-control/internal/model"
)

func openTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := OpenStore(dir)
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}
	return store, dir
}

func TestStoreDefaultsForMissingKeys(t *testing.T) {
	store, _ := openTestStore(t)
	store.SetDefault("resolution_setup", int64(2))
	store.SetDefault("use_vsync", true)
	store.SetDefault("driver_path", "")

	if got := store.GetInt("resolution_setup", false); got != 2 {
		t.Fatalf("expected default 2, got %d", got)
	}
	if !store.GetBoolean("use_vsync", false) {
		t.Fatalf("expected default true")
	}
	if got := store.GetString("driver_path", false); got != "" {
		t.Fatalf("expected empty driver path, got %q", got)
	}
	if _, err := store.Lookup("missing", false); err == nil {
		t.Fatalf("expected error for unknown key")
	}
}

func TestStoreTypedRoundTrip(t *testing.T) {
	store, dir := openTestStore(t)
	store.SetByte("volume", 200)
	store.SetShort("offset", -42)
	store.SetInt("renderer_backend", 1)
	store.SetLong("seed", 1<<40)
	store.SetBoolean("use_disk_shader_cache", true)
	store.SetString("driver_path", "/tmp/turnip.zip")
	if err := store.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	reopened, err := OpenStore(dir)
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}
	if got := reopened.GetByte("volume", false); got != 200 {
		t.Fatalf("expected byte 200, got %d", got)
	}
	if got := reopened.GetShort("offset", false); got != -42 {
		t.Fatalf("expected short -42, got %d", got)
	}
	if got := reopened.GetInt("renderer_backend", false); got != 1 {
		t.Fatalf("expected int 1, got %d", got)
	}
	if got := reopened.GetLong("seed", false); got != 1<<40 {
		t.Fatalf("expected long 1<<40, got %d", got)
	}
	if !reopened.GetBoolean("use_disk_shader_cache", false) {
		t.Fatalf("expected boolean true")
	}
	if got := reopened.GetString("driver_path", false); got != "/tmp/turnip.zip" {
		t.Fatalf("unexpected string %q", got)
	}
}

func TestStoreNarrowGettersClamp(t *testing.T) {
	store, _ := openTestStore(t)
	store.SetLong("big", 1<<20)
	if got := store.GetByte("big", false); got != 255 {
		t.Fatalf("expected byte clamp to 255, got %d", got)
	}
	if got := store.GetShort("big", false); got != 32767 {
		t.Fatalf("expected short clamp to 32767, got %d", got)
	}
}

func TestStorePerGameOverrides(t *testing.T) {
	store, _ := openTestStore(t)
	store.SetDefault("driver_path", "")
	store.SetString("driver_path", "/global.zip")

	store.SetPerGame("0100000000010000")
	if !store.IsGlobal("driver_path") {
		t.Fatalf("expected key to resolve globally before override")
	}
	store.SetString("driver_path", "/game.zip")
	if store.IsGlobal("driver_path") {
		t.Fatalf("expected per-game override after set")
	}
	if got := store.GetString("driver_path", false); got != "/game.zip" {
		t.Fatalf("expected per-game value, got %q", got)
	}
	if got := store.GetString("driver_path", true); got != "/global.zip" {
		t.Fatalf("expected global value with needsGlobal, got %q", got)
	}

	store.SetGlobal("driver_path", true)
	if !store.IsGlobal("driver_path") {
		t.Fatalf("expected override dropped")
	}
	if got := store.GetString("driver_path", false); got != "/global.zip" {
		t.Fatalf("expected global value after clearing, got %q", got)
	}

	store.SetGlobal("driver_path", false)
	if store.IsGlobal("driver_path") {
		t.Fatalf("expected override created")
	}
	if got := store.GetString("driver_path", false); got != "/global.zip" {
		t.Fatalf("expected override seeded from global, got %q", got)
	}

	store.SetPerGame("")
	if !store.IsGlobal("driver_path") {
		t.Fatalf("expected global context to report global")
	}
}

func TestStoreSaveIsAtomicAndSkipsClean(t *testing.T) {
	store, dir := openTestStore(t)
	if err := store.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(store.Path()); !os.IsNotExist(err) {
		t.Fatalf("expected clean store not to write a file")
	}
	store.SetBool("first_app_launch", false)
	if !store.Dirty() {
		t.Fatalf("expected dirty store")
	}
	if err := store.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != settingsFileName {
		t.Fatalf("expected only %s, got %v", settingsFileName, entries)
	}
	raw, _ := os.ReadFile(store.Path())
	if !strings.Contains(string(raw), "first_app_launch = false") {
		t.Fatalf("expected preference in file, got:\n%s", raw)
	}
}

func TestStoreReloadRejectsMalformedFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, settingsFileName), []byte("[global\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := OpenStore(dir); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestStorePreferencesFallback(t *testing.T) {
	store, _ := openTestStore(t)
	if !store.Bool("first_app_launch", true) {
		t.Fatalf("expected fallback true")
	}
	store.SetBool("first_app_launch", false)
	if store.Bool("first_app_launch", true) {
		t.Fatalf("expected stored false")
	}
}

func TestStoreAddons(t *testing.T) {
	store, dir := openTestStore(t)
	game := "0100000000010000"
	store.PutAddon(game, model.Patch{Name: "Update", Version: "1.2.0", Type: model.PatchUpdate, Enabled: true})
	store.PutAddon(game, model.Patch{Name: "60fps", Version: "1.0", Type: model.PatchMod})
	store.SetAddonsEnabled(game, []string{"60fps"})
	if err := store.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}
	reopened, err := OpenStore(dir)
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}
	patches := reopened.Addons(game)
	if len(patches) != 2 {
		t.Fatalf("expected 2 patches, got %d", len(patches))
	}
	if patches[0].Enabled || !patches[1].Enabled {
		t.Fatalf("unexpected enabled flags: %+v", patches)
	}
	if patches[1].Type != model.PatchMod {
		t.Fatalf("expected mod type, got %v", patches[1].Type)
	}
}

func TestStoreInputBindingsDecodeUnknownCodes(t *testing.T) {
	dir := t.TempDir()
	content := `[input.player1]
profile = "Pro Controller"

[[input.player1.bindings]]
button = "A"
type = 1
analog = 0

[[input.player1.bindings]]
button = "ZL"
type = 99
analog = 7
`
	if err := os.WriteFile(filepath.Join(dir, settingsFileName), []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	store, err := OpenStore(dir)
	if err != nil {
		t.Fatalf("OpenStore: %v", err)
	}
	if got := store.InputProfile(1); got != "Pro Controller" {
		t.Fatalf("unexpected profile %q", got)
	}
	if got := store.InputProfile(2); got != "" {
		t.Fatalf("expected empty profile for player 2, got %q", got)
	}
	bindings := store.InputBindings(1)
	if len(bindings) != 2 {
		t.Fatalf("expected 2 bindings, got %d", len(bindings))
	}
	if bindings[0].Type != model.InputButton {
		t.Fatalf("expected button type, got %v", bindings[0].Type)
	}
	if bindings[1].Type != model.InputNone || bindings[1].Analog != model.AnalogLStick {
		t.Fatalf("expected defaults for unknown codes, got %+v", bindings[1])
	}
}
