package ui

import (
	"archive/zip"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/emu-settings-control/internal/control"
	"github.com/atomicstack/emu-settings-control/internal/settings"
)

func writeDriverPackage(t *testing.T, path, name string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()
	zw := zip.NewWriter(f)
	w, err := zw.Create("meta.json")
	if err != nil {
		t.Fatalf("zip entry: %v", err)
	}
	raw, _ := json.Marshal(map[string]string{"name": name, "driverVersion": "1.0", "vendor": "Mesa"})
	if _, err := w.Write(raw); err != nil {
		t.Fatalf("write meta: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("zip close: %v", err)
	}
}

func openTestController(t *testing.T) *control.Controller {
	t.Helper()
	ctrl, err := control.Open(control.Options{ConfigDir: t.TempDir()})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return ctrl
}

func TestFirstLaunchThenInstallAndSelectDriver(t *testing.T) {
	ctrl := openTestController(t)
	h := NewHarness(NewModel(ctrl, 100, 30, false, false, nil, ""))
	if h.Model().mode != ModeSetup {
		t.Fatalf("expected first launch dialog")
	}
	h.SendKey(tea.KeyEnter)
	if ctrl.SetupPending() {
		t.Fatalf("expected setup to be finished")
	}

	src := filepath.Join(t.TempDir(), "turnip.zip")
	writeDriverPackage(t, src, "Turnip")

	enter(t, h, "drivers")
	enter(t, h, "install")
	h.Type(src)
	h.SendKey(tea.KeyEnter)
	if h.Model().errMsg != "" {
		t.Fatalf("unexpected error %q", h.Model().errMsg)
	}
	if !strings.Contains(h.Model().infoMsg, "Turnip") {
		t.Fatalf("expected install message, got %q", h.Model().infoMsg)
	}

	enter(t, h, "select")
	lvl := h.Model().currentLevel()
	if len(lvl.Items) != 2 {
		t.Fatalf("expected system and installed driver, got %+v", lvl.Items)
	}
	if lvl.Cursor != 1 || !lvl.Items[1].Active {
		t.Fatalf("expected the installed driver to be active, got cursor %d items %+v", lvl.Cursor, lvl.Items)
	}

	h.SendKey(tea.KeyUp)
	h.SendKey(tea.KeyEnter)
	snap, err := ctrl.FetchDrivers()
	if err != nil {
		t.Fatalf("FetchDrivers: %v", err)
	}
	if snap.Selected != 0 {
		t.Fatalf("expected the system driver selected, got %d", snap.Selected)
	}
	if !h.Model().currentLevel().Items[0].Active {
		t.Fatalf("expected the picker to show the system driver active")
	}
}

func TestToggleSettingPersists(t *testing.T) {
	ctrl := openTestController(t)
	if err := ctrl.ConfirmSetup(); err != nil {
		t.Fatalf("ConfirmSetup: %v", err)
	}
	h := NewHarness(NewModel(ctrl, 100, 30, false, false, nil, "settings"))
	if currentID(h) != "settings" {
		t.Fatalf("expected settings as root, got %s", currentID(h))
	}
	enter(t, h, settings.KeyDiskShaderCache)
	snap, err := ctrl.FetchSettings()
	if err != nil {
		t.Fatalf("FetchSettings: %v", err)
	}
	for _, s := range snap.Settings {
		if s.Key == settings.KeyDiskShaderCache && s.Value != "off" {
			t.Fatalf("expected shader cache off, got %q", s.Value)
		}
	}
	view := h.View()
	if !strings.Contains(view, "Use disk shader cache") || !strings.Contains(view, "off") {
		t.Fatalf("expected refreshed value in view, got\n%s", view)
	}
}

func TestAddonsWithoutGameShowError(t *testing.T) {
	ctrl := openTestController(t)
	if err := ctrl.ConfirmSetup(); err != nil {
		t.Fatalf("ConfirmSetup: %v", err)
	}
	h := NewHarness(NewModel(ctrl, 100, 30, false, false, nil, ""))
	enter(t, h, "addons")
	if currentID(h) != "root" {
		t.Fatalf("expected to stay on the main menu, got %s", currentID(h))
	}
	if h.Model().errMsg == "" {
		t.Fatalf("expected an error without a game")
	}
}
