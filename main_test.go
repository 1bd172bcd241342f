package main

import (
	"testing"
	"time"

	"github.com/atomicstack/emu-settings-control/internal/app"
	"github.com/atomicstack/emu-settings-control/internal/config"
)

func TestCollectTTYDetailsIncludesStandardDescriptors(t *testing.T) {
	info := collectTTYDetails()
	if len(info.Probes) != 3 {
		t.Fatalf("expected 3 probe entries, got %d", len(info.Probes))
	}
	expected := []string{"stdin", "stdout", "stderr"}
	for i, name := range expected {
		if info.Probes[i].Name != name {
			t.Fatalf("expected probe %d name %q, got %q", i, name, info.Probes[i].Name)
		}
	}
}

func TestProbeTTYRejectsInvalidDescriptor(t *testing.T) {
	probe := probeTTY("closed", -1)
	if probe.IsTerminal || probe.Width != 0 || probe.Error != "" {
		t.Fatalf("expected empty probe for invalid fd, got %+v", probe)
	}
}

func TestStartupTracePayloadIncludesFlags(t *testing.T) {
	cfg := config.Config{
		App: app.Config{
			ConfigDir:    "/tmp/emu",
			Game:         "0100F2C0115B6000",
			Width:        80,
			Height:       24,
			ShowFooter:   true,
			Verbose:      true,
			PollInterval: 2 * time.Second,
		},
		Logging: config.Logging{
			FilePath: "trace.log",
			Trace:    true,
		},
		Flags: map[string]string{
			"configDir": "/tmp/emu",
			"game":      "0100F2C0115B6000",
			"width":     "80",
			"height":    "24",
			"footer":    "true",
			"verbose":   "true",
			"poll":      "2s",
		},
		Args: []string{"--config-dir", "/tmp/emu", "--game", "0100F2C0115B6000"},
	}

	payload := startupTracePayload(cfg)

	flagsValue, ok := payload["flags"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected flags map in payload")
	}
	if flagsValue["configDir"] != "/tmp/emu" {
		t.Fatalf("expected configDir flag %q, got %v", "/tmp/emu", flagsValue["configDir"])
	}
	if flagsValue["game"] != "0100F2C0115B6000" {
		t.Fatalf("expected game flag, got %v", flagsValue["game"])
	}
	if flagsValue["width"] != "80" {
		t.Fatalf("expected width 80, got %v", flagsValue["width"])
	}
	if flagsValue["poll"] != "2s" {
		t.Fatalf("expected poll 2s, got %v", flagsValue["poll"])
	}
	if flagsValue["trace"] != true {
		t.Fatalf("expected trace flag true, got %v", flagsValue["trace"])
	}
	if flagsValue["logFile"] != "trace.log" {
		t.Fatalf("expected log file trace.log, got %v", flagsValue["logFile"])
	}

	if _, ok := payload["tty"].(ttyDetails); !ok {
		t.Fatalf("expected tty details in payload")
	}
	if cfgValue, ok := payload["config"].(config.Config); !ok {
		t.Fatalf("expected config in payload")
	} else if cfgValue.App != cfg.App {
		t.Fatalf("expected app config %#v, got %#v", cfg.App, cfgValue.App)
	}
}
