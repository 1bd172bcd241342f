package main

import (
	"fmt"
	"os"

	"github.com/atomicstack/emu-settings-control/internal/app"
	"github.com/atomicstack/emu-settings-control/internal/config"
	"github.com/atomicstack/emu-settings-control/internal/logging"
	"github.com/atomicstack/emu-settings-control/internal/logging/events"
)

const (
	exitOK     = 0
	exitFailed = 1
	exitConfig = 2
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg := config.MustLoad()
	if err := config.Validate(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		return exitConfig
	}
	logging.Configure(cfg.Logging.FilePath)
	logging.SetTraceEnabled(cfg.Logging.Trace)
	if logging.TraceEnabled() {
		events.App.Start(startupTracePayload(cfg))
	}

	if err := app.Run(cfg.App); err != nil {
		logging.Error(err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitFailed
	}
	return exitOK
}

// startupTracePayload records how the process was launched: argv, the
// resolved flags, the working directory and what the terminal looks like.
func startupTracePayload(cfg config.Config) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags)+2)
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath

	payload := map[string]interface{}{
		"argv":   cfg.Args,
		"flags":  flags,
		"config": cfg,
		"tty":    collectTTYDetails(),
	}
	addPathOrError(payload, "executable", os.Executable)
	addPathOrError(payload, "cwd", os.Getwd)
	return payload
}

func addPathOrError(payload map[string]interface{}, key string, lookup func() (string, error)) {
	if value, err := lookup(); err == nil {
		payload[key] = value
	} else {
		payload[key+"Error"] = err.Error()
	}
}
