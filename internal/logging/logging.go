// Package logging appends error lines and JSON trace entries to a single
// log file shared by every package.
package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"go.uber.org/atomic"
)

const defaultLogFile = "emu-settings-control.log"

var (
	tracing = atomic.NewBool(false)

	// mu guards logPath and serialises appends.
	mu      sync.Mutex
	logPath = defaultLogFile
)

// Error appends err to the log file.
func Error(err error) {
	if err == nil {
		return
	}
	appendEntry("logging", func(w io.Writer) error {
		log.New(w, "", log.LstdFlags).Println(err)
		return nil
	})
}

// SetTraceEnabled toggles trace entries.
func SetTraceEnabled(enabled bool) {
	tracing.Store(enabled)
}

// TraceEnabled reports whether trace entries are written.
func TraceEnabled() bool {
	return tracing.Load()
}

type traceEntry struct {
	Time    time.Time   `json:"time"`
	Event   string      `json:"event"`
	Payload interface{} `json:"payload,omitempty"`
}

// Trace appends one JSON line for event when tracing is enabled.
func Trace(event string, payload interface{}) {
	if !tracing.Load() {
		return
	}
	entry := traceEntry{Time: time.Now().UTC(), Event: event, Payload: payload}
	appendEntry("trace logging", func(w io.Writer) error {
		return json.NewEncoder(w).Encode(entry)
	})
}

func appendEntry(what string, write func(io.Writer) error) {
	mu.Lock()
	defer mu.Unlock()
	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s failed: %v\n", what, err)
		return
	}
	defer f.Close()
	if err := write(f); err != nil {
		fmt.Fprintf(os.Stderr, "%s failed: %v\n", what, err)
	}
}

// Configure points the log at path, creating its directory. An empty path
// or an uncreatable directory selects the default file in the working
// directory.
func Configure(path string) {
	mu.Lock()
	defer mu.Unlock()
	logPath = defaultLogFile
	if strings.TrimSpace(path) == "" {
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "unable to create log directory: %v\n", err)
		return
	}
	logPath = path
}

// Path returns the active log file.
func Path() string {
	mu.Lock()
	defer mu.Unlock()
	return logPath
}
