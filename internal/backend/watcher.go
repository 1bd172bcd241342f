package backend

import (
	"context"
	"sync"
	"time"

	"go.uber.org/atomic"

	"github.com/atomicstack/emu-settings-control/internal/control"
	"github.com/atomicstack/emu-settings-control/internal/logging/events"
)

// Kind represents the type of data emitted by the backend watcher.
type Kind int

const (
	KindDrivers Kind = iota
	KindSettings
)

func (k Kind) String() string {
	switch k {
	case KindDrivers:
		return "drivers"
	case KindSettings:
		return "settings"
	}
	return "unknown"
}

// Event conveys updated data or an error from a backend poll.
type Event struct {
	Kind        Kind
	Fingerprint string
	Data        interface{}
	Err         error
}

// Source is the data the watcher polls.
type Source interface {
	DriversFingerprint() (string, error)
	FetchDrivers() (control.DriverSnapshot, error)
	SettingsFingerprint() (string, error)
	FetchSettings() (control.SettingSnapshot, error)
}

// Watcher polls the settings file and the driver directory at a fixed
// interval and publishes an event whenever either changes.
type Watcher struct {
	source   Source
	interval time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup

	polls   atomic.Int64
	emitted atomic.Int64
}

// NewWatcher creates a backend watcher that polls source every interval.
func NewWatcher(source Source, interval time.Duration) *Watcher {
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		source:   source,
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event, 16),
	}

	w.startDriverPoller()
	w.startSettingsPoller()

	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w
}

// Events returns a channel of backend events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Stop cancels the watcher. Pollers exit after their current fetch completes;
// use Wait if a clean drain is required (e.g. in tests).
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until all poller goroutines have exited and the events channel
// is closed. Call after Stop when a clean shutdown is required.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

// Polls returns how many fingerprint checks ran.
func (w *Watcher) Polls() int64 {
	return w.polls.Load()
}

// Emitted returns how many events were published.
func (w *Watcher) Emitted() int64 {
	return w.emitted.Load()
}

func (w *Watcher) startDriverPoller() {
	throttle := newThrottle(250 * time.Millisecond)
	w.wg.Add(1)
	go w.poll(KindDrivers, w.source.DriversFingerprint, func(ctx context.Context) (interface{}, error) {
		if err := throttle.wait(ctx); err != nil {
			return nil, err
		}
		return w.source.FetchDrivers()
	})
}

func (w *Watcher) startSettingsPoller() {
	throttle := newThrottle(250 * time.Millisecond)
	w.wg.Add(1)
	go w.poll(KindSettings, w.source.SettingsFingerprint, func(ctx context.Context) (interface{}, error) {
		if err := throttle.wait(ctx); err != nil {
			return nil, err
		}
		return w.source.FetchSettings()
	})
}

func (w *Watcher) poll(kind Kind, fingerprint func() (string, error), fetch func(context.Context) (interface{}, error)) {
	defer w.wg.Done()

	var (
		last    string
		primed  bool
		lastErr bool
	)
	emit := func() bool {
		polls := w.polls.Inc()
		fp, err := fingerprint()
		changed := err != nil || !primed || fp != last || lastErr
		events.Backend.Poll(kind.String(), polls, changed)
		if !changed {
			return true
		}
		var data interface{}
		if err == nil {
			data, err = fetch(w.ctx)
		}
		evt := Event{Kind: kind, Fingerprint: fp, Data: data, Err: err}
		select {
		case <-w.ctx.Done():
			return false
		case w.events <- evt:
			w.emitted.Inc()
			primed = true
			last = fp
			lastErr = err != nil
			return true
		}
	}

	if !emit() {
		return
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			if !emit() {
				return
			}
		}
	}
}
