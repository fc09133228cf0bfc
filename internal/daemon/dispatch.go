package daemon

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/1broseidon/dpizoom/internal/platform"
	"github.com/1broseidon/dpizoom/internal/zoom"
)

// ErrorReporter surfaces fatal errors outside the process, e.g. in the
// extension's console.
type ErrorReporter interface {
	ReportError(ctx context.Context, ev platform.Event, err error) error
}

// Dispatcher maps trigger events to zoom pipeline runs.
type Dispatcher struct {
	mu       sync.RWMutex
	syncer   *zoom.Syncer
	reporter ErrorReporter
	logger   *slog.Logger
	inflight sync.WaitGroup
}

// NewDispatcher creates a dispatcher. reporter may be nil.
func NewDispatcher(syncer *zoom.Syncer, reporter ErrorReporter, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		syncer:   syncer,
		reporter: reporter,
		logger:   logger,
	}
}

// SetSyncer swaps the pipeline, e.g. after a config reload. Handlers already
// running keep the previous one.
func (d *Dispatcher) SetSyncer(s *zoom.Syncer) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.syncer = s
}

func (d *Dispatcher) currentSyncer() *zoom.Syncer {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.syncer
}

// Handle runs the pipeline for a single event. Failures are logged here and
// returned to the caller.
func (d *Dispatcher) Handle(ctx context.Context, ev platform.Event) error {
	logger := d.logger.With("event_id", uuid.NewString(), "event", ev.Type)
	syncer := d.currentSyncer()

	var err error
	switch ev.Type {
	case platform.EventInstalled, platform.EventStartup, platform.EventDisplayChanged, platform.EventResync:
		err = syncer.UpdateAll(ctx)
	case platform.EventWindowBoundsChanged, platform.EventWindowFocusChanged:
		err = syncer.UpdateWindowID(ctx, ev.WindowID)
	case platform.EventTabUpdated:
		err = syncer.UpdateWindowTab(ctx, ev.WindowID, ev.TabID)
	default:
		logger.Warn("ignoring unknown event", "type", string(ev.Type))
		return nil
	}

	if err != nil {
		logger.Error("zoom update failed",
			"window_id", ev.WindowID,
			"tab_id", ev.TabID,
			"error", err)
		return fmt.Errorf("%s: %w", ev, err)
	}
	logger.Debug("zoom update done", "window_id", ev.WindowID, "tab_id", ev.TabID)
	return nil
}

// Run handles events until ctx is cancelled or events is closed. Each event
// runs in its own goroutine; Run waits for all of them before returning.
func (d *Dispatcher) Run(ctx context.Context, events <-chan platform.Event) {
	defer d.inflight.Wait()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			d.inflight.Add(1)
			go func() {
				defer d.inflight.Done()
				d.dispatch(ctx, ev)
			}()
		}
	}
}

func (d *Dispatcher) dispatch(ctx context.Context, ev platform.Event) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("dispatch panic recovered", "event", ev.String(), "panic", r)
			d.report(ctx, ev, fmt.Errorf("panic: %v", r))
		}
	}()

	if err := d.Handle(ctx, ev); err != nil {
		d.report(ctx, ev, err)
	}
}

func (d *Dispatcher) report(ctx context.Context, ev platform.Event, err error) {
	if d.reporter == nil {
		return
	}
	if rerr := d.reporter.ReportError(ctx, ev, err); rerr != nil {
		d.logger.Warn("failed to report error", "error", rerr)
	}
}
