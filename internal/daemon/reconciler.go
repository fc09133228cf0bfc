package daemon

import (
	"context"
	"log/slog"
	"time"

	"github.com/1broseidon/dpizoom/internal/platform"
)

// ReconcilerConfig holds configuration for the periodic resync.
type ReconcilerConfig struct {
	Interval time.Duration
	Logger   *slog.Logger
}

// Reconciler periodically re-runs the pipeline for all windows. Events
// normally keep zoom in sync; this catches triggers the browser never sent.
type Reconciler struct {
	interval   time.Duration
	dispatcher *Dispatcher
	logger     *slog.Logger
}

// NewReconciler creates a reconciler. A non-positive interval disables Run.
func NewReconciler(cfg ReconcilerConfig, dispatcher *Dispatcher) *Reconciler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Reconciler{
		interval:   cfg.Interval,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Run starts the resync loop. Blocks until context is cancelled.
func (r *Reconciler) Run(ctx context.Context) {
	if r.interval <= 0 {
		return
	}

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.Info("reconciler started", "interval", r.interval)

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("reconciler stopped")
			return
		case <-ticker.C:
			r.reconcile(ctx)
		}
	}
}

func (r *Reconciler) reconcile(ctx context.Context) {
	// Recover from panics to prevent crashing the host
	defer func() {
		if err := recover(); err != nil {
			r.logger.Error("reconciler panic recovered", "error", err)
		}
	}()

	ev := platform.Event{Type: platform.EventResync}
	if err := r.dispatcher.Handle(ctx, ev); err != nil {
		r.dispatcher.report(ctx, ev, err)
	}
}

// ReconcileNow triggers an immediate resync pass.
func (r *Reconciler) ReconcileNow(ctx context.Context) {
	r.reconcile(ctx)
}
