package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/1broseidon/dpizoom/internal/bridge"
	"github.com/1broseidon/dpizoom/internal/config"
	"github.com/1broseidon/dpizoom/internal/daemon"
	"github.com/1broseidon/dpizoom/internal/logging"
	"github.com/1broseidon/dpizoom/internal/platform"
	"github.com/1broseidon/dpizoom/internal/zoom"
)

// runHost serves the extension over stdin/stdout until it disconnects.
// Nothing but protocol frames may be written to stdout.
func runHost() int {
	cfgPath := config.DefaultConfigPath()
	res, err := config.LoadFromPath(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		return 1
	}
	cfg := res.Config

	logger, closer, err := logging.New(cfg.Logging, os.Stderr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer closer.Close()
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	client := bridge.NewClient(os.Stdin, os.Stdout, logger.With("component", "bridge"))
	go func() {
		if err := client.Serve(); err != nil {
			logger.Error("bridge failed", "error", err)
		}
	}()

	events := make(chan platform.Event, 64)
	go func() {
		defer cancel()
		for ev := range client.Events() {
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	}()

	var displays platform.DisplaySource = client
	if cfg.Displays.Source == config.DisplaySourceX11 {
		backend, err := platform.NewLinuxBackendFromDisplay()
		if err != nil {
			logger.Warn("x11 display source unavailable, using browser", "error", err)
		} else {
			defer backend.Disconnect()
			displays = backend
			go func() {
				if err := backend.WatchDisplayChanges(ctx, events); err != nil && ctx.Err() == nil {
					logger.Warn("display watcher stopped", "error", err)
				}
			}()
		}
	}

	newSyncer := func(c *config.Config) *zoom.Syncer {
		rec := zoom.NewReconciler(client, c.Policy(), c.Zoom.OverrideCustom, logger)
		return zoom.NewSyncer(displays, client, rec, logger)
	}

	dispatcher := daemon.NewDispatcher(newSyncer(cfg), client, logger)
	reconciler := daemon.NewReconciler(daemon.ReconcilerConfig{
		Interval: cfg.ResyncInterval,
		Logger:   logger,
	}, dispatcher)
	go reconciler.Run(ctx)

	watcher, err := config.NewWatcher(cfgPath, logger, func(c *config.Config) {
		if c.Displays.Source != cfg.Displays.Source {
			logger.Warn("displays.source change applies after the browser restarts the host")
		}
		dispatcher.SetSyncer(newSyncer(c))
		reconciler.ReconcileNow(ctx)
	})
	if err != nil {
		logger.Warn("config watcher unavailable", "error", err)
	} else if err := watcher.Start(); err != nil {
		logger.Debug("config watcher not started", "path", cfgPath, "error", err)
		watcher.Stop()
	} else {
		defer watcher.Stop()
	}

	logger.Info("dpizoom host started",
		"config", cfgPath,
		"displays", cfg.Displays.Source,
		"normal", cfg.Zoom.Normal,
		"hidpi", cfg.Zoom.HiDPI,
	)
	dispatcher.Run(ctx, events)
	logger.Info("dpizoom host stopped")
	return 0
}
