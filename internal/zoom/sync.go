package zoom

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/1broseidon/dpizoom/internal/platform"
)

// Syncer runs the display match -> policy -> reconcile pipeline for windows
// and tabs. It holds no state between calls.
type Syncer struct {
	displays   platform.DisplaySource
	browser    platform.Browser
	reconciler *Reconciler
	logger     *slog.Logger
}

// NewSyncer wires a display source and browser to a reconciler.
func NewSyncer(displays platform.DisplaySource, browser platform.Browser, reconciler *Reconciler, logger *slog.Logger) *Syncer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Syncer{
		displays:   displays,
		browser:    browser,
		reconciler: reconciler,
		logger:     logger,
	}
}

// UpdateAll reconciles every tab of every window against one display snapshot.
func (s *Syncer) UpdateAll(ctx context.Context) error {
	displays, err := s.displays.Displays(ctx)
	if err != nil {
		return fmt.Errorf("get displays: %w", err)
	}
	windows, err := s.browser.Windows(ctx)
	if err != nil {
		return fmt.Errorf("get windows: %w", err)
	}

	var g errgroup.Group
	for _, win := range windows {
		g.Go(func() error {
			return s.updateWindow(ctx, win, displays)
		})
	}
	return g.Wait()
}

// UpdateWindowID reconciles all tabs of one window. Sentinel and vanished
// windows are ignored.
func (s *Syncer) UpdateWindowID(ctx context.Context, windowID platform.WindowID) error {
	if !windowID.Valid() {
		return nil
	}
	win, ok, err := s.browser.Window(ctx, windowID)
	if err != nil {
		return fmt.Errorf("get window %d: %w", windowID, err)
	}
	if !ok {
		s.logger.Debug("window gone, skipping", "window_id", windowID)
		return nil
	}
	return s.updateWindow(ctx, win, nil)
}

// UpdateWindowTab derives the zoom of the tab's window and applies it to that
// tab only.
func (s *Syncer) UpdateWindowTab(ctx context.Context, windowID platform.WindowID, tabID platform.TabID) error {
	if tabID == platform.TabIDNone || !windowID.Valid() {
		return nil
	}
	win, ok, err := s.browser.Window(ctx, windowID)
	if err != nil {
		return fmt.Errorf("get window %d: %w", windowID, err)
	}
	if !ok {
		s.logger.Debug("window gone, skipping", "window_id", windowID, "tab_id", tabID)
		return nil
	}
	target, ok, err := s.WindowZoom(ctx, win, nil)
	if err != nil || !ok {
		return err
	}
	_, err = s.reconciler.ApplyZoom(ctx, tabID, target)
	return err
}

// WindowZoom returns the target factor for win. ok is false when no display
// contains the window's top-left corner. A nil displays slice is fetched
// fresh from the display source.
func (s *Syncer) WindowZoom(ctx context.Context, win platform.Window, displays []platform.Display) (Factor, bool, error) {
	if displays == nil {
		var err error
		displays, err = s.displays.Displays(ctx)
		if err != nil {
			return 0, false, fmt.Errorf("get displays: %w", err)
		}
	}
	display, ok := FindDisplay(win.Bounds.X, win.Bounds.Y, displays)
	if !ok {
		s.logger.Debug("no display contains window",
			"window_id", win.ID,
			"left", win.Bounds.X,
			"top", win.Bounds.Y)
		return 0, false, nil
	}
	return s.reconciler.Policy().ZoomFor(display), true, nil
}

func (s *Syncer) updateWindow(ctx context.Context, win platform.Window, displays []platform.Display) error {
	target, ok, err := s.WindowZoom(ctx, win, displays)
	if err != nil || !ok {
		return err
	}
	tabs, err := s.browser.Tabs(ctx, win.ID)
	if err != nil {
		return fmt.Errorf("get tabs of window %d: %w", win.ID, err)
	}

	var g errgroup.Group
	for _, tab := range tabs {
		g.Go(func() error {
			_, err := s.reconciler.ApplyZoom(ctx, tab.ID, target)
			return err
		})
	}
	return g.Wait()
}
