package daemon

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/1broseidon/dpizoom/internal/platform"
	"github.com/1broseidon/dpizoom/internal/platform/platformtest"
	"github.com/1broseidon/dpizoom/internal/zoom"
)

type recordingReporter struct {
	mu     sync.Mutex
	events []platform.Event
	errs   []error
}

func (r *recordingReporter) ReportError(_ context.Context, ev platform.Event, err error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	r.errs = append(r.errs, err)
	return nil
}

func (r *recordingReporter) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.errs)
}

func setup(t *testing.T) (*platformtest.Browser, *Dispatcher, *recordingReporter) {
	t.Helper()
	b := platformtest.New()
	b.AddDisplay("fhd", platform.Rect{X: 0, Y: 0, Width: 1920, Height: 1080})
	b.AddDisplay("4k", platform.Rect{X: 1920, Y: 0, Width: 3840, Height: 2160})
	b.AddWindow(1, 10, 10)
	b.AddWindow(2, 2000, 10)
	b.AddTab(11, 1, 1.5, platform.ZoomScopePerTab)
	b.AddTab(21, 2, 1.0, platform.ZoomScopePerOrigin)
	b.AddTab(22, 2, 1.0, platform.ZoomScopePerOrigin)

	rep := &recordingReporter{}
	syncer := zoom.NewSyncer(b, b, zoom.NewReconciler(b, zoom.DefaultPolicy(), false, nil), nil)
	return b, NewDispatcher(syncer, rep, nil), rep
}

func zoomOf(t *testing.T, b *platformtest.Browser, id platform.TabID) float64 {
	t.Helper()
	st, ok := b.Tab(id)
	require.True(t, ok)
	return st.Zoom
}

func TestHandle_AllWindowEvents(t *testing.T) {
	for _, typ := range []platform.EventType{
		platform.EventInstalled,
		platform.EventStartup,
		platform.EventDisplayChanged,
		platform.EventResync,
	} {
		t.Run(string(typ), func(t *testing.T) {
			b, d, _ := setup(t)
			require.NoError(t, d.Handle(context.Background(), platform.Event{Type: typ}))
			assert.Equal(t, 1.0, zoomOf(t, b, 11))
			assert.Equal(t, 1.5, zoomOf(t, b, 21))
			assert.Equal(t, 1.5, zoomOf(t, b, 22))
		})
	}
}

func TestHandle_SingleWindowEvents(t *testing.T) {
	for _, typ := range []platform.EventType{
		platform.EventWindowBoundsChanged,
		platform.EventWindowFocusChanged,
	} {
		t.Run(string(typ), func(t *testing.T) {
			b, d, _ := setup(t)
			require.NoError(t, d.Handle(context.Background(), platform.Event{Type: typ, WindowID: 2}))
			assert.Equal(t, 1.5, zoomOf(t, b, 11), "other window untouched")
			assert.Equal(t, 1.5, zoomOf(t, b, 21))
			assert.Equal(t, 1.5, zoomOf(t, b, 22))
		})
	}
}

func TestHandle_TabUpdatedWritesOnlyThatTab(t *testing.T) {
	b, d, _ := setup(t)

	ev := platform.Event{Type: platform.EventTabUpdated, WindowID: 2, TabID: 22}
	require.NoError(t, d.Handle(context.Background(), ev))

	assert.Equal(t, 1.0, zoomOf(t, b, 21))
	assert.Equal(t, 1.5, zoomOf(t, b, 22))
}

func TestHandle_DeletedWindowIsNoop(t *testing.T) {
	b, d, _ := setup(t)

	require.NoError(t, d.Handle(context.Background(), platform.Event{Type: platform.EventWindowFocusChanged, WindowID: 42}))
	require.NoError(t, d.Handle(context.Background(), platform.Event{Type: platform.EventWindowFocusChanged, WindowID: platform.WindowIDNone}))
	assert.Empty(t, b.Writes())
}

func TestHandle_UnknownEventIgnored(t *testing.T) {
	b, d, _ := setup(t)
	require.NoError(t, d.Handle(context.Background(), platform.Event{Type: "bogus"}))
	assert.Empty(t, b.Calls())
}

func TestHandle_FatalErrorReturned(t *testing.T) {
	b, d, _ := setup(t)
	boom := errors.New("host exploded")
	b.SetZoomErr[21] = boom

	err := d.Handle(context.Background(), platform.Event{Type: platform.EventWindowBoundsChanged, WindowID: 2})
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "window-bounds-changed(window=2)")
}

func TestRun_ReportsFatalErrorsAndDrains(t *testing.T) {
	b, d, rep := setup(t)
	b.SetScopeErr[22] = errors.New("host exploded")

	events := make(chan platform.Event, 2)
	events <- platform.Event{Type: platform.EventStartup}
	events <- platform.Event{Type: platform.EventTabUpdated, WindowID: 1, TabID: 11}
	close(events)

	done := make(chan struct{})
	go func() {
		d.Run(context.Background(), events)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after events closed")
	}

	assert.Equal(t, 1, rep.count())
	assert.Equal(t, 1.5, zoomOf(t, b, 21))
	assert.Equal(t, 1.0, zoomOf(t, b, 11))
}

func TestSetSyncer_UsesNewPolicy(t *testing.T) {
	b, d, _ := setup(t)
	policy := zoom.Policy{WidthThreshold: 5000, HeightThreshold: 5000, Normal: 1.0, HiDPI: 1.5}
	d.SetSyncer(zoom.NewSyncer(b, b, zoom.NewReconciler(b, policy, false, nil), nil))

	require.NoError(t, d.Handle(context.Background(), platform.Event{Type: platform.EventWindowFocusChanged, WindowID: 2}))
	assert.Equal(t, 1.0, zoomOf(t, b, 21))
	assert.Empty(t, b.Writes())
}

func TestReconciler_ReconcileNow(t *testing.T) {
	b, d, _ := setup(t)
	r := NewReconciler(ReconcilerConfig{}, d)

	r.ReconcileNow(context.Background())
	assert.Equal(t, 1.5, zoomOf(t, b, 22))

	// Disabled interval returns immediately.
	r.Run(context.Background())
}
