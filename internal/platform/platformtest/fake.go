// Package platformtest provides an in-memory browser and display source for
// tests. Every call is recorded in order.
package platformtest

import (
	"context"
	"fmt"
	"sync"

	"github.com/1broseidon/dpizoom/internal/platform"
)

// Call records one browser or display API invocation.
type Call struct {
	Method string
	TabID  platform.TabID
	Factor float64
	Scope  platform.ZoomScope
}

// TabState is the zoom state of a fake tab.
type TabState struct {
	WindowID platform.WindowID
	Zoom     float64
	Scope    platform.ZoomScope
}

// Browser is a fake platform.Browser and platform.DisplaySource.
type Browser struct {
	mu sync.Mutex

	DisplayList []platform.Display
	WindowList  []platform.Window
	tabs        map[platform.TabID]*TabState
	order       []platform.TabID

	// GetZoomErr, SetZoomErr and SetScopeErr inject failures per tab.
	GetZoomErr  map[platform.TabID]error
	SetZoomErr  map[platform.TabID]error
	SetScopeErr map[platform.TabID]error
	// DisplaysErr and WindowsErr fail the respective enumeration.
	DisplaysErr error
	WindowsErr  error

	calls []Call
}

var (
	_ platform.Browser       = (*Browser)(nil)
	_ platform.DisplaySource = (*Browser)(nil)
)

// New returns an empty fake.
func New() *Browser {
	return &Browser{
		tabs:        make(map[platform.TabID]*TabState),
		GetZoomErr:  make(map[platform.TabID]error),
		SetZoomErr:  make(map[platform.TabID]error),
		SetScopeErr: make(map[platform.TabID]error),
	}
}

// AddDisplay appends a display with the given bounds.
func (b *Browser) AddDisplay(id string, bounds platform.Rect) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.DisplayList = append(b.DisplayList, platform.Display{ID: id, Bounds: bounds, WorkArea: bounds})
}

// AddWindow appends a window whose top-left corner is (left, top).
func (b *Browser) AddWindow(id platform.WindowID, left, top int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.WindowList = append(b.WindowList, platform.Window{
		ID:     id,
		Bounds: platform.Rect{X: left, Y: top, Width: 800, Height: 600},
	})
}

// AddTab adds a tab to a window with an initial zoom and scope.
func (b *Browser) AddTab(id platform.TabID, windowID platform.WindowID, zoom float64, scope platform.ZoomScope) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.tabs[id] = &TabState{WindowID: windowID, Zoom: zoom, Scope: scope}
	b.order = append(b.order, id)
}

// Tab returns the current state of a tab.
func (b *Browser) Tab(id platform.TabID) (TabState, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	st, ok := b.tabs[id]
	if !ok {
		return TabState{}, false
	}
	return *st, true
}

// Calls returns a copy of the recorded calls.
func (b *Browser) Calls() []Call {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]Call, len(b.calls))
	copy(out, b.calls)
	return out
}

// Writes returns only the zoom and scope writes.
func (b *Browser) Writes() []Call {
	var out []Call
	for _, c := range b.Calls() {
		if c.Method == "SetTabZoom" || c.Method == "SetTabZoomScope" {
			out = append(out, c)
		}
	}
	return out
}

// ResetCalls clears the call log.
func (b *Browser) ResetCalls() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls = nil
}

func (b *Browser) record(c Call) {
	b.calls = append(b.calls, c)
}

func (b *Browser) Displays(ctx context.Context) ([]platform.Display, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record(Call{Method: "Displays"})
	if b.DisplaysErr != nil {
		return nil, b.DisplaysErr
	}
	out := make([]platform.Display, len(b.DisplayList))
	copy(out, b.DisplayList)
	return out, nil
}

func (b *Browser) Windows(ctx context.Context) ([]platform.Window, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record(Call{Method: "Windows"})
	if b.WindowsErr != nil {
		return nil, b.WindowsErr
	}
	out := make([]platform.Window, len(b.WindowList))
	copy(out, b.WindowList)
	return out, nil
}

func (b *Browser) Window(ctx context.Context, id platform.WindowID) (platform.Window, bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record(Call{Method: "Window"})
	for _, w := range b.WindowList {
		if w.ID == id {
			return w, true, nil
		}
	}
	return platform.Window{}, false, nil
}

func (b *Browser) Tabs(ctx context.Context, windowID platform.WindowID) ([]platform.Tab, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record(Call{Method: "Tabs"})
	var out []platform.Tab
	for _, id := range b.order {
		if st := b.tabs[id]; st != nil && st.WindowID == windowID {
			out = append(out, platform.Tab{ID: id, WindowID: windowID})
		}
	}
	return out, nil
}

func (b *Browser) TabZoom(ctx context.Context, tabID platform.TabID) (float64, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record(Call{Method: "TabZoom", TabID: tabID})
	if err := b.GetZoomErr[tabID]; err != nil {
		return 0, err
	}
	st, ok := b.tabs[tabID]
	if !ok {
		return 0, noTab(tabID)
	}
	return st.Zoom, nil
}

func (b *Browser) SetTabZoom(ctx context.Context, tabID platform.TabID, factor float64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record(Call{Method: "SetTabZoom", TabID: tabID, Factor: factor})
	if err := b.SetZoomErr[tabID]; err != nil {
		return err
	}
	st, ok := b.tabs[tabID]
	if !ok {
		return noTab(tabID)
	}
	st.Zoom = factor
	st.Scope = platform.ZoomScopePerOrigin
	return nil
}

func (b *Browser) SetTabZoomScope(ctx context.Context, tabID platform.TabID, scope platform.ZoomScope) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.record(Call{Method: "SetTabZoomScope", TabID: tabID, Scope: scope})
	if err := b.SetScopeErr[tabID]; err != nil {
		return err
	}
	st, ok := b.tabs[tabID]
	if !ok {
		return noTab(tabID)
	}
	st.Scope = scope
	return nil
}

func noTab(id platform.TabID) error {
	return fmt.Errorf("No tab with id: %d.", id)
}
