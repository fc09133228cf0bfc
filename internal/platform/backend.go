package platform

import "context"

// WindowID is a browser window identifier.
type WindowID int

// TabID is a browser tab identifier.
type TabID int

// Sentinel identifiers the browser uses for "no window" and "current window".
const (
	WindowIDNone    WindowID = -1
	WindowIDCurrent WindowID = -2
	TabIDNone       TabID    = -1
)

// Valid reports whether id refers to a concrete window.
func (id WindowID) Valid() bool {
	return id != WindowIDNone && id != WindowIDCurrent
}

// Rect describes a rectangular region in virtual desktop coordinates.
type Rect struct {
	X      int `json:"left"`
	Y      int `json:"top"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Contains reports whether (x, y) lies inside r. The right and bottom edges
// are exclusive.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}

// Display describes a physical display and its usable work area.
type Display struct {
	ID       string `json:"id"`
	Name     string `json:"name,omitempty"`
	Bounds   Rect   `json:"bounds"`
	WorkArea Rect   `json:"workArea"`
}

// Window is a top-level browser window. Only the top-left corner of Bounds is
// used for display matching.
type Window struct {
	ID     WindowID
	Bounds Rect
}

// Tab belongs to exactly one window at a time.
type Tab struct {
	ID       TabID
	WindowID WindowID
}

// ZoomScope controls whether a zoom setting follows the origin or the tab.
type ZoomScope string

const (
	ZoomScopePerOrigin ZoomScope = "per-origin"
	ZoomScopePerTab    ZoomScope = "per-tab"
)

// DisplaySource enumerates the current display layout.
type DisplaySource interface {
	Displays(ctx context.Context) ([]Display, error)
}

// Browser abstracts the browser's window, tab and zoom APIs.
type Browser interface {
	Windows(ctx context.Context) ([]Window, error)
	// Window returns ok=false when the window no longer exists.
	Window(ctx context.Context, id WindowID) (Window, bool, error)
	Tabs(ctx context.Context, windowID WindowID) ([]Tab, error)
	TabZoom(ctx context.Context, tabID TabID) (float64, error)
	// SetTabZoom writes the factor with the browser's default (per-origin) scope.
	SetTabZoom(ctx context.Context, tabID TabID, factor float64) error
	SetTabZoomScope(ctx context.Context, tabID TabID, scope ZoomScope) error
}
