package platform

import "fmt"

// EventType names a trigger that requires zoom to be re-evaluated.
type EventType string

const (
	EventInstalled           EventType = "installed"
	EventStartup             EventType = "startup"
	EventDisplayChanged      EventType = "display-changed"
	EventWindowBoundsChanged EventType = "window-bounds-changed"
	EventWindowFocusChanged  EventType = "window-focus-changed"
	EventTabUpdated          EventType = "tab-updated"

	// EventResync is raised internally by the periodic resync loop.
	EventResync EventType = "resync"
)

// Event is a single trigger. WindowID and TabID are only meaningful for the
// window and tab event types.
type Event struct {
	Type     EventType `json:"type"`
	WindowID WindowID  `json:"windowId,omitempty"`
	TabID    TabID     `json:"tabId,omitempty"`
}

func (e Event) String() string {
	switch e.Type {
	case EventWindowBoundsChanged, EventWindowFocusChanged:
		return fmt.Sprintf("%s(window=%d)", e.Type, e.WindowID)
	case EventTabUpdated:
		return fmt.Sprintf("%s(window=%d, tab=%d)", e.Type, e.WindowID, e.TabID)
	default:
		return string(e.Type)
	}
}
