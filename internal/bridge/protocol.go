// Package bridge talks to the browser extension over native messaging. The
// extension forwards window, tab and display events and executes browser API
// calls on the host's behalf.
package bridge

import (
	"encoding/json"
	"fmt"

	"github.com/1broseidon/dpizoom/internal/platform"
)

// Kind tells the receiver how to interpret a Message.
type Kind string

const (
	KindCall  Kind = "call"  // host -> extension, expects a reply
	KindReply Kind = "reply" // extension -> host
	KindEvent Kind = "event" // extension -> host
	KindError Kind = "error" // host -> extension, fatal error for the console
)

// Method names mirror the extension API they are forwarded to.
type Method string

const (
	MethodDisplays        Method = "system.display.getInfo"
	MethodWindows         Method = "windows.getAll"
	MethodWindow          Method = "windows.get"
	MethodTabs            Method = "tabs.query"
	MethodGetZoom         Method = "tabs.getZoom"
	MethodSetZoom         Method = "tabs.setZoom"
	MethodSetZoomSettings Method = "tabs.setZoomSettings"
)

// Message is the envelope for every frame in either direction.
type Message struct {
	Kind   Kind            `json:"kind"`
	ID     uint64          `json:"id,omitempty"`
	Method Method          `json:"method,omitempty"`
	Params json.RawMessage `json:"params,omitempty"`
	Result json.RawMessage `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
	Event  *platform.Event `json:"event,omitempty"`
}

// RemoteError is an error reported by the extension for a call, typically
// the browser's lastError message.
type RemoteError struct {
	Method  Method
	Message string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s: %s", e.Method, e.Message)
}

type windowParams struct {
	WindowID platform.WindowID `json:"windowId"`
}

type tabParams struct {
	TabID platform.TabID `json:"tabId"`
}

type setZoomParams struct {
	TabID      platform.TabID `json:"tabId"`
	ZoomFactor float64        `json:"zoomFactor"`
}

type zoomSettings struct {
	Scope platform.ZoomScope `json:"scope"`
}

type setZoomSettingsParams struct {
	TabID        platform.TabID `json:"tabId"`
	ZoomSettings zoomSettings   `json:"zoomSettings"`
}

// wireWindow mirrors chrome.windows.Window. left and top are optional there;
// a window without them has no position to match.
type wireWindow struct {
	ID     platform.WindowID `json:"id"`
	Left   *int              `json:"left"`
	Top    *int              `json:"top"`
	Width  int               `json:"width"`
	Height int               `json:"height"`
}

func (w wireWindow) window() (platform.Window, bool) {
	if w.Left == nil || w.Top == nil {
		return platform.Window{}, false
	}
	return platform.Window{
		ID:     w.ID,
		Bounds: platform.Rect{X: *w.Left, Y: *w.Top, Width: w.Width, Height: w.Height},
	}, true
}

type wireTab struct {
	ID       platform.TabID    `json:"id"`
	WindowID platform.WindowID `json:"windowId"`
}
