package mcp

import "github.com/1broseidon/dpizoom/internal/platform"

// ListDisplaysInput is the input for the list_displays tool.
type ListDisplaysInput struct{}

// DisplayInfo describes one display and the zoom its windows get.
type DisplayInfo struct {
	ID     string        `json:"id"`
	Name   string        `json:"name,omitempty"`
	Bounds platform.Rect `json:"bounds"`
	Zoom   float64       `json:"zoom"`
	Tier   string        `json:"tier" jsonschema:"normal or hidpi"`
}

// ListDisplaysOutput is the output for the list_displays tool.
type ListDisplaysOutput struct {
	Displays []DisplayInfo `json:"displays"`
}

// EvaluateZoomInput is the input for the evaluate_zoom tool.
type EvaluateZoomInput struct {
	X int `json:"x" jsonschema:"Left edge of the window in virtual screen pixels"`
	Y int `json:"y" jsonschema:"Top edge of the window in virtual screen pixels"`
}

// EvaluateZoomOutput is the output for the evaluate_zoom tool.
type EvaluateZoomOutput struct {
	Matched bool         `json:"matched"`
	Display *DisplayInfo `json:"display,omitempty"`
	Zoom    float64      `json:"zoom"`
}
