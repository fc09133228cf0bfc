package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRectContains(t *testing.T) {
	r := Rect{X: 1920, Y: 0, Width: 3840, Height: 2160}

	tests := []struct {
		x, y int
		want bool
	}{
		{1920, 0, true},
		{5759, 2159, true},
		{5760, 0, false},
		{1920, 2160, false},
		{1919, 10, false},
		{2000, -1, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, r.Contains(tt.x, tt.y), "(%d,%d)", tt.x, tt.y)
	}
}

func TestRectContains_Empty(t *testing.T) {
	assert.False(t, Rect{}.Contains(0, 0))
}

func TestWindowIDValid(t *testing.T) {
	assert.True(t, WindowID(0).Valid())
	assert.True(t, WindowID(42).Valid())
	assert.False(t, WindowIDNone.Valid())
	assert.False(t, WindowIDCurrent.Valid())
}

func TestEventString(t *testing.T) {
	assert.Equal(t, "startup", Event{Type: EventStartup}.String())
	assert.Equal(t, "window-bounds-changed(window=2)", Event{Type: EventWindowBoundsChanged, WindowID: 2}.String())
	assert.Equal(t, "window-focus-changed(window=-1)", Event{Type: EventWindowFocusChanged, WindowID: WindowIDNone}.String())
	assert.Equal(t, "tab-updated(window=3, tab=9)", Event{Type: EventTabUpdated, WindowID: 3, TabID: 9}.String())
}
