// Package zoom derives a window's zoom factor from the display it occupies
// and reconciles the factor onto the window's tabs.
package zoom

import "github.com/1broseidon/dpizoom/internal/platform"

// FindDisplay returns the first display whose bounds contain (x, y).
// Overlapping displays resolve to whichever comes first in the slice.
func FindDisplay(x, y int, displays []platform.Display) (platform.Display, bool) {
	for i := range displays {
		if displays[i].Bounds.Contains(x, y) {
			return displays[i], true
		}
	}
	return platform.Display{}, false
}
