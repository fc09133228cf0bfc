package zoom

import (
	"strconv"

	"github.com/1broseidon/dpizoom/internal/platform"
)

// Factor is a page zoom factor, 1.0 being 100%.
type Factor float64

const (
	DefaultNormal    Factor = 1.0
	DefaultHiDPI     Factor = 1.5
	DefaultThreshold        = 2800
)

func (f Factor) String() string {
	return strconv.FormatFloat(float64(f), 'f', -1, 64)
}

// Policy maps a display to one of two zoom tiers.
type Policy struct {
	WidthThreshold  int
	HeightThreshold int
	Normal          Factor
	HiDPI           Factor
}

// DefaultPolicy returns the 2800px / 1.0 / 1.5 policy.
func DefaultPolicy() Policy {
	return Policy{
		WidthThreshold:  DefaultThreshold,
		HeightThreshold: DefaultThreshold,
		Normal:          DefaultNormal,
		HiDPI:           DefaultHiDPI,
	}
}

// ZoomFor returns HiDPI when either dimension of the display strictly
// exceeds its threshold, Normal otherwise.
func (p Policy) ZoomFor(d platform.Display) Factor {
	if d.Bounds.Width > p.WidthThreshold || d.Bounds.Height > p.HeightThreshold {
		return p.HiDPI
	}
	return p.Normal
}

// Known reports whether f is exactly one of the two tiers. Anything else was
// set by the user.
func (p Policy) Known(f Factor) bool {
	return f == p.Normal || f == p.HiDPI
}
