package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/randr"
)

// Monitor is an active RandR CRTC in root window coordinates.
type Monitor struct {
	ID       int
	Name     string
	X        int
	Y        int
	Width    int
	Height   int
	WidthMM  int
	HeightMM int
	Primary  bool
}

// GetMonitors retrieves all active monitors using XRandR, in CRTC order.
func (c *Connection) GetMonitors() ([]Monitor, error) {
	conn := c.XUtil.Conn()
	if err := randr.Init(conn); err != nil {
		return nil, fmt.Errorf("randr init failed: %w", err)
	}

	resources, err := randr.GetScreenResources(conn, c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	var primary randr.Output
	if reply, err := randr.GetOutputPrimary(conn, c.Root).Reply(); err == nil {
		primary = reply.Output
	}

	var monitors []Monitor
	for i, crtc := range resources.Crtcs {
		info, err := randr.GetCrtcInfo(conn, crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}
		// Disabled CRTCs report zero size or no outputs.
		if info.Width == 0 || info.Height == 0 || len(info.Outputs) == 0 {
			continue
		}

		mon := Monitor{
			ID:      i,
			Name:    fmt.Sprintf("Monitor%d", i),
			X:       int(info.X),
			Y:       int(info.Y),
			Width:   int(info.Width),
			Height:  int(info.Height),
			Primary: info.Outputs[0] == primary,
		}
		if out, err := randr.GetOutputInfo(conn, info.Outputs[0], resources.ConfigTimestamp).Reply(); err == nil {
			mon.Name = string(out.Name)
			mon.WidthMM = int(out.MmWidth)
			mon.HeightMM = int(out.MmHeight)
		}
		monitors = append(monitors, mon)
	}

	return monitors, nil
}

// DPI returns the horizontal pixel density, or 0 when the output does not
// report a physical size.
func (m Monitor) DPI() float64 {
	if m.WidthMM <= 0 {
		return 0
	}
	return float64(m.Width) / (float64(m.WidthMM) / 25.4)
}
