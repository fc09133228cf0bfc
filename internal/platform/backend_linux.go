//go:build linux

package platform

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/1broseidon/dpizoom/internal/x11"
)

// LinuxBackend reads the display layout from the X server via RandR. Browser
// window coordinates on X11 are root window pixels, so the two line up.
type LinuxBackend struct {
	conn *x11.Connection
}

var _ DisplaySource = (*LinuxBackend)(nil)

// NewLinuxBackendFromDisplay creates a new Linux backend by opening a fresh X11 connection.
func NewLinuxBackendFromDisplay() (*LinuxBackend, error) {
	conn, err := x11.NewConnection()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X11: %w", err)
	}
	return &LinuxBackend{conn: conn}, nil
}

// Disconnect closes the underlying X11 connection.
func (b *LinuxBackend) Disconnect() {
	if b != nil && b.conn != nil {
		b.conn.Close()
	}
}

// Displays returns all active displays ordered by ID.
func (b *LinuxBackend) Displays(ctx context.Context) ([]Display, error) {
	monitors, err := b.Monitors()
	if err != nil {
		return nil, err
	}

	displays := make([]Display, 0, len(monitors))
	for _, m := range monitors {
		displays = append(displays, DisplayFromMonitor(m))
	}
	return displays, nil
}

// Monitors returns the raw RandR monitors, including physical size.
func (b *LinuxBackend) Monitors() ([]x11.Monitor, error) {
	conn, err := b.connection()
	if err != nil {
		return nil, err
	}
	monitors, err := conn.GetMonitors()
	if err != nil {
		return nil, err
	}
	sort.Slice(monitors, func(i, j int) bool {
		return monitors[i].ID < monitors[j].ID
	})
	return monitors, nil
}

// WatchDisplayChanges sends a display-changed event whenever the RandR
// configuration changes. Blocks until ctx is cancelled or the connection closes.
func (b *LinuxBackend) WatchDisplayChanges(ctx context.Context, out chan<- Event) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	return conn.WatchScreenChanges(ctx, func() {
		select {
		case out <- Event{Type: EventDisplayChanged}:
		case <-ctx.Done():
		}
	})
}

func (b *LinuxBackend) connection() (*x11.Connection, error) {
	if b == nil || b.conn == nil {
		return nil, fmt.Errorf("x11 backend connection is nil")
	}
	return b.conn, nil
}

// DisplayFromMonitor converts a RandR monitor to a display. X11 has no
// separate work area here, so it equals the bounds.
func DisplayFromMonitor(m x11.Monitor) Display {
	bounds := Rect{
		X:      m.X,
		Y:      m.Y,
		Width:  m.Width,
		Height: m.Height,
	}
	return Display{
		ID:       strconv.Itoa(m.ID),
		Name:     m.Name,
		Bounds:   bounds,
		WorkArea: bounds,
	}
}
