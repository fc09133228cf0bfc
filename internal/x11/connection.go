package x11

import (
	"context"
	"fmt"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
)

// Connection manages the X11 connection and core X resources
type Connection struct {
	XUtil *xgbutil.XUtil
	Root  xproto.Window
}

// NewConnection establishes a connection to the X11 server named by $DISPLAY.
func NewConnection() (*Connection, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, err
	}

	return &Connection{
		XUtil: xu,
		Root:  xu.RootWin(),
	}, nil
}

// WatchScreenChanges calls notify for every RandR screen or CRTC change until
// ctx is cancelled or the connection is closed. Nothing else may read events
// from this connection while it runs.
func (c *Connection) WatchScreenChanges(ctx context.Context, notify func()) error {
	conn := c.XUtil.Conn()
	if err := randr.Init(conn); err != nil {
		return fmt.Errorf("randr init failed: %w", err)
	}

	mask := uint16(randr.NotifyMaskScreenChange | randr.NotifyMaskCrtcChange)
	if err := randr.SelectInputChecked(conn, c.Root, mask).Check(); err != nil {
		return fmt.Errorf("failed to select randr input: %w", err)
	}

	for {
		ev, xerr := conn.WaitForEvent()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if ev == nil && xerr == nil {
			return nil // connection closed
		}
		if xerr != nil {
			continue
		}

		switch ev.(type) {
		case randr.ScreenChangeNotifyEvent, randr.NotifyEvent:
			notify()
		}
	}
}

// Close cleanly disconnects from the X11 server
func (c *Connection) Close() {
	c.XUtil.Conn().Close()
}
