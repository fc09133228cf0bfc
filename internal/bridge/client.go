package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/1broseidon/dpizoom/internal/platform"
)

// ErrClosed is returned by calls made after the extension disconnected.
var ErrClosed = errors.New("bridge: connection closed")

// Client multiplexes concurrent browser API calls over one native messaging
// pipe and delivers the extension's events.
type Client struct {
	codec  *Codec
	logger *slog.Logger
	nextID atomic.Uint64

	mu      sync.Mutex
	pending map[uint64]chan *Message
	closed  bool

	events chan platform.Event
}

var (
	_ platform.Browser       = (*Client)(nil)
	_ platform.DisplaySource = (*Client)(nil)
)

// NewClient creates a client reading frames from r and writing to w.
// Serve must be running for calls to complete.
func NewClient(r io.Reader, w io.Writer, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		codec:   NewCodec(r, w),
		logger:  logger,
		pending: make(map[uint64]chan *Message),
		events:  make(chan platform.Event, 64),
	}
}

// Events returns the stream of extension events. It is closed when Serve
// returns.
func (c *Client) Events() <-chan platform.Event {
	return c.events
}

// Serve reads frames until the pipe closes. A clean disconnect returns nil.
func (c *Client) Serve() error {
	defer c.shutdown()

	for {
		msg, err := c.codec.ReadMessage()
		if err != nil {
			if errors.Is(err, io.EOF) {
				c.logger.Info("extension disconnected")
				return nil
			}
			if errors.Is(err, ErrMalformedMessage) {
				c.logger.Warn("dropping malformed message", "error", err)
				continue
			}
			return err
		}

		switch msg.Kind {
		case KindReply:
			c.deliver(msg)
		case KindEvent:
			if msg.Event == nil {
				c.logger.Warn("event message without event")
				continue
			}
			c.events <- *msg.Event
		default:
			c.logger.Warn("unexpected message from extension", "kind", msg.Kind, "id", msg.ID)
		}
	}
}

func (c *Client) deliver(msg *Message) {
	c.mu.Lock()
	ch, ok := c.pending[msg.ID]
	if ok {
		delete(c.pending, msg.ID)
	}
	c.mu.Unlock()

	if !ok {
		c.logger.Warn("reply for unknown call", "id", msg.ID)
		return
	}
	ch <- msg
}

func (c *Client) shutdown() {
	c.mu.Lock()
	c.closed = true
	for id, ch := range c.pending {
		close(ch)
		delete(c.pending, id)
	}
	c.mu.Unlock()
	close(c.events)
}

func (c *Client) call(ctx context.Context, method Method, params, result any) error {
	var raw json.RawMessage
	if params != nil {
		data, err := json.Marshal(params)
		if err != nil {
			return fmt.Errorf("marshal %s params: %w", method, err)
		}
		raw = data
	}

	id := c.nextID.Add(1)
	ch := make(chan *Message, 1)

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	c.pending[id] = ch
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		delete(c.pending, id)
		c.mu.Unlock()
	}()

	if err := c.codec.WriteMessage(&Message{Kind: KindCall, ID: id, Method: method, Params: raw}); err != nil {
		return fmt.Errorf("send %s: %w", method, err)
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case reply, ok := <-ch:
		if !ok {
			return ErrClosed
		}
		if reply.Error != "" {
			return &RemoteError{Method: method, Message: reply.Error}
		}
		if result != nil && len(reply.Result) > 0 {
			if err := json.Unmarshal(reply.Result, result); err != nil {
				return fmt.Errorf("decode %s result: %w", method, err)
			}
		}
		return nil
	}
}

// Displays returns the browser's view of the display layout.
func (c *Client) Displays(ctx context.Context) ([]platform.Display, error) {
	var displays []platform.Display
	if err := c.call(ctx, MethodDisplays, nil, &displays); err != nil {
		return nil, err
	}
	return displays, nil
}

func (c *Client) Windows(ctx context.Context) ([]platform.Window, error) {
	var wire []wireWindow
	if err := c.call(ctx, MethodWindows, nil, &wire); err != nil {
		return nil, err
	}
	windows := make([]platform.Window, 0, len(wire))
	for _, w := range wire {
		win, ok := w.window()
		if !ok {
			c.logger.Debug("skipping window without position", "window_id", w.ID)
			continue
		}
		windows = append(windows, win)
	}
	return windows, nil
}

// Window treats any extension-side failure, and a window reported without a
// position, as the window being gone.
func (c *Client) Window(ctx context.Context, id platform.WindowID) (platform.Window, bool, error) {
	var wire *wireWindow
	err := c.call(ctx, MethodWindow, windowParams{WindowID: id}, &wire)
	var remote *RemoteError
	if errors.As(err, &remote) {
		return platform.Window{}, false, nil
	}
	if err != nil {
		return platform.Window{}, false, err
	}
	if wire == nil {
		return platform.Window{}, false, nil
	}
	win, ok := wire.window()
	if !ok {
		c.logger.Debug("window has no position", "window_id", id)
	}
	return win, ok, nil
}

func (c *Client) Tabs(ctx context.Context, windowID platform.WindowID) ([]platform.Tab, error) {
	var wire []wireTab
	if err := c.call(ctx, MethodTabs, windowParams{WindowID: windowID}, &wire); err != nil {
		return nil, err
	}
	tabs := make([]platform.Tab, 0, len(wire))
	for _, t := range wire {
		tabs = append(tabs, platform.Tab{ID: t.ID, WindowID: t.WindowID})
	}
	return tabs, nil
}

func (c *Client) TabZoom(ctx context.Context, tabID platform.TabID) (float64, error) {
	var factor float64
	if err := c.call(ctx, MethodGetZoom, tabParams{TabID: tabID}, &factor); err != nil {
		return 0, err
	}
	return factor, nil
}

func (c *Client) SetTabZoom(ctx context.Context, tabID platform.TabID, factor float64) error {
	return c.call(ctx, MethodSetZoom, setZoomParams{TabID: tabID, ZoomFactor: factor}, nil)
}

func (c *Client) SetTabZoomScope(ctx context.Context, tabID platform.TabID, scope platform.ZoomScope) error {
	params := setZoomSettingsParams{TabID: tabID, ZoomSettings: zoomSettings{Scope: scope}}
	return c.call(ctx, MethodSetZoomSettings, params, nil)
}

// ReportError forwards a fatal error to the extension, which rethrows it so
// it shows up in the extension's console.
func (c *Client) ReportError(ctx context.Context, ev platform.Event, err error) error {
	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()
	if closed {
		return ErrClosed
	}
	return c.codec.WriteMessage(&Message{Kind: KindError, Error: err.Error(), Event: &ev})
}
