package bridge

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
)

// Browser-imposed native messaging limits.
const (
	MaxInboundMessage  = 64 << 20 // browser -> host
	MaxOutboundMessage = 1 << 20  // host -> browser
)

// ErrMalformedMessage wraps a frame whose body is not a valid message. The
// stream stays in sync, so readers may skip it.
var ErrMalformedMessage = errors.New("malformed message")

// Codec reads and writes native messaging frames: a 32-bit length in native
// byte order followed by that many bytes of JSON.
type Codec struct {
	r   io.Reader
	w   io.Writer
	wmu sync.Mutex
}

// NewCodec creates a codec over r and w, normally stdin and stdout.
func NewCodec(r io.Reader, w io.Writer) *Codec {
	return &Codec{r: r, w: w}
}

// ReadMessage blocks until a full frame is read. It returns io.EOF when the
// browser closed the pipe between frames.
func (c *Codec) ReadMessage() (*Message, error) {
	var header [4]byte
	if _, err := io.ReadFull(c.r, header[:]); err != nil {
		return nil, err
	}
	size := binary.NativeEndian.Uint32(header[:])
	if size > MaxInboundMessage {
		return nil, fmt.Errorf("inbound message too large: %d bytes", size)
	}

	body := make([]byte, size)
	if _, err := io.ReadFull(c.r, body); err != nil {
		return nil, fmt.Errorf("read message body: %w", err)
	}

	var msg Message
	if err := json.Unmarshal(body, &msg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedMessage, err)
	}
	return &msg, nil
}

// WriteMessage writes one frame. Safe for concurrent use.
func (c *Codec) WriteMessage(msg *Message) error {
	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}
	if len(body) > MaxOutboundMessage {
		return fmt.Errorf("outbound message too large: %d bytes", len(body))
	}

	frame := make([]byte, 4+len(body))
	binary.NativeEndian.PutUint32(frame[:4], uint32(len(body)))
	copy(frame[4:], body)

	c.wmu.Lock()
	defer c.wmu.Unlock()
	_, err = c.w.Write(frame)
	return err
}
