package transport

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/odrive-go/odrive/pkg/log"
)

// Framing constants.
const (
	// LengthPrefixSize is the size of the length prefix in bytes.
	LengthPrefixSize = 4

	// DefaultMaxMessageSize is the default maximum frame payload size (64 KB).
	DefaultMaxMessageSize = 65536

	// MaxLogFrameDataSize is the maximum frame data size included in log events.
	MaxLogFrameDataSize = 4096
)

// Framing errors. Both also match ErrChannelBroken on the read side since the
// stream cannot be resynchronized afterwards.
var (
	// ErrMessageTooLarge indicates the payload exceeds the maximum size.
	ErrMessageTooLarge = errors.New("message too large")

	// ErrMessageEmpty indicates an empty payload.
	ErrMessageEmpty = errors.New("message is empty")
)

// Framer reads and writes length-prefixed frames over a Stream.
// Writes are serialized; reads are expected to come from a single goroutine.
type Framer struct {
	s              Stream
	maxMessageSize uint32
	wmu            sync.Mutex

	// partial holds the prefix and payload bytes of a frame whose read
	// deadline expired before it was complete.
	partial []byte

	// Logging support (optional)
	logger log.Logger
	connID string
}

// NewFramer creates a framer with the default max message size.
func NewFramer(s Stream) *Framer {
	return NewFramerWithMaxSize(s, DefaultMaxMessageSize)
}

// NewFramerWithMaxSize creates a framer with a custom max message size.
func NewFramerWithMaxSize(s Stream, maxSize uint32) *Framer {
	return &Framer{s: s, maxMessageSize: maxSize}
}

// SetLogger configures frame logging. Pass nil to disable logging.
func (f *Framer) SetLogger(logger log.Logger, connID string) {
	f.logger = logger
	f.connID = connID
}

// Stream returns the underlying stream.
func (f *Framer) Stream() Stream { return f.s }

// WriteFrame writes one length-prefixed frame.
func (f *Framer) WriteFrame(data []byte) error {
	if len(data) == 0 {
		return ErrMessageEmpty
	}
	if uint32(len(data)) > f.maxMessageSize {
		return fmt.Errorf("%w: %d > %d", ErrMessageTooLarge, len(data), f.maxMessageSize)
	}

	frame := make([]byte, LengthPrefixSize+len(data))
	binary.BigEndian.PutUint32(frame, uint32(len(data)))
	copy(frame[LengthPrefixSize:], data)

	f.wmu.Lock()
	defer f.wmu.Unlock()
	if err := f.s.WriteBytes(frame); err != nil {
		return err
	}

	if f.logger != nil {
		f.logger.Log(f.makeFrameEvent(data, log.DirectionOut))
	}
	return nil
}

// ReadFrame reads one frame before the deadline and returns its payload.
// ErrTimeout is returned when the frame did not arrive in time; bytes of a
// partly received frame are kept and the next call continues with it.
func (f *Framer) ReadFrame(deadline time.Time) ([]byte, error) {
	if err := f.fill(LengthPrefixSize, deadline); err != nil {
		return nil, err
	}

	length := binary.BigEndian.Uint32(f.partial)
	if length == 0 {
		f.partial = nil
		return nil, fmt.Errorf("%w: %w", ErrChannelBroken, ErrMessageEmpty)
	}
	if length > f.maxMessageSize {
		f.partial = nil
		return nil, fmt.Errorf("%w: %w: %d > %d", ErrChannelBroken, ErrMessageTooLarge, length, f.maxMessageSize)
	}

	if err := f.fill(LengthPrefixSize+int(length), deadline); err != nil {
		return nil, err
	}
	payload := f.partial[LengthPrefixSize:]
	f.partial = nil

	if f.logger != nil {
		f.logger.Log(f.makeFrameEvent(payload, log.DirectionIn))
	}
	return payload, nil
}

// fill reads until partial holds n bytes.
func (f *Framer) fill(n int, deadline time.Time) error {
	if len(f.partial) >= n {
		return nil
	}
	data, err := f.s.ReadBytes(n-len(f.partial), deadline)
	f.partial = append(f.partial, data...)
	if err != nil {
		return err
	}
	if len(f.partial) < n {
		return fmt.Errorf("%w: got %d of %d frame bytes", ErrTimeout, len(f.partial), n)
	}
	return nil
}

// Close closes the underlying stream.
func (f *Framer) Close() error {
	return f.s.Close()
}

func (f *Framer) makeFrameEvent(data []byte, direction log.Direction) log.Event {
	frameData := data
	truncated := false
	if len(data) > MaxLogFrameDataSize {
		frameData = data[:MaxLogFrameDataSize]
		truncated = true
	}

	return log.Event{
		Timestamp:    time.Now(),
		ConnectionID: f.connID,
		Channel:      f.s.Name(),
		Direction:    direction,
		Layer:        log.LayerTransport,
		Category:     log.CategoryMessage,
		Frame: &log.FrameEvent{
			Size:      FrameSize(len(data)),
			Data:      frameData,
			Truncated: truncated,
		},
	}
}

// FrameSize returns the total frame size including the length prefix.
func FrameSize(payloadSize int) int {
	return LengthPrefixSize + payloadSize
}
