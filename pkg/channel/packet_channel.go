package channel

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/odrive-go/odrive/pkg/log"
	"github.com/odrive-go/odrive/pkg/transport"
	"github.com/odrive-go/odrive/pkg/wire"
)

// MaxEndpointSize bounds the buffer assembled by ReadEndpoint.
const MaxEndpointSize = 1 << 20

// PacketChannel implements Channel over a length-prefixed CBOR packet stream.
type PacketChannel struct {
	framer *transport.Framer
	connID string
	logger log.Logger

	mu      sync.Mutex
	seq     uint32
	inbound []byte
}

// Option configures a PacketChannel.
type Option func(*PacketChannel)

// WithLogger sets the protocol event logger.
func WithLogger(l log.Logger) Option {
	return func(c *PacketChannel) { c.logger = log.OrNoop(l) }
}

// WithConnectionID overrides the generated connection ID.
func WithConnectionID(id string) Option {
	return func(c *PacketChannel) { c.connID = id }
}

// NewPacketChannel wraps an opened stream.
func NewPacketChannel(s transport.Stream, opts ...Option) *PacketChannel {
	c := &PacketChannel{
		framer: transport.NewFramer(s),
		connID: uuid.NewString(),
		logger: log.NoopLogger{},
	}
	for _, opt := range opts {
		opt(c)
	}
	c.framer.SetLogger(c.logger, c.connID)
	return c
}

// Name returns the underlying stream name.
func (c *PacketChannel) Name() string { return c.framer.Stream().Name() }

// ConnectionID returns the UUID identifying this channel in log events.
func (c *PacketChannel) ConnectionID() string { return c.connID }

// Write sends data as one stream packet.
func (c *PacketChannel) Write(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	return c.send(wire.NewStream(data))
}

// ReadBytes returns up to n stream bytes, buffering any surplus.
func (c *PacketChannel) ReadBytes(n int, deadline time.Time) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for len(c.inbound) < n {
		pkt, err := c.receive(deadline)
		if errors.Is(err, transport.ErrTimeout) {
			break
		}
		if err != nil {
			return nil, err
		}
		c.dispatch(pkt, 0)
	}

	m := min(n, len(c.inbound))
	out := make([]byte, m)
	copy(out, c.inbound)
	c.inbound = c.inbound[m:]
	return out, nil
}

// ReadEndpoint reads an endpoint buffer chunk by chunk until the device
// returns an empty chunk. Stream bytes arriving meanwhile are kept for
// ReadBytes.
func (c *PacketChannel) ReadEndpoint(endpoint uint16, deadline time.Time) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var buf []byte
	for {
		c.seq++
		req := wire.NewEndpointRead(c.seq, endpoint, uint32(len(buf)))
		if err := c.send(req); err != nil {
			return nil, err
		}

		chunk, err := c.awaitChunk(req.Seq, deadline)
		if err != nil {
			return nil, fmt.Errorf("read endpoint %d at offset %d: %w", endpoint, req.Offset, err)
		}
		if len(chunk) == 0 {
			return buf, nil
		}
		if len(buf)+len(chunk) > MaxEndpointSize {
			return nil, fmt.Errorf("%w: endpoint %d exceeds %d bytes", transport.ErrChannelBroken, endpoint, MaxEndpointSize)
		}
		buf = append(buf, chunk...)
	}
}

// Close closes the underlying stream.
func (c *PacketChannel) Close() error {
	return c.framer.Close()
}

func (c *PacketChannel) awaitChunk(seq uint32, deadline time.Time) ([]byte, error) {
	for {
		pkt, err := c.receive(deadline)
		if err != nil {
			return nil, err
		}
		if chunk, ok := c.dispatch(pkt, seq); ok {
			return chunk, nil
		}
	}
}

// dispatch buffers stream data and returns the payload of an EndpointData
// packet answering seq. Replies to other requests are dropped.
func (c *PacketChannel) dispatch(pkt *wire.Packet, seq uint32) ([]byte, bool) {
	switch pkt.Kind {
	case wire.KindStream:
		c.inbound = append(c.inbound, pkt.Data...)
	case wire.KindEndpointData:
		if seq != 0 && pkt.Seq == seq {
			return pkt.Data, true
		}
		c.diagnostic(fmt.Sprintf("dropped stale endpoint reply seq=%d", pkt.Seq))
	default:
		c.diagnostic(fmt.Sprintf("unexpected %s packet from device", pkt.Kind))
	}
	return nil, false
}

func (c *PacketChannel) send(pkt *wire.Packet) error {
	data, err := wire.EncodePacket(pkt)
	if err != nil {
		return err
	}
	return c.framer.WriteFrame(data)
}

func (c *PacketChannel) receive(deadline time.Time) (*wire.Packet, error) {
	frame, err := c.framer.ReadFrame(deadline)
	if err != nil {
		return nil, err
	}
	pkt, err := wire.DecodePacket(frame)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", transport.ErrChannelBroken, err)
	}
	return pkt, nil
}

func (c *PacketChannel) diagnostic(msg string) {
	e := log.Diagnostic(log.LayerChannel, "", "", msg)
	e.ConnectionID = c.connID
	e.Channel = c.Name()
	c.logger.Log(e)
}

var _ Channel = (*PacketChannel)(nil)
