package devicesim

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/odrive-go/odrive/pkg/channel"
	"github.com/odrive-go/odrive/pkg/discovery"
	"github.com/odrive-go/odrive/pkg/schema"
	"github.com/odrive-go/odrive/pkg/transport"
	"github.com/odrive-go/odrive/pkg/wire"
)

// ErrUnknownProperty indicates a path or id the schema does not declare.
var ErrUnknownProperty = errors.New("unknown property")

// InvalidPropertyResponse answers reads of ids the device does not know.
const InvalidPropertyResponse = "invalid property"

type property struct {
	kind   schema.Kind
	access schema.Access
}

// Device is a simulated device.
type Device struct {
	blob   []byte
	props  map[schema.ID]property
	paths  map[string]schema.ID
	chunk  int
	silent bool
	logger *slog.Logger

	mu     sync.Mutex
	values map[schema.ID]string
}

// Option configures a Device.
type Option func(*Device)

// WithChunkSize sets the endpoint reply chunk size. Default: wire.MaxChunkSize.
func WithChunkSize(n int) Option {
	return func(d *Device) { d.chunk = n }
}

// WithSchemaBlob serves blob on endpoint 0 instead of the encoded schema.
func WithSchemaBlob(blob []byte) Option {
	return func(d *Device) { d.blob = blob }
}

// WithSilence makes the device ignore endpoint reads.
func WithSilence() Option {
	return func(d *Device) { d.silent = true }
}

// WithLogger sets the operational logger.
func WithLogger(l *slog.Logger) Option {
	return func(d *Device) { d.logger = l }
}

// New creates a device serving entries. Entries that would not compile are
// still served in the schema but have no value behind them.
func New(entries []schema.Entry, opts ...Option) (*Device, error) {
	blob, err := schema.Encode(entries)
	if err != nil {
		return nil, fmt.Errorf("encode schema: %w", err)
	}

	d := &Device{
		blob:   blob,
		props:  make(map[schema.ID]property),
		paths:  make(map[string]schema.ID),
		values: make(map[schema.ID]string),
		chunk:  wire.MaxChunkSize,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.chunk <= 0 || d.chunk > wire.MaxChunkSize {
		d.chunk = wire.MaxChunkSize
	}

	schema.Walk(entries, func(path string, e *schema.Entry) {
		kind, err := e.Kind()
		if err != nil || !kind.IsLeaf() || e.ID == "" {
			return
		}
		d.props[e.ID] = property{kind: kind, access: e.Access()}
		d.paths[path] = e.ID
		d.values[e.ID] = "0"
	})
	return d, nil
}

// Schema returns the bytes served on endpoint 0.
func (d *Device) Schema() []byte { return d.blob }

// Value returns the stored text of a property id.
func (d *Device) Value(id schema.ID) (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	v, ok := d.values[id]
	return v, ok
}

// SetPath stores v for the property at a dotted path below the root. v must
// have the property's Go type.
func (d *Device) SetPath(path string, v any) error {
	id, ok := d.paths[path]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownProperty, path)
	}
	text, err := d.props[id].kind.FormatValue(v)
	if err != nil {
		return err
	}
	d.mu.Lock()
	d.values[id] = text
	d.mu.Unlock()
	return nil
}

// HandleLine executes one line-protocol command and returns the response
// line, if the command has one.
func (d *Device) HandleLine(line string) (string, bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", false
	}

	switch {
	case fields[0] == "r" && len(fields) == 2:
		id := schema.ID(fields[1])
		p, ok := d.props[id]
		if !ok || !p.access.CanRead() {
			return InvalidPropertyResponse, true
		}
		v, _ := d.Value(id)
		return v, true

	case fields[0] == "w" && len(fields) == 3:
		id := schema.ID(fields[1])
		p, ok := d.props[id]
		if !ok || !p.access.CanWrite() {
			d.logger.Debug("write rejected", "id", id)
			return "", false
		}
		v, err := p.kind.ParseValue(fields[2])
		if err != nil {
			d.logger.Debug("write rejected", "id", id, "error", err)
			return "", false
		}
		text, _ := p.kind.FormatValue(v)
		d.mu.Lock()
		d.values[id] = text
		d.mu.Unlock()
		return "", false
	}

	d.logger.Debug("unknown command", "line", line)
	return "", false
}

// Serve answers packets on s until the peer goes away or ctx ends.
func (d *Device) Serve(ctx context.Context, s transport.Stream) error {
	defer s.Close()
	stop := context.AfterFunc(ctx, func() { s.Close() })
	defer stop()

	framer := transport.NewFramer(s)
	var pending []byte
	for {
		frame, err := framer.ReadFrame(time.Time{})
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, transport.ErrChannelBroken) {
				return nil
			}
			return err
		}
		pkt, err := wire.DecodePacket(frame)
		if err != nil {
			return fmt.Errorf("decode packet: %w", err)
		}

		switch pkt.Kind {
		case wire.KindEndpointRead:
			if d.silent {
				continue
			}
			if err := d.send(framer, wire.NewEndpointData(pkt, d.chunkAt(pkt.Endpoint, pkt.Offset))); err != nil {
				return nil
			}

		case wire.KindStream:
			pending = append(pending, pkt.Data...)
			for {
				i := bytes.IndexByte(pending, '\n')
				if i < 0 {
					break
				}
				line := string(pending[:i])
				pending = pending[i+1:]
				if resp, ok := d.HandleLine(line); ok {
					if err := d.send(framer, wire.NewStream([]byte(resp+"\n"))); err != nil {
						return nil
					}
				}
			}
		}
	}
}

func (d *Device) chunkAt(endpoint uint16, offset uint32) []byte {
	if endpoint != wire.SchemaEndpoint || int(offset) >= len(d.blob) {
		return nil
	}
	end := min(int(offset)+d.chunk, len(d.blob))
	return d.blob[offset:end]
}

func (d *Device) send(f *transport.Framer, p *wire.Packet) error {
	data, err := wire.EncodePacket(p)
	if err != nil {
		return err
	}
	return f.WriteFrame(data)
}

// Connect starts serving on an in-memory pipe and returns the host end.
func (d *Device) Connect(ctx context.Context, name string, opts ...channel.Option) *channel.PacketChannel {
	host, device := transport.Pipe(name, name+" (device)")
	go func() {
		if err := d.Serve(ctx, device); err != nil {
			d.logger.Warn("simulator stopped", "name", name, "error", err)
		}
	}()
	return channel.NewPacketChannel(host, opts...)
}

// Candidate returns a discovery candidate that connects to the device when
// opened.
func (d *Device) Candidate(ctx context.Context, name string, opts ...channel.Option) discovery.Candidate {
	return discovery.Candidate{
		Name: name,
		Open: func() (channel.Channel, error) {
			return d.Connect(ctx, name, opts...), nil
		},
	}
}
