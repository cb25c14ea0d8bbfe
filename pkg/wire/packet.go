package wire

import (
	"errors"
	"fmt"
)

// CBOR map keys for packet encoding.
const (
	KeySeq      = 1
	KeyKind     = 2
	KeyEndpoint = 3
	KeyOffset   = 4
	KeyData     = 5
)

// SchemaEndpoint is the endpoint holding the device schema.
const SchemaEndpoint uint16 = 0

// MaxChunkSize is the largest Data payload a device puts in one EndpointData packet.
const MaxChunkSize = 512

// ErrInvalidPacket indicates a structurally invalid packet.
var ErrInvalidPacket = errors.New("invalid packet")

// Kind identifies the packet type.
type Kind uint8

const (
	// KindStream carries line-protocol bytes.
	KindStream Kind = 0
	// KindEndpointRead requests a chunk of an endpoint buffer.
	KindEndpointRead Kind = 1
	// KindEndpointData answers an endpoint read.
	KindEndpointData Kind = 2
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindStream:
		return "STREAM"
	case KindEndpointRead:
		return "ENDPOINT_READ"
	case KindEndpointData:
		return "ENDPOINT_DATA"
	default:
		return fmt.Sprintf("KIND(%d)", uint8(k))
	}
}

// IsValid returns true for known kinds.
func (k Kind) IsValid() bool {
	return k <= KindEndpointData
}

// Packet is one unit of traffic on a packet channel.
type Packet struct {
	Seq      uint32 `cbor:"1,keyasint"`
	Kind     Kind   `cbor:"2,keyasint"`
	Endpoint uint16 `cbor:"3,keyasint,omitempty"`
	Offset   uint32 `cbor:"4,keyasint,omitempty"`
	Data     []byte `cbor:"5,keyasint,omitempty"`
}

// NewStream returns a stream packet carrying data.
func NewStream(data []byte) *Packet {
	return &Packet{Kind: KindStream, Data: data}
}

// NewEndpointRead returns a read request for endpoint at offset.
func NewEndpointRead(seq uint32, endpoint uint16, offset uint32) *Packet {
	return &Packet{Seq: seq, Kind: KindEndpointRead, Endpoint: endpoint, Offset: offset}
}

// NewEndpointData returns the reply to req carrying chunk.
func NewEndpointData(req *Packet, chunk []byte) *Packet {
	return &Packet{
		Seq:      req.Seq,
		Kind:     KindEndpointData,
		Endpoint: req.Endpoint,
		Offset:   req.Offset,
		Data:     chunk,
	}
}

// Validate checks the packet structure.
func (p *Packet) Validate() error {
	if !p.Kind.IsValid() {
		return fmt.Errorf("%w: unknown kind %d", ErrInvalidPacket, p.Kind)
	}
	switch p.Kind {
	case KindStream:
		if len(p.Data) == 0 {
			return fmt.Errorf("%w: empty stream packet", ErrInvalidPacket)
		}
	case KindEndpointRead:
		if len(p.Data) != 0 {
			return fmt.Errorf("%w: endpoint read carries data", ErrInvalidPacket)
		}
	case KindEndpointData:
		if len(p.Data) > MaxChunkSize {
			return fmt.Errorf("%w: chunk of %d bytes exceeds %d", ErrInvalidPacket, len(p.Data), MaxChunkSize)
		}
	}
	return nil
}
