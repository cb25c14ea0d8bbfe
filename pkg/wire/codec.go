package wire

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// Packets use core deterministic encoding and strict decoding: the format is
// fixed on both ends, so unknown or repeated keys mark a corrupt frame.
var (
	packetEnc = mustEncMode(cbor.CoreDetEncOptions())
	packetDec = mustDecMode(cbor.DecOptions{
		DupMapKey:         cbor.DupMapKeyEnforcedAPF,
		IndefLength:       cbor.IndefLengthForbidden,
		ExtraReturnErrors: cbor.ExtraDecErrorUnknownField,
		MaxMapPairs:       16,
	})
)

func mustEncMode(opts cbor.EncOptions) cbor.EncMode {
	m, err := opts.EncMode()
	if err != nil {
		panic(fmt.Sprintf("wire: cbor encoder mode: %v", err))
	}
	return m
}

func mustDecMode(opts cbor.DecOptions) cbor.DecMode {
	m, err := opts.DecMode()
	if err != nil {
		panic(fmt.Sprintf("wire: cbor decoder mode: %v", err))
	}
	return m
}

// EncodePacket validates and encodes a packet.
func EncodePacket(p *Packet) ([]byte, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return packetEnc.Marshal(p)
}

// DecodePacket decodes and validates a packet. Trailing bytes, unknown keys
// and duplicate keys are rejected.
func DecodePacket(data []byte) (*Packet, error) {
	var p Packet
	if err := packetDec.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPacket, err)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &p, nil
}
