package log

import (
	"io"

	"github.com/fxamacker/cbor/v2"
)

// Captures are read by tools of other versions, so decoding ignores unknown
// keys and keeps the last of duplicated ones.
var (
	eventEnc = func() cbor.EncMode {
		opts := cbor.CoreDetEncOptions()
		opts.Time = cbor.TimeRFC3339Nano
		m, err := opts.EncMode()
		if err != nil {
			panic("log: cbor encoder mode: " + err.Error())
		}
		return m
	}()

	eventDec = func() cbor.DecMode {
		m, err := cbor.DecOptions{
			DupMapKey:         cbor.DupMapKeyQuiet,
			ExtraReturnErrors: cbor.ExtraDecErrorNone,
		}.DecMode()
		if err != nil {
			panic("log: cbor decoder mode: " + err.Error())
		}
		return m
	}()
)

// EncodeEvent encodes one event.
func EncodeEvent(event Event) ([]byte, error) {
	return eventEnc.Marshal(event)
}

// DecodeEvent decodes one event.
func DecodeEvent(data []byte) (Event, error) {
	var event Event
	err := eventDec.Unmarshal(data, &event)
	return event, err
}

// NewEncoder returns an event encoder writing to w.
func NewEncoder(w io.Writer) *cbor.Encoder { return eventEnc.NewEncoder(w) }

// NewDecoder returns an event decoder reading from r.
func NewDecoder(r io.Reader) *cbor.Decoder { return eventDec.NewDecoder(r) }
