package log

import (
	"strings"
	"time"
)

// Event is a log record captured at any layer.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred.
	Timestamp time.Time `cbor:"1,keyasint"`

	// ConnectionID identifies the channel session (UUID), empty before one is assigned.
	ConnectionID string `cbor:"2,keyasint,omitempty"`

	// Channel is the human-readable channel name, e.g. "serial port /dev/ttyACM0@115200".
	Channel string `cbor:"3,keyasint,omitempty"`

	// Direction indicates data flow relative to the host.
	Direction Direction `cbor:"4,keyasint"`

	// Layer where the event was captured.
	Layer Layer `cbor:"5,keyasint"`

	// Category classifies the event.
	Category Category `cbor:"6,keyasint"`

	// Namespace is the dotted schema namespace for schema and property events.
	Namespace string `cbor:"7,keyasint,omitempty"`

	// Type-specific payload (at most one is set).
	Frame      *FrameEvent      `cbor:"10,keyasint,omitempty"`
	Line       *LineEvent       `cbor:"11,keyasint,omitempty"`
	Probe      *ProbeEvent      `cbor:"12,keyasint,omitempty"`
	Diagnostic *DiagnosticEvent `cbor:"13,keyasint,omitempty"`
	Error      *ErrorEventData  `cbor:"14,keyasint,omitempty"`
}

// Direction indicates the direction of data flow.
type Direction uint8

const (
	// DirectionIn is device to host.
	DirectionIn Direction = 0
	// DirectionOut is host to device.
	DirectionOut Direction = 1
	// DirectionNone marks events that carry no traffic.
	DirectionNone Direction = 2
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionIn:
		return "IN"
	case DirectionOut:
		return "OUT"
	case DirectionNone:
		return "NONE"
	default:
		return "UNKNOWN"
	}
}

// Layer indicates which component captured the event.
type Layer uint8

const (
	// LayerTransport is the byte stream and framing layer.
	LayerTransport Layer = 0
	// LayerChannel is the packet channel (endpoint reads, stream data).
	LayerChannel Layer = 1
	// LayerProperty is the line protocol used by property get/set.
	LayerProperty Layer = 2
	// LayerSchema is the schema compiler.
	LayerSchema Layer = 3
	// LayerDiscovery is the discovery orchestrator.
	LayerDiscovery Layer = 4
)

// String returns the layer name.
func (l Layer) String() string {
	switch l {
	case LayerTransport:
		return "TRANSPORT"
	case LayerChannel:
		return "CHANNEL"
	case LayerProperty:
		return "PROPERTY"
	case LayerSchema:
		return "SCHEMA"
	case LayerDiscovery:
		return "DISCOVERY"
	default:
		return "UNKNOWN"
	}
}

// ParseLayer returns the layer for a case-insensitive name.
func ParseLayer(s string) (Layer, bool) {
	for l := LayerTransport; l <= LayerDiscovery; l++ {
		if strings.EqualFold(l.String(), s) {
			return l, true
		}
	}
	return 0, false
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryMessage is traffic: frames or protocol lines.
	CategoryMessage Category = 0
	// CategoryState is a lifecycle outcome such as a probe result.
	CategoryState Category = 1
	// CategoryDiagnostic is a recoverable problem worth reporting.
	CategoryDiagnostic Category = 2
	// CategoryError is an error at any layer.
	CategoryError Category = 3
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryMessage:
		return "MESSAGE"
	case CategoryState:
		return "STATE"
	case CategoryDiagnostic:
		return "DIAGNOSTIC"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// FrameEvent captures raw frame data at the transport layer.
type FrameEvent struct {
	// Size is the frame size in bytes (including length prefix).
	Size int `cbor:"1,keyasint"`

	// Data is the raw frame bytes (may be truncated for large frames).
	Data []byte `cbor:"2,keyasint,omitempty"`

	// Truncated indicates if Data was truncated.
	Truncated bool `cbor:"3,keyasint,omitempty"`
}

// LineEvent captures one line of the property protocol, without its terminator.
type LineEvent struct {
	Text string `cbor:"1,keyasint"`
}

// ProbeOutcome is the result of probing one discovery candidate.
type ProbeOutcome uint8

const (
	ProbeFound ProbeOutcome = iota
	ProbeUnavailable
	ProbeTimeout
	ProbeBroken
	ProbeNotUTF8
	ProbeNotSchema
)

// String returns the outcome name. The names are also used as metric labels.
func (o ProbeOutcome) String() string {
	switch o {
	case ProbeFound:
		return "found"
	case ProbeUnavailable:
		return "unavailable"
	case ProbeTimeout:
		return "timeout"
	case ProbeBroken:
		return "broken"
	case ProbeNotUTF8:
		return "not_utf8"
	case ProbeNotSchema:
		return "not_schema"
	default:
		return "unknown"
	}
}

// ProbeEvent captures the outcome of probing a discovery candidate.
type ProbeEvent struct {
	// Candidate is the candidate name.
	Candidate string `cbor:"1,keyasint"`

	// Outcome classifies the result.
	Outcome ProbeOutcome `cbor:"2,keyasint"`

	// Reason is the underlying error text for failed probes.
	Reason string `cbor:"3,keyasint,omitempty"`
}

// DiagnosticEvent describes a recoverable problem, e.g. a dropped schema entry.
type DiagnosticEvent struct {
	// Entry is the offending entry name, if it has one.
	Entry string `cbor:"1,keyasint,omitempty"`

	// Message is the human-readable text.
	Message string `cbor:"2,keyasint"`
}

// ErrorEventData captures errors at any layer.
type ErrorEventData struct {
	// Layer where the error occurred.
	Layer Layer `cbor:"1,keyasint"`

	// Message is the error message.
	Message string `cbor:"2,keyasint"`

	// Context describes what operation was being performed.
	Context string `cbor:"3,keyasint,omitempty"`
}
