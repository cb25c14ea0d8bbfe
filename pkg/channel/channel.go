package channel

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/odrive-go/odrive/pkg/transport"
)

// MaxLineLength bounds a single line-protocol response.
const MaxLineLength = 256

// ErrLineTooLong indicates a response line exceeded MaxLineLength.
var ErrLineTooLong = errors.New("line too long")

// Channel is a bidirectional link to one device.
type Channel interface {
	// Name is a human-readable description used in diagnostics.
	Name() string

	// Write sends line-protocol bytes.
	Write(data []byte) error

	// ReadBytes reads up to n line-protocol bytes with deadline semantics
	// (see transport.Reader).
	ReadBytes(n int, deadline time.Time) ([]byte, error)

	// ReadEndpoint reads the whole buffer of a remote endpoint.
	ReadEndpoint(endpoint uint16, deadline time.Time) ([]byte, error)
}

// ReadUntil reads bytes until delim and returns them without the delimiter.
// It fails with transport.ErrTimeout if the delimiter did not arrive in time.
func ReadUntil(r transport.Reader, delim byte, deadline time.Time) ([]byte, error) {
	var out []byte
	for {
		b, err := transport.ReadBytesOrFail(r, 1, deadline)
		if err != nil {
			return out, err
		}
		if b[0] == delim {
			return out, nil
		}
		if len(out) >= MaxLineLength {
			return out, fmt.Errorf("%w: over %d bytes", ErrLineTooLong, MaxLineLength)
		}
		out = append(out, b[0])
	}
}

// ReadLine reads one newline-terminated line and strips the terminator,
// including a preceding carriage return.
func ReadLine(r transport.Reader, deadline time.Time) (string, error) {
	b, err := ReadUntil(r, '\n', deadline)
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(string(b), "\r"), nil
}
