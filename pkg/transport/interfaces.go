package transport

import (
	"fmt"
	"io"
	"time"
)

// Reader reads bytes with deadline semantics.
type Reader interface {
	// ReadBytes returns up to n bytes. The result is short only if the
	// deadline elapsed first. A zero deadline blocks indefinitely; a deadline
	// in the past returns whatever is immediately available.
	ReadBytes(n int, deadline time.Time) ([]byte, error)
}

// Writer writes bytes without a deadline.
type Writer interface {
	WriteBytes(data []byte) error
}

// Stream is an opened, named byte stream to a single device.
type Stream interface {
	Reader
	Writer
	io.Closer

	// Name is a human-readable description used in diagnostics.
	Name() string
}

// ReadBytesOrFail reads exactly n bytes or fails with ErrTimeout.
// The bytes read so far are returned alongside the error.
func ReadBytesOrFail(r Reader, n int, deadline time.Time) ([]byte, error) {
	data, err := r.ReadBytes(n, deadline)
	if err != nil {
		return data, err
	}
	if len(data) < n {
		return data, fmt.Errorf("%w: got %d of %d bytes", ErrTimeout, len(data), n)
	}
	return data, nil
}

// Compile-time interface satisfaction checks.
var (
	_ Stream = (*SerialStream)(nil)
	_ Stream = (*USBStream)(nil)
	_ Stream = (*ConnStream)(nil)
)
