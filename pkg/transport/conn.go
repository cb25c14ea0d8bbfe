package transport

import (
	"errors"
	"fmt"
	"net"
	"os"
	"time"
)

// pollWindow is the read deadline used for a deadline already in the past.
// net.Conn fails such reads without returning buffered data.
const pollWindow = time.Millisecond

// ConnStream adapts a net.Conn to a Stream. Deadlines map onto
// SetReadDeadline.
type ConnStream struct {
	conn net.Conn
	name string
}

// NewConnStream wraps conn. The name is used in diagnostics.
func NewConnStream(conn net.Conn, name string) *ConnStream {
	return &ConnStream{conn: conn, name: name}
}

// DialTCP connects to a TCP serial bridge such as ser2net.
func DialTCP(address string, timeout time.Duration) (*ConnStream, error) {
	conn, err := net.DialTimeout("tcp", address, timeout)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrTransportUnavailable, address, err)
	}
	return NewConnStream(conn, "tcp "+address), nil
}

// Pipe returns two connected in-memory streams.
func Pipe(nameA, nameB string) (*ConnStream, *ConnStream) {
	a, b := net.Pipe()
	return NewConnStream(a, nameA), NewConnStream(b, nameB)
}

// Name returns the stream name.
func (c *ConnStream) Name() string { return c.name }

// WriteBytes writes all of data.
func (c *ConnStream) WriteBytes(data []byte) error {
	if _, err := c.conn.Write(data); err != nil {
		return fmt.Errorf("%w: write %s: %v", ErrChannelBroken, c.name, err)
	}
	return nil
}

// ReadBytes reads up to n bytes before the deadline.
func (c *ConnStream) ReadBytes(n int, deadline time.Time) ([]byte, error) {
	if now := time.Now(); !deadline.IsZero() && !deadline.After(now) {
		deadline = now.Add(pollWindow)
	}
	if err := c.conn.SetReadDeadline(deadline); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrChannelBroken, c.name, err)
	}
	defer c.conn.SetReadDeadline(time.Time{})

	buf := make([]byte, n)
	got := 0
	for got < n {
		m, err := c.conn.Read(buf[got:])
		got += m
		if err != nil {
			if errors.Is(err, os.ErrDeadlineExceeded) {
				break
			}
			return buf[:got], fmt.Errorf("%w: read %s: %v", ErrChannelBroken, c.name, err)
		}
	}
	return buf[:got], nil
}

// Close closes the underlying connection.
func (c *ConnStream) Close() error {
	return c.conn.Close()
}
