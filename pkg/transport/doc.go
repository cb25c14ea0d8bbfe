// Package transport provides deadline-bound byte streams to devices.
//
// A Stream offers unbounded writes and reads that are bounded by an absolute
// deadline:
//
//	data, err := s.ReadBytes(64, time.Now().Add(100*time.Millisecond))
//
// ReadBytes returns between 0 and n bytes and is short only when the deadline
// elapses first. The zero time.Time blocks without bound; a deadline in the
// past polls without blocking. ReadBytesOrFail turns a short read into
// ErrTimeout.
//
// # Implementations
//
//   - SerialStream: a serial device file (go.bug.st/serial), fixed baud rate
//   - USBStream: a pair of USB bulk endpoints (github.com/google/gousb)
//   - ConnStream: any net.Conn, used for in-memory pipes and TCP serial bridges
//
// # Framing
//
// Framer adds 4-byte big-endian length-prefix framing on top of a Stream.
// It is used by the packet channel in package channel.
package transport
