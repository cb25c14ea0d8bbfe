package transport

import (
	"fmt"
	"sync"
	"time"

	"go.bug.st/serial"
)

// DefaultBaudRate is the baud rate used for serial candidates. USB CDC
// devices ignore it.
const DefaultBaudRate = 115200

// serialPort is the subset of serial.Port used by SerialStream.
type serialPort interface {
	Read(p []byte) (int, error)
	Write(p []byte) (int, error)
	SetReadTimeout(t time.Duration) error
	Close() error
}

// SerialStream is a Stream over a serial device file.
type SerialStream struct {
	port serialPort
	path string
	baud int

	closeOnce sync.Once
	closeErr  error
}

// OpenSerial opens the serial device at path with the given baud rate.
// A device that cannot be opened yields ErrTransportUnavailable.
func OpenSerial(path string, baud int) (*SerialStream, error) {
	if baud <= 0 {
		baud = DefaultBaudRate
	}
	port, err := serial.Open(path, &serial.Mode{BaudRate: baud})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrTransportUnavailable, path, err)
	}
	return newSerialStream(port, path, baud), nil
}

func newSerialStream(port serialPort, path string, baud int) *SerialStream {
	return &SerialStream{port: port, path: path, baud: baud}
}

// ListSerialPorts returns the serial device paths known to the OS.
func ListSerialPorts() ([]string, error) {
	return serial.GetPortsList()
}

// Name returns "serial port <path>@<baud>".
func (s *SerialStream) Name() string {
	return fmt.Sprintf("serial port %s@%d", s.path, s.baud)
}

// WriteBytes writes all of data to the port.
func (s *SerialStream) WriteBytes(data []byte) error {
	for len(data) > 0 {
		n, err := s.port.Write(data)
		if err != nil {
			return fmt.Errorf("%w: write %s: %v", ErrChannelBroken, s.path, err)
		}
		data = data[n:]
	}
	return nil
}

// ReadBytes reads up to n bytes before the deadline.
func (s *SerialStream) ReadBytes(n int, deadline time.Time) ([]byte, error) {
	buf := make([]byte, n)
	got := 0
	for got < n {
		timeout := serial.NoTimeout
		if !deadline.IsZero() {
			timeout = max(time.Until(deadline), 0)
		}
		if err := s.port.SetReadTimeout(timeout); err != nil {
			return buf[:got], fmt.Errorf("%w: set timeout %s: %v", ErrChannelBroken, s.path, err)
		}

		m, err := s.port.Read(buf[got:])
		got += m
		if err != nil {
			return buf[:got], fmt.Errorf("%w: read %s: %v", ErrChannelBroken, s.path, err)
		}
		if m == 0 {
			// A zero-length read without a deadline means the port went away.
			if deadline.IsZero() {
				return buf[:got], fmt.Errorf("%w: read %s: end of stream", ErrChannelBroken, s.path)
			}
			if !time.Now().Before(deadline) {
				break
			}
		}
	}
	return buf[:got], nil
}

// Close closes the port. It is safe to call Close multiple times.
func (s *SerialStream) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = s.port.Close()
	})
	return s.closeErr
}
