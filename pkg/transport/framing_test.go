package transport

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/odrive-go/odrive/pkg/log"
)

type captureLogger struct {
	events []log.Event
}

func (c *captureLogger) Log(e log.Event) { c.events = append(c.events, e) }

func TestFramerRoundTrip(t *testing.T) {
	a, b := Pipe("host", "device")
	defer a.Close()
	defer b.Close()

	host := NewFramer(a)
	device := NewFramer(b)

	logger := &captureLogger{}
	host.SetLogger(logger, "conn-1")

	payloads := [][]byte{[]byte("hello"), bytes.Repeat([]byte{0xAB}, 5000)}

	errCh := make(chan error, 1)
	go func() {
		for _, p := range payloads {
			if err := device.WriteFrame(p); err != nil {
				errCh <- err
				return
			}
		}
		errCh <- nil
	}()

	for i, want := range payloads {
		got, err := host.ReadFrame(time.Now().Add(time.Second))
		if err != nil {
			t.Fatalf("ReadFrame %d failed: %v", i, err)
		}
		if !bytes.Equal(got, want) {
			t.Errorf("frame %d mismatch", i)
		}
	}
	if err := <-errCh; err != nil {
		t.Fatalf("WriteFrame failed: %v", err)
	}

	if len(logger.events) != 2 {
		t.Fatalf("logged %d events, want 2", len(logger.events))
	}
	e := logger.events[1]
	if e.Direction != log.DirectionIn || e.Layer != log.LayerTransport || e.ConnectionID != "conn-1" {
		t.Errorf("unexpected event header: %+v", e)
	}
	if e.Channel != "host" {
		t.Errorf("Channel = %q, want host", e.Channel)
	}
	if e.Frame.Size != FrameSize(5000) || !e.Frame.Truncated || len(e.Frame.Data) != MaxLogFrameDataSize {
		t.Errorf("unexpected frame payload: size=%d truncated=%v len=%d", e.Frame.Size, e.Frame.Truncated, len(e.Frame.Data))
	}
}

func TestFramerTimeout(t *testing.T) {
	a, b := Pipe("host", "device")
	defer a.Close()
	defer b.Close()

	_, err := NewFramer(a).ReadFrame(time.Now().Add(20 * time.Millisecond))
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("error = %v, want ErrTimeout", err)
	}
}

func TestFramerWriteValidation(t *testing.T) {
	a, b := Pipe("host", "device")
	defer a.Close()
	defer b.Close()

	f := NewFramerWithMaxSize(a, 8)
	if err := f.WriteFrame(nil); !errors.Is(err, ErrMessageEmpty) {
		t.Errorf("empty: error = %v", err)
	}
	if err := f.WriteFrame(make([]byte, 9)); !errors.Is(err, ErrMessageTooLarge) {
		t.Errorf("large: error = %v", err)
	}
}

func TestFramerRejectsOversizedPrefix(t *testing.T) {
	r := &chunkReader{chunks: [][]byte{{0x00, 0x01, 0x00, 0x00}}}
	f := NewFramerWithMaxSize(readOnlyStream{r}, 16)

	_, err := f.ReadFrame(time.Now())
	if !errors.Is(err, ErrChannelBroken) || !errors.Is(err, ErrMessageTooLarge) {
		t.Fatalf("error = %v, want ErrChannelBroken and ErrMessageTooLarge", err)
	}
}

func TestFramerResumesPartialFrame(t *testing.T) {
	tests := []struct {
		name   string
		first  []byte
		second []byte
	}{
		{"split payload", []byte{0x00, 0x00, 0x00, 0x05, 'h', 'e'}, []byte("llo")},
		{"split prefix", []byte{0x00, 0x00, 0x00}, []byte{0x05, 'h', 'e', 'l', 'l', 'o'}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &chunkReader{chunks: [][]byte{tt.first}}
			f := NewFramer(readOnlyStream{r})

			_, err := f.ReadFrame(time.Now())
			if !errors.Is(err, ErrTimeout) {
				t.Fatalf("first read: error = %v, want ErrTimeout", err)
			}
			if errors.Is(err, ErrChannelBroken) {
				t.Fatalf("first read: error = %v, must not break the channel", err)
			}

			r.chunks = append(r.chunks, tt.second, []byte{0x00, 0x00, 0x00, 0x02, 'o', 'k'})
			got, err := f.ReadFrame(time.Now())
			if err != nil {
				t.Fatalf("second read failed: %v", err)
			}
			if string(got) != "hello" {
				t.Errorf("payload = %q, want hello", got)
			}

			got, err = f.ReadFrame(time.Now())
			if err != nil {
				t.Fatalf("third read failed: %v", err)
			}
			if string(got) != "ok" {
				t.Errorf("payload = %q, want ok", got)
			}
		})
	}
}

func TestFramerRejectsEmptyPrefix(t *testing.T) {
	r := &chunkReader{chunks: [][]byte{{0x00, 0x00, 0x00, 0x00}}}
	f := NewFramer(readOnlyStream{r})

	_, err := f.ReadFrame(time.Now())
	if !errors.Is(err, ErrChannelBroken) || !errors.Is(err, ErrMessageEmpty) {
		t.Fatalf("error = %v, want ErrChannelBroken and ErrMessageEmpty", err)
	}
}

type readOnlyStream struct {
	Reader
}

func (readOnlyStream) WriteBytes([]byte) error { return nil }
func (readOnlyStream) Close() error            { return nil }
func (readOnlyStream) Name() string            { return "read-only" }
