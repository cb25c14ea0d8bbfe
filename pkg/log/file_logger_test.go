package log

import (
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func createTestLogFile(t *testing.T, events []Event) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.olog")

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	for _, e := range events {
		logger.Log(e)
	}
	if err := logger.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	return path
}

func readAll(t *testing.T, r *Reader) []Event {
	t.Helper()
	var out []Event
	for {
		ev, err := r.Next()
		if err == io.EOF {
			return out
		}
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		out = append(out, ev)
	}
}

func TestFileLoggerRoundTrip(t *testing.T) {
	path := createTestLogFile(t, []Event{{
		Timestamp:    time.Now(),
		ConnectionID: "conn-1",
		Direction:    DirectionIn,
		Layer:        LayerTransport,
		Category:     CategoryMessage,
		Frame:        &FrameEvent{Size: 7, Data: []byte{1, 2, 3}},
	}})

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	ev, err := DecodeEvent(data)
	if err != nil {
		t.Fatalf("DecodeEvent failed: %v", err)
	}
	if ev.ConnectionID != "conn-1" {
		t.Errorf("ConnectionID = %q, want %q", ev.ConnectionID, "conn-1")
	}
	if ev.Frame == nil || ev.Frame.Size != 7 {
		t.Errorf("Frame = %+v, want size 7", ev.Frame)
	}
}

func TestFileLoggerAppends(t *testing.T) {
	path := createTestLogFile(t, []Event{{ConnectionID: "a"}})

	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	logger.Log(Event{ConnectionID: "b"})
	logger.Close()

	r, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer r.Close()

	events := readAll(t, r)
	if len(events) != 2 {
		t.Fatalf("got %d events, want 2", len(events))
	}
	if events[0].ConnectionID != "a" || events[1].ConnectionID != "b" {
		t.Errorf("unexpected order: %q, %q", events[0].ConnectionID, events[1].ConnectionID)
	}
}

func TestFileLoggerCloseTwiceAndLogAfterClose(t *testing.T) {
	logger, err := NewFileLogger(filepath.Join(t.TempDir(), "x.olog"))
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	if err := logger.Close(); err != nil {
		t.Fatalf("first Close failed: %v", err)
	}
	if err := logger.Close(); err != nil {
		t.Errorf("second Close failed: %v", err)
	}
	logger.Log(Event{})
}

func TestFileLoggerConcurrent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.olog")
	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				logger.Log(Event{Layer: LayerDiscovery})
			}
		}()
	}
	wg.Wait()
	logger.Close()

	r, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer r.Close()
	if n := len(readAll(t, r)); n != 100 {
		t.Errorf("got %d events, want 100", n)
	}
}

func TestFilteredReader(t *testing.T) {
	base := time.Now()
	path := createTestLogFile(t, []Event{
		{Timestamp: base, Channel: "usb", Layer: LayerDiscovery, Category: CategoryState, Direction: DirectionNone},
		{Timestamp: base.Add(time.Second), Channel: "tty", Layer: LayerProperty, Category: CategoryMessage, Direction: DirectionOut},
		{Timestamp: base.Add(2 * time.Second), Channel: "tty", Layer: LayerProperty, Category: CategoryMessage, Direction: DirectionIn},
	})

	layer := LayerProperty
	dir := DirectionIn
	start := base.Add(500 * time.Millisecond)

	tests := []struct {
		name   string
		filter Filter
		want   int
	}{
		{"all", Filter{}, 3},
		{"by channel", Filter{Channel: "tty"}, 2},
		{"by layer", Filter{Layer: &layer}, 2},
		{"by direction", Filter{Direction: &dir}, 1},
		{"by start time", Filter{TimeStart: &start}, 2},
		{"no match", Filter{ConnectionID: "missing"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewFilteredReader(path, tt.filter)
			if err != nil {
				t.Fatalf("NewFilteredReader failed: %v", err)
			}
			defer r.Close()
			if got := len(readAll(t, r)); got != tt.want {
				t.Errorf("got %d events, want %d", got, tt.want)
			}
		})
	}
}

func TestReaderMissingFile(t *testing.T) {
	if _, err := NewReader(filepath.Join(t.TempDir(), "missing.olog")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestReaderEventsAndNamespace(t *testing.T) {
	path := createTestLogFile(t, []Event{
		{Namespace: "odrive", Category: CategoryDiagnostic},
		{Namespace: "odrive.axis0.config", Category: CategoryDiagnostic},
		{Namespace: "odrive.axis01", Category: CategoryDiagnostic},
		{Namespace: "odrive.axis0", Category: CategoryMessage},
	})

	r, err := NewFilteredReader(path, Filter{Namespace: "odrive.axis0"})
	if err != nil {
		t.Fatalf("NewFilteredReader failed: %v", err)
	}
	defer r.Close()

	var got []string
	for ev, err := range r.Events() {
		if err != nil {
			t.Fatalf("Events failed: %v", err)
		}
		got = append(got, ev.Namespace)
	}
	if len(got) != 2 || got[0] != "odrive.axis0.config" || got[1] != "odrive.axis0" {
		t.Errorf("got %q", got)
	}
}

func TestReaderTruncatedCapture(t *testing.T) {
	path := createTestLogFile(t, []Event{{ConnectionID: "a"}, {ConnectionID: "b"}})
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if err := os.WriteFile(path, data[:len(data)-2], 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	r, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer r.Close()
	if events := readAll(t, r); len(events) != 1 || events[0].ConnectionID != "a" {
		t.Errorf("got %+v, want only the complete event", events)
	}
}

func TestFileLoggerBuffersTraffic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "b.olog")
	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	defer logger.Close()

	logger.Log(Event{Category: CategoryMessage, Line: &LineEvent{Text: "r 1"}})
	if info, _ := os.Stat(path); info.Size() != 0 {
		t.Errorf("traffic written before flush: %d bytes", info.Size())
	}

	logger.Log(Event{Category: CategoryState, Probe: &ProbeEvent{Candidate: "c"}})
	r, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer r.Close()
	if n := len(readAll(t, r)); n != 2 {
		t.Errorf("got %d events after state event, want 2", n)
	}
	if logger.Dropped() != 0 {
		t.Errorf("Dropped() = %d", logger.Dropped())
	}
}
