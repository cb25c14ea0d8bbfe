package log

import "time"

// Logger is the interface applications implement to receive log events.
// Pass nil or NoopLogger to disable logging.
type Logger interface {
	// Log records an event. Implementations must be thread-safe.
	// The event should be processed quickly or queued; blocking affects I/O timing.
	Log(event Event)
}

// NoopLogger discards all events. Use when logging is disabled.
// NoopLogger is safe for concurrent use and usable as a zero value.
type NoopLogger struct{}

// Log discards the event.
func (NoopLogger) Log(Event) {}

// OrNoop returns l, or NoopLogger when l is nil.
func OrNoop(l Logger) Logger {
	if l == nil {
		return NoopLogger{}
	}
	return l
}

// Diagnostic builds a diagnostic event for the given layer and namespace.
func Diagnostic(layer Layer, namespace, entry, message string) Event {
	return Event{
		Timestamp: time.Now(),
		Direction: DirectionNone,
		Layer:     layer,
		Category:  CategoryDiagnostic,
		Namespace: namespace,
		Diagnostic: &DiagnosticEvent{
			Entry:   entry,
			Message: message,
		},
	}
}

// Compile-time interface satisfaction check.
var _ Logger = NoopLogger{}
