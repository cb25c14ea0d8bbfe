package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes events to an slog.Logger.
// Traffic and rejected probes are logged at Debug, found devices at Info,
// diagnostics at Warn and errors at Error.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("layer", event.Layer.String()),
		slog.String("category", event.Category.String()),
	}
	if event.ConnectionID != "" {
		attrs = append(attrs, slog.String("conn_id", event.ConnectionID))
	}
	if event.Channel != "" {
		attrs = append(attrs, slog.String("channel", event.Channel))
	}
	if event.Direction != DirectionNone {
		attrs = append(attrs, slog.String("direction", event.Direction.String()))
	}
	if event.Namespace != "" {
		attrs = append(attrs, slog.String("namespace", event.Namespace))
	}

	level := slog.LevelDebug
	msg := "event"

	switch {
	case event.Frame != nil:
		msg = "frame"
		attrs = append(attrs,
			slog.Int("frame_size", event.Frame.Size),
			slog.Bool("truncated", event.Frame.Truncated),
		)
	case event.Line != nil:
		msg = "line"
		attrs = append(attrs, slog.String("text", event.Line.Text))
	case event.Probe != nil:
		msg = "probe"
		attrs = append(attrs,
			slog.String("candidate", event.Probe.Candidate),
			slog.String("outcome", event.Probe.Outcome.String()),
		)
		if event.Probe.Reason != "" {
			attrs = append(attrs, slog.String("reason", event.Probe.Reason))
		}
		if event.Probe.Outcome == ProbeFound {
			level = slog.LevelInfo
		}
	case event.Diagnostic != nil:
		msg = event.Diagnostic.Message
		level = slog.LevelWarn
		if event.Diagnostic.Entry != "" {
			attrs = append(attrs, slog.String("entry", event.Diagnostic.Entry))
		}
	case event.Error != nil:
		msg = event.Error.Message
		level = slog.LevelError
		attrs = append(attrs, slog.String("error_layer", event.Error.Layer.String()))
		if event.Error.Context != "" {
			attrs = append(attrs, slog.String("error_context", event.Error.Context))
		}
	}

	a.logger.LogAttrs(context.Background(), level, msg, attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)
