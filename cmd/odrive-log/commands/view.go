package commands

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"github.com/odrive-go/odrive/pkg/log"
)

// RunView prints every event of path that matches filter.
func RunView(path string, filter log.Filter, output io.Writer) error {
	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		formatEvent(output, event)
	}
}

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event log.Event) {
	// Header line: timestamp [conn:id] DIRECTION LAYER Type
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")
	fmt.Fprintf(w, "%s [conn:%s] %-4s %s %s\n",
		ts, shortenConnID(event.ConnectionID), event.Direction, event.Layer, eventType(event))

	if event.Channel != "" {
		fmt.Fprintf(w, "  Channel: %s\n", event.Channel)
	}
	if event.Namespace != "" {
		fmt.Fprintf(w, "  Namespace: %s\n", event.Namespace)
	}

	switch {
	case event.Frame != nil:
		fmt.Fprintf(w, "  Size: %d bytes\n", event.Frame.Size)
		if len(event.Frame.Data) > 0 {
			fmt.Fprintf(w, "  Data: %s", hex.EncodeToString(event.Frame.Data))
			if event.Frame.Truncated {
				fmt.Fprint(w, " (truncated)")
			}
			fmt.Fprintln(w)
		}
	case event.Line != nil:
		fmt.Fprintf(w, "  Line: %q\n", event.Line.Text)
	case event.Probe != nil:
		fmt.Fprintf(w, "  Candidate: %s\n", event.Probe.Candidate)
		fmt.Fprintf(w, "  Outcome: %s\n", event.Probe.Outcome)
		if event.Probe.Reason != "" {
			fmt.Fprintf(w, "  Reason: %s\n", event.Probe.Reason)
		}
	case event.Diagnostic != nil:
		if event.Diagnostic.Entry != "" {
			fmt.Fprintf(w, "  Entry: %s\n", event.Diagnostic.Entry)
		}
		fmt.Fprintf(w, "  Message: %s\n", event.Diagnostic.Message)
	case event.Error != nil:
		fmt.Fprintf(w, "  Message: %s\n", event.Error.Message)
		if event.Error.Context != "" {
			fmt.Fprintf(w, "  Context: %s\n", event.Error.Context)
		}
	}

	fmt.Fprintln(w)
}

func eventType(event log.Event) string {
	switch {
	case event.Frame != nil:
		return "Frame"
	case event.Line != nil:
		return "Line"
	case event.Probe != nil:
		return "Probe"
	case event.Diagnostic != nil:
		return "Diagnostic"
	case event.Error != nil:
		return "Error"
	default:
		return "Unknown"
	}
}

// shortenConnID returns the first 8 characters of the connection ID.
func shortenConnID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}
