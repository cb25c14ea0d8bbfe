// Package log provides structured diagnostic and protocol event logging.
//
// The core packages never write to a global logger. Instead every component
// that can report something accepts a Logger and records Events on it. The
// default is NoopLogger, which discards everything.
//
// # Basic Usage
//
//	// For development: log to console via slog
//	finder := discovery.NewFinder(discovery.Config{Logger: log.NewSlogAdapter(slog.Default())})
//
//	// For later analysis: write a binary capture
//	fl, _ := log.NewFileLogger("/tmp/odrive.olog")
//
//	// Both: use MultiLogger
//	logger := log.NewMultiLogger(log.NewSlogAdapter(slog.Default()), fl)
//
// # Event Types
//
// Events are captured at multiple layers:
//   - Transport: raw frame bytes (FrameEvent)
//   - Channel/Property: line protocol requests and responses (LineEvent)
//   - Schema: entries dropped by the compiler (DiagnosticEvent)
//   - Discovery: per-candidate probe outcomes (ProbeEvent)
//
// Errors at any layer have a dedicated payload.
//
// # File Format
//
// Log files use CBOR encoding with .olog extension. The odrive-log tool
// views and summarises them.
package log
