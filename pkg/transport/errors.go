package transport

import "errors"

// Transport errors. The discovery orchestrator treats all of them as
// recoverable for the candidate they occur on.
var (
	// ErrTimeout indicates fewer bytes than required arrived before the deadline.
	ErrTimeout = errors.New("transport timeout")

	// ErrChannelBroken indicates the stream failed or was closed underneath.
	ErrChannelBroken = errors.New("channel broken")

	// ErrTransportUnavailable indicates the device could not be opened.
	ErrTransportUnavailable = errors.New("transport unavailable")
)
