// Package channel defines the device channel consumed by the property layer
// and the discovery orchestrator, and ships PacketChannel, a channel over a
// framed CBOR packet protocol.
//
// A Channel carries two things at once: a byte stream used by the
// line protocol (`r <id>\n` / `w <id> <value>\n`) and bulk reads of numbered
// remote endpoints. Endpoint 0 holds the device schema.
//
// Channels are not safe for concurrent use. Properties compiled from one
// device serialize their transactions with a shared lock; callers that use
// a Channel directly must serialize themselves.
package channel
