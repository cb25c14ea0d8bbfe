// Package wire defines the CBOR packet format used by the packet channel.
//
// Every frame on a packet channel carries exactly one Packet, encoded as a
// CBOR map with integer keys:
//
//	{
//	  1: seq,       // uint32, echoed by EndpointData replies
//	  2: kind,      // uint8: 0=Stream, 1=EndpointRead, 2=EndpointData
//	  3: endpoint,  // uint16, endpoint reads only
//	  4: offset,    // uint32, endpoint reads only
//	  5: data       // bytes
//	}
//
// # Packet Kinds
//
//   - Stream: line-protocol bytes, in either direction
//   - EndpointRead: host asks for the bytes of an endpoint starting at Offset
//   - EndpointData: device answers an EndpointRead; an empty chunk ends the buffer
//
// Endpoint 0 holds the JSON schema of the device.
package wire
