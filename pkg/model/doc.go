// Package model compiles a device schema into a navigable tree of remotely
// backed properties.
//
// # Tree
//
// Compile turns schema entries into an *Object whose children are either
// nested *Object subtrees or *Property leaves:
//
//	odrive
//	├── vbus_voltage   float  r
//	└── axis0
//	    └── config
//	        └── gain   float  rw
//
// Children are found by name (Object.Lookup) or by dotted path
// (Object.Resolve("axis0.config.gain")).
//
// # Properties
//
// Every Get writes "r <id>\n" and reads one newline-terminated response;
// every Set writes "w <id> <value>\n" and reads nothing. Values are never
// cached. Set requires exactly the Go type the property declares:
//
//	float  -> float64
//	int    -> int64
//	bool   -> bool
//	uint16 -> uint16
//
// All properties compiled from one channel share one lock, held for the
// whole transaction, so concurrent callers never interleave requests.
//
// # Diagnostics
//
// Malformed entries never fail compilation. Each one is skipped and reported
// to the configured log.Logger as a schema diagnostic naming the namespace
// and entry.
package model
