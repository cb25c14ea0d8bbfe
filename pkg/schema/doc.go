// Package schema decodes the self-describing schema a device serves on
// endpoint 0.
//
// A schema is a JSON array of entries:
//
//	[
//	  {"name": "vbus_voltage", "type": "float", "id": 1, "mode": "r"},
//	  {"name": "axis0", "type": "tree", "content": [
//	    {"name": "config", "type": "tree", "content": [
//	      {"name": "gain", "type": "float", "id": 5}
//	    ]}
//	  ]}
//	]
//
// Decoding is lenient at the entry level: an entry with wrong field types
// still decodes, and Entry.Validate reports why it cannot be compiled. Only a
// blob that is not a JSON array fails as a whole, with ErrMalformed.
//
// Supported type tags are float, int, bool, uint16 and tree. The Go
// spellings float64 and int64 are accepted as aliases.
package schema
