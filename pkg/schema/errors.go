package schema

import "errors"

// ErrMalformed indicates the schema blob is not a JSON (or YAML) array.
var ErrMalformed = errors.New("malformed schema")

// Entry-level errors, reported by Entry.Validate.
var (
	ErrMalformedEntry  = errors.New("malformed entry")
	ErrMissingName     = errors.New("entry has no name")
	ErrMissingType     = errors.New("entry has no type")
	ErrUnsupportedType = errors.New("unsupported type")
	ErrMissingID       = errors.New("entry has no id")
	ErrEmptySubtree    = errors.New("subtree has no content")
)

// Value errors.
var (
	// ErrValueType indicates a Go value of the wrong type for a kind.
	ErrValueType = errors.New("wrong value type")

	// ErrValueSyntax indicates text that does not parse as the kind.
	ErrValueSyntax = errors.New("invalid value syntax")
)

// ErrUnsupportedFormat indicates a schema file extension LoadFile cannot read.
var ErrUnsupportedFormat = errors.New("unsupported schema file format")
