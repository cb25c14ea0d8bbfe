package model

import (
	"errors"
	"fmt"
)

// Property access errors.
var (
	ErrTypeMismatch      = errors.New("type mismatch")
	ErrMalformedResponse = errors.New("malformed response")
	ErrNotReadable       = errors.New("property is not readable")
	ErrNotWritable       = errors.New("property is not writable")
)

// ErrNotFound indicates a path that does not resolve.
var ErrNotFound = errors.New("not found")

// PropertyError records a failed property operation.
type PropertyError struct {
	Path string // dotted path including the root namespace
	Op   string // "get" or "set"
	Err  error
}

func (e *PropertyError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PropertyError) Unwrap() error { return e.Err }
