// Package inspect provides path-based inspection and mutation of a compiled
// device tree.
//
// The inspect package offers:
//   - Parsing dotted path expressions (e.g., "axis0.controller.config.vel_gain")
//   - Reading and writing properties with text values converted per kind
//   - Formatting trees and values for display
package inspect

import (
	"errors"
	"strings"
)

// Path errors.
var (
	ErrEmptyPath   = errors.New("empty path")
	ErrInvalidPath = errors.New("invalid path format")
)

// Path represents a parsed inspection path.
// Format: [root.]segment{.segment}
type Path struct {
	// Segments are the member names below the root, outermost first.
	Segments []string

	// Raw stores the original input string.
	Raw string
}

// ParsePath parses a dotted path. A leading root segment equal to root is
// dropped, so "odrive.axis0" and "axis0" name the same node. The root alone
// parses to a path with no segments.
func ParsePath(input, root string) (*Path, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, ErrEmptyPath
	}

	parts := strings.Split(input, ".")
	for _, part := range parts {
		if part == "" || strings.ContainsAny(part, " \t/") {
			return nil, ErrInvalidPath
		}
	}
	if root != "" && parts[0] == root {
		parts = parts[1:]
	}
	return &Path{Segments: parts, Raw: input}, nil
}

// IsRoot reports whether the path names the root object.
func (p *Path) IsRoot() bool { return len(p.Segments) == 0 }

// Relative returns the path below the root in dotted form.
func (p *Path) Relative() string { return strings.Join(p.Segments, ".") }

// String returns the path in canonical form.
func (p *Path) String() string {
	if p.IsRoot() {
		return "."
	}
	return p.Relative()
}
