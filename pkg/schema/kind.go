package schema

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind is the value type of a schema entry.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindFloat64
	KindInt64
	KindBool
	KindUint16
	KindSubtree
)

// ParseKind maps a type tag to a Kind.
func ParseKind(tag string) (Kind, error) {
	switch tag {
	case "float", "float64":
		return KindFloat64, nil
	case "int", "int64":
		return KindInt64, nil
	case "bool":
		return KindBool, nil
	case "uint16":
		return KindUint16, nil
	case "tree":
		return KindSubtree, nil
	default:
		return KindInvalid, fmt.Errorf("%w %q", ErrUnsupportedType, tag)
	}
}

// String returns the canonical type tag.
func (k Kind) String() string {
	switch k {
	case KindFloat64:
		return "float"
	case KindInt64:
		return "int"
	case KindBool:
		return "bool"
	case KindUint16:
		return "uint16"
	case KindSubtree:
		return "tree"
	default:
		return "invalid"
	}
}

// GoType returns the Go type values of this kind must have.
func (k Kind) GoType() string {
	switch k {
	case KindFloat64:
		return "float64"
	case KindInt64:
		return "int64"
	case KindBool:
		return "bool"
	case KindUint16:
		return "uint16"
	default:
		return "none"
	}
}

// IsLeaf returns true for value kinds.
func (k Kind) IsLeaf() bool {
	return k >= KindFloat64 && k <= KindUint16
}

// ParseValue parses device or user text into a value of the kind's Go type.
// Surrounding whitespace is ignored.
func (k Kind) ParseValue(text string) (any, error) {
	text = strings.TrimSpace(text)
	var (
		v   any
		err error
	)
	switch k {
	case KindFloat64:
		v, err = strconv.ParseFloat(text, 64)
	case KindInt64:
		v, err = strconv.ParseInt(text, 10, 64)
	case KindBool:
		v, err = strconv.ParseBool(text)
	case KindUint16:
		var u uint64
		u, err = strconv.ParseUint(text, 10, 16)
		v = uint16(u)
	default:
		return nil, fmt.Errorf("%w: %s has no values", ErrValueType, k)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %q as %s: %v", ErrValueSyntax, text, k, err)
	}
	return v, nil
}

// FormatValue renders v for the line protocol. v must have exactly the
// kind's Go type.
func (k Kind) FormatValue(v any) (string, error) {
	switch k {
	case KindFloat64:
		if f, ok := v.(float64); ok {
			return strconv.FormatFloat(f, 'g', -1, 64), nil
		}
	case KindInt64:
		if i, ok := v.(int64); ok {
			return strconv.FormatInt(i, 10), nil
		}
	case KindBool:
		if b, ok := v.(bool); ok {
			if b {
				return "1", nil
			}
			return "0", nil
		}
	case KindUint16:
		if u, ok := v.(uint16); ok {
			return strconv.FormatUint(uint64(u), 10), nil
		}
	}
	return "", fmt.Errorf("%w: %T for %s, want %s", ErrValueType, v, k, k.GoType())
}
