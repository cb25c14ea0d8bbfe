package schema

// Access flags for properties.
type Access uint8

const (
	// AccessRead allows reading the property.
	AccessRead Access = 1 << iota

	// AccessWrite allows writing the property.
	AccessWrite

	// AccessReadWrite is the default when an entry has no mode.
	AccessReadWrite = AccessRead | AccessWrite
)

// ParseAccess derives access flags from a mode string. An empty mode means
// read-write; otherwise each of 'r' and 'w' present grants that access and
// other characters are ignored.
func ParseAccess(mode string) Access {
	if mode == "" {
		return AccessReadWrite
	}
	var a Access
	for _, c := range mode {
		switch c {
		case 'r':
			a |= AccessRead
		case 'w':
			a |= AccessWrite
		}
	}
	return a
}

// CanRead returns true if reading is allowed.
func (a Access) CanRead() bool { return a&AccessRead != 0 }

// CanWrite returns true if writing is allowed.
func (a Access) CanWrite() bool { return a&AccessWrite != 0 }

// String returns the access flags in mode notation.
func (a Access) String() string {
	var s string
	if a.CanRead() {
		s += "r"
	}
	if a.CanWrite() {
		s += "w"
	}
	if s == "" {
		return "-"
	}
	return s
}
