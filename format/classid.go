package format

import (
	"fmt"
	"strings"

	"github.com/Microsoft/go-winio/pkg/guid"

	"github.com/arloliu/propset/errs"
)

// ClassIDSize is the size of a class id or format id in bytes.
const ClassIDSize = 16

// ClassID is a 16-byte GUID in its on-disk layout: the first three fields are
// little-endian, the last eight bytes are stored as-is.
type ClassID [ClassIDSize]byte

// ParseClassID parses the registry form "{F29F85E0-4FF9-1068-AB91-08002B27B3D9}".
// Braces are optional.
func ParseClassID(s string) (ClassID, error) {
	g, err := guid.FromString(strings.TrimSuffix(strings.TrimPrefix(s, "{"), "}"))
	if err != nil {
		return ClassID{}, fmt.Errorf("%w: %q: %v", errs.ErrInvalidClassID, s, err)
	}

	return ClassID(g.ToWindowsArray()), nil
}

// MustParseClassID is like ParseClassID but panics on malformed input.
// It is intended for package-level variables.
func MustParseClassID(s string) ClassID {
	id, err := ParseClassID(s)
	if err != nil {
		panic(err)
	}

	return id
}

// ClassIDFromBytes copies the first ClassIDSize bytes of b.
func ClassIDFromBytes(b []byte) (ClassID, bool) {
	var id ClassID
	if len(b) < ClassIDSize {
		return id, false
	}
	copy(id[:], b)

	return id, true
}

// IsZero reports whether all bytes are zero.
func (c ClassID) IsZero() bool {
	return c == ClassID{}
}

// Inverted returns the id with the byte order of its first three fields swapped.
// Some writers store GUIDs big-endian; matching against the inverted form accepts both.
func (c ClassID) Inverted() ClassID {
	var out ClassID
	out[0], out[1], out[2], out[3] = c[3], c[2], c[1], c[0]
	out[4], out[5] = c[5], c[4]
	out[6], out[7] = c[7], c[6]
	copy(out[8:], c[8:])

	return out
}

// Matches reports whether c equals other in either byte order.
func (c ClassID) Matches(other ClassID) bool {
	return c == other || c == other.Inverted()
}

// String returns the upper-case registry form with braces.
func (c ClassID) String() string {
	return "{" + strings.ToUpper(guid.FromWindowsArray(c).String()) + "}"
}
