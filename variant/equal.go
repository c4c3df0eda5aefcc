package variant

import (
	"bytes"
	"math"

	"github.com/arloliu/propset/internal/pool"
)

// Pad4 returns b extended with zero bytes to a multiple of 4. b itself is never modified.
func Pad4(b []byte) []byte {
	pad := pool.PadLen(len(b))
	if pad == 0 {
		return b
	}

	out := make([]byte, len(b), len(b)+pad)
	copy(out, b)

	return append(out, make([]byte, pad)...)
}

// EqualPadded reports whether a and b are equal once both are padded to a multiple of 4.
func EqualPadded(a, b []byte) bool {
	return bytes.Equal(Pad4(a), Pad4(b))
}

// Equal reports whether two values are semantically equal. Byte payloads compare after
// padding to 4 and floats compare by bit pattern, so NaN equals an identical NaN.
func Equal(a, b Value) bool {
	switch x := a.(type) {
	case Blob:
		y, ok := b.(Blob)
		return ok && EqualPadded(x, y)
	case Clipboard:
		y, ok := b.(Clipboard)
		return ok && x.Format == y.Format && EqualPadded(x.Data, y.Data)
	case Opaque:
		y, ok := b.(Opaque)
		return ok && x.Type == y.Type && EqualPadded(x.Data, y.Data)
	case Float:
		y, ok := b.(Float)
		return ok && math.Float64bits(float64(x)) == math.Float64bits(float64(y))
	case Variant:
		y, ok := b.(Variant)
		return ok && x.Type == y.Type && Equal(x.Value, y.Value)
	case Vector:
		y, ok := b.(Vector)
		if !ok || x.Elem != y.Elem || len(x.Items) != len(y.Items) {
			return false
		}
		for i := range x.Items {
			if !Equal(x.Items[i], y.Items[i]) {
				return false
			}
		}
		return true
	case nil:
		return b == nil
	default:
		return a == b
	}
}
