package variant

import (
	"fmt"
	"time"

	"github.com/arloliu/propset/format"
)

// Value is a decoded variant payload. The set of implementations is closed.
type Value interface {
	isValue()
}

type (
	// Empty is the value of VT_EMPTY.
	Empty struct{}
	// Null is the value of VT_NULL.
	Null struct{}
	// Bool is the value of VT_BOOL.
	Bool bool
	// Int holds every integer type of 32 bits or less, widened to int64.
	Int int64
	// Int64 is the value of VT_I8 and VT_CY.
	Int64 int64
	// Uint64 is the value of VT_UI8.
	Uint64 uint64
	// Float is the value of VT_R4, VT_R8 and VT_DATE.
	Float float64
	// Filetime is a count of 100-nanosecond ticks since 1601-01-01T00:00:00Z.
	Filetime uint64
	// String is the value of VT_LPSTR, VT_BSTR and VT_LPWSTR, without its terminator.
	String string
	// Blob is the value of VT_BLOB.
	Blob []byte
	// CLSID is the value of VT_CLSID.
	CLSID format.ClassID
)

// Clipboard is the value of VT_CF: a clipboard format tag and the raw clipboard payload.
type Clipboard struct {
	Format int32
	Data   []byte
}

// Vector is the value of VT_VECTOR|Elem.
// For VT_VECTOR|VT_VARIANT the items are Variant values.
type Vector struct {
	Elem  format.VarType
	Items []Value
}

// Variant is one self-typed element of a VT_VECTOR|VT_VARIANT.
type Variant struct {
	Type  format.VarType
	Value Value
}

// Opaque keeps the raw payload of a type this package cannot decode.
type Opaque struct {
	Type format.VarType
	Data []byte
}

func (Empty) isValue()     {}
func (Null) isValue()      {}
func (Bool) isValue()      {}
func (Int) isValue()       {}
func (Int64) isValue()     {}
func (Uint64) isValue()    {}
func (Float) isValue()     {}
func (Filetime) isValue()  {}
func (String) isValue()    {}
func (Blob) isValue()      {}
func (CLSID) isValue()     {}
func (Clipboard) isValue() {}
func (Vector) isValue()    {}
func (Variant) isValue()   {}
func (Opaque) isValue()    {}

func (s String) String() string { return string(s) }

func (c CLSID) String() string { return format.ClassID(c).String() }

func (f Filetime) String() string { return f.Time().Format(time.RFC3339Nano) }

func (o Opaque) String() string {
	return fmt.Sprintf("%s[%d bytes]", o.Type, len(o.Data))
}

// Interface returns the natural Go representation of v: bool, int64, uint64, float64,
// time.Time, string, []byte, format.ClassID, or v itself for structured values.
func Interface(v Value) any {
	switch x := v.(type) {
	case nil, Empty, Null:
		return nil
	case Bool:
		return bool(x)
	case Int:
		return int64(x)
	case Int64:
		return int64(x)
	case Uint64:
		return uint64(x)
	case Float:
		return float64(x)
	case Filetime:
		return x.Time()
	case String:
		return string(x)
	case Blob:
		return []byte(x)
	case CLSID:
		return format.ClassID(x)
	default:
		return v
	}
}
