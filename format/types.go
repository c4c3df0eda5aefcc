package format

import "fmt"

// VarType is a variant type tag as stored in the first two bytes of every typed property value.
type VarType uint16

const (
	VTEmpty    VarType = 0x0000 // VTEmpty carries no value.
	VTNull     VarType = 0x0001 // VTNull is an explicit null.
	VTI2       VarType = 0x0002 // VTI2 is a signed 16-bit integer.
	VTI4       VarType = 0x0003 // VTI4 is a signed 32-bit integer.
	VTR4       VarType = 0x0004 // VTR4 is a 32-bit IEEE float.
	VTR8       VarType = 0x0005 // VTR8 is a 64-bit IEEE float.
	VTCY       VarType = 0x0006 // VTCY is a currency value (int64 scaled by 10000).
	VTDate     VarType = 0x0007 // VTDate is an OLE automation date stored as a float64.
	VTBSTR     VarType = 0x0008 // VTBSTR is a length-prefixed codepage string.
	VTError    VarType = 0x000A // VTError is an HRESULT-style 32-bit status code.
	VTBool     VarType = 0x000B // VTBool is a 16-bit VARIANT_BOOL.
	VTVariant  VarType = 0x000C // VTVariant is only valid as a vector element type.
	VTI1       VarType = 0x0010 // VTI1 is a signed 8-bit integer.
	VTUI1      VarType = 0x0011 // VTUI1 is an unsigned 8-bit integer.
	VTUI2      VarType = 0x0012 // VTUI2 is an unsigned 16-bit integer.
	VTUI4      VarType = 0x0013 // VTUI4 is an unsigned 32-bit integer.
	VTI8       VarType = 0x0014 // VTI8 is a signed 64-bit integer.
	VTUI8      VarType = 0x0015 // VTUI8 is an unsigned 64-bit integer.
	VTInt      VarType = 0x0016 // VTInt is a signed 32-bit machine integer.
	VTUint     VarType = 0x0017 // VTUint is an unsigned 32-bit machine integer.
	VTLPSTR    VarType = 0x001E // VTLPSTR is a NUL-terminated string in the section codepage.
	VTLPWSTR   VarType = 0x001F // VTLPWSTR is a NUL-terminated UTF-16LE string.
	VTFiletime VarType = 0x0040 // VTFiletime is a count of 100ns ticks since 1601-01-01 UTC.
	VTBlob     VarType = 0x0041 // VTBlob is a length-prefixed byte array.
	VTCF       VarType = 0x0047 // VTCF is clipboard data: a format tag plus raw bytes.
	VTCLSID    VarType = 0x0048 // VTCLSID is a 16-byte class identifier.

	// VTVector is the modifier bit marking a counted array of the base type.
	VTVector VarType = 0x1000

	typeMask VarType = 0x0FFF
)

var typeNames = map[VarType]string{
	VTEmpty:    "VT_EMPTY",
	VTNull:     "VT_NULL",
	VTI2:       "VT_I2",
	VTI4:       "VT_I4",
	VTR4:       "VT_R4",
	VTR8:       "VT_R8",
	VTCY:       "VT_CY",
	VTDate:     "VT_DATE",
	VTBSTR:     "VT_BSTR",
	VTError:    "VT_ERROR",
	VTBool:     "VT_BOOL",
	VTVariant:  "VT_VARIANT",
	VTI1:       "VT_I1",
	VTUI1:      "VT_UI1",
	VTUI2:      "VT_UI2",
	VTUI4:      "VT_UI4",
	VTI8:       "VT_I8",
	VTUI8:      "VT_UI8",
	VTInt:      "VT_INT",
	VTUint:     "VT_UINT",
	VTLPSTR:    "VT_LPSTR",
	VTLPWSTR:   "VT_LPWSTR",
	VTFiletime: "VT_FILETIME",
	VTBlob:     "VT_BLOB",
	VTCF:       "VT_CF",
	VTCLSID:    "VT_CLSID",
}

// IsVector reports whether the vector modifier bit is set.
func (t VarType) IsVector() bool {
	return t&VTVector != 0
}

// Base returns the type with all modifier bits cleared.
func (t VarType) Base() VarType {
	return t & typeMask
}

// IsKnown reports whether the base type has a name in this package.
// Modifier bits other than VTVector make a type unknown.
func (t VarType) IsKnown() bool {
	if t&^(typeMask|VTVector) != 0 {
		return false
	}
	_, ok := typeNames[t.Base()]

	return ok
}

func (t VarType) String() string {
	name, ok := typeNames[t.Base()]
	if !ok || t&^(typeMask|VTVector) != 0 {
		return fmt.Sprintf("VT_UNKNOWN(0x%04X)", uint16(t))
	}
	if t.IsVector() {
		return "VT_VECTOR|" + name
	}

	return name
}
