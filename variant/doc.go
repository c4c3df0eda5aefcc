// Package variant implements the typed value codec of property set streams.
//
// Every property value on the wire is a variant: a 2-byte type tag (plus 2 bytes of padding,
// written by the section layer) followed by a type-specific payload. This package converts
// payloads to and from a closed set of Go value types.
//
// # Value Types
//
// Each supported family of variant types maps to exactly one Go type:
//
//	VT_EMPTY                         → Empty
//	VT_NULL                          → Null
//	VT_BOOL                          → Bool
//	VT_I1, VT_UI1, VT_I2, VT_UI2,
//	VT_I4, VT_UI4, VT_INT, VT_UINT,
//	VT_ERROR                         → Int (widened to int64)
//	VT_I8, VT_CY                     → Int64
//	VT_UI8                           → Uint64
//	VT_R4, VT_R8, VT_DATE            → Float
//	VT_FILETIME                      → Filetime
//	VT_LPSTR, VT_BSTR, VT_LPWSTR     → String
//	VT_BLOB                          → Blob
//	VT_CF                            → Clipboard
//	VT_CLSID                         → CLSID
//	VT_VECTOR | x                    → Vector (VT_VARIANT elements are Variant)
//	anything else                    → Opaque (decode only)
//
// # Padding
//
// Payloads are padded so that type tag plus payload fill a multiple of 4 bytes. Decoding
// accepts missing padding at the end of the available data; use EqualPadded or Equal to
// compare values whose byte content may differ only in trailing padding.
//
// # Unsupported Types
//
// Decoding an unknown type tag does not fail: the raw bytes are kept as an Opaque value and
// the occurrence is counted in an optional Tally and logged to an optional slog.Logger.
// WithStrictTypes turns this into an ErrUnsupportedVariantType error. Encoding an unknown tag,
// or a value whose Go type does not match its tag, always fails.
package variant
