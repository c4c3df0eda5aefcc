// Package errs defines the sentinel errors returned by propset and its sub-packages.
//
// Errors are wrapped with additional context at the call site, so callers should
// compare with errors.Is rather than ==.
package errs

import "errors"

var (
	// ErrNotAPropertySetStream indicates that the stream does not start with a property set header.
	// It is a "wrong format" signal, not a corruption signal: callers may fall back to treating
	// the stream as opaque data.
	ErrNotAPropertySetStream = errors.New("not a property set stream")

	// ErrCorruptPropertySet indicates that the stream looks like a property set but its
	// offsets or lengths are inconsistent with the data.
	ErrCorruptPropertySet = errors.New("corrupt property set")

	// ErrMissingFormatID is returned when a section without a format identifier is serialized.
	ErrMissingFormatID = errors.New("section has no format identifier")

	// ErrUnsupportedVariantType is returned when a value cannot be encoded with its variant type,
	// or when an unknown type is decoded in strict mode.
	ErrUnsupportedVariantType = errors.New("unsupported variant type")

	// ErrInvalidCustomPropertyValueKind is returned when a custom property value has a Go type
	// with no variant mapping.
	ErrInvalidCustomPropertyValueKind = errors.New("invalid custom property value kind")

	// ErrIllegalPropertySetData is returned when section content cannot be written consistently,
	// e.g. a dictionary in a codepage with no known encoding.
	ErrIllegalPropertySetData = errors.New("illegal property set data")

	// ErrUnsupportedCodepage is returned when a codepage has no known text encoding.
	ErrUnsupportedCodepage = errors.New("unsupported codepage")

	// ErrNoSections is returned when a property set would be left without sections.
	ErrNoSections = errors.New("property set must contain at least one section")

	// ErrIDSpaceExhausted is returned when no free custom property id is left in a section.
	ErrIDSpaceExhausted = errors.New("no free property id")

	// ErrInvalidClassID is returned when a class id string cannot be parsed.
	ErrInvalidClassID = errors.New("invalid class id")
)
