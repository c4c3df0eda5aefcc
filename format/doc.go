// Package format defines the primitive identifiers of the property set wire format:
// variant type tags, class ids and codepage numbers.
package format
