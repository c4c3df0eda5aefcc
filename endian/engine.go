// Package endian provides byte order utilities for property set encoding and decoding.
//
// This package combines encoding/binary's ByteOrder and AppendByteOrder interfaces into a
// single EndianEngine interface, so codecs can both read fixed-offset fields and append
// fields to a growing buffer through one value.
//
// Property set streams always store multi-byte integers in little-endian order. The stream
// announces this with a 2-byte byte-order marker (0xFFFE stored as FE FF); the helpers in
// this package map that marker to an engine.
//
// # Basic Usage
//
//	engine := endian.GetLittleEndianEngine()
//	buf = engine.AppendUint32(buf, sectionCount)
//
// # Thread Safety
//
// All functions in this package are safe for concurrent use. The returned EndianEngine
// instances are immutable and stateless.
package endian

import (
	"encoding/binary"
)

// ByteOrderMarker is the value of the byte order field of every property set stream.
const ByteOrderMarker uint16 = 0xFFFE

// MarkerSize is the size of the byte order field in bytes.
const MarkerSize = 2

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
//
// This interface is satisfied by binary.LittleEndian from the standard library.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// EngineForMarker returns the engine announced by the byte order field at the start of data.
//
// Only the little-endian marker (FE FF) is defined for property sets. A big-endian marker,
// any other value or fewer than MarkerSize bytes report false.
func EngineForMarker(data []byte) (EndianEngine, bool) {
	if len(data) < MarkerSize {
		return nil, false
	}

	if binary.LittleEndian.Uint16(data) != ByteOrderMarker {
		return nil, false
	}

	return binary.LittleEndian, true
}

// AppendMarker appends the byte order field to dst.
func AppendMarker(dst []byte) []byte {
	return binary.LittleEndian.AppendUint16(dst, ByteOrderMarker)
}
