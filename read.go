package propset

import (
	"fmt"
	"io"

	"github.com/arloliu/propset/endian"
	"github.com/arloliu/propset/errs"
	"github.com/arloliu/propset/format"
	"github.com/arloliu/propset/section"
	"github.com/arloliu/propset/variant"
)

// Probe checks whether data starts with a property set header and returns it.
// It reports false for streams shorter than HeaderSize, a byte order other than 0xFFFE
// or a format version other than 0 and 1.
func Probe(data []byte) (Header, bool) {
	if len(data) < HeaderSize {
		return Header{}, false
	}

	engine, ok := endian.EngineForMarker(data)
	if !ok {
		return Header{}, false
	}

	h := Header{
		ByteOrder:    endian.ByteOrderMarker,
		Format:       engine.Uint16(data[2:4]),
		OSVersion:    engine.Uint32(data[4:8]),
		SectionCount: engine.Uint32(data[24:28]),
	}
	if h.Format != FormatVersion0 && h.Format != FormatVersion1 {
		return Header{}, false
	}
	h.ClassID, _ = format.ClassIDFromBytes(data[8:24])

	return h, true
}

// IsPropertySetStream reports whether data starts with a property set header.
func IsPropertySetStream(data []byte) bool {
	_, ok := Probe(data)
	return ok
}

// Parse decodes a whole property set stream.
//
// Parameters:
//   - data: the complete stream
//   - opts: logging, tally and strictness settings
//
// Returns:
//   - *PropertySet: the parsed property set
//   - error: errs.ErrNotAPropertySetStream when the header is missing or invalid,
//     errs.ErrCorruptPropertySet when offsets or sizes are inconsistent or there are
//     no sections
func Parse(data []byte, opts ...ReadOption) (*PropertySet, error) {
	cfg, err := variant.NewDecodeConfig(opts...)
	if err != nil {
		return nil, err
	}

	h, ok := Probe(data)
	if !ok {
		return nil, errs.ErrNotAPropertySetStream
	}

	count := int(h.SectionCount)
	if count == 0 {
		return nil, fmt.Errorf("%w: stream declares no sections", errs.ErrCorruptPropertySet)
	}
	if count > (len(data)-HeaderSize)/SectionHeaderSize {
		return nil, fmt.Errorf("%w: %d section headers do not fit in %d bytes", errs.ErrCorruptPropertySet, count, len(data))
	}

	engine := endian.GetLittleEndianEngine()
	ps := &PropertySet{
		format:    h.Format,
		osVersion: h.OSVersion,
		classID:   h.ClassID,
		sections:  make([]*section.Section, 0, count),
	}

	for i := range count {
		at := HeaderSize + i*SectionHeaderSize
		fid, _ := format.ClassIDFromBytes(data[at : at+format.ClassIDSize])
		offset := engine.Uint32(data[at+format.ClassIDSize:])

		sec, err := section.Parse(data, offset, fid, cfg)
		if err != nil {
			return nil, fmt.Errorf("section %d: %w", i, err)
		}
		ps.sections = append(ps.sections, sec)
	}

	if n := cfg.Tally().Total(); n > 0 {
		cfg.Logger().Info("property set contains unsupported variant types", "count", n)
	}

	return ps, nil
}

// Read consumes r to the end and parses the stream. r is not closed.
func Read(r io.Reader, opts ...ReadOption) (*PropertySet, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	return Parse(data, opts...)
}
