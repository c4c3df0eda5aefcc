package propset

import (
	"fmt"
	"io"

	"github.com/arloliu/propset/endian"
	"github.com/arloliu/propset/errs"
	"github.com/arloliu/propset/internal/pool"
	"github.com/arloliu/propset/variant"
)

// Write serializes the property set to w with a single Write call. Every section is
// validated and encoded before any byte reaches w. w is not closed.
//
// Returns:
//   - int64: bytes written
//   - error: errs.ErrMissingFormatID when a section has no format id, and any encode
//     error of a section; the write error of w otherwise
func (ps *PropertySet) Write(w io.Writer, opts ...WriteOption) (int64, error) {
	bb := pool.GetStreamBuffer()
	defer pool.PutStreamBuffer(bb)

	if err := ps.encode(bb, opts); err != nil {
		return 0, err
	}

	return bb.WriteTo(w)
}

// Bytes returns the serialized property set.
func (ps *PropertySet) Bytes(opts ...WriteOption) ([]byte, error) {
	bb := pool.GetStreamBuffer()
	defer pool.PutStreamBuffer(bb)

	if err := ps.encode(bb, opts); err != nil {
		return nil, err
	}

	return bb.Clone(), nil
}

// encode writes the header and section table into bb, then each section body.
// Bodies are built in a pooled section buffer so bb only ever receives whole sections.
// On error bb is left empty.
func (ps *PropertySet) encode(bb *pool.ByteBuffer, opts []WriteOption) error {
	cfg, err := variant.NewEncodeConfig(opts...)
	if err != nil {
		return err
	}

	for i, sec := range ps.sections {
		if _, ok := sec.FormatID(); !ok {
			return fmt.Errorf("section %d: %w", i, errs.ErrMissingFormatID)
		}
	}

	engine := endian.GetLittleEndianEngine()
	bb.Reset()
	bb.B = endian.AppendMarker(bb.B)
	bb.B = engine.AppendUint16(bb.B, ps.format)
	bb.B = engine.AppendUint32(bb.B, ps.osVersion)
	bb.B = append(bb.B, ps.classID[:]...)
	bb.B = engine.AppendUint32(bb.B, uint32(len(ps.sections))) //nolint:gosec

	table := bb.Len()
	bb.B = append(bb.B, make([]byte, len(ps.sections)*SectionHeaderSize)...)

	sb := pool.GetSectionBuffer()
	defer pool.PutSectionBuffer(sb)

	for i, sec := range ps.sections {
		sb.Reset()
		if sb.B, err = sec.AppendTo(sb.B, cfg); err != nil {
			bb.Reset()
			return fmt.Errorf("section %d: %w", i, err)
		}

		fid, _ := sec.FormatID()
		at := table + i*SectionHeaderSize
		copy(bb.B[at:], fid[:])
		engine.PutUint32(bb.B[at+16:], uint32(bb.Len())) //nolint:gosec
		_, _ = bb.Write(sb.B)
	}

	return nil
}
