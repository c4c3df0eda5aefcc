package section

import (
	"fmt"

	"github.com/arloliu/propset/errs"
	"github.com/arloliu/propset/format"
	"github.com/arloliu/propset/variant"
)

// AppendTo appends the serialized section body to dst. Offsets are recomputed and the
// output length is a multiple of 4.
//
// Nothing is appended unless the whole section encodes: on error dst is returned with
// its original length.
//
// Returns:
//   - []byte: dst extended with the section body
//   - error: errs.ErrMissingFormatID without a format id, errs.ErrIllegalPropertySetData
//     for a malformed codepage property or a dictionary in an unsupported codepage,
//     and any error from the variant encoder
func (s *Section) AppendTo(dst []byte, cfg *variant.EncodeConfig) ([]byte, error) {
	if cfg == nil {
		cfg, _ = variant.NewEncodeConfig()
	}
	if !s.hasFormat {
		return dst, errs.ErrMissingFormatID
	}
	if err := s.checkCodepage(cfg); err != nil {
		return dst, err
	}

	cp := s.Codepage()
	count := len(s.props)
	if s.dictionary != nil {
		count++
	}

	start := len(dst)
	dst = append(dst, make([]byte, HeaderSize+count*EntrySize)...)
	ids := make([]uint32, 0, count)
	offsets := make([]int, 0, count)

	var err error
	if s.dictionary != nil {
		dcp := cp
		if dcp == format.CodepageUnset {
			dcp = format.CodepageDefault
		}
		ids = append(ids, PIDDictionary)
		offsets = append(offsets, len(dst)-start)
		if dst, err = appendDictionary(dst, s.dictionary, dcp); err != nil {
			return dst[:start], err
		}
	}

	for _, p := range s.props {
		ids = append(ids, p.ID)
		offsets = append(offsets, len(dst)-start)
		dst = engine.AppendUint16(dst, uint16(p.Type))
		dst = engine.AppendUint16(dst, 0)
		if dst, err = cfg.AppendEncode(dst, p.Type, p.Value, cp); err != nil {
			return dst[:start], fmt.Errorf("property %d: %w", p.ID, err)
		}
	}

	body := dst[start:]
	engine.PutUint32(body[0:], uint32(len(body))) //nolint:gosec
	engine.PutUint32(body[4:], uint32(count))     //nolint:gosec
	for i := range ids {
		at := HeaderSize + i*EntrySize
		engine.PutUint32(body[at:], ids[i])
		engine.PutUint32(body[at+4:], uint32(offsets[i])) //nolint:gosec
	}

	return dst, nil
}

func (s *Section) checkCodepage(cfg *variant.EncodeConfig) error {
	p, ok := s.Property(PIDCodepage)
	if !ok {
		return nil
	}
	if _, opaque := p.Value.(variant.Opaque); opaque && cfg.Passthrough() {
		return nil
	}
	if _, isInt := p.Value.(variant.Int); !isInt || !isCodepageType(p.Type) {
		return fmt.Errorf("%w: codepage property holds %s", errs.ErrIllegalPropertySetData, p.Type)
	}

	return nil
}
