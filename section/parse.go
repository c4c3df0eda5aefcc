package section

import (
	"fmt"
	"slices"

	"github.com/arloliu/propset/errs"
	"github.com/arloliu/propset/format"
	"github.com/arloliu/propset/variant"
)

type tableEntry struct {
	id     uint32
	offset int
	length int
}

// Parse decodes the section body that starts at offset within buf.
//
// The codepage property is located and decoded before any other value so that strings
// and the dictionary decode with it regardless of table order. The length of each
// property is the distance to the next higher offset in the table, or to the end of the
// section for the last one.
//
// Known malformations are tolerated: a declared size that is not a multiple of 4, a
// declared size that runs up to 3 bytes past the end of buf, and a codepage property
// whose payload is too short (the codepage is then unset and the raw bytes are kept as
// an Opaque value).
//
// Parameters:
//   - buf: the whole property set stream
//   - offset: byte offset of the section body within buf
//   - formatID: the format id from the stream header
//   - cfg: decode settings; nil uses the defaults
//
// Returns:
//   - *Section: the parsed section
//   - error: errs.ErrCorruptPropertySet when sizes or offsets fall outside buf
func Parse(buf []byte, offset uint32, formatID format.ClassID, cfg *variant.DecodeConfig) (*Section, error) {
	if cfg == nil {
		cfg, _ = variant.NewDecodeConfig()
	}

	start := int(offset)
	if start > len(buf)-HeaderSize {
		return nil, fmt.Errorf("%w: section offset %d beyond stream of %d bytes", errs.ErrCorruptPropertySet, start, len(buf))
	}

	size := int(engine.Uint32(buf[start:]))
	count := int(engine.Uint32(buf[start+4:]))
	if size < HeaderSize {
		return nil, fmt.Errorf("%w: section size %d smaller than its header", errs.ErrCorruptPropertySet, size)
	}

	end := start + size
	if end > len(buf) {
		if end-len(buf) > 3 {
			return nil, fmt.Errorf("%w: section of %d bytes at %d overruns stream of %d bytes", errs.ErrCorruptPropertySet, size, start, len(buf))
		}
		cfg.Logger().Debug("clamping section padding overrun", "offset", start, "size", size, "overrun", end-len(buf))
		end = len(buf)
	}
	body := buf[start:end]

	if count > (len(body)-HeaderSize)/EntrySize {
		return nil, fmt.Errorf("%w: section declares %d properties in %d bytes", errs.ErrCorruptPropertySet, count, len(body))
	}

	entries, err := readTable(body, count)
	if err != nil {
		return nil, err
	}

	s := New()
	s.SetFormatID(formatID)

	cp := format.CodepageUnset
	var cpProp *Property
	for _, e := range entries {
		if e.id == PIDCodepage {
			p, c, err := parseCodepage(body[e.offset:e.offset+e.length], cfg)
			if err != nil {
				return nil, err
			}
			cp, cpProp = c, &p
		}
	}

	for _, e := range entries {
		data := body[e.offset : e.offset+e.length]
		switch e.id {
		case PIDDictionary:
			d, err := parseDictionary(data, cp)
			if err != nil {
				return nil, err
			}
			s.dictionary = d
		case PIDCodepage:
			s.put(*cpProp)
		default:
			if len(data) < TypeHeaderSize {
				return nil, fmt.Errorf("%w: property %d has %d bytes, no room for a type header", errs.ErrCorruptPropertySet, e.id, len(data))
			}
			vt := format.VarType(engine.Uint16(data))
			v, _, err := cfg.Decode(data[TypeHeaderSize:], vt, cp)
			if err != nil {
				return nil, fmt.Errorf("property %d: %w", e.id, err)
			}
			s.put(Property{ID: e.id, Type: vt, Value: v})
		}
	}

	cfg.Logger().Debug("parsed section", "format_id", formatID.String(), "size", size, "properties", count, "codepage", cp)

	return s, nil
}

func readTable(body []byte, count int) ([]tableEntry, error) {
	entries := make([]tableEntry, count)
	offsets := make([]int, 0, count+1)
	for i := range entries {
		at := HeaderSize + i*EntrySize
		id := engine.Uint32(body[at:])
		off := int(engine.Uint32(body[at+4:]))
		if off < HeaderSize || off > len(body) {
			return nil, fmt.Errorf("%w: property %d offset %d outside section of %d bytes", errs.ErrCorruptPropertySet, id, off, len(body))
		}
		entries[i] = tableEntry{id: id, offset: off}
		offsets = append(offsets, off)
	}

	offsets = append(offsets, len(body))
	slices.Sort(offsets)
	offsets = slices.Compact(offsets)

	for i := range entries {
		j, _ := slices.BinarySearch(offsets, entries[i].offset)
		next := len(body)
		if j+1 < len(offsets) {
			next = offsets[j+1]
		}
		entries[i].length = next - entries[i].offset
	}

	return entries, nil
}

// parseCodepage decodes the codepage property. A payload too short for a VT_I2 yields
// an Opaque property and an unset codepage.
func parseCodepage(data []byte, cfg *variant.DecodeConfig) (Property, int, error) {
	if len(data) < TypeHeaderSize {
		cfg.Logger().Debug("codepage property without type header", "size", len(data))
		return Property{ID: PIDCodepage, Type: format.VTI2, Value: variant.Opaque{Type: format.VTI2, Data: []byte{}}}, format.CodepageUnset, nil
	}

	vt := format.VarType(engine.Uint16(data))
	payload := data[TypeHeaderSize:]
	if isCodepageType(vt) && len(payload) < 2 {
		cfg.Logger().Debug("codepage property payload too short", "type", vt.String(), "size", len(payload))
		raw := make([]byte, len(payload))
		copy(raw, payload)

		return Property{ID: PIDCodepage, Type: vt, Value: variant.Opaque{Type: vt, Data: raw}}, format.CodepageUnset, nil
	}

	v, _, err := cfg.Decode(payload, vt, format.CodepageUnset)
	if err != nil {
		return Property{}, 0, fmt.Errorf("codepage property: %w", err)
	}

	p := Property{ID: PIDCodepage, Type: vt, Value: v}
	n, ok := v.(variant.Int)
	if !isCodepageType(vt) || !ok {
		return p, format.CodepageUnset, nil
	}

	return p, int(uint16(n)), nil //nolint:gosec
}
