package variant

import (
	"errors"
	"fmt"
	"math"

	"github.com/arloliu/propset/endian"
	"github.com/arloliu/propset/errs"
	"github.com/arloliu/propset/format"
	"github.com/arloliu/propset/internal/codepage"
	"github.com/arloliu/propset/internal/pool"
)

var engine = endian.GetLittleEndianEngine()

// errUnsupportedElement aborts a vector decode so the whole value falls back to Opaque.
var errUnsupportedElement = errors.New("unsupported vector element")

var vectorElems = map[format.VarType]bool{
	format.VTI1: true, format.VTUI1: true, format.VTI2: true, format.VTUI2: true,
	format.VTI4: true, format.VTUI4: true, format.VTInt: true, format.VTUint: true,
	format.VTI8: true, format.VTUI8: true, format.VTR4: true, format.VTR8: true,
	format.VTCY: true, format.VTDate: true, format.VTBSTR: true, format.VTError: true,
	format.VTBool: true, format.VTVariant: true, format.VTLPSTR: true, format.VTLPWSTR: true,
	format.VTFiletime: true, format.VTCF: true, format.VTCLSID: true,
}

// Supported reports whether vt can be decoded and encoded by this package.
func Supported(vt format.VarType) bool {
	if !vt.IsKnown() {
		return false
	}
	if vt.IsVector() {
		return vectorElems[vt.Base()]
	}

	return vt != format.VTVariant
}

// Decode decodes the payload of a value of type vt from data, which starts right after
// the 4-byte type header. It returns the value and the number of bytes consumed, padding
// included as far as data reaches.
//
// Parameters:
//   - data: bytes following the type header; trailing bytes beyond the value are ignored
//   - vt: the variant type tag read from the header
//   - codepage: the owning section's codepage, format.CodepageUnset when it has none
//   - opts: logging, tally and strictness settings for unsupported types
//
// Returns:
//   - Value: the decoded value, Opaque when vt is unsupported
//   - int: bytes consumed
//   - error: ErrCorruptPropertySet when data is too short for the declared sizes,
//     ErrUnsupportedVariantType for unknown types in strict mode
func Decode(data []byte, vt format.VarType, codepage int, opts ...DecodeOption) (Value, int, error) {
	cfg, err := NewDecodeConfig(opts...)
	if err != nil {
		return nil, 0, err
	}

	return cfg.Decode(data, vt, codepage)
}

// Decode is the configured form of the package-level Decode.
func (c *DecodeConfig) Decode(data []byte, vt format.VarType, codepage int) (Value, int, error) {
	if !Supported(vt) {
		return c.unsupported(data, vt)
	}

	v, n, err := decodeValue(data, vt, codepage)
	if errors.Is(err, errUnsupportedElement) {
		return c.unsupported(data, vt)
	}
	if err != nil {
		return nil, 0, err
	}

	return v, min(n+pool.PadLen(n), len(data)), nil
}

func (c *DecodeConfig) unsupported(data []byte, vt format.VarType) (Value, int, error) {
	if c.Strict() {
		return nil, 0, fmt.Errorf("%w: %s", errs.ErrUnsupportedVariantType, vt)
	}

	c.Tally().Add(vt)
	c.Logger().Warn("unsupported variant type kept as opaque bytes", "type", vt.String(), "size", len(data))

	return Opaque{Type: vt, Data: clone(data)}, len(data), nil
}

func decodeValue(data []byte, vt format.VarType, cp int) (Value, int, error) {
	if vt.IsVector() {
		return decodeVector(data, vt.Base(), cp)
	}

	return decodeScalar(data, vt, cp)
}

func decodeScalar(data []byte, vt format.VarType, cp int) (Value, int, error) {
	switch vt {
	case format.VTEmpty:
		return Empty{}, 0, nil
	case format.VTNull:
		return Null{}, 0, nil
	case format.VTI1:
		if err := need(data, 1, vt); err != nil {
			return nil, 0, err
		}
		return Int(int8(data[0])), 1, nil
	case format.VTUI1:
		if err := need(data, 1, vt); err != nil {
			return nil, 0, err
		}
		return Int(data[0]), 1, nil
	case format.VTI2:
		if err := need(data, 2, vt); err != nil {
			return nil, 0, err
		}
		return Int(int16(engine.Uint16(data))), 2, nil //nolint:gosec
	case format.VTUI2:
		if err := need(data, 2, vt); err != nil {
			return nil, 0, err
		}
		return Int(engine.Uint16(data)), 2, nil
	case format.VTBool:
		if err := need(data, 2, vt); err != nil {
			return nil, 0, err
		}
		return Bool(engine.Uint16(data) != 0), 2, nil
	case format.VTI4, format.VTInt:
		if err := need(data, 4, vt); err != nil {
			return nil, 0, err
		}
		return Int(int32(engine.Uint32(data))), 4, nil //nolint:gosec
	case format.VTUI4, format.VTUint, format.VTError:
		if err := need(data, 4, vt); err != nil {
			return nil, 0, err
		}
		return Int(engine.Uint32(data)), 4, nil
	case format.VTR4:
		if err := need(data, 4, vt); err != nil {
			return nil, 0, err
		}
		return Float(math.Float32frombits(engine.Uint32(data))), 4, nil
	case format.VTR8, format.VTDate:
		if err := need(data, 8, vt); err != nil {
			return nil, 0, err
		}
		return Float(math.Float64frombits(engine.Uint64(data))), 8, nil
	case format.VTI8, format.VTCY:
		if err := need(data, 8, vt); err != nil {
			return nil, 0, err
		}
		return Int64(int64(engine.Uint64(data))), 8, nil //nolint:gosec
	case format.VTUI8:
		if err := need(data, 8, vt); err != nil {
			return nil, 0, err
		}
		return Uint64(engine.Uint64(data)), 8, nil
	case format.VTFiletime:
		if err := need(data, 8, vt); err != nil {
			return nil, 0, err
		}
		low := uint64(engine.Uint32(data[0:4]))
		high := uint64(engine.Uint32(data[4:8]))
		return Filetime(high<<32 | low), 8, nil
	case format.VTLPSTR, format.VTBSTR:
		return decodeCodepageString(data, vt, cp)
	case format.VTLPWSTR:
		return decodeWideString(data, vt)
	case format.VTBlob:
		raw, n, err := sizedBytes(data, vt)
		if err != nil {
			return nil, 0, err
		}
		return Blob(clone(raw)), n, nil
	case format.VTCF:
		return decodeClipboard(data, vt)
	case format.VTCLSID:
		id, ok := format.ClassIDFromBytes(data)
		if !ok {
			return nil, 0, need(data, format.ClassIDSize, vt)
		}
		return CLSID(id), format.ClassIDSize, nil
	default:
		return nil, 0, errUnsupportedElement
	}
}

func decodeVector(data []byte, elem format.VarType, cp int) (Value, int, error) {
	vt := format.VTVector | elem
	if err := need(data, 4, vt); err != nil {
		return nil, 0, err
	}

	count := int(engine.Uint32(data))
	if count > len(data)-4 {
		return nil, 0, fmt.Errorf("%w: %s declares %d elements in %d bytes", errs.ErrCorruptPropertySet, vt, count, len(data)-4)
	}

	items := make([]Value, 0, count)
	off := 4
	for range count {
		if elem != format.VTVariant {
			v, n, err := decodeScalar(data[off:], elem, cp)
			if err != nil {
				return nil, 0, err
			}
			items = append(items, v)
			off += n

			continue
		}

		if err := need(data[off:], 4, vt); err != nil {
			return nil, 0, err
		}
		et := format.VarType(engine.Uint16(data[off:]))
		if !Supported(et) || et == format.VTVariant {
			return nil, 0, errUnsupportedElement
		}

		v, n, err := decodeValue(data[off+4:], et, cp)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, Variant{Type: et, Value: v})
		off += min(4+n+pool.PadLen(n), len(data)-off)
	}

	return Vector{Elem: elem, Items: items}, off, nil
}

func decodeCodepageString(data []byte, vt format.VarType, cp int) (Value, int, error) {
	raw, n, err := sizedBytes(data, vt)
	if err != nil {
		return nil, 0, err
	}
	if len(raw) == 0 {
		return String(""), n, nil
	}

	if codepage.IsWide(cp) {
		s, err := codepage.Decode(codepage.TrimWideNUL(raw), format.CodepageUnicode)
		if err != nil {
			return nil, 0, err
		}
		return String(s), n, nil
	}

	s, err := codepage.Decode(codepage.TrimNUL(raw), cp)
	if err != nil {
		return nil, 0, err
	}

	return String(s), n, nil
}

func decodeWideString(data []byte, vt format.VarType) (Value, int, error) {
	if err := need(data, 4, vt); err != nil {
		return nil, 0, err
	}

	count := int(engine.Uint32(data))
	if count > (len(data)-4)/2 {
		return nil, 0, fmt.Errorf("%w: %s declares %d characters in %d bytes", errs.ErrCorruptPropertySet, vt, count, len(data)-4)
	}

	size := count * 2
	n := min(4+size+pool.PadLen(size), len(data))
	if count == 0 {
		return String(""), n, nil
	}

	s, err := codepage.Decode(codepage.TrimWideNUL(data[4:4+size]), format.CodepageUnicode)
	if err != nil {
		return nil, 0, err
	}

	return String(s), n, nil
}

func decodeClipboard(data []byte, vt format.VarType) (Value, int, error) {
	raw, n, err := sizedBytes(data, vt)
	if err != nil {
		return nil, 0, err
	}
	if len(raw) == 0 {
		return Clipboard{}, n, nil
	}
	if len(raw) < 4 {
		return nil, 0, fmt.Errorf("%w: %s size %d leaves no room for the format tag", errs.ErrCorruptPropertySet, vt, len(raw))
	}

	return Clipboard{
		Format: int32(engine.Uint32(raw)), //nolint:gosec
		Data:   clone(raw[4:]),
	}, n, nil
}

// sizedBytes reads a 4-byte length followed by that many bytes. The consumed count
// includes padding to 4 as far as data reaches.
func sizedBytes(data []byte, vt format.VarType) ([]byte, int, error) {
	if err := need(data, 4, vt); err != nil {
		return nil, 0, err
	}

	size := int(engine.Uint32(data))
	if size > len(data)-4 {
		return nil, 0, fmt.Errorf("%w: %s declares %d bytes, have %d", errs.ErrCorruptPropertySet, vt, size, len(data)-4)
	}

	return data[4 : 4+size], min(4+size+pool.PadLen(size), len(data)), nil
}

func need(data []byte, n int, vt format.VarType) error {
	if len(data) < n {
		return fmt.Errorf("%w: %s needs %d bytes, have %d", errs.ErrCorruptPropertySet, vt, n, len(data))
	}

	return nil
}

func clone(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)

	return out
}
