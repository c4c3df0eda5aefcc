package variant

import (
	"errors"
	"fmt"
	"math"

	"github.com/arloliu/propset/errs"
	"github.com/arloliu/propset/format"
	"github.com/arloliu/propset/internal/codepage"
	"github.com/arloliu/propset/internal/pool"
)

// Encode returns the payload of v stored as type vt, without the 4-byte type header.
// The result length is a multiple of 4.
func Encode(vt format.VarType, v Value, codepage int, opts ...EncodeOption) ([]byte, error) {
	return AppendEncode(nil, vt, v, codepage, opts...)
}

// AppendEncode appends the payload of v stored as type vt to dst.
//
// On error dst is returned unchanged. Errors wrap errs.ErrUnsupportedVariantType when vt is
// unknown or v has the wrong kind for vt, and errs.ErrIllegalPropertySetData when v is out
// of range for vt or a string cannot be represented in codepage.
func AppendEncode(dst []byte, vt format.VarType, v Value, codepage int, opts ...EncodeOption) ([]byte, error) {
	cfg, err := NewEncodeConfig(opts...)
	if err != nil {
		return dst, err
	}

	return cfg.AppendEncode(dst, vt, v, codepage)
}

// AppendEncode is the configured form of the package-level AppendEncode.
func (c *EncodeConfig) AppendEncode(dst []byte, vt format.VarType, v Value, codepage int) ([]byte, error) {
	start := len(dst)

	if o, ok := v.(Opaque); ok {
		if !c.Passthrough() {
			return dst, fmt.Errorf("%w: opaque %s value cannot be written", errs.ErrUnsupportedVariantType, o.Type)
		}
		if o.Type != vt {
			return dst, fmt.Errorf("%w: opaque value of type %s stored as %s", errs.ErrUnsupportedVariantType, o.Type, vt)
		}
		dst = append(dst, o.Data...)

		return pool.AppendPad(dst, len(dst)-start), nil
	}

	if !Supported(vt) {
		return dst, fmt.Errorf("%w: %s", errs.ErrUnsupportedVariantType, vt)
	}

	out, err := appendValue(dst, vt, v, codepage)
	if err != nil {
		return dst[:start], err
	}

	return pool.AppendPad(out, len(out)-start), nil
}

func appendValue(dst []byte, vt format.VarType, v Value, cp int) ([]byte, error) {
	if vt.IsVector() {
		return appendVector(dst, vt.Base(), v, cp)
	}

	return appendScalar(dst, vt, v, cp)
}

func appendScalar(dst []byte, vt format.VarType, v Value, cp int) ([]byte, error) {
	switch vt {
	case format.VTEmpty:
		if _, ok := v.(Empty); !ok {
			return dst, mismatch(vt, v)
		}
		return dst, nil
	case format.VTNull:
		if _, ok := v.(Null); !ok {
			return dst, mismatch(vt, v)
		}
		return dst, nil
	case format.VTI1:
		n, err := intInRange(vt, v, math.MinInt8, math.MaxInt8)
		if err != nil {
			return dst, err
		}
		return append(dst, byte(n)), nil
	case format.VTUI1:
		n, err := intInRange(vt, v, 0, math.MaxUint8)
		if err != nil {
			return dst, err
		}
		return append(dst, byte(n)), nil
	case format.VTI2:
		n, err := intInRange(vt, v, math.MinInt16, math.MaxInt16)
		if err != nil {
			return dst, err
		}
		return engine.AppendUint16(dst, uint16(int16(n))), nil //nolint:gosec
	case format.VTUI2:
		n, err := intInRange(vt, v, 0, math.MaxUint16)
		if err != nil {
			return dst, err
		}
		return engine.AppendUint16(dst, uint16(n)), nil //nolint:gosec
	case format.VTBool:
		b, ok := v.(Bool)
		if !ok {
			return dst, mismatch(vt, v)
		}
		if b {
			return engine.AppendUint16(dst, 0xFFFF), nil
		}
		return engine.AppendUint16(dst, 0), nil
	case format.VTI4, format.VTInt:
		n, err := intInRange(vt, v, math.MinInt32, math.MaxInt32)
		if err != nil {
			return dst, err
		}
		return engine.AppendUint32(dst, uint32(int32(n))), nil //nolint:gosec
	case format.VTUI4, format.VTUint, format.VTError:
		n, err := intInRange(vt, v, 0, math.MaxUint32)
		if err != nil {
			return dst, err
		}
		return engine.AppendUint32(dst, uint32(n)), nil //nolint:gosec
	case format.VTR4:
		f, ok := v.(Float)
		if !ok {
			return dst, mismatch(vt, v)
		}
		return engine.AppendUint32(dst, math.Float32bits(float32(f))), nil
	case format.VTR8, format.VTDate:
		f, ok := v.(Float)
		if !ok {
			return dst, mismatch(vt, v)
		}
		return engine.AppendUint64(dst, math.Float64bits(float64(f))), nil
	case format.VTI8, format.VTCY:
		n, ok := v.(Int64)
		if !ok {
			return dst, mismatch(vt, v)
		}
		return engine.AppendUint64(dst, uint64(n)), nil //nolint:gosec
	case format.VTUI8:
		n, ok := v.(Uint64)
		if !ok {
			return dst, mismatch(vt, v)
		}
		return engine.AppendUint64(dst, uint64(n)), nil
	case format.VTFiletime:
		ft, ok := v.(Filetime)
		if !ok {
			return dst, mismatch(vt, v)
		}
		dst = engine.AppendUint32(dst, uint32(ft)) //nolint:gosec
		return engine.AppendUint32(dst, uint32(ft>>32)), nil
	case format.VTLPSTR, format.VTBSTR:
		s, ok := v.(String)
		if !ok {
			return dst, mismatch(vt, v)
		}
		return appendCodepageString(dst, string(s), cp)
	case format.VTLPWSTR:
		s, ok := v.(String)
		if !ok {
			return dst, mismatch(vt, v)
		}
		return appendWideString(dst, string(s))
	case format.VTBlob:
		b, ok := v.(Blob)
		if !ok {
			return dst, mismatch(vt, v)
		}
		dst = engine.AppendUint32(dst, uint32(len(b))) //nolint:gosec
		dst = append(dst, b...)
		return pool.AppendPad(dst, len(b)), nil
	case format.VTCF:
		cf, ok := v.(Clipboard)
		if !ok {
			return dst, mismatch(vt, v)
		}
		size := 4 + len(cf.Data)
		dst = engine.AppendUint32(dst, uint32(size))       //nolint:gosec
		dst = engine.AppendUint32(dst, uint32(cf.Format)) //nolint:gosec
		dst = append(dst, cf.Data...)
		return pool.AppendPad(dst, size), nil
	case format.VTCLSID:
		id, ok := v.(CLSID)
		if !ok {
			return dst, mismatch(vt, v)
		}
		return append(dst, id[:]...), nil
	default:
		return dst, fmt.Errorf("%w: %s", errs.ErrUnsupportedVariantType, vt)
	}
}

func appendVector(dst []byte, elem format.VarType, v Value, cp int) ([]byte, error) {
	vt := format.VTVector | elem
	vec, ok := v.(Vector)
	if !ok {
		return dst, mismatch(vt, v)
	}
	if vec.Elem != elem {
		return dst, fmt.Errorf("%w: vector of %s stored as %s", errs.ErrUnsupportedVariantType, vec.Elem, vt)
	}

	dst = engine.AppendUint32(dst, uint32(len(vec.Items))) //nolint:gosec
	for _, item := range vec.Items {
		var err error
		if elem != format.VTVariant {
			if dst, err = appendScalar(dst, elem, item, cp); err != nil {
				return dst, err
			}

			continue
		}

		vr, ok := item.(Variant)
		if !ok {
			return dst, mismatch(vt, item)
		}
		if !Supported(vr.Type) || vr.Type == format.VTVariant {
			return dst, fmt.Errorf("%w: %s inside %s", errs.ErrUnsupportedVariantType, vr.Type, vt)
		}

		dst = engine.AppendUint16(dst, uint16(vr.Type))
		dst = engine.AppendUint16(dst, 0)
		start := len(dst)
		if dst, err = appendValue(dst, vr.Type, vr.Value, cp); err != nil {
			return dst, err
		}
		dst = pool.AppendPad(dst, len(dst)-start)
	}

	return dst, nil
}

func appendCodepageString(dst []byte, s string, cp int) ([]byte, error) {
	if codepage.IsWide(cp) {
		raw, err := codepage.Encode(s+"\x00", format.CodepageUnicode)
		if err != nil {
			return dst, err
		}
		dst = engine.AppendUint32(dst, uint32(len(raw))) //nolint:gosec
		dst = append(dst, raw...)

		return pool.AppendPad(dst, len(raw)), nil
	}

	if cp == format.CodepageUnset {
		cp = format.CodepageDefault
	}
	raw, err := codepage.Encode(s, cp)
	if err != nil {
		if errors.Is(err, errs.ErrUnsupportedCodepage) {
			return dst, fmt.Errorf("%w: %w", errs.ErrIllegalPropertySetData, err)
		}
		return dst, err
	}

	size := len(raw) + 1
	dst = engine.AppendUint32(dst, uint32(size)) //nolint:gosec
	dst = append(dst, raw...)
	dst = append(dst, 0)

	return pool.AppendPad(dst, size), nil
}

func appendWideString(dst []byte, s string) ([]byte, error) {
	raw, err := codepage.Encode(s+"\x00", format.CodepageUnicode)
	if err != nil {
		return dst, err
	}

	dst = engine.AppendUint32(dst, uint32(len(raw)/2)) //nolint:gosec
	dst = append(dst, raw...)

	return pool.AppendPad(dst, len(raw)), nil
}

func intInRange(vt format.VarType, v Value, lo, hi int64) (int64, error) {
	n, ok := v.(Int)
	if !ok {
		return 0, mismatch(vt, v)
	}
	if int64(n) < lo || int64(n) > hi {
		return 0, fmt.Errorf("%w: %d out of range for %s", errs.ErrIllegalPropertySetData, int64(n), vt)
	}

	return int64(n), nil
}

func mismatch(vt format.VarType, v Value) error {
	return fmt.Errorf("%w: %T cannot be stored as %s", errs.ErrUnsupportedVariantType, v, vt)
}
