// Package codepage maps Windows codepage numbers to text encodings.
package codepage

import (
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"

	"github.com/arloliu/propset/errs"
	"github.com/arloliu/propset/format"
)

var encodings = map[int]encoding.Encoding{
	format.CodepageUnicode:  unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM),
	format.CodepageUTF16BE:  unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM),
	format.CodepageUTF8:     unicode.UTF8,
	format.CodepageWestern:  charmap.Windows1252,
	format.CodepageMacRoman: charmap.Macintosh,
	// x/text has no strict ASCII codec; 1252 is a superset for decoding.
	format.CodepageUSASCII: charmap.Windows1252,
	format.CodepageLatin1:  charmap.ISO8859_1,

	437:   charmap.CodePage437,
	850:   charmap.CodePage850,
	852:   charmap.CodePage852,
	855:   charmap.CodePage855,
	858:   charmap.CodePage858,
	860:   charmap.CodePage860,
	862:   charmap.CodePage862,
	863:   charmap.CodePage863,
	865:   charmap.CodePage865,
	866:   charmap.CodePage866,
	874:   charmap.Windows874,
	932:   japanese.ShiftJIS,
	936:   simplifiedchinese.GBK,
	949:   korean.EUCKR,
	950:   traditionalchinese.Big5,
	1250:  charmap.Windows1250,
	1251:  charmap.Windows1251,
	1253:  charmap.Windows1253,
	1254:  charmap.Windows1254,
	1255:  charmap.Windows1255,
	1256:  charmap.Windows1256,
	1257:  charmap.Windows1257,
	1258:  charmap.Windows1258,
	10007: charmap.MacintoshCyrillic,
	20866: charmap.KOI8R,
	21866: charmap.KOI8U,
	28592: charmap.ISO8859_2,
	28593: charmap.ISO8859_3,
	28594: charmap.ISO8859_4,
	28595: charmap.ISO8859_5,
	28596: charmap.ISO8859_6,
	28597: charmap.ISO8859_7,
	28598: charmap.ISO8859_8,
	28599: charmap.ISO8859_9,
	28603: charmap.ISO8859_13,
	28605: charmap.ISO8859_15,
	50220: japanese.ISO2022JP,
	51932: japanese.EUCJP,
	52936: simplifiedchinese.HZGB2312,
	54936: simplifiedchinese.GB18030,
}

// Supported reports whether cp has a known encoding.
func Supported(cp int) bool {
	_, ok := encodings[cp]
	return ok
}

// IsWide reports whether strings in cp are stored as UTF-16LE code units.
func IsWide(cp int) bool {
	return cp == format.CodepageUnicode
}

// Lookup returns the encoding for cp.
func Lookup(cp int) (encoding.Encoding, error) {
	enc, ok := encodings[cp]
	if !ok {
		return nil, fmt.Errorf("%w: %d", errs.ErrUnsupportedCodepage, cp)
	}

	return enc, nil
}

// Resolve returns cp when it can be used for decoding, or format.CodepageDefault when the
// section declares no codepage or one with no known encoding.
func Resolve(cp int) int {
	if Supported(cp) {
		return cp
	}

	return format.CodepageDefault
}

// Decode converts data in codepage cp to a Go string.
// Unset or unknown codepages decode as format.CodepageDefault.
func Decode(data []byte, cp int) (string, error) {
	if len(data) == 0 {
		return "", nil
	}

	enc, err := Lookup(Resolve(cp))
	if err != nil {
		return "", err
	}

	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", err
	}

	return string(out), nil
}

// Encode converts s to codepage cp. It fails when cp has no known encoding or s contains
// characters cp cannot represent.
func Encode(s string, cp int) ([]byte, error) {
	enc, err := Lookup(cp)
	if err != nil {
		return nil, err
	}
	if s == "" {
		return []byte{}, nil
	}

	out, err := enc.NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("%w: cannot represent %q in codepage %d: %v", errs.ErrIllegalPropertySetData, s, cp, err)
	}

	return out, nil
}

// TrimNUL cuts b at its first NUL byte.
func TrimNUL(b []byte) []byte {
	for i, c := range b {
		if c == 0 {
			return b[:i]
		}
	}

	return b
}

// TrimWideNUL cuts UTF-16LE data at its first NUL code unit. A trailing odd byte is dropped.
func TrimWideNUL(b []byte) []byte {
	for i := 0; i+1 < len(b); i += 2 {
		if b[i] == 0 && b[i+1] == 0 {
			return b[:i]
		}
	}

	return b[:len(b)&^1]
}
