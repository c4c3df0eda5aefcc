// Package section implements one section of a property set stream: its properties, its
// codepage and its optional name dictionary, plus the binary layout of a section body.
//
// # Section Body Layout
//
// All integers are little-endian. Offsets are relative to the first byte of the body.
//
//	┌─────────────────────────────────────────────────────────┐
//	│ Size (4 bytes): byte length of the whole body           │
//	│ Count (4 bytes): number of properties                   │
//	├─────────────────────────────────────────────────────────┤
//	│ Offset table (Count × 8 bytes)                          │
//	│  - id (4 bytes), offset (4 bytes)                       │
//	├─────────────────────────────────────────────────────────┤
//	│ Values                                                  │
//	│  - type (2 bytes), padding (2 bytes), payload           │
//	│  - each value padded to a multiple of 4                 │
//	└─────────────────────────────────────────────────────────┘
//
// # Reserved Ids
//
//	0x00000000  dictionary, written without a type header
//	0x00000001  codepage, VT_I2 read as unsigned
//	0x80000000  locale
//	0x80000003  behavior
//
// # Dictionary Layout
//
//	Count (4 bytes)
//	Count × { id (4 bytes), length (4 bytes), name }
//
// With codepage 1200 the length counts UTF-16 code units including the terminator and
// each entry is padded to 4. Otherwise it counts bytes in the section codepage including
// the terminator and entries are packed. The whole dictionary is padded to 4.
//
// # Usage
//
//	sec := section.New()
//	sec.SetFormatID(id)
//	sec.SetCodepage(format.CodepageUnicode)
//	if err := sec.Set(2, format.VTLPWSTR, variant.String("Title")); err != nil {
//	    return err
//	}
//	body, err := sec.AppendTo(nil, nil)
package section
