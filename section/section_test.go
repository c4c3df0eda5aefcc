package section

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/propset/errs"
	"github.com/arloliu/propset/format"
	"github.com/arloliu/propset/variant"
)

var testFormatID = format.MustParseClassID("{D5CDD502-2E9C-101B-9397-08002B2CF9AE}")

func newTestSection(t *testing.T) *Section {
	t.Helper()

	s := New()
	s.SetFormatID(testFormatID)
	s.SetCodepage(format.CodepageWestern)
	require.NoError(t, s.Set(2, format.VTLPSTR, variant.String("Test Document")))
	require.NoError(t, s.Set(4, format.VTLPSTR, variant.String("Rainer Klute")))
	require.NoError(t, s.Set(14, format.VTI4, variant.Int(-5)))
	require.NoError(t, s.Set(12, format.VTFiletime, variant.FiletimeFromTime(time.Date(2002, 5, 6, 7, 8, 9, 0, time.UTC))))
	require.NoError(t, s.Set(17, format.VTBool, variant.Bool(true)))

	return s
}

func TestSection_RoundTrip(t *testing.T) {
	s := newTestSection(t)
	s.SetDictionary(NewDictionary(DictionaryEntry{ID: 2, Name: "Title"}, DictionaryEntry{ID: 4, Name: "Autor"}))

	body, err := s.AppendTo(nil, nil)
	require.NoError(t, err)
	require.Zero(t, len(body)%4)
	require.Equal(t, uint32(len(body)), engine.Uint32(body))
	require.Equal(t, uint32(s.Len()+1), engine.Uint32(body[4:]))

	got, err := Parse(body, 0, testFormatID, nil)
	require.NoError(t, err)
	require.True(t, s.Equal(got))
	require.Equal(t, format.CodepageWestern, got.Codepage())

	name, ok := got.Dictionary().Name(4)
	require.True(t, ok)
	require.Equal(t, "Autor", name)

	v, ok := got.Get(2)
	require.True(t, ok)
	require.Equal(t, variant.String("Test Document"), v)
}

func TestSection_ParseAtOffset(t *testing.T) {
	s := newTestSection(t)
	body, err := s.AppendTo([]byte{9, 9, 9, 9, 9, 9, 9, 9}, nil)
	require.NoError(t, err)

	got, err := Parse(body, 8, testFormatID, nil)
	require.NoError(t, err)
	require.True(t, s.Equal(got))
}

func TestSection_AppendToKeepsPrefix(t *testing.T) {
	s := New()
	s.SetFormatID(testFormatID)
	require.NoError(t, s.Set(2, format.VTI4, variant.Int(1)))

	out, err := s.AppendTo([]byte{1, 2, 3}, nil)
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3}, out[:3])
	require.Len(t, out, 3+HeaderSize+EntrySize+8)
}

func TestSection_CodepageReadFirst(t *testing.T) {
	s := New()
	s.SetFormatID(testFormatID)
	require.NoError(t, s.Set(2, format.VTLPSTR, variant.String("äb")))
	s.SetCodepage(format.CodepageUnicode)

	body, err := s.AppendTo(nil, nil)
	require.NoError(t, err)

	got, err := Parse(body, 0, testFormatID, nil)
	require.NoError(t, err)
	v, _ := got.Get(2)
	require.Equal(t, variant.String("äb"), v)
	require.Equal(t, []uint32{2, 1}, ids(got.Properties()))
}

func TestSection_UnicodeDictionaryLayout(t *testing.T) {
	s := New()
	s.SetFormatID(testFormatID)
	s.SetCodepage(format.CodepageUnicode)
	s.SetDictionary(NewDictionary(DictionaryEntry{ID: 2, Name: "ab"}))

	body, err := s.AppendTo(nil, nil)
	require.NoError(t, err)

	want := []byte{
		0x34, 0, 0, 0, 2, 0, 0, 0,
		0, 0, 0, 0, 0x18, 0, 0, 0,
		1, 0, 0, 0, 0x2C, 0, 0, 0,
		1, 0, 0, 0, 2, 0, 0, 0, 3, 0, 0, 0, 'a', 0, 'b', 0, 0, 0, 0, 0,
		2, 0, 0, 0, 0xB0, 0x04, 0, 0,
	}
	require.Equal(t, want, body)

	got, err := Parse(body, 0, testFormatID, nil)
	require.NoError(t, err)
	require.True(t, s.Equal(got))
}

func TestSection_CodepageDictionaryRoundTrip(t *testing.T) {
	s := New()
	s.SetFormatID(testFormatID)
	s.SetCodepage(format.CodepageWestern)
	s.SetDictionary(NewDictionary(DictionaryEntry{ID: 2, Name: "ab"}, DictionaryEntry{ID: 3, Name: "ä"}))

	body, err := s.AppendTo(nil, nil)
	require.NoError(t, err)

	dict := body[HeaderSize+2*EntrySize:]
	require.Equal(t, []byte{
		2, 0, 0, 0,
		2, 0, 0, 0, 3, 0, 0, 0, 'a', 'b', 0,
		3, 0, 0, 0, 2, 0, 0, 0, 0xE4, 0,
		0, 0, 0,
	}, dict[:28])

	got, err := Parse(body, 0, testFormatID, nil)
	require.NoError(t, err)
	require.True(t, s.Equal(got))
}

func TestSection_SetDictionaryInstallsUnicode(t *testing.T) {
	s := New()
	require.Equal(t, format.CodepageUnset, s.Codepage())

	s.SetDictionary(NewDictionary(DictionaryEntry{ID: 2, Name: "K"}))
	require.Equal(t, format.CodepageUnicode, s.Codepage())

	s.SetCodepage(format.CodepageWestern)
	s.SetDictionary(NewDictionary())
	require.Equal(t, format.CodepageWestern, s.Codepage())
}

func TestSection_DictionaryInvalidCodepage(t *testing.T) {
	s := New()
	s.SetFormatID(testFormatID)
	s.SetCodepage(4242)
	s.SetDictionary(NewDictionary(DictionaryEntry{ID: 2, Name: "K"}))

	out, err := s.AppendTo(nil, nil)
	require.ErrorIs(t, err, errs.ErrIllegalPropertySetData)
	require.Empty(t, out)
}

func TestSection_MissingFormatID(t *testing.T) {
	s := New()
	require.NoError(t, s.Set(2, format.VTI4, variant.Int(1)))

	out, err := s.AppendTo([]byte{1}, nil)
	require.ErrorIs(t, err, errs.ErrMissingFormatID)
	require.Equal(t, []byte{1}, out)
}

func TestSection_HighCodepage(t *testing.T) {
	s := New()
	s.SetFormatID(testFormatID)
	s.SetCodepage(format.CodepageUTF8)
	require.Equal(t, format.CodepageUTF8, s.Codepage())
	require.NoError(t, s.Set(2, format.VTLPSTR, variant.String("日本")))

	body, err := s.AppendTo(nil, nil)
	require.NoError(t, err)

	got, err := Parse(body, 0, testFormatID, nil)
	require.NoError(t, err)
	require.Equal(t, format.CodepageUTF8, got.Codepage())
	v, _ := got.Get(2)
	require.Equal(t, variant.String("日本"), v)
}

func TestParse_UnalignedSize(t *testing.T) {
	s := New()
	s.SetFormatID(testFormatID)
	s.SetCodepage(format.CodepageWestern)
	require.NoError(t, s.Set(2, format.VTLPSTR, variant.String("ab")))

	body, err := s.AppendTo(nil, nil)
	require.NoError(t, err)
	engine.PutUint32(body, uint32(len(body)-1))

	got, err := Parse(body, 0, testFormatID, nil)
	require.NoError(t, err)
	require.True(t, s.Equal(got))
}

func TestParse_PaddingOverrun(t *testing.T) {
	s := New()
	s.SetFormatID(testFormatID)
	s.SetCodepage(format.CodepageWestern)
	require.NoError(t, s.Set(2, format.VTLPSTR, variant.String("ab")))

	body, err := s.AppendTo(nil, nil)
	require.NoError(t, err)

	got, err := Parse(body[:len(body)-1], 0, testFormatID, nil)
	require.NoError(t, err)
	require.True(t, s.Equal(got))

	_, err = Parse(body[:len(body)-4], 0, testFormatID, nil)
	require.ErrorIs(t, err, errs.ErrCorruptPropertySet)
}

func TestParse_ZeroLengthCodepage(t *testing.T) {
	body := []byte{
		36, 0, 0, 0, 2, 0, 0, 0,
		1, 0, 0, 0, 24, 0, 0, 0,
		2, 0, 0, 0, 28, 0, 0, 0,
		2, 0, 0, 0,
		3, 0, 0, 0, 7, 0, 0, 0,
	}

	s, err := Parse(body, 0, testFormatID, nil)
	require.NoError(t, err)
	require.Equal(t, format.CodepageUnset, s.Codepage())

	p, ok := s.Property(PIDCodepage)
	require.True(t, ok)
	require.IsType(t, variant.Opaque{}, p.Value)

	v, ok := s.Get(2)
	require.True(t, ok)
	require.Equal(t, variant.Int(7), v)

	_, err = s.AppendTo(nil, nil)
	require.ErrorIs(t, err, errs.ErrIllegalPropertySetData)

	passthrough, err := variant.NewEncodeConfig(variant.WithOpaquePassthrough(true))
	require.NoError(t, err)
	out, err := s.AppendTo(nil, passthrough)
	require.NoError(t, err)
	require.Equal(t, body, out)
}

func TestParse_UnsupportedTypeKept(t *testing.T) {
	body := []byte{
		24, 0, 0, 0, 1, 0, 0, 0,
		5, 0, 0, 0, 16, 0, 0, 0,
		0x49, 0, 0, 0, 1, 2, 3, 4,
	}

	tally := &variant.Tally{}
	cfg, err := variant.NewDecodeConfig(variant.WithTally(tally))
	require.NoError(t, err)

	s, err := Parse(body, 0, testFormatID, cfg)
	require.NoError(t, err)
	require.Equal(t, 1, tally.Total())

	v, _ := s.Get(5)
	require.Equal(t, variant.Opaque{Type: 0x49, Data: []byte{1, 2, 3, 4}}, v)

	_, err = s.AppendTo(nil, nil)
	require.ErrorIs(t, err, errs.ErrUnsupportedVariantType)

	passthrough, err := variant.NewEncodeConfig(variant.WithOpaquePassthrough(true))
	require.NoError(t, err)
	out, err := s.AppendTo(nil, passthrough)
	require.NoError(t, err)
	require.Equal(t, body, out)

	strict, err := variant.NewDecodeConfig(variant.WithStrictTypes(true))
	require.NoError(t, err)
	_, err = Parse(body, 0, testFormatID, strict)
	require.ErrorIs(t, err, errs.ErrUnsupportedVariantType)
}

func TestParse_Corrupt(t *testing.T) {
	tests := []struct {
		name   string
		buf    []byte
		offset uint32
	}{
		{"offset beyond buffer", []byte{8, 0, 0, 0, 0, 0, 0, 0}, 4},
		{"size below header", []byte{4, 0, 0, 0, 0, 0, 0, 0}, 0},
		{"size overrun", []byte{64, 0, 0, 0, 0, 0, 0, 0}, 0},
		{"count overrun", []byte{16, 0, 0, 0, 9, 0, 0, 0, 1, 0, 0, 0, 8, 0, 0, 0}, 0},
		{"entry offset outside", []byte{16, 0, 0, 0, 1, 0, 0, 0, 2, 0, 0, 0, 99, 0, 0, 0}, 0},
		{"no type header", []byte{16, 0, 0, 0, 1, 0, 0, 0, 2, 0, 0, 0, 16, 0, 0, 0}, 0},
		{"dictionary overrun", []byte{
			28, 0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0, 16, 0, 0, 0,
			1, 0, 0, 0, 2, 0, 0, 0, 50, 0, 0, 0,
		}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.buf, tt.offset, testFormatID, nil)
			require.ErrorIs(t, err, errs.ErrCorruptPropertySet)
		})
	}
}

func TestSection_SetErrors(t *testing.T) {
	s := New()
	require.ErrorIs(t, s.Set(PIDDictionary, format.VTI4, variant.Int(1)), errs.ErrIllegalPropertySetData)
	require.ErrorIs(t, s.Set(PIDCodepage, format.VTI4, variant.Int(1252)), errs.ErrIllegalPropertySetData)
	require.ErrorIs(t, s.Set(2, format.VTI4, variant.String("x")), errs.ErrUnsupportedVariantType)
	require.ErrorIs(t, s.Set(2, format.VarType(0x49), variant.Int(1)), errs.ErrUnsupportedVariantType)
	require.ErrorIs(t, s.Set(2, format.VTLPSTR, variant.String("日本")), errs.ErrIllegalPropertySetData)
	require.Zero(t, s.Len())
}

func TestSection_Mutation(t *testing.T) {
	s := New()
	require.NoError(t, s.Set(5, format.VTI4, variant.Int(1)))
	require.NoError(t, s.Set(3, format.VTI4, variant.Int(2)))
	require.NoError(t, s.Set(7, format.VTI4, variant.Int(3)))
	require.NoError(t, s.Set(5, format.VTLPWSTR, variant.String("replaced")))

	require.Equal(t, []uint32{5, 3, 7}, ids(s.Properties()))
	p, ok := s.Property(5)
	require.True(t, ok)
	require.Equal(t, format.VTLPWSTR, p.Type)

	require.True(t, s.Remove(3))
	require.False(t, s.Remove(3))
	require.Equal(t, []uint32{5, 7}, ids(s.Properties()))
	v, ok := s.Get(7)
	require.True(t, ok)
	require.Equal(t, variant.Int(3), v)

	s.SetDictionary(NewDictionary(DictionaryEntry{ID: 5, Name: "n"}))
	require.True(t, s.Remove(PIDDictionary))
	require.Nil(t, s.Dictionary())

	s.SetFormatID(testFormatID)
	s.Clear()
	require.Zero(t, s.Len())
	_, ok = s.Get(5)
	require.False(t, ok)
	_, hasFormat := s.FormatID()
	require.True(t, hasFormat)
}

func TestSection_Equal(t *testing.T) {
	a := newTestSection(t)
	b := newTestSection(t)
	require.True(t, a.Equal(b))

	require.NoError(t, b.Set(14, format.VTI4, variant.Int(6)))
	require.False(t, a.Equal(b))

	c := a.Clone()
	require.True(t, a.Equal(c))
	c.SetFormatID(format.MustParseClassID("{F29F85E0-4FF9-1068-AB91-08002B27B3D9}"))
	require.False(t, a.Equal(c))

	d := a.Clone()
	d.Remove(2)
	require.NoError(t, d.Set(2, format.VTLPSTR, variant.String("Test Document")))
	require.False(t, a.Equal(d), "property order is significant")

	e := a.Clone()
	e.SetDictionary(NewDictionary(DictionaryEntry{ID: 2, Name: "x"}))
	require.False(t, a.Equal(e))
	require.True(t, a.Equal(a.Clone()))
}

func TestSection_PIDString(t *testing.T) {
	names := NameTable{2: "PID_TITLE"}
	s := New()
	s.SetDictionary(NewDictionary(DictionaryEntry{ID: 3, Name: "Custom"}))

	require.Equal(t, "PID_TITLE", s.PIDString(2, names))
	require.Equal(t, "Custom", s.PIDString(3, names))
	require.Equal(t, "PID_CODEPAGE", s.PIDString(PIDCodepage, names))
	require.Equal(t, "PID_LOCALE", s.PIDString(PIDLocale, nil))
	require.Equal(t, "PID_99", s.PIDString(99, nil))
}

func TestDictionary(t *testing.T) {
	d := NewDictionary(DictionaryEntry{ID: 2, Name: "a"}, DictionaryEntry{ID: 3, Name: "b"})
	d.Set(2, "c")
	require.Equal(t, []DictionaryEntry{{ID: 2, Name: "c"}, {ID: 3, Name: "b"}}, d.Entries())

	require.True(t, d.Remove(2))
	require.False(t, d.Remove(2))
	name, ok := d.Name(3)
	require.True(t, ok)
	require.Equal(t, "b", name)
	require.Equal(t, 1, d.Len())

	other := NewDictionary(DictionaryEntry{ID: 3, Name: "b"})
	require.True(t, d.Equal(other))
	other.Set(4, "z")
	require.False(t, d.Equal(other))

	var empty *Dictionary
	require.Zero(t, empty.Len())
	require.True(t, empty.Equal(NewDictionary()))
	_, ok = empty.Name(1)
	require.False(t, ok)
}

func TestIsReserved(t *testing.T) {
	for _, id := range []uint32{PIDDictionary, PIDCodepage, PIDLocale, PIDBehavior} {
		require.True(t, IsReserved(id))
	}
	require.False(t, IsReserved(2))
	require.False(t, IsReserved(0x80000001))
}

func ids(props []Property) []uint32 {
	out := make([]uint32, len(props))
	for i, p := range props {
		out[i] = p.ID
	}

	return out
}
