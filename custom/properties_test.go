package custom

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/propset/errs"
	"github.com/arloliu/propset/format"
	"github.com/arloliu/propset/section"
	"github.com/arloliu/propset/variant"
)

var userDefinedID = format.MustParseClassID("{D5CDD505-2E9C-101B-9397-08002B2CF9AE}")

func newView() *Properties {
	sec := section.New()
	sec.SetFormatID(userDefinedID)

	return New(sec)
}

func TestProperties_PutGet(t *testing.T) {
	ts := time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)
	tests := []struct {
		name  string
		value any
		want  any
		vt    format.VarType
	}{
		{"bool", true, true, format.VTBool},
		{"int32", int32(-7), int32(-7), format.VTI4},
		{"small int", 42, int32(42), format.VTI4},
		{"large int", math.MaxInt32 + 1, int64(math.MaxInt32 + 1), format.VTI8},
		{"int64", int64(-9), int64(-9), format.VTI8},
		{"float64", 2.5, 2.5, format.VTR8},
		{"time", ts, ts, format.VTFiletime},
		{"string", "äöü", "äöü", format.VTLPWSTR},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newView()
			old, err := p.Put(tt.name, tt.value)
			require.NoError(t, err)
			require.Nil(t, old)

			got, ok := p.Get(tt.name)
			require.True(t, ok)
			require.Equal(t, tt.want, got)

			id, ok := p.ID(tt.name)
			require.True(t, ok)
			prop, _ := p.Section().Property(id)
			require.Equal(t, tt.vt, prop.Type)
		})
	}
}

func TestProperties_Overwrite(t *testing.T) {
	p := newView()
	_, err := p.Put("Project", "alpha")
	require.NoError(t, err)
	_, err = p.Put("Budget", int32(10))
	require.NoError(t, err)
	require.Equal(t, 2, p.Size())

	old, err := p.Put("Project", "beta")
	require.NoError(t, err)
	require.Equal(t, "alpha", old)
	require.Equal(t, 2, p.Size())

	got, _ := p.Get("Project")
	require.Equal(t, "beta", got)
	require.True(t, p.IsPure())
}

func TestProperties_NewIDs(t *testing.T) {
	p := newView()
	sec := p.Section()
	sec.SetCodepage(format.CodepageUnicode)
	require.NoError(t, sec.Set(section.PIDLocale, format.VTUI4, variant.Int(1033)))

	_, err := p.Put("a", "x")
	require.NoError(t, err)
	id, _ := p.ID("a")
	require.Equal(t, uint32(2), id)

	require.NoError(t, sec.Set(9, format.VTI4, variant.Int(1)))
	_, err = p.Put("b", "y")
	require.NoError(t, err)
	id, _ = p.ID("b")
	require.Equal(t, uint32(10), id)

	sec.Dictionary().Set(20, "orphan")
	_, err = p.Put("c", "z")
	require.NoError(t, err)
	id, _ = p.ID("c")
	require.Equal(t, uint32(21), id)
}

func TestProperties_IDSpaceExhausted(t *testing.T) {
	p := newView()
	require.NoError(t, p.Section().Set(section.PIDMaxCustom-1, format.VTI4, variant.Int(1)))

	_, err := p.Put("full", "x")
	require.ErrorIs(t, err, errs.ErrIDSpaceExhausted)
	require.Zero(t, p.Size())
}

func TestProperties_DanglingEntryReused(t *testing.T) {
	p := newView()
	p.Section().SetDictionary(section.NewDictionary(section.DictionaryEntry{ID: 5, Name: "K"}))
	require.False(t, p.IsPure())
	require.Zero(t, p.Size())

	_, err := p.Put("K", true)
	require.NoError(t, err)
	id, _ := p.ID("K")
	require.Equal(t, uint32(5), id)
	require.True(t, p.IsPure())
}

func TestProperties_PurityDegradation(t *testing.T) {
	p := newView()
	sec := p.Section()
	sec.SetDictionary(section.NewDictionary(section.DictionaryEntry{ID: 2, Name: "K"}))
	require.NoError(t, sec.Set(2, format.VTLPWSTR, variant.String("first")))
	require.True(t, p.IsPure())
	require.Equal(t, 1, p.Size())

	require.NoError(t, sec.Set(3, format.VTLPWSTR, variant.String("second")))
	sec.Dictionary().Set(3, "K")
	require.Equal(t, 1, p.Size())
	require.False(t, p.IsPure())
	require.Equal(t, []uint32{2, 3}, p.IDs("K"))
	require.Nil(t, p.IDs("missing"))

	got, _ := p.Get("K")
	require.Equal(t, "first", got)

	old, err := p.Put("K", "third")
	require.NoError(t, err)
	require.Equal(t, "first", old)
	v, _ := sec.Get(3)
	require.Equal(t, variant.String("second"), v)

	old, ok := p.Remove("K")
	require.True(t, ok)
	require.Equal(t, "third", old)
	require.Equal(t, 1, p.Size())
	got, _ = p.Get("K")
	require.Equal(t, "second", got)
	require.True(t, p.IsPure())
	require.Equal(t, []uint32{3}, p.IDs("K"))
}

func TestProperties_Remove(t *testing.T) {
	p := newView()
	_, err := p.Put("a", 1.5)
	require.NoError(t, err)
	_, err = p.Put("b", false)
	require.NoError(t, err)

	old, ok := p.Remove("a")
	require.True(t, ok)
	require.Equal(t, 1.5, old)
	require.Equal(t, 1, p.Size())
	require.Equal(t, []string{"b"}, p.Names())

	_, ok = p.Remove("a")
	require.False(t, ok)
	_, ok = p.Section().Property(2)
	require.False(t, ok)
	require.Equal(t, 1, p.Section().Dictionary().Len())
}

func TestProperties_InvalidKind(t *testing.T) {
	p := newView()
	for _, v := range []any{uint8(1), float32(1), []byte{1}, struct{}{}, nil} {
		_, err := p.Put("bad", v)
		require.ErrorIs(t, err, errs.ErrInvalidCustomPropertyValueKind)
	}
	require.Zero(t, p.Size())
	require.Nil(t, p.Section().Dictionary())
}

func TestProperties_ReservedIgnored(t *testing.T) {
	p := newView()
	sec := p.Section()
	sec.SetDictionary(section.NewDictionary(
		section.DictionaryEntry{ID: section.PIDCodepage, Name: "cp"},
		section.DictionaryEntry{ID: 2, Name: "x"},
	))
	require.NoError(t, sec.Set(2, format.VTBool, variant.Bool(true)))

	_, ok := p.Get("cp")
	require.False(t, ok)
	require.Equal(t, []string{"x"}, p.Names())
	require.True(t, p.IsPure())
}

func TestProperties_All(t *testing.T) {
	p := newView()
	_, err := p.Put("one", int32(1))
	require.NoError(t, err)
	_, err = p.Put("two", "2")
	require.NoError(t, err)

	got := map[string]any{}
	for name, v := range p.All() {
		got[name] = v
	}
	require.Equal(t, map[string]any{"one": int32(1), "two": "2"}, got)

	n := 0
	for range p.All() {
		n++
		break
	}
	require.Equal(t, 1, n)
}

func TestProperties_ZeroLengthStrings(t *testing.T) {
	body := []byte{
		0x3C, 0, 0, 0, 3, 0, 0, 0,
		0, 0, 0, 0, 32, 0, 0, 0,
		1, 0, 0, 0, 48, 0, 0, 0,
		2, 0, 0, 0, 52, 0, 0, 0,
		1, 0, 0, 0, 2, 0, 0, 0, 2, 0, 0, 0, 'K', 0, 0, 0,
		2, 0, 0, 0,
		0x1E, 0, 0, 0, 0, 0, 0, 0,
	}

	sec, err := section.Parse(body, 0, userDefinedID, nil)
	require.NoError(t, err)

	p := New(sec)
	got, ok := p.Get("K")
	require.True(t, ok)
	require.Equal(t, "", got)
}
