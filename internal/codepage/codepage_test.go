package codepage

import (
	"testing"

	"github.com/arloliu/propset/errs"
	"github.com/arloliu/propset/format"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecode(t *testing.T) {
	tests := []struct {
		name string
		cp   int
		text string
		want []byte
	}{
		{name: "western umlauts", cp: format.CodepageWestern, text: "äöü", want: []byte{0xE4, 0xF6, 0xFC}},
		{name: "utf8", cp: format.CodepageUTF8, text: "ä", want: []byte{0xC3, 0xA4}},
		{name: "unicode", cp: format.CodepageUnicode, text: "Ab", want: []byte{'A', 0, 'b', 0}},
		{name: "shift-jis", cp: 932, text: "第1章"},
		{name: "cyrillic", cp: 1251, text: "Ж", want: []byte{0xC6}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := Encode(tt.text, tt.cp)
			require.NoError(t, err)
			if tt.want != nil {
				require.Equal(t, tt.want, b)
			}

			s, err := Decode(b, tt.cp)
			require.NoError(t, err)
			require.Equal(t, tt.text, s)
		})
	}
}

func TestDecode_UnsetCodepage(t *testing.T) {
	s, err := Decode([]byte{0xE4}, format.CodepageUnset)
	require.NoError(t, err)
	require.Equal(t, "ä", s)

	s, err = Decode(nil, 0)
	require.NoError(t, err)
	require.Empty(t, s)
}

func TestEncode_Errors(t *testing.T) {
	_, err := Encode("x", 12345)
	require.ErrorIs(t, err, errs.ErrUnsupportedCodepage)

	_, err = Encode("第", format.CodepageWestern)
	require.ErrorIs(t, err, errs.ErrIllegalPropertySetData)
}

func TestResolve(t *testing.T) {
	require.Equal(t, format.CodepageUnicode, Resolve(format.CodepageUnicode))
	require.Equal(t, format.CodepageDefault, Resolve(format.CodepageUnset))
	require.Equal(t, format.CodepageDefault, Resolve(12345))
	require.True(t, IsWide(format.CodepageUnicode))
	require.False(t, IsWide(format.CodepageUTF8))
	require.True(t, Supported(1250))
	require.False(t, Supported(0))
}

func TestTrimNUL(t *testing.T) {
	require.Equal(t, []byte("ab"), TrimNUL([]byte("ab\x00cd")))
	require.Equal(t, []byte("ab"), TrimNUL([]byte("ab")))
	require.Empty(t, TrimNUL([]byte{0, 'a'}))
}

func TestTrimWideNUL(t *testing.T) {
	require.Equal(t, []byte{'a', 0}, TrimWideNUL([]byte{'a', 0, 0, 0, 'b', 0}))
	// a zero high byte followed by a zero low byte across units is not a terminator
	require.Equal(t, []byte{'a', 0, 0, 'b'}, TrimWideNUL([]byte{'a', 0, 0, 'b'}))
	require.Equal(t, []byte{'a', 0}, TrimWideNUL([]byte{'a', 0, 'x'}))
	require.Empty(t, TrimWideNUL(nil))
}
