package format

import (
	"testing"

	"github.com/arloliu/propset/errs"
	"github.com/stretchr/testify/require"
)

func TestParseClassID(t *testing.T) {
	t.Run("Summary information id", func(t *testing.T) {
		id, err := ParseClassID("{F29F85E0-4FF9-1068-AB91-08002B27B3D9}")
		require.NoError(t, err)

		want := ClassID{
			0xE0, 0x85, 0x9F, 0xF2, 0xF9, 0x4F, 0x68, 0x10,
			0xAB, 0x91, 0x08, 0x00, 0x2B, 0x27, 0xB3, 0xD9,
		}
		require.Equal(t, want, id)
		require.Equal(t, "{F29F85E0-4FF9-1068-AB91-08002B27B3D9}", id.String())
	})

	t.Run("Without braces", func(t *testing.T) {
		a, err := ParseClassID("D5CDD502-2E9C-101B-9397-08002B2CF9AE")
		require.NoError(t, err)
		b := MustParseClassID("{D5CDD502-2E9C-101B-9397-08002B2CF9AE}")
		require.Equal(t, a, b)
	})

	t.Run("Malformed", func(t *testing.T) {
		for _, s := range []string{"", "{}", "F29F85E0-4FF9-1068-AB91", "G29F85E0-4FF9-1068-AB91-08002B27B3D9"} {
			_, err := ParseClassID(s)
			require.ErrorIs(t, err, errs.ErrInvalidClassID, s)
		}
	})

	t.Run("MustParseClassID panics", func(t *testing.T) {
		require.Panics(t, func() { MustParseClassID("nope") })
	})
}

func TestClassID_Inverted(t *testing.T) {
	id := MustParseClassID("{F29F85E0-4FF9-1068-AB91-08002B27B3D9}")
	inv := id.Inverted()

	require.Equal(t, byte(0xF2), inv[0])
	require.Equal(t, byte(0xE0), inv[3])
	require.Equal(t, id[8:], inv[8:])
	require.Equal(t, id, inv.Inverted())

	require.True(t, id.Matches(inv))
	require.True(t, inv.Matches(id))
	require.True(t, id.Matches(id))
	require.False(t, id.Matches(ClassID{}))
}

func TestClassIDFromBytes(t *testing.T) {
	b := make([]byte, 20)
	for i := range b {
		b[i] = byte(i)
	}

	id, ok := ClassIDFromBytes(b)
	require.True(t, ok)
	require.Equal(t, byte(15), id[15])
	require.False(t, id.IsZero())

	_, ok = ClassIDFromBytes(b[:15])
	require.False(t, ok)

	require.True(t, ClassID{}.IsZero())
}
