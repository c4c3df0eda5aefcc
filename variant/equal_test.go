package variant

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/propset/format"
)

func TestPad4(t *testing.T) {
	require.Equal(t, []byte{}, Pad4([]byte{}))
	require.Equal(t, []byte{1, 0, 0, 0}, Pad4([]byte{1}))
	require.Equal(t, []byte{1, 2, 3, 4}, Pad4([]byte{1, 2, 3, 4}))

	in := []byte{1, 2}
	out := Pad4(in)
	require.Len(t, in, 2)
	require.Len(t, out, 4)
}

func TestEqualPadded(t *testing.T) {
	require.True(t, EqualPadded([]byte{1, 2, 3}, []byte{1, 2, 3, 0}))
	require.False(t, EqualPadded([]byte{1, 2, 3}, []byte{1, 2, 3, 1}))
	require.False(t, EqualPadded([]byte{1, 2, 3, 0}, []byte{1, 2, 3, 0, 0}))
}

func TestEqual(t *testing.T) {
	nan := Float(math.NaN())
	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"int", Int(1), Int(1), true},
		{"int vs int64", Int(1), Int64(1), false},
		{"string", String("a"), String("a"), true},
		{"nan", nan, nan, true},
		{"float", Float(1.5), Float(1.25), false},
		{"blob padded", Blob{1, 2}, Blob{1, 2, 0, 0}, true},
		{"clipboard format", Clipboard{Format: 1}, Clipboard{Format: 2}, false},
		{"opaque", Opaque{Type: 0x49, Data: []byte{1}}, Opaque{Type: 0x49, Data: []byte{1, 0}}, true},
		{"vector", Vector{Elem: format.VTI4, Items: []Value{Int(1)}}, Vector{Elem: format.VTI4, Items: []Value{Int(1)}}, true},
		{"vector len", Vector{Elem: format.VTI4, Items: []Value{Int(1)}}, Vector{Elem: format.VTI4}, false},
		{"variant", Variant{Type: format.VTI4, Value: Int(1)}, Variant{Type: format.VTI2, Value: Int(1)}, false},
		{"nil", nil, nil, true},
		{"nil vs empty", nil, Empty{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Equal(tt.a, tt.b))
		})
	}
}

func TestFiletime(t *testing.T) {
	require.Equal(t, Filetime(116444736000000000), FiletimeFromTime(time.Unix(0, 0)))

	ts := time.Date(2024, 2, 29, 23, 59, 59, 123456700, time.UTC)
	require.True(t, ts.Equal(FiletimeFromTime(ts).Time()))
	require.Equal(t, time.Date(1601, 1, 1, 0, 0, 0, 0, time.UTC), Filetime(0).Time())
}

func TestFiletime_Range(t *testing.T) {
	epoch := time.Date(1601, 1, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		in   time.Time
		want Filetime
	}{
		{name: "epoch", in: epoch, want: 0},
		{name: "first tick", in: epoch.Add(100 * time.Nanosecond), want: 1},
		{name: "before epoch", in: epoch.Add(-time.Nanosecond), want: 0},
		{name: "year 1", in: time.Date(1, 1, 1, 0, 0, 0, 0, time.UTC), want: 0},
		{name: "zero time", in: time.Time{}, want: 0},
		{name: "far future", in: time.Date(100000, 1, 1, 0, 0, 0, 0, time.UTC), want: Filetime(math.MaxUint64)},
		{name: "last tick", in: Filetime(math.MaxUint64).Time(), want: Filetime(math.MaxUint64)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, FiletimeFromTime(tt.in))
		})
	}

	last := Filetime(math.MaxUint64).Time()
	require.True(t, last.After(time.Date(60000, 1, 1, 0, 0, 0, 0, time.UTC)))
	require.Equal(t, Filetime(math.MaxUint64-1), FiletimeFromTime(last.Add(-100*time.Nanosecond)))
}

func TestInterface(t *testing.T) {
	require.Nil(t, Interface(Empty{}))
	require.Equal(t, int64(5), Interface(Int(5)))
	require.Equal(t, "x", Interface(String("x")))
	require.Equal(t, true, Interface(Bool(true)))
}
