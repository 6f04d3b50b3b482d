package credfile

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRollingKey_Sequence40(t *testing.T) {
	want := []byte{
		8, 13, 18, 23, 28, 1, 6, 11, 16, 21, 26, 31, 4, 9, 14, 19, 24, 29, 2, 7,
		12, 17, 22, 27, 0, 5, 10, 15, 20, 25, 30, 3, 8, 13, 18, 23, 28, 1, 6, 11,
	}

	key := newRollingKey(40)
	got := make([]byte, 0, 40)
	for range 40 {
		got = append(got, key.next())
	}
	assert.Equal(t, want, got)

	// XOR over zero bytes exposes the masked key stream directly.
	zeros := Transform(make([]byte, 40))
	for i, k := range want {
		assert.Equalf(t, k^0x06, zeros[i], "byte %d", i)
	}
}

func TestRollingKey_InitialValue(t *testing.T) {
	tests := []struct {
		n    int
		want byte
	}{
		{0, 0},
		{1, 1},
		{31, 31},
		{32, 0},
		{33, 1},
		{1000, 8},
	}
	for _, tt := range tests {
		assert.Equalf(t, tt.want, newRollingKey(tt.n).next(), "n=%d", tt.n)
	}
}

func TestTransform_RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, n := range []int{0, 1, 31, 32, 33, 1000} {
		b := make([]byte, n)
		rng.Read(b)

		once := Transform(b)
		twice := Transform(once)
		require.Truef(t, bytes.Equal(b, twice), "round trip failed for n=%d", n)
		if n > 0 {
			assert.Falsef(t, bytes.Equal(b, once), "transform left n=%d input unchanged", n)
		}
	}
}

func TestTransform_DoesNotMutateInput(t *testing.T) {
	in := []byte("station")
	orig := append([]byte(nil), in...)
	_ = Transform(in)
	assert.Equal(t, orig, in)
}
