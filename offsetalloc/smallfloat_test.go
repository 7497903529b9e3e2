package offsetalloc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBinIndexDenormIdentity(t *testing.T) {
	// Below mantissaValue (8), both directions are the identity: there's no
	// exponent to round into yet.
	for i := uint32(0); i < mantissaValue; i++ {
		require.Equal(t, uint8(i), binIndexRoundUp(i), "roundUp(%d)", i)
		require.Equal(t, uint8(i), binIndexRoundDown(i), "roundDown(%d)", i)
		require.Equal(t, i, binToSize(uint8(i)), "binToSize(%d)", i)
	}
}

func TestBinIndexRoundTrip(t *testing.T) {
	// Bins 240 and above represent sizes of 2^32 or more, which binToSize
	// cannot express in a uint32, so the round trip stops below 240.
	for v := 0; v < 240; v++ {
		size := binToSize(uint8(v))
		require.Equal(t, uint8(v), binIndexRoundUp(size), "roundUp(binToSize(%d))", v)
		require.Equal(t, uint8(v), binIndexRoundDown(size), "roundDown(binToSize(%d))", v)
	}
}

func TestBinIndexMonotonic(t *testing.T) {
	var prevUp, prevDown uint8
	var prevSize uint32

	for size := uint32(0); size < 1<<20; size += 17 {
		up := binIndexRoundUp(size)
		down := binIndexRoundDown(size)

		require.GreaterOrEqualf(t, up, down, "size %d: roundUp bin below roundDown bin", size)

		if size > prevSize {
			require.GreaterOrEqual(t, up, prevUp, "roundUp not monotonic at size %d", size)
			require.GreaterOrEqual(t, down, prevDown, "roundDown not monotonic at size %d", size)
		}

		prevUp, prevDown, prevSize = up, down, size
	}
}

func TestBinIndexSpotChecks(t *testing.T) {
	cases := []struct {
		size       uint32
		up, down uint8
	}{
		{17, 17, 16},
		{118, 39, 38},
		{1024, 64, 64},
		{65536, 112, 112},
		{529445, 137, 136},
		{1048575, 144, 143},
	}

	for _, c := range cases {
		require.Equal(t, c.up, binIndexRoundUp(c.size), "roundUp(%d)", c.size)
		require.Equal(t, c.down, binIndexRoundDown(c.size), "roundDown(%d)", c.size)
	}
}

func TestBinIndexRoundUpNeverUnderclaims(t *testing.T) {
	for size := uint32(1); size < 1<<24; size += 2047 {
		b := binIndexRoundUp(size)
		require.GreaterOrEqual(t, binToSize(b), size, "bin %d (from size %d) underclaims", b, size)
	}
}

func TestBinIndexRoundDownNeverOverclaims(t *testing.T) {
	for size := uint32(1); size < 1<<24; size += 2047 {
		b := binIndexRoundDown(size)
		require.LessOrEqual(t, binToSize(b), size, "bin %d (from size %d) overclaims", b, size)
	}
}
