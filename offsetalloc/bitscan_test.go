package offsetalloc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLowestSetBitAtOrAfter(t *testing.T) {
	require.Equal(t, uint32(3), lowestSetBitAtOrAfter(0b1000, 0))
	require.Equal(t, uint32(3), lowestSetBitAtOrAfter(0b1000, 3))
	require.Equal(t, NoSpace, lowestSetBitAtOrAfter(0b1000, 4))
	require.Equal(t, uint32(0), lowestSetBitAtOrAfter(0b1111, 0))
	require.Equal(t, NoSpace, lowestSetBitAtOrAfter(0, 0))
	require.Equal(t, NoSpace, lowestSetBitAtOrAfter(0xFFFFFFFF, 32))
	require.Equal(t, uint32(31), lowestSetBitAtOrAfter(1<<31, 0))
	require.Equal(t, uint32(31), lowestSetBitAtOrAfter(1<<31, 31))
}
