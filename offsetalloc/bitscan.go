package offsetalloc

import "math/bits"

// lowestSetBitAtOrAfter returns the index of the lowest set bit in mask at
// position >= start, or NoSpace if no such bit is set. start may be equal
// to the mask's bit width, in which case the result is always NoSpace.
func lowestSetBitAtOrAfter(mask uint32, start uint32) uint32 {
	if start >= 32 {
		return NoSpace
	}

	masked := mask &^ (1<<start - 1)
	if masked == 0 {
		return NoSpace
	}

	return uint32(bits.TrailingZeros32(masked))
}
