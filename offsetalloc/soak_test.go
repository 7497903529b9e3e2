package offsetalloc_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gpumem/offsetalloc/offsetalloc"
)

// TestSoakRandomAllocFreeGuardInvariants performs random alloc/free and
// checks every internal invariant after each step, fixed-seed for
// reproducibility.
func TestSoakRandomAllocFreeGuardInvariants(t *testing.T) {
	a, err := offsetalloc.New(64*mib, offsetalloc.Options{MaxAllocs: 4096})
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(42))
	live := make(map[uint32]offsetalloc.Allocation)

	for i := 0; i < 500; i++ {
		op := rng.Intn(2) // 0=alloc, 1=free

		switch {
		case op == 0 || len(live) == 0:
			size := uint32(1 + rng.Intn(1<<16))
			alloc := a.Allocate(size)
			if alloc.Offset != offsetalloc.NoSpace {
				live[alloc.Metadata] = alloc
			}

		default:
			for k, alloc := range live {
				require.NoError(t, a.Free(alloc), "step %d: free failed", i)
				delete(live, k)
				break
			}
		}

		require.NoError(t, a.Validate(), "step %d: invariant check failed", i)
	}

	for _, alloc := range live {
		require.NoError(t, a.Free(alloc))
	}

	report := a.StorageReport()
	require.Equal(t, uint32(64*mib), report.TotalFreeSpace)
	require.Equal(t, uint32(64*mib), report.LargestFreeRegion)
}

// TestSoakStressAllocFreeCycles runs repeated rounds of bulk alloc followed
// by bulk free, the way a real workload cycles through frames or batches.
func TestSoakStressAllocFreeCycles(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping stress test in short mode")
	}

	a, err := offsetalloc.New(16*mib, offsetalloc.Options{MaxAllocs: 2048})
	require.NoError(t, err)

	rng := rand.New(rand.NewSource(12345))

	for round := 0; round < 20; round++ {
		var allocs []offsetalloc.Allocation
		for i := 0; i < 100; i++ {
			size := uint32(64 + rng.Intn(4096))
			alloc := a.Allocate(size)
			if alloc.Offset != offsetalloc.NoSpace {
				allocs = append(allocs, alloc)
			}
		}

		for _, alloc := range allocs {
			require.NoError(t, a.Free(alloc))
		}

		require.NoError(t, a.Validate(), "round %d: invariant check failed", round)
	}

	report := a.StorageReport()
	require.Equal(t, uint32(16*mib), report.TotalFreeSpace)
	require.Equal(t, uint32(16*mib), report.LargestFreeRegion)
}
