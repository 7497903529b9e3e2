//go:build debug_offsetalloc

package offsetalloc

import (
	"github.com/cockroachdb/errors"
	"github.com/dolthub/swiss"
)

// debugValidate runs v.Validate() and panics on failure. It is a no-op
// unless the debug_offsetalloc build tag is present, mirroring the
// teacher's debug_mem_utils split between validate_debug.go/validate_prod.go.
func debugValidate(v Validatable) {
	if err := v.Validate(); err != nil {
		panic(err)
	}
}

// debugLiveSetCheck independently re-derives the live node set by walking
// the neighbor chain from its start node and inserting every visited index
// into a swiss set, then checks that set is exactly the complement of the
// pool freelist — both in size and in membership, which a plain cardinality
// comparison (as Validate does with a stdlib map) would not catch if a
// node were simultaneously missing from one set and spuriously present in
// the other. Uses a swiss.Map as a debug-only invariant check: this
// allocator addresses nodes directly by pool index in production, so it
// has no need for a production-side handle map at all.
func (a *Allocator) debugLiveSetCheck() error {
	poolFree := swiss.NewMap[uint32, struct{}](uint32(a.freeOffset + 1))
	for i := 0; i <= a.freeOffset; i++ {
		poolFree.Put(a.freeNodes[i], struct{}{})
	}

	var head uint32 = Unused
	for idx := uint32(0); idx < uint32(len(a.nodes)); idx++ {
		if _, free := poolFree.Get(idx); free {
			continue
		}
		if a.nodes[idx].neighborPrev == Unused {
			head = idx
			break
		}
	}
	if head == Unused {
		return errors.New("no live node claims to start the neighbor chain")
	}

	visited := swiss.NewMap[uint32, struct{}](uint32(len(a.nodes)))
	for n := head; n != Unused; n = a.nodes[n].neighborNext {
		if _, free := poolFree.Get(n); free {
			return wrapHandlef(n, "reachable from the neighbor chain but present on the pool freelist")
		}
		visited.Put(n, struct{}{})
	}

	if visited.Count()+poolFree.Count() != len(a.nodes) {
		return errors.Errorf(
			"live nodes (%d) and pool freelist (%d) do not partition the %d-node pool",
			visited.Count(), poolFree.Count(), len(a.nodes),
		)
	}

	return nil
}

// debugCloseCheck verifies no allocations are outstanding, mirroring the
// reference implementation's destructor assertion. It is a no-op unless
// the debug_offsetalloc build tag is present.
func (a *Allocator) debugCloseCheck() error {
	report := a.StorageReport()
	if report.TotalFreeSpace != a.size || report.LargestFreeRegion != a.size {
		return ErrLeakedAllocations
	}

	return a.debugLiveSetCheck()
}
