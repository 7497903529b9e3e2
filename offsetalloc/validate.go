package offsetalloc

import "github.com/cockroachdb/errors"

// Validatable is implemented by types that can run an expensive internal
// consistency check of their own invariants. debugValidate (see
// validate_debug.go / validate_prod.go) calls Validate on the allocator at
// strategic points, but only when built with the debug_offsetalloc tag.
type Validatable interface {
	Validate() error
}

var _ Validatable = (*Allocator)(nil)

// Validate walks every internal structure and checks all of the core
// invariants: the neighbor chain tiles [0, size) with no two adjacent free
// nodes, every bin head agrees with the two-level bitmap, every node in a
// bin is free and correctly binned, freeStorage matches the sum of free
// node sizes, and the freelist and the live node set partition
// [0, maxAllocs).
//
// This is a diagnostic: it visits every node in the pool and is not meant
// to run on the hot allocate/free path outside of debug builds.
func (a *Allocator) Validate() error {
	maxAllocs := uint32(len(a.nodes))

	poolFree := make(map[uint32]struct{}, a.freeOffset+1)
	for i := 0; i <= a.freeOffset; i++ {
		idx := a.freeNodes[i]
		if _, dup := poolFree[idx]; dup {
			return errors.Errorf("node %d appears twice in the freelist", idx)
		}
		poolFree[idx] = struct{}{}
	}

	if err := a.validateBins(poolFree); err != nil {
		return err
	}

	visited, err := a.validateNeighborChain(poolFree)
	if err != nil {
		return err
	}

	if uint32(len(visited))+uint32(len(poolFree)) != maxAllocs {
		return errors.Errorf(
			"freelist (%d nodes) and live nodes (%d nodes) do not partition the %d-node pool",
			len(poolFree), len(visited), maxAllocs,
		)
	}

	return nil
}

func (a *Allocator) validateBins(poolFree map[uint32]struct{}) error {
	var sumFree uint32

	for b := 0; b < BinCount; b++ {
		t := uint8(b) >> mantissaBits
		l := uint8(b) & mantissaMask
		headPresent := a.binHeads[b] != Unused
		leafSet := a.leafMasks[t]&(1<<l) != 0

		if headPresent != leafSet {
			return errors.Errorf("bin %d: binHeads present=%v but leaf bit set=%v", b, headPresent, leafSet)
		}
		if leafSet && a.topMask&(1<<uint32(t)) == 0 {
			return errors.Errorf("bin %d: leaf bit set but top bit clear for top bin %d", b, t)
		}

		for n := a.binHeads[b]; n != Unused; n = a.nodes[n].binListNext {
			node := &a.nodes[n]
			if node.used {
				return errors.Errorf("node %d sits in bin %d's free list but is marked used", n, b)
			}
			if got := binIndexRoundDown(node.dataSize); got != uint8(b) {
				return errors.Errorf("node %d has size %d (bin %d) but sits in bin %d", n, node.dataSize, got, b)
			}
			if _, free := poolFree[n]; free {
				return errors.Errorf("node %d is in bin %d's free list and also on the pool freelist", n, b)
			}

			sumFree += node.dataSize
		}
	}

	for t := 0; t < TopBinCount; t++ {
		leafNonZero := a.leafMasks[t] != 0
		topSet := a.topMask&(1<<uint32(t)) != 0
		if leafNonZero != topSet {
			return errors.Errorf("top bin %d: leaf mask nonzero=%v but top bit set=%v", t, leafNonZero, topSet)
		}
	}

	if sumFree != a.freeStorage {
		return errors.Errorf("freeStorage is %d but free nodes sum to %d", a.freeStorage, sumFree)
	}

	return nil
}

// validateNeighborChain walks the offset-ordered chain from its single
// start node and returns the set of node indices it visited.
func (a *Allocator) validateNeighborChain(poolFree map[uint32]struct{}) (map[uint32]struct{}, error) {
	var head uint32 = Unused
	for idx := uint32(0); idx < uint32(len(a.nodes)); idx++ {
		if _, free := poolFree[idx]; free {
			continue
		}
		if a.nodes[idx].neighborPrev == Unused {
			if head != Unused {
				return nil, errors.Errorf("nodes %d and %d both claim to start the neighbor chain", head, idx)
			}
			head = idx
		}
	}
	if head == Unused {
		return nil, errors.New("no live node claims to start the neighbor chain")
	}

	visited := make(map[uint32]struct{})
	var offset uint32
	prevFree := false

	for n := head; n != Unused; {
		if _, dup := visited[n]; dup {
			return nil, errors.Errorf("neighbor chain cycles back to node %d", n)
		}
		visited[n] = struct{}{}

		node := &a.nodes[n]
		if node.dataOffset != offset {
			return nil, errors.Errorf("node %d starts at %d, expected %d", n, node.dataOffset, offset)
		}

		isFree := !node.used
		if isFree && prevFree {
			return nil, errors.Errorf("node %d and its predecessor are both free", n)
		}
		prevFree = isFree

		offset += node.dataSize
		n = node.neighborNext
	}

	if offset != a.size {
		return nil, errors.Errorf("neighbor chain covers %d bytes, expected %d", offset, a.size)
	}

	return visited, nil
}
