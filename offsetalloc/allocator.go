package offsetalloc

import (
	"github.com/cockroachdb/errors"
	"golang.org/x/exp/slog"
)

// DefaultMaxAllocs is the maxAllocs value used when Options.MaxAllocs is
// left at zero.
const DefaultMaxAllocs uint32 = 131072

// Options carries construction-time settings for New that aren't part of
// the hot allocate/free path.
type Options struct {
	// MaxAllocs caps the number of outstanding allocations plus free
	// fragments the allocator can track at once. Zero means
	// DefaultMaxAllocs.
	MaxAllocs uint32

	// Logger receives debug-level trace events mirroring the reference
	// implementation's verbose tracing (node pulled from/returned to the
	// freelist, free storage deltas). Nil means no logging.
	Logger *slog.Logger
}

// Allocation is the result of a successful Allocate call: Offset is where
// the caller's region begins within [0, Size), and Metadata is an opaque
// handle to pass back to Free. Both fields are NoSpace when allocation
// fails.
type Allocation struct {
	Offset   uint32
	Metadata uint32
}

// Allocator is a two-level segregated-fit offset allocator over a fixed
// range [0, size). It owns no backing memory — it only tracks which
// sub-ranges of that abstract range are currently handed out.
//
// Allocator is NOT goroutine-safe.
type Allocator struct {
	size uint32

	nodes     []node
	freeNodes []uint32
	freeOffset int

	binHeads  [BinCount]uint32
	leafMasks [TopBinCount]uint8
	topMask   uint32

	freeStorage uint32
	allocCount  int

	logger *slog.Logger
}

// New constructs an Allocator managing the range [0, size). size must be
// greater than zero. opts.MaxAllocs, if nonzero, overrides DefaultMaxAllocs
// and must be at least 1.
func New(size uint32, opts Options) (*Allocator, error) {
	if size == 0 {
		return nil, errors.New("offsetalloc: size must be greater than zero")
	}

	maxAllocs := opts.MaxAllocs
	if maxAllocs == 0 {
		maxAllocs = DefaultMaxAllocs
	}
	if maxAllocs < 1 {
		return nil, errors.New("offsetalloc: maxAllocs must be at least 1")
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(discard{}))
	}

	a := &Allocator{
		size:      size,
		nodes:     make([]node, maxAllocs),
		freeNodes: make([]uint32, maxAllocs),
		logger:    logger,
	}

	for b := range a.binHeads {
		a.binHeads[b] = Unused
	}

	for i := range a.freeNodes {
		a.freeNodes[i] = maxAllocs - uint32(i) - 1
	}
	a.freeOffset = int(maxAllocs) - 1

	// Whole range starts as one free node. Allocation will split remainders
	// and push them back as smaller nodes.
	a.insertNodeIntoBin(size, 0)

	return a, nil
}

// Size returns the total size of the managed range.
func (a *Allocator) Size() uint32 { return a.size }

// AllocationCount returns the number of currently outstanding allocations.
func (a *Allocator) AllocationCount() int { return a.allocCount }

// Allocate reserves a sub-range of size bytes and returns its offset and an
// opaque handle to pass to Free. size == 0 is permitted and yields a
// zero-length region at some valid offset; Free still recovers its node.
//
// On failure (no sufficiently large free region exists) both fields of the
// returned Allocation equal NoSpace and the allocator's state is unchanged.
func (a *Allocator) Allocate(size uint32) Allocation {
	debugValidate(a)

	minBin := binIndexRoundUp(size)
	minTop := uint32(minBin >> 3)
	minLeaf := uint32(minBin & 7)

	t := lowestSetBitAtOrAfter(a.topMask, minTop)
	if t == NoSpace {
		return Allocation{Offset: NoSpace, Metadata: NoSpace}
	}

	if t != minTop {
		minLeaf = 0
	}

	l := lowestSetBitAtOrAfter(uint32(a.leafMasks[t]), minLeaf)
	if l == NoSpace {
		return Allocation{Offset: NoSpace, Metadata: NoSpace}
	}

	b := uint8(t<<3) | uint8(l)
	nodeIndex := a.binHeads[b]

	n := &a.nodes[nodeIndex]
	total := n.dataSize

	// Unlink from the bin.
	a.binHeads[b] = n.binListNext
	if n.binListNext != Unused {
		a.nodes[n.binListNext].binListPrev = Unused
	}
	if a.binHeads[b] == Unused {
		a.leafMasks[t] &^= 1 << l
		if a.leafMasks[t] == 0 {
			a.topMask &^= 1 << t
		}
	}

	n.used = true
	n.dataSize = size
	a.freeStorage -= total

	a.logger.Debug("allocated node", "node", nodeIndex, "size", size, "offset", n.dataOffset, "freeStorage", a.freeStorage)

	remainder := total - size
	if remainder > 0 {
		newNodeIndex := a.insertNodeIntoBin(remainder, n.dataOffset+size)

		if n.neighborNext != Unused {
			a.nodes[n.neighborNext].neighborPrev = newNodeIndex
		}
		a.nodes[newNodeIndex].neighborPrev = nodeIndex
		a.nodes[newNodeIndex].neighborNext = n.neighborNext
		n.neighborNext = newNodeIndex
	}

	a.allocCount++

	return Allocation{Offset: n.dataOffset, Metadata: nodeIndex}
}

// Free releases a previously returned allocation, coalescing it with any
// physically adjacent free neighbors. It is undefined behavior to pass an
// Allocation whose Metadata is NoSpace, that was already freed, or that
// came from another Allocator — Free makes a best effort to detect the
// latter two cases and return an error rather than corrupt state, but a
// handle from a different Allocator instance that happens to be in range
// and marked used will not be caught.
func (a *Allocator) Free(alloc Allocation) error {
	debugValidate(a)

	nodeIndex := alloc.Metadata
	if nodeIndex == NoSpace || int(nodeIndex) >= len(a.nodes) {
		return wrapHandlef(nodeIndex, "out of range")
	}

	n := &a.nodes[nodeIndex]
	if !n.used {
		return errors.Wrapf(ErrDoubleFree, "handle %d", nodeIndex)
	}

	offset := n.dataOffset
	size := n.dataSize

	if n.neighborPrev != Unused && !a.nodes[n.neighborPrev].used {
		prev := &a.nodes[n.neighborPrev]
		offset = prev.dataOffset
		size += prev.dataSize

		a.removeNodeFromBin(n.neighborPrev)
		n.neighborPrev = prev.neighborPrev
	}

	if n.neighborNext != Unused && !a.nodes[n.neighborNext].used {
		next := &a.nodes[n.neighborNext]
		size += next.dataSize

		a.removeNodeFromBin(n.neighborNext)
		n.neighborNext = next.neighborNext
	}

	neighborPrev := n.neighborPrev
	neighborNext := n.neighborNext

	a.pushFreeNode(nodeIndex)

	combinedIndex := a.insertNodeIntoBin(size, offset)

	if neighborNext != Unused {
		a.nodes[combinedIndex].neighborNext = neighborNext
		a.nodes[neighborNext].neighborPrev = combinedIndex
	}
	if neighborPrev != Unused {
		a.nodes[combinedIndex].neighborPrev = neighborPrev
		a.nodes[neighborPrev].neighborNext = combinedIndex
	}

	a.allocCount--

	return nil
}

// Close performs end-of-life bookkeeping. Under the debug_offsetalloc build
// tag it verifies no allocations are outstanding (mirroring the reference
// implementation's destructor assertion) and returns ErrLeakedAllocations
// if any remain; otherwise it is a no-op; Go's garbage collector reclaims
// the Allocator's backing arrays regardless.
func (a *Allocator) Close() error {
	return a.debugCloseCheck()
}

// discard is an io.Writer that throws away everything written to it, used
// as the default slog handler sink when no Logger is configured.
type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
