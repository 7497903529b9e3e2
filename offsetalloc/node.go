package offsetalloc

// Unused is the sentinel value standing in for "no such node" in any index
// field of a Node, and for "no such bin" in binHeads.
const Unused uint32 = 0xFFFFFFFF

// NoSpace is returned in both fields of an Allocation when allocate could
// not find a sufficiently large free region.
const NoSpace uint32 = 0xFFFFFFFF

// node is a fixed-size bookkeeping record for one contiguous region of the
// managed range, whether that region is currently free or in use. Nodes
// live in a single fixed-capacity pool (see pool.go) for the lifetime of
// the Allocator; they are never individually allocated or freed from the
// Go heap after construction.
type node struct {
	dataOffset uint32
	dataSize   uint32

	// binListPrev/binListNext link this node into the doubly-linked free
	// list of whichever bin it currently occupies. Only meaningful while
	// the node is free.
	binListPrev uint32
	binListNext uint32

	// neighborPrev/neighborNext link this node into the offset-ordered
	// chain of every node — free or used — that currently tiles
	// [0, size). Used only to find coalescing candidates in O(1).
	neighborPrev uint32
	neighborNext uint32

	used bool
}
