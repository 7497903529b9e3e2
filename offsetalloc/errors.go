package offsetalloc

import (
	cerrors "github.com/cockroachdb/errors"
	"github.com/pkg/errors"
)

// ErrCapacityExhausted is the value Allocate panics with when the
// node pool (sized by maxAllocs at construction) has no free bookkeeping
// record left to hand out. This is
// a configuration error, not an out-of-space condition: the caller sized
// maxAllocs too small for the fragmentation its workload produces.
var ErrCapacityExhausted error = errors.New("offsetalloc: node pool exhausted, maxAllocs too small")

// ErrInvalidHandle is returned when an Allocation's Metadata field does not
// refer to a live node in this allocator.
var ErrInvalidHandle error = errors.New("offsetalloc: handle does not refer to a live allocation")

// ErrDoubleFree is returned by Free when the node a handle refers to is
// already free.
var ErrDoubleFree error = errors.New("offsetalloc: handle refers to an allocation that was already freed")

// ErrLeakedAllocations is returned by Close when allocations are still
// outstanding. It is only ever produced under the debug_offsetalloc build
// tag; production Close is a no-op so that callers don't pay for a walk of
// the free-storage accounting on every shutdown path.
var ErrLeakedAllocations error = errors.New("offsetalloc: allocator closed with outstanding allocations")

func wrapHandlef(handle uint32, format string, args ...any) error {
	return cerrors.Wrapf(ErrInvalidHandle, "handle %d: "+format, append([]any{handle}, args...)...)
}
