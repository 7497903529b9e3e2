// Package offsetalloc implements a hard-realtime, two-level segregated-fit
// offset allocator.
//
// The allocator partitions a fixed-size abstract range [0, S) into
// non-overlapping sub-ranges of caller-requested size and hands back an
// offset plus an opaque metadata handle — it never owns or touches any
// backing memory. It is meant to sub-allocate regions out of some external
// resource the caller already reserved (a GPU buffer, a file, an mmap
// region).
//
// Every operation runs in bounded time independent of how many allocations
// are currently live: the size-to-bin codec is a handful of bit ops, bin
// search touches at most two bitmasks, and both allocate and free touch a
// small constant number of nodes.
//
// WARNING: Allocator is NOT goroutine-safe. The caller must serialize all
// access to a single Allocator, including across Allocate, Free, and the
// reporting methods.
package offsetalloc
