package offsetalloc

import "math/bits"

// StorageReport is a cheap, O(1) query over the allocator's current state.
type StorageReport struct {
	TotalFreeSpace    uint32
	LargestFreeRegion uint32
}

// StorageReport returns the total free bytes and an estimate of the
// largest contiguous free region: the representative size of the highest
// non-empty bin, a lower bound on the true largest free region that is
// exact within the round-down granularity of that bin.
func (a *Allocator) StorageReport() StorageReport {
	var largest uint32
	if a.topMask != 0 {
		t := uint8(31 - bits.LeadingZeros32(a.topMask))
		l := uint8(31 - bits.LeadingZeros32(uint32(a.leafMasks[t])))
		largest = binToSize(t<<3 | l)
	}

	return StorageReport{TotalFreeSpace: a.freeStorage, LargestFreeRegion: largest}
}

// FreeRegion summarizes the free nodes sitting in a single bin: how many
// there are and the range of sizes they span.
type FreeRegion struct {
	Count   int
	MinSize uint32
	MaxSize uint32
}

// StorageReportFull is the per-bin breakdown the reference implementation
// declares but never implements (its storageReportFull is a `// TODO:
// Implement` stub returning a zero value). We implement it for real: one
// FreeRegion per bin, indexed by bin; bins with no free nodes hold a zero
// FreeRegion.
type StorageReportFull struct {
	FreeRegions [BinCount]FreeRegion
}

// StorageReportFull walks every bin's free list and records how many free
// nodes it holds and the range of sizes among them. This is an O(free node
// count) diagnostic, unlike the O(1) StorageReport, and is meant for
// tooling and tests rather than the hot path.
func (a *Allocator) StorageReportFull() StorageReportFull {
	var report StorageReportFull

	for b := 0; b < BinCount; b++ {
		region := &report.FreeRegions[b]

		for n := a.binHeads[b]; n != Unused; n = a.nodes[n].binListNext {
			size := a.nodes[n].dataSize

			if region.Count == 0 {
				region.MinSize = size
				region.MaxSize = size
			} else {
				if size < region.MinSize {
					region.MinSize = size
				}
				if size > region.MaxSize {
					region.MaxSize = size
				}
			}
			region.Count++
		}
	}

	return report
}
