package offsetalloc

// popFreeNode pops the top index off the freelist stack. The second return
// value is false if the pool is exhausted (freeOffset has underflowed),
// which the caller must treat as capacity exhaustion — a configuration
// error, never an ordinary out-of-space result.
func (a *Allocator) popFreeNode() (uint32, bool) {
	if a.freeOffset < 0 {
		return 0, false
	}

	idx := a.freeNodes[a.freeOffset]
	a.freeOffset--

	a.logger.Debug("popped node from freelist", "node", idx, "freeOffset", a.freeOffset)

	return idx, true
}

// pushFreeNode returns nodeIndex to the freelist stack, making it available
// for reuse by a future insertNodeIntoBin.
func (a *Allocator) pushFreeNode(nodeIndex uint32) {
	a.freeOffset++
	a.freeNodes[a.freeOffset] = nodeIndex

	a.logger.Debug("pushed node to freelist", "node", nodeIndex, "freeOffset", a.freeOffset)
}
