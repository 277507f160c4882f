package arena

import "unsafe"

// allocate services one request of size bytes (already rounded, already
// known to be below largeThreshold) from this arena: cache, then central
// pool, then the bump region, refilling the bump region from the page
// provider as a last resort.
func (ar *threadArena) allocate(owner *Allocator, size uintptr) *span {
	if s := ar.tryCache(size); s != nil {
		return s
	}
	if s := ar.tryCentral(owner, size); s != nil {
		return s
	}
	return ar.allocateFromBump(owner, size)
}

// tryCache satisfies size from the arena's own cache without touching any
// lock. It returns nil if the cache can't help.
func (ar *threadArena) tryCache(size uintptr) *span {
	if ar.cacheHead == nil || ar.cacheHead.size < size {
		return nil
	}
	detached := ar.cacheHead
	ar.cacheHead = detached.next
	if ar.cacheHead == nil {
		ar.cacheTail = nil
	}

	before := detached.size
	head, remainder := detached.split(size)
	ar.cacheBytes -= before
	if remainder != nil {
		ar.insertSplitRemainder(remainder)
	}
	return head
}

// insertSplitRemainder reinserts a split remainder into the cache at the
// position that keeps it roughly size-ordered: appended at the tail if it
// is smaller than whatever is now at the front, otherwise pushed to the
// front.
func (ar *threadArena) insertSplitRemainder(remainder *span) {
	if ar.cacheHead != nil && remainder.size < ar.cacheHead.size {
		ar.appendCache(remainder)
	} else {
		ar.pushCache(remainder)
	}
	ar.cacheBytes += remainder.size
}

func (ar *threadArena) pushCache(s *span) {
	s.next = ar.cacheHead
	ar.cacheHead = s
	if ar.cacheTail == nil {
		ar.cacheTail = s
	}
}

func (ar *threadArena) appendCache(s *span) {
	s.next = nil
	if ar.cacheTail == nil {
		ar.cacheHead = s
	} else {
		ar.cacheTail.next = s
	}
	ar.cacheTail = s
}

// tryCentral takes a span from the shared central pool, splitting off any
// remainder into this arena's own cache (never back into the central
// pool). It returns nil if the central pool has nothing big enough.
func (ar *threadArena) tryCentral(owner *Allocator, size uintptr) *span {
	s, ok := owner.central.take(size)
	if !ok {
		return nil
	}
	head, remainder := s.split(size)
	if remainder != nil {
		ar.pushCache(remainder)
		ar.cacheBytes += remainder.size
	}
	return head
}

// allocateFromBump carves size bytes off the arena's bump region,
// refilling it from the page provider first if necessary.
func (ar *threadArena) allocateFromBump(owner *Allocator, size uintptr) *span {
	if ar.bumpEnd-ar.bumpBegin < size {
		ar.refillBump(owner, size)
	}
	s := spanAt(unsafe.Pointer(ar.bumpBegin))
	s.size = size
	s.next = nil
	ar.bumpBegin += size
	return s
}

// refillBump abandons the current bump region (its unused tail, if any,
// stays mapped and is neither reused nor returned to the page provider)
// and maps a fresh one at least size bytes, and at least bumpChunkPages
// pages, long.
func (ar *threadArena) refillBump(owner *Allocator, size uintptr) {
	want := size
	if chunk := uintptr(bumpChunkPages) * pageSize; chunk > want {
		want = chunk
	}
	want = roundUp(want, pageSize)

	region, err := owner.pager.Map(int(want))
	if err != nil {
		owner.fatal(err)
	}
	s := spanFromRegion(region)
	ar.bumpSpan = s
	ar.bumpBegin = uintptr(unsafe.Pointer(s))
	ar.bumpEnd = s.end()
}

// release pushes s onto the arena's cache and, once cache_bytes crosses
// the watermark, cedes the whole cache to the handoff queue and wakes the
// reclaimer.
func (ar *threadArena) release(owner *Allocator, s *span) {
	ar.pushCache(s)
	ar.cacheBytes += s.size

	if ar.cacheBytes >= owner.watermarkBytes {
		ar.cede(owner)
	}
}

// cede splices the whole cache onto the front of the handoff queue and
// resets the cache to empty.
func (ar *threadArena) cede(owner *Allocator) {
	head, tail := ar.cacheHead, ar.cacheTail
	ar.cacheHead = nil
	ar.cacheTail = nil
	ar.cacheBytes = 0

	ar.handoff.splice(head, tail)
	owner.reclaimer.signal()
}
