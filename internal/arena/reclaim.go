package arena

import (
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// reclaimer is the single long-lived background worker that drains every
// arena's handoff queue, coalesces the result by address, and deposits a
// size-sorted pool into the central pool.
type reclaimer struct {
	owner *Allocator

	mu         sync.Mutex
	cond       *sync.Cond
	awakenings atomic.Int64

	// deleted is the reclaimer's private working list. It persists
	// across iterations: at the top of every iteration it is re-sorted
	// (and re-coalesced) by address before being merged with the
	// freshly drained, already address-sorted lists from each arena.
	// This re-sort is necessary because deleted is seeded, at the end
	// of the previous iteration, from whatever was in the central pool
	// before the swap — which is sorted by size, not address.
	deleted *span
}

func newReclaimer(owner *Allocator) *reclaimer {
	r := &reclaimer{owner: owner}
	r.cond = sync.NewCond(&r.mu)
	return r
}

func (r *reclaimer) start() {
	go r.loop()
}

// signal wakes the reclaimer. Called by an arena whenever it cedes its
// cache to the handoff queue.
func (r *reclaimer) signal() {
	r.mu.Lock()
	r.awakenings.Add(1)
	r.mu.Unlock()
	r.cond.Signal()
}

func (r *reclaimer) loop() {
	for {
		r.mu.Lock()
		for r.awakenings.Load() == 0 {
			r.cond.Wait()
		}
		r.awakenings.Store(0)
		r.mu.Unlock()

		r.drainAndCoalesce()
	}
}

func (r *reclaimer) drainAndCoalesce() {
	r.deleted = sortByAddressCoalesced(r.deleted)

	drained := 0
	r.owner.registry.forEach(func(a *threadArena) {
		list := a.handoff.drain()
		if list == nil {
			return
		}
		list = sortByAddressCoalesced(list)
		r.deleted = mergeByAddressCoalesced(r.deleted, list)
		drained++
	})

	sorted := sortBySizeDescending(r.deleted)
	r.deleted = r.owner.central.swap(sorted)

	logger.Debug("reclaimer drained arenas",
		zap.Int("arenas_with_work", drained),
		zap.Uintptr("pool_head_size", headSizeOf(sorted)),
	)
}

func headSizeOf(s *span) uintptr {
	if s == nil {
		return 0
	}
	return s.size
}
