package arena

import (
	"sync/atomic"

	"github.com/timandy/routine"
)

// threadArena is per-goroutine allocator state. Go has no notion of OS
// threads, so "per-thread" is approximated at the goroutine level via a
// goroutine-local binding (see newLocal below); see DESIGN.md for that
// tradeoff.
type threadArena struct {
	owner *Allocator

	// bump region: current unused suffix of a page-aligned region
	// pulled from the page provider.
	bumpBegin uintptr
	bumpEnd   uintptr
	bumpSpan  *span // region most recently mapped for bumping; an abandoned tail is not unmapped

	// cache: singly linked free list, LIFO by insertion. cacheTail is
	// kept so a cede or a tail-append split remainder is O(1); the
	// source this package is descended from instead keeps a
	// pointer-to-the-tail-node's-next-field for the same purpose, but a
	// direct tail pointer does the same job without the container_of
	// trick that idiom requires in a language with bounds-checked
	// pointers.
	cacheHead  *span
	cacheTail  *span
	cacheBytes uintptr

	handoff handoffQueue

	// registryNext links this arena into the lock-free arena registry.
	// Written by arenaRegistry.push (once per compare-and-swap attempt)
	// before the arena is published to the thread-local slot.
	registryNext *threadArena
}

func newThreadArena(owner *Allocator) *threadArena {
	return &threadArena{owner: owner}
}

// arenaRegistry is the intrusive, append-only, lock-free singly linked list
// of every arena ever created. Arenas are never removed: a goroutine that
// exits leaves its arena registered as it was. Nothing flushes the arena on
// exit, so spans still in its cache and the unused part of its bump region
// are not reused by any other arena; the reclaimer keeps draining its
// handoff queue, which receives nothing further.
type arenaRegistry struct {
	head atomic.Pointer[threadArena]
}

// push links a into the registry via a compare-and-swap loop.
func (r *arenaRegistry) push(a *threadArena) {
	for {
		head := r.head.Load()
		a.registryNext = head
		if r.head.CompareAndSwap(head, a) {
			return
		}
	}
}

// forEach lock-free traverses every registered arena. It is safe to call
// concurrently with push: a concurrent push either is or isn't observed,
// but the list already visited is never mutated.
func (r *arenaRegistry) forEach(f func(*threadArena)) {
	for a := r.head.Load(); a != nil; a = a.registryNext {
		f(a)
	}
}

// newLocal allocates the goroutine-local slot binding the calling goroutine
// to its arena for one Allocator instance. Each Allocator owns its own
// slot: two Allocator instances (as used in tests for isolation) must never
// share a goroutine's arena. arenaFor creates and registers the arena
// itself on first use, so the slot needs no initial-value supplier — the
// zero value (nil) is exactly the "not yet bound" signal it checks for.
func newLocal() routine.ThreadLocal[*threadArena] {
	return routine.NewThreadLocal[*threadArena]()
}

// arenaFor returns the calling goroutine's arena for a, creating and
// registering one on first use.
func (a *Allocator) arenaFor() *threadArena {
	if ar := a.local.Get(); ar != nil {
		return ar
	}
	ar := newThreadArena(a)
	a.registry.push(ar)
	a.local.Set(ar)
	return ar
}
