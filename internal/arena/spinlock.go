package arena

import (
	"runtime"
	"sync/atomic"
)

// spinLock is a short test-and-set latch, not a general-purpose mutex: it
// is only ever held across O(1) list-splice operations (handoff queue,
// central pool), never across a syscall or a suspension point.
type spinLock struct {
	held atomic.Bool
}

func (l *spinLock) Lock() {
	for !l.held.CompareAndSwap(false, true) {
		runtime.Gosched()
	}
}

func (l *spinLock) Unlock() {
	l.held.Store(false)
}
