package arena

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/timandy/routine"
	"go.uber.org/zap"
)

// Allocator is the public facade: three operations, selecting the
// large-span path or the cached path per request. A process normally uses
// the package-level Allocate/Release/Resize, which are bound to a single
// default instance the way malloc/free/realloc are process-global; New
// exists so tests (and embedders who want isolation) can supply their own
// PageProvider instead of touching real OS mappings.
type Allocator struct {
	pager     PageProvider
	central   centralPool
	registry  arenaRegistry
	reclaimer *reclaimer
	local     routine.ThreadLocal[*threadArena]

	watermarkBytes uintptr

	startReclaimer sync.Once
}

// Option configures an Allocator constructed with New.
type Option func(*Allocator)

// WithWatermark overrides the default cache_bytes threshold that triggers
// an arena handing its cache to the reclaimer. Any positive value is
// correct; the default matches the most complete iteration of the source
// this package is descended from (see SPEC_FULL.md).
func WithWatermark(bytes uintptr) Option {
	return func(a *Allocator) {
		if bytes > 0 {
			a.watermarkBytes = bytes
		}
	}
}

// New builds an Allocator backed by the given PageProvider.
func New(pager PageProvider, opts ...Option) *Allocator {
	a := &Allocator{
		pager:          pager,
		local:          newLocal(),
		watermarkBytes: watermark,
	}
	a.reclaimer = newReclaimer(a)
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// NewDefault builds an Allocator backed by real anonymous OS mappings.
func NewDefault(opts ...Option) *Allocator {
	return New(osPager{}, opts...)
}

var defaultAllocator = NewDefault()

// Allocate returns a 16-byte-aligned pointer to at least n writable bytes,
// or nil if n is 0. It aborts the process on OS exhaustion.
func Allocate(n int) unsafe.Pointer { return defaultAllocator.Allocate(n) }

// Release returns ptr, previously obtained from Allocate or Resize, to the
// allocator. ptr == nil is a no-op; releasing an already-released pointer
// is undefined.
func Release(ptr unsafe.Pointer) { defaultAllocator.Release(ptr) }

// Resize returns a pointer to at least m writable bytes, preserving the
// leading min(old, m) bytes of ptr's contents. A nil ptr delegates to
// Allocate; m == 0 releases ptr and returns nil, as Allocate(0) does.
func Resize(ptr unsafe.Pointer, m int) unsafe.Pointer { return defaultAllocator.Resize(ptr, m) }

func (a *Allocator) ensureReclaimer() {
	a.startReclaimer.Do(func() {
		logger.Info("starting reclaimer")
		a.reclaimer.start()
	})
}

// Allocate is the Allocator method backing the package-level Allocate.
func (a *Allocator) Allocate(n int) unsafe.Pointer {
	if n <= 0 {
		return nil
	}
	a.ensureReclaimer()

	size := round(uintptr(n))
	if isLarge(size) {
		return a.allocateLarge(size).payload()
	}

	ar := a.arenaFor()
	return ar.allocate(a, size).payload()
}

// Release is the Allocator method backing the package-level Release.
func (a *Allocator) Release(ptr unsafe.Pointer) {
	if ptr == nil {
		return
	}
	s := spanOf(ptr)
	if isLarge(s.size) {
		if err := a.pager.Unmap(regionOf(s)); err != nil {
			logger.Error("unmap failed", zap.Error(err))
		}
		return
	}
	ar := a.arenaFor()
	ar.release(a, s)
}

// Resize is the Allocator method backing the package-level Resize.
func (a *Allocator) Resize(ptr unsafe.Pointer, m int) unsafe.Pointer {
	if ptr == nil {
		return a.Allocate(m)
	}
	if m <= 0 {
		// m == 0 behaves like Allocate(0): null. Unlike a bare
		// Allocate(0), a pointer was handed to us, so we release it
		// rather than leaking it the way a no-op shrink-to-zero
		// otherwise would.
		a.Release(ptr)
		return a.Allocate(m)
	}

	old := spanOf(ptr)
	want := round(uintptr(m))
	if want <= old.size {
		return ptr
	}

	newPtr := a.Allocate(m)
	copySize := old.size - headerSize
	copy(unsafe.Slice((*byte)(newPtr), copySize), unsafe.Slice((*byte)(ptr), copySize))
	a.Release(ptr)
	return newPtr
}

func (a *Allocator) allocateLarge(size uintptr) *span {
	region, err := a.pager.Map(int(size))
	if err != nil {
		a.fatal(err)
	}
	return spanFromRegion(region)
}

func (a *Allocator) fatal(err error) {
	logger.Error("page provider exhausted", zap.Error(err))
	panic(fmt.Errorf("%w: %v", ErrOutOfMemory, err))
}
