// Package demo hosts client code that exercises the core allocator under
// realistic access patterns instead of implementing any part of it: a
// growable integer vector (this file) and a cons-list (conslist.go), both
// allocating exclusively through an *arena.Allocator rather than Go's own
// heap, the way the Collatz worker they support originally allocated
// through a custom xmalloc.
package demo

import (
	"fmt"
	"unsafe"

	"github.com/McNibbler/fast-malloc/internal/arena"
)

const int64Width = int(unsafe.Sizeof(int64(0)))

// IntVec is a growable vector of int64, backed by a region obtained from an
// Allocator and grown via Allocator.Resize exactly the way its ancestor grew
// its backing array via xrealloc.
type IntVec struct {
	a    *arena.Allocator
	data unsafe.Pointer
	cap  int
	size int
}

// NewIntVec allocates a vector with room for cap0 elements before its first
// growth.
func NewIntVec(a *arena.Allocator, cap0 int) *IntVec {
	if cap0 <= 0 {
		panic(fmt.Sprintf("demo: NewIntVec capacity must be positive, got %d", cap0))
	}
	return &IntVec{
		a:    a,
		data: a.Allocate(cap0 * int64Width),
		cap:  cap0,
	}
}

func (v *IntVec) slice() []int64 {
	return unsafe.Slice((*int64)(v.data), v.cap)
}

// Len reports the number of elements pushed so far.
func (v *IntVec) Len() int { return v.size }

// Push appends item, doubling the backing region's capacity first if full.
func (v *IntVec) Push(item int64) {
	if v.size >= v.cap {
		v.cap *= 2
		v.data = v.a.Resize(v.data, v.cap*int64Width)
	}
	v.slice()[v.size] = item
	v.size++
}

// Last returns the most recently pushed element. It panics if the vector is
// empty, matching the precondition its ancestor never checked either.
func (v *IntVec) Last() int64 {
	return v.slice()[v.size-1]
}

// At returns the element at index i.
func (v *IntVec) At(i int) int64 {
	return v.slice()[i]
}

// Copy returns a new vector with the same elements, in a freshly allocated
// region sized to v's current capacity.
func (v *IntVec) Copy() *IntVec {
	ys := NewIntVec(v.a, v.cap)
	for i := 0; i < v.size; i++ {
		ys.Push(v.slice()[i])
	}
	return ys
}

// Free returns the vector's backing region to the allocator it was
// constructed with. The IntVec must not be used afterward.
func (v *IntVec) Free() {
	v.a.Release(v.data)
}
