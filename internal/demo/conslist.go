package demo

import (
	"unsafe"

	"github.com/McNibbler/fast-malloc/internal/arena"
)

// cellLayout is the raw two-word shape of a cons cell: an item and a link
// to the rest of the list. It is only ever reached through a Cell's
// unsafe.Pointer, the same dual-purpose-header trick the core package uses
// for spans.
type cellLayout struct {
	item int64
	rest unsafe.Pointer
}

const cellWidth = int(unsafe.Sizeof(cellLayout{}))

// Cell is a node in a singly linked list allocated through an
// *arena.Allocator. The zero Cell is the empty list, mirroring a nil `cell*`.
type Cell struct {
	ptr unsafe.Pointer
}

func cellAt(p unsafe.Pointer) *cellLayout {
	return (*cellLayout)(p)
}

// Cons allocates a new cell holding item, linked to rest.
func Cons(a *arena.Allocator, item int64, rest Cell) Cell {
	p := a.Allocate(cellWidth)
	c := cellAt(p)
	c.item = item
	c.rest = rest.ptr
	return Cell{ptr: p}
}

// IsNil reports whether xs is the empty list.
func (xs Cell) IsNil() bool { return xs.ptr == nil }

// Item returns xs's element. It panics on the empty list.
func (xs Cell) Item() int64 { return cellAt(xs.ptr).item }

// Rest returns the tail of xs.
func (xs Cell) Rest() Cell { return Cell{ptr: cellAt(xs.ptr).rest} }

// Count returns the number of cells in xs.
func Count(xs Cell) int64 {
	var n int64
	for !xs.IsNil() {
		n++
		xs = xs.Rest()
	}
	return n
}

// CopyList returns a fresh list with the same elements as xs, newly
// allocated through a, preserving order.
func CopyList(a *arena.Allocator, xs Cell) Cell {
	if xs.IsNil() {
		return Cell{}
	}
	return Cons(a, xs.Item(), CopyList(a, xs.Rest()))
}

// FreeList releases every cell of xs back to a.
func FreeList(a *arena.Allocator, xs Cell) {
	for !xs.IsNil() {
		next := xs.Rest()
		a.Release(xs.ptr)
		xs = next
	}
}
