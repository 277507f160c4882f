package demo

import (
	"testing"

	"github.com/McNibbler/fast-malloc/internal/arena"
)

func TestConsAndCount(t *testing.T) {
	a := arena.NewDefault()
	xs := Cell{}
	for i := int64(1); i <= 5; i++ {
		xs = Cons(a, i, xs)
	}
	defer FreeList(a, xs)

	if n := Count(xs); n != 5 {
		t.Fatalf("Count() = %d, want 5", n)
	}
	// Cons prepends, so the list is 5,4,3,2,1.
	want := []int64{5, 4, 3, 2, 1}
	cur := xs
	for _, w := range want {
		if cur.IsNil() {
			t.Fatalf("list ended early")
		}
		if cur.Item() != w {
			t.Fatalf("Item() = %d, want %d", cur.Item(), w)
		}
		cur = cur.Rest()
	}
	if !cur.IsNil() {
		t.Fatalf("list should end after 5 elements")
	}
}

func TestCopyListIsIndependent(t *testing.T) {
	a := arena.NewDefault()
	xs := Cons(a, 3, Cons(a, 2, Cons(a, 1, Cell{})))
	defer FreeList(a, xs)

	ys := CopyList(a, xs)
	defer FreeList(a, ys)

	if Count(xs) != Count(ys) {
		t.Fatalf("copy should have the same length as the original")
	}
	cx, cy := xs, ys
	for !cx.IsNil() {
		if cx.Item() != cy.Item() {
			t.Fatalf("copy diverges from original")
		}
		cx, cy = cx.Rest(), cy.Rest()
	}
}

func TestEmptyListIsNil(t *testing.T) {
	var xs Cell
	if !xs.IsNil() {
		t.Fatalf("zero-value Cell should be the empty list")
	}
	if Count(xs) != 0 {
		t.Fatalf("Count of the empty list should be 0")
	}
	if got := CopyList(nil, xs); !got.IsNil() {
		t.Fatalf("copying the empty list needs no allocator and stays empty")
	}
}
