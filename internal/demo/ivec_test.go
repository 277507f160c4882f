package demo

import (
	"testing"

	"github.com/McNibbler/fast-malloc/internal/arena"
)

func TestIntVecPushAndGrow(t *testing.T) {
	a := arena.NewDefault()
	v := NewIntVec(a, 2)
	defer v.Free()

	for i := int64(0); i < 50; i++ {
		v.Push(i)
	}
	if v.Len() != 50 {
		t.Fatalf("Len() = %d, want 50", v.Len())
	}
	for i := int64(0); i < 50; i++ {
		if got := v.At(int(i)); got != i {
			t.Fatalf("At(%d) = %d, want %d", i, got, i)
		}
	}
	if v.Last() != 49 {
		t.Fatalf("Last() = %d, want 49", v.Last())
	}
}

func TestIntVecCopyIsIndependent(t *testing.T) {
	a := arena.NewDefault()
	v := NewIntVec(a, 4)
	defer v.Free()
	v.Push(1)
	v.Push(2)
	v.Push(3)

	w := v.Copy()
	defer w.Free()
	w.Push(4)

	if v.Len() != 3 {
		t.Fatalf("original vector should be unaffected by pushes to its copy, Len() = %d", v.Len())
	}
	if w.Len() != 4 {
		t.Fatalf("copy should have its own independent length, Len() = %d", w.Len())
	}
	for i := 0; i < 3; i++ {
		if v.At(i) != w.At(i) {
			t.Fatalf("copy diverges from original at index %d: %d != %d", i, v.At(i), w.At(i))
		}
	}
}

func TestIntVecCollatzSequenceTerminatesAtOne(t *testing.T) {
	a := arena.NewDefault()
	v := NewIntVec(a, 4)
	defer v.Free()
	v.Push(27)

	for v.Last() != 1 {
		n := v.Last()
		if n%2 == 0 {
			v.Push(n / 2)
		} else {
			v.Push(3*n + 1)
		}
	}
	if v.Last() != 1 {
		t.Fatalf("Collatz sequence from 27 should reach 1")
	}
}
