package arena

import (
	"testing"
	"unsafe"
)

func newSpan(n int, size uintptr) *span {
	b := make([]byte, n)
	s := spanAt(unsafe.Pointer(&b[0]))
	s.size = size
	return s
}

func TestCentralPoolTakeRespectsHeadOnly(t *testing.T) {
	var c centralPool
	small := newSpan(64, 64)
	small.next = nil
	c.head = small

	if _, ok := c.take(128); ok {
		t.Fatalf("take should refuse when the head span is smaller than requested, even if a later span would fit")
	}
	s, ok := c.take(32)
	if !ok || s != small {
		t.Fatalf("take(32) should succeed against a 64-byte head")
	}
	if c.head != nil {
		t.Fatalf("head should be empty after taking the only span")
	}
}

func TestCentralPoolSwapReturnsPrevious(t *testing.T) {
	var c centralPool
	old := newSpan(64, 64)
	c.head = old

	fresh := newSpan(128, 128)
	returned := c.swap(fresh)

	if returned != old {
		t.Fatalf("swap should return the previous head")
	}
	if c.head != fresh {
		t.Fatalf("swap should install the new head")
	}
}

func TestHandoffSpliceAndDrain(t *testing.T) {
	var q handoffQueue
	a := newSpan(32, 32)
	b := newSpan(32, 32)
	a.next = b
	b.next = nil

	q.splice(a, b)
	if q.head != a {
		t.Fatalf("splice should install the spliced list as the new head")
	}

	c := newSpan(32, 32)
	c.next = nil
	q.splice(c, c)
	if q.head != c || q.head.next != a {
		t.Fatalf("a second splice should prepend, not replace")
	}

	drained := q.drain()
	if drained != c {
		t.Fatalf("drain should return the full spliced chain")
	}
	if q.head != nil {
		t.Fatalf("drain should leave the queue empty")
	}
	if q.drain() != nil {
		t.Fatalf("draining an empty queue should return nil")
	}
}
