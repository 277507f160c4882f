package arena

import "unsafe"

// headerSize is the width of every span's leading header, chosen so payload
// pointers stay 16-byte aligned.
const headerSize = 16

// span is the dual-view overlay described in the design notes: a tagged
// representation rather than an untyped union, since Go gives us no safe
// union. While a span is live only the size field is meaningful; the second
// word is unused payload-alignment padding. While a span is cached, queued,
// or pooled, both fields are meaningful and the struct is a free-list node:
// size is the span's total byte length (header included) and next chains it
// into whichever list currently owns it. The two views are never valid at
// once, by construction: callers must know which state a span is in before
// touching next.
type span struct {
	size uintptr
	next *span
}

// spanAt reinterprets the 16 bytes at p as a span header. p must be the
// start of a span (not a payload pointer).
func spanAt(p unsafe.Pointer) *span {
	return (*span)(p)
}

// payload returns the writable region following s's header.
func (s *span) payload() unsafe.Pointer {
	return unsafe.Add(unsafe.Pointer(s), headerSize)
}

// spanOf recovers the header of the span that owns payload p.
func spanOf(p unsafe.Pointer) *span {
	return (*span)(unsafe.Add(p, -headerSize))
}

// end returns the address one past the last byte of s, i.e. the address of
// whatever span (if any) is adjacent to s in memory.
func (s *span) end() uintptr {
	return uintptr(unsafe.Pointer(s)) + s.size
}

// adjacent reports whether s is immediately followed in memory by o, the
// precondition for coalescing the two into one span.
func (s *span) adjacent(o *span) bool {
	return s.end() == uintptr(unsafe.Pointer(o))
}

// split carves the leading want bytes off s and returns it as a live span,
// along with the trailing remainder as a free span (or nil if the
// remainder is smaller than the minimum live span size, in which case the
// whole of s is handed out instead of leaving an unusable sliver behind).
func (s *span) split(want uintptr) (head *span, remainder *span) {
	leftover := s.size - want
	if leftover < minSpanSize {
		return s, nil
	}
	s.size = want
	rem := spanAt(unsafe.Add(unsafe.Pointer(s), want))
	rem.size = leftover
	rem.next = nil
	return s, rem
}
