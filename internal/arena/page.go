package arena

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

// PageProvider acquires and returns page-aligned spans from the operating
// system. The facade depends on the interface rather than osPager directly
// so tests can substitute an in-process fake and drive the scenarios in
// SPEC_FULL.md §8 without touching real mappings.
type PageProvider interface {
	// Map returns a freshly zeroed, page-aligned region of at least n
	// bytes, rounded up to a page multiple.
	Map(n int) ([]byte, error)
	// Unmap releases a page-aligned range previously returned by Map.
	// Behavior is undefined if the range was not obtained from Map or
	// extends past the original mapping.
	Unmap(b []byte) error
}

// osPager is the production PageProvider: anonymous, private, read-write
// mappings via mmap/munmap.
type osPager struct{}

func (osPager) Map(n int) ([]byte, error) {
	size := int(roundUp(uintptr(n), pageSize))
	b, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("arena: mmap %d bytes: %w", size, err)
	}
	return b, nil
}

func (osPager) Unmap(b []byte) error {
	if err := unix.Munmap(b); err != nil {
		return fmt.Errorf("arena: munmap %d bytes: %w", len(b), err)
	}
	return nil
}

// spanFromRegion installs a freshly mapped region as a single free span
// spanning its whole length.
func spanFromRegion(b []byte) *span {
	s := spanAt(unsafe.Pointer(&b[0]))
	s.size = uintptr(len(b))
	s.next = nil
	return s
}

// regionOf reconstructs the []byte previously returned by Map from a span
// that spans exactly one page-aligned OS region, for handing to Unmap.
func regionOf(s *span) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(s)), int(s.size))
}
