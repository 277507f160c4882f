// Package arena is a thread-caching dynamic memory allocator, based on
// tcmalloc.
// http://goog-perftools.sourceforge.net/doc/tcmalloc.html
//
// Allocating a span proceeds up a hierarchy of caches:
//
//	1. Round the size up to a 16-byte multiple and look in the
//	   calling goroutine's arena cache. If the span at its head is big
//	   enough, satisfy the request from it. This never takes a lock.
//
//	2. Otherwise (the cache is empty or its head span is too small),
//	   try the central pool. Moving a span out of the central pool
//	   amortizes the cost of taking the central latch.
//
//	3. If the central pool has nothing big enough, carve the span off
//	   the arena's bump region, refilling the bump region from the
//	   page provider if it is exhausted.
//
//	4. Requests whose rounded size (header included) is at least one
//	   page (4096 bytes) bypass all of the above and are mapped and
//	   unmapped directly.
//
// Releasing a span proceeds the other way: onto the arena cache, and once
// the cache exceeds a watermark, ceded in bulk to a background reclaimer
// that sorts ceded spans by address, coalesces address-adjacent spans, and
// deposits the result into the central pool.
//
// Unlike the runtime's allocator this package has no garbage collector to
// cooperate with: every span is reclaimed explicitly by the caller via
// Release, never discovered by scanning.
package arena
