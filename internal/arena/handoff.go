package arena

// handoffQueue is the per-arena single-producer/single-consumer channel
// ceding a cache batch to the reclaimer. The producer is the owning arena,
// on watermark; the consumer is the reclaimer. No other component touches
// it. Both sides take the spin latch; operations are O(1) list splices.
type handoffQueue struct {
	mu   spinLock
	head *span
}

// splice prepends the list [head, tail] (tail.next must already be nil) to
// the queue.
func (q *handoffQueue) splice(head, tail *span) {
	q.mu.Lock()
	tail.next = q.head
	q.head = head
	q.mu.Unlock()
}

// drain swaps the queue's contents out for nil and returns what was there,
// for the reclaimer to sort and coalesce at its leisure off-latch.
func (q *handoffQueue) drain() *span {
	q.mu.Lock()
	list := q.head
	q.head = nil
	q.mu.Unlock()
	return list
}
