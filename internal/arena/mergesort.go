package arena

import "unsafe"

// Top-down merge sort over singly linked spans, used by the reclaimer.
// Two orders are needed: by address ascending (with coalescing of
// memory-adjacent spans as they merge) and by size descending (no
// coalescing, since by the time the reclaimer sorts by size the list has
// already been fully coalesced by address).

// splitList divides head into two halves of near-equal length using the
// classic slow/fast cursor technique.
func splitList(head *span) (left, right *span) {
	if head == nil || head.next == nil {
		return head, nil
	}
	slow, fast := head, head.next
	for fast != nil && fast.next != nil {
		slow = slow.next
		fast = fast.next.next
	}
	right = slow.next
	slow.next = nil
	return head, right
}

// sortByAddressCoalesced merge-sorts list by ascending address, absorbing
// any pair of spans that turn out to be memory-adjacent into a single
// span as they are merged.
func sortByAddressCoalesced(list *span) *span {
	if list == nil || list.next == nil {
		return list
	}
	left, right := splitList(list)
	return mergeByAddressCoalesced(sortByAddressCoalesced(left), sortByAddressCoalesced(right))
}

// mergeByAddressCoalesced merges two address-ascending, already-coalesced
// lists into one, coalescing across the merge boundary wherever the
// in-progress tail and the next candidate are memory-adjacent.
func mergeByAddressCoalesced(a, b *span) *span {
	var head, tail *span
	emit := func(next *span) {
		if tail != nil && tail.adjacent(next) {
			tail.size += next.size
			return
		}
		next.next = nil
		if tail == nil {
			head = next
		} else {
			tail.next = next
		}
		tail = next
	}
	for a != nil && b != nil {
		if uintptr(unsafe.Pointer(a)) <= uintptr(unsafe.Pointer(b)) {
			na := a.next
			emit(a)
			a = na
		} else {
			nb := b.next
			emit(b)
			b = nb
		}
	}
	for a != nil {
		na := a.next
		emit(a)
		a = na
	}
	for b != nil {
		nb := b.next
		emit(b)
		b = nb
	}
	return head
}

// sortBySizeDescending merge-sorts list by descending size with no
// coalescing.
func sortBySizeDescending(list *span) *span {
	if list == nil || list.next == nil {
		return list
	}
	left, right := splitList(list)
	return mergeBySizeDescending(sortBySizeDescending(left), sortBySizeDescending(right))
}

func mergeBySizeDescending(a, b *span) *span {
	dummy := &span{}
	tail := dummy
	for a != nil && b != nil {
		if a.size >= b.size {
			tail.next, tail = a, a
			a = a.next
		} else {
			tail.next, tail = b, b
			b = b.next
		}
	}
	if a != nil {
		tail.next = a
	} else {
		tail.next = b
	}
	return dummy.next
}
