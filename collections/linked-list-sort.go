package collections

import (
	"github.com/Invicton-Labs/go-stackerr"
)

func (l *linkedList[T]) IsSorted() bool {
	if l.len < 2 {
		return true
	}
	for n := l.head.next; n.next != nil; n = n.next {
		if n.value > n.next.value {
			return false
		}
	}
	return true
}

// Merge checks that both lists are sorted before merging, so a failed merge
// never leaves either list partially re-threaded.
func (l *linkedList[T]) Merge(other LinkedList[T]) stackerr.Error {
	o, err := asLinkedList(other)
	if err != nil {
		return err
	}
	if o == l {
		return preconditionError("cannot merge a list into itself")
	}
	if !l.IsSorted() {
		return preconditionError("receiver is not sorted")
	}
	if !o.IsSorted() {
		return preconditionError("merged list is not sorted")
	}
	l.merge(o)
	return nil
}

// merge re-threads the nodes of l and other onto l's sentinel in ascending
// order. An element of l is only taken first when it is strictly less than
// the current element of other. other is left empty.
func (l *linkedList[T]) merge(other *linkedList[T]) {
	a, b := l.head.next, other.head.next
	at := &l.head
	for a != nil && b != nil {
		if a.value < b.value {
			at.next = a
			a = a.next
		} else {
			at.next = b
			b = b.next
		}
		at = at.next
	}

	if a != nil {
		// The rest of l's chain still ends at l.tail
		at.next = a
	} else if b != nil {
		at.next = b
		l.tail = other.tail
	} else {
		at.next = nil
		l.tail = at
	}
	l.len += other.len

	other.head.next = nil
	other.tail = &other.head
	other.len = 0
}

func (l *linkedList[T]) MergeSort() {
	if l.len <= 1 {
		return
	}
	right := l.split(l.len / 2)
	l.MergeSort()
	right.MergeSort()
	l.merge(right)
}
