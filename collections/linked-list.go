// Package collections provides generic collection types and helpers for
// building and comparing them.
//
// To iterate over a LinkedList (where l is a LinkedList[T]):
//
//	for v := range l.All() {
//		// do something with v
//	}
package collections

import (
	"fmt"
	"iter"
	"strings"

	"github.com/Invicton-Labs/go-linkedlist/constraints"
	"github.com/Invicton-Labs/go-stackerr"
)

type LinkedList[T constraints.Ordered] interface {
	fmt.Stringer

	// Len returns the number of elements of the list.
	// The complexity is O(1).
	Len() int
	// Get returns the value at the given index. It returns an error of kind
	// ErrorKindIndexOutOfRange unless 0 <= index < Len().
	Get(index int) (T, stackerr.Error)
	// Set replaces the value at the given index. It returns an error of kind
	// ErrorKindIndexOutOfRange unless 0 <= index < Len(), and the list is not modified.
	Set(index int, value T) stackerr.Error
	// Insert inserts a value immediately before the element currently at index.
	// If index >= Len(), it behaves exactly like Append. A negative index inserts
	// at the front.
	Insert(index int, value T)
	// Append adds a value at the back of the list.
	// The complexity is O(1).
	Append(value T)
	// Delete removes the element at the given index and returns its value. It
	// returns an error of kind ErrorKindIndexOutOfRange unless 0 <= index < Len(),
	// and the list is not modified.
	Delete(index int) (T, stackerr.Error)
	// Split truncates the list to the elements [0, index) and returns a new list
	// that takes over the elements [index, Len()). No values are copied. It returns
	// an error of kind ErrorKindIndexOutOfRange unless 0 <= index <= Len().
	Split(index int) (LinkedList[T], stackerr.Error)
	// Equal returns true if other is a list from this package with the same
	// length and the same values in the same order.
	Equal(other LinkedList[T]) bool
	// Contains returns true if any element of the list equals value.
	Contains(value T) bool
	// Concat returns a new list holding a copy of this list's values followed by
	// a copy of other's values. Neither list is modified.
	Concat(other LinkedList[T]) (LinkedList[T], stackerr.Error)
	// All returns an iterator over the values from front to back. The list must
	// not be modified while the iterator is in use.
	All() iter.Seq[T]
	// Values returns the values of the list in a new slice.
	Values() []T
	// IsSorted returns true if no element is greater than the element after it.
	IsSorted() bool
	// Merge moves all elements of other into this list, keeping the result in
	// ascending order. Both lists must already be sorted. On equal values, the
	// element from other is placed first. other is left empty and must not be
	// used afterwards.
	Merge(other LinkedList[T]) stackerr.Error
	// MergeSort sorts the list in ascending order in place.
	MergeSort()
}

// linkedListNode[T] is an element of a singly linked list.
type linkedListNode[T any] struct {
	next  *linkedListNode[T]
	value T
}

// linkedList[T] represents a singly linked list. It must not be copied
// after construction, since tail may point at its own sentinel.
type linkedList[T constraints.Ordered] struct {
	head linkedListNode[T]  // sentinel list element, only head.next is used
	tail *linkedListNode[T] // last list element, or &head when the list is empty
	len  int                // current list length excluding the sentinel element
}

func newLinkedList[T constraints.Ordered]() *linkedList[T] {
	l := &linkedList[T]{}
	l.tail = &l.head
	return l
}

// NewLinkedList returns an empty list.
func NewLinkedList[T constraints.Ordered]() LinkedList[T] {
	return newLinkedList[T]()
}

// NewLinkedListFromSlice returns a list holding the given values in order.
func NewLinkedListFromSlice[T constraints.Ordered](values []T) LinkedList[T] {
	l := newLinkedList[T]()
	for _, v := range values {
		l.Append(v)
	}
	return l
}

// NewLinkedListFromSeq returns a list holding the values produced by seq, in
// the order they are produced. The sequence must be finite.
func NewLinkedListFromSeq[T constraints.Ordered](seq iter.Seq[T]) LinkedList[T] {
	l := newLinkedList[T]()
	for v := range seq {
		l.Append(v)
	}
	return l
}

// asLinkedList checks that a list was created by this package.
func asLinkedList[T constraints.Ordered](list LinkedList[T]) (*linkedList[T], stackerr.Error) {
	if l, ok := list.(*linkedList[T]); ok && l != nil {
		return l, nil
	}
	return nil, typeMismatchError(list)
}

func (l *linkedList[T]) Len() int { return l.len }

// nodeBefore returns the node preceding position index, which is the sentinel
// for index 0. The index must be in [0, l.len].
func (l *linkedList[T]) nodeBefore(index int) *linkedListNode[T] {
	n := &l.head
	for i := 0; i < index; i++ {
		n = n.next
	}
	return n
}

func (l *linkedList[T]) Get(index int) (T, stackerr.Error) {
	if index < 0 || index >= l.len {
		var zero T
		return zero, indexOutOfRangeError(index, l.len)
	}
	return l.nodeBefore(index).next.value, nil
}

func (l *linkedList[T]) Set(index int, value T) stackerr.Error {
	if index < 0 || index >= l.len {
		return indexOutOfRangeError(index, l.len)
	}
	l.nodeBefore(index).next.value = value
	return nil
}

func (l *linkedList[T]) Insert(index int, value T) {
	if index >= l.len {
		l.Append(value)
		return
	}
	if index < 0 {
		index = 0
	}
	at := l.nodeBefore(index)
	at.next = &linkedListNode[T]{next: at.next, value: value}
	l.len++
}

func (l *linkedList[T]) Append(value T) {
	n := &linkedListNode[T]{value: value}
	l.tail.next = n
	l.tail = n
	l.len++
}

func (l *linkedList[T]) Delete(index int) (T, stackerr.Error) {
	if index < 0 || index >= l.len {
		var zero T
		return zero, indexOutOfRangeError(index, l.len)
	}
	prev := l.nodeBefore(index)
	removed := prev.next
	prev.next = removed.next
	if l.tail == removed {
		l.tail = prev
	}
	removed.next = nil // avoid memory leaks
	l.len--
	return removed.value, nil
}

func (l *linkedList[T]) Split(index int) (LinkedList[T], stackerr.Error) {
	if index < 0 || index > l.len {
		return nil, indexOutOfRangeError(index, l.len)
	}
	return l.split(index), nil
}

// split detaches the elements [index, l.len) into a new list.
// The index must be in [0, l.len].
func (l *linkedList[T]) split(index int) *linkedList[T] {
	at := l.nodeBefore(index)
	other := newLinkedList[T]()
	if at.next != nil {
		other.head.next = at.next
		other.tail = l.tail
	}
	other.len = l.len - index
	at.next = nil
	l.tail = at
	l.len = index
	return other
}

func (l *linkedList[T]) Equal(other LinkedList[T]) bool {
	o, ok := other.(*linkedList[T])
	if !ok || o == nil || l.len != o.len {
		return false
	}
	for a, b := l.head.next, o.head.next; a != nil; a, b = a.next, b.next {
		if a.value != b.value {
			return false
		}
	}
	return true
}

func (l *linkedList[T]) Contains(value T) bool {
	for n := l.head.next; n != nil; n = n.next {
		if n.value == value {
			return true
		}
	}
	return false
}

func (l *linkedList[T]) Concat(other LinkedList[T]) (LinkedList[T], stackerr.Error) {
	o, err := asLinkedList(other)
	if err != nil {
		return nil, err
	}
	result := newLinkedList[T]()
	for n := l.head.next; n != nil; n = n.next {
		result.Append(n.value)
	}
	for n := o.head.next; n != nil; n = n.next {
		result.Append(n.value)
	}
	return result, nil
}

func (l *linkedList[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for n := l.head.next; n != nil; n = n.next {
			if !yield(n.value) {
				return
			}
		}
	}
}

func (l *linkedList[T]) Values() []T {
	values := make([]T, 0, l.len)
	for n := l.head.next; n != nil; n = n.next {
		values = append(values, n.value)
	}
	return values
}

// String renders the list as [e0,e1,...], or [] when it is empty.
func (l *linkedList[T]) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for n := l.head.next; n != nil; n = n.next {
		if n != l.head.next {
			sb.WriteByte(',')
		}
		fmt.Fprintf(&sb, "%v", n.value)
	}
	sb.WriteByte(']')
	return sb.String()
}
