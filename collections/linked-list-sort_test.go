package collections

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/tychoish/fun/assert"
	"github.com/tychoish/fun/assert/check"
)

func TestLinkedListIsSorted(t *testing.T) {
	for _, tt := range []struct {
		name   string
		values []int
		want   bool
	}{
		{"Empty", nil, true},
		{"Single", []int{4}, true},
		{"Ascending", []int{1, 2, 3}, true},
		{"Duplicates", []int{1, 1, 2, 2}, true},
		{"Descending", []int{3, 2, 1}, false},
		{"LastPairOutOfOrder", []int{1, 2, 4, 3}, false},
	} {
		t.Run(tt.name, func(t *testing.T) {
			check.Equal(t, tt.want, NewLinkedListFromSlice(tt.values).IsSorted())
		})
	}
}

func TestLinkedListMerge(t *testing.T) {
	t.Run("Interleaved", func(t *testing.T) {
		a := NewLinkedListFromSlice([]int{1, 4, 6, 9})
		b := NewLinkedListFromSlice([]int{2, 3, 7})
		assert.NotError(t, a.Merge(b))
		check.Equal(t, "[1,2,3,4,6,7,9]", a.String())
		check.Equal(t, 7, a.Len())
		check.Equal(t, 0, b.Len())
		checkInvariants(t, a)
		checkInvariants(t, b)
	})
	t.Run("OtherRemainderKeepsTail", func(t *testing.T) {
		a := NewLinkedListFromSlice([]int{1, 2})
		b := NewLinkedListFromSlice([]int{3, 4, 5})
		assert.NotError(t, a.Merge(b))
		check.Equal(t, "[1,2,3,4,5]", a.String())
		checkInvariants(t, a)
		a.Append(6)
		check.Equal(t, "[1,2,3,4,5,6]", a.String())
	})
	t.Run("SelfRemainderKeepsTail", func(t *testing.T) {
		a := NewLinkedListFromSlice([]int{3, 4, 5})
		b := NewLinkedListFromSlice([]int{1, 2})
		assert.NotError(t, a.Merge(b))
		check.Equal(t, "[1,2,3,4,5]", a.String())
		checkInvariants(t, a)
	})
	t.Run("EmptyOperands", func(t *testing.T) {
		a := NewLinkedList[int]()
		b := NewLinkedListFromSlice([]int{1, 2})
		assert.NotError(t, a.Merge(b))
		check.Equal(t, "[1,2]", a.String())
		checkInvariants(t, a)

		c := NewLinkedList[int]()
		assert.NotError(t, a.Merge(c))
		check.Equal(t, "[1,2]", a.String())
		checkInvariants(t, a)

		d := NewLinkedList[int]()
		assert.NotError(t, d.Merge(NewLinkedList[int]()))
		check.Equal(t, 0, d.Len())
		checkInvariants(t, d)
	})
	t.Run("ConsumedListIsReusable", func(t *testing.T) {
		a := NewLinkedListFromSlice([]int{1})
		b := NewLinkedListFromSlice([]int{2})
		assert.NotError(t, a.Merge(b))
		b.Append(5)
		check.Equal(t, "[5]", b.String())
		check.Equal(t, "[1,2]", a.String())
	})
	t.Run("EqualValuesTakeOtherFirst", func(t *testing.T) {
		a := newLinkedList[int]()
		a.Append(1)
		a.Append(2)
		b := newLinkedList[int]()
		b.Append(1)
		b.Append(2)
		a1, a2 := a.head.next, a.head.next.next
		b1, b2 := b.head.next, b.head.next.next

		assert.NotError(t, a.Merge(b))
		var order []*linkedListNode[int]
		for n := a.head.next; n != nil; n = n.next {
			order = append(order, n)
		}
		assert.Equal(t, 4, len(order))
		check.True(t, order[0] == b1)
		check.True(t, order[1] == a1)
		check.True(t, order[2] == b2)
		check.True(t, order[3] == a2)
		checkInvariants(t, a)
	})
	t.Run("Unsorted", func(t *testing.T) {
		a := NewLinkedListFromSlice([]int{3, 1})
		b := NewLinkedListFromSlice([]int{2})
		err := a.Merge(b)
		check.Equal(t, ErrorKindPreconditionViolation, ErrorKindOf(err))
		check.Equal(t, "[3,1]", a.String())
		check.Equal(t, "[2]", b.String())

		c := NewLinkedListFromSlice([]int{1})
		err = c.Merge(a)
		check.Equal(t, ErrorKindPreconditionViolation, ErrorKindOf(err))
		check.Equal(t, "[1]", c.String())
	})
	t.Run("Self", func(t *testing.T) {
		a := NewLinkedListFromSlice([]int{1, 2})
		err := a.Merge(a)
		check.Equal(t, ErrorKindPreconditionViolation, ErrorKindOf(err))
		check.Equal(t, "[1,2]", a.String())
	})
	t.Run("Nil", func(t *testing.T) {
		a := NewLinkedListFromSlice([]int{1, 2})
		check.Equal(t, ErrorKindTypeMismatch, ErrorKindOf(a.Merge(nil)))
	})
}

func TestLinkedListMergeSort(t *testing.T) {
	t.Run("Reversed", func(t *testing.T) {
		values := Range(0, 100)
		slices.Reverse(values)
		l := NewLinkedListFromSlice(values)
		l.MergeSort()
		check.True(t, slices.Equal(Range(0, 100), l.Values()))
		checkInvariants(t, l)
	})
	t.Run("Empty", func(t *testing.T) {
		l := NewLinkedList[int]()
		l.MergeSort()
		check.Equal(t, 0, l.Len())
		check.True(t, l.IsSorted())
		checkInvariants(t, l)
	})
	t.Run("Single", func(t *testing.T) {
		l := NewLinkedListFromSlice([]string{"z"})
		l.MergeSort()
		check.Equal(t, "[z]", l.String())
		checkInvariants(t, l)
	})
	t.Run("Idempotent", func(t *testing.T) {
		l := NewLinkedListFromSlice([]int{5, 3, 3, 9, -1})
		l.MergeSort()
		once := l.Values()
		l.MergeSort()
		check.True(t, slices.Equal(once, l.Values()))
		check.True(t, slices.Equal([]int{-1, 3, 3, 5, 9}, once))
	})
	t.Run("AppendAfterSort", func(t *testing.T) {
		l := NewLinkedListFromSlice([]int{3, 1, 2})
		l.MergeSort()
		l.Append(0)
		check.Equal(t, "[1,2,3,0]", l.String())
		checkInvariants(t, l)
	})
	t.Run("RandomPreservesMultiset", func(t *testing.T) {
		r := rand.New(rand.NewSource(42))
		for size := 0; size < 300; size += 7 {
			values := make([]int, size)
			for i := range values {
				values[i] = r.Intn(50)
			}
			l := NewLinkedListFromSlice(values)
			l.MergeSort()

			expected := slices.Clone(values)
			slices.Sort(expected)
			check.True(t, l.IsSorted())
			check.Equal(t, size, l.Len())
			check.True(t, slices.Equal(expected, l.Values()))
			checkInvariants(t, l)
		}
	})
}

func BenchmarkLinkedListMergeSort(b *testing.B) {
	r := rand.New(rand.NewSource(1))
	values := Range(0, 10000)
	for i := 0; i < b.N; i++ {
		r.Shuffle(len(values), func(i, j int) { values[i], values[j] = values[j], values[i] })
		l := NewLinkedListFromSlice(values)
		l.MergeSort()
	}
}
