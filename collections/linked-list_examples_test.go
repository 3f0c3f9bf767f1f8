package collections_test

import (
	"fmt"

	"github.com/Invicton-Labs/go-linkedlist/collections"
)

func Example_mergeSort() {
	l := collections.NewLinkedListFromSlice([]int{5, 2, 8, 1, 9, 3})
	l.MergeSort()
	fmt.Println(l)
	fmt.Println(l.IsSorted())
	// Output:
	// [1,2,3,5,8,9]
	// true
}

func Example_insert() {
	l := collections.NewLinkedListFromSlice([]int{1, 2, 3})
	l.Insert(0, 0)
	// Indices past the end append
	l.Insert(1000, 333)
	fmt.Println(l)
	// Output: [0,1,2,3,333]
}

func Example_split() {
	l := collections.NewLinkedListFromSlice([]string{"a", "b", "c", "d"})
	right, err := l.Split(1)
	if err != nil {
		panic(err)
	}
	fmt.Println(l, right)
	// Output: [a] [b,c,d]
}

func Example_concat() {
	a := collections.NewLinkedListFromSlice([]int{1, 2})
	b := collections.NewLinkedListFromSlice([]int{3})
	c, err := a.Concat(b)
	if err != nil {
		panic(err)
	}
	fmt.Println(c, c.Len(), c.Contains(3))
	// Output: [1,2,3] 3 true
}
