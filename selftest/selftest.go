// Package selftest runs a fixed sequence of behavioural checks against the
// LinkedList implementation and reports each one as passed or failed.
package selftest

import (
	"context"
	"fmt"
	"io"

	"github.com/Invicton-Labs/go-linkedlist/collections"
	"github.com/Invicton-Labs/go-linkedlist/log"
	"github.com/Invicton-Labs/go-stackerr"
)

type Result struct {
	Number int
	Name   string
	Passed bool
}

func (r Result) String() string {
	if r.Passed {
		return fmt.Sprintf("Test %d Passed", r.Number)
	}
	return fmt.Sprintf("Test %d Failed", r.Number)
}

type recorder struct {
	logger  log.Logger
	results []Result
}

func (r *recorder) check(name string, passed bool) {
	result := Result{
		Number: len(r.results) + 1,
		Name:   name,
		Passed: passed,
	}
	r.results = append(r.results, result)
	if passed {
		r.logger.Debugw("Check passed", "test", result.Number, "name", name)
	} else {
		r.logger.Warnw("Check failed", "test", result.Number, "name", name)
	}
}

// Run executes every check in order. Checks build on the state left by the
// previous ones, so a failure early on may cascade.
func Run(ctx context.Context) []Result {
	r := &recorder{
		logger: log.FromContext(ctx).With("component", "selftest"),
	}

	lst := collections.NewLinkedList[int]()
	for i := 0; i < 100; i++ {
		lst.Append(i)
	}
	lst2 := collections.NewLinkedListFromSeq(lst.All())
	r.check("copy equals original", lst.Equal(lst2))

	lst3, err := lst.Concat(lst2)
	if err != nil {
		r.logger.Error(err)
		lst3 = collections.NewLinkedList[int]()
	}
	r.check("concatenated length is the sum of lengths", lst3.Len() == lst.Len()+lst2.Len())
	r.check("concatenation contains 1", lst3.Contains(1))
	r.check("concatenation contains 2", lst3.Contains(2))

	if _, err := lst.Delete(1); err != nil {
		r.logger.Error(err)
	}
	r.check("deleted value is gone", !lst.Contains(1))
	r.check("delete shrinks length", lst.Len() == 99)
	r.check("modified list differs from copy", !lst.Equal(lst2))

	if _, err := lst2.Delete(2); err != nil {
		r.logger.Error(err)
	}
	r.check("lists with different deletions differ", !lst.Equal(lst2))

	lst4 := collections.NewLinkedListFromSeq(lst.All())
	lst.Insert(0, 100)
	front, err := collections.NewLinkedListFromSlice([]int{100}).Concat(lst4)
	if err != nil {
		r.logger.Error(err)
		front = collections.NewLinkedList[int]()
	}
	lst4 = front
	r.check("insert at front equals prepend", lst.Equal(lst4))

	lst.Insert(1000, 333)
	lst4.Append(333)
	r.check("insert past the end equals append", lst.Equal(lst4))

	reversed := collections.NewLinkedList[int]()
	for i := 99; i >= 0; i-- {
		reversed.Append(i)
	}
	reversed.MergeSort()
	r.check("merge sort orders a reversed list", reversed.Equal(collections.NewLinkedListFromSlice(collections.Range(0, 100))))

	return r.results
}

// Write prints one "Test N Passed" or "Test N Failed" line per result.
func Write(w io.Writer, results []Result) stackerr.Error {
	for _, result := range results {
		if _, err := fmt.Fprintln(w, result.String()); err != nil {
			return stackerr.Wrap(err)
		}
	}
	return nil
}

func AllPassed(results []Result) bool {
	for _, result := range results {
		if !result.Passed {
			return false
		}
	}
	return true
}
