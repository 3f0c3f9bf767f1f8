package collections

import (
	"errors"
	"fmt"

	"github.com/Invicton-Labs/go-stackerr"
)

// ErrorKind classifies the errors returned by the collection types in this package.
type ErrorKind string

const (
	// ErrorKindNone is returned by ErrorKindOf for nil errors and for errors
	// that did not originate in this package.
	ErrorKindNone ErrorKind = ""
	// ErrorKindIndexOutOfRange means an index was outside the valid range for the
	// operation. The collection is left unmodified.
	ErrorKindIndexOutOfRange ErrorKind = "index_out_of_range"
	// ErrorKindTypeMismatch means an operand was nil or was not an implementation
	// provided by this package.
	ErrorKindTypeMismatch ErrorKind = "type_mismatch"
	// ErrorKindPreconditionViolation means the inputs did not satisfy a documented
	// precondition (for example, merging unsorted lists). Nothing was mutated.
	ErrorKindPreconditionViolation ErrorKind = "precondition_violation"
)

const errorKindField = "error_kind"

// ErrorKindOf returns the kind of an error returned by this package.
func ErrorKindOf(err error) ErrorKind {
	if err == nil {
		return ErrorKindNone
	}
	serr, ok := err.(stackerr.Error)
	if !ok && !errors.As(err, &serr) {
		return ErrorKindNone
	}
	kind, _ := serr.Fields()[errorKindField].(ErrorKind)
	return kind
}

func indexOutOfRangeError(index int, length int) stackerr.Error {
	return stackerr.Errorf("LinkedList index %d out of range for length %d", index, length).With(map[string]any{
		errorKindField: ErrorKindIndexOutOfRange,
		"index":        index,
		"length":       length,
	})
}

func typeMismatchError(operand any) stackerr.Error {
	return stackerr.Errorf("operation undefined for operand of type %T", operand).With(map[string]any{
		errorKindField: ErrorKindTypeMismatch,
		"type":         fmt.Sprintf("%T", operand),
	})
}

func preconditionError(reason string) stackerr.Error {
	return stackerr.Errorf("LinkedList precondition violated: %s", reason).With(map[string]any{
		errorKindField: ErrorKindPreconditionViolation,
		"reason":       reason,
	})
}
