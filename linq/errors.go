package linq

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by Query operations.
var (
	// ErrEmptySequence is returned when an operation requires at least one
	// element but the sequence is empty.
	ErrEmptySequence = errors.New("sequence contains no elements")

	// ErrDivisionByZero is returned by Average on an empty sequence.
	// It wraps ErrEmptySequence.
	ErrDivisionByZero = fmt.Errorf("%w: division by zero", ErrEmptySequence)

	// ErrIndexOutOfRange is returned when an index is outside the sequence.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrNotSorted is returned by Includes and Except when an input that must
	// be sorted is not.
	ErrNotSorted = errors.New("sequence is not sorted")

	// ErrNotFinite is returned by AverageDecimal for a NaN or infinite element.
	ErrNotFinite = errors.New("value is not a finite number")

	// ErrMacroNotFound is returned when an unregistered macro name is called.
	ErrMacroNotFound = errors.New("linq: macro not found")
)

// OpError records the operator that failed and, when relevant, the position
// that caused the failure.
type OpError struct {
	Op    string
	Index int // -1 when no position is involved
	Err   error
}

// Error implements the error interface.
func (e *OpError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("linq: %s: index %d: %v", e.Op, e.Index, e.Err)
	}
	return fmt.Sprintf("linq: %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying sentinel error.
func (e *OpError) Unwrap() error { return e.Err }

func newOpError(op string, index int, err error) *OpError {
	return &OpError{Op: op, Index: index, Err: err}
}
