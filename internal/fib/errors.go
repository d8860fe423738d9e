package fib

import (
	"errors"
	"fmt"
)

// Domain errors for term-count input.
var (
	// ErrNotNumeric indicates the input is not a base-10 integer.
	ErrNotNumeric = errors.New("fib: term count is not an integer")

	// ErrOutOfRange indicates the term count is outside [MinTerms, MaxTerms].
	ErrOutOfRange = errors.New("fib: term count out of range")

	// ErrRecurrence indicates a value is not the sum of the two before it.
	ErrRecurrence = errors.New("fib: value breaks the recurrence")

	// ErrOverCap indicates a value above Cap.
	ErrOverCap = errors.New("fib: value exceeds cap")
)

// TermsError wraps an input error with the raw text that caused it.
type TermsError struct {
	Input   string
	Wrapped error
}

func (e *TermsError) Error() string {
	return fmt.Sprintf("%v: %q", e.Wrapped, e.Input)
}

func (e *TermsError) Unwrap() error {
	return e.Wrapped
}

// SequenceError reports the index at which Verify failed.
type SequenceError struct {
	Index   int
	Value   int64
	Wrapped error
}

func (e *SequenceError) Error() string {
	return fmt.Sprintf("%v at n=%d (%d)", e.Wrapped, e.Index, e.Value)
}

func (e *SequenceError) Unwrap() error {
	return e.Wrapped
}
