package engine

import (
	"errors"
	"fmt"
)

// Sentinel errors. RuntimeError values match these through errors.Is.
var (
	// ErrLengthMismatch indicates the input and result buffers differ in length.
	ErrLengthMismatch = errors.New("engine: buffer length mismatch")

	// ErrNotFitted indicates a Fitted whose Fill was never configured.
	ErrNotFitted = errors.New("engine: selection not fitted")
)

// RuntimeErrorCode categorizes coalescing errors.
type RuntimeErrorCode string

const (
	// ErrCodeLengthMismatch indicates input and result lengths differ.
	ErrCodeLengthMismatch RuntimeErrorCode = "LENGTH_MISMATCH"

	// ErrCodeNotFitted indicates a fitted selection with an unset fill.
	ErrCodeNotFitted RuntimeErrorCode = "NOT_FITTED"
)

// RuntimeError represents an error detected while transforming or coalescing.
type RuntimeError struct {
	// Code identifies the error category.
	Code RuntimeErrorCode

	// Message is a human-readable description.
	Message string

	// Step is the position of the offending selection in the sorted fold,
	// or -1 when the error is not tied to one step.
	Step int

	// Selection is the display form of the offending selection, if any.
	Selection string
}

// Error implements the error interface.
func (e *RuntimeError) Error() string {
	if e.Selection != "" {
		return fmt.Sprintf("%s: %s (step=%d, selection=%s)", e.Code, e.Message, e.Step, e.Selection)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is matches the sentinel error corresponding to e.Code.
func (e *RuntimeError) Is(target error) bool {
	switch e.Code {
	case ErrCodeLengthMismatch:
		return target == ErrLengthMismatch
	case ErrCodeNotFitted:
		return target == ErrNotFitted
	}
	return false
}

func newLengthError(inputs, results int) *RuntimeError {
	return &RuntimeError{
		Code:    ErrCodeLengthMismatch,
		Message: fmt.Sprintf("input has %d values, result has %d", inputs, results),
		Step:    -1,
	}
}

func newNotFittedError(step int, sel fmt.Stringer) *RuntimeError {
	return &RuntimeError{
		Code:      ErrCodeNotFitted,
		Message:   "fill policy is unset",
		Step:      step,
		Selection: sel.String(),
	}
}
