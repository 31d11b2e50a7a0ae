package knapsack

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes solver errors.
type ErrorCode string

const (
	// CodeInvalidBounds indicates New was given a bound below 1.
	CodeInvalidBounds ErrorCode = "INVALID_BOUNDS"

	// CodeOutOfCapacity indicates the candidate buffer is full.
	CodeOutOfCapacity ErrorCode = "OUT_OF_CAPACITY"

	// CodeInvalidCandidate indicates a non-positive weight or value.
	CodeInvalidCandidate ErrorCode = "INVALID_CANDIDATE"

	// CodeCapacityOutOfRange indicates a solve capacity outside [0, maxCapacity].
	CodeCapacityOutOfRange ErrorCode = "CAPACITY_OUT_OF_RANGE"

	// CodeIndexOutOfRange indicates a result read past the current length.
	CodeIndexOutOfRange ErrorCode = "INDEX_OUT_OF_RANGE"
)

// Sentinels for errors.Is. Only the Code is compared.
var (
	ErrInvalidBounds      = &Error{Code: CodeInvalidBounds}
	ErrOutOfCapacity      = &Error{Code: CodeOutOfCapacity}
	ErrInvalidCandidate   = &Error{Code: CodeInvalidCandidate}
	ErrCapacityOutOfRange = &Error{Code: CodeCapacityOutOfRange}
	ErrIndexOutOfRange    = &Error{Code: CodeIndexOutOfRange}
)

// Error is returned by Solver operations that reject their input.
//
// Every rejection leaves the solver exactly as it was before the call; the
// solver stays usable.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Got is the offending input (count, capacity, index or weight).
	Got int

	// Limit is the bound that was violated, when there is one.
	Limit int
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Code)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is reports whether target is a solver error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// IsOutOfCapacity returns true if err is an OUT_OF_CAPACITY error.
// Uses errors.As to handle wrapped errors.
func IsOutOfCapacity(err error) bool {
	return hasCode(err, CodeOutOfCapacity)
}

// IsInvalidCandidate returns true if err is an INVALID_CANDIDATE error.
func IsInvalidCandidate(err error) bool {
	return hasCode(err, CodeInvalidCandidate)
}

// IsCapacityOutOfRange returns true if err is a CAPACITY_OUT_OF_RANGE error.
func IsCapacityOutOfRange(err error) bool {
	return hasCode(err, CodeCapacityOutOfRange)
}

// IsIndexOutOfRange returns true if err is an INDEX_OUT_OF_RANGE error.
func IsIndexOutOfRange(err error) bool {
	return hasCode(err, CodeIndexOutOfRange)
}

func hasCode(err error, code ErrorCode) bool {
	var se *Error
	if errors.As(err, &se) {
		return se.Code == code
	}
	return false
}

func newOutOfCapacityError(limit int) *Error {
	return &Error{
		Code:    CodeOutOfCapacity,
		Message: fmt.Sprintf("candidate set is full (%d candidates)", limit),
		Got:     limit,
		Limit:   limit,
	}
}

func newInvalidCandidateError(weight, value int) *Error {
	if weight <= 0 {
		return &Error{
			Code:    CodeInvalidCandidate,
			Message: fmt.Sprintf("weight must be positive, got %d (value %d)", weight, value),
			Got:     weight,
		}
	}
	return &Error{
		Code:    CodeInvalidCandidate,
		Message: fmt.Sprintf("value must be positive, got %d (weight %d)", value, weight),
		Got:     value,
	}
}

func newValueTooLargeError(value, limit int) *Error {
	return &Error{
		Code:    CodeInvalidCandidate,
		Message: fmt.Sprintf("value %d exceeds %d", value, limit),
		Got:     value,
		Limit:   limit,
	}
}

func newCapacityOutOfRangeError(capacity, limit int) *Error {
	return &Error{
		Code:    CodeCapacityOutOfRange,
		Message: fmt.Sprintf("capacity %d outside [0, %d]", capacity, limit),
		Got:     capacity,
		Limit:   limit,
	}
}

func newIndexOutOfRangeError(index, length int) *Error {
	return &Error{
		Code:    CodeIndexOutOfRange,
		Message: fmt.Sprintf("index %d outside result of length %d", index, length),
		Got:     index,
		Limit:   length,
	}
}
