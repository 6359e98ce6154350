package queue

import (
	"errors"
	"fmt"
	"time"
)

// ErrOffline signals that a manual sync was requested while effectively
// offline.
var ErrOffline = errors.New("terminal is effectively offline")

// ErrNonPositiveAmount rejects captures with a zero or negative amount.
var ErrNonPositiveAmount = errors.New("amount must be greater than zero")

// ErrMissingStudentRef rejects captures carrying neither a student id
// nor a student number.
var ErrMissingStudentRef = errors.New("either studentId or studentNumber is required")

// ErrAmbiguousStudentRef rejects captures carrying both reference kinds;
// resolution to a canonical id happens at sync time, from exactly one.
var ErrAmbiguousStudentRef = errors.New("provide studentId or studentNumber, not both")

// DuplicateError rejects a capture that repeats a very recent payment
// for the same student and fee category. A heuristic safety net against
// double key-entry, not a remote-idempotency guarantee.
type DuplicateError struct {
	StudentRef  string
	FeeCategory string
	Window      time.Duration
}

func (e DuplicateError) Error() string {
	return fmt.Sprintf("duplicate payment: student %s already has a %s payment within the last %s",
		e.StudentRef, e.FeeCategory, e.Window)
}
