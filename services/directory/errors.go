package directory

import "fmt"

// UnresolvedStudentError signals that a student reference could not be
// matched against the directory. The record stays queued for retry.
type UnresolvedStudentError struct {
	Reference string
}

func (e UnresolvedStudentError) Error() string {
	return fmt.Sprintf("unresolved student: no directory match for %q", e.Reference)
}

// MissingReferenceError signals a record that carries neither a resolved
// student id nor a student number.
type MissingReferenceError struct{}

func (e MissingReferenceError) Error() string {
	return "missing student identifier"
}
