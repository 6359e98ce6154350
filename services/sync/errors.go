package sync

import (
	"errors"
	"fmt"
)

// ErrSyncInProgress signals that a drain was requested while another was
// already running. It is a no-op signal, not a failure: the concurrent
// request is ignored rather than queued.
var ErrSyncInProgress = errors.New("sync already in progress")

// RemoteRejectedError is a validation rejection from the payments API.
// The record stays queued with the server's message retained so the
// cashier can fix the data and retry.
type RemoteRejectedError struct {
	StatusCode int
	Body       string
}

func (e RemoteRejectedError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("payment rejected (status %d)", e.StatusCode)
	}
	return fmt.Sprintf("payment rejected (status %d): %s", e.StatusCode, e.Body)
}

// NetworkError wraps a transport failure while submitting a payment.
// Retryable; expected to clear once connectivity returns.
type NetworkError struct {
	Err error
}

func (e NetworkError) Error() string {
	return "payment API unreachable: " + e.Err.Error()
}

func (e NetworkError) Unwrap() error {
	return e.Err
}
