// Package directory resolves human-entered student references to the
// canonical student ids the remote payments API requires.
package directory

import (
	"context"
	"strings"

	"campuspay/models"

	"go.uber.org/zap"
)

// Resolver maps a queued payment's student reference to a canonical
// remote student id. Resolution happens at sync time, not capture time:
// while offline, a hand-entered student number is the only information
// guaranteed to be available.
type Resolver struct {
	Client Client
	Cache  SnapshotCache
	Logger *zap.Logger
}

// NewResolver wires a resolver over the directory client and cache.
func NewResolver(client Client, cache SnapshotCache, logger *zap.Logger) *Resolver {
	return &Resolver{Client: client, Cache: cache, Logger: logger}
}

// Resolve returns the canonical student id for the record.
//
// A trusted numeric id is revalidated against the backend, but only as
// an advisory check: a failed lookup does not block a record that
// already carries an id. A student number is matched exactly
// (case-folded) against the live directory, falling back to the last
// cached snapshot when the directory cannot be fetched.
func (r *Resolver) Resolve(ctx context.Context, rec models.QueuedPayment) (int, error) {
	if rec.StudentID > 0 {
		if _, err := r.Client.GetStudent(ctx, rec.StudentID); err != nil {
			r.Logger.Debug("advisory student validation skipped",
				zap.Int("studentId", rec.StudentID), zap.Error(err))
		}
		return rec.StudentID, nil
	}

	number := strings.TrimSpace(rec.StudentNumber)
	if number == "" {
		return 0, MissingReferenceError{}
	}

	students, err := r.Client.ListStudents(ctx)
	if err != nil {
		cached, ok := r.Cache.Get(ctx)
		if !ok {
			return 0, err
		}
		r.Logger.Warn("directory unreachable, resolving against cached snapshot",
			zap.String("studentNumber", number), zap.Error(err))
		students = cached
	} else {
		r.Cache.Put(ctx, students)
	}

	for _, s := range students {
		if strings.EqualFold(strings.TrimSpace(s.StudentNumber), number) {
			return s.ID, nil
		}
	}
	return 0, UnresolvedStudentError{Reference: number}
}
