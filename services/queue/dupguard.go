package queue

import (
	"strings"
	"time"

	"campuspay/models"
)

// DuplicateGuard flags candidates that repeat a recent payment for the
// same student reference and fee category. The trailing window is
// configurable; the historical 24h default was never a documented
// business rule.
type DuplicateGuard struct {
	Window time.Duration
}

// NewDuplicateGuard returns a guard with the given trailing window,
// defaulting to 24 hours when non-positive.
func NewDuplicateGuard(window time.Duration) *DuplicateGuard {
	if window <= 0 {
		window = 24 * time.Hour
	}
	return &DuplicateGuard{Window: window}
}

// IsDuplicate reports whether history contains a payment for the same
// student and fee category captured within the trailing window of the
// candidate's capture time. It operates purely on locally visible data.
func (g *DuplicateGuard) IsDuplicate(candidate models.QueuedPayment, history []models.QueuedPayment) bool {
	for _, p := range history {
		if !sameStudent(candidate, p) || effectiveFee(candidate) != effectiveFee(p) {
			continue
		}
		age := candidate.Date.Sub(p.Date)
		if age >= 0 && age <= g.Window {
			return true
		}
	}
	return false
}

func sameStudent(a, b models.QueuedPayment) bool {
	if a.StudentID > 0 && a.StudentID == b.StudentID {
		return true
	}
	if a.StudentNumber != "" && strings.EqualFold(strings.TrimSpace(a.StudentNumber), strings.TrimSpace(b.StudentNumber)) {
		return true
	}
	return false
}

// effectiveFee mirrors the sync-time default so that legacy records
// (which carried no fee category) still participate in the window.
func effectiveFee(p models.QueuedPayment) string {
	if p.FeeCategory == "" {
		return models.FeeTuition
	}
	return p.FeeCategory
}
