package sync

import (
	"fmt"
	"time"

	"campuspay/models"
)

// Normalize folds the divergent queue-item shapes accumulated across
// client versions into the canonical record. Older clients stored the
// payment method under the deprecated feeType field and carried no fee
// category at all; this is the only place those legacy semantics live.
func Normalize(p models.QueuedPayment) models.QueuedPayment {
	if p.PaymentMethod == "" {
		p.PaymentMethod = p.LegacyFeeType
	}
	if p.PaymentMethod == "" {
		p.PaymentMethod = models.MethodCash
	}
	if p.FeeCategory == "" {
		p.FeeCategory = models.FeeTuition
	}
	if p.CashierName == "" {
		p.CashierName = "Unknown"
	}
	if p.Date.IsZero() {
		p.Date = time.Now()
	}
	if p.Term == "" {
		p.Term = TermForDate(p.Date)
	}
	if p.AcademicYear == 0 {
		p.AcademicYear = p.Date.Year()
	}
	return p
}

// TermForDate derives the school term label from a capture date.
func TermForDate(t time.Time) string {
	switch {
	case t.Month() <= time.April:
		return "Term 1"
	case t.Month() <= time.August:
		return "Term 2"
	default:
		return "Term 3"
	}
}

// BuildSubmission maps a normalized record and its resolved student id
// onto the remote API payload. The receipt number placeholder
// (student id + submission timestamp) keeps resubmissions recognizable
// server-side; final idempotency enforcement is the server's job.
func BuildSubmission(p models.QueuedPayment, studentID int, now time.Time) models.PaymentSubmission {
	return models.PaymentSubmission{
		Student:          studentID,
		Amount:           p.Amount,
		PaymentMethod:    p.PaymentMethod,
		FeeType:          p.FeeCategory,
		ReceiptNumber:    fmt.Sprintf("%d-%d", studentID, now.UnixMilli()),
		Status:           "pending",
		Term:             p.Term,
		AcademicYear:     p.AcademicYear,
		CashierID:        p.CashierID,
		CashierName:      p.CashierName,
		ReferenceID:      optional(p.ReferenceID),
		BankName:         optional(p.BankName),
		MerchantProvider: optional(p.MerchantProvider),
		Notes:            p.Notes,
	}
}

// optional maps empty strings to JSON null, per the backend contract.
func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
