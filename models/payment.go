package models

import "time"

// PaymentStatus tracks a queued payment through a drain pass.
// Transitions only move forward: queued -> syncing -> synced, or
// queued -> syncing -> error -> syncing -> ... A synced record never regresses.
type PaymentStatus string

const (
	StatusQueued  PaymentStatus = "queued"
	StatusSyncing PaymentStatus = "syncing"
	StatusSynced  PaymentStatus = "synced"
	StatusError   PaymentStatus = "error"
)

// Eligible reports whether a record should be picked up by a drain pass.
func (s PaymentStatus) Eligible() bool {
	return s == StatusQueued || s == StatusError
}

// Payment methods accepted at the counter.
const (
	MethodCash         = "Cash"
	MethodCard         = "Card"
	MethodBankTransfer = "Bank Transfer"
	MethodMobileMoney  = "Mobile Money"
)

// Fee categories.
const (
	FeeTuition      = "Tuition"
	FeeTransport    = "Transport"
	FeeBoarding     = "Boarding"
	FeeRegistration = "Registration"
	FeeOther        = "Other"
)

// QueuedPayment is a single pending financial transaction captured while
// offline-eligible. It is persisted immediately on enqueue and survives
// process restarts; the sync engine is the only mutator of Status.
type QueuedPayment struct {
	ID            string  `json:"id"`
	StudentID     int     `json:"studentId,omitempty"`
	StudentNumber string  `json:"studentNumber,omitempty"`
	Amount        float64 `json:"amount"`
	PaymentMethod string  `json:"paymentMethod,omitempty"`
	FeeCategory   string  `json:"feeCategory,omitempty"`

	// Deprecated: older client versions stored the payment method under
	// feeType. Kept on the struct only so legacy queue items round-trip;
	// read exclusively by the sync engine's normalization step.
	LegacyFeeType string `json:"feeType,omitempty"`

	Date             time.Time     `json:"date"`
	CashierID        int           `json:"cashierId,omitempty"`
	CashierName      string        `json:"cashierName,omitempty"`
	Term             string        `json:"term,omitempty"`
	AcademicYear     int           `json:"academicYear,omitempty"`
	BankName         string        `json:"bankName,omitempty"`
	ReferenceID      string        `json:"referenceId,omitempty"`
	MerchantProvider string        `json:"merchantProvider,omitempty"`
	Notes            string        `json:"notes,omitempty"`
	Status           PaymentStatus `json:"status"`

	// LastError retains the human-readable cause of the most recent
	// failed sync attempt for display at the counter.
	LastError string `json:"lastError,omitempty"`
}

// PaymentSubmission is the wire payload the remote payments API accepts.
// Field names follow the backend contract (snake_case, "student" for the
// canonical student id, "fee_type" for the fee category).
type PaymentSubmission struct {
	Student          int     `json:"student"`
	Amount           float64 `json:"amount"`
	PaymentMethod    string  `json:"payment_method"`
	FeeType          string  `json:"fee_type"`
	ReceiptNumber    string  `json:"receipt_number"`
	Status           string  `json:"status"`
	Term             string  `json:"term,omitempty"`
	AcademicYear     int     `json:"academic_year,omitempty"`
	CashierID        int     `json:"cashier_id,omitempty"`
	CashierName      string  `json:"cashier_name"`
	ReferenceID      *string `json:"reference_id"`
	BankName         *string `json:"bank_name"`
	MerchantProvider *string `json:"merchant_provider"`
	Notes            string  `json:"notes,omitempty"`
}

// SyncItemResult is the per-record outcome of one drain pass.
type SyncItemResult struct {
	PaymentID     string `json:"paymentId"`
	Synced        bool   `json:"synced"`
	ReceiptNumber string `json:"receiptNumber,omitempty"`
	Error         string `json:"error,omitempty"`
}

// SyncSummary reports the outcome of a full drain pass.
type SyncSummary struct {
	Succeeded  int              `json:"succeeded"`
	Failed     int              `json:"failed"`
	StartedAt  time.Time        `json:"startedAt"`
	FinishedAt time.Time        `json:"finishedAt"`
	Items      []SyncItemResult `json:"items"`
}
