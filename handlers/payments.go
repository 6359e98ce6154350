package handlers

import (
	"errors"
	"net/http"
	"time"

	"campuspay/models"
	"campuspay/services/queue"
	"campuspay/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// PaymentHandler exposes the offline queue to the capture UI.
type PaymentHandler struct {
	Queue *queue.PaymentQueue
}

// NewPaymentHandler returns a handler over the queue facade.
func NewPaymentHandler(q *queue.PaymentQueue) *PaymentHandler {
	return &PaymentHandler{Queue: q}
}

type enqueueRequest struct {
	StudentID     int       `json:"studentId"`
	StudentNumber string    `json:"studentNumber"`
	Amount        float64   `json:"amount" binding:"required,gt=0"`
	PaymentMethod string    `json:"paymentMethod" binding:"omitempty,oneof='Cash' 'Card' 'Bank Transfer' 'Mobile Money'"`
	FeeCategory   string    `json:"feeCategory" binding:"omitempty,oneof=Tuition Transport Boarding Registration Other"`
	Date          time.Time `json:"date"`
	CashierID     int       `json:"cashierId"`
	CashierName   string    `json:"cashierName"`
	Term          string    `json:"term"`
	AcademicYear  int       `json:"academicYear"`

	BankName         string `json:"bankName"`
	ReferenceID      string `json:"referenceId"`
	MerchantProvider string `json:"merchantProvider"`
	Notes            string `json:"notes"`
}

// EnqueuePaymentHandler handles POST /api/payments.
func (h *PaymentHandler) EnqueuePaymentHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var req enqueueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Error("Invalid enqueue request", zap.Error(err))
		utils.JSONError(c, http.StatusBadRequest, "Invalid payment payload", err.Error())
		return
	}

	rec, err := h.Queue.Enqueue(c.Request.Context(), models.QueuedPayment{
		StudentID:        req.StudentID,
		StudentNumber:    req.StudentNumber,
		Amount:           req.Amount,
		PaymentMethod:    req.PaymentMethod,
		FeeCategory:      req.FeeCategory,
		Date:             req.Date,
		CashierID:        req.CashierID,
		CashierName:      req.CashierName,
		Term:             req.Term,
		AcademicYear:     req.AcademicYear,
		BankName:         req.BankName,
		ReferenceID:      req.ReferenceID,
		MerchantProvider: req.MerchantProvider,
		Notes:            req.Notes,
	})
	if err != nil {
		var dup queue.DuplicateError
		switch {
		case errors.As(err, &dup):
			utils.JSONError(c, http.StatusConflict, "Duplicate payment detected", dup.Error())
		case errors.Is(err, queue.ErrNonPositiveAmount),
			errors.Is(err, queue.ErrMissingStudentRef),
			errors.Is(err, queue.ErrAmbiguousStudentRef):
			utils.JSONError(c, http.StatusBadRequest, "Invalid payment", err.Error())
		default:
			logger.Error("Enqueue failed", zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "Failed to queue payment", err.Error())
		}
		return
	}

	c.JSON(http.StatusCreated, rec)
}

// GetQueueHandler handles GET /api/payments/queue.
func (h *PaymentHandler) GetQueueHandler(c *gin.Context) {
	ctx := c.Request.Context()
	pending, errored := h.Queue.Counts(ctx)
	c.JSON(http.StatusOK, gin.H{
		"queue":   h.Queue.Queue(ctx),
		"pending": pending,
		"errors":  errored,
	})
}

// ClearQueueHandler handles DELETE /api/payments/queue.
func (h *PaymentHandler) ClearQueueHandler(c *gin.Context) {
	if err := h.Queue.Clear(c.Request.Context()); err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to clear queue", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Queue cleared"})
}
