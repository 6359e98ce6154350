package handlers

import (
	"errors"
	"net/http"

	"campuspay/services/queue"
	synceng "campuspay/services/sync"
	"campuspay/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SyncHandler exposes manual sync and sync status to the capture UI.
type SyncHandler struct {
	Queue *queue.PaymentQueue
}

// NewSyncHandler returns a handler over the queue facade.
func NewSyncHandler(q *queue.PaymentQueue) *SyncHandler {
	return &SyncHandler{Queue: q}
}

// TriggerSyncHandler handles POST /api/sync ("sync now").
func (h *SyncHandler) TriggerSyncHandler(c *gin.Context) {
	summary, err := h.Queue.TriggerSync(c.Request.Context())
	if err != nil {
		switch {
		case errors.Is(err, queue.ErrOffline):
			utils.JSONError(c, http.StatusServiceUnavailable, "Cannot sync while offline", err.Error())
		case errors.Is(err, synceng.ErrSyncInProgress):
			// Not an error: the concurrent request is simply ignored.
			c.JSON(http.StatusConflict, gin.H{"message": "Sync already in progress", "ignored": true})
		default:
			utils.GetLogger().Error("Sync failed", zap.Error(err))
			utils.JSONError(c, http.StatusInternalServerError, "Sync failed", err.Error())
		}
		return
	}
	c.JSON(http.StatusOK, summary)
}

// SyncStatusHandler handles GET /api/sync/status.
func (h *SyncHandler) SyncStatusHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"syncing":      h.Queue.Syncing(),
		"lastSummary":  h.Queue.LastSummary(),
		"lastSyncedAt": h.Queue.LastSyncedAt(),
	})
}
