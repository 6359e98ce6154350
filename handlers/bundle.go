// File: campuspay/handlers/handlerBundle.go
package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	// Payment capture endpoints
	EnqueuePaymentHandler gin.HandlerFunc
	GetQueueHandler       gin.HandlerFunc
	ClearQueueHandler     gin.HandlerFunc

	// Sync endpoints
	TriggerSyncHandler gin.HandlerFunc
	SyncStatusHandler  gin.HandlerFunc

	// Connectivity endpoints
	ConnectivityEventHandler gin.HandlerFunc
	SimulateOfflineHandler   gin.HandlerFunc
	GetConnectivityHandler   gin.HandlerFunc
}
