package handlers

import (
	"net/http"

	"campuspay/services/connectivity"
	"campuspay/utils"

	"github.com/gin-gonic/gin"
)

// ConnectivityHandler feeds platform reachability events and the
// operator's simulated-offline toggle into the monitor.
type ConnectivityHandler struct {
	Monitor *connectivity.Monitor
}

// NewConnectivityHandler returns a handler over the monitor.
func NewConnectivityHandler(m *connectivity.Monitor) *ConnectivityHandler {
	return &ConnectivityHandler{Monitor: m}
}

// ConnectivityEventHandler handles POST /api/connectivity/events.
func (h *ConnectivityHandler) ConnectivityEventHandler(c *gin.Context) {
	var req struct {
		Event string `json:"event" binding:"required,oneof=online offline"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid connectivity event", err.Error())
		return
	}
	h.Monitor.SetNetworkOnline(req.Event == "online")
	h.state(c)
}

// SimulateOfflineHandler handles PUT /api/connectivity/simulate.
func (h *ConnectivityHandler) SimulateOfflineHandler(c *gin.Context) {
	var req struct {
		SimulateOffline *bool `json:"simulateOffline" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid simulate payload", err.Error())
		return
	}
	h.Monitor.SetSimulatedOffline(*req.SimulateOffline)
	h.state(c)
}

// GetConnectivityHandler handles GET /api/connectivity.
func (h *ConnectivityHandler) GetConnectivityHandler(c *gin.Context) {
	h.state(c)
}

func (h *ConnectivityHandler) state(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"online":           h.Monitor.Online(),
		"networkOnline":    h.Monitor.NetworkOnline(),
		"simulatedOffline": h.Monitor.SimulatedOffline(),
	})
}
