package routes

import (
	"net/http"
	"time"

	"campuspay/handlers"
	"campuspay/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterPaymentRoutes registers capture-screen endpoints.
func RegisterPaymentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/payments")
	{
		api.POST("", hb.EnqueuePaymentHandler)
		api.GET("/queue", hb.GetQueueHandler)
		api.DELETE("/queue", hb.ClearQueueHandler)
	}
}

// RegisterSyncRoutes registers manual sync and status endpoints.
func RegisterSyncRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/sync")
	{
		api.POST("", hb.TriggerSyncHandler)
		api.GET("/status", hb.SyncStatusHandler)
	}
}

// RegisterConnectivityRoutes registers reachability and simulator endpoints.
func RegisterConnectivityRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/connectivity")
	{
		api.GET("", hb.GetConnectivityHandler)
		api.POST("/events", hb.ConnectivityEventHandler)
		api.PUT("/simulate", hb.SimulateOfflineHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "services": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	// Setup global middleware (e.g., CORS) here.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterPaymentRoutes(r, hb)
	RegisterSyncRoutes(r, hb)
	RegisterConnectivityRoutes(r, hb)
	RegisterHealthRoute(r)
}
