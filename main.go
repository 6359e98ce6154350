// File: campuspay/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"campuspay/config"
	"campuspay/database"
	"campuspay/database/queuestore"
	"campuspay/handlers"
	"campuspay/middleware"
	"campuspay/routes"
	"campuspay/services/connectivity"
	"campuspay/services/directory"
	"campuspay/services/queue"
	synceng "campuspay/services/sync"
	"campuspay/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// Durable queue store. If the local database is unusable the store
	// itself fails open, so capture keeps working either way.
	store, err := queuestore.NewSQLiteQueueStore(database.SQLiteDB, logger)
	if err != nil {
		logger.Sugar().Warnf("main: local queue storage unavailable, falling back to in-memory queue: %v", err)
		store = queuestore.NewMemoryQueueStore()
	}

	// services.
	monitor := connectivity.NewMonitor(logger)
	snapshotCache := directory.NewRedisSnapshotCache(
		utils.GetCacheClient(),
		time.Duration(config.AppConfig.DirectoryCacheTTLMin)*time.Minute,
		logger,
	)
	resolver := directory.NewResolver(
		directory.NewHTTPClient(config.AppConfig.APIBaseURL, config.AppConfig.APIToken),
		snapshotCache,
		logger,
	)
	paymentsAPI := synceng.NewHTTPPaymentsClient(config.AppConfig.APIBaseURL, config.AppConfig.APIToken)
	guard := queue.NewDuplicateGuard(time.Duration(config.AppConfig.DuplicateWindowHours) * time.Hour)

	paymentQueue := queue.NewPaymentQueue(store, resolver, paymentsAPI, monitor, guard, logger)
	defer paymentQueue.WatchConnectivity()()

	rootCtx, stopBackground := context.WithCancel(context.Background())
	defer stopBackground()
	paymentQueue.StartPeriodicSync(rootCtx, time.Duration(config.AppConfig.AutoSyncIntervalSec)*time.Second)

	utils.StartHealthMonitor(database.SQLiteDB, utils.GetCacheClient())

	// handlers.
	paymentHandler := handlers.NewPaymentHandler(paymentQueue)
	syncHandler := handlers.NewSyncHandler(paymentQueue)
	connectivityHandler := handlers.NewConnectivityHandler(monitor)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		EnqueuePaymentHandler: paymentHandler.EnqueuePaymentHandler,
		GetQueueHandler:       paymentHandler.GetQueueHandler,
		ClearQueueHandler:     paymentHandler.ClearQueueHandler,

		TriggerSyncHandler: syncHandler.TriggerSyncHandler,
		SyncStatusHandler:  syncHandler.SyncStatusHandler,

		ConnectivityEventHandler: connectivityHandler.ConnectivityEventHandler,
		SimulateOfflineHandler:   connectivityHandler.SimulateOfflineHandler,
		GetConnectivityHandler:   connectivityHandler.GetConnectivityHandler,
	}

	routes.RegisterRoutes(router, handlerBundle)

	srv := &http.Server{
		Addr:    ":" + config.AppConfig.AppPort,
		Handler: router,
	}

	go func() {
		logger.Info("campuspay sync core listening", zap.String("port", config.AppConfig.AppPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server error: %v", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("forced shutdown", zap.Error(err))
	}
}
