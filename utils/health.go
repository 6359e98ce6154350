package utils

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
)

// HealthStatus represents current status of local dependencies.
type HealthStatus struct {
	QueueDB   bool      `json:"queueDb"`
	Redis     bool      `json:"redis"`
	CheckedAt time.Time `json:"checkedAt"`
}

var (
	currentHealth HealthStatus
	mu            sync.RWMutex
)

// GetHealthStatus returns latest stored health snapshot.
func GetHealthStatus() HealthStatus {
	mu.RLock()
	defer mu.RUnlock()
	return currentHealth
}

// StartHealthMonitor performs periodic health checks and updates in-memory state.
// The first check runs immediately so /health never reports a cold zero state.
func StartHealthMonitor(db *sql.DB, redisClient *redis.Client) {
	check := func(ctx context.Context) {
		redisHealthy := redisClient != nil && redisClient.Ping(ctx).Err() == nil
		dbHealthy := db != nil && db.PingContext(ctx) == nil

		mu.Lock()
		currentHealth = HealthStatus{
			QueueDB:   dbHealthy,
			Redis:     redisHealthy,
			CheckedAt: time.Now(),
		}
		mu.Unlock()
	}

	go func() {
		ctx := context.Background()
		check(ctx)

		ticker := time.NewTicker(60 * time.Second)
		defer ticker.Stop()
		for range ticker.C {
			check(ctx)
		}
	}()
}
