// File: utils/cache.go
package utils

import (
	"campuspay/config"
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// CacheClient is the client for the terminal-local Redis used to cache
// the student directory snapshot.
var CacheClient *redis.Client

// InitCache initializes the Redis cache client. Redis being unreachable
// is not fatal: the snapshot cache degrades to its in-process copy and
// the terminal keeps capturing payments.
func InitCache() {
	CacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := CacheClient.Ping(ctx).Result(); err != nil {
		GetLogger().Warn("Redis unreachable, snapshot cache degraded", zap.Error(err))
	}
}

// GetCacheClient returns the cache client.
func GetCacheClient() *redis.Client {
	if CacheClient == nil {
		InitCache()
	}
	return CacheClient
}
