package directory

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"campuspay/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// snapshotKey is the cache key the student directory snapshot lives under.
const snapshotKey = "directory:students"

// SnapshotCache holds the last successfully fetched student directory so
// resolution can degrade gracefully when the backend is unreachable.
// Implementations fail open: a broken cache is a miss, never an error.
type SnapshotCache interface {
	Get(ctx context.Context) ([]models.Student, bool)
	Put(ctx context.Context, students []models.Student)
}

type redisSnapshotCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger

	// last fetched snapshot, kept in-process so a Redis outage after a
	// successful directory fetch still leaves something to resolve with.
	mu   sync.RWMutex
	warm []models.Student
}

// NewRedisSnapshotCache returns a snapshot cache backed by the
// terminal-local Redis, with an in-process copy as second-level fallback.
func NewRedisSnapshotCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) SnapshotCache {
	return &redisSnapshotCache{client: client, ttl: ttl, logger: logger}
}

func (c *redisSnapshotCache) Get(ctx context.Context) ([]models.Student, bool) {
	if c.client != nil {
		raw, err := c.client.Get(ctx, snapshotKey).Bytes()
		if err == nil {
			var students []models.Student
			if jsonErr := json.Unmarshal(raw, &students); jsonErr == nil {
				return students, true
			} else {
				c.logger.Warn("corrupt directory snapshot in cache", zap.Error(jsonErr))
			}
		} else if err != redis.Nil {
			c.logger.Warn("snapshot cache unavailable", zap.Error(err))
		}
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.warm) == 0 {
		return nil, false
	}
	return c.warm, true
}

func (c *redisSnapshotCache) Put(ctx context.Context, students []models.Student) {
	c.mu.Lock()
	c.warm = students
	c.mu.Unlock()

	if c.client == nil {
		return
	}
	raw, err := json.Marshal(students)
	if err != nil {
		c.logger.Warn("failed to encode directory snapshot", zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, snapshotKey, raw, c.ttl).Err(); err != nil {
		c.logger.Warn("failed to store directory snapshot", zap.Error(err))
	}
}

// MemorySnapshotCache is a SnapshotCache for tests.
type MemorySnapshotCache struct {
	mu       sync.RWMutex
	students []models.Student
	warm     bool
}

func NewMemorySnapshotCache() *MemorySnapshotCache {
	return &MemorySnapshotCache{}
}

func (c *MemorySnapshotCache) Get(ctx context.Context) ([]models.Student, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.students, c.warm
}

func (c *MemorySnapshotCache) Put(ctx context.Context, students []models.Student) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.students = students
	c.warm = true
}
