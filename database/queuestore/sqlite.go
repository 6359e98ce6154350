package queuestore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"campuspay/models"

	"go.uber.org/zap"
)

// queueKey is the single namespaced key the queue lives under, matching
// the storage contract of earlier client versions.
const queueKey = "offlinePayments"

type sqliteQueueStore struct {
	db     *sql.DB
	logger *zap.Logger

	// mu serializes read-modify-write sequences. SQLite only guarantees
	// per-statement atomicity; Update spans a read and a write.
	mu sync.Mutex
}

// NewSQLiteQueueStore returns a QueueStore backed by a key/value table in
// the terminal-local SQLite database.
func NewSQLiteQueueStore(db *sql.DB, logger *zap.Logger) (QueueStore, error) {
	const schema = `CREATE TABLE IF NOT EXISTS kv (
		key   TEXT PRIMARY KEY,
		value BLOB NOT NULL
	)`
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to create kv table: %w", err)
	}
	return &sqliteQueueStore{db: db, logger: logger}, nil
}

// Load reads the full queue. Any failure degrades to an empty queue.
func (s *sqliteQueueStore) Load(ctx context.Context) []models.QueuedPayment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// Save replaces the stored queue in a single upsert. The write is atomic
// at the row level, so concurrent readers see either the old list or the
// new one, never a partial write.
func (s *sqliteQueueStore) Save(ctx context.Context, queue []models.QueuedPayment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(ctx, queue)
}

// Update runs apply over the current queue and persists the result, all
// under the store lock. An error from apply aborts without writing.
func (s *sqliteQueueStore) Update(ctx context.Context, apply func(queue []models.QueuedPayment) ([]models.QueuedPayment, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := apply(s.load(ctx))
	if err != nil {
		return err
	}
	return s.save(ctx, next)
}

func (s *sqliteQueueStore) load(ctx context.Context) []models.QueuedPayment {
	var raw []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, queueKey).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return []models.QueuedPayment{}
	}
	if err != nil {
		s.logger.Warn("queue storage unavailable, treating as empty",
			zap.String("key", queueKey), zap.Error(err))
		return []models.QueuedPayment{}
	}

	var queue []models.QueuedPayment
	if err := json.Unmarshal(raw, &queue); err != nil {
		s.logger.Warn("corrupt queue payload, treating as empty",
			zap.String("key", queueKey), zap.Error(err))
		return []models.QueuedPayment{}
	}
	return queue
}

func (s *sqliteQueueStore) save(ctx context.Context, queue []models.QueuedPayment) error {
	if queue == nil {
		queue = []models.QueuedPayment{}
	}
	raw, err := json.Marshal(queue)
	if err != nil {
		return fmt.Errorf("failed to encode queue: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		queueKey, raw)
	if err != nil {
		return fmt.Errorf("failed to persist queue: %w", err)
	}
	return nil
}
