package queuestore

import (
	"context"
	"sync"

	"campuspay/models"
)

// MemoryQueueStore is an in-process QueueStore used by tests and as the
// fail-open fallback when local storage cannot be opened at all.
type MemoryQueueStore struct {
	mu    sync.Mutex
	queue []models.QueuedPayment
}

// NewMemoryQueueStore returns an empty in-memory store.
func NewMemoryQueueStore() *MemoryQueueStore {
	return &MemoryQueueStore{queue: []models.QueuedPayment{}}
}

func (s *MemoryQueueStore) Load(ctx context.Context) []models.QueuedPayment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyQueue(s.queue)
}

func (s *MemoryQueueStore) Save(ctx context.Context, queue []models.QueuedPayment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queue = copyQueue(queue)
	return nil
}

func (s *MemoryQueueStore) Update(ctx context.Context, apply func(queue []models.QueuedPayment) ([]models.QueuedPayment, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := apply(copyQueue(s.queue))
	if err != nil {
		return err
	}
	s.queue = copyQueue(next)
	return nil
}

func copyQueue(queue []models.QueuedPayment) []models.QueuedPayment {
	out := make([]models.QueuedPayment, len(queue))
	copy(out, queue)
	return out
}
