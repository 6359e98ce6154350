// Package queue is the single public surface over the offline payment
// queue: enqueue, inspect, subscribe, and trigger sync.
package queue

import (
	"context"
	"fmt"
	stdsync "sync"
	"time"

	"campuspay/database/queuestore"
	"campuspay/models"
	"campuspay/services/connectivity"
	synceng "campuspay/services/sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// PaymentQueue owns the observable queue state. Every durable mutation
// (enqueue, status change, removal) notifies subscribers synchronously
// after the underlying store write completes, so UI state is never stale
// relative to durable state. Mutations are serialized by the store's
// Update primitive, not by a facade lock, so the engine's mid-drain
// status writes and the capture path cannot clobber each other.
type PaymentQueue struct {
	store   queuestore.QueueStore
	engine  *synceng.Engine
	monitor *connectivity.Monitor
	guard   *DuplicateGuard
	logger  *zap.Logger

	listenersMu stdsync.RWMutex
	listeners   map[int]func()
	nextID      int
}

// NewPaymentQueue wires the facade and its sync engine over the store.
// The engine writes through the same notifying wrapper as the facade, so
// status transitions persisted mid-drain reach subscribers too.
func NewPaymentQueue(
	store queuestore.QueueStore,
	resolver synceng.IdentityResolver,
	api synceng.PaymentsAPI,
	monitor *connectivity.Monitor,
	guard *DuplicateGuard,
	logger *zap.Logger,
) *PaymentQueue {
	pq := &PaymentQueue{
		monitor:   monitor,
		guard:     guard,
		logger:    logger,
		listeners: make(map[int]func()),
	}
	pq.store = &notifyingStore{inner: store, notify: pq.notifyAll}
	pq.engine = synceng.NewEngine(pq.store, resolver, api, logger)
	return pq
}

// Enqueue validates a captured payment, checks it against the duplicate
// window, and persists it at the tail of the queue. The duplicate check
// and the append happen inside one store update, so two racing captures
// cannot both slip past the guard.
func (pq *PaymentQueue) Enqueue(ctx context.Context, candidate models.QueuedPayment) (models.QueuedPayment, error) {
	if candidate.Amount <= 0 {
		return models.QueuedPayment{}, ErrNonPositiveAmount
	}
	hasID, hasNumber := candidate.StudentID > 0, candidate.StudentNumber != ""
	switch {
	case !hasID && !hasNumber:
		return models.QueuedPayment{}, ErrMissingStudentRef
	case hasID && hasNumber:
		return models.QueuedPayment{}, ErrAmbiguousStudentRef
	}

	if candidate.Date.IsZero() {
		candidate.Date = time.Now()
	}
	candidate.ID = fmt.Sprintf("offline-%d-%s", candidate.Date.UnixMilli(), uuid.NewString()[:8])
	candidate.Status = models.StatusQueued
	candidate.LastError = ""

	err := pq.store.Update(ctx, func(current []models.QueuedPayment) ([]models.QueuedPayment, error) {
		if pq.guard.IsDuplicate(candidate, current) {
			ref := candidate.StudentNumber
			if ref == "" {
				ref = fmt.Sprintf("#%d", candidate.StudentID)
			}
			return nil, DuplicateError{
				StudentRef:  ref,
				FeeCategory: candidate.FeeCategory,
				Window:      pq.guard.Window,
			}
		}
		return append(current, candidate), nil
	})
	if err != nil {
		return models.QueuedPayment{}, err
	}

	pq.logger.Info("payment queued",
		zap.String("paymentId", candidate.ID),
		zap.Float64("amount", candidate.Amount))
	return candidate, nil
}

// Queue returns a snapshot of the current queue in enqueue order.
func (pq *PaymentQueue) Queue(ctx context.Context) []models.QueuedPayment {
	return pq.store.Load(ctx)
}

// Counts returns how many records are pending (queued or in flight) and
// how many are parked in error.
func (pq *PaymentQueue) Counts(ctx context.Context) (pending, errored int) {
	for _, p := range pq.store.Load(ctx) {
		switch p.Status {
		case models.StatusError:
			errored++
		case models.StatusQueued, models.StatusSyncing:
			pending++
		}
	}
	return pending, errored
}

// Clear drops every queued record. Operator action only; sync never
// clears implicitly. Records cleared while a drain holds a reference to
// them stay gone: the engine merges by id and never re-adds.
func (pq *PaymentQueue) Clear(ctx context.Context) error {
	return pq.store.Update(ctx, func(current []models.QueuedPayment) ([]models.QueuedPayment, error) {
		return nil, nil
	})
}

// Subscribe registers a zero-argument listener invoked after any durable
// mutation. Listeners run outside the store's locks, so a listener may
// call back into the queue. The returned function unsubscribes it.
func (pq *PaymentQueue) Subscribe(fn func()) func() {
	pq.listenersMu.Lock()
	id := pq.nextID
	pq.nextID++
	pq.listeners[id] = fn
	pq.listenersMu.Unlock()

	return func() {
		pq.listenersMu.Lock()
		delete(pq.listeners, id)
		pq.listenersMu.Unlock()
	}
}

// TriggerSync runs one drain pass. It is the single idempotent entry
// point shared by the manual "sync now" action, the connectivity-edge
// auto trigger, and the periodic retry ticker; the engine's single-flight
// guard makes overlapping calls no-ops (sync.ErrSyncInProgress).
func (pq *PaymentQueue) TriggerSync(ctx context.Context) (*models.SyncSummary, error) {
	if !pq.monitor.Online() {
		return nil, ErrOffline
	}
	return pq.engine.Drain(ctx)
}

// Syncing reports whether a drain pass is in progress.
func (pq *PaymentQueue) Syncing() bool { return pq.engine.Syncing() }

// LastSummary returns the most recent drain summary, if any.
func (pq *PaymentQueue) LastSummary() *models.SyncSummary { return pq.engine.LastSummary() }

// LastSyncedAt returns when the most recent drain finished, if ever.
func (pq *PaymentQueue) LastSyncedAt() *time.Time { return pq.engine.LastSyncedAt() }

// WatchConnectivity arms automatic drains: when the monitor reports an
// effective offline->online edge and queue items are waiting, one drain
// runs in the background. Returns the unsubscribe function.
func (pq *PaymentQueue) WatchConnectivity() func() {
	return pq.monitor.Subscribe(func(online bool) {
		if !online || !pq.monitor.ConsumeAutoSync() {
			return
		}
		ctx := context.Background()
		pending, errored := pq.Counts(ctx)
		if pending+errored == 0 {
			return
		}
		go pq.autoDrain(ctx, "connectivity")
	})
}

// StartPeriodicSync retries errored records on an interval while online.
// Overlap with manual or edge-triggered drains is harmless: the engine
// ignores all but the first concurrent request.
func (pq *PaymentQueue) StartPeriodicSync(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if !pq.monitor.Online() {
					continue
				}
				pending, errored := pq.Counts(ctx)
				if pending+errored == 0 {
					continue
				}
				pq.autoDrain(ctx, "periodic")
			}
		}
	}()
}

func (pq *PaymentQueue) autoDrain(ctx context.Context, trigger string) {
	summary, err := pq.TriggerSync(ctx)
	switch {
	case err == synceng.ErrSyncInProgress, err == ErrOffline:
		return
	case err != nil:
		pq.logger.Warn("automatic sync failed", zap.String("trigger", trigger), zap.Error(err))
	default:
		pq.logger.Info("automatic sync complete",
			zap.String("trigger", trigger),
			zap.Int("succeeded", summary.Succeeded),
			zap.Int("failed", summary.Failed))
	}
}

func (pq *PaymentQueue) notifyAll() {
	pq.listenersMu.RLock()
	fns := make([]func(), 0, len(pq.listeners))
	for _, fn := range pq.listeners {
		fns = append(fns, fn)
	}
	pq.listenersMu.RUnlock()

	for _, fn := range fns {
		fn()
	}
}

// notifyingStore decorates a QueueStore so subscribers hear about every
// completed durable write, including status transitions persisted by the
// engine mid-drain. Notification happens after the write completes and
// the store lock is released, never before; an aborted update does not
// notify.
type notifyingStore struct {
	inner  queuestore.QueueStore
	notify func()
}

func (s *notifyingStore) Load(ctx context.Context) []models.QueuedPayment {
	return s.inner.Load(ctx)
}

func (s *notifyingStore) Save(ctx context.Context, queue []models.QueuedPayment) error {
	if err := s.inner.Save(ctx, queue); err != nil {
		return err
	}
	s.notify()
	return nil
}

func (s *notifyingStore) Update(ctx context.Context, apply func(queue []models.QueuedPayment) ([]models.QueuedPayment, error)) error {
	if err := s.inner.Update(ctx, apply); err != nil {
		return err
	}
	s.notify()
	return nil
}
