// Package sync drains the offline payment queue against the remote
// payments API.
package sync

import (
	"context"
	"sync/atomic"
	"time"

	"campuspay/database/queuestore"
	"campuspay/models"

	"go.uber.org/zap"
)

// IdentityResolver converts a record's student reference into the
// canonical id the payments API requires.
type IdentityResolver interface {
	Resolve(ctx context.Context, rec models.QueuedPayment) (int, error)
}

// Engine runs drain passes over the queue store. It is the sole mutator
// of record status. A single-flight guard makes concurrent drain
// requests no-ops: running two drains against the same store risks
// double-submitting a record.
type Engine struct {
	store    queuestore.QueueStore
	resolver IdentityResolver
	api      PaymentsAPI
	logger   *zap.Logger

	draining    atomic.Bool
	lastSummary atomic.Pointer[models.SyncSummary]
	lastSync    atomic.Pointer[time.Time]
}

// NewEngine wires a sync engine over its collaborators.
func NewEngine(store queuestore.QueueStore, resolver IdentityResolver, api PaymentsAPI, logger *zap.Logger) *Engine {
	return &Engine{store: store, resolver: resolver, api: api, logger: logger}
}

// Syncing reports whether a drain pass is currently running.
func (e *Engine) Syncing() bool {
	return e.draining.Load()
}

// LastSummary returns the summary of the most recent completed pass.
func (e *Engine) LastSummary() *models.SyncSummary {
	return e.lastSummary.Load()
}

// LastSyncedAt returns when the most recent pass finished.
func (e *Engine) LastSyncedAt() *time.Time {
	return e.lastSync.Load()
}

// Drain runs one full pass over the then-current snapshot of the queue,
// in enqueue order. Records enqueued during the pass are left in place
// for the next one: every write merges into the live queue by record id
// rather than replacing it, so a payment captured while a submission is
// in flight is never clobbered, and records cleared by the operator
// mid-pass are not resurrected. Per-record failures never abort the
// pass; only the record in question is marked error with its cause
// retained.
//
// Returns ErrSyncInProgress if another drain holds the guard.
func (e *Engine) Drain(ctx context.Context) (*models.SyncSummary, error) {
	if !e.draining.CompareAndSwap(false, true) {
		return nil, ErrSyncInProgress
	}
	defer e.draining.Store(false)

	queue := e.store.Load(ctx)
	summary := &models.SyncSummary{
		StartedAt: time.Now(),
		Items:     []models.SyncItemResult{},
	}

	// Single-flight means a syncing record at pass start can only be
	// the residue of a crashed process; reclaim it so it is retried
	// instead of sticking forever.
	for i := range queue {
		if queue[i].Status == models.StatusSyncing {
			queue[i].Status = models.StatusError
			queue[i].LastError = "sync interrupted before completion"
		}
	}

	syncedIDs := make(map[string]bool)
	for i := range queue {
		rec := &queue[i]
		if !rec.Status.Eligible() {
			continue
		}

		// Persist the in-flight transition first so a crash mid-drain
		// leaves the record visibly syncing rather than silently lost.
		rec.Status = models.StatusSyncing
		e.persistRecord(ctx, *rec)

		studentID, err := e.resolver.Resolve(ctx, *rec)
		if err != nil {
			e.recordFailure(ctx, rec, summary, err)
			continue
		}

		normalized := Normalize(*rec)
		receipt, err := e.api.SubmitPayment(ctx, BuildSubmission(normalized, studentID, time.Now()))
		if err != nil {
			e.recordFailure(ctx, rec, summary, err)
			continue
		}

		rec.Status = models.StatusSynced
		rec.LastError = ""
		syncedIDs[rec.ID] = true
		summary.Succeeded++
		summary.Items = append(summary.Items, models.SyncItemResult{
			PaymentID:     rec.ID,
			Synced:        true,
			ReceiptNumber: receipt,
		})
		e.persistRecord(ctx, *rec)
		e.logger.Info("payment synced",
			zap.String("paymentId", rec.ID),
			zap.Int("studentId", studentID),
			zap.String("receipt", receipt))
	}

	// A record leaves the store if and only if this pass marked it
	// synced. Filtering the live queue, not the pass snapshot, keeps
	// mid-pass enqueues intact.
	var remaining int
	err := e.store.Update(ctx, func(current []models.QueuedPayment) ([]models.QueuedPayment, error) {
		kept := make([]models.QueuedPayment, 0, len(current))
		for _, rec := range current {
			if !syncedIDs[rec.ID] {
				kept = append(kept, rec)
			}
		}
		remaining = len(kept)
		return kept, nil
	})
	if err != nil {
		e.logger.Error("failed to remove synced records", zap.Error(err))
	}

	summary.FinishedAt = time.Now()
	e.lastSummary.Store(summary)
	finished := summary.FinishedAt
	e.lastSync.Store(&finished)

	e.logger.Info("drain pass complete",
		zap.Int("succeeded", summary.Succeeded),
		zap.Int("failed", summary.Failed),
		zap.Int("remaining", remaining))
	return summary, nil
}

func (e *Engine) recordFailure(ctx context.Context, rec *models.QueuedPayment, summary *models.SyncSummary, cause error) {
	rec.Status = models.StatusError
	rec.LastError = cause.Error()
	summary.Failed++
	summary.Items = append(summary.Items, models.SyncItemResult{
		PaymentID: rec.ID,
		Error:     cause.Error(),
	})
	e.persistRecord(ctx, *rec)
	e.logger.Warn("payment sync failed",
		zap.String("paymentId", rec.ID),
		zap.Error(cause))
}

// persistRecord merges one record's state into the live queue by id. A
// record the operator cleared mid-pass is simply gone and stays gone.
// A storage failure degrades to a log line; the in-memory pass
// continues and the next successful write repairs the durable state.
func (e *Engine) persistRecord(ctx context.Context, rec models.QueuedPayment) {
	err := e.store.Update(ctx, func(current []models.QueuedPayment) ([]models.QueuedPayment, error) {
		for i := range current {
			if current[i].ID == rec.ID {
				current[i] = rec
				break
			}
		}
		return current, nil
	})
	if err != nil {
		e.logger.Error("failed to persist queue state", zap.Error(err))
	}
}
