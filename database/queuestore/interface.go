package queuestore

import (
	"context"

	"campuspay/models"
)

// QueueStore is durable, local, synchronous storage for the ordered
// offline payment queue. Save atomically replaces the whole collection;
// a reader never observes a torn list.
//
// Update is the read-modify-write primitive: apply receives the current
// queue and returns the next one, all under the store's write lock, so
// concurrent mutators (the capture path appending, the sync engine
// updating statuses) cannot clobber each other's writes. Returning an
// error from apply aborts the update without writing.
//
// Load fails open: storage errors and corrupt payloads are logged and
// surfaced as an empty queue, never as an error, so a broken queue file
// can't stop the cashier from capturing payments.
type QueueStore interface {
	Load(ctx context.Context) []models.QueuedPayment
	Save(ctx context.Context, queue []models.QueuedPayment) error
	Update(ctx context.Context, apply func(queue []models.QueuedPayment) ([]models.QueuedPayment, error)) error
}
