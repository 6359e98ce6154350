package queuestore

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"campuspay/models"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "queue.db"))
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	db := openTestDB(t)
	store, err := NewSQLiteQueueStore(db, zap.NewNop())
	require.NoError(t, err)

	ctx := context.Background()
	require.Empty(t, store.Load(ctx), "fresh store should read as empty")

	queue := []models.QueuedPayment{
		{ID: "offline-1", StudentNumber: "F-6522", Amount: 50, FeeCategory: models.FeeTuition, Date: time.Now().UTC(), Status: models.StatusQueued},
		{ID: "offline-2", StudentID: 7, Amount: 120, FeeCategory: models.FeeTransport, Date: time.Now().UTC(), Status: models.StatusError, LastError: "boom"},
	}
	require.NoError(t, store.Save(ctx, queue))

	got := store.Load(ctx)
	require.Len(t, got, 2)
	require.Equal(t, "offline-1", got[0].ID, "enqueue order must survive persistence")
	require.Equal(t, models.StatusError, got[1].Status)
	require.Equal(t, "boom", got[1].LastError)
}

func TestSQLiteStoreAtomicReplace(t *testing.T) {
	db := openTestDB(t)
	store, err := NewSQLiteQueueStore(db, zap.NewNop())
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, store.Save(ctx, []models.QueuedPayment{{ID: "a", Amount: 1, Status: models.StatusQueued}}))
	require.NoError(t, store.Save(ctx, []models.QueuedPayment{{ID: "b", Amount: 2, Status: models.StatusQueued}}))

	got := store.Load(ctx)
	require.Len(t, got, 1, "save replaces the whole collection")
	require.Equal(t, "b", got[0].ID)
}

func TestSQLiteStoreCorruptPayloadFailsOpen(t *testing.T) {
	db := openTestDB(t)
	store, err := NewSQLiteQueueStore(db, zap.NewNop())
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO kv (key, value) VALUES (?, ?)`, "offlinePayments", []byte("{not json"))
	require.NoError(t, err)

	require.Empty(t, store.Load(context.Background()), "corruption degrades to an empty queue, never an error")
}

func TestMemoryStoreCopies(t *testing.T) {
	store := NewMemoryQueueStore()
	ctx := context.Background()

	queue := []models.QueuedPayment{{ID: "a", Amount: 5, Status: models.StatusQueued}}
	require.NoError(t, store.Save(ctx, queue))

	queue[0].Status = models.StatusSynced
	got := store.Load(ctx)
	require.Equal(t, models.StatusQueued, got[0].Status, "store must not alias caller slices")
}

func TestSQLiteStoreUpdate(t *testing.T) {
	db := openTestDB(t)
	store, err := NewSQLiteQueueStore(db, zap.NewNop())
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, store.Save(ctx, []models.QueuedPayment{{ID: "a", Amount: 1, Status: models.StatusQueued}}))

	err = store.Update(ctx, func(q []models.QueuedPayment) ([]models.QueuedPayment, error) {
		return append(q, models.QueuedPayment{ID: "b", Amount: 2, Status: models.StatusQueued}), nil
	})
	require.NoError(t, err)

	got := store.Load(ctx)
	require.Len(t, got, 2)
	require.Equal(t, "a", got[0].ID)
	require.Equal(t, "b", got[1].ID)
}

func TestStoreUpdateAbortWritesNothing(t *testing.T) {
	db := openTestDB(t)
	store, err := NewSQLiteQueueStore(db, zap.NewNop())
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, store.Save(ctx, []models.QueuedPayment{{ID: "a", Amount: 1, Status: models.StatusQueued}}))

	sentinel := errors.New("rejected")
	err = store.Update(ctx, func(q []models.QueuedPayment) ([]models.QueuedPayment, error) {
		return nil, sentinel
	})
	require.ErrorIs(t, err, sentinel)

	got := store.Load(ctx)
	require.Len(t, got, 1, "an aborted update must leave the store untouched")
	require.Equal(t, "a", got[0].ID)
}

func TestMemoryStoreUpdate(t *testing.T) {
	store := NewMemoryQueueStore()
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, []models.QueuedPayment{{ID: "a", Amount: 1, Status: models.StatusQueued}}))

	err := store.Update(ctx, func(q []models.QueuedPayment) ([]models.QueuedPayment, error) {
		q[0].Status = models.StatusError
		return q, nil
	})
	require.NoError(t, err)
	require.Equal(t, models.StatusError, store.Load(ctx)[0].Status)

	sentinel := errors.New("rejected")
	err = store.Update(ctx, func(q []models.QueuedPayment) ([]models.QueuedPayment, error) {
		return nil, sentinel
	})
	require.ErrorIs(t, err, sentinel)
	require.Len(t, store.Load(ctx), 1)
}
