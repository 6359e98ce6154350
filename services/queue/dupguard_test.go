package queue

import (
	"testing"
	"time"

	"campuspay/models"

	"github.com/stretchr/testify/require"
)

func TestDuplicateWithinWindow(t *testing.T) {
	g := NewDuplicateGuard(24 * time.Hour)
	now := time.Now()

	history := []models.QueuedPayment{
		{StudentNumber: "F-6522", FeeCategory: models.FeeTuition, Amount: 50, Date: now.Add(-time.Minute)},
	}
	candidate := models.QueuedPayment{StudentNumber: "F-6522", FeeCategory: models.FeeTuition, Amount: 50, Date: now}

	require.True(t, g.IsDuplicate(candidate, history), "same student, same category, one minute apart")
}

func TestNotDuplicateOutsideWindow(t *testing.T) {
	g := NewDuplicateGuard(24 * time.Hour)
	now := time.Now()

	history := []models.QueuedPayment{
		{StudentNumber: "F-6522", FeeCategory: models.FeeTuition, Date: now.Add(-25 * time.Hour)},
	}
	candidate := models.QueuedPayment{StudentNumber: "F-6522", FeeCategory: models.FeeTuition, Date: now}

	require.False(t, g.IsDuplicate(candidate, history))
}

func TestNotDuplicateDifferentFeeCategory(t *testing.T) {
	g := NewDuplicateGuard(24 * time.Hour)
	now := time.Now()

	history := []models.QueuedPayment{
		{StudentNumber: "F-6522", FeeCategory: models.FeeTransport, Date: now.Add(-time.Hour)},
	}
	candidate := models.QueuedPayment{StudentNumber: "F-6522", FeeCategory: models.FeeTuition, Date: now}

	require.False(t, g.IsDuplicate(candidate, history), "paying a different fee the same day is legitimate")
}

func TestDuplicateMatchesByStudentID(t *testing.T) {
	g := NewDuplicateGuard(24 * time.Hour)
	now := time.Now()

	history := []models.QueuedPayment{
		{StudentID: 42, FeeCategory: models.FeeBoarding, Date: now.Add(-2 * time.Hour)},
	}
	candidate := models.QueuedPayment{StudentID: 42, FeeCategory: models.FeeBoarding, Date: now}

	require.True(t, g.IsDuplicate(candidate, history))
}

func TestDuplicateAgainstLegacyRecord(t *testing.T) {
	g := NewDuplicateGuard(24 * time.Hour)
	now := time.Now()

	// Legacy items carried no fee category; they default to Tuition at
	// sync time, so the guard treats them the same way.
	history := []models.QueuedPayment{
		{StudentNumber: "F-6522", LegacyFeeType: models.MethodCash, Date: now.Add(-time.Hour)},
	}
	candidate := models.QueuedPayment{StudentNumber: "F-6522", FeeCategory: models.FeeTuition, Date: now}

	require.True(t, g.IsDuplicate(candidate, history))
}

func TestWindowIsConfigurable(t *testing.T) {
	g := NewDuplicateGuard(time.Hour)
	now := time.Now()

	history := []models.QueuedPayment{
		{StudentNumber: "F-6522", FeeCategory: models.FeeTuition, Date: now.Add(-2 * time.Hour)},
	}
	candidate := models.QueuedPayment{StudentNumber: "F-6522", FeeCategory: models.FeeTuition, Date: now}

	require.False(t, g.IsDuplicate(candidate, history), "a shorter window admits the repeat")
}
