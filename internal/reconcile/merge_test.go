package reconcile_test

import (
	"testing"

	"liftlog/internal/domain"
	"liftlog/internal/reconcile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMerge_IncomingReplacesByID(t *testing.T) {
	existing := []domain.LogEntry{
		{ID: "a", Date: "2024-01-01", Exercise: domain.ExerciseSquat, Weight: 100, Reps: 3},
		{ID: "b", Date: "2024-01-02", Exercise: domain.ExerciseBenchPress, Weight: 80, Reps: 5},
	}
	incoming := []domain.LogEntry{
		{ID: "a", Date: "2024-01-01", Exercise: domain.ExerciseSquat, Weight: 110, Reps: 2},
		{ID: "c", Date: "2024-01-03", Exercise: domain.ExerciseDeadlift, Weight: 140, Reps: 1},
	}

	merged := reconcile.Merge(existing, incoming)
	require.Len(t, merged, 3)

	byID := make(map[string]domain.LogEntry)
	for _, e := range merged {
		byID[e.ID] = e
	}
	assert.Equal(t, 110.0, byID["a"].Weight, "incoming version wins")
	assert.Equal(t, 2, byID["a"].Reps)
	assert.Equal(t, 80.0, byID["b"].Weight)
	assert.Contains(t, byID, "c")
}

func TestMerge_SortedDateDescending(t *testing.T) {
	existing := []domain.LogEntry{
		{ID: "a", Date: "2024-01-01", Weight: 1, Reps: 1},
	}
	incoming := []domain.LogEntry{
		{ID: "b", Date: "2024-03-05", Weight: 1, Reps: 1},
		{ID: "c", Date: "2024-02-10", Weight: 1, Reps: 1},
	}

	merged := reconcile.Merge(existing, incoming)
	require.Len(t, merged, 3)
	assert.Equal(t, "2024-03-05", merged[0].Date)
	assert.Equal(t, "2024-02-10", merged[1].Date)
	assert.Equal(t, "2024-01-01", merged[2].Date)
}

func TestMerge_InvalidIncomingExcluded(t *testing.T) {
	incoming := []domain.LogEntry{
		{ID: "ok", Date: "2024-01-01", Weight: 50, Reps: 5},
		{ID: "no-date", Date: "", Weight: 50, Reps: 5},
		{ID: "zero-weight", Date: "2024-01-01", Weight: 0, Reps: 5},
		{ID: "zero-reps", Date: "2024-01-01", Weight: 50, Reps: 0},
	}

	merged := reconcile.Merge(nil, incoming)
	require.Len(t, merged, 1)
	assert.Equal(t, "ok", merged[0].ID)
}
