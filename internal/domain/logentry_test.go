package domain_test

import (
	"math"
	"testing"
	"time"

	"liftlog/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCandidate_Accepts(t *testing.T) {
	entry, err := domain.ValidateCandidate(domain.Candidate{
		ID:       "abc",
		Date:     "2024-01-15",
		Exercise: "ベンチプレス",
		Weight:   80.5,
		Reps:     5,
		Note:     " felt strong ",
	})
	require.NoError(t, err)
	assert.Equal(t, "abc", entry.ID)
	assert.Equal(t, "2024-01-15", entry.Date)
	assert.Equal(t, domain.ExerciseBenchPress, entry.Exercise)
	assert.Equal(t, 80.5, entry.Weight)
	assert.Equal(t, 5, entry.Reps)
	assert.Equal(t, "felt strong", entry.Note)
}

func TestValidateCandidate_CoercesStringsAndUnknownExercise(t *testing.T) {
	entry, err := domain.ValidateCandidate(domain.Candidate{
		ID:       "abc",
		Date:     "2024-01-15",
		Exercise: "not a real lift",
		Weight:   "100",
		Reps:     "3",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.ExerciseOther, entry.Exercise)
	assert.Equal(t, 100.0, entry.Weight)
	assert.Equal(t, 3, entry.Reps)
}

func TestValidateCandidate_TruncatesDateToCalendarDay(t *testing.T) {
	entry, err := domain.ValidateCandidate(domain.Candidate{
		ID:       "abc",
		Date:     "2024-01-15T09:30:00Z",
		Exercise: "スクワット",
		Weight:   60,
		Reps:     8,
	})
	require.NoError(t, err)
	assert.Equal(t, "2024-01-15", entry.Date)
}

func TestValidateCandidate_Rejects(t *testing.T) {
	tests := []struct {
		name      string
		candidate domain.Candidate
		field     string
	}{
		{"missing id", domain.Candidate{Date: "2024-01-01", Exercise: "スクワット", Weight: 60.0, Reps: 8}, "id"},
		{"empty date", domain.Candidate{ID: "x", Exercise: "スクワット", Weight: 60.0, Reps: 8}, "date"},
		{"zero weight", domain.Candidate{ID: "x", Date: "2024-01-01", Weight: 0.0, Reps: 8}, "weight"},
		{"negative weight", domain.Candidate{ID: "x", Date: "2024-01-01", Weight: -5.0, Reps: 8}, "weight"},
		{"non-numeric weight", domain.Candidate{ID: "x", Date: "2024-01-01", Weight: "heavy", Reps: 8}, "weight"},
		{"nil weight", domain.Candidate{ID: "x", Date: "2024-01-01", Reps: 8}, "weight"},
		{"NaN weight string", domain.Candidate{ID: "x", Date: "2024-01-01", Weight: "NaN", Reps: 8}, "weight"},
		{"infinite weight string", domain.Candidate{ID: "x", Date: "2024-01-01", Weight: "+Inf", Reps: 8}, "weight"},
		{"negative infinite weight string", domain.Candidate{ID: "x", Date: "2024-01-01", Weight: "-Inf", Reps: 8}, "weight"},
		{"infinite weight number", domain.Candidate{ID: "x", Date: "2024-01-01", Weight: math.Inf(1), Reps: 8}, "weight"},
		{"NaN weight number", domain.Candidate{ID: "x", Date: "2024-01-01", Weight: math.NaN(), Reps: 8}, "weight"},
		{"zero reps", domain.Candidate{ID: "x", Date: "2024-01-01", Weight: 60.0, Reps: 0}, "reps"},
		{"non-numeric reps", domain.Candidate{ID: "x", Date: "2024-01-01", Weight: 60.0, Reps: "many"}, "reps"},
		{"fractional reps", domain.Candidate{ID: "x", Date: "2024-01-01", Weight: 60.0, Reps: 2.5}, "reps"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := domain.ValidateCandidate(tc.candidate)
			require.Error(t, err)
			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tc.field)
		})
	}
}

func TestFormatDate_ZeroPadded(t *testing.T) {
	d := time.Date(2024, 3, 7, 23, 59, 0, 0, time.Local)
	assert.Equal(t, "2024-03-07", domain.FormatDate(d))
}

func TestSequenceGenerator(t *testing.T) {
	gen := &domain.SequenceGenerator{Prefix: "test"}
	assert.Equal(t, "test-1", gen.NewID())
	assert.Equal(t, "test-2", gen.NewID())
}
