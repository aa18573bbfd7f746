package config

import (
	"testing"

	apperrors "fleet-scheduler-backend/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTuning() SuggestionTuning {
	return SuggestionTuning{
		MinGapMinutes:          30,
		MaxGapMinutes:          240,
		MaxDistanceKm:          50,
		DistanceWeight:         0.4,
		TimeWeight:             0.6,
		TrafficFactor:          1.2,
		EfficiencyThreshold:    0.7,
		MaxSuggestionsPerRoute: 5,
	}
}

func TestSuggestionTuningValidate(t *testing.T) {
	require.NoError(t, validTuning().Validate())

	cases := []struct {
		name   string
		mutate func(*SuggestionTuning)
		want   error
	}{
		{
			name:   "min gap above max gap",
			mutate: func(s *SuggestionTuning) { s.MinGapMinutes = 300 },
			want:   apperrors.ErrInvalidGapConfig,
		},
		{
			name:   "negative min gap",
			mutate: func(s *SuggestionTuning) { s.MinGapMinutes = -1 },
			want:   apperrors.ErrInvalidGapConfig,
		},
		{
			name:   "weights not summing to one",
			mutate: func(s *SuggestionTuning) { s.TimeWeight = 0.7 },
			want:   apperrors.ErrInvalidWeightConfig,
		},
		{
			name: "negative weight",
			mutate: func(s *SuggestionTuning) {
				s.DistanceWeight = -0.2
				s.TimeWeight = 1.2
			},
			want: apperrors.ErrInvalidWeightConfig,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tuning := validTuning()
			tc.mutate(&tuning)
			assert.ErrorIs(t, tuning.Validate(), tc.want)
		})
	}

	t.Run("zero max distance", func(t *testing.T) {
		tuning := validTuning()
		tuning.MaxDistanceKm = 0
		assert.Error(t, tuning.Validate())
	})

	t.Run("threshold out of range", func(t *testing.T) {
		tuning := validTuning()
		tuning.EfficiencyThreshold = 1.5
		assert.Error(t, tuning.Validate())
	})

	t.Run("traffic factor below one", func(t *testing.T) {
		tuning := validTuning()
		tuning.TrafficFactor = 0.5
		assert.Error(t, tuning.Validate())
	})

	t.Run("zero cap", func(t *testing.T) {
		tuning := validTuning()
		tuning.MaxSuggestionsPerRoute = 0
		assert.Error(t, tuning.Validate())
	})
}

func TestTuningStoreRejectsInvalidSwap(t *testing.T) {
	store := NewTuningStore(validTuning())

	bad := validTuning()
	bad.TimeWeight = 0.9
	require.Error(t, store.Set(bad))

	// The previous snapshot stays live
	assert.Equal(t, 0.6, store.Get().TimeWeight)

	good := validTuning()
	good.EfficiencyThreshold = 0.8
	require.NoError(t, store.Set(good))
	assert.Equal(t, 0.8, store.Get().EfficiencyThreshold)
}
