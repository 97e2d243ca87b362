package spaced_repetition

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/recall/pkg/models"
)

var t0 = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

// --- Advance: first reviews of a fresh card ---

func TestSM2_AdvanceFreshCard(t *testing.T) {
	sm := NewSM2()

	// First review, perfect recall.
	st, err := sm.Advance(nil, QualityPerfect, t0)
	require.NoError(t, err)
	assert.Equal(t, 1, st.Repetitions)
	assert.Equal(t, 1, st.Interval)
	assert.InDelta(t, 2.6, st.Easiness, 1e-9)
	assert.Equal(t, t0, st.LastReview)
	assert.Equal(t, t0.AddDate(0, 0, 1), st.NextReview)

	// Second review a day later, some hesitation. The EF delta for
	// quality 4 is exactly zero.
	now := t0.AddDate(0, 0, 1)
	st, err = sm.Advance(&st, QualityCorrectHesitation, now)
	require.NoError(t, err)
	assert.Equal(t, 2, st.Repetitions)
	assert.Equal(t, 6, st.Interval)
	assert.InDelta(t, 2.6, st.Easiness, 1e-9)
	assert.Equal(t, now.AddDate(0, 0, 6), st.NextReview)

	// Third review: the multiplicative ladder takes over.
	now = now.AddDate(0, 0, 6)
	st, err = sm.Advance(&st, QualityPerfect, now)
	require.NoError(t, err)
	assert.Equal(t, 3, st.Repetitions)
	assert.Equal(t, 16, st.Interval) // round(6 * 2.7)
	assert.InDelta(t, 2.7, st.Easiness, 1e-9)
	assert.Equal(t, 3, st.Correct)
	assert.Equal(t, 0, st.Incorrect)
	assert.Equal(t, 3, st.TotalReviews)
}

// --- Advance: failure demotion ---

func TestSM2_AdvanceFailureResets(t *testing.T) {
	sm := NewSM2()
	prev := models.CardState{
		Easiness:     2.0,
		Interval:     40,
		Repetitions:  5,
		Correct:      5,
		TotalReviews: 5,
	}

	st, err := sm.Advance(&prev, QualityIncorrect, t0)
	require.NoError(t, err)
	assert.Equal(t, 0, st.Repetitions)
	assert.Equal(t, 1, st.Interval)
	assert.InDelta(t, 1.46, st.Easiness, 1e-9)
	assert.Equal(t, 5, st.Correct)
	assert.Equal(t, 1, st.Incorrect)
	assert.Equal(t, 6, st.TotalReviews)
	assert.Equal(t, t0.AddDate(0, 0, 1), st.NextReview)
}

func TestSM2_DemotionIgnoresPriorProgress(t *testing.T) {
	sm := NewSM2()
	for _, prior := range []models.CardState{
		{Easiness: 2.5, Interval: 1, Repetitions: 1},
		{Easiness: 2.8, Interval: 180, Repetitions: 9},
		{Easiness: 1.3, Interval: 6, Repetitions: 2},
	} {
		for q := QualityBlackout; q < QualityCorrectDifficult; q++ {
			st, err := sm.Advance(&prior, q, t0)
			require.NoError(t, err)
			assert.Equal(t, 0, st.Repetitions, "quality %d", q)
			assert.Equal(t, 1, st.Interval, "quality %d", q)
		}
	}
}

// --- Advance: easiness floor ---

func TestSM2_EasinessNeverBelowFloor(t *testing.T) {
	sm := NewSM2()
	for _, ef := range []float64{1.3, 1.35, 1.8, 2.5, 3.2} {
		for q := QualityBlackout; q <= QualityPerfect; q++ {
			prev := models.CardState{Easiness: ef, Interval: 3, Repetitions: 2}
			st, err := sm.Advance(&prev, q, t0)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, st.Easiness, MinEasiness,
				"ef=%v quality=%d", ef, q)
		}
	}
}

// --- Advance: validation and purity ---

func TestSM2_AdvanceRejectsOutOfRangeQuality(t *testing.T) {
	sm := NewSM2()
	for _, q := range []Quality{-1, 6, 42} {
		_, err := sm.Advance(nil, q, t0)
		require.ErrorIs(t, err, ErrInvalidQuality, "quality %d", q)
	}
}

func TestSM2_AdvanceDoesNotMutatePrev(t *testing.T) {
	sm := NewSM2()
	prev := models.CardState{Easiness: 2.5, Interval: 6, Repetitions: 2}
	snapshot := prev

	_, err := sm.Advance(&prev, QualityBlackout, t0)
	require.NoError(t, err)
	assert.Equal(t, snapshot, prev)
}

// --- Advance: long-run growth ---

func TestSM2_IntervalGrowsMultiplicatively(t *testing.T) {
	sm := NewSM2()
	now := t0

	st, err := sm.Advance(nil, QualityPerfect, now)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		now = st.NextReview
		prevInterval := st.Interval
		st, err = sm.Advance(&st, QualityPerfect, now)
		require.NoError(t, err)
		if st.Repetitions > 2 {
			assert.Greater(t, st.Interval, prevInterval)
		}
		assert.Equal(t, now.AddDate(0, 0, st.Interval), st.NextReview)
	}
	assert.Equal(t, 11, st.Repetitions)
	assert.Equal(t, 11, st.TotalReviews)
}

func TestQuality_Passing(t *testing.T) {
	assert.False(t, QualityBlackout.Passing())
	assert.False(t, QualityIncorrectFamiliar.Passing())
	assert.True(t, QualityCorrectDifficult.Passing())
	assert.True(t, QualityPerfect.Passing())
}
