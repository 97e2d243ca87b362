package spaced_repetition

import (
	"math"
	"time"

	"github.com/example/recall/pkg/models"
)

// MinEasiness is the floor of the SM-2 easiness factor
const MinEasiness = 1.3

// SM2 implements the SuperMemo-2 algorithm for spaced repetition
type SM2 struct {
	// Ratings at or above this value count as a successful recall
	PassThreshold Quality
	// Interval in days after the first successful repetition
	FirstInterval int
	// Interval in days after the second successful repetition
	SecondInterval int
}

// NewSM2 returns an SM2 scheduler with the standard parameters
func NewSM2() *SM2 {
	return &SM2{
		PassThreshold:  QualityCorrectDifficult,
		FirstInterval:  1,
		SecondInterval: 6,
	}
}

var _ Scheduler = (*SM2)(nil)

// Name implements Scheduler
func (sm *SM2) Name() string { return EngineSM2 }

// Advance applies one review to the card's state
func (sm *SM2) Advance(prev *models.CardState, quality Quality, now time.Time) (models.CardState, error) {
	if err := quality.Validate(); err != nil {
		return models.CardState{}, err
	}

	state := models.NewCardState()
	if prev != nil {
		state = *prev
	}

	// The easiness factor moves on every review, pass or fail
	newEF := state.Easiness + (0.1 - (5.0-float64(quality))*(0.08+(5.0-float64(quality))*0.02))
	if newEF < MinEasiness {
		newEF = MinEasiness
	}
	state.Easiness = newEF

	if quality >= sm.PassThreshold {
		state.Repetitions++
		switch state.Repetitions {
		case 1:
			state.Interval = sm.FirstInterval
		case 2:
			state.Interval = sm.SecondInterval
		default:
			state.Interval = roundInterval(float64(state.Interval) * newEF)
		}
		state.Correct++
	} else {
		// Failure sends the card back to the start of the ladder no
		// matter how large the prior interval was
		state.Repetitions = 0
		state.Interval = 1
		state.Incorrect++
	}

	state.Quality = int(quality)
	state.TotalReviews++
	state.LastReview = now
	state.NextReview = now.AddDate(0, 0, state.Interval)

	return state, nil
}

// roundInterval rounds a fractional interval to whole days, never below one
func roundInterval(days float64) int {
	interval := int(math.Round(days))
	if interval < 1 {
		interval = 1
	}
	return interval
}
