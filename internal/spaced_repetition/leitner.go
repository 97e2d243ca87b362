package spaced_repetition

import (
	"time"

	"github.com/example/recall/pkg/models"
)

// Box implements a classic Leitner box system: cards climb a fixed
// ladder of boxes on success and drop back to the first box on failure.
type Box struct {
	// Ratings at or above this value count as a successful recall
	PassThreshold Quality
	// Interval in days per box; box N waits Intervals[N-1] days
	Intervals []int
}

// NewBox returns a Leitner scheduler with the standard five boxes
func NewBox() *Box {
	return &Box{
		PassThreshold: QualityCorrectDifficult,
		Intervals:     []int{1, 2, 7, 14, 30},
	}
}

var _ Scheduler = (*Box)(nil)

// Name implements Scheduler
func (b *Box) Name() string { return EngineLeitner }

// Advance applies one review to the card's state. The easiness factor
// is carried through untouched; only the box drives the interval here.
func (b *Box) Advance(prev *models.CardState, quality Quality, now time.Time) (models.CardState, error) {
	if err := quality.Validate(); err != nil {
		return models.CardState{}, err
	}

	state := models.NewCardState()
	if prev != nil {
		state = *prev
	}

	if quality >= b.PassThreshold {
		state.Box++
		state.Repetitions++
		state.Correct++
	} else {
		state.Box = 1
		state.Repetitions = 0
		state.Incorrect++
	}
	if state.Box > len(b.Intervals) {
		state.Box = len(b.Intervals)
	}
	state.Interval = b.Intervals[state.Box-1]

	state.Quality = int(quality)
	state.TotalReviews++
	state.LastReview = now
	state.NextReview = now.AddDate(0, 0, state.Interval)

	return state, nil
}
