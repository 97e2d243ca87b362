package models

import "time"

// DefaultEasiness is the SM-2 starting easiness factor for a card
// that has never been reviewed.
const DefaultEasiness = 2.5

// CardState tracks the scheduling record of a single card. A state
// exists only after the card's first review; before that the card is
// "new" and the store has no entry for it.
type CardState struct {
	Easiness     float64   `json:"easiness" db:"easiness"`         // SM-2 EF parameter, never below 1.3
	Interval     int       `json:"interval" db:"interval"`         // Current interval in days
	Repetitions  int       `json:"repetitions" db:"repetitions"`   // Consecutive successful reviews since the last failure
	Quality      int       `json:"quality" db:"quality"`           // 0-5 rating of the last recall
	Box          int       `json:"box,omitempty" db:"box"`         // Leitner box 1-5; zero under SM-2
	LastReview   time.Time `json:"last_review" db:"last_review"`
	NextReview   time.Time `json:"next_review" db:"next_review"`
	Correct      int       `json:"correct" db:"correct"`
	Incorrect    int       `json:"incorrect" db:"incorrect"`
	TotalReviews int       `json:"total_reviews" db:"total_reviews"`
}

// NewCardState returns the conceptual default state for a card with no
// review history.
func NewCardState() CardState {
	return CardState{Easiness: DefaultEasiness}
}

// Due reports whether the card should be shown at the given time. A
// zero NextReview on an existing record means the due date was never
// written and the card is treated as immediately due.
func (s CardState) Due(now time.Time) bool {
	return s.NextReview.IsZero() || !s.NextReview.After(now)
}
