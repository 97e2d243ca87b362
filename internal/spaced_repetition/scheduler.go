// Package spaced_repetition implements the scheduling strategies that
// decide when a card is next due: the SM-2 algorithm and a classic
// Leitner box system, both behind the Scheduler interface.
package spaced_repetition

import (
	"fmt"
	"time"

	"github.com/example/recall/pkg/models"
)

// Engine names accepted by ForEngine and used to tag persisted state.
const (
	EngineSM2     = "sm2"
	EngineLeitner = "leitner"
)

// Scheduler advances a card's scheduling state from one review.
type Scheduler interface {
	// Name tags the engine, e.g. "sm2". Persisted state is partitioned
	// by this tag so the engines never read each other's records.
	Name() string

	// Advance computes the state a card moves to after a review rated
	// quality at the given time. A nil prev means the card has never
	// been reviewed. The previous state is not mutated.
	Advance(prev *models.CardState, quality Quality, now time.Time) (models.CardState, error)
}

// ForEngine returns the scheduler registered under the given name.
func ForEngine(name string) (Scheduler, error) {
	switch name {
	case EngineSM2:
		return NewSM2(), nil
	case EngineLeitner:
		return NewBox(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEngine, name)
	}
}
