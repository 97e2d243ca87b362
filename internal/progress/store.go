// Package progress defines the persistence boundary for per-card
// scheduling state and provides the JSON file implementation.
package progress

import (
	"time"

	"github.com/example/recall/pkg/models"
)

// Store persists per-card scheduling state and session metadata. The
// scheduling engines and the selector only ever see plain CardState
// values; the storage format is entirely the implementation's concern.
type Store interface {
	// Get returns the state for a card, or nil if it was never reviewed.
	Get(cardID string) (*models.CardState, error)

	// Put writes the state for a card. It is called once per completed
	// review, before the next card is shown, so an abrupt quit never
	// loses a finished review.
	Put(cardID string, state models.CardState) error

	// Snapshot returns a copy of all stored states keyed by card id.
	Snapshot() (map[string]models.CardState, error)

	// SessionMeta returns the stored session counters.
	SessionMeta() (models.SessionMeta, error)

	// RecordSession registers a finished review session.
	RecordSession(rec models.SessionRecord) error

	// Reset wipes all stored progress.
	Reset() error

	Close() error
}

// ReviewRecorder is implemented by stores that keep a per-review
// history log in addition to the current state.
type ReviewRecorder interface {
	RecordReview(rec models.ReviewRecord) error
}

// StreakReporter is implemented by stores that can derive the number of
// consecutive days, ending today, with at least one review.
type StreakReporter interface {
	StreakDays(now time.Time) (int, error)
}
