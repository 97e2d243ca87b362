// Package selector builds bounded, shuffled review queues from a card
// catalog and a snapshot of per-card scheduling state.
package selector

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/example/recall/pkg/models"
)

// Caps bounds the size of a single review session
type Caps struct {
	// MaxReview is the total queue size limit
	MaxReview int
	// MaxNew limits how many never-reviewed cards join the queue
	MaxNew int
}

// DefaultCaps returns the standard session limits
func DefaultCaps() Caps {
	return Caps{MaxReview: 30, MaxNew: 10}
}

// Validate rejects caps that cannot bound a session
func (c Caps) Validate() error {
	if c.MaxReview <= 0 {
		return fmt.Errorf("%w: max review %d", ErrInvalidCaps, c.MaxReview)
	}
	if c.MaxNew < 0 {
		return fmt.Errorf("%w: max new %d", ErrInvalidCaps, c.MaxNew)
	}
	return nil
}

// Queue is the outcome of a selection pass. When Cards is empty and
// NextDue is set, nothing is due yet and NextDue is the earliest
// upcoming review across all stored states.
type Queue struct {
	Cards   []models.Card
	NextDue time.Time
}

// Partition splits the catalog into due cards (have state and their
// next review has passed, or was never recorded) and new cards (no
// state at all). Neither the catalog nor the snapshot is modified.
func Partition(catalog []models.Card, snapshot map[string]models.CardState, now time.Time) (due, fresh []models.Card) {
	for _, card := range catalog {
		state, ok := snapshot[card.ID]
		switch {
		case !ok:
			fresh = append(fresh, card)
		case state.Due(now):
			due = append(due, card)
		}
	}
	return due, fresh
}

// BuildQueue assembles the cards for one session.
//
// In spaced mode, due cards are taken first, most overdue first, up to
// caps.MaxReview; remaining capacity is filled with new cards up to
// caps.MaxNew; the combined queue is shuffled. In random mode the queue
// is a uniform sample of the whole catalog, up to caps.MaxReview.
//
// An empty catalog yields an empty queue, not an error.
func BuildQueue(catalog []models.Card, snapshot map[string]models.CardState, now time.Time, mode Mode, caps Caps) (Queue, error) {
	if err := caps.Validate(); err != nil {
		return Queue{}, err
	}

	switch mode {
	case ModeSpaced:
		return buildSpaced(catalog, snapshot, now, caps), nil
	case ModeRandom:
		return Queue{Cards: sample(catalog, caps.MaxReview)}, nil
	default:
		return Queue{}, fmt.Errorf("%w: %d", ErrInvalidMode, int(mode))
	}
}

func buildSpaced(catalog []models.Card, snapshot map[string]models.CardState, now time.Time, caps Caps) Queue {
	due, fresh := Partition(catalog, snapshot, now)

	// Most overdue first, so a cap cuts the least urgent cards. A zero
	// next_review sorts to the front.
	sort.SliceStable(due, func(i, j int) bool {
		return snapshot[due[i].ID].NextReview.Before(snapshot[due[j].ID].NextReview)
	})
	if len(due) > caps.MaxReview {
		due = due[:caps.MaxReview]
	}

	newCount := caps.MaxReview - len(due)
	if newCount > caps.MaxNew {
		newCount = caps.MaxNew
	}
	if newCount > len(fresh) {
		newCount = len(fresh)
	}

	queue := make([]models.Card, 0, len(due)+newCount)
	queue = append(queue, due...)
	queue = append(queue, fresh[:newCount]...)

	if len(queue) == 0 {
		return Queue{NextDue: earliestNextReview(snapshot)}
	}

	shuffle(queue)
	return Queue{Cards: queue}
}

// sample returns up to limit cards drawn uniformly from the catalog
func sample(catalog []models.Card, limit int) []models.Card {
	if len(catalog) == 0 {
		return nil
	}
	picked := make([]models.Card, len(catalog))
	copy(picked, catalog)
	shuffle(picked)
	if len(picked) > limit {
		picked = picked[:limit]
	}
	return picked
}

func shuffle(cards []models.Card) {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	rng.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
}

// earliestNextReview scans all stored states for the soonest upcoming
// review. Zero timestamps are skipped; the zero time is returned when
// nothing is scheduled.
func earliestNextReview(snapshot map[string]models.CardState) time.Time {
	var earliest time.Time
	for _, state := range snapshot {
		if state.NextReview.IsZero() {
			continue
		}
		if earliest.IsZero() || state.NextReview.Before(earliest) {
			earliest = state.NextReview
		}
	}
	return earliest
}
