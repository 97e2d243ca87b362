// Package stats derives the progress report from a catalog and a store
// snapshot. Everything is computed on demand; no metric is persisted.
package stats

import (
	"sort"
	"time"

	"github.com/example/recall/internal/selector"
	"github.com/example/recall/pkg/models"
)

// Interval histogram buckets, in days. Cards that were never reviewed
// are not bucketed; they show up as Unreviewed.
var intervalBuckets = []struct {
	label string
	max   int // inclusive upper bound; 0 means unbounded
}{
	{"0-1d", 1},
	{"2-6d", 6},
	{"7-14d", 14},
	{"15-30d", 30},
	{">30d", 0},
}

// Summarize builds the aggregate report for the given catalog and
// snapshot. Cards whose state is no longer in the catalog are ignored,
// so a trimmed deck does not leave phantom counts behind.
func Summarize(catalog []models.Card, snapshot map[string]models.CardState, meta models.SessionMeta, now time.Time) models.Stats {
	stats := models.Stats{
		TotalCards:  len(catalog),
		Sessions:    meta.Sessions,
		LastSession: meta.LastSession,
		Intervals:   make([]models.IntervalBucket, len(intervalBuckets)),
	}
	for i, bucket := range intervalBuckets {
		stats.Intervals[i].Label = bucket.label
	}

	var easinessSum float64
	decks := make(map[string]*models.DeckStats)

	for _, card := range catalog {
		deck := decks[card.Deck]
		if deck == nil {
			deck = &models.DeckStats{Deck: card.Deck}
			decks[card.Deck] = deck
		}
		deck.Total++

		state, ok := snapshot[card.ID]
		if !ok {
			stats.Phases.New++
			continue
		}

		stats.Reviewed++
		stats.Correct += state.Correct
		stats.Incorrect += state.Incorrect
		stats.TotalReviews += state.TotalReviews
		easinessSum += state.Easiness
		deck.Seen++

		stats.Intervals[bucketFor(state.Interval)].Count++

		switch PhaseOf(&state) {
		case PhaseMastered:
			stats.Phases.Mastered++
			stats.Mastered++
			deck.Mastered++
		case PhaseReviewing:
			stats.Phases.Reviewing++
		default:
			stats.Phases.Learning++
		}
	}

	stats.Unreviewed = stats.TotalCards - stats.Reviewed

	if answered := stats.Correct + stats.Incorrect; answered > 0 {
		stats.Accuracy = float64(stats.Correct) / float64(answered)
	}
	if stats.Reviewed > 0 {
		stats.MeanEasiness = easinessSum / float64(stats.Reviewed)
	}

	due, fresh := selector.Partition(catalog, snapshot, now)
	stats.DueNow = len(due)
	stats.NewCards = len(fresh)

	stats.Decks = make([]models.DeckStats, 0, len(decks))
	for _, deck := range decks {
		stats.Decks = append(stats.Decks, *deck)
	}
	sort.Slice(stats.Decks, func(i, j int) bool {
		return stats.Decks[i].Deck < stats.Decks[j].Deck
	})

	return stats
}

func bucketFor(interval int) int {
	for i, bucket := range intervalBuckets {
		if bucket.max != 0 && interval <= bucket.max {
			return i
		}
	}
	return len(intervalBuckets) - 1
}
