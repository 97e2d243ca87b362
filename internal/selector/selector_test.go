package selector

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/recall/pkg/models"
)

var t0 = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

func makeCards(prefix string, n int) []models.Card {
	cards := make([]models.Card, n)
	for i := range cards {
		cards[i] = models.Card{
			ID:    fmt.Sprintf("%s-%d", prefix, i),
			Front: fmt.Sprintf("front %d", i),
			Back:  fmt.Sprintf("back %d", i),
		}
	}
	return cards
}

func dueState(overdueDays int) models.CardState {
	return models.CardState{
		Easiness:   models.DefaultEasiness,
		Interval:   1,
		NextReview: t0.AddDate(0, 0, -overdueDays),
	}
}

func ids(cards []models.Card) map[string]bool {
	set := make(map[string]bool, len(cards))
	for _, c := range cards {
		set[c.ID] = true
	}
	return set
}

// --- Partition ---

func TestPartition(t *testing.T) {
	catalog := makeCards("c", 4)
	snapshot := map[string]models.CardState{
		// c-0 is overdue, c-1 is scheduled ahead, c-2 is a legacy
		// record with no next_review and counts as due. c-3 is new.
		"c-0": dueState(3),
		"c-1": {NextReview: t0.AddDate(0, 0, 5)},
		"c-2": {Interval: 1},
	}

	due, fresh := Partition(catalog, snapshot, t0)

	assert.ElementsMatch(t, []string{"c-0", "c-2"}, keysOf(due))
	assert.ElementsMatch(t, []string{"c-3"}, keysOf(fresh))
}

func keysOf(cards []models.Card) []string {
	out := make([]string, len(cards))
	for i, c := range cards {
		out[i] = c.ID
	}
	return out
}

// --- BuildQueue, spaced mode ---

func TestBuildQueue_DueAndNewUnderCaps(t *testing.T) {
	// 3 due cards and 5 new cards fit entirely under the defaults.
	catalog := makeCards("c", 8)
	snapshot := map[string]models.CardState{
		"c-0": dueState(1),
		"c-1": dueState(2),
		"c-2": dueState(3),
	}

	queue, err := BuildQueue(catalog, snapshot, t0, ModeSpaced, DefaultCaps())
	require.NoError(t, err)
	assert.Len(t, queue.Cards, 8)
	assert.True(t, queue.NextDue.IsZero())
}

func TestBuildQueue_NeverExceedsMaxReview(t *testing.T) {
	catalog := makeCards("c", 100)
	snapshot := make(map[string]models.CardState)
	for i := 0; i < 60; i++ {
		snapshot[fmt.Sprintf("c-%d", i)] = dueState(i + 1)
	}

	queue, err := BuildQueue(catalog, snapshot, t0, ModeSpaced, DefaultCaps())
	require.NoError(t, err)
	assert.Len(t, queue.Cards, 30)

	// All capacity went to due cards; no new card slipped in.
	member := ids(queue.Cards)
	for i := 60; i < 100; i++ {
		assert.False(t, member[fmt.Sprintf("c-%d", i)])
	}
}

func TestBuildQueue_NewCardsCappedByMaxNew(t *testing.T) {
	// No due cards at all: the queue is new cards only, at most MaxNew.
	catalog := makeCards("c", 50)

	queue, err := BuildQueue(catalog, nil, t0, ModeSpaced, DefaultCaps())
	require.NoError(t, err)
	assert.Len(t, queue.Cards, 10)
}

func TestBuildQueue_NewCardsFillRemainingCapacity(t *testing.T) {
	catalog := makeCards("c", 40)
	snapshot := make(map[string]models.CardState)
	for i := 0; i < 28; i++ {
		snapshot[fmt.Sprintf("c-%d", i)] = dueState(1)
	}

	queue, err := BuildQueue(catalog, snapshot, t0, ModeSpaced, DefaultCaps())
	require.NoError(t, err)
	// 28 due + min(10, 30-28) = 30 total.
	assert.Len(t, queue.Cards, 30)

	member := ids(queue.Cards)
	newCount := 0
	for id := range member {
		if _, seen := snapshot[id]; !seen {
			newCount++
		}
	}
	assert.Equal(t, 2, newCount)
}

func TestBuildQueue_CapKeepsMostOverdue(t *testing.T) {
	catalog := makeCards("c", 3)
	snapshot := map[string]models.CardState{
		"c-0": dueState(1),
		"c-1": dueState(10),
		"c-2": dueState(5),
	}

	queue, err := BuildQueue(catalog, snapshot, t0, ModeSpaced, Caps{MaxReview: 2, MaxNew: 0})
	require.NoError(t, err)
	require.Len(t, queue.Cards, 2)

	member := ids(queue.Cards)
	assert.True(t, member["c-1"])
	assert.True(t, member["c-2"])
	assert.False(t, member["c-0"])
}

func TestBuildQueue_NothingDueReportsNextReview(t *testing.T) {
	catalog := makeCards("c", 2)
	soon := t0.AddDate(0, 0, 2)
	snapshot := map[string]models.CardState{
		"c-0": {NextReview: t0.AddDate(0, 0, 6)},
		"c-1": {NextReview: soon},
	}

	queue, err := BuildQueue(catalog, snapshot, t0, ModeSpaced, DefaultCaps())
	require.NoError(t, err)
	assert.Empty(t, queue.Cards)
	assert.Equal(t, soon, queue.NextDue)
}

func TestBuildQueue_EmptyCatalog(t *testing.T) {
	for _, mode := range []Mode{ModeSpaced, ModeRandom} {
		queue, err := BuildQueue(nil, nil, t0, mode, DefaultCaps())
		require.NoError(t, err)
		assert.Empty(t, queue.Cards)
		assert.True(t, queue.NextDue.IsZero())
	}
}

func TestBuildQueue_DoesNotMutateInputs(t *testing.T) {
	catalog := makeCards("c", 6)
	original := make([]models.Card, len(catalog))
	copy(original, catalog)
	snapshot := map[string]models.CardState{"c-0": dueState(1)}

	_, err := BuildQueue(catalog, snapshot, t0, ModeRandom, Caps{MaxReview: 3, MaxNew: 1})
	require.NoError(t, err)
	assert.Equal(t, original, catalog)
	assert.Equal(t, map[string]models.CardState{"c-0": dueState(1)}, snapshot)
}

func TestBuildQueue_RejectsBadCaps(t *testing.T) {
	catalog := makeCards("c", 2)

	_, err := BuildQueue(catalog, nil, t0, ModeSpaced, Caps{MaxReview: 0, MaxNew: 5})
	require.ErrorIs(t, err, ErrInvalidCaps)

	_, err = BuildQueue(catalog, nil, t0, ModeSpaced, Caps{MaxReview: 10, MaxNew: -1})
	require.ErrorIs(t, err, ErrInvalidCaps)
}

// --- BuildQueue, random mode ---

func TestBuildQueue_RandomIgnoresDueDates(t *testing.T) {
	// Half the catalog is scheduled far in the future, half was never
	// seen. Uniform sampling should pick both groups equally often.
	catalog := makeCards("c", 10)
	snapshot := make(map[string]models.CardState)
	for i := 0; i < 5; i++ {
		snapshot[fmt.Sprintf("c-%d", i)] = models.CardState{
			NextReview: t0.AddDate(0, 0, 365),
		}
	}

	const runs = 2000
	scheduledPicks := 0
	for i := 0; i < runs; i++ {
		queue, err := BuildQueue(catalog, snapshot, t0, ModeRandom, Caps{MaxReview: 5, MaxNew: 0})
		require.NoError(t, err)
		require.Len(t, queue.Cards, 5)
		for _, card := range queue.Cards {
			if _, ok := snapshot[card.ID]; ok {
				scheduledPicks++
			}
		}
	}

	// Each run picks 5 of 10 cards, so scheduled cards take half the
	// picks in expectation.
	assert.InDelta(t, runs*5/2, scheduledPicks, runs*5/10)
}

// --- Mode ---

func TestMode_TextRoundTrip(t *testing.T) {
	for _, mode := range []Mode{ModeSpaced, ModeRandom} {
		text, err := mode.MarshalText()
		require.NoError(t, err)

		var parsed Mode
		require.NoError(t, parsed.UnmarshalText(text))
		assert.Equal(t, mode, parsed)
	}
}

func TestParseMode_Unknown(t *testing.T) {
	_, err := ParseMode("alphabetical")
	require.ErrorIs(t, err, ErrInvalidMode)
}
