package models

import "time"

// IntervalBucket is one bar of the interval histogram.
type IntervalBucket struct {
	Label string `json:"label"` // e.g. "2-6d"
	Count int    `json:"count"`
}

// DeckStats summarizes progress within a single deck
type DeckStats struct {
	Deck     string `json:"deck"`
	Total    int    `json:"total"`
	Seen     int    `json:"seen"`
	Mastered int    `json:"mastered"`
}

// PhaseCounts is the distribution of cards across learning phases
type PhaseCounts struct {
	New       int `json:"new"`
	Learning  int `json:"learning"`
	Reviewing int `json:"reviewing"`
	Mastered  int `json:"mastered"`
}

// Stats is the aggregate progress report derived from a store snapshot.
// Everything here is computed on demand; none of it is persisted.
type Stats struct {
	TotalCards   int     `json:"total_cards"`
	Reviewed     int     `json:"reviewed"`
	Unreviewed   int     `json:"unreviewed"`
	Correct      int     `json:"correct"`
	Incorrect    int     `json:"incorrect"`
	TotalReviews int     `json:"total_reviews"`
	Accuracy     float64 `json:"accuracy"`      // correct/(correct+incorrect), 0.0 when nothing answered
	MeanEasiness float64 `json:"mean_easiness"` // Average EF over reviewed cards
	DueNow       int     `json:"due_now"`
	NewCards     int     `json:"new_cards"`
	Mastered     int     `json:"mastered"` // Reviewed cards with interval >= 21 days

	Intervals []IntervalBucket `json:"intervals"`
	Decks     []DeckStats      `json:"decks"`
	Phases    PhaseCounts      `json:"phases"`

	Sessions    int       `json:"sessions"`
	LastSession time.Time `json:"last_session"`
	StreakDays  int       `json:"streak_days,omitempty"` // Consecutive review days; only backends with history report it
}
