package models

import "time"

// SessionMeta is the store-level review history summary
type SessionMeta struct {
	Sessions    int       `json:"sessions" db:"sessions"`         // Completed review sessions
	LastSession time.Time `json:"last_session" db:"last_session"` // When the most recent one finished
}

// SessionRecord describes one completed review session
type SessionRecord struct {
	ID         string    `json:"id" db:"id"`
	Engine     string    `json:"engine" db:"engine"`
	StartedAt  time.Time `json:"started_at" db:"started_at"`
	FinishedAt time.Time `json:"finished_at" db:"finished_at"`
	Reviewed   int       `json:"reviewed" db:"reviewed"`
	Correct    int       `json:"correct" db:"correct"`
}

// ReviewRecord is one entry of the per-review history log
type ReviewRecord struct {
	CardID     string    `json:"card_id" db:"card_id"`
	Engine     string    `json:"engine" db:"engine"`
	Quality    int       `json:"quality" db:"quality"`
	Interval   int       `json:"interval" db:"interval"` // Interval assigned by this review
	Easiness   float64   `json:"easiness" db:"easiness"`
	ReviewedAt time.Time `json:"reviewed_at" db:"reviewed_at"`
}
