package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/example/recall/pkg/models"
)

// RecordSession stores one finished review session
func (r *ProgressRepository) RecordSession(rec models.SessionRecord) error {
	query := `
		INSERT INTO sessions (id, engine, started_at, finished_at, reviewed, correct)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := DB.Exec(query,
		rec.ID, r.Engine, rec.StartedAt, rec.FinishedAt, rec.Reviewed, rec.Correct)
	if err != nil {
		return fmt.Errorf("failed to record session: %w", err)
	}
	return nil
}

// SessionMeta returns the session count and the most recent finish time
func (r *ProgressRepository) SessionMeta() (models.SessionMeta, error) {
	var meta models.SessionMeta
	if err := DB.Get(&meta.Sessions,
		"SELECT COUNT(*) FROM sessions WHERE engine = $1", r.Engine); err != nil {
		return models.SessionMeta{}, fmt.Errorf("failed to count sessions: %w", err)
	}

	// Read the column directly rather than MAX(): SQLite only converts
	// to time.Time when the declared column type survives, and it does
	// not survive aggregate expressions.
	var last time.Time
	err := DB.Get(&last,
		"SELECT finished_at FROM sessions WHERE engine = $1 ORDER BY finished_at DESC LIMIT 1",
		r.Engine)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return models.SessionMeta{}, fmt.Errorf("failed to get last session: %w", err)
	}
	if err == nil {
		meta.LastSession = last
	}
	return meta, nil
}

// RecordReview appends one review to the history log
func (r *ProgressRepository) RecordReview(rec models.ReviewRecord) error {
	query := `
		INSERT INTO review_log (card_id, engine, quality, interval, easiness, reviewed_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := DB.Exec(query,
		rec.CardID, r.Engine, rec.Quality, rec.Interval, rec.Easiness, rec.ReviewedAt)
	if err != nil {
		return fmt.Errorf("failed to record review: %w", err)
	}
	return nil
}

// StreakDays counts consecutive days with at least one review, walking
// back from now. A day without reviews yet does not break the streak
// until it is over.
func (r *ProgressRepository) StreakDays(now time.Time) (int, error) {
	// Collapse the log to distinct UTC days. Date extraction is one of
	// the few places the two backends speak different SQL.
	var query string
	if driver == DriverPostgres {
		query = "SELECT DISTINCT to_char(reviewed_at, 'YYYY-MM-DD') FROM review_log WHERE engine = $1"
	} else {
		query = "SELECT DISTINCT date(reviewed_at) FROM review_log WHERE engine = $1"
	}
	var days []string
	if err := DB.Select(&days, query, r.Engine); err != nil {
		return 0, fmt.Errorf("failed to get review days: %w", err)
	}

	reviewed := make(map[string]bool, len(days))
	for _, day := range days {
		reviewed[day] = true
	}

	const layout = "2006-01-02"
	day := now.UTC()
	if !reviewed[day.Format(layout)] {
		day = day.AddDate(0, 0, -1)
	}

	streak := 0
	for reviewed[day.Format(layout)] {
		streak++
		day = day.AddDate(0, 0, -1)
	}
	return streak, nil
}
