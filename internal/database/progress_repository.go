package database

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/example/recall/internal/progress"
	"github.com/example/recall/pkg/models"
)

// ProgressRepository handles database operations for card scheduling
// state. It implements the progress.Store contract for one engine; the
// engine tag keeps SM-2 and Leitner rows apart.
type ProgressRepository struct {
	Engine string
	log    *slog.Logger
}

// NewProgressRepository creates a new repository instance for the engine
func NewProgressRepository(engine string, log *slog.Logger) *ProgressRepository {
	if log == nil {
		log = slog.Default()
	}
	return &ProgressRepository{Engine: engine, log: log}
}

var (
	_ progress.Store          = (*ProgressRepository)(nil)
	_ progress.ReviewRecorder = (*ProgressRepository)(nil)
	_ progress.StreakReporter = (*ProgressRepository)(nil)
)

// progressRow mirrors one row of the progress table
type progressRow struct {
	Engine string `db:"engine"`
	CardID string `db:"card_id"`
	models.CardState
}

// Get returns the state for a card, or nil if it was never reviewed
func (r *ProgressRepository) Get(cardID string) (*models.CardState, error) {
	var row progressRow
	err := DB.Get(&row,
		"SELECT * FROM progress WHERE engine = $1 AND card_id = $2",
		r.Engine, cardID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get progress: %w", err)
	}
	state := row.CardState
	return &state, nil
}

// Put inserts or updates the state for a card
func (r *ProgressRepository) Put(cardID string, state models.CardState) error {
	query := `
		INSERT INTO progress (
			engine, card_id, easiness, interval, repetitions, quality, box,
			last_review, next_review, correct, incorrect, total_reviews
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (engine, card_id) DO UPDATE SET
			easiness = EXCLUDED.easiness,
			interval = EXCLUDED.interval,
			repetitions = EXCLUDED.repetitions,
			quality = EXCLUDED.quality,
			box = EXCLUDED.box,
			last_review = EXCLUDED.last_review,
			next_review = EXCLUDED.next_review,
			correct = EXCLUDED.correct,
			incorrect = EXCLUDED.incorrect,
			total_reviews = EXCLUDED.total_reviews
	`
	_, err := DB.Exec(query,
		r.Engine, cardID,
		state.Easiness, state.Interval, state.Repetitions, state.Quality, state.Box,
		state.LastReview, state.NextReview,
		state.Correct, state.Incorrect, state.TotalReviews,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert progress: %w", err)
	}
	return nil
}

// Snapshot returns all stored states for the engine keyed by card id.
// Rows that fail to scan are skipped with a warning, so one corrupt
// record never takes the whole store down.
func (r *ProgressRepository) Snapshot() (map[string]models.CardState, error) {
	rows, err := DB.Queryx("SELECT * FROM progress WHERE engine = $1", r.Engine)
	if err != nil {
		return nil, fmt.Errorf("failed to query progress: %w", err)
	}
	defer rows.Close()

	snapshot := make(map[string]models.CardState)
	for rows.Next() {
		var row progressRow
		if err := rows.StructScan(&row); err != nil {
			cerr := &progress.CorruptStateError{CardID: row.CardID, Err: err}
			r.log.Warn("skipping corrupt card state", "engine", r.Engine, "error", cerr)
			continue
		}
		snapshot[row.CardID] = row.CardState
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read progress rows: %w", err)
	}
	return snapshot, nil
}

// Reset removes all stored progress, sessions and history for the engine
func (r *ProgressRepository) Reset() error {
	for _, table := range []string{"progress", "sessions", "review_log"} {
		query := fmt.Sprintf("DELETE FROM %s WHERE engine = $1", table)
		if _, err := DB.Exec(query, r.Engine); err != nil {
			return fmt.Errorf("failed to reset %s: %w", table, err)
		}
	}
	return nil
}

// Close closes the underlying database connection
func (r *ProgressRepository) Close() error {
	return Close()
}
