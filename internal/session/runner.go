// Package session runs interactive review sessions: it pulls a queue
// from the selector, feeds cards to a presenter and commits every
// completed review to the store before moving on.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/example/recall/internal/progress"
	"github.com/example/recall/internal/selector"
	sr "github.com/example/recall/internal/spaced_repetition"
	"github.com/example/recall/pkg/models"
)

// Presenter is the interaction surface of a session. Implementations
// own all prompting and formatting; Review returns the learner's
// quality rating for one card, or quit=true to end the session.
type Presenter interface {
	Review(card models.Card, state *models.CardState, position, total int) (quality sr.Quality, quit bool, err error)
	QueueEmpty(nextDue time.Time)
	Summary(rec models.SessionRecord)
}

// Runner wires one review session together
type Runner struct {
	Store     progress.Store
	Scheduler sr.Scheduler
	Presenter Presenter
	Mode      selector.Mode
	Caps      selector.Caps
	Log       *slog.Logger

	// Now is the session clock; defaults to UTC wall time
	Now func() time.Time
}

func (r *Runner) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now().UTC()
}

func (r *Runner) logger() *slog.Logger {
	if r.Log != nil {
		return r.Log
	}
	return slog.Default()
}

// Run executes one session over the catalog. Every completed review is
// persisted before the next card is shown, so quitting mid-session
// never loses finished reviews.
func (r *Runner) Run(ctx context.Context, catalog []models.Card) (models.SessionRecord, error) {
	snapshot, err := r.Store.Snapshot()
	if err != nil {
		return models.SessionRecord{}, fmt.Errorf("failed to read progress: %w", err)
	}

	startedAt := r.now()
	queue, err := selector.BuildQueue(catalog, snapshot, startedAt, r.Mode, r.Caps)
	if err != nil {
		return models.SessionRecord{}, err
	}
	if len(queue.Cards) == 0 {
		r.Presenter.QueueEmpty(queue.NextDue)
		return models.SessionRecord{}, nil
	}

	rec := models.SessionRecord{
		ID:        uuid.NewString(),
		Engine:    r.Scheduler.Name(),
		StartedAt: startedAt,
	}
	recorder, hasRecorder := r.Store.(progress.ReviewRecorder)

	for i, card := range queue.Cards {
		if ctx.Err() != nil {
			break
		}

		state, err := r.Store.Get(card.ID)
		if err != nil {
			return rec, fmt.Errorf("failed to read card state: %w", err)
		}

		quality, quit, err := r.Presenter.Review(card, state, i+1, len(queue.Cards))
		if err != nil {
			return rec, err
		}
		if quit {
			break
		}

		now := r.now()
		next, err := r.Scheduler.Advance(state, quality, now)
		if err != nil {
			return rec, err
		}
		if err := r.Store.Put(card.ID, next); err != nil {
			return rec, fmt.Errorf("failed to persist review: %w", err)
		}
		if hasRecorder {
			review := models.ReviewRecord{
				CardID:     card.ID,
				Engine:     rec.Engine,
				Quality:    int(quality),
				Interval:   next.Interval,
				Easiness:   next.Easiness,
				ReviewedAt: now,
			}
			if err := recorder.RecordReview(review); err != nil {
				return rec, fmt.Errorf("failed to record review: %w", err)
			}
		}

		rec.Reviewed++
		if quality.Passing() {
			rec.Correct++
		}
		r.logger().Debug("review complete",
			"card_id", card.ID,
			"quality", int(quality),
			"interval", next.Interval,
		)
	}

	rec.FinishedAt = r.now()
	if err := r.Store.RecordSession(rec); err != nil {
		return rec, fmt.Errorf("failed to record session: %w", err)
	}
	r.Presenter.Summary(rec)
	return rec, nil
}
