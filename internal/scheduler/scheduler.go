// Package scheduler runs the background reminder daemon.
package scheduler

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/example/recall/internal/notify"
	"github.com/example/recall/internal/progress"
	"github.com/example/recall/internal/selector"
	"github.com/example/recall/pkg/models"
)

// Default notification window, in UTC hours
const (
	DefaultStartHour = 8
	DefaultEndHour   = 22
)

// Window is the span of hours during which reminders may be sent.
// Hours outside it stay quiet no matter how many cards pile up.
type Window struct {
	StartHour int
	EndHour   int
}

// Contains reports whether the hour falls inside the window
func (w Window) Contains(hour int) bool {
	return hour >= w.StartHour && hour <= w.EndHour
}

// Scheduler manages the periodic due-card check
type Scheduler struct {
	scheduler *gocron.Scheduler
	notifier  notify.Notifier
	store     progress.Store
	catalog   func() ([]models.Card, error)
	window    Window
	log       *slog.Logger
}

// New creates a scheduler instance. The catalog function is called on
// every check so deck edits are picked up without a restart.
func New(notifier notify.Notifier, store progress.Store, catalog func() ([]models.Card, error), window Window, log *slog.Logger) *Scheduler {
	if log == nil {
		log = slog.Default()
	}
	if window == (Window{}) {
		window = Window{StartHour: DefaultStartHour, EndHour: DefaultEndHour}
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		notifier:  notifier,
		store:     store,
		catalog:   catalog,
		window:    window,
		log:       log,
	}
}

// Start begins the hourly due-card check in the background
func (s *Scheduler) Start() error {
	if _, err := s.scheduler.Every(1).Hour().Do(s.checkAndSendReminder); err != nil {
		return fmt.Errorf("failed to schedule reminder job: %w", err)
	}
	s.scheduler.StartAsync()
	return nil
}

// Stop terminates all scheduled tasks
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// checkAndSendReminder sends a reminder when cards are due and the
// clock is inside the notification window
func (s *Scheduler) checkAndSendReminder() {
	now := time.Now().UTC()
	if !s.window.Contains(now.Hour()) {
		s.log.Debug("outside notification window, skipping reminder",
			"hour", now.Hour(),
			"start", s.window.StartHour,
			"end", s.window.EndHour,
		)
		return
	}

	due, err := s.dueCount(now)
	if err != nil {
		s.log.Error("reminder check failed", "error", err)
		return
	}
	if due == 0 {
		return
	}

	if err := s.notifier.SendReminder(due); err != nil {
		s.log.Error("failed to send reminder", "error", err)
		return
	}
	s.log.Info("reminder sent", "due", due)
}

// RunManualCheck performs one due-card check right away, ignoring the
// notification window. It returns the number of due cards found.
func (s *Scheduler) RunManualCheck() (int, error) {
	due, err := s.dueCount(time.Now().UTC())
	if err != nil {
		return 0, err
	}
	if due > 0 {
		if err := s.notifier.SendReminder(due); err != nil {
			return due, err
		}
	}
	return due, nil
}

func (s *Scheduler) dueCount(now time.Time) (int, error) {
	catalog, err := s.catalog()
	if err != nil {
		return 0, fmt.Errorf("failed to load catalog: %w", err)
	}
	snapshot, err := s.store.Snapshot()
	if err != nil {
		return 0, fmt.Errorf("failed to read progress: %w", err)
	}
	due, _ := selector.Partition(catalog, snapshot, now)
	return len(due), nil
}
