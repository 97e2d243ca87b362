package scheduler

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/recall/internal/progress"
	"github.com/example/recall/pkg/models"
)

type fakeNotifier struct {
	counts []int
}

func (f *fakeNotifier) SendReminder(count int) error {
	f.counts = append(f.counts, count)
	return nil
}

func TestWindow_Contains(t *testing.T) {
	w := Window{StartHour: 8, EndHour: 22}

	assert.False(t, w.Contains(7))
	assert.True(t, w.Contains(8))
	assert.True(t, w.Contains(15))
	assert.True(t, w.Contains(22))
	assert.False(t, w.Contains(23))
}

func TestNew_ZeroWindowGetsDefaults(t *testing.T) {
	sched := New(&fakeNotifier{}, nil, nil, Window{}, nil)

	assert.Equal(t, Window{StartHour: DefaultStartHour, EndHour: DefaultEndHour}, sched.window)
}

func TestRunManualCheck(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress_sm2.json")
	store, err := progress.NewFileStore(path, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	overdue := time.Now().UTC().AddDate(0, 0, -1)
	require.NoError(t, store.Put("a", models.CardState{Easiness: 2.5, Interval: 1, NextReview: overdue}))

	catalog := func() ([]models.Card, error) {
		return []models.Card{
			{ID: "a", Front: "f", Back: "b"},
			{ID: "b", Front: "f", Back: "b"},
		}, nil
	}

	notifier := &fakeNotifier{}
	sched := New(notifier, store, catalog, Window{StartHour: 0, EndHour: 23}, nil)

	due, err := sched.RunManualCheck()
	require.NoError(t, err)
	assert.Equal(t, 1, due)
	assert.Equal(t, []int{1}, notifier.counts)
}

func TestRunManualCheck_NothingDue(t *testing.T) {
	path := filepath.Join(t.TempDir(), "progress_sm2.json")
	store, err := progress.NewFileStore(path, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)

	ahead := time.Now().UTC().AddDate(0, 0, 5)
	require.NoError(t, store.Put("a", models.CardState{Easiness: 2.5, Interval: 5, NextReview: ahead}))

	catalog := func() ([]models.Card, error) {
		return []models.Card{{ID: "a", Front: "f", Back: "b"}}, nil
	}

	notifier := &fakeNotifier{}
	sched := New(notifier, store, catalog, Window{StartHour: 0, EndHour: 23}, nil)

	due, err := sched.RunManualCheck()
	require.NoError(t, err)
	assert.Zero(t, due)
	assert.Empty(t, notifier.counts)
}
