package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/recall/internal/selector"
	pkgconfig "github.com/example/recall/pkg/config"
)

func TestNewDefaultConfig_IsValid(t *testing.T) {
	cfg := NewDefaultConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "sm2", cfg.Review.Engine)
	assert.Equal(t, 30, cfg.Review.MaxReview)
	assert.Equal(t, 10, cfg.Review.MaxNew)
	assert.Equal(t, BackendJSON, cfg.Storage.Backend)
}

func TestReviewConfig_RejectsUnknownEngine(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Review.Engine = "anki"

	require.Error(t, cfg.Validate())
}

func TestReviewConfig_RejectsBadCaps(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Review.MaxReview = -3

	err := cfg.Validate()
	require.ErrorIs(t, err, selector.ErrInvalidCaps)
}

func TestReviewConfig_SelectionMode(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Review.Mode = "random"

	mode, err := cfg.Review.SelectionMode()
	require.NoError(t, err)
	assert.Equal(t, selector.ModeRandom, mode)
}

func TestStorageConfig_EmptyBackendDefaultsJSON(t *testing.T) {
	cfg := StorageConfig{Dir: "./data"}
	require.NoError(t, cfg.Validate())
	assert.Equal(t, BackendJSON, cfg.Backend)
}

func TestStorageConfig_SQLiteRequiresPath(t *testing.T) {
	cfg := StorageConfig{Backend: BackendSQLite}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "path is empty")

	cfg.Path = "./recall.db"
	require.NoError(t, cfg.Validate())
}

func TestStorageConfig_PostgresRequiresDSN(t *testing.T) {
	cfg := StorageConfig{Backend: BackendPostgres}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dsn is empty")
}

func TestReminderConfig_RejectsInvertedWindow(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Reminder.StartHour = 20
	cfg.Reminder.EndHour = 6

	require.Error(t, cfg.Validate())
}

func TestTelegramConfig_TokenRequiresChatID(t *testing.T) {
	cfg := TelegramConfig{Token: "123:abc"}
	require.Error(t, cfg.Validate())
	assert.True(t, cfg.Enabled())

	cfg.ChatID = 42
	require.NoError(t, cfg.Validate())

	assert.False(t, (&TelegramConfig{}).Enabled())
}

func TestLoad_MergesFileOverDefaults(t *testing.T) {
	t.Setenv("RECALL_TEST_DB", "/tmp/recall-test.db")

	raw := `
app:
  log_level: DEBUG
review:
  engine: leitner
  mode: random
  max_review: 15
  max_new: 5
storage:
  backend: sqlite
  path: ${RECALL_TEST_DB}
reminder:
  start_hour: 9
  end_hour: 21
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	cfg := NewDefaultConfig()
	require.NoError(t, pkgconfig.Load(path, cfg))

	assert.Equal(t, slog.LevelDebug, cfg.App.LogLevel)
	assert.Equal(t, "leitner", cfg.Review.Engine)
	assert.Equal(t, 15, cfg.Review.MaxReview)
	assert.Equal(t, BackendSQLite, cfg.Storage.Backend)
	assert.Equal(t, "/tmp/recall-test.db", cfg.Storage.Path)
	assert.Equal(t, 9, cfg.Reminder.StartHour)

	// Sections absent from the file keep their defaults.
	assert.Equal(t, "./decks", cfg.Decks.Dir)
	assert.Equal(t, "./data", cfg.Storage.Dir)
}

func TestLoad_RejectsInvalidConfig(t *testing.T) {
	raw := `
review:
  engine: anki
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	cfg := NewDefaultConfig()
	err := pkgconfig.Load(path, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config validation failed")
}

func TestLoadIfPresent_MissingFileKeepsDefaults(t *testing.T) {
	cfg := NewDefaultConfig()
	err := pkgconfig.LoadIfPresent(filepath.Join(t.TempDir(), "nope.yaml"), cfg)
	require.NoError(t, err)
	assert.Equal(t, "sm2", cfg.Review.Engine)
}
