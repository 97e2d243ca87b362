// Package config defines the application configuration and its validation rules.
package config

import (
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/example/recall/internal/selector"
	sr "github.com/example/recall/internal/spaced_repetition"
)

// Storage backends.
const (
	BackendJSON     = "json"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

// Config represents the application configuration.
type Config struct {
	App      ApplicationConfig `yaml:"app"`
	Review   ReviewConfig      `yaml:"review"`
	Storage  StorageConfig     `yaml:"storage"`
	Decks    DecksConfig       `yaml:"decks"`
	Reminder ReminderConfig    `yaml:"reminder"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.Review.Validate(); err != nil {
		return err
	}
	if err := c.Storage.Validate(); err != nil {
		return err
	}
	if err := c.Decks.Validate(); err != nil {
		return err
	}
	return c.Reminder.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
}

// ReviewConfig holds the scheduling engine and session limits.
type ReviewConfig struct {
	Engine    string `yaml:"engine"`
	Mode      string `yaml:"mode"`
	MaxReview int    `yaml:"max_review"`
	MaxNew    int    `yaml:"max_new"`
}

// Validate validates the review configuration.
func (c *ReviewConfig) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Engine, validation.Required, validation.In(sr.EngineSM2, sr.EngineLeitner)),
		validation.Field(&c.Mode, validation.Required, validation.In(selector.ModeSpaced.String(), selector.ModeRandom.String())),
	); err != nil {
		return err
	}
	return c.Caps().Validate()
}

// Caps returns the session limits as selector caps.
func (c *ReviewConfig) Caps() selector.Caps {
	return selector.Caps{MaxReview: c.MaxReview, MaxNew: c.MaxNew}
}

// SelectionMode parses the configured queue-building mode.
func (c *ReviewConfig) SelectionMode() (selector.Mode, error) {
	return selector.ParseMode(c.Mode)
}

// StorageConfig holds progress storage configuration.
//
// Backend controls where review state lives:
//   - "json" (default): one JSON file per engine under Dir.
//   - "sqlite": a single SQLite database at Path.
//   - "postgres": a PostgreSQL database reached via DSN.
type StorageConfig struct {
	Backend string `yaml:"backend"`
	Dir     string `yaml:"dir"`
	Path    string `yaml:"path"`
	DSN     string `yaml:"dsn"`
}

// Validate validates the storage configuration.
func (c *StorageConfig) Validate() error {
	// Normalise empty backend to "json" for backward compatibility.
	if c.Backend == "" {
		c.Backend = BackendJSON
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Backend, validation.Required, validation.In(BackendJSON, BackendSQLite, BackendPostgres)),
	); err != nil {
		return err
	}
	switch c.Backend {
	case BackendJSON:
		if c.Dir == "" {
			return fmt.Errorf("storage: backend is %q but dir is empty", BackendJSON)
		}
	case BackendSQLite:
		if c.Path == "" {
			return fmt.Errorf("storage: backend is %q but path is empty", BackendSQLite)
		}
	case BackendPostgres:
		if c.DSN == "" {
			return fmt.Errorf("storage: backend is %q but dsn is empty", BackendPostgres)
		}
	}
	return nil
}

// DecksConfig holds the path to the deck directory.
type DecksConfig struct {
	Dir string `yaml:"dir"`
}

// Validate validates the decks configuration.
func (c *DecksConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Dir, validation.Required),
	)
}

// ReminderConfig holds the reminder daemon configuration. Reminders are
// only sent between StartHour and EndHour (inclusive, local hours).
type ReminderConfig struct {
	StartHour int            `yaml:"start_hour"`
	EndHour   int            `yaml:"end_hour"`
	Telegram  TelegramConfig `yaml:"telegram"`
}

// Validate validates the reminder configuration.
func (c *ReminderConfig) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.StartHour, validation.Min(0), validation.Max(23)),
		validation.Field(&c.EndHour, validation.Min(0), validation.Max(23)),
	); err != nil {
		return err
	}
	if c.EndHour < c.StartHour {
		return fmt.Errorf("reminder: end_hour %d before start_hour %d", c.EndHour, c.StartHour)
	}
	return c.Telegram.Validate()
}

// TelegramConfig holds the optional Telegram reminder channel. When Token
// is empty reminders fall back to the console.
type TelegramConfig struct {
	Token  string `yaml:"token"`
	ChatID int64  `yaml:"chat_id"`
}

// Validate validates the telegram configuration.
func (c *TelegramConfig) Validate() error {
	if c.Token != "" && c.ChatID == 0 {
		return fmt.Errorf("telegram: token is set but chat_id is empty")
	}
	return nil
}

// Enabled returns true when the Telegram channel is configured.
func (c *TelegramConfig) Enabled() bool {
	return c.Token != ""
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	caps := selector.DefaultCaps()
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
		},
		Review: ReviewConfig{
			Engine:    sr.EngineSM2,
			Mode:      selector.ModeSpaced.String(),
			MaxReview: caps.MaxReview,
			MaxNew:    caps.MaxNew,
		},
		Storage: StorageConfig{
			Backend: BackendJSON,
			Dir:     "./data",
		},
		Decks: DecksConfig{
			Dir: "./decks",
		},
		Reminder: ReminderConfig{
			StartHour: 8,
			EndHour:   22,
		},
	}
}
