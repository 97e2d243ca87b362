package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Supported driver names, as they appear in the configuration
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// DB is the global database connection
var DB *sqlx.DB

// driver remembers which backend DB speaks, for the few queries that
// differ between SQLite and Postgres
var driver string

// Connect establishes a connection to the database and initializes the
// schema. For SQLite the DSN is a file path (":memory:" works too); for
// Postgres it is a connection string.
func Connect(driverName, dsn string) error {
	switch driverName {
	case DriverSQLite:
		// Create the data directory if it doesn't exist
		if dir := filepath.Dir(dsn); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("failed to create data directory: %w", err)
			}
		}
		db, err := sqlx.Connect("sqlite3", dsn)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
			return fmt.Errorf("failed to enable foreign keys: %w", err)
		}
		// SQLite doesn't support multiple writers
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		DB = db
	case DriverPostgres:
		db, err := sqlx.Connect("postgres", dsn)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		DB = db
	default:
		return fmt.Errorf("unsupported database driver: %q", driverName)
	}

	driver = driverName
	return initializeSchema()
}

// Close closes the database connection
func Close() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}

// initializeSchema creates necessary tables if they don't exist
func initializeSchema() error {
	// Current scheduling state, one row per engine and card
	_, err := DB.Exec(`
		CREATE TABLE IF NOT EXISTS progress (
			engine TEXT NOT NULL,
			card_id TEXT NOT NULL,
			easiness REAL NOT NULL DEFAULT 2.5,
			interval INTEGER NOT NULL DEFAULT 0,
			repetitions INTEGER NOT NULL DEFAULT 0,
			quality INTEGER NOT NULL DEFAULT 0,
			box INTEGER NOT NULL DEFAULT 0,
			last_review TIMESTAMP,
			next_review TIMESTAMP,
			correct INTEGER NOT NULL DEFAULT 0,
			incorrect INTEGER NOT NULL DEFAULT 0,
			total_reviews INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (engine, card_id)
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create progress table: %w", err)
	}

	// Completed review sessions
	_, err = DB.Exec(`
		CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			engine TEXT NOT NULL,
			started_at TIMESTAMP NOT NULL,
			finished_at TIMESTAMP NOT NULL,
			reviewed INTEGER NOT NULL DEFAULT 0,
			correct INTEGER NOT NULL DEFAULT 0
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create sessions table: %w", err)
	}

	// One row per individual review, used for streaks and history
	idColumn := "id INTEGER PRIMARY KEY AUTOINCREMENT"
	if driver == DriverPostgres {
		idColumn = "id BIGSERIAL PRIMARY KEY"
	}
	_, err = DB.Exec(fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS review_log (
			%s,
			card_id TEXT NOT NULL,
			engine TEXT NOT NULL,
			quality INTEGER NOT NULL,
			interval INTEGER NOT NULL,
			easiness REAL NOT NULL,
			reviewed_at TIMESTAMP NOT NULL
		)
	`, idColumn))
	if err != nil {
		return fmt.Errorf("failed to create review_log table: %w", err)
	}

	return nil
}
