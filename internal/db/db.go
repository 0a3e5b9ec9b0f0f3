package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

type DB struct {
	*sql.DB
}

func Connect(databaseURL string) (*DB, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	return &DB{db}, nil
}

// Migrate applies the schema. All statements are idempotent so the server can
// run it on every start.
func Migrate(db *DB) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			username TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			role TEXT NOT NULL DEFAULT 'user',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS user_preferences (
			user_id UUID PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
			selected_categories TEXT[] NOT NULL DEFAULT '{}',
			custom_keywords TEXT[] NOT NULL DEFAULT '{}',
			custom_phrases TEXT[] NOT NULL DEFAULT '{}',
			sensitivity TEXT NOT NULL DEFAULT 'medium',
			enabled BOOLEAN NOT NULL DEFAULT true,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE TABLE IF NOT EXISTS video_results (
			id UUID PRIMARY KEY,
			video_id TEXT NOT NULL,
			preferences_hash TEXT NOT NULL,
			segments JSONB NOT NULL DEFAULT '[]',
			total_duration DOUBLE PRECISION NOT NULL DEFAULT 0,
			skip_percentage DOUBLE PRECISION NOT NULL DEFAULT 0,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			UNIQUE (video_id, preferences_hash)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_video_results_video_id ON video_results(video_id)`,
		`CREATE INDEX IF NOT EXISTS idx_video_results_updated_at ON video_results(updated_at)`,
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
	}

	for _, stmt := range statements {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}
