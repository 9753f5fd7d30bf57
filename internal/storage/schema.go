package storage

import (
	"context"
	"database/sql"
	"fmt"
)

func Migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS rituals (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			time TEXT,

			frequency TEXT NOT NULL,
			interval INTEGER NOT NULL DEFAULT 1,
			days_of_week TEXT,
			specific_dates TEXT,
			exclude_dates TEXT,
			anchor TEXT,

			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			archived INTEGER DEFAULT 0
		);`,
		`CREATE TABLE IF NOT EXISTS ritual_steps (
			id TEXT PRIMARY KEY,
			ritual_id TEXT NOT NULL,
			position INTEGER NOT NULL,
			name TEXT NOT NULL,
			exercise TEXT,
			measurement TEXT,
			required INTEGER DEFAULT 1,
			FOREIGN KEY(ritual_id) REFERENCES rituals(id)
		);`,
		`CREATE TABLE IF NOT EXISTS day_overrides (
			ritual_id TEXT NOT NULL,
			date TEXT NOT NULL,
			removed INTEGER DEFAULT 0,
			time TEXT,
			PRIMARY KEY (ritual_id, date),
			FOREIGN KEY(ritual_id) REFERENCES rituals(id)
		);`,
		// The primary key is the upsert target: at most one ledger entry per
		// ritual per calendar date, last write wins.
		`CREATE TABLE IF NOT EXISTS completions (
			ritual_id TEXT NOT NULL,
			date TEXT NOT NULL,
			completed INTEGER NOT NULL,
			step_fraction REAL,
			recorded_at DATETIME NOT NULL,
			PRIMARY KEY (ritual_id, date),
			FOREIGN KEY(ritual_id) REFERENCES rituals(id)
		);`,
		`CREATE TABLE IF NOT EXISTS profiles (
			key TEXT PRIMARY KEY,
			score REAL NOT NULL DEFAULT 1.0,
			streak INTEGER NOT NULL DEFAULT 0,
			joined_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			last_closed TEXT
		);`,
		`CREATE INDEX IF NOT EXISTS idx_ritual_steps_ritual_id ON ritual_steps(ritual_id, position);`,
		`CREATE INDEX IF NOT EXISTS idx_completions_date ON completions(date);`,
		`CREATE INDEX IF NOT EXISTS idx_rituals_archived ON rituals(archived);`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
