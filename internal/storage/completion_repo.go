package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

type CompletionRepo struct {
	db *sql.DB
}

func NewCompletionRepo(db *sql.DB) *CompletionRepo {
	return &CompletionRepo{db: db}
}

// Upsert writes one ledger entry keyed on (ritual_id, date). A racing second
// write for the same key resolves as last write wins; callers never see a
// duplicate-entry error.
func (r *CompletionRepo) Upsert(ctx context.Context, c Completion) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO completions (ritual_id, date, completed, step_fraction, recorded_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(ritual_id, date) DO UPDATE SET
			completed = excluded.completed,
			step_fraction = excluded.step_fraction,
			recorded_at = excluded.recorded_at
	`, c.RitualID, c.Date, boolToInt(c.Completed), c.StepFraction, c.RecordedAt)
	if err != nil {
		return fmt.Errorf("completion upsert: %w", err)
	}
	return nil
}

// ListByRitual returns the full ledger for one ritual, oldest date first.
func (r *CompletionRepo) ListByRitual(ctx context.Context, ritualID string) ([]Completion, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT ritual_id, date, completed, step_fraction, recorded_at
		FROM completions
		WHERE ritual_id = ?
		ORDER BY date ASC
	`, ritualID)
	if err != nil {
		return nil, fmt.Errorf("completion list: %w", err)
	}
	defer rows.Close()
	return collectCompletions(rows)
}

// ListByDate returns every ritual's entry for one calendar date.
func (r *CompletionRepo) ListByDate(ctx context.Context, date string) ([]Completion, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT ritual_id, date, completed, step_fraction, recorded_at
		FROM completions
		WHERE date = ?
		ORDER BY ritual_id ASC
	`, date)
	if err != nil {
		return nil, fmt.Errorf("completion list by date: %w", err)
	}
	defer rows.Close()
	return collectCompletions(rows)
}

func collectCompletions(rows *sql.Rows) ([]Completion, error) {
	var out []Completion
	for rows.Next() {
		var (
			c         Completion
			completed int
			fraction  sql.NullFloat64
			recorded  time.Time
		)
		if err := rows.Scan(&c.RitualID, &c.Date, &completed, &fraction, &recorded); err != nil {
			return nil, fmt.Errorf("completion scan: %w", err)
		}
		c.Completed = completed != 0
		c.RecordedAt = recorded
		if fraction.Valid {
			v := fraction.Float64
			c.StepFraction = &v
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("completion rows: %w", err)
	}
	return out, nil
}
