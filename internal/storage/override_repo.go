package storage

import (
	"context"
	"database/sql"
	"fmt"
)

type OverrideRepo struct {
	db *sql.DB
}

func NewOverrideRepo(db *sql.DB) *OverrideRepo {
	return &OverrideRepo{db: db}
}

// Upsert stores the per-day adjustment for one ritual, replacing any earlier
// adjustment for the same (ritual_id, date).
func (r *OverrideRepo) Upsert(ctx context.Context, o DayOverride) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO day_overrides (ritual_id, date, removed, time)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(ritual_id, date) DO UPDATE SET
			removed = excluded.removed,
			time = excluded.time
	`, o.RitualID, o.Date, boolToInt(o.Removed), nullString(o.Time))
	if err != nil {
		return fmt.Errorf("override upsert: %w", err)
	}
	return nil
}

func (r *OverrideRepo) Delete(ctx context.Context, ritualID, date string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM day_overrides WHERE ritual_id = ? AND date = ?`, ritualID, date)
	if err != nil {
		return fmt.Errorf("override delete: %w", err)
	}
	return nil
}

// ListByDate returns all overrides persisted for one calendar date.
func (r *OverrideRepo) ListByDate(ctx context.Context, date string) ([]DayOverride, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT ritual_id, date, removed, time
		FROM day_overrides
		WHERE date = ?
	`, date)
	if err != nil {
		return nil, fmt.Errorf("override list: %w", err)
	}
	defer rows.Close()

	var out []DayOverride
	for rows.Next() {
		var (
			o       DayOverride
			removed int
			slot    sql.NullString
		)
		if err := rows.Scan(&o.RitualID, &o.Date, &removed, &slot); err != nil {
			return nil, fmt.Errorf("override scan: %w", err)
		}
		o.Removed = removed != 0
		o.Time = slot.String
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("override rows: %w", err)
	}
	return out, nil
}
