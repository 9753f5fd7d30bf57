package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
)

type RitualRepo struct {
	db *sql.DB
}

func NewRitualRepo(db *sql.DB) *RitualRepo {
	return &RitualRepo{db: db}
}

// Insert stores a ritual and its steps in one transaction. The caller
// assigns the IDs.
func (r *RitualRepo) Insert(ctx context.Context, rit Ritual) error {
	days, err := marshalJSON(rit.DaysOfWeek)
	if err != nil {
		return fmt.Errorf("marshal days_of_week: %w", err)
	}
	dates, err := marshalJSON(rit.SpecificDates)
	if err != nil {
		return fmt.Errorf("marshal specific_dates: %w", err)
	}
	excludes, err := marshalJSON(rit.ExcludeDates)
	if err != nil {
		return fmt.Errorf("marshal exclude_dates: %w", err)
	}

	return WithTx(ctx, r.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO rituals (id, name, time, frequency, interval, days_of_week, specific_dates, exclude_dates, anchor)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, rit.ID, rit.Name, nullString(rit.Time), rit.Frequency, rit.Interval, days, dates, excludes, nullString(rit.Anchor))
		if err != nil {
			return fmt.Errorf("ritual insert: %w", err)
		}
		for _, st := range rit.Steps {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO ritual_steps (id, ritual_id, position, name, exercise, measurement, required)
				VALUES (?, ?, ?, ?, ?, ?, ?)
			`, st.ID, rit.ID, st.Position, st.Name, nullString(st.Exercise), nullString(st.Measurement), boolToInt(st.Required))
			if err != nil {
				return fmt.Errorf("step insert: %w", err)
			}
		}
		return nil
	})
}

func (r *RitualRepo) Get(ctx context.Context, id string) (*Ritual, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, time, frequency, interval, days_of_week, specific_dates, exclude_dates, anchor, created_at, archived
		FROM rituals
		WHERE id = ?
	`, id)
	rit, err := scanRitual(row)
	if err != nil || rit == nil {
		return rit, err
	}
	if err := r.loadSteps(ctx, rit); err != nil {
		return nil, err
	}
	return rit, nil
}

// FindByName returns the first non-archived ritual with the given name, or
// nil when none matches.
func (r *RitualRepo) FindByName(ctx context.Context, name string) (*Ritual, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, name, time, frequency, interval, days_of_week, specific_dates, exclude_dates, anchor, created_at, archived
		FROM rituals
		WHERE name = ? AND archived = 0
		ORDER BY created_at ASC
		LIMIT 1
	`, name)
	rit, err := scanRitual(row)
	if err != nil || rit == nil {
		return rit, err
	}
	if err := r.loadSteps(ctx, rit); err != nil {
		return nil, err
	}
	return rit, nil
}

// ListActive returns all non-archived rituals, steps included, oldest first.
func (r *RitualRepo) ListActive(ctx context.Context) ([]Ritual, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, time, frequency, interval, days_of_week, specific_dates, exclude_dates, anchor, created_at, archived
		FROM rituals
		WHERE archived = 0
		ORDER BY created_at ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("ritual list: %w", err)
	}
	defer rows.Close()

	var out []Ritual
	index := map[string]int{}
	for rows.Next() {
		rit, err := scanRitual(rows)
		if err != nil {
			return nil, err
		}
		index[rit.ID] = len(out)
		out = append(out, *rit)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ritual list rows: %w", err)
	}

	steps, err := r.db.QueryContext(ctx, `
		SELECT id, ritual_id, position, name, exercise, measurement, required
		FROM ritual_steps
		ORDER BY ritual_id, position ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("step list: %w", err)
	}
	defer steps.Close()

	for steps.Next() {
		st, err := scanStep(steps)
		if err != nil {
			return nil, err
		}
		if i, ok := index[st.RitualID]; ok {
			out[i].Steps = append(out[i].Steps, st)
		}
	}
	if err := steps.Err(); err != nil {
		return nil, fmt.Errorf("step list rows: %w", err)
	}
	return out, nil
}

func (r *RitualRepo) Archive(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE rituals SET archived = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("ritual archive: %w", err)
	}
	return nil
}

func (r *RitualRepo) loadSteps(ctx context.Context, rit *Ritual) error {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, ritual_id, position, name, exercise, measurement, required
		FROM ritual_steps
		WHERE ritual_id = ?
		ORDER BY position ASC
	`, rit.ID)
	if err != nil {
		return fmt.Errorf("step list: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		st, err := scanStep(rows)
		if err != nil {
			return err
		}
		rit.Steps = append(rit.Steps, st)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("step rows: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRitual(row scanner) (*Ritual, error) {
	var (
		rit      Ritual
		slot     sql.NullString
		days     sql.NullString
		dates    sql.NullString
		excludes sql.NullString
		anchor   sql.NullString
		archived int
	)
	if err := row.Scan(&rit.ID, &rit.Name, &slot, &rit.Frequency, &rit.Interval,
		&days, &dates, &excludes, &anchor, &rit.CreatedAt, &archived); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("ritual scan: %w", err)
	}

	rit.Time = slot.String
	rit.Anchor = anchor.String
	rit.Archived = archived != 0

	if err := unmarshalJSON(days, &rit.DaysOfWeek); err != nil {
		return nil, fmt.Errorf("unmarshal days_of_week: %w", err)
	}
	if err := unmarshalJSON(dates, &rit.SpecificDates); err != nil {
		return nil, fmt.Errorf("unmarshal specific_dates: %w", err)
	}
	if err := unmarshalJSON(excludes, &rit.ExcludeDates); err != nil {
		return nil, fmt.Errorf("unmarshal exclude_dates: %w", err)
	}
	return &rit, nil
}

func scanStep(row scanner) (Step, error) {
	var (
		st          Step
		exercise    sql.NullString
		measurement sql.NullString
		required    int
	)
	if err := row.Scan(&st.ID, &st.RitualID, &st.Position, &st.Name, &exercise, &measurement, &required); err != nil {
		return Step{}, fmt.Errorf("step scan: %w", err)
	}
	st.Exercise = exercise.String
	st.Measurement = measurement.String
	st.Required = required != 0
	return st, nil
}

func marshalJSON[T any](v []T) (*string, error) {
	if len(v) == 0 {
		return nil, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	s := string(data)
	return &s, nil
}

func unmarshalJSON[T any](raw sql.NullString, dst *[]T) error {
	if !raw.Valid || raw.String == "" {
		return nil
	}
	return json.Unmarshal([]byte(raw.String), dst)
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
