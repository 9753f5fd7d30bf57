package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

const MainProfileKey = "main"

// InitialScore is the proof score of a brand-new profile.
const InitialScore = 1.0

type ProfileRepo struct {
	db *sql.DB
}

func NewProfileRepo(db *sql.DB) *ProfileRepo {
	return &ProfileRepo{db: db}
}

func (r *ProfileRepo) Get(ctx context.Context, key string) (*Profile, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT key, score, streak, joined_at, last_closed
		FROM profiles
		WHERE key = ?
	`, key)

	var (
		p          Profile
		joined     time.Time
		lastClosed sql.NullString
	)
	if err := row.Scan(&p.Key, &p.Score, &p.Streak, &joined, &lastClosed); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("profile get: %w", err)
	}
	p.JoinedAt = joined
	p.LastClosed = lastClosed.String
	return &p, nil
}

func (r *ProfileRepo) GetOrCreate(ctx context.Context, key string) (*Profile, error) {
	p, err := r.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if p != nil {
		return p, nil
	}

	if _, err := r.db.ExecContext(ctx, `INSERT INTO profiles (key, score) VALUES (?, ?)`, key, InitialScore); err != nil {
		return nil, fmt.Errorf("profile insert: %w", err)
	}
	return r.Get(ctx, key)
}

func (r *ProfileRepo) Update(ctx context.Context, p *Profile) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE profiles
		SET score = ?, streak = ?, last_closed = ?
		WHERE key = ?
	`, p.Score, p.Streak, nullString(p.LastClosed), p.Key)
	if err != nil {
		return fmt.Errorf("profile update: %w", err)
	}
	return nil
}

func (r *ProfileRepo) ListAll(ctx context.Context) ([]Profile, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT key, score, streak, joined_at, last_closed
		FROM profiles
		ORDER BY key ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("profile list: %w", err)
	}
	defer rows.Close()

	var out []Profile
	for rows.Next() {
		var (
			p          Profile
			joined     time.Time
			lastClosed sql.NullString
		)
		if err := rows.Scan(&p.Key, &p.Score, &p.Streak, &joined, &lastClosed); err != nil {
			return nil, fmt.Errorf("profile scan: %w", err)
		}
		p.JoinedAt = joined
		p.LastClosed = lastClosed.String
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("profile rows: %w", err)
	}
	return out, nil
}
