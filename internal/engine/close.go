package engine

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"ritualist/internal/schedule"
)

// CloseResult reports what closing a day did to the profile.
type CloseResult struct {
	Date         schedule.Date
	DueCount     int
	DoneCount    int
	AllCompleted bool
	Score        float64
	Streak       int
	Tier         string
}

// CloseDay folds one elapsed day into the profile's proof score and streak.
// The fold is strictly date-ordered: a day at or before the last closed date
// is refused rather than replayed, since an out-of-order replay would
// produce a different score. A day with nothing due leaves the score
// untouched and only advances the close marker.
func (s *Service) CloseDay(ctx context.Context, day schedule.Date) (*CloseResult, error) {
	prof, err := s.profiles.GetOrCreate(ctx, s.profileKey)
	if err != nil {
		return nil, err
	}
	if prof.LastClosed != "" {
		last, err := schedule.ParseDate(prof.LastClosed)
		if err != nil {
			return nil, fmt.Errorf("stored last closed date: %w", err)
		}
		if !day.After(last) {
			return nil, fmt.Errorf("day %s already closed (last closed %s)", day, last)
		}
	}

	sched, err := s.ResolveDay(ctx, day)
	if err != nil {
		return nil, err
	}
	entries, err := s.completions.ListByDate(ctx, day.String())
	if err != nil {
		return nil, err
	}

	completedSet := map[string]bool{}
	for _, e := range entries {
		if e.Completed {
			completedSet[e.RitualID] = true
		}
	}

	done := 0
	for _, occ := range sched.Occurrences {
		if completedSet[occ.RitualID] {
			done++
		}
	}
	due := len(sched.Occurrences)
	all := done == due

	result := &CloseResult{
		Date:         day,
		DueCount:     due,
		DoneCount:    done,
		AllCompleted: all,
		Score:        prof.Score,
		Streak:       prof.Streak,
	}

	// A rest day (nothing due) neither grows nor decays the score.
	if due > 0 {
		result.Score, result.Streak = ApplyDailyOutcome(prof.Score, prof.Streak, all)
	}
	result.Tier = ProofTier(result.Score)

	prof.Score = result.Score
	prof.Streak = result.Streak
	prof.LastClosed = day.String()
	if err := s.profiles.Update(ctx, prof); err != nil {
		return nil, err
	}

	s.log.Info("closed day",
		zap.String("date", day.String()),
		zap.Int("due", due),
		zap.Int("done", done),
		zap.Float64("score", result.Score))

	return result, nil
}

// Standings returns every profile's leaderboard entry, grouped into proof
// groups.
func (s *Service) Standings(ctx context.Context) ([]ProofGroup, error) {
	profiles, err := s.profiles.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	standings := make([]Standing, 0, len(profiles))
	for _, p := range profiles {
		standings = append(standings, Standing{
			Key:      p.Key,
			Score:    p.Score,
			Streak:   p.Streak,
			JoinedAt: p.JoinedAt,
		})
	}
	return GroupStandings(standings), nil
}
