package engine

import (
	"context"
	"time"

	"ritualist/internal/schedule"
	"ritualist/internal/storage"
)

// RecordCompletion writes one ledger entry for (ritual, date). The write is
// an idempotent upsert: repeating it, or racing another write for the same
// key, leaves exactly one entry with the last value.
func (s *Service) RecordCompletion(ctx context.Context, ref string, day schedule.Date, completed bool, stepFraction *float64) error {
	rit, err := s.FindRitual(ctx, ref)
	if err != nil {
		return err
	}
	return s.completions.Upsert(ctx, storage.Completion{
		RitualID:     rit.ID,
		Date:         day.String(),
		Completed:    completed,
		StepFraction: stepFraction,
		RecordedAt:   time.Now().UTC(),
	})
}

// CompletionInput is one item of a batch completion request.
type CompletionInput struct {
	Ref          string // ritual ID or name
	Completed    bool
	StepFraction *float64
}

// BatchResult reports one item's outcome. Batch completion is a bounded
// fan-out with per-item results: one bad reference does not fail the rest.
type BatchResult struct {
	Ref string
	Err error
}

func (s *Service) RecordCompletions(ctx context.Context, day schedule.Date, items []CompletionInput) []BatchResult {
	out := make([]BatchResult, 0, len(items))
	for _, item := range items {
		err := s.RecordCompletion(ctx, item.Ref, day, item.Completed, item.StepFraction)
		out = append(out, BatchResult{Ref: item.Ref, Err: err})
	}
	return out
}

// Streak recomputes the streak result from the ritual's full ledger.
func (s *Service) Streak(ctx context.Context, ref string) (StreakResult, error) {
	rit, err := s.FindRitual(ctx, ref)
	if err != nil {
		return StreakResult{}, err
	}
	history, err := s.completions.ListByRitual(ctx, rit.ID)
	if err != nil {
		return StreakResult{}, err
	}
	return ComputeStreak(history)
}
