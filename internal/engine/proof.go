package engine

import "ritualist/internal/storage"

const (
	// Per-day multipliers for the compounding proof score: +1% for a fully
	// completed day, -1% for a day with any miss.
	proofGain  = 1.01
	proofDecay = 0.99
)

// ApplyDailyOutcome advances the proof score and streak by exactly one
// elapsed day. The fold is order-sensitive: replaying days out of date order
// produces a different (wrong) score, so callers pass either the full
// ordered history (FoldOutcomes) or the last persisted pair plus today's
// single outcome.
//
// A day with a miss resets the streak to 1, not 0: the miss day still counts
// as day one of the next streak.
func ApplyDailyOutcome(prevScore float64, prevStreak int, allDueCompleted bool) (float64, int) {
	if allDueCompleted {
		return prevScore * proofGain, prevStreak + 1
	}
	return prevScore * proofDecay, 1
}

// FoldOutcomes replays an ordered day-outcome sequence from the new-user
// state (score 1.0, streak 0).
func FoldOutcomes(outcomes []bool) (float64, int) {
	score := storage.InitialScore
	streak := 0
	for _, completed := range outcomes {
		score, streak = ApplyDailyOutcome(score, streak, completed)
	}
	return score, streak
}

// ProofTier buckets a score into a qualitative label. Presentation only;
// the engine itself deals in the numeric score.
func ProofTier(score float64) string {
	switch {
	case score >= 2.0:
		return "ironclad"
	case score >= 1.5:
		return "proven"
	case score >= 1.2:
		return "steady"
	case score >= 1.1:
		return "warming up"
	default:
		return "getting started"
	}
}
