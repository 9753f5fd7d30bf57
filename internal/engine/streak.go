package engine

import (
	"fmt"
	"math"

	"ritualist/internal/schedule"
	"ritualist/internal/storage"
)

// StreakResult is derived from a ritual's completion ledger; it is never
// stored and is recomputed on every query.
type StreakResult struct {
	Current        int
	Longest        int
	CompletionRate int // 0-100
}

// ComputeStreak derives streak lengths and the completion rate from an
// ascending-by-date ledger for one ritual. A missing date in the sequence is
// a break, the same as an explicit miss: the ledger must be dense over the
// window being evaluated, or the gap counts against the streak.
func ComputeStreak(history []storage.Completion) (StreakResult, error) {
	if len(history) == 0 {
		return StreakResult{}, nil
	}

	dates := make([]schedule.Date, len(history))
	for i, entry := range history {
		d, err := schedule.ParseDate(entry.Date)
		if err != nil {
			return StreakResult{}, err
		}
		if i > 0 && !dates[i-1].Before(d) {
			return StreakResult{}, fmt.Errorf("completion history out of order at %s", entry.Date)
		}
		dates[i] = d
	}

	run := 0
	longest := 0
	completed := 0
	for i, entry := range history {
		if i > 0 && schedule.DaysBetween(dates[i-1], dates[i]) != 1 {
			run = 0
		}
		if entry.Completed {
			run++
			completed++
			if run > longest {
				longest = run
			}
		} else {
			run = 0
		}
	}

	current := 0
	for i := len(history) - 1; i >= 0; i-- {
		if !history[i].Completed {
			break
		}
		if i < len(history)-1 && schedule.DaysBetween(dates[i], dates[i+1]) != 1 {
			break
		}
		current++
	}

	rate := int(math.Round(100 * float64(completed) / float64(len(history))))
	return StreakResult{Current: current, Longest: longest, CompletionRate: rate}, nil
}
