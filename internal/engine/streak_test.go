package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ritualist/internal/storage"
)

func entry(date string, completed bool) storage.Completion {
	return storage.Completion{RitualID: "r1", Date: date, Completed: completed}
}

func TestComputeStreak_EmptyHistory(t *testing.T) {
	res, err := ComputeStreak(nil)
	require.NoError(t, err)
	assert.Equal(t, StreakResult{}, res)
}

func TestComputeStreak_SingleCompletion(t *testing.T) {
	res, err := ComputeStreak([]storage.Completion{entry("2024-01-01", true)})
	require.NoError(t, err)
	assert.Equal(t, StreakResult{Current: 1, Longest: 1, CompletionRate: 100}, res)
}

func TestComputeStreak_MixedHistory(t *testing.T) {
	// T T T F T T, oldest to newest, dense dates.
	history := []storage.Completion{
		entry("2024-01-01", true),
		entry("2024-01-02", true),
		entry("2024-01-03", true),
		entry("2024-01-04", false),
		entry("2024-01-05", true),
		entry("2024-01-06", true),
	}

	res, err := ComputeStreak(history)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Current)
	assert.Equal(t, 3, res.Longest)
	assert.Equal(t, 83, res.CompletionRate, "round(100*5/6)")
}

func TestComputeStreak_GapCountsAsMiss(t *testing.T) {
	// 2024-01-03 is missing entirely: the gap breaks both scans the same
	// way an explicit miss would.
	history := []storage.Completion{
		entry("2024-01-01", true),
		entry("2024-01-02", true),
		entry("2024-01-04", true),
		entry("2024-01-05", true),
		entry("2024-01-06", true),
	}

	res, err := ComputeStreak(history)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Current, "streak restarts after the gap")
	assert.Equal(t, 3, res.Longest)
	assert.Equal(t, 100, res.CompletionRate, "rate only counts recorded entries")
}

func TestComputeStreak_EndsOnMiss(t *testing.T) {
	history := []storage.Completion{
		entry("2024-01-01", true),
		entry("2024-01-02", false),
	}

	res, err := ComputeStreak(history)
	require.NoError(t, err)
	assert.Equal(t, 0, res.Current)
	assert.Equal(t, 1, res.Longest)
	assert.Equal(t, 50, res.CompletionRate)
}

func TestComputeStreak_RejectsUnorderedHistory(t *testing.T) {
	history := []storage.Completion{
		entry("2024-01-02", true),
		entry("2024-01-01", true),
	}
	_, err := ComputeStreak(history)
	require.Error(t, err)
}

func TestComputeStreak_BadDate(t *testing.T) {
	_, err := ComputeStreak([]storage.Completion{entry("01-01-2024", true)})
	require.Error(t, err)
}
