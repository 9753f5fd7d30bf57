package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func joined(day int) time.Time {
	return time.Date(2024, 1, day, 0, 0, 0, 0, time.UTC)
}

func TestGroupStandings_ByStreakThenScore(t *testing.T) {
	groups := GroupStandings([]Standing{
		{Key: "ana", Score: 1.20, Streak: 5, JoinedAt: joined(1)},
		{Key: "bo", Score: 1.45, Streak: 5, JoinedAt: joined(2)},
		{Key: "cal", Score: 1.05, Streak: 2, JoinedAt: joined(3)},
	})

	require.Len(t, groups, 2)
	assert.Equal(t, 5, groups[0].Streak, "longest streak group first")
	require.Len(t, groups[0].Members, 2)
	assert.Equal(t, "bo", groups[0].Members[0].Key, "higher score ranks first within a group")
	assert.Equal(t, "ana", groups[0].Members[1].Key)
	assert.Equal(t, 2, groups[1].Streak)
}

func TestGroupStandings_TieBrokenByEarlierJoinDate(t *testing.T) {
	groups := GroupStandings([]Standing{
		{Key: "late", Score: 1.30, Streak: 3, JoinedAt: joined(20)},
		{Key: "early", Score: 1.30, Streak: 3, JoinedAt: joined(2)},
	})

	require.Len(t, groups, 1)
	assert.Equal(t, "early", groups[0].Members[0].Key)
	assert.Equal(t, "late", groups[0].Members[1].Key)
}

func TestGroupStandings_Deterministic(t *testing.T) {
	standings := []Standing{
		{Key: "b", Score: 1.1, Streak: 1, JoinedAt: joined(1)},
		{Key: "a", Score: 1.1, Streak: 1, JoinedAt: joined(1)},
	}

	first := GroupStandings(standings)
	for i := 0; i < 10; i++ {
		again := GroupStandings(standings)
		assert.Equal(t, first, again)
	}
	assert.Equal(t, "a", first[0].Members[0].Key, "full tie falls back to key order")
}
