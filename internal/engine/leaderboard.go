package engine

import (
	"sort"
	"time"
)

// Standing is one profile's leaderboard entry.
type Standing struct {
	Key      string
	Score    float64
	Streak   int
	JoinedAt time.Time
}

// ProofGroup is the cohort of profiles sharing a current streak length.
type ProofGroup struct {
	Streak  int
	Members []Standing
}

// GroupStandings buckets standings into proof groups by current streak,
// longest streak first. Within a group, members rank by score descending;
// ties break by earlier join date, then by key, so the ordering is stable
// and deterministic rather than an artifact of map iteration.
func GroupStandings(standings []Standing) []ProofGroup {
	byStreak := map[int][]Standing{}
	for _, s := range standings {
		byStreak[s.Streak] = append(byStreak[s.Streak], s)
	}

	groups := make([]ProofGroup, 0, len(byStreak))
	for streak, members := range byStreak {
		sort.Slice(members, func(i, j int) bool {
			a, b := members[i], members[j]
			if a.Score != b.Score {
				return a.Score > b.Score
			}
			if !a.JoinedAt.Equal(b.JoinedAt) {
				return a.JoinedAt.Before(b.JoinedAt)
			}
			return a.Key < b.Key
		})
		groups = append(groups, ProofGroup{Streak: streak, Members: members})
	}

	sort.Slice(groups, func(i, j int) bool { return groups[i].Streak > groups[j].Streak })
	return groups
}
