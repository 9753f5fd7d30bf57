package schedule

import (
	"sort"

	"go.uber.org/zap"
)

// Override is a persisted per-day adjustment to a single ritual. It can
// suppress an occurrence or move its time slot; it never makes a ritual due
// on a date its rule does not already produce.
type Override struct {
	Removed bool
	Time    string // HH:MM; empty keeps the ritual's default slot
}

// Candidate is one ritual as handed to the resolver: the raw recurrence
// config straight from storage, the default time slot, and any override for
// the target date.
type Candidate struct {
	RitualID string
	Config   RuleConfig
	Time     string // default HH:MM; empty = unscheduled
	Override *Override
}

// Occurrence is a ritual resolved as due on a specific date. Ephemeral:
// rebuilt on every schedule query, never persisted.
type Occurrence struct {
	RitualID     string
	Time         string   // HH:MM; empty = unscheduled
	ConflictWith []string // other ritual IDs sharing the same slot
}

// Resolver turns a set of candidates into the ordered occurrence list for
// one calendar date.
type Resolver struct {
	log *zap.Logger
}

func NewResolver(log *zap.Logger) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{log: log}
}

// Resolve evaluates every candidate's rule against day and applies per-day
// overrides. A candidate whose config fails validation has no defined due
// state until revalidated, so it is skipped (logged) without aborting the
// rest of the day. Output is ordered by time slot ascending, unscheduled
// occurrences last in input order.
func (r *Resolver) Resolve(candidates []Candidate, day Date) []Occurrence {
	var out []Occurrence
	for _, c := range candidates {
		rule, err := NewRule(c.Config)
		if err != nil {
			r.log.Warn("skipping ritual with invalid recurrence config",
				zap.String("ritual_id", c.RitualID),
				zap.Error(err))
			continue
		}
		if !rule.IsDueOn(day) {
			continue
		}
		if c.Override != nil && c.Override.Removed {
			continue
		}
		slot := c.Time
		if c.Override != nil && c.Override.Time != "" {
			slot = c.Override.Time
		}
		out = append(out, Occurrence{RitualID: c.RitualID, Time: slot})
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Time, out[j].Time
		if a == "" || b == "" {
			return a != "" && b == ""
		}
		return a < b
	})
	return out
}
