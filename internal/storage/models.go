package storage

import "time"

// Ritual is a stored recurring routine. The recurrence fields mirror
// schedule.RuleConfig; they are validated on write and revalidated on every
// schedule resolution.
type Ritual struct {
	ID            string
	Name          string
	Time          string // default HH:MM slot; empty = unscheduled
	Frequency     string
	Interval      int
	DaysOfWeek    []int
	SpecificDates []string
	ExcludeDates  []string
	Anchor        string
	CreatedAt     time.Time
	Archived      bool
	Steps         []Step
}

// Step is one ordered step of a ritual. Exercise/Measurement are set for
// workout-style steps only.
type Step struct {
	ID          string
	RitualID    string
	Position    int
	Name        string
	Exercise    string
	Measurement string
	Required    bool
}

// DayOverride is a persisted per-day adjustment: remove a ritual from one
// date, or move its time slot for that date only.
type DayOverride struct {
	RitualID string
	Date     string // YYYY-MM-DD
	Removed  bool
	Time     string // HH:MM; empty keeps the default slot
}

// Completion is one ledger entry: did the ritual happen on that date.
// At most one row exists per (ritual_id, date); writes are upserts.
type Completion struct {
	RitualID     string
	Date         string // YYYY-MM-DD
	Completed    bool
	StepFraction *float64 // fraction of required steps done, when tracked per step
	RecordedAt   time.Time
}

// Profile carries the derived consistency state for one user profile: the
// compounding proof score, the current all-rituals streak, and the last
// calendar date folded into them.
type Profile struct {
	Key        string
	Score      float64
	Streak     int
	JoinedAt   time.Time
	LastClosed string // YYYY-MM-DD of the last closed day; empty if none
}
