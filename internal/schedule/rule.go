package schedule

import (
	"fmt"
	"sort"
	"strings"
)

type Frequency string

const (
	FrequencyDaily  Frequency = "daily"
	FrequencyWeekly Frequency = "weekly"
	FrequencyCustom Frequency = "custom"
	FrequencyOnce   Frequency = "once"
)

func (f Frequency) IsValid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyCustom, FrequencyOnce:
		return true
	default:
		return false
	}
}

func ParseFrequency(input string) (Frequency, error) {
	s := strings.TrimSpace(strings.ToLower(input))
	f := Frequency(s)
	if !f.IsValid() {
		return "", fmt.Errorf("invalid frequency: %q", input)
	}
	return f, nil
}

// InvalidFrequencyConfigError is a construction-time validation failure: the
// field combination does not match the declared frequency type. A rule that
// fails construction is never evaluated.
type InvalidFrequencyConfigError struct {
	Frequency Frequency
	Reason    string
}

func (e InvalidFrequencyConfigError) Error() string {
	return fmt.Sprintf("invalid %s rule: %s", e.Frequency, e.Reason)
}

// RuleConfig is the raw, unvalidated recurrence description as stored or
// supplied by a caller. NewRule turns it into an evaluable Rule.
type RuleConfig struct {
	Frequency     Frequency
	Interval      int
	DaysOfWeek    []int    // Sunday=0; Weekly only
	SpecificDates []string // YYYY-MM-DD; Custom list form, or the single Once date
	ExcludeDates  []string // force "not due" regardless of type
	Anchor        string   // YYYY-MM-DD; required for interval-stepped forms
}

// Rule is a validated recurrence rule. Exactly the fields legal for its
// frequency type are populated.
type Rule struct {
	freq      Frequency
	interval  int
	days      [7]bool
	dates     []Date
	dateSet   map[string]bool
	excludes  map[string]bool
	anchor    Date
	hasAnchor bool
}

// NewRule validates cfg against the per-type invariant table and returns an
// evaluable rule. Violations return InvalidFrequencyConfigError; malformed
// date strings return AmbiguousDateError.
func NewRule(cfg RuleConfig) (Rule, error) {
	if !cfg.Frequency.IsValid() {
		return Rule{}, InvalidFrequencyConfigError{Frequency: cfg.Frequency, Reason: "unknown frequency type"}
	}
	fail := func(reason string) (Rule, error) {
		return Rule{}, InvalidFrequencyConfigError{Frequency: cfg.Frequency, Reason: reason}
	}

	if cfg.Interval < 1 {
		return fail("interval must be a positive integer")
	}

	r := Rule{
		freq:     cfg.Frequency,
		interval: cfg.Interval,
		dateSet:  map[string]bool{},
		excludes: map[string]bool{},
	}

	for _, s := range cfg.ExcludeDates {
		d, err := ParseDate(s)
		if err != nil {
			return Rule{}, err
		}
		r.excludes[d.String()] = true
	}
	for _, s := range cfg.SpecificDates {
		d, err := ParseDate(s)
		if err != nil {
			return Rule{}, err
		}
		if !r.dateSet[d.String()] {
			r.dateSet[d.String()] = true
			r.dates = append(r.dates, d)
		}
	}
	sort.Slice(r.dates, func(i, j int) bool { return r.dates[i].Before(r.dates[j]) })

	if cfg.Anchor != "" {
		d, err := ParseDate(cfg.Anchor)
		if err != nil {
			return Rule{}, err
		}
		r.anchor = d
		r.hasAnchor = true
	}

	switch cfg.Frequency {
	case FrequencyDaily:
		// Daily with interval > 1 is dead configuration space; "every N days"
		// is the Custom interval form.
		if cfg.Interval != 1 {
			return fail("interval must be 1; use a custom rule for every-N-days")
		}
		if len(cfg.DaysOfWeek) > 0 {
			return fail("days_of_week is not valid for a daily rule")
		}
		if len(r.dates) > 0 {
			return fail("specific_dates is not valid for a daily rule")
		}

	case FrequencyWeekly:
		if len(cfg.DaysOfWeek) == 0 {
			return fail("days_of_week must be non-empty")
		}
		for _, wd := range cfg.DaysOfWeek {
			if wd < 0 || wd > 6 {
				return fail(fmt.Sprintf("day of week %d out of range 0-6", wd))
			}
			r.days[wd] = true
		}
		if len(r.dates) > 0 {
			return fail("specific_dates is not valid for a weekly rule")
		}
		if cfg.Interval > 1 && !r.hasAnchor {
			return fail("interval-stepped weekly rule requires an anchor date")
		}

	case FrequencyCustom:
		if len(cfg.DaysOfWeek) > 0 {
			return fail("days_of_week is not valid for a custom rule")
		}
		if len(r.dates) > 0 {
			if cfg.Interval != 1 {
				return fail("interval does not apply to a specific-dates rule")
			}
		} else {
			if !r.hasAnchor {
				return fail("custom rule needs specific_dates or an interval with an anchor date")
			}
		}

	case FrequencyOnce:
		if len(r.dates) != 1 {
			return fail("once rule needs exactly one date")
		}
		if cfg.Interval != 1 {
			return fail("interval must be 1 for a once rule")
		}
		if len(cfg.DaysOfWeek) > 0 {
			return fail("days_of_week is not valid for a once rule")
		}
	}

	return r, nil
}

func (r Rule) Frequency() Frequency { return r.freq }

// IsDueOn reports whether the rule produces an occurrence on the given date.
// Exclusion dates win over every frequency type.
func (r Rule) IsDueOn(d Date) bool {
	if r.excludes[d.String()] {
		return false
	}

	switch r.freq {
	case FrequencyOnce:
		return d.Equal(r.dates[0])

	case FrequencyDaily:
		return true

	case FrequencyWeekly:
		if !r.days[d.Weekday()] {
			return false
		}
		if r.interval > 1 {
			weeks := WeeksBetween(r.anchor, d)
			return weeks >= 0 && weeks%r.interval == 0
		}
		return true

	case FrequencyCustom:
		if len(r.dates) > 0 {
			return r.dateSet[d.String()]
		}
		days := DaysBetween(r.anchor, d)
		return days >= 0 && days%r.interval == 0
	}

	return false
}

// Describe renders a short human summary, e.g. "weekly on Mon/Wed/Fri".
func (r Rule) Describe() string {
	switch r.freq {
	case FrequencyDaily:
		return "daily"
	case FrequencyOnce:
		return "once on " + r.dates[0].String()
	case FrequencyWeekly:
		names := []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
		var picked []string
		for wd := 0; wd < 7; wd++ {
			if r.days[wd] {
				picked = append(picked, names[wd])
			}
		}
		s := "weekly on " + strings.Join(picked, "/")
		if r.interval > 1 {
			s = fmt.Sprintf("every %d weeks on %s", r.interval, strings.Join(picked, "/"))
		}
		return s
	case FrequencyCustom:
		if len(r.dates) > 0 {
			return fmt.Sprintf("on %d specific dates", len(r.dates))
		}
		return fmt.Sprintf("every %d days from %s", r.interval, r.anchor)
	}
	return string(r.freq)
}
