package engine

import (
	"context"

	"ritualist/internal/schedule"
	"ritualist/internal/storage"
)

// DaySchedule is the resolved view of one calendar date: the ordered due
// occurrences with conflict annotations. Ephemeral; recomputed per query.
type DaySchedule struct {
	Date        schedule.Date
	Occurrences []schedule.Occurrence
	Conflicts   []schedule.ConflictGroup
	Rituals     map[string]storage.Ritual // by ID, for rendering
}

// ResolveDay loads the active rituals and the date's persisted overrides,
// evaluates every recurrence rule against the one normalized date, and runs
// conflict detection over the result.
func (s *Service) ResolveDay(ctx context.Context, day schedule.Date) (*DaySchedule, error) {
	rituals, err := s.rituals.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	overrides, err := s.overrides.ListByDate(ctx, day.String())
	if err != nil {
		return nil, err
	}

	byRitual := map[string]*schedule.Override{}
	for _, o := range overrides {
		byRitual[o.RitualID] = &schedule.Override{Removed: o.Removed, Time: o.Time}
	}

	byID := make(map[string]storage.Ritual, len(rituals))
	candidates := make([]schedule.Candidate, 0, len(rituals))
	for _, rit := range rituals {
		byID[rit.ID] = rit
		candidates = append(candidates, schedule.Candidate{
			RitualID: rit.ID,
			Config:   ruleConfigOf(rit),
			Time:     rit.Time,
			Override: byRitual[rit.ID],
		})
	}

	occs := s.resolver.Resolve(candidates, day)
	occs, groups := schedule.AnnotateConflicts(occs)

	return &DaySchedule{Date: day, Occurrences: occs, Conflicts: groups, Rituals: byID}, nil
}

// SetOverride persists a per-day removal or retiming for one ritual.
func (s *Service) SetOverride(ctx context.Context, ref string, day schedule.Date, removed bool, slot string) error {
	rit, err := s.FindRitual(ctx, ref)
	if err != nil {
		return err
	}
	if slot != "" {
		if err := schedule.ValidateClock(slot); err != nil {
			return err
		}
	}
	return s.overrides.Upsert(ctx, storage.DayOverride{
		RitualID: rit.ID,
		Date:     day.String(),
		Removed:  removed,
		Time:     slot,
	})
}

// ClearOverride removes any per-day adjustment for one ritual.
func (s *Service) ClearOverride(ctx context.Context, ref string, day schedule.Date) error {
	rit, err := s.FindRitual(ctx, ref)
	if err != nil {
		return err
	}
	return s.overrides.Delete(ctx, rit.ID, day.String())
}

func ruleConfigOf(rit storage.Ritual) schedule.RuleConfig {
	return schedule.RuleConfig{
		Frequency:     schedule.Frequency(rit.Frequency),
		Interval:      rit.Interval,
		DaysOfWeek:    rit.DaysOfWeek,
		SpecificDates: rit.SpecificDates,
		ExcludeDates:  rit.ExcludeDates,
		Anchor:        rit.Anchor,
	}
}
