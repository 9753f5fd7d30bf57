package engine

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"ritualist/internal/schedule"
	"ritualist/internal/storage"
)

// CreateRitualInput describes a new ritual. The rule config and step list
// are validated before anything is written; a ritual that fails validation
// is never stored and never evaluated.
type CreateRitualInput struct {
	Name  string
	Time  string // default HH:MM slot; empty = unscheduled
	Rule  schedule.RuleConfig
	Steps []StepInput
}

type CreateResult struct {
	RitualID string
}

func (s *Service) CreateRitual(ctx context.Context, in CreateRitualInput) (*CreateResult, error) {
	name, err := normalizeName(in.Name)
	if err != nil {
		return nil, err
	}
	if in.Time != "" {
		if err := schedule.ValidateClock(in.Time); err != nil {
			return nil, err
		}
	}
	if _, err := schedule.NewRule(in.Rule); err != nil {
		return nil, err
	}
	if err := ValidateSteps(in.Steps); err != nil {
		return nil, err
	}

	rit := storage.Ritual{
		ID:            uuid.NewString(),
		Name:          name,
		Time:          in.Time,
		Frequency:     string(in.Rule.Frequency),
		Interval:      in.Rule.Interval,
		DaysOfWeek:    in.Rule.DaysOfWeek,
		SpecificDates: in.Rule.SpecificDates,
		ExcludeDates:  in.Rule.ExcludeDates,
		Anchor:        in.Rule.Anchor,
	}
	for i, st := range in.Steps {
		rit.Steps = append(rit.Steps, storage.Step{
			ID:          uuid.NewString(),
			RitualID:    rit.ID,
			Position:    i,
			Name:        st.Name,
			Exercise:    st.Exercise,
			Measurement: string(st.Measurement),
			Required:    st.Required,
		})
	}

	if err := s.rituals.Insert(ctx, rit); err != nil {
		return nil, err
	}
	return &CreateResult{RitualID: rit.ID}, nil
}

// FindRitual resolves a CLI reference: exact ID first, then name.
func (s *Service) FindRitual(ctx context.Context, ref string) (*storage.Ritual, error) {
	rit, err := s.rituals.Get(ctx, ref)
	if err != nil {
		return nil, err
	}
	if rit == nil {
		rit, err = s.rituals.FindByName(ctx, ref)
		if err != nil {
			return nil, err
		}
	}
	if rit == nil {
		return nil, fmt.Errorf("ritual %q not found", ref)
	}
	return rit, nil
}
