package engine

import (
	"context"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"ritualist/internal/schedule"
)

// importFile is the YAML shape accepted by `rit import`.
type importFile struct {
	Rituals []importRitual `yaml:"rituals"`
}

type importRitual struct {
	Name      string       `yaml:"name"`
	Time      string       `yaml:"time"`
	Frequency string       `yaml:"frequency"`
	Interval  int          `yaml:"interval"`
	Days      []int        `yaml:"days"`
	Dates     []string     `yaml:"dates"`
	Exclude   []string     `yaml:"exclude"`
	Anchor    string       `yaml:"anchor"`
	Steps     []importStep `yaml:"steps"`
}

type importStep struct {
	Name        string `yaml:"name"`
	Exercise    string `yaml:"exercise"`
	Measurement string `yaml:"measurement"`
	Required    *bool  `yaml:"required"` // default true
}

// ImportFailure is one ritual that could not be imported.
type ImportFailure struct {
	Name string
	Err  error
}

type ImportResult struct {
	Created int
	Failed  []ImportFailure
}

// ImportRituals reads ritual definitions from YAML and creates each one.
// Validation failures are per-ritual: one bad definition does not abort the
// rest of the file.
func (s *Service) ImportRituals(ctx context.Context, r io.Reader) (*ImportResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read import file: %w", err)
	}
	var file importFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse import file: %w", err)
	}

	res := &ImportResult{}
	for _, def := range file.Rituals {
		in, err := def.toInput()
		if err == nil {
			_, err = s.CreateRitual(ctx, in)
		}
		if err != nil {
			res.Failed = append(res.Failed, ImportFailure{Name: def.Name, Err: err})
			continue
		}
		res.Created++
	}
	return res, nil
}

func (d importRitual) toInput() (CreateRitualInput, error) {
	freq, err := schedule.ParseFrequency(d.Frequency)
	if err != nil {
		return CreateRitualInput{}, err
	}
	interval := d.Interval
	if interval == 0 {
		interval = 1
	}

	in := CreateRitualInput{
		Name: d.Name,
		Time: d.Time,
		Rule: schedule.RuleConfig{
			Frequency:     freq,
			Interval:      interval,
			DaysOfWeek:    d.Days,
			SpecificDates: d.Dates,
			ExcludeDates:  d.Exclude,
			Anchor:        d.Anchor,
		},
	}
	for _, st := range d.Steps {
		m, err := ParseMeasurement(st.Measurement)
		if err != nil {
			return CreateRitualInput{}, fmt.Errorf("step %q: %w", st.Name, err)
		}
		required := true
		if st.Required != nil {
			required = *st.Required
		}
		in.Steps = append(in.Steps, StepInput{
			Name:        st.Name,
			Exercise:    st.Exercise,
			Measurement: m,
			Required:    required,
		})
	}
	return in, nil
}
