package engine

import (
	"errors"
	"fmt"
	"strings"
)

// Measurement is how a workout-style step is quantified.
type Measurement string

const (
	MeasurementNone   Measurement = ""
	MeasurementWeight Measurement = "weight"
	MeasurementTime   Measurement = "time"
	MeasurementReps   Measurement = "reps"
)

func (m Measurement) IsValid() bool {
	switch m {
	case MeasurementNone, MeasurementWeight, MeasurementTime, MeasurementReps:
		return true
	default:
		return false
	}
}

func ParseMeasurement(input string) (Measurement, error) {
	m := Measurement(strings.TrimSpace(strings.ToLower(input)))
	if !m.IsValid() {
		return "", fmt.Errorf("invalid measurement: %q", input)
	}
	return m, nil
}

// StepInput describes one step of a ritual at definition time.
type StepInput struct {
	Name        string
	Exercise    string // underlying exercise for workout steps; empty otherwise
	Measurement Measurement
	Required    bool
}

// ValidateSteps checks a ritual's step list at definition time. An exercise
// referenced with two different measurement types within one ritual is
// rejected; the conflict would make the per-step history unaggregatable.
func ValidateSteps(steps []StepInput) error {
	seen := map[string]Measurement{}
	for _, st := range steps {
		if strings.TrimSpace(st.Name) == "" {
			return errors.New("step name is required")
		}
		if !st.Measurement.IsValid() {
			return fmt.Errorf("step %q: invalid measurement %q", st.Name, st.Measurement)
		}
		if st.Exercise == "" {
			continue
		}
		key := strings.ToLower(strings.TrimSpace(st.Exercise))
		prev, ok := seen[key]
		if !ok {
			seen[key] = st.Measurement
			continue
		}
		if prev != st.Measurement {
			return ConflictingMeasurementTypeError{Exercise: st.Exercise, First: prev, Second: st.Measurement}
		}
	}
	return nil
}

// StepOutcome is one step's result when a ritual occurrence is logged.
type StepOutcome struct {
	Required bool
	Done     bool
}

// CompletionFromSteps derives the occurrence-level outcome from per-step
// results: whether the occurrence counts as completed, and the fraction of
// required steps done. When no step is marked required, every step counts.
func CompletionFromSteps(outcomes []StepOutcome) (bool, float64) {
	if len(outcomes) == 0 {
		return false, 0
	}

	anyRequired := false
	for _, o := range outcomes {
		if o.Required {
			anyRequired = true
			break
		}
	}

	total, done := 0, 0
	for _, o := range outcomes {
		if anyRequired && !o.Required {
			continue
		}
		total++
		if o.Done {
			done++
		}
	}

	fraction := float64(done) / float64(total)
	return done == total, fraction
}
