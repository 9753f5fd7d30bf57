package root

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"ritualist/internal/engine"
	"ritualist/internal/schedule"
	"ritualist/internal/ui"
)

func newAddCmd() *cobra.Command {
	var slot string
	var freq string
	var interval int
	var days []int
	var dates []string
	var exclude []string
	var anchor string
	var steps []string

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a ritual",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("name is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			f, err := schedule.ParseFrequency(freq)
			if err != nil {
				return err
			}
			in := engine.CreateRitualInput{
				Name: args[0],
				Time: slot,
				Rule: schedule.RuleConfig{
					Frequency:     f,
					Interval:      interval,
					DaysOfWeek:    days,
					SpecificDates: dates,
					ExcludeDates:  exclude,
					Anchor:        anchor,
				},
			}
			for _, spec := range steps {
				st, err := parseStepSpec(spec)
				if err != nil {
					return err
				}
				in.Steps = append(in.Steps, st)
			}

			res, err := svc.CreateRitual(ctx, in)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconPlus+" added"), args[0], ui.Muted.Render("("+res.RitualID+")"))
			return nil
		},
	}

	cmd.Flags().StringVarP(&slot, "time", "t", "", "Time slot (HH:MM); empty = unscheduled")
	cmd.Flags().StringVarP(&freq, "freq", "f", "daily", "Frequency (daily|weekly|custom|once)")
	cmd.Flags().IntVarP(&interval, "interval", "i", 1, "Repeat interval (weekly/custom; needs --anchor when > 1)")
	cmd.Flags().IntSliceVarP(&days, "days", "d", nil, "Weekdays for weekly rules, 0=Sunday (e.g. -d 1,3,5)")
	cmd.Flags().StringSliceVar(&dates, "date", nil, "Specific dates for custom/once rules (YYYY-MM-DD)")
	cmd.Flags().StringSliceVar(&exclude, "exclude", nil, "Dates the ritual is never due (YYYY-MM-DD)")
	cmd.Flags().StringVar(&anchor, "anchor", "", "Anchor date for interval rules (YYYY-MM-DD)")
	cmd.Flags().StringSliceVarP(&steps, "step", "s", nil, "Step spec: name[/exercise/measurement]; prefix ~ for optional")

	return cmd
}

// parseStepSpec parses "name", "name/exercise/measurement" or
// "~name/exercise/measurement" (optional step).
func parseStepSpec(spec string) (engine.StepInput, error) {
	required := true
	if strings.HasPrefix(spec, "~") {
		required = false
		spec = spec[1:]
	}
	parts := strings.Split(spec, "/")
	st := engine.StepInput{Name: strings.TrimSpace(parts[0]), Required: required}
	switch len(parts) {
	case 1:
	case 3:
		m, err := engine.ParseMeasurement(strings.TrimSpace(parts[2]))
		if err != nil {
			return engine.StepInput{}, fmt.Errorf("step %q: %w", spec, err)
		}
		st.Exercise = strings.TrimSpace(parts[1])
		st.Measurement = m
	default:
		return engine.StepInput{}, fmt.Errorf("step %q: want name or name/exercise/measurement", spec)
	}
	return st, nil
}
