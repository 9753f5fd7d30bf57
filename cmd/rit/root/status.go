package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"ritualist/internal/engine"
	"ritualist/internal/schedule"
	"ritualist/internal/ui"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show profile score, streak and active rituals",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cfg, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			prof, err := svc.ProfileRepo().GetOrCreate(ctx, cfg.ProfileKey)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconSparkle, "Profile "+prof.Key))
			fmt.Fprintln(out, ui.LabelValue("Proof score", fmt.Sprintf("%.4f (%s)", prof.Score, engine.ProofTier(prof.Score))))
			fmt.Fprintln(out, ui.LabelValue("Streak", fmt.Sprintf("%s %d", ui.IconFlame, prof.Streak)))
			if prof.LastClosed != "" {
				fmt.Fprintln(out, ui.LabelValue("Last closed", prof.LastClosed))
			} else {
				fmt.Fprintln(out, ui.LabelValue("Last closed", ui.Muted.Render("never")))
			}
			fmt.Fprintln(out, "")

			rituals, err := svc.RitualRepo().ListActive(ctx)
			if err != nil {
				return err
			}
			if len(rituals) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("no rituals yet, try `rit add`"))
				return nil
			}
			fmt.Fprintln(out, ui.H2.Render(ui.IconRitual+" Rituals"))
			for _, rit := range rituals {
				cfg := schedule.RuleConfig{
					Frequency:     schedule.Frequency(rit.Frequency),
					Interval:      rit.Interval,
					DaysOfWeek:    rit.DaysOfWeek,
					SpecificDates: rit.SpecificDates,
					ExcludeDates:  rit.ExcludeDates,
					Anchor:        rit.Anchor,
				}
				desc := rit.Frequency
				if rule, err := schedule.NewRule(cfg); err == nil {
					desc = rule.Describe()
				}
				fmt.Fprintf(out, "- %s  %s %s\n", ui.Slot(rit.Time), rit.Name, ui.Muted.Render("("+desc+")"))
			}
			return nil
		},
	}

	return cmd
}
