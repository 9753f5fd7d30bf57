package root

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"ritualist/internal/ui"
)

func newTodayCmd() *cobra.Command {
	var dateFlag string

	cmd := &cobra.Command{
		Use:   "today",
		Short: "Show the rituals due on a day",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cfg, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			day, err := dayFlag(cfg, dateFlag)
			if err != nil {
				return err
			}
			sched, err := svc.ResolveDay(ctx, day)
			if err != nil {
				return err
			}
			entries, err := svc.CompletionRepo().ListByDate(ctx, day.String())
			if err != nil {
				return err
			}
			doneSet := map[string]bool{}
			for _, e := range entries {
				if e.Completed {
					doneSet[e.RitualID] = true
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconRitual, "Rituals for "+day.String()))
			if len(sched.Occurrences) == 0 {
				fmt.Fprintln(out, ui.Muted.Render(ui.IconRest+" nothing due, rest day"))
				return nil
			}
			for _, occ := range sched.Occurrences {
				mark := ui.IconMiss
				if doneSet[occ.RitualID] {
					mark = ui.IconDone
				}
				name := occ.RitualID
				if rit, ok := sched.Rituals[occ.RitualID]; ok {
					name = rit.Name
				}
				line := fmt.Sprintf("%s %s  %s", mark, ui.Slot(occ.Time), name)
				if len(occ.ConflictWith) > 0 {
					line += "  " + ui.Warn.Render(ui.IconWarn+" conflict")
				}
				fmt.Fprintln(out, line)
			}
			for _, g := range sched.Conflicts {
				names := make([]string, 0, len(g.RitualIDs))
				for _, id := range g.RitualIDs {
					if rit, ok := sched.Rituals[id]; ok {
						names = append(names, rit.Name)
					} else {
						names = append(names, id)
					}
				}
				fmt.Fprintln(out, ui.Warn.Render(fmt.Sprintf("%s %s: %s overlap", ui.IconWarn, g.Time, strings.Join(names, ", "))))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "Day to show (YYYY-MM-DD, default today)")

	return cmd
}
