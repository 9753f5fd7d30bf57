package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"ritualist/internal/ui"
)

func newCloseCmd() *cobra.Command {
	var dateFlag string

	cmd := &cobra.Command{
		Use:   "close",
		Short: "Close a day and fold it into the proof score",
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
			res, err := svc.CloseDay(ctx, day)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconScroll, "Closed "+res.Date.String()))
			if res.DueCount == 0 {
				fmt.Fprintln(out, ui.Muted.Render(ui.IconRest+" rest day, score unchanged"))
			} else if res.AllCompleted {
				fmt.Fprintf(out, "%s all %d rituals completed\n", ui.Good.Render(ui.IconDone), res.DueCount)
			} else {
				fmt.Fprintf(out, "%s %d of %d completed\n", ui.Warn.Render(ui.IconWarn), res.DoneCount, res.DueCount)
			}
			fmt.Fprintln(out, ui.LabelValue("Proof score", fmt.Sprintf("%.4f (%s)", res.Score, res.Tier)))
			fmt.Fprintln(out, ui.LabelValue("Streak", fmt.Sprintf("%s %d", ui.IconFlame, res.Streak)))
			return nil
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "Day to close (YYYY-MM-DD, default today)")

	return cmd
}
