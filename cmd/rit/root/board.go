package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"ritualist/internal/ui"
)

func newBoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Show the proof leaderboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			groups, err := svc.Standings(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconTrophy, "Proof Board"))
			if len(groups) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("no profiles yet"))
				return nil
			}
			for _, g := range groups {
				fmt.Fprintln(out, ui.H2.Render(fmt.Sprintf("%s streak %d", ui.IconFlame, g.Streak)))
				for i, m := range g.Members {
					fmt.Fprintf(out, "%2d. %s  %s\n", i+1, ui.Key.Render(m.Key), ui.Gold.Render(fmt.Sprintf("%.4f", m.Score)))
				}
			}
			return nil
		},
	}

	return cmd
}
