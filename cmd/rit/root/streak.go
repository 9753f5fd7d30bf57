package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"ritualist/internal/ui"
)

func newStreakCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "streak <ritual>",
		Short: "Show a ritual's streaks and completion rate",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("ritual is required")
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

			rit, err := svc.FindRitual(ctx, args[0])
			if err != nil {
				return err
			}
			res, err := svc.Streak(ctx, rit.ID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconFlame, rit.Name))
			fmt.Fprintln(out, ui.LabelValue("Current streak", res.Current))
			fmt.Fprintln(out, ui.LabelValue("Longest streak", res.Longest))
			fmt.Fprintln(out, ui.LabelValue("Completion rate", fmt.Sprintf("%d%%", res.CompletionRate)))
			return nil
		},
	}

	return cmd
}
