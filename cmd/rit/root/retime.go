package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"ritualist/internal/ui"
)

func newRetimeCmd() *cobra.Command {
	var dateFlag string

	cmd := &cobra.Command{
		Use:   "retime <ritual> <HH:MM>",
		Short: "Move a ritual's time slot for one day",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("ritual and time are required")
			}
			return nil
		},
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
			if err := svc.SetOverride(ctx, args[0], day, false, args[1]); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconClock+" retimed"), args[0], "→", ui.Key.Render(args[1]), ui.Muted.Render(day.String()))
			return nil
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "Day to retime (YYYY-MM-DD, default today)")

	return cmd
}
