package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"ritualist/internal/ui"
)

func newSkipCmd() *cobra.Command {
	var dateFlag string
	var clear bool

	cmd := &cobra.Command{
		Use:   "skip <ritual>",
		Short: "Remove a ritual from one day",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("ritual is required")
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

			if clear {
				if err := svc.ClearOverride(ctx, args[0], day); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconLoop+" restored"), args[0], ui.Muted.Render(day.String()))
				return nil
			}
			if err := svc.SetOverride(ctx, args[0], day, true, ""); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconRest+" skipped"), args[0], ui.Muted.Render(day.String()))
			return nil
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "Day to skip (YYYY-MM-DD, default today)")
	cmd.Flags().BoolVar(&clear, "clear", false, "Clear any skip/retime for the day instead")

	return cmd
}
