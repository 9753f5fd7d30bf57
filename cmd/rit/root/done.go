package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"ritualist/internal/engine"
	"ritualist/internal/ui"
)

func newDoneCmd() *cobra.Command {
	var dateFlag string
	var missed bool

	cmd := &cobra.Command{
		Use:   "done <ritual>...",
		Short: "Record completions for a day",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("at least one ritual is required")
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

			items := make([]engine.CompletionInput, 0, len(args))
			for _, ref := range args {
				items = append(items, engine.CompletionInput{Ref: ref, Completed: !missed})
			}

			out := cmd.OutOrStdout()
			failed := 0
			for _, res := range svc.RecordCompletions(ctx, day, items) {
				if res.Err != nil {
					failed++
					fmt.Fprintln(out, ui.Bad.Render(ui.IconError+" "+res.Ref+": "+res.Err.Error()))
					continue
				}
				mark := ui.IconDone
				if missed {
					mark = ui.IconMiss
				}
				fmt.Fprintf(out, "%s %s %s\n", mark, res.Ref, ui.Muted.Render(day.String()))
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d completions failed", failed, len(items))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "Day to record (YYYY-MM-DD, default today)")
	cmd.Flags().BoolVar(&missed, "missed", false, "Record an explicit miss instead of a completion")

	return cmd
}
