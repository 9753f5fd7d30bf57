package root

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ritualist/internal/ui"
)

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import rituals from a YAML file",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("file is required")
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

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open import file: %w", err)
			}
			defer f.Close()

			res, err := svc.ImportRituals(ctx, f)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Good.Render(fmt.Sprintf("%s imported %d ritual(s)", ui.IconScroll, res.Created)))
			for _, fail := range res.Failed {
				fmt.Fprintln(out, ui.Bad.Render(ui.IconError+" "+fail.Name+": "+fail.Err.Error()))
			}
			if len(res.Failed) > 0 {
				return fmt.Errorf("%d ritual(s) failed to import", len(res.Failed))
			}
			return nil
		},
	}

	return cmd
}
