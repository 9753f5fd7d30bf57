package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ritualist/internal/ui"
)

const Version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:           "rit",
	Short:         "Ritualist — local-first ritual and streak tracker",
	Long:          "Ritualist is a local-first CLI for recurring rituals: schedules, completions, streaks and a compounding proof score.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.AddCommand(
		newAddCmd(),
		newImportCmd(),
		newTodayCmd(),
		newDoneCmd(),
		newSkipCmd(),
		newRetimeCmd(),
		newCloseCmd(),
		newStreakCmd(),
		newStatusCmd(),
		newBoardCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
