package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"careertrack/internal/ui"
)

const Version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:           "ctrack",
	Short:         "CareerTrack — career-readiness tracking from the terminal",
	Long:          "CareerTrack is a CLI/TUI client for the career-readiness API: dashboards, what-if simulations, coding-stats sync and roster administration.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.AddCommand(
		newLoginCmd(),
		newLogoutCmd(),
		newRegisterCmd(),
		newWhoamiCmd(),
		newDashboardCmd(),
		newProfileCmd(),
		newWhatifCmd(),
		newPracticeCmd(),
		newRosterCmd(),
		newBoardCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
