package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"careertrack/internal/engine"
	"careertrack/internal/tui"
	"careertrack/internal/ui"
)

func newWhatifCmd() *cobra.Command {
	var (
		skills      string
		projects    string
		problems    string
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "whatif [student-id]",
		Short: "Simulate how profile changes move the placement odds",
		Long:  "Runs a what-if simulation: the base profile plus your hypothetical skills, projects and solved problems, scored against the current baseline.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, st, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			ident, err := requireIdentity(st)
			if err != nil {
				return err
			}

			routeID := ""
			if len(args) == 1 {
				routeID = args[0]
			}

			if interactive {
				return tui.RunSimulator(ctx, svc, ident, routeID, cmd.OutOrStdout())
			}

			// Validation happens before any request is sent.
			delta, err := engine.ParseDelta(skills, projects, problems)
			if err != nil {
				return err
			}

			run, err := svc.RunSimulation(ctx, routeID, ident, delta)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconTarget, "Career Impact Simulator"))
			fmt.Fprintln(out, ui.LabelValue("Profile", run.Base.Name))
			fmt.Fprintf(out, "%s %.0f%% → %.0f%%  (%s)\n",
				ui.Key.Render("Probability:"),
				run.Initial.PlacementProbability*100,
				run.Simulated.SimulatedProbability*100,
				ui.SignedPercent(run.Outcome.DeltaPercent))

			if run.Outcome.DeltaPercent < 0 {
				fmt.Fprintln(out, ui.Warn.Render(ui.IconWarn+" This change would lower the predicted odds."))
			}

			if len(run.Outcome.Improvements) > 0 {
				fmt.Fprintln(out, "")
				fmt.Fprintln(out, ui.H2.Render("Why this helps"))
				for _, imp := range run.Outcome.Improvements {
					fmt.Fprintf(out, "%s %s\n", ui.IconCheck, imp)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&skills, "skills", "s", "", "Skills to learn (comma-separated)")
	cmd.Flags().StringVar(&projects, "projects", "0", "Projects to build")
	cmd.Flags().StringVar(&problems, "problems", "0", "Problems to solve")
	cmd.Flags().BoolVarP(&interactive, "tui", "t", false, "Open the interactive simulator")

	return cmd
}
