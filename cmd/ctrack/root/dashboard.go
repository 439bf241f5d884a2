package root

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"careertrack/internal/api"
	"careertrack/internal/ui"
)

func newDashboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard [student-id]",
		Short: "Show a readiness overview (yours, or a student's by id)",
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

			ov, err := svc.Overview(ctx, routeID, ident)
			if err != nil && (ov == nil || ov.Profile == nil) {
				return err
			}
			if ov.Profile == nil {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("No profile found. Create one with 'ctrack profile edit'."))
				return nil
			}

			p := ov.Profile
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconGrad, "Welcome, "+p.Name))
			if routeID != "" && ident.Role == api.RoleAdmin {
				fmt.Fprintln(out, ui.Warn.Render("ADMIN VIEWING AS STUDENT"))
			}
			fmt.Fprintln(out, "")

			if ov.Prediction != nil {
				pred := ov.Prediction
				fmt.Fprintf(out, "%s %3.0f%%  %s\n", ui.Key.Render("Readiness:  "), pred.ReadinessScore, ui.ProgressBar(pred.ReadinessScore, 24))
				fmt.Fprintf(out, "%s %3.0f%%  %s\n", ui.Key.Render("Probability:"), pred.PlacementProbability*100, ui.RiskText(pred.RiskLevel)+ui.Muted.Render(" risk"))
				if len(pred.ReadinessDetails) > 0 {
					fmt.Fprintln(out, "")
					fmt.Fprintln(out, ui.H2.Render("Drivers"))
					for _, d := range pred.ReadinessDetails {
						fmt.Fprintf(out, "- %s\n", d)
					}
				}
			} else if err != nil {
				fmt.Fprintln(out, ui.Warn.Render(ui.IconWarn+" Prediction unavailable: "+err.Error()))
			}

			fmt.Fprintln(out, "")
			fmt.Fprintln(out, ui.H2.Render("Profile"))
			fmt.Fprintln(out, ui.LabelValue("CGPA", p.AcademicDetails.CGPA))
			fmt.Fprintln(out, ui.LabelValue("Backlogs", p.AcademicDetails.Backlogs))
			fmt.Fprintln(out, ui.LabelValue("Skills", len(p.Skills)))
			fmt.Fprintln(out, ui.LabelValue("Projects", len(p.Projects)))

			fmt.Fprintln(out, "")
			fmt.Fprintln(out, ui.H2.Render("Practice"))
			fmt.Fprintln(out, ui.LabelValue("LeetCode solved", p.CodingHabits.LeetCodeProblems))
			fmt.Fprintln(out, ui.LabelValue("HackerRank solved", p.CodingHabits.HackerRankProblems))
			if p.CodingHabits.GitHubStreak > 0 {
				fmt.Fprintln(out, ui.LabelValue("GitHub streak", fmt.Sprintf("%d days %s", p.CodingHabits.GitHubStreak, ui.IconFlame)))
			}
			if last, ok := lastSyncTime(p); ok {
				fmt.Fprintln(out, ui.Dim.Render("Last synced "+last.Local().Format("2 Jan 2006 15:04")))
			}
			return nil
		},
	}

	return cmd
}

func lastSyncTime(p *api.Profile) (time.Time, bool) {
	if len(p.CodingHistory) == 0 {
		return time.Time{}, false
	}
	last := p.CodingHistory[len(p.CodingHistory)-1]
	ts, err := time.Parse(time.RFC3339, last.Timestamp)
	if err != nil {
		// The server writes bare ISO timestamps without a zone.
		ts, err = time.Parse("2006-01-02T15:04:05.999999999", last.Timestamp)
	}
	if err != nil {
		return time.Time{}, false
	}
	return ts, true
}
