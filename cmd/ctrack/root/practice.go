package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"careertrack/internal/engine"
	"careertrack/internal/ui"
)

func newPracticeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "practice",
		Short: "Daily challenge and coding-stats sync",
	}
	cmd.AddCommand(newPracticeDailyCmd(), newPracticeSyncCmd())
	return cmd
}

func newPracticeDailyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "daily",
		Short: "Show today's challenge",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, _, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			q, err := svc.DailyChallenge(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconDaily, "Daily Challenge"))
			fmt.Fprintln(out, ui.LabelValue("Title", q.Title))
			fmt.Fprintln(out, ui.LabelValue("Difficulty", ui.DifficultyText(q.Difficulty)))
			fmt.Fprintln(out, ui.LabelValue("Link", q.Link))
			return nil
		},
	}
}

func newPracticeSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync [student-id]",
		Short: "Pull fresh platform stats and get coach advice",
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
			profile, err := svc.ResolveProfile(ctx, routeID, ident)
			if err != nil {
				return err
			}
			if profile == nil {
				return engine.ErrNoProfile
			}
			if !profile.HasPlatformLinks() {
				return errors.New("no coding profiles linked; add usernames with 'ctrack profile edit --leetcode ... --hackerrank ...'")
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Muted.Render(ui.IconSync+" Syncing "+profile.Name+"…"))

			outcome, err := svc.SyncCodingStats(ctx, profile.StudentID)
			if err != nil {
				// No partial update: the held profile and any prior
				// analysis stay as they were.
				return err
			}
			profile = outcome.Profile

			res := outcome.Result
			if w, ok := engine.LeetCodeWindow(res); ok {
				diff := w.New - w.Old
				if diff > 0 {
					fmt.Fprintln(out, ui.Good.Render(fmt.Sprintf("%s Success! +%d problems (%d → %d).", ui.IconCheck, diff, w.Old, w.New)))
				} else {
					fmt.Fprintln(out, ui.Muted.Render("Sync complete. No new problems."))
				}
			} else {
				fmt.Fprintln(out, ui.Muted.Render("Sync complete."))
			}

			fmt.Fprintln(out, "")
			fmt.Fprintln(out, ui.H2.Render("Activity"))
			fmt.Fprintln(out, ui.LabelValue("Today", res.Analysis.DailyDelta))
			fmt.Fprintln(out, ui.LabelValue("This week", res.Analysis.WeeklyDelta))
			fmt.Fprintln(out, ui.LabelValue("Streak", fmt.Sprintf("%d days %s", res.Analysis.Streak, ui.IconFlame)))

			if len(res.Recommendations) > 0 {
				fmt.Fprintln(out, "")
				fmt.Fprintln(out, ui.H2.Render(ui.IconCoach+" Coach"))
				for _, rec := range res.Recommendations {
					fmt.Fprintf(out, "- %s\n", rec)
				}
			}

			fmt.Fprintln(out, "")
			fmt.Fprintln(out, ui.LabelValue("LeetCode solved", profile.CodingHabits.LeetCodeProblems))
			fmt.Fprintln(out, ui.LabelValue("HackerRank solved", profile.CodingHabits.HackerRankProblems))
			return nil
		},
	}
}
