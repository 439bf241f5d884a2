package root

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"careertrack/internal/api"
	"careertrack/internal/engine"
	"careertrack/internal/ui"
)

func newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "View or edit a student profile",
	}
	cmd.AddCommand(newProfileShowCmd(), newProfileEditCmd())
	return cmd
}

func newProfileShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [student-id]",
		Short: "Print a profile",
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
			p, err := svc.ResolveProfile(ctx, routeID, ident)
			if err != nil {
				return err
			}
			if p == nil {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("No profile found. Create one with 'ctrack profile edit'."))
				return nil
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconPerson, p.Name))
			fmt.Fprintln(out, ui.LabelValue("Student ID", p.StudentID))
			if p.Email != "" {
				fmt.Fprintln(out, ui.LabelValue("Email", p.Email))
			}
			fmt.Fprintln(out, ui.LabelValue("CGPA", p.AcademicDetails.CGPA))
			fmt.Fprintln(out, ui.LabelValue("Backlogs", p.AcademicDetails.Backlogs))
			fmt.Fprintln(out, ui.LabelValue("Skills", strings.Join(p.Skills, ", ")))
			fmt.Fprintln(out, ui.LabelValue("Projects", len(p.Projects)))
			if p.LeetCodeUsername != "" {
				fmt.Fprintln(out, ui.LabelValue("LeetCode", p.LeetCodeUsername))
			}
			if p.HackerRankUsername != "" {
				fmt.Fprintln(out, ui.LabelValue("HackerRank", p.HackerRankUsername))
			}
			return nil
		},
	}
}

func newProfileEditCmd() *cobra.Command {
	var (
		name       string
		email      string
		cgpa       float64
		backlogs   int
		skills     string
		addSkills  string
		leetcode   string
		hackerrank string
	)

	cmd := &cobra.Command{
		Use:   "edit [student-id]",
		Short: "Update (or create) a profile from flags",
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
			base, err := svc.ResolveProfile(ctx, routeID, ident)
			if err != nil {
				return err
			}
			if base == nil {
				// First save: the server assigns the student id.
				base = &api.Profile{Name: ident.Username, Skills: []string{}}
			}

			// Work on a candidate copy, never the resolved profile itself.
			candidate := base.Clone()
			flags := cmd.Flags()
			if flags.Changed("name") {
				candidate.Name = name
			}
			if flags.Changed("email") {
				candidate.Email = email
			}
			if flags.Changed("cgpa") {
				candidate.AcademicDetails.CGPA = cgpa
			}
			if flags.Changed("backlogs") {
				if backlogs < 0 {
					return engine.InvalidInputError{Field: "backlogs", Value: fmt.Sprint(backlogs)}
				}
				candidate.AcademicDetails.Backlogs = backlogs
			}
			if flags.Changed("skills") {
				candidate.Skills = engine.SplitSkills(skills)
			}
			if flags.Changed("add-skills") {
				candidate.Skills = append(candidate.Skills, engine.SplitSkills(addSkills)...)
			}
			if flags.Changed("leetcode") {
				candidate.LeetCodeUsername = leetcode
			}
			if flags.Changed("hackerrank") {
				candidate.HackerRankUsername = hackerrank
			}

			saved, err := svc.SaveProfile(ctx, candidate)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconCheck+" Profile saved")+" "+ui.Dim.Render(saved.StudentID))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&email, "email", "", "Contact email")
	cmd.Flags().Float64Var(&cgpa, "cgpa", 0, "CGPA (0-10)")
	cmd.Flags().IntVar(&backlogs, "backlogs", 0, "Open backlog count")
	cmd.Flags().StringVar(&skills, "skills", "", "Replace the skill list (comma-separated)")
	cmd.Flags().StringVar(&addSkills, "add-skills", "", "Append skills (comma-separated)")
	cmd.Flags().StringVar(&leetcode, "leetcode", "", "LeetCode username")
	cmd.Flags().StringVar(&hackerrank, "hackerrank", "", "HackerRank username")

	return cmd
}
