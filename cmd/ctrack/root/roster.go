package root

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"careertrack/internal/ui"
)

func newRosterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roster",
		Short: "List and manage student profiles",
	}
	cmd.AddCommand(newRosterListCmd(), newRosterCreateCmd(), newRosterRemoveCmd())
	return cmd
}

func newRosterListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List profiles visible to this session",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, st, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if _, err := requireIdentity(st); err != nil {
				return err
			}

			roster, err := svc.Roster(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconRoster, fmt.Sprintf("Roster (%d)", len(roster))))
			if len(roster) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("No students yet."))
				return nil
			}
			for _, p := range roster {
				fmt.Fprintf(out, "%s  %s  %s\n",
					ui.Key.Render(p.Name),
					ui.Dim.Render(p.StudentID),
					ui.Muted.Render(fmt.Sprintf("cgpa %.1f · %d skills · %d projects", p.AcademicDetails.CGPA, len(p.Skills), len(p.Projects))))
			}
			return nil
		},
	}
}

func newRosterCreateCmd() *cobra.Command {
	var username string
	var password string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Register a student account (admin)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, st, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if _, err := requireIdentity(st); err != nil {
				return err
			}

			// No client-side role gate: the server re-checks the role
			// on every mutating endpoint and answers 403 otherwise.
			if err := svc.CreateStudent(ctx, username, password); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconCheck+" Student created."))
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "Student username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Initial password")

	return cmd
}

func newRosterRemoveCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "remove <student-id>",
		Short: "Delete a profile and its account (admin)",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return errors.New("student id is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, st, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if _, err := requireIdentity(st); err != nil {
				return err
			}

			id := args[0]
			if !yes {
				fmt.Fprintf(cmd.OutOrStdout(), "Delete profile %s and its login? [y/N]: ", id)
				reader := bufio.NewReader(cmd.InOrStdin())
				answer, _ := reader.ReadString('\n')
				if strings.ToLower(strings.TrimSpace(answer)) != "y" {
					fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Cancelled."))
					return nil
				}
			}

			roster, err := svc.RemoveProfile(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconCheck+" Deleted.")+" "+ui.Muted.Render(fmt.Sprintf("%d students remain.", len(roster))))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}
