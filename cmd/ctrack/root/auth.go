package root

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"careertrack/internal/api"
	"careertrack/internal/config"
	"careertrack/internal/session"
	"careertrack/internal/ui"
)

func newLoginCmd() *cobra.Command {
	var username string
	var password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and persist the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if username == "" || password == "" {
				return errors.New("--username and --password are required")
			}
			ctx := context.Background()
			st, cfg, cleanup, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			client := api.NewClient(api.NewGateway(cfg.APIURL, noToken{}, cfg.HTTPTimeout))
			ident, err := client.Login(ctx, username, password)
			if err != nil {
				return err
			}
			if err := st.Login(ctx, ident); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconCheck+" Logged in as "+ident.Username)+" "+ui.Muted.Render("("+ident.Role+")"))
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "Account username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Account password")

	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the persisted session",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			st, _, cleanup, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := st.Logout(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Logged out."))
			return nil
		},
	}
}

func newRegisterCmd() *cobra.Command {
	var username string
	var password string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if username == "" || password == "" {
				return errors.New("--username and --password are required")
			}
			ctx := context.Background()

			client, err := anonymousClient()
			if err != nil {
				return err
			}
			if err := client.Register(ctx, username, password); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconCheck+" Registered. Log in with 'ctrack login'."))
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "Account username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Account password")

	return cmd
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			st, _, cleanup, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			ident, state := st.Current()
			if state != session.StateAuthenticated || ident == nil {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Not logged in."))
				return nil
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconPerson, "Session"))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("User", ident.Username))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Role", ident.Role))
			if ident.StudentID != "" {
				fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Student ID", ident.StudentID))
			}
			if exp, ok := st.TokenExpiry(); ok {
				label := exp.Local().Format(time.RFC1123)
				if time.Now().After(exp) {
					label = ui.Bad.Render(label + " (expired)")
				}
				fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Token expires", label))
			}
			return nil
		},
	}
}

// anonymousClient builds an API client with no credential attached, for the
// auth endpoints themselves.
func anonymousClient() (*api.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return api.NewClient(api.NewGateway(cfg.APIURL, noToken{}, cfg.HTTPTimeout)), nil
}

type noToken struct{}

func (noToken) Token() string { return "" }
