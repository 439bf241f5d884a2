package root

import (
	"context"

	"github.com/spf13/cobra"

	"careertrack/internal/tui"
)

func newBoardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "board",
		Short: "Open the interactive board (role-based landing view)",
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

			return tui.RunHome(ctx, svc, ident, cmd.OutOrStdout())
		},
	}

	return cmd
}
