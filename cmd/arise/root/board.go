package root

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/Karthikeyasharma979/fitness/internal/tui"
)

func newBoardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Open the live hunter dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := svc.StartSession(ctx); err != nil {
				return err
			}
			defer svc.EndSession()

			return tui.Run(svc)
		},
	}
}
