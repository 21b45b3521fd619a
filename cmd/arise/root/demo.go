package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Karthikeyasharma979/fitness/internal/game"
	"github.com/Karthikeyasharma979/fitness/internal/ui"
)

func newDemoCmd() *cobra.Command {
	return &cobra.Command{
		Use:    "demo",
		Short:  "Seed demo login history and a 7-day streak",
		Hidden: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, func(ctx context.Context, svc *game.Service) error {
				if err := svc.SeedDemoData(ctx); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Demo data seeded."))
				return nil
			})
		},
	}
}
