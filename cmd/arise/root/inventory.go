package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Karthikeyasharma979/fitness/internal/game"
	"github.com/Karthikeyasharma979/fitness/internal/ui"
)

func newInventoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "inventory",
		Aliases: []string{"inv"},
		Short:   "Show acquired items",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, func(ctx context.Context, svc *game.Service) error {
				out := cmd.OutOrStdout()
				items := svc.Inventory()
				if len(items) == 0 {
					fmt.Fprintln(out, ui.Muted.Render("Inventory is empty. Visit `arise shop`."))
					return nil
				}
				fmt.Fprintln(out, ui.Heading(ui.IconChest, "Inventory"))
				for _, item := range items {
					fmt.Fprintf(out, "%s %s x%d %s\n",
						ui.RankText(item.Rank), ui.Key.Render(item.Name), item.Quantity,
						ui.Muted.Render(fmt.Sprintf("[%s] acquired %s", item.Type, item.AcquiredAt.Local().Format("2006-01-02"))))
				}
				return nil
			})
		},
	}
}
