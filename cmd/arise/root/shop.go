package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Karthikeyasharma979/fitness/internal/game"
	"github.com/Karthikeyasharma979/fitness/internal/ui"
)

func newShopCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shop",
		Short: "Browse the System shop",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, func(ctx context.Context, svc *game.Service) error {
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, ui.Heading(ui.IconChest, "System Shop"))
				fmt.Fprintln(out, ui.LabelValue("Balance", fmt.Sprintf("%d %s", svc.Stats().Coins, ui.IconCoin)))
				fmt.Fprintln(out, "")
				for _, item := range game.ShopCatalog {
					fmt.Fprintf(out, "%s %s [%s] %d %s\n  %s\n",
						ui.RankText(item.Rank), ui.Key.Render(item.Name), item.Type, item.Cost, ui.IconCoin,
						ui.Muted.Render(item.Desc+"  (id: "+item.ID+")"))
				}
				return nil
			})
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "buy <item-id>",
		Short: "Buy an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, func(ctx context.Context, svc *game.Service) error {
				res, err := svc.Buy(ctx, args[0])
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if res.Gambled {
					if res.Winning > 1 {
						fmt.Fprintln(out, ui.Gold.Render(fmt.Sprintf("JACKPOT! FOUND %d COINS!", res.Winning)))
					} else {
						fmt.Fprintln(out, ui.Bad.Render("CURSED! Found 1 Coin..."))
					}
				} else {
					fmt.Fprintln(out, ui.Good.Render(ui.IconDone+" "+res.Item.Name+" acquired."))
				}
				fmt.Fprintln(out, ui.LabelValue("Balance", svc.Stats().Coins))
				return nil
			})
		},
	})

	return cmd
}
