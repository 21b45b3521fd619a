package root

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Karthikeyasharma979/fitness/internal/game"
	"github.com/Karthikeyasharma979/fitness/internal/ui"
)

func newGiftCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gift",
		Short: "Open the daily supply chest",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, func(ctx context.Context, svc *game.Service) error {
				res, err := svc.ClaimMysteryGift(ctx)
				if errors.Is(err, game.ErrGiftClaimed) {
					fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("SUPPLY CHEST EMPTY. REFRESH TOMORROW."))
					return nil
				}
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), ui.Gold.Render(fmt.Sprintf("SUPPLY CHEST OPENED: +%d COINS, +%d XP", res.Coins, res.XP)))
				return nil
			})
		},
	}
}
