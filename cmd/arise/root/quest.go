package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Karthikeyasharma979/fitness/internal/game"
	"github.com/Karthikeyasharma979/fitness/internal/ui"
)

func newQuestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quest",
		Short: "Inspect and resolve the active quest",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuestShow(cmd)
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Show the active quest",
			RunE: func(cmd *cobra.Command, args []string) error {
				return runQuestShow(cmd)
			},
		},
		&cobra.Command{
			Use:   "complete",
			Short: "Report the active quest as completed",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withService(cmd, func(ctx context.Context, svc *game.Service) error {
					if err := svc.Complete(ctx, true); err != nil {
						return err
					}
					fmt.Fprintln(cmd.OutOrStdout(), ui.Good.Render(ui.IconTrophy+" Quest complete. Rewards claimed."))
					printSystemLog(cmd, svc)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "fail",
			Short: "Give up on the active quest",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withService(cmd, func(ctx context.Context, svc *game.Service) error {
					if err := svc.Fail(ctx); err != nil {
						return err
					}
					fmt.Fprintln(cmd.OutOrStdout(), ui.Bad.Render(ui.IconError+" Quest failed."))
					printSystemLog(cmd, svc)
					return nil
				})
			},
		},
		&cobra.Command{
			Use:    "trigger",
			Short:  "Issue a random quest immediately",
			Hidden: true,
			RunE: func(cmd *cobra.Command, args []string) error {
				return withService(cmd, func(ctx context.Context, svc *game.Service) error {
					q, err := svc.Issue(ctx)
					if err != nil {
						return err
					}
					fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconScroll, q.Title))
					fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render(q.Description))
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "redeem",
			Short: "Start the Redemption Arc (warning mode only)",
			RunE: func(cmd *cobra.Command, args []string) error {
				return withService(cmd, func(ctx context.Context, svc *game.Service) error {
					q, err := svc.IssueRedemption(ctx)
					if err != nil {
						return err
					}
					fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconSparkle, q.Title))
					fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render(q.Description))
					fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Deadline", q.Deadline.Local().Format("2006-01-02 15:04:05")))
					return nil
				})
			},
		},
	)

	return cmd
}

func runQuestShow(cmd *cobra.Command) error {
	return withService(cmd, func(ctx context.Context, svc *game.Service) error {
		out := cmd.OutOrStdout()
		if err := svc.CheckExpiry(ctx); err != nil {
			return err
		}
		q := svc.ActiveQuest()
		if q == nil {
			fmt.Fprintln(out, ui.Muted.Render("No active quest. The System strikes when you least expect it."))
			printSystemLog(cmd, svc)
			return nil
		}
		fmt.Fprintln(out, ui.Heading(ui.IconScroll, q.Title))
		fmt.Fprintln(out, ui.Muted.Render(q.Description))
		fmt.Fprintln(out, ui.LabelValue("Kind", q.Kind))
		fmt.Fprintln(out, ui.LabelValue("Target", q.Target))
		fmt.Fprintln(out, ui.LabelValue("Deadline", q.Deadline.Local().Format("2006-01-02 15:04:05")))
		fmt.Fprintf(out, "%s +%d coins, +%d XP\n", ui.Key.Render("Reward:"), q.RewardCoins, q.RewardXP)
		if q.PenaltyCoins > 0 {
			fmt.Fprintf(out, "%s up to -%d coins\n", ui.Bad.Render("Penalty:"), q.PenaltyCoins)
		}
		return nil
	})
}

// withService opens the service and runs the once-per-day streak and
// penalty evaluation before handing control to the command body, so no
// command mutates the ledger against stale penalties.
func withService(cmd *cobra.Command, fn func(context.Context, *game.Service) error) error {
	ctx := context.Background()
	svc, cleanup, err := openService(ctx)
	if err != nil {
		return err
	}
	defer cleanup()
	if err := svc.PerformDailyChecks(ctx); err != nil {
		return err
	}
	return fn(ctx, svc)
}

func printSystemLog(cmd *cobra.Command, svc *game.Service) {
	for _, e := range svc.SystemLog().Entries() {
		fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("» "+e.Text))
	}
}
