package root

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Karthikeyasharma979/fitness/internal/game"
	"github.com/Karthikeyasharma979/fitness/internal/ui"
)

func newTrainCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "train [workout-id]",
		Short: "Complete a workout from the training catalog",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 1 {
				return errors.New("at most one workout id")
			}
			if len(args) == 1 {
				if _, err := strconv.Atoi(args[0]); err != nil {
					return errors.New("workout id must be an integer")
				}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if len(args) == 0 {
				fmt.Fprintln(out, ui.Heading(ui.IconBolt, "Training Catalog"))
				for _, w := range game.Workouts {
					fmt.Fprintf(out, "[%d] %s %s\n", w.ID, ui.Key.Render(w.Title),
						ui.Muted.Render(fmt.Sprintf("(rank %s, %s, %d XP, %s)", w.Rank, w.Time, w.XP, w.Type)))
				}
				fmt.Fprintln(out, ui.Muted.Render("Complete one with `arise train <id>`. Ids 1-4 are today's mandatory quests."))
				return nil
			}

			id, _ := strconv.Atoi(args[0])
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := svc.PerformDailyChecks(ctx); err != nil {
				return err
			}
			before := svc.Stats().Level
			w, err := svc.Train(ctx, id)
			if err != nil {
				return err
			}

			stats := svc.Stats()
			fmt.Fprintln(out, ui.Heading(ui.IconDone, w.Title+" complete"))
			if stats.Level > before {
				fmt.Fprintln(out, ui.BadgeLevelUp+" "+ui.Gold.Render(fmt.Sprintf("HUNTER LEVEL %d", stats.Level)))
			}
			fmt.Fprintf(out, "%s %s %d/%d  %s %d\n", ui.Key.Render("XP:"), ui.XPBar(stats.XP, stats.MaxXP, 24), stats.XP, stats.MaxXP, ui.Key.Render("Coins:"), stats.Coins)
			for _, e := range svc.SystemLog().Entries() {
				fmt.Fprintln(out, ui.Muted.Render("» "+e.Text))
			}
			return nil
		},
	}

	return cmd
}
