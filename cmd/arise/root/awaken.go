package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Karthikeyasharma979/fitness/internal/game"
	"github.com/Karthikeyasharma979/fitness/internal/store"
	"github.com/Karthikeyasharma979/fitness/internal/ui"
)

func newAwakenCmd() *cobra.Command {
	var (
		name         string
		age          int
		height       float64
		weight       float64
		targetWeight float64
		goal         string
	)

	cmd := &cobra.Command{
		Use:   "awaken",
		Short: "Complete onboarding and become a hunter",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			err = svc.Awaken(ctx, game.AwakenInput{
				Name:         name,
				Age:          age,
				Height:       height,
				Weight:       weight,
				TargetWeight: targetWeight,
				Goal:         store.Goal(goal),
			})
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), ui.Heading(ui.IconSparkle, "You have awakened."))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Hunter", name))
			fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Goal", goal))
			fmt.Fprintln(cmd.OutOrStdout(), ui.Muted.Render("Run `arise status` to inspect your stats."))
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "hunter name (required)")
	cmd.Flags().IntVar(&age, "age", 0, "age in years (required)")
	cmd.Flags().Float64Var(&height, "height", 0, "height in cm (required)")
	cmd.Flags().Float64Var(&weight, "weight", 0, "current weight in kg (required)")
	cmd.Flags().Float64Var(&targetWeight, "target", 0, "target weight in kg")
	cmd.Flags().StringVar(&goal, "goal", string(store.GoalWeightLoss), "goal: weight_loss, muscle_gain or endurance")

	return cmd
}
