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

func newWeightCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "weight [kg]",
		Short: "Log today's weight, or show the weight history",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) > 1 {
				return errors.New("at most one weight value")
			}
			if len(args) == 1 {
				if _, err := strconv.ParseFloat(args[0], 64); err != nil {
					return errors.New("weight must be a number")
				}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withService(cmd, func(ctx context.Context, svc *game.Service) error {
				out := cmd.OutOrStdout()

				if len(args) == 1 {
					w, _ := strconv.ParseFloat(args[0], 64)
					if err := svc.UpdateWeight(ctx, w); err != nil {
						return err
					}
					fmt.Fprintln(out, ui.Good.Render(ui.IconScale+" Weight logged. +20 XP"))
				}

				history := svc.WeightHistory()
				if len(history) == 0 {
					fmt.Fprintln(out, ui.Muted.Render("No weight entries yet."))
					return nil
				}
				fmt.Fprintln(out, ui.H2.Render(ui.IconScale+" Weight History"))
				for _, e := range history {
					fmt.Fprintf(out, "%s  %.1f kg\n", ui.Muted.Render(e.Date), e.Weight)
				}
				profile := svc.Profile()
				if profile.TargetWeight > 0 {
					delta := profile.Weight - profile.TargetWeight
					fmt.Fprintln(out, ui.LabelValue("To target", fmt.Sprintf("%+.1f kg", delta)))
				}
				return nil
			})
		},
	}

	return cmd
}
