package root

import (
	"context"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/Karthikeyasharma979/fitness/internal/game"
	"github.com/Karthikeyasharma979/fitness/internal/ui"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show hunter stats, penalties and unlocked skills",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := svc.PerformDailyChecks(ctx); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			profile := svc.Profile()
			stats := svc.Stats()
			pen := svc.Penalties()

			if !profile.Awakened {
				fmt.Fprintln(out, ui.Muted.Render("Not awakened yet. Run `arise awaken` first."))
				return nil
			}

			fmt.Fprintln(out, ui.Heading(ui.IconSword, "Hunter Status"))
			fmt.Fprintln(out, ui.LabelValue("Name", profile.Name))
			fmt.Fprintln(out, ui.LabelValue("Rank", ui.RankText(stats.Rank)))
			fmt.Fprintln(out, ui.LabelValue("Level", stats.Level))
			fmt.Fprintf(out, "%s %s %d/%d\n", ui.Key.Render("XP:"), ui.XPBar(stats.XP, stats.MaxXP, 24), stats.XP, stats.MaxXP)
			fmt.Fprintln(out, ui.LabelValue("Coins", stats.Coins))
			fmt.Fprintln(out, ui.LabelValue("Streak", fmt.Sprintf("%s %d day(s)", ui.IconFire, stats.Streak)))
			fmt.Fprintln(out, "")

			fmt.Fprintln(out, ui.H2.Render("📊 Attributes"))
			fmt.Fprintf(out, "- 💪 STR: %d\n", stats.STR)
			fmt.Fprintf(out, "- 🏃 AGI: %d\n", stats.AGI)
			fmt.Fprintf(out, "- 🫀 END: %d\n", stats.Endurance)
			fmt.Fprintln(out, "")

			if pen.WarningMode || pen.StreakFrozen || pen.ConsecutiveMisses > 0 {
				fmt.Fprintln(out, ui.H2.Render(ui.IconWarn+" Penalties"))
				if pen.WarningMode {
					fmt.Fprintln(out, "- "+ui.Bad.Render("WARNING MODE")+" "+ui.Muted.Render(fmt.Sprintf("(XP x%.1f)", pen.XPPenalty)))
					fmt.Fprintln(out, "  "+ui.Muted.Render("Run `arise quest redeem` to start the Redemption Arc."))
				}
				if pen.StreakFrozen {
					fmt.Fprintln(out, "- "+ui.Key.Render("Streak freeze:")+" "+ui.Good.Render("active"))
				}
				if pen.ConsecutiveMisses > 0 {
					fmt.Fprintf(out, "- %s %d\n", ui.Key.Render("Consecutive misses:"), pen.ConsecutiveMisses)
				}
				fmt.Fprintln(out, "")
			}

			daily := svc.DailyProgress()
			fmt.Fprintln(out, ui.H2.Render(ui.IconBolt+" Daily Quests"))
			for _, w := range game.Workouts {
				mark := ui.Muted.Render("·")
				if slices.Contains(daily.CompletedIDs, w.ID) {
					mark = ui.Good.Render(ui.IconDone)
				}
				fmt.Fprintf(out, "%s [%d] %s %s\n", mark, w.ID, w.Title, ui.Muted.Render(fmt.Sprintf("(%s, %d XP)", w.Rank, w.XP)))
			}
			fmt.Fprintln(out, "")

			if skills := svc.UnlockedSkills(); len(skills) > 0 {
				fmt.Fprintln(out, ui.H2.Render(ui.IconSparkle+" Unlocked Skills"))
				for _, sk := range skills {
					fmt.Fprintf(out, "- %s %s %s\n", ui.Key.Render(sk.Name), ui.Muted.Render("["+sk.Type+"]"), ui.Muted.Render(sk.Desc))
				}
				fmt.Fprintln(out, "")
			}

			if q := svc.ActiveQuest(); q != nil {
				fmt.Fprintln(out, ui.H2.Render(ui.IconScroll+" Active Quest"))
				fmt.Fprintln(out, "- "+ui.Title.Render(q.Title)+" "+ui.Muted.Render(q.Description))
				fmt.Fprintln(out, "- "+ui.Key.Render("Deadline:")+" "+q.Deadline.Local().Format("2006-01-02 15:04:05"))
			}

			return nil
		},
	}

	return cmd
}
