package root

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Karthikeyasharma979/fitness/internal/ui"
)

func newSessionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "session",
		Short: "Run a live session: daily checks, expiry polling and random quests",
		Long: "Runs the daily streak/penalty evaluation, then keeps the session alive: " +
			"the quest deadline is polled every minute and the System may issue a random " +
			"quest at any moment. Stop with Ctrl-C.",
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

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconSystem, "Session started"))
			if svc.Adapter().LocalOnly() {
				fmt.Fprintln(out, ui.Muted.Render("Persistence: local/demo mode"))
			} else {
				fmt.Fprintln(out, ui.Muted.Render("Persistence: remote sync"))
			}
			for _, e := range svc.SystemLog().Entries() {
				fmt.Fprintln(out, ui.Muted.Render("» "+e.Text))
			}
			fmt.Fprintln(out, ui.Muted.Render("Waiting for the System... (Ctrl-C to stop)"))

			sig := make(chan os.Signal, 1)
			signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
			<-sig

			fmt.Fprintln(out, "")
			fmt.Fprintln(out, ui.Muted.Render("Session ended."))
			return nil
		},
	}
}
