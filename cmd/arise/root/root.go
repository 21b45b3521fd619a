package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Karthikeyasharma979/fitness/internal/ui"
)

const Version = "0.1.0"

var rootCmd = &cobra.Command{
	Use:           "arise",
	Short:         "Arise, a hunter-themed fitness RPG in your terminal",
	Long:          "Arise is a local-first fitness RPG: complete daily workouts, level up, keep your streak alive, and survive the System's emergency quests.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	rootCmd.Version = Version
	rootCmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	rootCmd.AddCommand(
		newAwakenCmd(),
		newStatusCmd(),
		newTrainCmd(),
		newQuestCmd(),
		newWeightCmd(),
		newShopCmd(),
		newInventoryCmd(),
		newGiftCmd(),
		newSessionCmd(),
		newServeCmd(),
		newBoardCmd(),
		newDemoCmd(),
		newResetCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
