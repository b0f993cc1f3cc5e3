package cmd

import (
	"github.com/spf13/cobra"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "flashdeck",
	Short: "Terminal viewer for JSON flashcard decks",
	Long: `Flashdeck loads a JSON array of learning cards from a file or URL, checks every
card against the card schema, and shows the valid ones one at a time with a
per-card countdown. Navigate with the arrow keys or by dragging the card.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	RootCmd.AddCommand(validateCmd)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return RootCmd.Execute()
}
