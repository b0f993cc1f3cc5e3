package cmd

import (
	"fmt"
	"os"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/arcanaland/flashdeck/internal/config"
	"github.com/arcanaland/flashdeck/internal/tui"
	"github.com/arcanaland/flashdeck/internal/view"
)

var showCmd = &cobra.Command{
	Use:   "show [card_id]",
	Short: "Print a single card",
	Long: `Show prints one card of a deck without starting the interactive viewer.

You can specify a deck using the --src flag, which accepts a path, a deck
library name (XDG_DATA_HOME/flashdeck/decks) or an http(s) URL. If no source
is specified, the default source from your config will be used.

Examples:
  flashdeck show 1
  flashdeck show --src networking tcp-handshake
  flashdeck show --src https://example.com/decks/networking.json 3`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cardID := args[0]
		srcFlag, _ := cmd.Flags().GetString("src")

		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}
		src := sourceFrom(nil, srcFlag, cfg)

		ctrl, _, err := loadDeck(cmd.Context(), cfg, stderrLogger(cfg), src)
		if err != nil {
			return fmt.Errorf("error loading deck: %w", err)
		}

		for i, c := range ctrl.Cards() {
			if c.ID.Value != cardID {
				continue
			}

			width, _, err := term.GetSize(int(os.Stdout.Fd()))
			if err != nil || width <= 0 {
				width = 80
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, colorize.CyanString("Deck: ")+colorize.HiWhiteString(src))
			fmt.Fprintln(out, colorize.CyanString("ID:   ")+colorize.HiWhiteString(c.ID.Value))
			fmt.Fprintln(out)
			fmt.Fprintln(out, tui.Render(view.FromCard(c, i, ctrl.Len()), tui.Frame{
				Style: config.StyleSwap,
				Width: width,
			}))
			return nil
		}

		return fmt.Errorf("card not found: %s", cardID)
	},
}

func init() {
	RootCmd.AddCommand(showCmd)

	showCmd.Flags().StringP("src", "s", "", "Deck path, library name or URL")
}
