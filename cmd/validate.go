package cmd

import (
	"errors"
	"fmt"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/flashdeck/internal/card"
	"github.com/arcanaland/flashdeck/internal/config"
)

// validateCmd represents the validate command
var validateCmd = &cobra.Command{
	Use:   "validate [source]",
	Short: "Check a card deck against the card schema",
	Long: `Validate loads a deck from a file, a deck library name or an http(s) URL and
reports every card that would be skipped by the viewer, with the reason.
It fails when the source cannot be read or no card is valid.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}
		src := sourceFrom(args, "", cfg)
		logger := stderrLogger(cfg)

		_, report, err := loadDeck(cmd.Context(), cfg, logger, src)
		if err != nil && !errors.Is(err, card.ErrEmptyDeck) {
			return fmt.Errorf("validation error: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Validation Results:")
		fmt.Fprintln(out, "-------------------")

		if err != nil {
			fmt.Fprintf(out, "❌ Deck '%s' has no valid cards (%d records checked)\n", src, report.Total)
		} else {
			fmt.Fprintf(out, "✅ Deck '%s': %d of %d cards valid\n", src, report.Loaded, report.Total)
		}

		if len(report.Warnings) > 0 {
			fmt.Fprintln(out, colorize.YellowString("\nSkipped cards:"))
			for i, warn := range report.Warnings {
				fmt.Fprintf(out, "%d. %s\n", i+1, warn)
			}
		}

		if err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		return nil
	},
}
