package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	colorize "github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arcanaland/flashdeck/internal/config"
)

// deckCmd represents the deck command group
var deckCmd = &cobra.Command{
	Use:   "deck",
	Short: "Manage card decks in your deck library",
	Long:  `Commands for managing JSON card decks in your deck library.`,
}

// deckListCmd represents the deck list command
var deckListCmd = &cobra.Command{
	Use:   "ls",
	Short: "List available decks in your deck library",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		libraryPath := config.GetDeckLibraryPath()
		if resolved, err := filepath.EvalSymlinks(libraryPath); err == nil {
			libraryPath = resolved
		}

		// Check if deck library exists
		if _, err := os.Stat(libraryPath); os.IsNotExist(err) {
			fmt.Fprintf(out, "Deck library at %s does not exist.\n", libraryPath)
			fmt.Fprintln(out, "Run 'flashdeck deck init' to create it.")
			return nil
		}

		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("error loading config: %w", err)
		}

		entries, err := os.ReadDir(libraryPath)
		if err != nil {
			return fmt.Errorf("error reading deck library: %w", err)
		}

		// Per-card warnings are noise here; only the counts are listed
		quiet := slog.New(slog.NewTextHandler(io.Discard, nil))

		found := 0
		for _, entry := range entries {
			if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
				continue
			}
			name := strings.TrimSuffix(entry.Name(), ".json")
			deckPath := filepath.Join(libraryPath, entry.Name())

			_, report, err := loadDeck(cmd.Context(), cfg, quiet, deckPath)
			if err != nil {
				// Not a usable deck, skip
				continue
			}
			found++

			summary := fmt.Sprintf("%s (%d cards", name, report.Loaded)
			if skipped := len(report.Warnings); skipped > 0 {
				summary += fmt.Sprintf(", %d skipped", skipped)
			}
			summary += ")"

			if name == cfg.DefaultSource || entry.Name() == cfg.DefaultSource {
				fmt.Fprintf(out, "* %s %s\n", summary, colorize.GreenString("[DEFAULT]"))
			} else {
				fmt.Fprintf(out, "  %s\n", summary)
			}
		}

		if found == 0 {
			fmt.Fprintln(out, "No decks found in your deck library.")
			fmt.Fprintln(out, "You can add decks by copying JSON files to:", libraryPath)
		}
		return nil
	},
}

// deckSetDefaultCmd represents the deck set-default command
var deckSetDefaultCmd = &cobra.Command{
	Use:   "set-default [source]",
	Short: "Set the default deck source",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src := args[0]

		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}

		// Try to load the deck to make sure it's usable
		if _, _, err := loadDeck(cmd.Context(), cfg, stderrLogger(cfg), config.ResolveSource(src)); err != nil {
			return fmt.Errorf("not a valid deck: %w", err)
		}

		if err := config.SetDefaultSource(src); err != nil {
			return fmt.Errorf("error setting default deck: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Default deck set to: %s\n", src)
		return nil
	},
}

// deckInitCmd represents the deck init command
var deckInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the deck library and config file",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		libraryPath := config.GetDeckLibraryPath()

		if err := os.MkdirAll(libraryPath, 0755); err != nil {
			return fmt.Errorf("error creating deck library: %w", err)
		}

		fmt.Fprintln(out, "Deck library initialized at:", libraryPath)
		fmt.Fprintln(out, "You can now add decks by copying JSON files to this directory.")

		if _, err := config.LoadConfig(); err != nil {
			return fmt.Errorf("error initializing config: %w", err)
		}

		fmt.Fprintln(out, "Config file initialized at:", config.GetConfigFilePath())
		return nil
	},
}

func init() {
	RootCmd.AddCommand(deckCmd)
	deckCmd.AddCommand(deckListCmd)
	deckCmd.AddCommand(deckSetDefaultCmd)
	deckCmd.AddCommand(deckInitCmd)
}
