package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/arcanaland/flashdeck/internal/config"
	"github.com/arcanaland/flashdeck/internal/source"
	"github.com/arcanaland/flashdeck/internal/tui"
)

var viewCmd = &cobra.Command{
	Use:   "view [source]",
	Short: "Browse a deck interactively",
	Long: `View opens the interactive card viewer. The source is a path, a deck library
name or an http(s) URL; without one the default source from your config is used.

Keys: ←/h/p previous, →/l/n next, r reload, q quit. Drag a card left or right
with the mouse to move to the next or previous card.

Logs are written to XDG_DATA_HOME/flashdeck/flashdeck.log.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return err
		}
		if style, _ := cmd.Flags().GetString("style"); style != "" {
			cfg.Style = style
			if err := cfg.Validate(); err != nil {
				return err
			}
		}
		srcFlag, _ := cmd.Flags().GetString("src")
		src := sourceFrom(args, srcFlag, cfg)

		logger, closer, err := fileLogger(cfg)
		if err != nil {
			return err
		}
		defer closer.Close()

		logger.Info("viewer starting", slog.String("source", src), slog.String("style", cfg.Style))

		m := tui.New(newController(cfg, logger), source.NewFetcher(), tui.Options{
			Source:        src,
			Style:         cfg.Style,
			TickInterval:  cfg.TickInterval(),
			DragThreshold: cfg.DragThreshold,
		}, logger)
		return tui.Run(m)
	},
}

func init() {
	RootCmd.AddCommand(viewCmd)

	viewCmd.Flags().StringP("src", "s", "", "Deck path, library name or URL")
	viewCmd.Flags().String("style", "", "Presentation style: swap, drag or stack")
}
