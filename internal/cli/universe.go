package cli

import (
	"github.com/spf13/cobra"

	"streak-picker/internal/streak"
)

// newUniverseCmd creates the universe command: list the symbol universe the
// screener endpoint currently exposes.
func newUniverseCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "universe",
		Short: "List the discoverable symbol universe",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			universe := streak.NewUniverseClient(app.Config.Streak)
			symbols, err := universe.Symbols(cmd.Context())
			if err != nil {
				return err
			}

			shown := symbols
			if limit > 0 && limit < len(shown) {
				shown = shown[:limit]
			}

			if output.IsJSON() {
				names := make([]string, 0, len(shown))
				for _, s := range shown {
					names = append(names, s.String())
				}
				return output.JSON(map[string]interface{}{
					"total":   len(symbols),
					"symbols": names,
				})
			}

			output.Bold("Universe: %d symbols", len(symbols))
			for _, s := range shown {
				output.Println("  " + s.String())
			}
			if len(shown) < len(symbols) {
				output.Dim("... and %d more", len(symbols)-len(shown))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "show at most this many symbols (0 = all)")

	return cmd
}
