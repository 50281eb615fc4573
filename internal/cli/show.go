package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"streak-picker/internal/store"
)

// newShowCmd creates the show command: read the persisted worksheet without
// mutating it.
func newShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the persisted picks worksheet",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			worksheet, err := store.NewCSVWorksheet(app.Config.Sink.Dir, app.Config.Sink.Worksheet)
			if err != nil {
				return fmt.Errorf("opening worksheet: %w", err)
			}
			sink := store.NewAdapter(worksheet, app.Logger)

			rows, err := sink.Read(cmd.Context())
			if err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(rows)
			}
			if len(rows) == 0 {
				output.Info("Worksheet %q is empty", app.Config.Sink.Worksheet)
				return nil
			}

			output.Bold("Worksheet %q (%d rows)", app.Config.Sink.Worksheet, len(rows))
			renderPicks(output, rows)
			return nil
		},
	}
}
