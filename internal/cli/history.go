package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"streak-picker/pkg/utils"
)

// newHistoryCmd creates the history command group over the run-history
// database.
func newHistoryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Inspect past runs",
	}

	cmd.AddCommand(newHistoryRunsCmd(app))
	cmd.AddCommand(newHistoryPicksCmd(app))

	return cmd
}

func newHistoryRunsCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recent runs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.History == nil {
				return fmt.Errorf("run history is disabled")
			}

			runs, err := app.History.Runs(cmd.Context(), limit)
			if err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(runs)
			}
			if len(runs) == 0 {
				output.Info("No runs recorded yet")
				return nil
			}

			table := NewTable(output, "ID", "STARTED", "ATTEMPTED", "FETCHED", "SCORED", "PERSISTED")
			for _, r := range runs {
				table.AddRow(
					strconv.FormatInt(r.ID, 10),
					utils.FormatRunTime(r.StartedAt),
					strconv.Itoa(r.Attempted),
					strconv.Itoa(r.Fetched),
					strconv.Itoa(r.Scored),
					strconv.Itoa(r.Persisted),
				)
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "number of runs to show")

	return cmd
}

func newHistoryPicksCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "picks <run-id>",
		Short: "Show the picks recorded for one run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if app.History == nil {
				return fmt.Errorf("run history is disabled")
			}

			runID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid run id %q", args[0])
			}

			picks, err := app.History.Picks(cmd.Context(), runID)
			if err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(picks)
			}
			if len(picks) == 0 {
				output.Info("No picks recorded for run %d", runID)
				return nil
			}

			renderPicks(output, picks)
			return nil
		},
	}
}
