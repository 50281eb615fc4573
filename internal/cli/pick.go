package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"streak-picker/internal/analysis/scoring"
	"streak-picker/internal/config"
	"streak-picker/internal/fetch"
	"streak-picker/internal/models"
	"streak-picker/internal/notify"
	"streak-picker/internal/store"
	"streak-picker/internal/streak"
	"streak-picker/internal/trading"
	"streak-picker/pkg/utils"
)

// newPickCmd creates the pick command: one full screening pass from fetch to
// persisted, ranked picks.
func newPickCmd(app *App) *cobra.Command {
	var (
		symbolArgs []string
		modeFlag   string
		capital    float64
		strategy   string
	)

	cmd := &cobra.Command{
		Use:   "pick",
		Short: "Fetch, score, rank, and persist trade picks",
		Long: `Run a full screening pass. With --symbols the given SEGMENT:SYMBOL
identifiers are screened; otherwise the symbol universe is discovered from
the screener endpoint. Ranked entry candidates land in the configured
worksheet.`,
		Example: `  picker pick --symbols NSE:RELIANCE,NSE:TCS
  picker pick --mode overwrite
  picker pick --capital 250000 --strategy classic`,
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)

			symbols, err := models.ParseSymbols(symbolArgs)
			if err != nil {
				return err
			}

			if modeFlag == "" {
				modeFlag = app.Config.Sink.Mode
			}
			mode, err := store.ParseMode(modeFlag)
			if err != nil {
				return err
			}
			if mode == store.ModeRead {
				return fmt.Errorf("pick requires a write mode, use 'picker show' to read")
			}

			if capital > 0 {
				app.Config.Capital = capital
			}
			if strategy == "" {
				strategy = app.Config.Strategy
			}

			if !utils.IsMarketOpen(time.Now()) {
				output.Warning("Market is closed; indicator snapshots may be stale")
			}

			pipeline, err := buildPipeline(app, strategy)
			if err != nil {
				return err
			}

			summary, err := pipeline.Run(cmd.Context(), symbols, mode)
			if err != nil {
				return err
			}

			if output.IsJSON() {
				return output.JSON(summary)
			}
			renderSummary(output, summary)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&symbolArgs, "symbols", nil, "symbols to screen as SEGMENT:SYMBOL (default: full universe)")
	cmd.Flags().StringVar(&modeFlag, "mode", "", "sink mode: append or overwrite (default: config)")
	cmd.Flags().Float64Var(&capital, "capital", 0, "trading capital override")
	cmd.Flags().StringVar(&strategy, "strategy", "", "scoring strategy: default or classic (default: config)")

	return cmd
}

// buildPipeline wires the run stages from the app configuration.
func buildPipeline(app *App, strategyName string) (*trading.Pipeline, error) {
	st, err := scoring.StrategyForName(strategyName)
	if err != nil {
		return nil, err
	}
	scorer, err := scoring.NewScorerWithStrategy(st)
	if err != nil {
		return nil, err
	}

	client := streak.NewClient(app.Config.Streak)
	universe := streak.NewUniverseClient(app.Config.Streak)
	fetcher := fetch.NewFetcher(client, app.Config.Streak.MaxConcurrent, app.Logger)

	worksheet, err := store.NewCSVWorksheet(app.Config.Sink.Dir, app.Config.Sink.Worksheet)
	if err != nil {
		return nil, fmt.Errorf("opening worksheet: %w", err)
	}
	sink := store.NewAdapter(worksheet, app.Logger)

	notifier := buildNotifier(app.Config)

	return trading.NewPipeline(fetcher, universe, scorer, sink, app.History, notifier, app.Config, app.Logger), nil
}

func buildNotifier(cfg *config.Config) notify.Notifier {
	if cfg.Notifications.Enabled && cfg.Notifications.Email.Enabled {
		return notify.NewEmailNotifier(cfg.Notifications.Email)
	}
	return notify.NewNoOpNotifier()
}

// renderSummary prints the run counters and the ranked picks table.
func renderSummary(output *Output, summary *trading.RunSummary) {
	output.Bold("Run Summary (%s)", utils.FormatRunTime(summary.StartedAt))
	output.Printf("  Attempted: %d  Fetched: %d  Scored: %d  Persisted: %d\n",
		summary.Attempted, summary.Fetched, summary.Scored, summary.Persisted)

	for _, f := range summary.Failures {
		output.Warning("  skipped %s: %v", f.Symbol, f.Err)
	}
	output.Println()

	if len(summary.Picks) == 0 {
		output.Info("No symbols cleared the entry threshold")
		return
	}

	renderPicks(output, summary.Picks)
}

// renderPicks prints persisted pick rows as a table.
func renderPicks(output *Output, picks []store.PickRow) {
	table := NewTable(output, "SYMBOL", "SCORE", "BUY", "STOP", "TARGET", "SHARES")
	for _, p := range picks {
		table.AddRow(
			p.Segment+":"+p.Symbol,
			strconv.FormatFloat(p.WeightedScore, 'f', 4, 64),
			formatPrice(p.BuyPrice),
			formatPrice(p.StopLossPrice),
			formatPrice(p.TargetPrice),
			formatShares(p.MaxShares),
		)
	}
	table.Render()
}

func formatPrice(p *float64) string {
	if p == nil {
		return "-"
	}
	return utils.FormatIndianCurrency(*p)
}

func formatShares(n *int) string {
	if n == nil {
		return "-"
	}
	return strconv.Itoa(*n)
}
