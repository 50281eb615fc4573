// Package cli provides the command-line interface for the stock picker.
package cli

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"streak-picker/internal/config"
	"streak-picker/internal/logging"
	"streak-picker/internal/store"
)

// Version information
const (
	Version   = "0.1.0"
	BuildDate = "2024-01-01"
)

// App holds the application dependencies.
type App struct {
	Config  *config.Config
	Logger  zerolog.Logger
	History *store.HistoryStore
}

// NewRootCmd creates the root command for the CLI.
func NewRootCmd(cfg *config.Config, logger zerolog.Logger) *cobra.Command {
	app := &App{
		Config: cfg,
		Logger: logger,
	}

	if cfg.History.Enabled {
		history, err := store.NewHistoryStore(cfg.History.Path)
		if err != nil {
			logger.Warn().Err(err).Msg("Run history unavailable")
		} else {
			app.History = history
			logger.Debug().Str("path", cfg.History.Path).Msg("Run history store opened")
		}
	}

	rootCmd := &cobra.Command{
		Use:   "picker",
		Short: "Streak Picker - concurrent stock screener for the Indian market",
		Long: `Streak Picker fetches technical indicator snapshots from streak.tech,
scores every symbol against a weighted strategy, and persists the ranked
entry candidates with stop-loss, target, and position size.

Use 'picker pick' to run a full screening pass.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			debug, _ := cmd.Flags().GetBool("debug")
			if debug {
				logging.SetDebugLevel()
				app.Logger = app.Logger.Level(zerolog.DebugLevel)
			}
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config directory (default: ~/.config/streak-picker)")
	rootCmd.PersistentFlags().Bool("json", false, "output in JSON format")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newConfigCmd(app))
	rootCmd.AddCommand(newPickCmd(app))
	rootCmd.AddCommand(newShowCmd(app))
	rootCmd.AddCommand(newUniverseCmd(app))
	rootCmd.AddCommand(newHistoryCmd(app))

	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{
					"version":    Version,
					"build_date": BuildDate,
				})
			} else {
				output.Printf("Streak Picker v%s\n", Version)
				output.Dim("Build date: %s", BuildDate)
			}
		},
	}
}

func newConfigCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  "View and manage application configuration.",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if output.IsJSON() {
				return output.JSON(app.Config)
			}
			return showConfig(output, app.Config)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration directory path",
		Run: func(cmd *cobra.Command, args []string) {
			output := NewOutput(cmd)
			if output.IsJSON() {
				output.JSON(map[string]string{"path": config.DefaultConfigDir()})
			} else {
				output.Println(config.DefaultConfigDir())
			}
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Validate configuration files",
		RunE: func(cmd *cobra.Command, args []string) error {
			output := NewOutput(cmd)
			if err := app.Config.Validate(); err != nil {
				output.Error("Configuration validation failed: %v", err)
				return err
			}
			if output.IsJSON() {
				output.JSON(map[string]bool{"valid": true})
			} else {
				output.Success("✓ Configuration is valid")
			}
			return nil
		},
	})

	return cmd
}

func showConfig(output *Output, cfg *config.Config) error {
	output.Bold("Picker Configuration")
	output.Printf("  Capital:         %.2f\n", cfg.Capital)
	output.Printf("  Strategy:        %s\n", cfg.Strategy)
	output.Println()

	output.Bold("Risk Policy")
	output.Printf("  Max Drawdown %%:   %.1f%%\n", cfg.Risk.MaxDrawdownPercent)
	output.Printf("  Per-Trade Loss %%: %.1f%%\n", cfg.Risk.PerTradeLossPercent)
	output.Printf("  Daily Stop %%:     %.1f%%\n", cfg.Risk.DailyStopLossPercent)
	output.Printf("  Monthly Loss %%:   %.1f%%\n", cfg.Risk.MonthlyLossPercent)
	output.Printf("  Horizon (days):   %d\n", cfg.Risk.TradingHorizonDays)
	output.Println()

	output.Bold("Streak Endpoints")
	output.Printf("  Analysis URL:    %s\n", cfg.Streak.AnalysisURL)
	output.Printf("  Screener URL:    %s\n", cfg.Streak.ScreenerURL)
	output.Printf("  Time Frame:      %s\n", cfg.Streak.TimeFrame)
	output.Printf("  Timeout:         %ds\n", cfg.Streak.TimeoutSeconds)
	output.Printf("  Max Concurrent:  %d\n", cfg.Streak.MaxConcurrent)
	output.Println()

	output.Bold("Sink")
	output.Printf("  Directory:       %s\n", cfg.Sink.Dir)
	output.Printf("  Worksheet:       %s\n", cfg.Sink.Worksheet)
	output.Printf("  Mode:            %s\n", cfg.Sink.Mode)
	output.Println()

	output.Bold("History")
	output.Printf("  Enabled:         %v\n", cfg.History.Enabled)
	output.Printf("  Path:            %s\n", cfg.History.Path)
	output.Println()

	output.Bold("Notifications")
	output.Printf("  Enabled:         %v\n", cfg.Notifications.Enabled)
	output.Printf("  Email:           %v\n", cfg.Notifications.Email.Enabled)

	return nil
}
