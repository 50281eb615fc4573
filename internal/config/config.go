// Package config provides configuration management for the stock picker.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"streak-picker/internal/models"
)

// Config holds all application configuration.
type Config struct {
	Capital       float64            `mapstructure:"capital"`
	Strategy      string             `mapstructure:"strategy"` // "default", "classic"
	Risk          models.RiskPolicy  `mapstructure:"risk"`
	Streak        StreakConfig       `mapstructure:"streak"`
	Sink          SinkConfig         `mapstructure:"sink"`
	History       HistoryConfig      `mapstructure:"history"`
	Notifications NotificationConfig `mapstructure:"notifications"`
}

// StreakConfig holds the analytics endpoint settings.
type StreakConfig struct {
	AnalysisURL    string `mapstructure:"analysis_url"`
	ScreenerURL    string `mapstructure:"screener_url"`
	TimeFrame      string `mapstructure:"time_frame"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	MaxConcurrent  int    `mapstructure:"max_concurrent"` // 0 = unbounded
}

// SinkConfig holds the persisted-store settings.
type SinkConfig struct {
	Dir       string `mapstructure:"dir"`
	Worksheet string `mapstructure:"worksheet"`
	Mode      string `mapstructure:"mode"` // "append" or "overwrite"
}

// HistoryConfig holds the run-history database settings.
type HistoryConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// NotificationConfig holds notification configuration.
type NotificationConfig struct {
	Enabled bool        `mapstructure:"enabled"`
	Email   EmailConfig `mapstructure:"email"`
}

// EmailConfig holds email notification configuration.
type EmailConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	SMTPHost string `mapstructure:"smtp_host"`
	SMTPPort int    `mapstructure:"smtp_port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
	To       string `mapstructure:"to"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/streak-picker"
	}
	return filepath.Join(home, ".config", "streak-picker")
}

// Default returns the built-in configuration, used when no config file
// exists yet.
func Default() *Config {
	return &Config{
		Capital:  100000,
		Strategy: "default",
		Risk:     models.DefaultRiskPolicy(),
		Streak: StreakConfig{
			AnalysisURL:    "https://technicalwidget.streak.tech/api/streak_tech_analysis/",
			ScreenerURL:    "https://s-op.streak.tech/screeners/discover",
			TimeFrame:      "hour",
			TimeoutSeconds: 30,
			MaxConcurrent:  0,
		},
		Sink: SinkConfig{
			Dir:       filepath.Join(DefaultConfigDir(), "picks"),
			Worksheet: "Picks",
			Mode:      "append",
		},
		History: HistoryConfig{
			Enabled: true,
			Path:    filepath.Join(DefaultConfigDir(), "picker.db"),
		},
	}
}

// Load loads configuration from the specified directory.
// If configDir is empty, uses the default config directory.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	cfg := Default()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)
	setDefaults(v, cfg)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("loading config.toml: %w", err)
		}
		// First run: write the template so the defaults are discoverable.
		if err := createTemplateConfig(configDir); err != nil {
			return nil, fmt.Errorf("creating config template: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config.toml: %w", err)
	}

	// Empty paths in the config file mean "use the computed default".
	if cfg.Sink.Dir == "" {
		cfg.Sink.Dir = filepath.Join(DefaultConfigDir(), "picks")
	}
	if cfg.History.Path == "" {
		cfg.History.Path = filepath.Join(DefaultConfigDir(), "picker.db")
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("capital", cfg.Capital)
	v.SetDefault("strategy", cfg.Strategy)
	v.SetDefault("risk.max_drawdown_percent", cfg.Risk.MaxDrawdownPercent)
	v.SetDefault("risk.per_trade_loss_percent", cfg.Risk.PerTradeLossPercent)
	v.SetDefault("risk.daily_stop_loss_percent", cfg.Risk.DailyStopLossPercent)
	v.SetDefault("risk.monthly_loss_percent", cfg.Risk.MonthlyLossPercent)
	v.SetDefault("risk.trading_horizon_days", cfg.Risk.TradingHorizonDays)
	v.SetDefault("streak.analysis_url", cfg.Streak.AnalysisURL)
	v.SetDefault("streak.screener_url", cfg.Streak.ScreenerURL)
	v.SetDefault("streak.time_frame", cfg.Streak.TimeFrame)
	v.SetDefault("streak.timeout_seconds", cfg.Streak.TimeoutSeconds)
	v.SetDefault("streak.max_concurrent", cfg.Streak.MaxConcurrent)
	v.SetDefault("sink.dir", cfg.Sink.Dir)
	v.SetDefault("sink.worksheet", cfg.Sink.Worksheet)
	v.SetDefault("sink.mode", cfg.Sink.Mode)
	v.SetDefault("history.enabled", cfg.History.Enabled)
	v.SetDefault("history.path", cfg.History.Path)
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PICKER_SMTP_PASSWORD"); v != "" {
		cfg.Notifications.Email.Password = v
	}
	if v := os.Getenv("PICKER_SENDER_EMAIL"); v != "" {
		cfg.Notifications.Email.From = v
		if cfg.Notifications.Email.Username == "" {
			cfg.Notifications.Email.Username = v
		}
	}
	if v := os.Getenv("PICKER_RECEIVER_EMAIL"); v != "" {
		cfg.Notifications.Email.To = v
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.Capital <= 0 {
		return fmt.Errorf("capital must be positive, got %.2f", c.Capital)
	}

	if c.Strategy != "default" && c.Strategy != "classic" {
		return fmt.Errorf("invalid strategy: %s (must be 'default' or 'classic')", c.Strategy)
	}

	if err := c.Risk.Validate(); err != nil {
		return err
	}

	if c.Streak.AnalysisURL == "" {
		return fmt.Errorf("streak.analysis_url must be set")
	}
	if c.Streak.TimeoutSeconds <= 0 {
		return fmt.Errorf("streak.timeout_seconds must be positive")
	}
	if c.Streak.MaxConcurrent < 0 {
		return fmt.Errorf("streak.max_concurrent must be non-negative")
	}

	if c.Sink.Worksheet == "" {
		return fmt.Errorf("sink.worksheet must be set")
	}
	if c.Sink.Mode != "append" && c.Sink.Mode != "overwrite" {
		return fmt.Errorf("invalid sink mode: %s (must be 'append' or 'overwrite')", c.Sink.Mode)
	}

	return nil
}
