package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadCreatesTemplate(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	// First run falls back to defaults and writes the template.
	if cfg.Capital != 100000 {
		t.Errorf("capital = %f, want default 100000", cfg.Capital)
	}
	if cfg.Strategy != "default" {
		t.Errorf("strategy = %q, want default", cfg.Strategy)
	}
	if cfg.Sink.Mode != "append" {
		t.Errorf("sink mode = %q, want append", cfg.Sink.Mode)
	}

	if _, err := os.Stat(filepath.Join(dir, "config.toml")); err != nil {
		t.Errorf("template config not created: %v", err)
	}
}

func TestLoadReadsConfigFile(t *testing.T) {
	dir := t.TempDir()
	content := `
capital = 250000.0
strategy = "classic"

[risk]
per_trade_loss_percent = 0.5

[streak]
time_frame = "day"

[sink]
mode = "overwrite"
worksheet = "Daily"
`
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0600); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Capital != 250000 {
		t.Errorf("capital = %f, want 250000", cfg.Capital)
	}
	if cfg.Strategy != "classic" {
		t.Errorf("strategy = %q, want classic", cfg.Strategy)
	}
	if cfg.Risk.PerTradeLossPercent != 0.5 {
		t.Errorf("per_trade_loss_percent = %f, want 0.5", cfg.Risk.PerTradeLossPercent)
	}
	if cfg.Streak.TimeFrame != "day" {
		t.Errorf("time_frame = %q, want day", cfg.Streak.TimeFrame)
	}
	if cfg.Sink.Mode != "overwrite" || cfg.Sink.Worksheet != "Daily" {
		t.Errorf("sink = %+v", cfg.Sink)
	}

	// Unset keys keep their defaults.
	if cfg.Risk.DailyStopLossPercent != 2 {
		t.Errorf("daily_stop_loss_percent = %f, want default 2", cfg.Risk.DailyStopLossPercent)
	}
	if cfg.Streak.AnalysisURL == "" {
		t.Error("analysis_url default lost")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("PICKER_SMTP_PASSWORD", "hunter2")
	t.Setenv("PICKER_SENDER_EMAIL", "bot@example.com")
	t.Setenv("PICKER_RECEIVER_EMAIL", "me@example.com")

	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Notifications.Email.Password != "hunter2" {
		t.Error("SMTP password override not applied")
	}
	if cfg.Notifications.Email.From != "bot@example.com" {
		t.Error("sender override not applied")
	}
	if cfg.Notifications.Email.Username != "bot@example.com" {
		t.Error("username should default to the sender")
	}
	if cfg.Notifications.Email.To != "me@example.com" {
		t.Error("receiver override not applied")
	}
}

func TestValidate(t *testing.T) {
	mutate := func(fn func(*Config)) *Config {
		cfg := Default()
		fn(cfg)
		return cfg
	}

	tests := []struct {
		name    string
		cfg     *Config
		wantErr bool
	}{
		{"defaults", Default(), false},
		{"zero capital", mutate(func(c *Config) { c.Capital = 0 }), true},
		{"negative capital", mutate(func(c *Config) { c.Capital = -1 }), true},
		{"unknown strategy", mutate(func(c *Config) { c.Strategy = "yolo" }), true},
		{"classic strategy", mutate(func(c *Config) { c.Strategy = "classic" }), false},
		{"bad sink mode", mutate(func(c *Config) { c.Sink.Mode = "read" }), true},
		{"missing worksheet", mutate(func(c *Config) { c.Sink.Worksheet = "" }), true},
		{"zero timeout", mutate(func(c *Config) { c.Streak.TimeoutSeconds = 0 }), true},
		{"negative concurrency", mutate(func(c *Config) { c.Streak.MaxConcurrent = -1 }), true},
		{"risk out of range", mutate(func(c *Config) { c.Risk.PerTradeLossPercent = 150 }), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.wantErr && err == nil {
				t.Error("expected validation error")
			}
			if !tc.wantErr && err != nil {
				t.Errorf("Validate: %v", err)
			}
		})
	}
}
