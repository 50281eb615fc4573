package models

import "fmt"

// RiskPolicy holds the risk parameters for a run. It is loaded once from
// configuration and read-only afterwards.
type RiskPolicy struct {
	MaxDrawdownPercent   float64 `mapstructure:"max_drawdown_percent"`
	PerTradeLossPercent  float64 `mapstructure:"per_trade_loss_percent"`
	DailyStopLossPercent float64 `mapstructure:"daily_stop_loss_percent"`
	MonthlyLossPercent   float64 `mapstructure:"monthly_loss_percent"`
	TradingHorizonDays   int     `mapstructure:"trading_horizon_days"`
}

// DefaultRiskPolicy returns the stock risk parameters.
func DefaultRiskPolicy() RiskPolicy {
	return RiskPolicy{
		MaxDrawdownPercent:   5,
		PerTradeLossPercent:  1,
		DailyStopLossPercent: 2,
		MonthlyLossPercent:   4,
		TradingHorizonDays:   14,
	}
}

// Validate checks that all percentages are sane.
func (p RiskPolicy) Validate() error {
	percents := map[string]float64{
		"max_drawdown_percent":    p.MaxDrawdownPercent,
		"per_trade_loss_percent":  p.PerTradeLossPercent,
		"daily_stop_loss_percent": p.DailyStopLossPercent,
		"monthly_loss_percent":    p.MonthlyLossPercent,
	}
	for name, v := range percents {
		if v < 0 || v > 100 {
			return fmt.Errorf("%s must be between 0 and 100, got %.2f", name, v)
		}
	}
	if p.TradingHorizonDays < 0 {
		return fmt.Errorf("trading_horizon_days must be non-negative, got %d", p.TradingHorizonDays)
	}
	return nil
}
