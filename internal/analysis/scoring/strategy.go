package scoring

import (
	"fmt"
	"math"

	"streak-picker/internal/models"
)

// weightTolerance is the allowed deviation of a strategy's total weight
// from 1.0.
const weightTolerance = 1e-6

// Factor computes one normalized sub-score from a snapshot. Outputs are
// clamped to [0,1] by the scorer before weighting.
type Factor struct {
	Name   string
	Weight float64
	Score  func(s *models.IndicatorSnapshot) float64
}

// Strategy bundles the weight/normalization table the scorer applies to a
// snapshot. Strategies are static policy, not derived parameters; swapping
// one never touches the scoring algorithm itself.
type Strategy struct {
	Name    string
	Factors []Factor

	// EntryThreshold is the binding cutoff for the enter decision.
	EntryThreshold float64

	// BuyCutoff and HoldCutoff classify the advisory recommendation; they
	// are independent from the entry decision.
	BuyCutoff  float64
	HoldCutoff float64

	// TargetPercent sets the target price above the buy price.
	TargetPercent float64

	// FixedStopLossPercent overrides the risk policy's daily stop-loss when
	// positive. Zero means policy-driven.
	FixedStopLossPercent float64
}

// TotalWeight returns the sum of all factor weights.
func (st Strategy) TotalWeight() float64 {
	var total float64
	for _, f := range st.Factors {
		total += f.Weight
	}
	return total
}

// Validate checks the strategy table invariants: named factors, weights
// summing to 1.0, and sane cutoffs.
func (st Strategy) Validate() error {
	if len(st.Factors) == 0 {
		return fmt.Errorf("strategy %q has no factors", st.Name)
	}
	for _, f := range st.Factors {
		if f.Name == "" || f.Score == nil {
			return fmt.Errorf("strategy %q has an incomplete factor", st.Name)
		}
		if f.Weight < 0 {
			return fmt.Errorf("strategy %q: factor %q has negative weight", st.Name, f.Name)
		}
	}
	if total := st.TotalWeight(); math.Abs(total-1.0) > weightTolerance {
		return fmt.Errorf("strategy %q: weights sum to %.6f, want 1.0", st.Name, total)
	}
	if st.EntryThreshold <= 0 || st.EntryThreshold >= 1 {
		return fmt.Errorf("strategy %q: entry threshold %.2f outside (0,1)", st.Name, st.EntryThreshold)
	}
	if st.HoldCutoff > st.BuyCutoff {
		return fmt.Errorf("strategy %q: hold cutoff above buy cutoff", st.Name)
	}
	return nil
}

// StopLossPercent resolves the stop-loss distance for an entry under the
// given risk policy.
func (st Strategy) StopLossPercent(policy models.RiskPolicy) float64 {
	if st.FixedStopLossPercent > 0 {
		return st.FixedStopLossPercent
	}
	return policy.DailyStopLossPercent
}

// StrategyForName returns the named built-in strategy.
func StrategyForName(name string) (Strategy, error) {
	switch name {
	case "", "default":
		return DefaultStrategy(), nil
	case "classic":
		return ClassicStrategy(), nil
	default:
		return Strategy{}, fmt.Errorf("unknown strategy %q", name)
	}
}

// DefaultStrategy returns the multi-factor table: trend 40%, momentum 35%,
// confirmation 15%, performance 10%. Stop-loss follows the risk policy.
func DefaultStrategy() Strategy {
	return Strategy{
		Name:           "default",
		EntryThreshold: 0.6,
		BuyCutoff:      0.70,
		HoldCutoff:     0.45,
		TargetPercent:  4,
		Factors: []Factor{
			// Trend strength (40%)
			{Name: "trend_strength", Weight: 0.15, Score: func(s *models.IndicatorSnapshot) float64 {
				return normalize(s.ADX, 0, 50) // >25 = trending
			}},
			{Name: "ema_alignment", Weight: 0.10, Score: func(s *models.IndicatorSnapshot) float64 {
				return stepBool(emasDescending(s.EMAs()))
			}},
			{Name: "macd_trend", Weight: 0.15, Score: func(s *models.IndicatorSnapshot) float64 {
				return step(s.MACD)
			}},
			// Momentum (35%)
			{Name: "rsi_score", Weight: 0.10, Score: func(s *models.IndicatorSnapshot) float64 {
				return normalize(s.RSI, 30, 70) // 0 near oversold, 1 near overbought
			}},
			{Name: "stoch_score", Weight: 0.10, Score: func(s *models.IndicatorSnapshot) float64 {
				return normalize(s.StochK, 20, 80)
			}},
			{Name: "willr_score", Weight: 0.05, Score: func(s *models.IndicatorSnapshot) float64 {
				return 1 - normalize(-s.WillR, 20, 80) // lower raw value = oversold
			}},
			{Name: "momentum_score", Weight: 0.10, Score: func(s *models.IndicatorSnapshot) float64 {
				return step(s.Momentum)
			}},
			// Volume/confirmation (15%)
			{Name: "ao_score", Weight: 0.10, Score: func(s *models.IndicatorSnapshot) float64 {
				return normalize(s.AwesomeOsc, -50, 50)
			}},
			{Name: "vwma_score", Weight: 0.05, Score: func(s *models.IndicatorSnapshot) float64 {
				return stepBool(s.Close >= s.VWMA)
			}},
			// Performance (10%)
			{Name: "performance_score", Weight: 0.10, Score: func(s *models.IndicatorSnapshot) float64 {
				return normalize(s.WinRate(), 0.3, 0.8)
			}},
		},
	}
}

// ClassicStrategy returns the legacy weight table. It is a documented
// alternate configuration: it ignores the policy's stop-loss in favor of a
// fixed 2% and leans on the broader recommendation fields of the payload.
func ClassicStrategy() Strategy {
	return Strategy{
		Name:                 "classic",
		EntryThreshold:       0.6,
		BuyCutoff:            0.70,
		HoldCutoff:           0.45,
		TargetPercent:        4,
		FixedStopLossPercent: 2,
		Factors: []Factor{
			{Name: "adx", Weight: 0.15, Score: func(s *models.IndicatorSnapshot) float64 {
				return clamp01(s.ADX / 40)
			}},
			{Name: "rsi", Weight: 0.15, Score: func(s *models.IndicatorSnapshot) float64 {
				return clamp01(s.RSI / 100)
			}},
			{Name: "macd", Weight: 0.15, Score: func(s *models.IndicatorSnapshot) float64 {
				return clamp01(s.MACD / 1000)
			}},
			{Name: "mac_long_term", Weight: 0.10, Score: func(s *models.IndicatorSnapshot) float64 {
				return step(s.MacLongTerm)
			}},
			{Name: "mac_short_term", Weight: 0.10, Score: func(s *models.IndicatorSnapshot) float64 {
				return step(s.MacShortTerm)
			}},
			{Name: "willr", Weight: 0.10, Score: func(s *models.IndicatorSnapshot) float64 {
				return clamp01(-s.WillR / 100)
			}},
			{Name: "stochastic_k", Weight: 0.10, Score: func(s *models.IndicatorSnapshot) float64 {
				return clamp01(s.StochK / 100)
			}},
			{Name: "change", Weight: 0.10, Score: func(s *models.IndicatorSnapshot) float64 {
				return step(s.Change)
			}},
			{Name: "rec_macd", Weight: 0.05, Score: func(s *models.IndicatorSnapshot) float64 {
				return clamp01(s.RecMACD)
			}},
		},
	}
}

// normalize maps value linearly from [lower, upper] onto [0,1], clamping at
// the edges.
func normalize(value, lower, upper float64) float64 {
	return clamp01((value - lower) / (upper - lower))
}

// step is the positive-or-zero directional flag.
func step(value float64) float64 {
	if value > 0 {
		return 1
	}
	return 0
}

func stepBool(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// emasDescending reports whether the moving averages are strictly ordered
// shortest > ... > longest.
func emasDescending(emas []float64) bool {
	for i := 0; i < len(emas)-1; i++ {
		if emas[i] <= emas[i+1] {
			return false
		}
	}
	return true
}

// clamp01 restricts a value to [0,1]. NaN collapses to 0 so a degenerate
// payload can only dilute a score, never poison it.
func clamp01(value float64) float64 {
	if math.IsNaN(value) || value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}
