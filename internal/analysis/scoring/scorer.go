// Package scoring turns indicator snapshots into scored trade decisions.
package scoring

import (
	"math"
	"time"

	"streak-picker/internal/models"
	"streak-picker/pkg/utils"
)

// Scorer applies a strategy's weight table to snapshots. Scoring is pure:
// no I/O, no clock reads, no randomness — identical inputs always produce
// identical decisions.
type Scorer struct {
	strategy Strategy
}

// NewScorer creates a scorer with the default strategy.
func NewScorer() *Scorer {
	return &Scorer{strategy: DefaultStrategy()}
}

// NewScorerWithStrategy creates a scorer with a custom strategy. The
// strategy table is validated up front so a malformed weight set fails the
// run at startup instead of skewing every score.
func NewScorerWithStrategy(st Strategy) (*Scorer, error) {
	if err := st.Validate(); err != nil {
		return nil, err
	}
	return &Scorer{strategy: st}, nil
}

// Strategy returns the scorer's strategy table.
func (sc *Scorer) Strategy() Strategy {
	return sc.strategy
}

// Score produces the trade decision for one snapshot under the given risk
// policy and capital. runAt is the run timestamp, computed once per run and
// threaded through to persistence.
//
// Missing indicator fields never fail scoring; their documented defaults
// produce degenerate near-zero sub-scores instead.
func (sc *Scorer) Score(snapshot *models.IndicatorSnapshot, policy models.RiskPolicy, capital float64, runAt time.Time) models.TradeDecision {
	components := make(map[string]float64, len(sc.strategy.Factors))

	var weighted float64
	for _, f := range sc.strategy.Factors {
		sub := clamp01(f.Score(snapshot))
		components[f.Name] = sub
		weighted += sub * f.Weight
	}

	score := utils.Round(weighted, 4)
	recommendation, reason := sc.classify(score)

	decision := models.TradeDecision{
		Symbol:         snapshot.Symbol,
		Segment:        snapshot.Segment,
		Score:          score,
		Recommendation: recommendation,
		Components:     components,
		Params:         snapshot.Params(),
		GeneratedAt:    runAt,
	}

	if score < sc.strategy.EntryThreshold {
		decision.Reason = reason
		return decision
	}

	decision.Enter = true

	buyPrice := utils.Round(snapshot.Close, 2)
	stopLossPrice := utils.Round(buyPrice*(1-sc.strategy.StopLossPercent(policy)/100), 2)
	targetPrice := utils.Round(buyPrice*(1+sc.strategy.TargetPercent/100), 2)

	decision.BuyPrice = buyPrice
	decision.StopLossPrice = stopLossPrice
	decision.TargetPrice = targetPrice
	decision.GTT = &models.GTT{
		StopLossTrigger: stopLossPrice,
		TargetTrigger:   targetPrice,
	}
	decision.MaxShares = maxShares(capital, policy.PerTradeLossPercent, buyPrice, stopLossPrice)

	return decision
}

// classify maps the composite score onto the advisory label and its
// narrative. Independent from the binding entry threshold.
func (sc *Scorer) classify(score float64) (models.Recommendation, string) {
	switch {
	case score >= sc.strategy.BuyCutoff:
		return models.RecommendationBuy, "Strong trend and positive momentum"
	case score >= sc.strategy.HoldCutoff:
		return models.RecommendationHold, "Moderate momentum, trend still intact"
	default:
		return models.RecommendationSell, "Weakening trend or momentum signals"
	}
}

// maxShares sizes the position so one stop-out loses at most the per-trade
// risk budget. Zero risk-per-share cannot be sized meaningfully and yields
// zero shares rather than an error.
func maxShares(capital, perTradeLossPercent, buyPrice, stopLossPrice float64) int {
	riskPerShare := buyPrice - stopLossPrice
	if riskPerShare <= 0 {
		return 0
	}
	maxRisk := capital * perTradeLossPercent / 100
	return int(math.Floor(maxRisk / riskPerShare))
}
