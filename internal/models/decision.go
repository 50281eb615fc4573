package models

import "time"

// Recommendation is the advisory label derived from the composite score. It
// narrates the reason column only; the binding entry decision uses its own
// threshold.
type Recommendation string

const (
	RecommendationBuy  Recommendation = "BUY"
	RecommendationHold Recommendation = "HOLD"
	RecommendationSell Recommendation = "SELL"
)

// GTT is a good-till-triggered order pair bundling the stop-loss and target
// triggers for a position.
type GTT struct {
	StopLossTrigger float64 `json:"stop_loss_trigger"`
	TargetTrigger   float64 `json:"target_trigger"`
}

// TradeDecision is the scored outcome for one snapshot. Created once by the
// scorer, never mutated, and discarded after persistence.
//
// Price and sizing fields are populated only when Enter is true; otherwise
// Reason explains why the symbol was passed over.
type TradeDecision struct {
	Symbol  string
	Segment string

	// Score is the weighted composite in [0,1], rounded to 4 decimals.
	Score          float64
	Recommendation Recommendation
	Reason         string
	Enter          bool

	BuyPrice      float64
	StopLossPrice float64
	TargetPrice   float64
	GTT           *GTT
	MaxShares     int

	// Components holds the normalized per-factor sub-scores that went into
	// the composite, keyed by factor name.
	Components map[string]float64

	// Params is the serialized snapshot the decision was derived from.
	Params string

	// GeneratedAt is the run timestamp, computed once per run and threaded
	// through to persistence.
	GeneratedAt time.Time
}

// SegSym returns the decision's "SEG:SYM" identifier.
func (d *TradeDecision) SegSym() string {
	return d.Segment + ":" + d.Symbol
}
