package models

import (
	"encoding/json"

	apperrors "streak-picker/internal/errors"
)

// IndicatorSnapshot holds one symbol's technical indicator values as returned
// by the analytics endpoint for a single time frame. It is produced once at
// fetch time and never mutated.
//
// The payload is sparse in practice: missing keys keep their documented
// defaults (0 for everything except WillR, which defaults to -100 so an
// absent Williams %R reads as fully oversold rather than neutral).
type IndicatorSnapshot struct {
	Segment string `json:"segment"`
	Symbol  string `json:"symbol"`

	ADX        float64 `json:"adx"`
	MACD       float64 `json:"macd"`
	RSI        float64 `json:"rsi"`
	WillR      float64 `json:"willR"`
	StochK     float64 `json:"stochastic_k"`
	AwesomeOsc float64 `json:"awesome_oscillator"`
	Momentum   float64 `json:"momentum"`

	EMA5   float64 `json:"ema5"`
	EMA10  float64 `json:"ema10"`
	EMA20  float64 `json:"ema20"`
	EMA50  float64 `json:"ema50"`
	EMA100 float64 `json:"ema100"`
	EMA200 float64 `json:"ema200"`

	VWMA  float64 `json:"vwma"`
	Close float64 `json:"close"`

	WinSignals  float64 `json:"win_signals"`
	LossSignals float64 `json:"loss_signals"`

	// Fields consumed only by the classic strategy.
	MacLongTerm  float64 `json:"mac_long_term"`
	MacShortTerm float64 `json:"mac_short_term"`
	Change       float64 `json:"change"`
	RecMACD      float64 `json:"rec_macd"`
}

// UnmarshalJSON decodes a snapshot applying the documented defaults for
// missing keys.
func (s *IndicatorSnapshot) UnmarshalJSON(data []byte) error {
	type alias IndicatorSnapshot
	a := alias{WillR: -100}
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*s = IndicatorSnapshot(a)
	return nil
}

// EMAs returns the moving averages ordered from the shortest lookback to the
// longest.
func (s *IndicatorSnapshot) EMAs() []float64 {
	return []float64{s.EMA5, s.EMA10, s.EMA20, s.EMA50, s.EMA100, s.EMA200}
}

// WinRate returns winning signals over total signals, 0 when no signals
// have been recorded.
func (s *IndicatorSnapshot) WinRate() float64 {
	total := s.WinSignals + s.LossSignals
	if total == 0 {
		return 0
	}
	return s.WinSignals / total
}

// Validate checks the identity fields. Snapshots failing validation are
// excluded from scoring.
func (s *IndicatorSnapshot) Validate() error {
	if s.Segment == "" || s.Symbol == "" {
		return apperrors.NewMalformedSnapshotError(s.Segment, s.Symbol)
	}
	return nil
}

// Params returns the serialized snapshot for the params column of the
// persisted picks.
func (s *IndicatorSnapshot) Params() string {
	data, err := json.Marshal(s)
	if err != nil {
		return ""
	}
	return string(data)
}
