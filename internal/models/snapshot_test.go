package models

import (
	"encoding/json"
	"testing"

	apperrors "streak-picker/internal/errors"
)

func TestSnapshotUnmarshalDefaults(t *testing.T) {
	var s IndicatorSnapshot
	if err := json.Unmarshal([]byte(`{"close": 100.5, "adx": 28}`), &s); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if s.Close != 100.5 || s.ADX != 28 {
		t.Errorf("present fields lost: %+v", s)
	}
	if s.WillR != -100 {
		t.Errorf("missing willR = %f, want default -100", s.WillR)
	}
	if s.RSI != 0 || s.MACD != 0 || s.VWMA != 0 {
		t.Errorf("missing indicators should default to 0: %+v", s)
	}
}

func TestSnapshotUnmarshalExplicitWillR(t *testing.T) {
	var s IndicatorSnapshot
	if err := json.Unmarshal([]byte(`{"willR": -35.2}`), &s); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if s.WillR != -35.2 {
		t.Errorf("willR = %f, want -35.2", s.WillR)
	}
}

func TestSnapshotValidate(t *testing.T) {
	tests := []struct {
		name    string
		segment string
		symbol  string
		wantErr bool
	}{
		{"complete", "NSE", "TCS", false},
		{"missing segment", "", "TCS", true},
		{"missing symbol", "NSE", "", true},
		{"missing both", "", "", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := IndicatorSnapshot{Segment: tc.segment, Symbol: tc.symbol}
			err := s.Validate()
			if tc.wantErr {
				var malformed *apperrors.MalformedSnapshotError
				if !apperrors.As(err, &malformed) {
					t.Errorf("error = %v, want MalformedSnapshotError", err)
				}
			} else if err != nil {
				t.Errorf("Validate: %v", err)
			}
		})
	}
}

func TestWinRate(t *testing.T) {
	tests := []struct {
		wins, losses, want float64
	}{
		{8, 2, 0.8},
		{0, 0, 0},
		{5, 0, 1},
		{0, 5, 0},
	}

	for _, tc := range tests {
		s := IndicatorSnapshot{WinSignals: tc.wins, LossSignals: tc.losses}
		if got := s.WinRate(); got != tc.want {
			t.Errorf("WinRate(%v, %v) = %v, want %v", tc.wins, tc.losses, got, tc.want)
		}
	}
}

func TestEMAsOrder(t *testing.T) {
	s := IndicatorSnapshot{EMA5: 5, EMA10: 10, EMA20: 20, EMA50: 50, EMA100: 100, EMA200: 200}
	emas := s.EMAs()
	want := []float64{5, 10, 20, 50, 100, 200}
	for i, w := range want {
		if emas[i] != w {
			t.Errorf("EMAs()[%d] = %v, want %v", i, emas[i], w)
		}
	}
}

func TestParamsRoundTrip(t *testing.T) {
	s := IndicatorSnapshot{Segment: "NSE", Symbol: "TCS", ADX: 30, WillR: -40}

	var decoded IndicatorSnapshot
	if err := json.Unmarshal([]byte(s.Params()), &decoded); err != nil {
		t.Fatalf("Unmarshal(Params()): %v", err)
	}
	if decoded != s {
		t.Errorf("round trip mismatch: %+v != %+v", decoded, s)
	}
}
