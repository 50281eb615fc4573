package models

import "testing"

func TestParseSymbol(t *testing.T) {
	tests := []struct {
		input   string
		want    Symbol
		wantErr bool
	}{
		{"NSE:RELIANCE", Symbol{Segment: "NSE", Name: "RELIANCE"}, false},
		{"BSE:SBIN", Symbol{Segment: "BSE", Name: "SBIN"}, false},
		{"NSE:M&M", Symbol{Segment: "NSE", Name: "M&M"}, false},
		{"RELIANCE", Symbol{}, true},
		{":RELIANCE", Symbol{}, true},
		{"NSE:", Symbol{}, true},
		{"", Symbol{}, true},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParseSymbol(tc.input)
			if tc.wantErr {
				if err == nil {
					t.Errorf("ParseSymbol(%q) succeeded, want error", tc.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseSymbol(%q): %v", tc.input, err)
			}
			if got != tc.want {
				t.Errorf("ParseSymbol(%q) = %v, want %v", tc.input, got, tc.want)
			}
		})
	}
}

func TestParseSymbols(t *testing.T) {
	symbols, err := ParseSymbols([]string{"NSE:TCS", " NSE:INFY "})
	if err != nil {
		t.Fatalf("ParseSymbols: %v", err)
	}
	if len(symbols) != 2 {
		t.Fatalf("got %d symbols, want 2", len(symbols))
	}
	if symbols[1].Name != "INFY" {
		t.Errorf("whitespace not trimmed: %v", symbols[1])
	}

	if _, err := ParseSymbols([]string{"NSE:TCS", "bogus"}); err == nil {
		t.Error("expected error on first malformed entry")
	}
}

func TestSymbolString(t *testing.T) {
	s := Symbol{Segment: "NSE", Name: "RELIANCE"}
	if got := s.String(); got != "NSE:RELIANCE" {
		t.Errorf("String() = %q, want NSE:RELIANCE", got)
	}
}
