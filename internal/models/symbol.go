package models

import (
	"fmt"
	"strings"
)

// Symbol identifies an instrument as segment + trading symbol,
// matching the "SEG:SYM" form used by the analytics endpoints.
type Symbol struct {
	Segment string
	Name    string
}

// ParseSymbol parses a "SEG:SYM" identifier.
func ParseSymbol(s string) (Symbol, error) {
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Symbol{}, fmt.Errorf("invalid symbol %q: expected SEGMENT:SYMBOL", s)
	}
	return Symbol{Segment: parts[0], Name: parts[1]}, nil
}

// ParseSymbols parses a list of "SEG:SYM" identifiers, failing on the first
// malformed entry.
func ParseSymbols(raw []string) ([]Symbol, error) {
	symbols := make([]Symbol, 0, len(raw))
	for _, r := range raw {
		sym, err := ParseSymbol(strings.TrimSpace(r))
		if err != nil {
			return nil, err
		}
		symbols = append(symbols, sym)
	}
	return symbols, nil
}

// String returns the "SEG:SYM" form.
func (s Symbol) String() string {
	return s.Segment + ":" + s.Name
}
