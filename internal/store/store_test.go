package store

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	apperrors "streak-picker/internal/errors"
	"streak-picker/internal/models"
)

var storeRunAt = time.Date(2025, 10, 2, 14, 5, 0, 0, time.UTC)

func entryDecision(symbol string, score float64) models.TradeDecision {
	return models.TradeDecision{
		Symbol:         symbol,
		Segment:        "NSE",
		Score:          score,
		Recommendation: models.RecommendationBuy,
		Enter:          true,
		BuyPrice:       100,
		StopLossPrice:  98,
		TargetPrice:    104,
		GTT:            &models.GTT{StopLossTrigger: 98, TargetTrigger: 104},
		MaxShares:      500,
		Params:         `{"adx":45}`,
		GeneratedAt:    storeRunAt,
	}
}

func TestParseMode(t *testing.T) {
	for _, valid := range []string{"overwrite", "append", "read"} {
		if _, err := ParseMode(valid); err != nil {
			t.Errorf("ParseMode(%q): %v", valid, err)
		}
	}

	_, err := ParseMode("upsert")
	if !apperrors.Is(err, apperrors.ErrUnknownMode) {
		t.Errorf("error = %v, want ErrUnknownMode", err)
	}
}

func TestNewPickRow(t *testing.T) {
	row := NewPickRow(entryDecision("RELIANCE", 0.7321))

	if row.DateTime == "" {
		t.Error("expected formatted run timestamp")
	}
	if row.WeightedScore != 0.7321 {
		t.Errorf("score = %f, want 0.7321", row.WeightedScore)
	}
	if row.BuyPrice == nil || *row.BuyPrice != 100 {
		t.Error("entry row must carry the buy price")
	}
	if row.MaxShares == nil || *row.MaxShares != 500 {
		t.Error("entry row must carry the share count")
	}
	if row.GTT == "" {
		t.Error("entry row must carry the serialized GTT triggers")
	}
	if !row.Enter {
		t.Error("enter flag lost in rendering")
	}
}

func TestNewPickRowNonEntry(t *testing.T) {
	d := models.TradeDecision{
		Symbol:      "WEAK",
		Segment:     "NSE",
		Score:       0.41,
		Reason:      "Weakening trend or momentum signals",
		GeneratedAt: storeRunAt,
	}

	row := NewPickRow(d)
	if row.BuyPrice != nil || row.MaxShares != nil || row.StopLossPrice != nil || row.TargetPrice != nil {
		t.Error("non-entry row must keep price and sizing cells empty")
	}
	if row.GTT != "" {
		t.Errorf("non-entry GTT = %q, want empty", row.GTT)
	}
	if row.Reason == "" {
		t.Error("non-entry row must carry its reason")
	}
}

func newTestAdapter(t *testing.T) *Adapter {
	t.Helper()
	ws, err := NewCSVWorksheet(t.TempDir(), "Picks")
	if err != nil {
		t.Fatalf("NewCSVWorksheet: %v", err)
	}
	return NewAdapter(ws, zerolog.Nop())
}

func TestPersistOverwrite(t *testing.T) {
	adapter := newTestAdapter(t)
	ctx := context.Background()

	rows := NewPickRows([]models.TradeDecision{entryDecision("A", 0.8), entryDecision("B", 0.7)})
	if err := adapter.Persist(ctx, rows, ModeOverwrite); err != nil {
		t.Fatalf("Persist: %v", err)
	}

	got, err := adapter.Read(ctx)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("read %d rows, want 2", len(got))
	}
	if got[0].Symbol != "A" || got[1].Symbol != "B" {
		t.Errorf("rows out of order: %v", got)
	}

	// Overwrite replaces, never accumulates.
	rows2 := NewPickRows([]models.TradeDecision{entryDecision("C", 0.9)})
	if err := adapter.Persist(ctx, rows2, ModeOverwrite); err != nil {
		t.Fatalf("Persist: %v", err)
	}
	got, err = adapter.Read(ctx)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(got) != 1 || got[0].Symbol != "C" {
		t.Errorf("after overwrite got %v, want single row C", got)
	}
}

// An append against an empty worksheet lays out header + rows exactly like
// an overwrite would.
func TestPersistAppendOnEmptyWorksheet(t *testing.T) {
	adapter := newTestAdapter(t)
	ctx := context.Background()

	rows := NewPickRows([]models.TradeDecision{entryDecision("A", 0.8)})
	if err := adapter.Persist(ctx, rows, ModeAppend); err != nil {
		t.Fatalf("Persist: %v", err)
	}

	got, err := adapter.Read(ctx)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(got) != 1 || got[0].Symbol != "A" {
		t.Errorf("got %v, want single row A", got)
	}
}

func TestPersistAppendExtends(t *testing.T) {
	adapter := newTestAdapter(t)
	ctx := context.Background()

	first := NewPickRows([]models.TradeDecision{entryDecision("A", 0.8)})
	if err := adapter.Persist(ctx, first, ModeOverwrite); err != nil {
		t.Fatalf("Persist: %v", err)
	}

	second := NewPickRows([]models.TradeDecision{entryDecision("B", 0.7), entryDecision("C", 0.6)})
	if err := adapter.Persist(ctx, second, ModeAppend); err != nil {
		t.Fatalf("Persist: %v", err)
	}

	got, err := adapter.Read(ctx)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	want := []string{"A", "B", "C"}
	if len(got) != len(want) {
		t.Fatalf("read %d rows, want %d", len(got), len(want))
	}
	for i, sym := range want {
		if got[i].Symbol != sym {
			t.Errorf("rows[%d] = %s, want %s", i, got[i].Symbol, sym)
		}
	}
}

func TestPersistRejectsReadMode(t *testing.T) {
	adapter := newTestAdapter(t)
	err := adapter.Persist(context.Background(), nil, ModeRead)
	if !apperrors.Is(err, apperrors.ErrUnknownMode) {
		t.Errorf("error = %v, want ErrUnknownMode", err)
	}
}

func TestReadMissingWorksheet(t *testing.T) {
	adapter := newTestAdapter(t)
	rows, err := adapter.Read(context.Background())
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(rows) != 0 {
		t.Errorf("read %d rows from a missing file, want 0", len(rows))
	}
}
