package store

import (
	"context"
	"path/filepath"
	"testing"
)

func newTestHistoryStore(t *testing.T) *HistoryStore {
	t.Helper()
	store, err := NewHistoryStore(filepath.Join(t.TempDir(), "picker.db"))
	if err != nil {
		t.Fatalf("NewHistoryStore: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRecordRunAndQuery(t *testing.T) {
	store := newTestHistoryStore(t)
	ctx := context.Background()

	rows := NewPickRows(nil)
	rows = append(rows, NewPickRow(entryDecision("RELIANCE", 0.82)))
	rows = append(rows, NewPickRow(entryDecision("TCS", 0.71)))

	run := RunRecord{
		StartedAt: storeRunAt,
		Attempted: 10,
		Fetched:   9,
		Scored:    9,
		Persisted: 2,
	}

	runID, err := store.RecordRun(ctx, run, rows)
	if err != nil {
		t.Fatalf("RecordRun: %v", err)
	}
	if runID == 0 {
		t.Fatal("expected a non-zero run id")
	}

	runs, err := store.Runs(ctx, 10)
	if err != nil {
		t.Fatalf("Runs: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("got %d runs, want 1", len(runs))
	}
	if runs[0].Attempted != 10 || runs[0].Fetched != 9 || runs[0].Scored != 9 || runs[0].Persisted != 2 {
		t.Errorf("run counters = %+v", runs[0])
	}

	picks, err := store.Picks(ctx, runID)
	if err != nil {
		t.Fatalf("Picks: %v", err)
	}
	if len(picks) != 2 {
		t.Fatalf("got %d picks, want 2", len(picks))
	}
	if picks[0].Symbol != "RELIANCE" || picks[1].Symbol != "TCS" {
		t.Errorf("picks out of persisted order: %v", picks)
	}
	if picks[0].BuyPrice == nil || *picks[0].BuyPrice != 100 {
		t.Error("pick lost its buy price in the round trip")
	}
}

func TestRunsNewestFirst(t *testing.T) {
	store := newTestHistoryStore(t)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		run := RunRecord{StartedAt: storeRunAt, Attempted: i}
		if _, err := store.RecordRun(ctx, run, nil); err != nil {
			t.Fatalf("RecordRun: %v", err)
		}
	}

	runs, err := store.Runs(ctx, 2)
	if err != nil {
		t.Fatalf("Runs: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want limit 2", len(runs))
	}
	if runs[0].Attempted != 3 || runs[1].Attempted != 2 {
		t.Errorf("runs not newest first: %+v", runs)
	}
}

func TestPicksUnknownRun(t *testing.T) {
	store := newTestHistoryStore(t)
	picks, err := store.Picks(context.Background(), 999)
	if err != nil {
		t.Fatalf("Picks: %v", err)
	}
	if len(picks) != 0 {
		t.Errorf("got %d picks for unknown run, want 0", len(picks))
	}
}
