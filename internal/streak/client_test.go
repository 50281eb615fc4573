package streak

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "streak-picker/internal/errors"
	"streak-picker/internal/config"
	"streak-picker/internal/models"
)

func testStreakConfig(url string) config.StreakConfig {
	return config.StreakConfig{
		AnalysisURL:    url,
		ScreenerURL:    url,
		TimeFrame:      "hour",
		TimeoutSeconds: 5,
	}
}

func TestSnapshot(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("timeFrame"); got != "hour" {
			t.Errorf("timeFrame = %q, want hour", got)
		}
		if got := r.URL.Query().Get("stock"); got != "NSE:RELIANCE" {
			t.Errorf("stock = %q, want NSE:RELIANCE", got)
		}
		fmt.Fprint(w, `{"adx": 32.5, "rsi": 61.2, "close": 2501.35, "willR": -18.4}`)
	}))
	defer server.Close()

	client := NewClient(testStreakConfig(server.URL))
	snapshot, err := client.Snapshot(context.Background(), models.Symbol{Segment: "NSE", Name: "RELIANCE"})
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}

	if snapshot.Segment != "NSE" || snapshot.Symbol != "RELIANCE" {
		t.Errorf("identity = %s:%s, want NSE:RELIANCE", snapshot.Segment, snapshot.Symbol)
	}
	if snapshot.ADX != 32.5 || snapshot.RSI != 61.2 || snapshot.Close != 2501.35 {
		t.Errorf("unexpected indicator values: %+v", snapshot)
	}
	if snapshot.WillR != -18.4 {
		t.Errorf("willR = %f, want -18.4", snapshot.WillR)
	}
}

func TestSnapshotAppliesDefaults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"close": 100}`)
	}))
	defer server.Close()

	client := NewClient(testStreakConfig(server.URL))
	snapshot, err := client.Snapshot(context.Background(), models.Symbol{Segment: "NSE", Name: "SPARSE"})
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}

	if snapshot.WillR != -100 {
		t.Errorf("missing willR = %f, want default -100", snapshot.WillR)
	}
	if snapshot.ADX != 0 || snapshot.RSI != 0 {
		t.Errorf("missing indicators should default to 0, got %+v", snapshot)
	}
}

func TestSnapshotStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(testStreakConfig(server.URL))
	_, err := client.Snapshot(context.Background(), models.Symbol{Segment: "NSE", Name: "TCS"})
	if err == nil {
		t.Fatal("expected error for 502 response")
	}

	var fetchErr *apperrors.FetchError
	if !apperrors.As(err, &fetchErr) {
		t.Fatalf("error type = %T, want FetchError", err)
	}
	if fetchErr.StatusCode != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", fetchErr.StatusCode)
	}
}

func TestSnapshotMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"adx": "not a number"`)
	}))
	defer server.Close()

	client := NewClient(testStreakConfig(server.URL))
	_, err := client.Snapshot(context.Background(), models.Symbol{Segment: "NSE", Name: "TCS"})
	if err == nil {
		t.Fatal("expected decode error")
	}

	var fetchErr *apperrors.FetchError
	if !apperrors.As(err, &fetchErr) {
		t.Fatalf("error type = %T, want FetchError", err)
	}
}
