// Package streak provides clients for the streak.tech analytics endpoints.
package streak

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"streak-picker/internal/config"
	apperrors "streak-picker/internal/errors"
	"streak-picker/internal/models"
)

// Client retrieves per-symbol technical analysis snapshots. A single Client
// is safe for concurrent use; requests share one connection pool.
type Client struct {
	http      *resty.Client
	timeFrame string
}

// NewClient creates a client for the analytics endpoint.
func NewClient(cfg config.StreakConfig) *Client {
	http := resty.New().
		SetBaseURL(cfg.AnalysisURL).
		SetTimeout(time.Duration(cfg.TimeoutSeconds) * time.Second).
		SetHeader("Accept", "application/json")

	return &Client{
		http:      http,
		timeFrame: cfg.TimeFrame,
	}
}

// Snapshot retrieves the indicator snapshot for one symbol. A network
// failure, non-2xx status, or undecodable body yields a FetchError; no
// retry is attempted.
func (c *Client) Snapshot(ctx context.Context, sym models.Symbol) (*models.IndicatorSnapshot, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"timeFrame": c.timeFrame,
			"stock":     sym.String(),
		}).
		Get("")
	if err != nil {
		return nil, apperrors.NewFetchError(sym.String(), "request failed", err)
	}

	if resp.IsError() {
		return nil, apperrors.NewFetchStatusError(sym.String(), resp.StatusCode())
	}

	var snapshot models.IndicatorSnapshot
	if err := json.Unmarshal(resp.Body(), &snapshot); err != nil {
		return nil, apperrors.NewFetchError(sym.String(), "decoding response", err)
	}

	// The payload identifies the instrument by the query parameter, not by
	// body fields; stamp the identity from the request.
	snapshot.Segment = sym.Segment
	snapshot.Symbol = sym.Name

	return &snapshot, nil
}

// Endpoint returns the configured analysis URL, for diagnostics.
func (c *Client) Endpoint() string {
	return fmt.Sprintf("%s?timeFrame=%s", c.http.BaseURL, c.timeFrame)
}
