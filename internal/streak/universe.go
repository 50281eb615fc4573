package streak

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"streak-picker/internal/config"
	apperrors "streak-picker/internal/errors"
	"streak-picker/internal/models"
	"streak-picker/pkg/utils"
)

// UniverseClient walks the paginated screener listing to discover the
// tradable symbol universe. Used as a fallback when no explicit symbol set
// is provided.
type UniverseClient struct {
	http *resty.Client
}

// NewUniverseClient creates a client for the screener discovery endpoint.
func NewUniverseClient(cfg config.StreakConfig) *UniverseClient {
	http := resty.New().
		SetBaseURL(cfg.ScreenerURL).
		SetTimeout(time.Duration(cfg.TimeoutSeconds) * time.Second).
		SetHeader("Accept", "application/json")

	return &UniverseClient{http: http}
}

// screenerPage mirrors the discover endpoint's envelope:
// {data: {results: [{results: [{seg_sym}]}], total_pages}}.
type screenerPage struct {
	Data struct {
		Results []struct {
			Results []struct {
				SegSym string `json:"seg_sym"`
			} `json:"results"`
		} `json:"results"`
		TotalPages int `json:"total_pages"`
	} `json:"data"`
}

// Symbols returns the deduplicated symbol universe, sorted for a stable
// fetch order. Pages are retried with backoff; an exhausted page fails the
// whole discovery since a partial universe would silently narrow the run.
func (u *UniverseClient) Symbols(ctx context.Context) ([]models.Symbol, error) {
	seen := make(map[string]models.Symbol)

	for page := 1; ; page++ {
		result, err := utils.RetryWithResult(ctx, utils.DefaultRetryConfig(), func() (*screenerPage, error) {
			return u.fetchPage(ctx, page)
		})
		if err != nil {
			return nil, apperrors.Wrapf(err, "screener page %d", page)
		}

		for _, group := range result.Data.Results {
			for _, item := range group.Results {
				sym, err := models.ParseSymbol(item.SegSym)
				if err != nil {
					continue
				}
				seen[sym.String()] = sym
			}
		}

		if page >= result.Data.TotalPages {
			break
		}
	}

	if len(seen) == 0 {
		return nil, apperrors.ErrUniverseEmpty
	}

	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	symbols := make([]models.Symbol, 0, len(keys))
	for _, k := range keys {
		symbols = append(symbols, seen[k])
	}
	return symbols, nil
}

func (u *UniverseClient) fetchPage(ctx context.Context, page int) (*screenerPage, error) {
	var result screenerPage
	resp, err := u.http.R().
		SetContext(ctx).
		SetQueryParam("pageNumber", strconv.Itoa(page)).
		SetResult(&result).
		Get("")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, fmt.Errorf("screener returned status %d", resp.StatusCode())
	}
	return &result, nil
}
