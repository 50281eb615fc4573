// Package fetch drives concurrent indicator retrieval across a symbol set.
package fetch

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"streak-picker/internal/logging"
	"streak-picker/internal/models"
)

// SnapshotSource retrieves one indicator snapshot per symbol.
type SnapshotSource interface {
	Snapshot(ctx context.Context, sym models.Symbol) (*models.IndicatorSnapshot, error)
}

// Result is the outcome of one retrieval: either a snapshot or the error
// that replaced it. Exactly one of Snapshot/Err is set.
type Result struct {
	Symbol   models.Symbol
	Snapshot *models.IndicatorSnapshot
	Err      error
}

// OK reports whether the retrieval produced a snapshot.
func (r Result) OK() bool {
	return r.Err == nil
}

// Fetcher fans one retrieval per symbol out over a shared source. Failures
// are isolated per symbol: one failed retrieval never cancels or delays its
// siblings, and the batch always yields one Result per input symbol.
type Fetcher struct {
	source SnapshotSource
	limit  int // max in-flight retrievals, 0 = unbounded
	logger zerolog.Logger
}

// NewFetcher creates a fetcher over the given source.
func NewFetcher(source SnapshotSource, limit int, logger zerolog.Logger) *Fetcher {
	return &Fetcher{
		source: source,
		limit:  limit,
		logger: logger,
	}
}

// FetchAll retrieves snapshots for every symbol concurrently and returns one
// result per input, in input order. Duplicate symbols are each retrieved
// independently. No retry is attempted; retry policy belongs to the caller.
func (f *Fetcher) FetchAll(ctx context.Context, symbols []models.Symbol) []Result {
	results := make([]Result, len(symbols))

	var sem chan struct{}
	if f.limit > 0 {
		sem = make(chan struct{}, f.limit)
	}

	var wg sync.WaitGroup
	for i, sym := range symbols {
		wg.Add(1)
		go func(i int, sym models.Symbol) {
			defer wg.Done()

			if sem != nil {
				sem <- struct{}{}
				defer func() { <-sem }()
			}

			start := time.Now()
			snapshot, err := f.source.Snapshot(ctx, sym)
			logging.LogFetch(f.logger, sym.String(), time.Since(start), err)

			results[i] = Result{Symbol: sym, Snapshot: snapshot, Err: err}
		}(i, sym)
	}
	wg.Wait()

	return results
}

// Partition splits results into successful snapshots and failures.
func Partition(results []Result) (snapshots []*models.IndicatorSnapshot, failures []Result) {
	for _, r := range results {
		if r.OK() {
			snapshots = append(snapshots, r.Snapshot)
		} else {
			failures = append(failures, r)
		}
	}
	return snapshots, failures
}
