// Package trading orchestrates a full pick run: discover, fetch, score,
// rank, persist, record, notify.
package trading

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"streak-picker/internal/analysis/scoring"
	"streak-picker/internal/config"
	apperrors "streak-picker/internal/errors"
	"streak-picker/internal/fetch"
	"streak-picker/internal/logging"
	"streak-picker/internal/models"
	"streak-picker/internal/notify"
	"streak-picker/internal/store"
	"streak-picker/pkg/utils"
)

// SymbolSource discovers the symbol universe when no explicit symbols are
// given.
type SymbolSource interface {
	Symbols(ctx context.Context) ([]models.Symbol, error)
}

// RunSummary reports what one run did at each stage. Attempted counts input
// symbols, Fetched the snapshots that arrived, Scored the snapshots that
// survived validation, Persisted the ranked picks written to the sink.
type RunSummary struct {
	StartedAt time.Time
	Attempted int
	Fetched   int
	Scored    int
	Persisted int
	Failures  []fetch.Result
	Picks     []store.PickRow
}

// Pipeline wires the run stages together. Construction is explicit so tests
// can swap any stage.
type Pipeline struct {
	fetcher  *fetch.Fetcher
	universe SymbolSource
	scorer   *scoring.Scorer
	sink     *store.Adapter
	history  *store.HistoryStore // nil disables run history
	notifier notify.Notifier
	cfg      *config.Config
	logger   zerolog.Logger
}

// NewPipeline assembles a run pipeline from its stages.
func NewPipeline(
	fetcher *fetch.Fetcher,
	universe SymbolSource,
	scorer *scoring.Scorer,
	sink *store.Adapter,
	history *store.HistoryStore,
	notifier notify.Notifier,
	cfg *config.Config,
	logger zerolog.Logger,
) *Pipeline {
	if notifier == nil {
		notifier = notify.NewNoOpNotifier()
	}
	return &Pipeline{
		fetcher:  fetcher,
		universe: universe,
		scorer:   scorer,
		sink:     sink,
		history:  history,
		notifier: notifier,
		cfg:      cfg,
		logger:   logger,
	}
}

// Run executes one end-to-end pick run. When symbols is empty, the universe
// source supplies the symbol set. Per-symbol fetch failures and malformed
// snapshots are logged and skipped; a persistence failure is fatal. History
// recording and notification are best-effort and never fail the run.
func (p *Pipeline) Run(ctx context.Context, symbols []models.Symbol, mode store.Mode) (*RunSummary, error) {
	runAt := utils.RunTimestamp()
	logger := logging.WithRun(p.logger, runAt)

	if len(symbols) == 0 {
		discovered, err := p.universe.Symbols(ctx)
		if err != nil {
			return nil, apperrors.Wrap(err, "discovering symbol universe")
		}
		symbols = discovered
		logger.Info().Int("symbols", len(symbols)).Msg("Universe discovered")
	}
	if len(symbols) == 0 {
		return nil, apperrors.ErrNoSymbols
	}

	summary := &RunSummary{
		StartedAt: runAt,
		Attempted: len(symbols),
	}

	results := p.fetcher.FetchAll(ctx, symbols)
	snapshots, failures := fetch.Partition(results)
	summary.Fetched = len(snapshots)
	summary.Failures = failures

	for _, f := range failures {
		logger.Warn().
			Str("symbol", f.Symbol.String()).
			Err(f.Err).
			Msg("Symbol skipped after fetch failure")
	}

	decisions := make([]models.TradeDecision, 0, len(snapshots))
	for _, snapshot := range snapshots {
		if err := snapshot.Validate(); err != nil {
			logger.Warn().Err(err).Msg("Malformed snapshot skipped")
			continue
		}

		decision := p.scorer.Score(snapshot, p.cfg.Risk, p.cfg.Capital, runAt)
		logging.LogDecision(logger, decision.SegSym(), decision.Score, decision.Enter, decision.Reason)
		decisions = append(decisions, decision)
	}
	summary.Scored = len(decisions)

	ranked := scoring.Rank(decisions)
	rows := store.NewPickRows(ranked)

	if err := p.sink.Persist(ctx, rows, mode); err != nil {
		return summary, err
	}
	summary.Persisted = len(rows)
	summary.Picks = rows

	if p.history != nil {
		record := store.RunRecord{
			StartedAt: runAt,
			Attempted: summary.Attempted,
			Fetched:   summary.Fetched,
			Scored:    summary.Scored,
			Persisted: summary.Persisted,
		}
		if _, err := p.history.RecordRun(ctx, record, rows); err != nil {
			logger.Error().Err(err).Msg("Run history recording failed")
		}
	}

	if len(rows) > 0 {
		if err := p.notifier.SendPicks(ctx, rows, runAt); err != nil {
			logger.Error().Err(err).Msg("Pick notification failed")
		}
	}

	return summary, nil
}
