// Package store provides persistence for ranked trade picks.
package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	apperrors "streak-picker/internal/errors"
	"streak-picker/internal/logging"
	"streak-picker/internal/models"
	"streak-picker/pkg/utils"
)

// Mode selects how picks are applied to the persisted store.
type Mode string

const (
	ModeOverwrite Mode = "overwrite"
	ModeAppend    Mode = "append"
	ModeRead      Mode = "read"
)

// ParseMode parses a mode string.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeOverwrite, ModeAppend, ModeRead:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("%w: %q", apperrors.ErrUnknownMode, s)
	}
}

// PickRow is one persisted pick, columns in display order.
type PickRow struct {
	DateTime      string   `csv:"date_time"`
	WeightedScore float64  `csv:"weighted_score"`
	Segment       string   `csv:"segment"`
	Symbol        string   `csv:"symbol"`
	BuyPrice      *float64 `csv:"buy_price"`
	MaxShares     *int     `csv:"max_shares"`
	StopLossPrice *float64 `csv:"stop_loss_price"`
	TargetPrice   *float64 `csv:"target_price"`
	GTT           string   `csv:"gtt"`
	Enter         bool     `csv:"enter"`
	Reason        string   `csv:"reason"`
	Params        string   `csv:"params"`
}

// NewPickRow renders a trade decision into its persisted form. Price and
// sizing cells stay empty for non-entry decisions.
func NewPickRow(d models.TradeDecision) PickRow {
	row := PickRow{
		DateTime:      utils.FormatRunTime(d.GeneratedAt),
		WeightedScore: d.Score,
		Segment:       d.Segment,
		Symbol:        d.Symbol,
		Enter:         d.Enter,
		Reason:        d.Reason,
		Params:        d.Params,
	}

	if d.Enter {
		buy, shares, stop, target := d.BuyPrice, d.MaxShares, d.StopLossPrice, d.TargetPrice
		row.BuyPrice = &buy
		row.MaxShares = &shares
		row.StopLossPrice = &stop
		row.TargetPrice = &target
		if d.GTT != nil {
			if gtt, err := json.Marshal(d.GTT); err == nil {
				row.GTT = string(gtt)
			}
		}
	}

	return row
}

// NewPickRows renders a ranked decision list.
func NewPickRows(decisions []models.TradeDecision) []PickRow {
	rows := make([]PickRow, 0, len(decisions))
	for _, d := range decisions {
		rows = append(rows, NewPickRow(d))
	}
	return rows
}

// Worksheet is a tabular store addressed by name. Row counts include the
// header row when present.
type Worksheet interface {
	Name() string
	RowCount(ctx context.Context) (int, error)
	Overwrite(ctx context.Context, rows []PickRow) error
	Append(ctx context.Context, rows []PickRow) error
	Read(ctx context.Context) ([]PickRow, error)
}

// Adapter persists ranked picks into a worksheet with idempotent mode
// resolution. Single-writer usage is assumed; concurrent runs against the
// same worksheet are not coordinated.
type Adapter struct {
	ws     Worksheet
	logger zerolog.Logger
}

// NewAdapter creates a sink adapter over the given worksheet.
func NewAdapter(ws Worksheet, logger zerolog.Logger) *Adapter {
	return &Adapter{ws: ws, logger: logger}
}

// Persist writes rows under the requested mode. An append against a
// worksheet with fewer than two rows (empty or header-only) is treated as an
// overwrite, so the first run always lays out header + rows cleanly.
// Failures are fatal to the run and surfaced unmodified.
func (a *Adapter) Persist(ctx context.Context, rows []PickRow, mode Mode) error {
	resolved, err := a.resolveMode(ctx, mode)
	if err != nil {
		return err
	}

	switch resolved {
	case ModeOverwrite:
		if err := a.ws.Overwrite(ctx, rows); err != nil {
			return apperrors.NewPersistenceError(a.ws.Name(), "overwrite", err)
		}
	case ModeAppend:
		if err := a.ws.Append(ctx, rows); err != nil {
			return apperrors.NewPersistenceError(a.ws.Name(), "append", err)
		}
	default:
		return fmt.Errorf("%w: %q is not a write mode", apperrors.ErrUnknownMode, resolved)
	}

	logging.LogPersist(a.logger, a.ws.Name(), string(resolved), len(rows))
	return nil
}

// Read returns the currently persisted rows without mutation.
func (a *Adapter) Read(ctx context.Context) ([]PickRow, error) {
	rows, err := a.ws.Read(ctx)
	if err != nil {
		return nil, apperrors.NewPersistenceError(a.ws.Name(), "read", err)
	}
	return rows, nil
}

func (a *Adapter) resolveMode(ctx context.Context, mode Mode) (Mode, error) {
	if mode != ModeAppend {
		return mode, nil
	}

	count, err := a.ws.RowCount(ctx)
	if err != nil {
		return "", apperrors.NewPersistenceError(a.ws.Name(), "row count", err)
	}
	if count < 2 {
		a.logger.Debug().
			Str("worksheet", a.ws.Name()).
			Int("rows", count).
			Msg("Append on near-empty worksheet, overwriting instead")
		return ModeOverwrite, nil
	}
	return ModeAppend, nil
}
