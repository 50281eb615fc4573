package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// HistoryStore records run summaries and their persisted picks in SQLite.
// It is an audit trail, not the primary sink: callers log its failures and
// move on.
type HistoryStore struct {
	db *sql.DB
}

// RunRecord summarizes one completed run.
type RunRecord struct {
	ID        int64
	StartedAt time.Time
	Attempted int
	Fetched   int
	Scored    int
	Persisted int
}

// NewHistoryStore opens (creating if needed) the run-history database.
func NewHistoryStore(dbPath string) (*HistoryStore, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(4)
	db.SetConnMaxLifetime(time.Hour)

	store := &HistoryStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

func (s *HistoryStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		started_at DATETIME NOT NULL,
		attempted INTEGER NOT NULL,
		fetched INTEGER NOT NULL,
		scored INTEGER NOT NULL,
		persisted INTEGER NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS picks (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id INTEGER NOT NULL,
		date_time TEXT NOT NULL,
		weighted_score REAL NOT NULL,
		segment TEXT NOT NULL,
		symbol TEXT NOT NULL,
		buy_price REAL,
		max_shares INTEGER,
		stop_loss_price REAL,
		target_price REAL,
		gtt TEXT,
		enter INTEGER NOT NULL,
		reason TEXT,
		params TEXT,
		FOREIGN KEY (run_id) REFERENCES runs(id)
	);

	CREATE INDEX IF NOT EXISTS idx_picks_run ON picks(run_id);
	CREATE INDEX IF NOT EXISTS idx_picks_symbol ON picks(segment, symbol);
	`

	_, err := s.db.Exec(schema)
	return err
}

// RecordRun stores a run summary with its picks in one transaction and
// returns the run ID.
func (s *HistoryStore) RecordRun(ctx context.Context, run RunRecord, picks []PickRow) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (started_at, attempted, fetched, scored, persisted)
		 VALUES (?, ?, ?, ?, ?)`,
		run.StartedAt, run.Attempted, run.Fetched, run.Scored, run.Persisted)
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}

	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run id: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO picks (run_id, date_time, weighted_score, segment, symbol,
		 buy_price, max_shares, stop_loss_price, target_price, gtt, enter, reason, params)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("preparing pick insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range picks {
		_, err := stmt.ExecContext(ctx,
			runID, p.DateTime, p.WeightedScore, p.Segment, p.Symbol,
			p.BuyPrice, p.MaxShares, p.StopLossPrice, p.TargetPrice,
			p.GTT, p.Enter, p.Reason, p.Params)
		if err != nil {
			return 0, fmt.Errorf("inserting pick %s:%s: %w", p.Segment, p.Symbol, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing run: %w", err)
	}
	return runID, nil
}

// Runs returns the most recent run summaries, newest first.
func (s *HistoryStore) Runs(ctx context.Context, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, attempted, fetched, scored, persisted
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		var r RunRecord
		if err := rows.Scan(&r.ID, &r.StartedAt, &r.Attempted, &r.Fetched, &r.Scored, &r.Persisted); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Picks returns the picks recorded for one run, in persisted order.
func (s *HistoryStore) Picks(ctx context.Context, runID int64) ([]PickRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT date_time, weighted_score, segment, symbol, buy_price, max_shares,
		 stop_loss_price, target_price, gtt, enter, reason, params
		 FROM picks WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying picks: %w", err)
	}
	defer rows.Close()

	var picks []PickRow
	for rows.Next() {
		var p PickRow
		var gtt, reason, params sql.NullString
		if err := rows.Scan(&p.DateTime, &p.WeightedScore, &p.Segment, &p.Symbol,
			&p.BuyPrice, &p.MaxShares, &p.StopLossPrice, &p.TargetPrice,
			&gtt, &p.Enter, &reason, &params); err != nil {
			return nil, fmt.Errorf("scanning pick: %w", err)
		}
		p.GTT = gtt.String
		p.Reason = reason.String
		p.Params = params.String
		picks = append(picks, p)
	}
	return picks, rows.Err()
}

// Close closes the database.
func (s *HistoryStore) Close() error {
	return s.db.Close()
}
