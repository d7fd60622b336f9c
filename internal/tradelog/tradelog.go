// Package tradelog persists backtest runs and their realized trades in an
// embedded DuckDB database. Each run gets a row keyed by a generated id and
// its trades land in a second table under the same key; both tables export
// to Parquet for offline analysis.
package tradelog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/moznion/go-optional"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/halcyon-lab/halcyon-trading/internal/logger"
	"github.com/halcyon-lab/halcyon-trading/internal/types"
	"github.com/halcyon-lab/halcyon-trading/pkg/errors"
)

// Ledger stores backtest runs and trades in an in-memory DuckDB database.
type Ledger struct {
	db  *sql.DB
	log *logger.Logger
	sq  squirrel.StatementBuilderType
}

// RunRecord is one persisted backtest run. RecordRun fills ID and, when
// zero, CreatedAt.
type RunRecord struct {
	ID             string
	Strategy       string
	Granularity    types.Granularity
	InitialBalance float64
	FinalBalance   float64
	TotalReturn    float64
	TotalTrades    int
	CreatedAt      time.Time
}

// RunStats summarizes the persisted trades of one run.
type RunStats struct {
	TotalTrades   int
	WinningTrades int
	LosingTrades  int
	// WinRate is winning over total trades, 0 when the run never traded
	WinRate float64
	// MaxProfit and MaxLoss are the best and worst single-trade PnL
	MaxProfit float64
	MaxLoss   float64
	// AvgHoldingHours is the mean time between entry and exit in hours
	AvgHoldingHours float64
}

// NewLedger opens an in-memory ledger. A nil logger falls back to the nop
// logger. Call Initialize before recording.
func NewLedger(log *logger.Logger) (*Ledger, error) {
	if log == nil {
		log = logger.NewNopLogger()
	}

	db, err := sql.Open("duckdb", ":memory:")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorageInitFailed, "failed to open DuckDB", err)
	}

	return &Ledger{
		db:  db,
		log: log,
		sq:  squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}, nil
}

// Initialize creates the runs and trades tables.
func (l *Ledger) Initialize() error {
	_, err := l.db.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			run_id TEXT PRIMARY KEY,
			strategy TEXT,
			granularity TEXT,
			initial_balance DOUBLE,
			final_balance DOUBLE,
			total_return DOUBLE,
			total_trades INTEGER,
			created_at TIMESTAMP
		)
	`)
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorageInitFailed, "failed to create runs table", err)
	}

	_, err = l.db.Exec(`
		CREATE TABLE IF NOT EXISTS trades (
			trade_id TEXT PRIMARY KEY,
			run_id TEXT,
			strategy TEXT,
			entry_time TIMESTAMP,
			entry_price DOUBLE,
			exit_time TIMESTAMP,
			exit_price DOUBLE,
			quantity DOUBLE,
			pnl DOUBLE,
			forced BOOLEAN
		)
	`)
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorageInitFailed, "failed to create trades table", err)
	}

	return nil
}

// Close releases the embedded database.
func (l *Ledger) Close() error {
	return l.db.Close()
}

// Cleanup drops and recreates both tables.
func (l *Ledger) Cleanup() error {
	_, err := l.db.Exec(`
		DROP TABLE IF EXISTS trades;
		DROP TABLE IF EXISTS runs;
	`)
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorageInitFailed, "failed to drop tables", err)
	}

	return l.Initialize()
}

// RecordRun inserts a run and its trades in one transaction and returns the
// generated run id.
func (l *Ledger) RecordRun(ctx context.Context, run RunRecord, trades []types.Trade) (string, error) {
	run.ID = uuid.New().String()
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeStorageWriteFailed, "failed to begin transaction", err)
	}

	insertRun := l.sq.
		Insert("runs").
		Columns(
			"run_id", "strategy", "granularity", "initial_balance",
			"final_balance", "total_return", "total_trades", "created_at",
		).
		Values(
			run.ID, run.Strategy, run.Granularity.String(), run.InitialBalance,
			run.FinalBalance, run.TotalReturn, run.TotalTrades, run.CreatedAt,
		).
		RunWith(tx)

	if _, err := insertRun.ExecContext(ctx); err != nil {
		tx.Rollback()
		return "", errors.Wrapf(errors.ErrCodeStorageWriteFailed, err, "failed to insert run %s", run.Strategy)
	}

	for _, trade := range trades {
		insertTrade := l.sq.
			Insert("trades").
			Columns(
				"trade_id", "run_id", "strategy", "entry_time", "entry_price",
				"exit_time", "exit_price", "quantity", "pnl", "forced",
			).
			Values(
				uuid.New().String(), run.ID, run.Strategy, trade.EntryTime, trade.EntryPrice,
				trade.ExitTime, trade.ExitPrice, trade.Quantity, trade.PnL, trade.Forced,
			).
			RunWith(tx)

		if _, err := insertTrade.ExecContext(ctx); err != nil {
			tx.Rollback()
			return "", errors.Wrapf(errors.ErrCodeStorageWriteFailed, err, "failed to insert trade for run %s", run.ID)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", errors.Wrap(errors.ErrCodeStorageWriteFailed, "failed to commit run", err)
	}

	l.log.Debug("recorded run",
		zap.String("run_id", run.ID),
		zap.String("strategy", run.Strategy),
		zap.Int("trades", len(trades)),
	)

	return run.ID, nil
}

// Runs lists every persisted run ordered by creation time, strategy name
// breaking ties.
func (l *Ledger) Runs(ctx context.Context) ([]RunRecord, error) {
	selectRuns := l.sq.
		Select(
			"run_id", "strategy", "granularity", "initial_balance",
			"final_balance", "total_return", "total_trades", "created_at",
		).
		From("runs").
		OrderBy("created_at ASC", "strategy ASC").
		RunWith(l.db)

	rows, err := selectRuns.QueryContext(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorageQueryFailed, "failed to query runs", err)
	}
	defer rows.Close()

	var runs []RunRecord

	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}

		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorageQueryFailed, "failed to iterate runs", err)
	}

	return runs, nil
}

// GetRun returns the run with the given id, or None when it was never
// recorded.
func (l *Ledger) GetRun(ctx context.Context, runID string) (optional.Option[RunRecord], error) {
	query := l.sq.
		Select(
			"run_id", "strategy", "granularity", "initial_balance",
			"final_balance", "total_return", "total_trades", "created_at",
		).
		From("runs").
		Where(squirrel.Eq{"run_id": runID}).
		RunWith(l.db)

	run, err := scanRun(query.QueryRowContext(ctx))
	if err == sql.ErrNoRows {
		return optional.None[RunRecord](), nil
	}

	if err != nil {
		return optional.None[RunRecord](), err
	}

	return optional.Some(run), nil
}

// Trades returns the run's trades ordered by entry time.
func (l *Ledger) Trades(ctx context.Context, runID string) ([]types.Trade, error) {
	selectTrades := l.sq.
		Select(
			"entry_time", "entry_price", "exit_time", "exit_price",
			"quantity", "pnl", "forced",
		).
		From("trades").
		Where(squirrel.Eq{"run_id": runID}).
		OrderBy("entry_time ASC").
		RunWith(l.db)

	rows, err := selectTrades.QueryContext(ctx)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeStorageQueryFailed, err, "failed to query trades for run %s", runID)
	}
	defer rows.Close()

	var trades []types.Trade

	for rows.Next() {
		var trade types.Trade

		err := rows.Scan(
			&trade.EntryTime,
			&trade.EntryPrice,
			&trade.ExitTime,
			&trade.ExitPrice,
			&trade.Quantity,
			&trade.PnL,
			&trade.Forced,
		)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeStorageQueryFailed, "failed to scan trade", err)
		}

		trade.EntryTime = trade.EntryTime.UTC()
		trade.ExitTime = trade.ExitTime.UTC()
		trades = append(trades, trade)
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorageQueryFailed, "failed to iterate trades", err)
	}

	return trades, nil
}

// RealizedPnL sums the run's trade PnL with decimal arithmetic, so a long
// trade list does not accumulate float drift.
func (l *Ledger) RealizedPnL(ctx context.Context, runID string) (float64, error) {
	selectPnL := l.sq.
		Select("pnl").
		From("trades").
		Where(squirrel.Eq{"run_id": runID}).
		RunWith(l.db)

	rows, err := selectPnL.QueryContext(ctx)
	if err != nil {
		return 0, errors.Wrapf(errors.ErrCodeStorageQueryFailed, err, "failed to query pnl for run %s", runID)
	}
	defer rows.Close()

	total := decimal.Zero

	for rows.Next() {
		var pnl float64
		if err := rows.Scan(&pnl); err != nil {
			return 0, errors.Wrap(errors.ErrCodeStorageQueryFailed, "failed to scan pnl", err)
		}

		total = total.Add(decimal.NewFromFloat(pnl))
	}

	if err := rows.Err(); err != nil {
		return 0, errors.Wrap(errors.ErrCodeStorageQueryFailed, "failed to iterate pnl", err)
	}

	result, _ := total.Float64()

	return result, nil
}

// Stats aggregates the run's trades in SQL.
func (l *Ledger) Stats(ctx context.Context, runID string) (RunStats, error) {
	// CTE aggregation; squirrel has no CTE support.
	query := `
		WITH trade_stats AS (
			SELECT
				COUNT(*) as total_trades,
				CAST(SUM(CASE WHEN pnl > 0 THEN 1 ELSE 0 END) AS INTEGER) as winning_trades,
				CAST(SUM(CASE WHEN pnl < 0 THEN 1 ELSE 0 END) AS INTEGER) as losing_trades,
				COALESCE(MAX(pnl), 0) as max_profit,
				COALESCE(MIN(pnl), 0) as max_loss,
				COALESCE(AVG(EXTRACT(EPOCH FROM (exit_time - entry_time)) / 3600), 0) as avg_holding_hours
			FROM trades
			WHERE run_id = ?
		)
		SELECT
			total_trades,
			COALESCE(winning_trades, 0),
			COALESCE(losing_trades, 0),
			CASE WHEN total_trades > 0 THEN CAST(winning_trades AS DOUBLE) / total_trades ELSE 0 END as win_rate,
			max_profit,
			max_loss,
			avg_holding_hours
		FROM trade_stats
	`

	var stats RunStats

	err := l.db.QueryRowContext(ctx, query, runID).Scan(
		&stats.TotalTrades,
		&stats.WinningTrades,
		&stats.LosingTrades,
		&stats.WinRate,
		&stats.MaxProfit,
		&stats.MaxLoss,
		&stats.AvgHoldingHours,
	)
	if err != nil {
		return RunStats{}, errors.Wrapf(errors.ErrCodeStorageQueryFailed, err, "failed to aggregate run %s", runID)
	}

	return stats, nil
}

// Export writes both tables as Parquet files into dir, creating it when
// missing.
func (l *Ledger) Export(ctx context.Context, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeStorageWriteFailed, "failed to create export directory", err)
	}

	runsPath := filepath.Join(dir, "runs.parquet")
	if _, err := l.db.ExecContext(ctx, fmt.Sprintf(`COPY runs TO '%s' (FORMAT PARQUET)`, runsPath)); err != nil {
		return errors.Wrapf(errors.ErrCodeStorageWriteFailed, err, "failed to export runs to %s", runsPath)
	}

	tradesPath := filepath.Join(dir, "trades.parquet")
	if _, err := l.db.ExecContext(ctx, fmt.Sprintf(`COPY trades TO '%s' (FORMAT PARQUET)`, tradesPath)); err != nil {
		return errors.Wrapf(errors.ErrCodeStorageWriteFailed, err, "failed to export trades to %s", tradesPath)
	}

	l.log.Info("exported ledger",
		zap.String("runs", runsPath),
		zap.String("trades", tradesPath),
	)

	return nil
}

// scanner covers both sql.Row and sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (RunRecord, error) {
	var (
		run         RunRecord
		granularity string
	)

	err := row.Scan(
		&run.ID,
		&run.Strategy,
		&granularity,
		&run.InitialBalance,
		&run.FinalBalance,
		&run.TotalReturn,
		&run.TotalTrades,
		&run.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return RunRecord{}, err
	}

	if err != nil {
		return RunRecord{}, errors.Wrap(errors.ErrCodeStorageQueryFailed, "failed to scan run", err)
	}

	run.Granularity = types.Granularity(granularity)
	run.CreatedAt = run.CreatedAt.UTC()

	return run, nil
}
