package writer

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	_ "github.com/marcboeker/go-duckdb"

	"github.com/halcyon-lab/halcyon-trading/pkg/errors"
)

// DuckDBWriter buffers records in an in-memory DuckDB table and exports them
// to the output file on Finalize. The export format follows the output
// extension: .csv exports CSV with a header row, everything else Parquet.
// Rows are exported sorted by timestamp, so the loader receives an ordered
// series regardless of the download order.
type DuckDBWriter struct {
	db         *sql.DB
	tx         *sql.Tx
	stmt       *sql.Stmt
	outputPath string
}

// NewDuckDBWriter creates a new DuckDBWriter targeting the given output file.
func NewDuckDBWriter(outputPath string) *DuckDBWriter {
	return &DuckDBWriter{
		outputPath: outputPath,
	}
}

// Initialize opens the in-memory database, creates the staging table, begins
// a transaction, and prepares the insert statement.
func (w *DuckDBWriter) Initialize() (err error) {
	w.db, err = sql.Open("duckdb", ":memory:")
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorageInitFailed, "failed to open DuckDB connection", err)
	}

	_, err = w.db.Exec(`
		CREATE TABLE IF NOT EXISTS bars (
			id TEXT,
			symbol TEXT,
			timestamp TIMESTAMP,
			open DOUBLE,
			high DOUBLE,
			low DOUBLE,
			close DOUBLE,
			volume BIGINT
		)
	`)
	if err != nil {
		w.db.Close()

		return errors.Wrap(errors.ErrCodeStorageInitFailed, "failed to create staging table", err)
	}

	w.tx, err = w.db.Begin()
	if err != nil {
		w.db.Close()

		return errors.Wrap(errors.ErrCodeStorageInitFailed, "failed to begin transaction", err)
	}

	w.stmt, err = w.tx.Prepare(`
		INSERT INTO bars (id, symbol, timestamp, open, high, low, close, volume)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		w.tx.Rollback()
		w.db.Close()

		return errors.Wrap(errors.ErrCodeStorageInitFailed, "failed to prepare statement", err)
	}

	return nil
}

// Write stages a single record inside the open transaction.
func (w *DuckDBWriter) Write(record Record) error {
	if w.stmt == nil {
		return errors.New(errors.ErrCodeMarketDataWriteFailed, "writer not initialized or statement is nil")
	}

	_, err := w.stmt.Exec(
		uuid.New().String(),
		record.Symbol,
		record.Bar.Time,
		record.Bar.Open,
		record.Bar.High,
		record.Bar.Low,
		record.Bar.Close,
		int64(record.Bar.Volume),
	)
	if err != nil {
		return errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "failed to insert record", err)
	}

	return nil
}

// Finalize commits the transaction and exports the staged rows to the output
// file.
func (w *DuckDBWriter) Finalize() (outputPath string, err error) {
	if w.tx == nil {
		return "", errors.New(errors.ErrCodeMarketDataWriteFailed, "writer not initialized or transaction is nil")
	}

	if err = w.tx.Commit(); err != nil {
		w.tx.Rollback()

		return "", errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "failed to commit transaction", err)
	}

	w.tx = nil

	format := "(FORMAT PARQUET)"
	if strings.EqualFold(filepath.Ext(w.outputPath), ".csv") {
		format = "(FORMAT CSV, HEADER)"
	}

	_, err = w.db.Exec(fmt.Sprintf(
		`COPY (SELECT timestamp, open, high, low, close, volume FROM bars ORDER BY timestamp ASC) TO '%s' %s`,
		w.outputPath, format))
	if err != nil {
		return "", errors.Wrapf(errors.ErrCodeMarketDataWriteFailed, err, "failed to export to %s", w.outputPath)
	}

	return w.outputPath, nil
}

// Close releases the statement, rolls back any transaction Finalize never
// committed, and closes the database.
func (w *DuckDBWriter) Close() error {
	var closeErr error

	if w.stmt != nil {
		if err := w.stmt.Close(); err != nil {
			closeErr = errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "failed to close statement", err)
		}

		w.stmt = nil
	}

	if w.tx != nil {
		// Finalize was never reached; discard the staged rows.
		_ = w.tx.Rollback()
		w.tx = nil
	}

	if w.db != nil {
		if err := w.db.Close(); err != nil && closeErr == nil {
			closeErr = errors.Wrap(errors.ErrCodeMarketDataWriteFailed, "failed to close database", err)
		}

		w.db = nil
	}

	return closeErr
}

// GetOutputPath returns the configured output file path.
func (w *DuckDBWriter) GetOutputPath() string {
	return w.outputPath
}
