// Package loader ingests bar series from CSV and Parquet files through an
// embedded DuckDB instance, so both formats share one scan, ordering and
// validation path. Series come back sorted by timestamp and boundary
// validated; downstream code never re-checks them.
package loader

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/marcboeker/go-duckdb"
	"go.uber.org/zap"

	"github.com/halcyon-lab/halcyon-trading/internal/logger"
	"github.com/halcyon-lab/halcyon-trading/internal/types"
	"github.com/halcyon-lab/halcyon-trading/pkg/errors"
)

// Loader reads bar series files through an in-memory DuckDB database.
type Loader struct {
	db  *sql.DB
	log *logger.Logger
}

// NewLoader opens the embedded database. A nil logger falls back to the nop
// logger.
func NewLoader(log *logger.Logger) (*Loader, error) {
	if log == nil {
		log = logger.NewNopLogger()
	}

	db, err := sql.Open("duckdb", "")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorageInitFailed, "failed to open DuckDB", err)
	}

	return &Loader{db: db, log: log}, nil
}

// Close releases the embedded database.
func (l *Loader) Close() error {
	return l.db.Close()
}

// Load reads a bar series file, dispatching on the extension: .csv goes
// through read_csv_auto, .parquet through read_parquet.
func (l *Loader) Load(path string) ([]types.Bar, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return l.LoadCSV(path)
	case ".parquet":
		return l.LoadParquet(path)
	default:
		return nil, errors.Newf(errors.ErrCodeInvalidParameter,
			"unsupported data file %s (expected .csv or .parquet)", path)
	}
}

// LoadCSV reads a timestamp,open,high,low,close,volume CSV file. Timestamps
// must parse as DuckDB timestamps; ISO 8601 works.
func (l *Loader) LoadCSV(path string) ([]types.Bar, error) {
	return l.scan(path, fmt.Sprintf(`read_csv_auto('%s')`, path))
}

// LoadParquet reads a Parquet file with the same column schema as the CSV
// format.
func (l *Loader) LoadParquet(path string) ([]types.Bar, error) {
	return l.scan(path, fmt.Sprintf(`read_parquet('%s')`, path))
}

// scan pulls the bar columns out of a DuckDB table function, sorted by
// timestamp, and validates the assembled series.
func (l *Loader) scan(path, source string) ([]types.Bar, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, errors.Wrapf(errors.ErrCodeDataNotFound, err, "data file %s is not readable", path)
	}

	l.log.Debug("loading bar series", zap.String("path", path))

	query := fmt.Sprintf(`
		SELECT
			timestamp,
			CAST(open AS DOUBLE) AS open,
			CAST(high AS DOUBLE) AS high,
			CAST(low AS DOUBLE) AS low,
			CAST(close AS DOUBLE) AS close,
			CAST(volume AS BIGINT) AS volume
		FROM %s
		ORDER BY timestamp ASC
	`, source)

	rows, err := l.db.Query(query)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeMarketDataParseFailed, err, "failed to read %s", path)
	}
	defer rows.Close()

	var bars []types.Bar

	for rows.Next() {
		var (
			timestamp              time.Time
			open, high, low, close float64
			volume                 int64
		)

		if err := rows.Scan(&timestamp, &open, &high, &low, &close, &volume); err != nil {
			return nil, errors.Wrapf(errors.ErrCodeMarketDataParseFailed, err,
				"failed to scan row %d of %s", len(bars), path)
		}

		if volume < 0 {
			return nil, errors.Newf(errors.ErrCodeInvalidBar,
				"bar %d of %s has negative volume %d", len(bars), path, volume)
		}

		bars = append(bars, types.Bar{
			Time:   timestamp.UTC(),
			Open:   open,
			High:   high,
			Low:    low,
			Close:  close,
			Volume: uint64(volume),
		})
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrapf(errors.ErrCodeMarketDataParseFailed, err, "failed to read %s", path)
	}

	if len(bars) == 0 {
		return nil, errors.Newf(errors.ErrCodeEmptyDataset, "%s holds no bars", path)
	}

	if err := types.ValidateSeries(bars); err != nil {
		return nil, err
	}

	l.log.Debug("loaded bar series",
		zap.String("path", path),
		zap.Int("bars", len(bars)),
	)

	return bars, nil
}
