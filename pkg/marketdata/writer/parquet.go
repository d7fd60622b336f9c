package writer

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/parquet-go/parquet-go"

	"github.com/halcyon-lab/halcyon-trading/pkg/errors"
)

// barRow is the Parquet schema of an exported dataset. The column names match
// what the loader scans, so a downloaded file is immediately usable as a
// backtest dataset.
type barRow struct {
	Symbol    string  `parquet:"symbol"`
	Timestamp int64   `parquet:"timestamp,timestamp(millisecond)"` // Unix ms
	Open      float64 `parquet:"open"`
	High      float64 `parquet:"high"`
	Low       float64 `parquet:"low"`
	Close     float64 `parquet:"close"`
	Volume    int64   `parquet:"volume"`
}

// ParquetWriter accumulates records in memory and writes a single Parquet
// file on Finalize. It trades memory for a dependency-free file write; for
// multi-year minute datasets prefer the DuckDB writer.
type ParquetWriter struct {
	rows       []barRow
	outputPath string
}

// NewParquetWriter creates a new ParquetWriter targeting the given output file.
func NewParquetWriter(outputPath string) *ParquetWriter {
	return &ParquetWriter{
		outputPath: outputPath,
	}
}

// Initialize prepares the row buffer and creates the output directory.
func (w *ParquetWriter) Initialize() error {
	if err := os.MkdirAll(filepath.Dir(w.outputPath), 0o755); err != nil {
		return errors.Wrapf(errors.ErrCodeStorageInitFailed, err,
			"failed to create output directory for %s", w.outputPath)
	}

	w.rows = w.rows[:0]

	return nil
}

// Write buffers a single record.
func (w *ParquetWriter) Write(record Record) error {
	w.rows = append(w.rows, barRow{
		Symbol:    record.Symbol,
		Timestamp: record.Bar.Time.UnixMilli(),
		Open:      record.Bar.Open,
		High:      record.Bar.High,
		Low:       record.Bar.Low,
		Close:     record.Bar.Close,
		Volume:    int64(record.Bar.Volume),
	})

	return nil
}

// Finalize sorts the buffered rows by timestamp and writes the Parquet file.
func (w *ParquetWriter) Finalize() (string, error) {
	sort.SliceStable(w.rows, func(i, j int) bool { return w.rows[i].Timestamp < w.rows[j].Timestamp })

	if err := parquet.WriteFile(w.outputPath, w.rows); err != nil {
		return "", errors.Wrapf(errors.ErrCodeMarketDataWriteFailed, err,
			"failed to write Parquet file %s", w.outputPath)
	}

	return w.outputPath, nil
}

// Close drops the row buffer.
func (w *ParquetWriter) Close() error {
	w.rows = nil

	return nil
}

// GetOutputPath returns the configured output file path.
func (w *ParquetWriter) GetOutputPath() string {
	return w.outputPath
}
