// Package writer persists downloaded bar data to dataset files the loader
// can read back: CSV or Parquet with timestamp, open, high, low, close and
// volume columns.
package writer

import (
	"github.com/halcyon-lab/halcyon-trading/internal/types"
)

// Record is one downloaded bar tagged with the instrument it belongs to.
type Record struct {
	Symbol string
	Bar    types.Bar
}

// Writer defines the interface for writing downloaded bars to a destination.
type Writer interface {
	// Initialize sets up the writer, potentially creating tables or files.
	Initialize() error
	// Write persists a single bar record.
	Write(record Record) error
	// Finalize completes the writing process (e.g., commits transactions, exports files).
	Finalize() (outputPath string, err error)
	// Close releases any resources held by the writer.
	Close() error
	// GetOutputPath returns the configured output file path.
	GetOutputPath() string
}
