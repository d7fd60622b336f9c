package backtest

import (
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/halcyon-lab/halcyon-trading/internal/types"
	"github.com/halcyon-lab/halcyon-trading/internal/version"
	"github.com/halcyon-lab/halcyon-trading/pkg/errors"
)

// StrategyResult is one strategy's slot in a persisted comparison: either a
// performance report or the error that stopped the run.
type StrategyResult struct {
	Strategy string                   `yaml:"strategy"`
	Report   *types.PerformanceReport `yaml:"report,omitempty"`
	Error    string                   `yaml:"error,omitempty"`
}

// ResultsFile is the on-disk form of a comparison batch. SchemaVersion gates
// readers: a file written at an incompatible schema is rejected on load
// rather than silently misread.
type ResultsFile struct {
	SchemaVersion string           `yaml:"schema_version"`
	GeneratedAt   time.Time        `yaml:"generated_at"`
	DataPath      string           `yaml:"data_path"`
	Granularity   string           `yaml:"granularity"`
	Bars          int              `yaml:"bars"`
	Results       []StrategyResult `yaml:"results"`
}

// NewResultsFile converts a comparison batch into its persistable form,
// stamped with the current schema version. Outcome order is preserved.
func NewResultsFile(dataPath string, granularity types.Granularity, bars int, outcomes []Outcome) *ResultsFile {
	results := make([]StrategyResult, len(outcomes))
	for i, outcome := range outcomes {
		results[i] = StrategyResult{Strategy: outcome.Strategy}
		if outcome.Err != nil {
			results[i].Error = outcome.Err.Error()

			continue
		}

		results[i].Report = &outcome.Result.Report
	}

	return &ResultsFile{
		SchemaVersion: version.ResultsSchemaVersion,
		GeneratedAt:   time.Now().UTC(),
		DataPath:      dataPath,
		Granularity:   string(granularity),
		Bars:          bars,
		Results:       results,
	}
}

// SortByTotalReturn reorders the results best-first. Failed strategies sink
// to the bottom in their original relative order.
func (f *ResultsFile) SortByTotalReturn() {
	sort.SliceStable(f.Results, func(i, j int) bool {
		a, b := f.Results[i].Report, f.Results[j].Report
		if a == nil {
			return false
		}
		if b == nil {
			return true
		}

		return a.TotalReturn > b.TotalReturn
	})
}

// Save writes the results file as YAML at path.
func (f *ResultsFile) Save(path string) error {
	data, err := yaml.Marshal(f)
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorageWriteFailed, "failed to encode results file", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(errors.ErrCodeStorageWriteFailed, err, "failed to write results file %s", path)
	}

	return nil
}

// LoadResultsFile reads a results file and rejects schema versions this
// build cannot interpret.
func LoadResultsFile(path string) (*ResultsFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeDataNotFound, err, "failed to read results file %s", path)
	}

	var file ResultsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.Wrapf(errors.ErrCodeStorageQueryFailed, err, "failed to parse results file %s", path)
	}

	if err := version.CheckSchemaCompatibility(version.ResultsSchemaVersion, file.SchemaVersion); err != nil {
		return nil, err
	}

	return &file, nil
}
