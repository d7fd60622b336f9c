package config

import (
	"encoding/json"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/invopop/jsonschema"
	"github.com/moznion/go-optional"
	"gopkg.in/yaml.v3"

	"github.com/halcyon-lab/halcyon-trading/internal/types"
	"github.com/halcyon-lab/halcyon-trading/pkg/errors"
)

// DefaultInitialBalance is the account balance used when a run does not
// specify one.
const DefaultInitialBalance = 10000.0

// StrategyConfig selects one strategy variant and its parameters.
type StrategyConfig struct {
	Kind   string         `yaml:"kind" json:"kind" jsonschema:"title=Kind,description=Registered strategy kind (e.g. ma_crossover)" validate:"required"`
	Params map[string]any `yaml:"params,omitempty" json:"params,omitempty" jsonschema:"title=Params,description=Variant-specific parameters"`
}

// RunConfig describes a full backtest run: the dataset, the account, and the
// strategies to evaluate against it.
type RunConfig struct {
	DataPath       string           `yaml:"data_path" json:"data_path" jsonschema:"title=Data Path,description=CSV or Parquet file holding the bar series" validate:"required"`
	Granularity    string           `yaml:"granularity" json:"granularity" jsonschema:"title=Granularity,description=Bar sampling interval,enum=daily,enum=minute" validate:"required,oneof=daily minute"`
	InitialBalance float64          `yaml:"initial_balance,omitempty" json:"initial_balance,omitempty" jsonschema:"title=Initial Balance,description=Starting account balance" validate:"omitempty,gt=0"`
	BarsPerSession int              `yaml:"bars_per_session,omitempty" json:"bars_per_session,omitempty" jsonschema:"title=Bars Per Session,description=Minute bars per trading session (minute granularity only)" validate:"omitempty,gt=0"`
	Commission     *float64         `yaml:"commission,omitempty" json:"commission,omitempty" jsonschema:"title=Commission,description=Commission rate override as a fraction" validate:"omitempty,gte=0,lt=1"`
	Slippage       *float64         `yaml:"slippage,omitempty" json:"slippage,omitempty" jsonschema:"title=Slippage,description=Slippage rate override as a fraction" validate:"omitempty,gte=0,lt=1"`
	Parallelism    int              `yaml:"parallelism,omitempty" json:"parallelism,omitempty" jsonschema:"title=Parallelism,description=Concurrent strategy runs (0 means one per strategy)" validate:"omitempty,gte=0"`
	ResultsPath    string           `yaml:"results_path,omitempty" json:"results_path,omitempty" jsonschema:"title=Results Path,description=YAML file to write comparison results to"`
	TradeLogPath   string           `yaml:"trade_log_path,omitempty" json:"trade_log_path,omitempty" jsonschema:"title=Trade Log Path,description=Directory to export the trade ledger to as Parquet"`
	Strategies     []StrategyConfig `yaml:"strategies" json:"strategies" jsonschema:"title=Strategies,description=Strategies to run" validate:"required,min=1,dive"`
}

// EmptyRunConfig returns a RunConfig with defaults applied and no strategies.
func EmptyRunConfig() RunConfig {
	return RunConfig{
		Granularity:    string(types.GranularityDaily),
		InitialBalance: DefaultInitialBalance,
		Strategies:     []StrategyConfig{},
	}
}

// ParseRunConfig parses a YAML run configuration, applies defaults and
// validates the result.
func ParseRunConfig(data []byte) (*RunConfig, error) {
	var cfg RunConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to parse run config", err)
	}

	if cfg.InitialBalance == 0 {
		cfg.InitialBalance = DefaultInitialBalance
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadRunConfig reads and parses a YAML run configuration file.
func LoadRunConfig(path string) (*RunConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to read run config %s", path)
	}

	return ParseRunConfig(data)
}

// Validate checks the struct tags and the cross-field rules.
func (c *RunConfig) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid run config", err)
	}

	return nil
}

// Settings builds the strategy construction settings this run implies.
func (c *RunConfig) Settings() (Settings, error) {
	granularity, err := types.ParseGranularity(c.Granularity)
	if err != nil {
		return Settings{}, err
	}

	return Settings{
		Granularity: granularity,
		Commission:  optional.FromNillable(c.Commission),
		Slippage:    optional.FromNillable(c.Slippage),
	}, nil
}

// GenerateSchema generates the JSON schema for the run configuration.
func (c *RunConfig) GenerateSchema() (*jsonschema.Schema, error) {
	schema := jsonschema.Reflect(c)
	schema.Title = "run-config"
	schema.Description = "Configuration schema for a backtest run"
	schema.Version = "http://json-schema.org/draft-07/schema#"

	return schema, nil
}

// GenerateSchemaJSON generates the JSON schema as an indented JSON string.
func (c *RunConfig) GenerateSchemaJSON() (string, error) {
	schema, err := c.GenerateSchema()
	if err != nil {
		return "", err
	}

	schemaJSON, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return "", err
	}

	return string(schemaJSON), nil
}
