// Package strategy holds the closed set of trading-rule variants. Every
// variant is constructed against one granularity, validates its parameters
// eagerly, and generates exactly one signal per input bar. Signal emission is
// edge-triggered: a variant tracks whether its model is in a position and
// emits Buy only when entering and Sell only when exiting, so repeating
// conditions never produce repeated signals.
package strategy

import (
	"gopkg.in/yaml.v3"

	"github.com/halcyon-lab/halcyon-trading/internal/config"
	"github.com/halcyon-lab/halcyon-trading/internal/types"
	"github.com/halcyon-lab/halcyon-trading/pkg/errors"
)

// Strategy is a parameterized, deterministic signal generator over a
// validated bar series.
type Strategy interface {
	// Name returns the parameterized display name, e.g. "Scalping(5, 0.10%)".
	Name() string
	// Granularity returns the bar interval the strategy was constructed for.
	Granularity() types.Granularity
	// Costs returns the effective cost model for this strategy's fills.
	Costs() types.CostModel
	// MinBars returns the minimum series length GenerateSignals accepts.
	MinBars() int
	// GenerateSignals maps bars to one signal per bar. The result has exactly
	// len(bars) entries, signals[i] depends only on bars[0..i], and a series
	// shorter than MinBars returns an InsufficientDataError.
	GenerateSignals(bars []types.Bar) ([]types.Signal, error)
}

// base carries the construction-time settings shared by every variant.
type base struct {
	name        string
	granularity types.Granularity
	costs       types.CostModel
	minBars     int
}

func newBase(name string, minBars int, settings config.Settings) base {
	return base{
		name:        name,
		granularity: settings.Granularity,
		costs:       settings.Costs(),
		minBars:     minBars,
	}
}

func (b *base) Name() string {
	return b.name
}

func (b *base) Granularity() types.Granularity {
	return b.granularity
}

func (b *base) Costs() types.CostModel {
	return b.costs
}

func (b *base) MinBars() int {
	return b.minBars
}

// checkLength enforces the MinBars contract at generation time.
func (b *base) checkLength(bars []types.Bar) error {
	if len(bars) < b.minBars {
		return errors.NewInsufficientDataErrorf(b.minBars, len(bars), b.name,
			"%s requires at least %d bars, got %d", b.name, b.minBars, len(bars))
	}

	return nil
}

// holdSignals returns a pre-sized signal slice initialized to Hold.
func holdSignals(n int) []types.Signal {
	signals := make([]types.Signal, n)
	for i := range signals {
		signals[i] = types.SignalHold
	}

	return signals
}

// decodeParams re-marshals a params map into a typed variant config so YAML
// scalar conversions (int vs float) follow the usual decoding rules.
func decodeParams(params map[string]any, out any) error {
	if len(params) == 0 {
		return nil
	}

	data, err := yaml.Marshal(params)
	if err != nil {
		return errors.Wrap(errors.ErrCodeStrategyConfigError, "failed to encode strategy params", err)
	}

	if err := yaml.Unmarshal(data, out); err != nil {
		return errors.Wrap(errors.ErrCodeStrategyConfigError, "failed to decode strategy params", err)
	}

	return nil
}
