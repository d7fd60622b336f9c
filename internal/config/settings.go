package config

import (
	"github.com/moznion/go-optional"

	"github.com/halcyon-lab/halcyon-trading/internal/types"
	"github.com/halcyon-lab/halcyon-trading/pkg/errors"
)

// Settings carries the granularity-scoped knobs every strategy is constructed
// with. Commission and Slippage override the granularity defaults when set;
// window parameters are always expressed in bars of the chosen granularity.
type Settings struct {
	Granularity types.Granularity
	// Commission overrides the default commission rate when set
	Commission optional.Option[float64]
	// Slippage overrides the default slippage rate when set
	Slippage optional.Option[float64]
}

// NewSettings returns Settings for a granularity with no cost overrides.
func NewSettings(granularity types.Granularity) Settings {
	return Settings{
		Granularity: granularity,
		Commission:  optional.None[float64](),
		Slippage:    optional.None[float64](),
	}
}

// Costs resolves the effective cost model: the granularity defaults with any
// overrides applied.
func (s Settings) Costs() types.CostModel {
	defaults := DefaultCosts(s.Granularity)

	return types.CostModel{
		CommissionRate: s.Commission.TakeOr(defaults.CommissionRate),
		SlippageRate:   s.Slippage.TakeOr(defaults.SlippageRate),
	}
}

// Validate checks the granularity and that any overrides are sane fractions.
func (s Settings) Validate() error {
	if !s.Granularity.IsValid() {
		return errors.Newf(errors.ErrCodeInvalidGranularity, "settings have invalid granularity %q", s.Granularity)
	}

	if s.Commission.IsSome() {
		if c := s.Commission.Unwrap(); c < 0 || c >= 1 {
			return errors.Newf(errors.ErrCodeInvalidParameter, "commission override %f must be in [0, 1)", c)
		}
	}

	if s.Slippage.IsSome() {
		if sl := s.Slippage.Unwrap(); sl < 0 || sl >= 1 {
			return errors.Newf(errors.ErrCodeInvalidParameter, "slippage override %f must be in [0, 1)", sl)
		}
	}

	return nil
}
