package strategy

import (
	"fmt"
	"time"

	"github.com/halcyon-lab/halcyon-trading/internal/config"
	"github.com/halcyon-lab/halcyon-trading/internal/types"
	"github.com/halcyon-lab/halcyon-trading/pkg/errors"
)

// TimeOfDayConfig parameterizes the clock-driven variant. Offsets are
// minutes past the session open on minute data and days of the month on
// daily data. Zero offsets select the granularity default.
type TimeOfDayConfig struct {
	EntryOffset int `yaml:"entry_offset" json:"entry_offset"`
	ExitOffset  int `yaml:"exit_offset" json:"exit_offset"`
}

// DefaultTimeOfDayConfig defers to the per-granularity defaults: 30 and
// 360 minutes past the open on minute data, days 5 and 20 on daily data.
func DefaultTimeOfDayConfig() TimeOfDayConfig {
	return TimeOfDayConfig{}
}

// TimeOfDay enters and exits at fixed points on the session clock,
// regardless of price. Positions never carry past a session boundary.
type TimeOfDay struct {
	base
	cfg TimeOfDayConfig
}

// NewTimeOfDay validates the config and builds the variant.
func NewTimeOfDay(cfg TimeOfDayConfig, settings config.Settings) (*TimeOfDay, error) {
	if cfg.EntryOffset == 0 && cfg.ExitOffset == 0 {
		if settings.Granularity == types.GranularityMinute {
			cfg.EntryOffset, cfg.ExitOffset = 30, 360
		} else {
			cfg.EntryOffset, cfg.ExitOffset = 5, 20
		}
	}

	var name string
	if settings.Granularity == types.GranularityMinute {
		if err := config.ValidatePeriod("entry_offset", cfg.EntryOffset, 0); err != nil {
			return nil, err
		}
		name = fmt.Sprintf("TimeOfDay(%d/%dm)", cfg.EntryOffset, cfg.ExitOffset)
	} else {
		if err := config.ValidatePeriod("entry_offset", cfg.EntryOffset, 1); err != nil {
			return nil, err
		}
		if cfg.ExitOffset > 31 {
			return nil, errors.Newf(errors.ErrCodeInvalidParameter,
				"exit_offset %d must be a day of the month", cfg.ExitOffset)
		}
		name = fmt.Sprintf("TimeOfDay(%d/%dd)", cfg.EntryOffset, cfg.ExitOffset)
	}

	if cfg.ExitOffset <= cfg.EntryOffset {
		return nil, errors.Newf(errors.ErrCodeInvalidParameter,
			"exit_offset %d must come after entry_offset %d", cfg.ExitOffset, cfg.EntryOffset)
	}

	return &TimeOfDay{
		base: newBase(name, 2, settings),
		cfg:  cfg,
	}, nil
}

// GenerateSignals emits at the configured clock offsets, closing at the
// exit offset or the first bar of a new period, whichever comes first.
func (s *TimeOfDay) GenerateSignals(bars []types.Bar) ([]types.Signal, error) {
	if err := s.checkLength(bars); err != nil {
		return nil, err
	}

	signals := holdSignals(len(bars))
	inPosition := false

	if s.Granularity() == types.GranularityMinute {
		var sessionOpen time.Time
		for i, bar := range bars {
			newSession := i == 0 || !sameUTCDay(bars[i-1].Time, bar.Time)
			if newSession {
				sessionOpen = bar.Time
			}

			offset := int(bar.Time.Sub(sessionOpen).Minutes())

			switch {
			case inPosition && (offset >= s.cfg.ExitOffset || (newSession && i > 0)):
				signals[i] = types.SignalSell
				inPosition = false
			case !inPosition && offset >= s.cfg.EntryOffset && offset < s.cfg.ExitOffset:
				signals[i] = types.SignalBuy
				inPosition = true
			}
		}
		return signals, nil
	}

	for i, bar := range bars {
		day := bar.Time.Day()
		newMonth := i > 0 && !sameUTCMonth(bars[i-1].Time, bar.Time)

		switch {
		case inPosition && (day >= s.cfg.ExitOffset || newMonth):
			signals[i] = types.SignalSell
			inPosition = false
		case !inPosition && day >= s.cfg.EntryOffset && day < s.cfg.ExitOffset:
			signals[i] = types.SignalBuy
			inPosition = true
		}
	}

	return signals, nil
}

func sameUTCDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

func sameUTCMonth(a, b time.Time) bool {
	ay, am, _ := a.UTC().Date()
	by, bm, _ := b.UTC().Date()
	return ay == by && am == bm
}
