package strategy

import (
	"sort"
	"sync"

	"github.com/halcyon-lab/halcyon-trading/internal/config"
	"github.com/halcyon-lab/halcyon-trading/pkg/errors"
)

// Kind identifies a strategy variant in run configurations and the registry.
type Kind string

const (
	KindMACrossover          Kind = "ma_crossover"
	KindMACD                 Kind = "macd"
	KindBreakout             Kind = "breakout"
	KindScalping             Kind = "scalping"
	KindMomentumBreakout     Kind = "momentum_breakout"
	KindRSIOscillator        Kind = "rsi_oscillator"
	KindMeanReversion        Kind = "mean_reversion"
	KindVWAPReversion        Kind = "vwap_reversion"
	KindZScore               Kind = "zscore"
	KindVolatilityBreakout   Kind = "volatility_breakout"
	KindBollingerContraction Kind = "bollinger_contraction"
	KindSupportResistance    Kind = "support_resistance"
	KindCandleReversal       Kind = "candle_reversal"
	KindTimeOfDay            Kind = "time_of_day"
	KindVolumeProfile        Kind = "volume_profile"
	KindVolumeSurge          Kind = "volume_surge"
)

// Factory builds a strategy variant from raw parameters and settings.
type Factory func(params map[string]any, settings config.Settings) (Strategy, error)

// Registry manages the available strategy variants.
type Registry struct {
	factories map[Kind]Factory
	mu        sync.RWMutex
}

// NewRegistry creates an empty strategy registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[Kind]Factory),
		mu:        sync.RWMutex{},
	}
}

// Register adds a strategy factory to the registry.
func (r *Registry) Register(kind Kind, factory Factory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[kind]; exists {
		return errors.Newf(errors.ErrCodeStrategyAlreadyExists, "Register: strategy kind %s already registered", kind)
	}

	r.factories[kind] = factory

	return nil
}

// Create builds a strategy of the given kind from params and settings.
func (r *Registry) Create(kind Kind, params map[string]any, settings config.Settings) (Strategy, error) {
	r.mu.RLock()
	factory, exists := r.factories[kind]
	r.mu.RUnlock()

	if !exists {
		return nil, errors.Newf(errors.ErrCodeStrategyNotFound, "Create: strategy kind %s not found", kind)
	}

	if err := settings.Validate(); err != nil {
		return nil, err
	}

	return factory(params, settings)
}

// Kinds returns the registered strategy kinds in sorted order.
func (r *Registry) Kinds() []Kind {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]Kind, 0, len(r.factories))
	for kind := range r.factories {
		kinds = append(kinds, kind)
	}

	sort.Slice(kinds, func(i, j int) bool { return kinds[i] < kinds[j] })

	return kinds
}

// DefaultRegistry returns a registry with every built-in variant registered.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	register := func(kind Kind, factory Factory) {
		// built-in kinds are unique by construction
		_ = r.Register(kind, factory)
	}

	register(KindMACrossover, func(params map[string]any, settings config.Settings) (Strategy, error) {
		cfg := DefaultMACrossoverConfig()
		if err := decodeParams(params, &cfg); err != nil {
			return nil, err
		}

		return NewMACrossover(cfg, settings)
	})
	register(KindMACD, func(params map[string]any, settings config.Settings) (Strategy, error) {
		cfg := DefaultMACDConfig()
		if err := decodeParams(params, &cfg); err != nil {
			return nil, err
		}

		return NewMACD(cfg, settings)
	})
	register(KindBreakout, func(params map[string]any, settings config.Settings) (Strategy, error) {
		cfg := DefaultBreakoutConfig()
		if err := decodeParams(params, &cfg); err != nil {
			return nil, err
		}

		return NewBreakout(cfg, settings)
	})
	register(KindScalping, func(params map[string]any, settings config.Settings) (Strategy, error) {
		cfg := DefaultScalpingConfig()
		if err := decodeParams(params, &cfg); err != nil {
			return nil, err
		}

		return NewScalping(cfg, settings)
	})
	register(KindMomentumBreakout, func(params map[string]any, settings config.Settings) (Strategy, error) {
		cfg := DefaultMomentumBreakoutConfig()
		if err := decodeParams(params, &cfg); err != nil {
			return nil, err
		}

		return NewMomentumBreakout(cfg, settings)
	})
	register(KindRSIOscillator, func(params map[string]any, settings config.Settings) (Strategy, error) {
		cfg := DefaultRSIOscillatorConfig()
		if err := decodeParams(params, &cfg); err != nil {
			return nil, err
		}

		return NewRSIOscillator(cfg, settings)
	})
	register(KindMeanReversion, func(params map[string]any, settings config.Settings) (Strategy, error) {
		cfg := DefaultMeanReversionConfig()
		if err := decodeParams(params, &cfg); err != nil {
			return nil, err
		}

		return NewMeanReversion(cfg, settings)
	})
	register(KindVWAPReversion, func(params map[string]any, settings config.Settings) (Strategy, error) {
		cfg := DefaultVWAPReversionConfig()
		if err := decodeParams(params, &cfg); err != nil {
			return nil, err
		}

		return NewVWAPReversion(cfg, settings)
	})
	register(KindZScore, func(params map[string]any, settings config.Settings) (Strategy, error) {
		cfg := DefaultZScoreConfig()
		if err := decodeParams(params, &cfg); err != nil {
			return nil, err
		}

		return NewZScore(cfg, settings)
	})
	register(KindVolatilityBreakout, func(params map[string]any, settings config.Settings) (Strategy, error) {
		cfg := DefaultVolatilityBreakoutConfig()
		if err := decodeParams(params, &cfg); err != nil {
			return nil, err
		}

		return NewVolatilityBreakout(cfg, settings)
	})
	register(KindBollingerContraction, func(params map[string]any, settings config.Settings) (Strategy, error) {
		cfg := DefaultBollingerContractionConfig()
		if err := decodeParams(params, &cfg); err != nil {
			return nil, err
		}

		return NewBollingerContraction(cfg, settings)
	})
	register(KindSupportResistance, func(params map[string]any, settings config.Settings) (Strategy, error) {
		cfg := DefaultSupportResistanceConfig()
		if err := decodeParams(params, &cfg); err != nil {
			return nil, err
		}

		return NewSupportResistance(cfg, settings)
	})
	register(KindCandleReversal, func(params map[string]any, settings config.Settings) (Strategy, error) {
		cfg := DefaultCandleReversalConfig()
		if err := decodeParams(params, &cfg); err != nil {
			return nil, err
		}

		return NewCandleReversal(cfg, settings)
	})
	register(KindTimeOfDay, func(params map[string]any, settings config.Settings) (Strategy, error) {
		cfg := DefaultTimeOfDayConfig()
		if err := decodeParams(params, &cfg); err != nil {
			return nil, err
		}

		return NewTimeOfDay(cfg, settings)
	})
	register(KindVolumeProfile, func(params map[string]any, settings config.Settings) (Strategy, error) {
		cfg := DefaultVolumeProfileConfig()
		if err := decodeParams(params, &cfg); err != nil {
			return nil, err
		}

		return NewVolumeProfile(cfg, settings)
	})
	register(KindVolumeSurge, func(params map[string]any, settings config.Settings) (Strategy, error) {
		cfg := DefaultVolumeSurgeConfig()
		if err := decodeParams(params, &cfg); err != nil {
			return nil, err
		}

		return NewVolumeSurge(cfg, settings)
	})

	return r
}
