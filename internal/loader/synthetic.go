package loader

import (
	"math"
	"math/rand"
	"time"

	"github.com/halcyon-lab/halcyon-trading/internal/types"
)

// Generator synthesizes bar series that follow a geometric Brownian motion
// model. The same seed and config always produce the same series.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator creates a Generator with the given seed. Use a fixed seed for
// reproducible results.
func NewGenerator(seed int64) *Generator {
	return &Generator{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// GeneratorConfig configures how a synthetic series is generated.
type GeneratorConfig struct {
	// StartTime is the first bar's timestamp. For minute series it marks the
	// session open; each later session starts at the same wall-clock time.
	StartTime time.Time
	// Granularity selects daily steps or minute sessions
	Granularity types.Granularity
	// Count is the number of bars to generate
	Count int
	// BarsPerSession caps minute bars per session before the clock jumps to
	// the next day's open. Non-positive means the regular-hours default.
	BarsPerSession int
	// InitialPrice is the starting price
	InitialPrice float64
	// Volatility controls price movement (0.01 = 1% typical move per bar)
	Volatility float64
	// Trend is the total drift distributed across the whole series
	Trend float64
	// VolumeBase is the average volume per bar
	VolumeBase float64
	// VolumeVariance is the variance in volume (0.0 to 1.0)
	VolumeVariance float64
}

// DefaultGeneratorConfig returns a year of daily bars, or a week of
// regular-hours minute bars when granularity is minute.
func DefaultGeneratorConfig(granularity types.Granularity) GeneratorConfig {
	config := GeneratorConfig{
		StartTime:      time.Date(2024, 1, 2, 14, 30, 0, 0, time.UTC),
		Granularity:    granularity,
		Count:          types.TradingDaysPerYear,
		InitialPrice:   100.0,
		Volatility:     0.02,
		Trend:          0.05,
		VolumeBase:     1000000,
		VolumeVariance: 0.3,
	}

	if granularity == types.GranularityMinute {
		config.Count = 5 * types.DefaultBarsPerSession
		config.Volatility = 0.002 // 0.2% per bar
		config.VolumeBase = 10000
	}

	return config
}

// Generate creates a bar series from the configuration. Prices follow a
// geometric Brownian motion model with the trend distributed across the
// bars; every generated bar satisfies the series invariants.
func (g *Generator) Generate(config GeneratorConfig) []types.Bar {
	bars := make([]types.Bar, config.Count)
	currentPrice := config.InitialPrice
	currentTime := config.StartTime
	sessionOpen := config.StartTime

	barsPerSession := config.BarsPerSession
	if barsPerSession <= 0 {
		barsPerSession = types.DefaultBarsPerSession
	}

	barInSession := 0

	for i := 0; i < config.Count; i++ {
		open := currentPrice

		// Box-Muller transform for a normally distributed return
		u1 := g.rng.Float64()
		u2 := g.rng.Float64()
		z := math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)

		priceChange := config.Volatility * z
		drift := config.Trend / float64(config.Count) // Distribute trend across bars

		close := open * (1 + priceChange + drift)
		if close <= 0 {
			close = open * 0.99 // Prevent negative prices
		}

		// High and low extend the open-close range
		highExtension := math.Abs(g.rng.Float64() * config.Volatility * open * 0.5)
		lowExtension := math.Abs(g.rng.Float64() * config.Volatility * open * 0.5)

		high := math.Max(open, close) + highExtension
		low := math.Min(open, close) - lowExtension
		if low <= 0 {
			low = math.Min(open, close) * 0.99
		}

		volumeVariation := 1.0 + (g.rng.Float64()*2-1)*config.VolumeVariance
		volume := config.VolumeBase * volumeVariation
		if volume < 0 {
			volume = config.VolumeBase * 0.1
		}

		bars[i] = types.Bar{
			Time:   currentTime,
			Open:   roundToDecimals(open, 4),
			High:   roundToDecimals(high, 4),
			Low:    roundToDecimals(low, 4),
			Close:  roundToDecimals(close, 4),
			Volume: uint64(math.Round(volume)),
		}

		currentPrice = close

		if config.Granularity == types.GranularityMinute {
			barInSession++
			if barInSession >= barsPerSession {
				sessionOpen = sessionOpen.AddDate(0, 0, 1)
				currentTime = sessionOpen
				barInSession = 0
			} else {
				currentTime = currentTime.Add(time.Minute)
			}
		} else {
			currentTime = currentTime.AddDate(0, 0, 1)
		}
	}

	return bars
}

// roundToDecimals rounds a float64 to the specified number of decimal places.
func roundToDecimals(val float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.Round(val*pow) / pow
}
