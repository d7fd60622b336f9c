package config

import (
	"github.com/halcyon-lab/halcyon-trading/pkg/errors"
)

// ValidatePeriod checks that a window parameter is at least min bars.
func ValidatePeriod(name string, period, min int) error {
	if period < min {
		return errors.Newf(errors.ErrCodeInvalidPeriod, "%s must be at least %d, got %d", name, min, period)
	}

	return nil
}

// ValidatePositive checks that a parameter is strictly positive.
func ValidatePositive(name string, value float64) error {
	if value <= 0 {
		return errors.Newf(errors.ErrCodeInvalidParameter, "%s must be positive, got %f", name, value)
	}

	return nil
}

// ValidateRange checks that a parameter lies within [min, max].
func ValidateRange(name string, value, min, max float64) error {
	if value < min || value > max {
		return errors.Newf(errors.ErrCodeInvalidRange, "%s must be between %f and %f, got %f", name, min, max, value)
	}

	return nil
}
