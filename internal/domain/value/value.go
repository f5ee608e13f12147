// Package value maps raw entity values to slider percentages and back.
package value

import (
	"log/slog"
	"math"

	"golang.org/x/exp/constraints"
	"slider-button/internal/domain/model"
)

// Clamp bounds v to [lo, hi].
func Clamp[N constraints.Ordered](v, lo, hi N) N {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ToPercentage maps v linearly onto 0-100, rounding half away from zero.
// With invert, min maps to 100 and max to 0.
func ToPercentage(v, min, max float64, invert bool) int {
	if max == min {
		return 0
	}
	p := Fraction(v, min, max)
	if invert {
		p = 100 - p
	}
	return int(math.Round(Clamp(p, 0, 100)))
}

// Fraction is the unrounded, non-inverted percentage-equivalent of v.
func Fraction(v, min, max float64) float64 {
	if max == min {
		return 0
	}
	return (v - min) * 100 / (max - min)
}

// FromPercentage is the inverse linear map. It never applies inversion:
// that belongs to the spatial layer.
func FromPercentage(p, min, max float64) float64 {
	return min + p*(max-min)/100
}

// ApplyStep rounds v to the nearest multiple of step. A non-positive step is
// treated as 1.
func ApplyStep(v, step float64) float64 {
	step = NormalizeStep(step)
	return model.Clean(math.Round(v/step) * step)
}

// NormalizeStep returns step, or 1 with a warning when step is not positive.
func NormalizeStep(step float64) float64 {
	if step > 0 && !math.IsInf(step, 0) && !math.IsNaN(step) {
		return step
	}
	slog.Warn("invalid slider step, using 1", "step", step)
	return 1
}

// ClampToSubrange bounds a live value to the configured min_value/max_value.
// Only applied while a drag is in progress, through Model.SnapWithin.
func ClampToSubrange(v, minValue, maxValue float64) float64 {
	if minValue > maxValue {
		minValue, maxValue = maxValue, minValue
	}
	return Clamp(v, minValue, maxValue)
}
