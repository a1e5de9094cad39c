package entity

import (
	"fmt"
	"math"
)

// Levels span 1..40 for every levelable entity.
const (
	MinLevel = 1
	MaxLevel = 40
)

// ProgressionType is the curve shape governing how a stat scales from its
// level-1 value to its level-40 value.
type ProgressionType string

const (
	ProgressionLinear  ProgressionType = "Linear"
	ProgressionEaseIn  ProgressionType = "EaseIn"
	ProgressionEaseOut ProgressionType = "EaseOut"
)

// Exponent returns the interpolation exponent for the progression type.
// Unknown types fall back to linear.
func (p ProgressionType) Exponent() float64 {
	switch p {
	case ProgressionEaseIn:
		return 2.0
	case ProgressionEaseOut:
		return 0.5
	default:
		return 1.0
	}
}

// Interpolate computes a level-dependent stat value:
//
//	min + (max - min) * ((level - 1) / 39) ^ exponent
//
// level is clamped to [MinLevel, MaxLevel]; level 1 yields min, level 40
// yields max. For max >= min the result is monotonic in level.
func Interpolate(minValue, maxValue float64, level int, progression ProgressionType) float64 {
	if level < MinLevel {
		level = MinLevel
	}
	if level > MaxLevel {
		level = MaxLevel
	}
	frac := float64(level-1) / float64(MaxLevel-1)
	return minValue + (maxValue-minValue)*math.Pow(frac, progression.Exponent())
}

// StatValue renders a stat for display. When level is outside [MinLevel,
// MaxLevel] (conventionally 0 for "no level requested") the closed interval
// "min - max" is rendered instead of interpolating — the deliberate unleveled
// display mode, not an error. All values show one decimal place.
func StatValue(minValue, maxValue float64, level int, progression ProgressionType) string {
	if level < MinLevel || level > MaxLevel {
		return fmt.Sprintf("%0.1f - %0.1f", minValue, maxValue)
	}
	return fmt.Sprintf("%0.1f", Interpolate(minValue, maxValue, level, progression))
}
