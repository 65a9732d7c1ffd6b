// Package safemath provides guarded arithmetic used by every calculation in
// herdcarbon. None of these helpers panic, and none of them return NaN or
// ±Inf to the caller.
package safemath

import (
	"math"
	"strconv"
	"strings"
)

// DefaultPercentDecimals is the rounding applied by Percentage callers that
// do not need a specific precision.
const DefaultPercentDecimals = 1

// IsFinite reports whether v is neither NaN nor ±Inf.
func IsFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// SafeDivide returns numerator/denominator, or fallback when the denominator
// is zero, when either operand is NaN, or when the quotient is not finite.
func SafeDivide(numerator, denominator, fallback float64) float64 {
	if denominator == 0 || math.IsNaN(denominator) || math.IsNaN(numerator) {
		return fallback
	}
	q := numerator / denominator
	if !IsFinite(q) {
		return fallback
	}
	return q
}

// Clamp bounds value to the inclusive range [lo, hi]. NaN clamps to lo.
func Clamp(value, lo, hi float64) float64 {
	if math.IsNaN(value) {
		return lo
	}
	return math.Max(lo, math.Min(hi, value))
}

// RoundTo rounds value half away from zero to the given number of decimals.
func RoundTo(value float64, decimals int) float64 {
	if !IsFinite(value) {
		return 0
	}
	pow := math.Pow(10, float64(decimals))
	return math.Round(value*pow) / pow
}

// Percentage returns part/whole expressed as a percentage, rounded to decimals.
// A zero or invalid whole yields 0.
func Percentage(part, whole float64, decimals int) float64 {
	return RoundTo(SafeDivide(part, whole, 0)*100, decimals)
}

// EnsurePositive returns value when it is strictly positive and finite,
// otherwise fallback.
func EnsurePositive(value, fallback float64) float64 {
	if value > 0 && IsFinite(value) {
		return value
	}
	return fallback
}

// SafeSum adds values, skipping NaN and ±Inf entries.
func SafeSum(values ...float64) float64 {
	var sum float64
	for _, v := range values {
		if IsFinite(v) {
			sum += v
		}
	}
	return sum
}

// SafeAverage returns the mean of values, or 0 for an empty input.
func SafeAverage(values ...float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return SafeDivide(SafeSum(values...), float64(len(values)), 0)
}

// ParseNumeric parses s as a float, returning fallback when s is empty,
// malformed, or not finite.
func ParseNumeric(s string, fallback float64) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || !IsFinite(v) {
		return fallback
	}
	return v
}
