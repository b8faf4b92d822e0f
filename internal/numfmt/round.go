// Package numfmt rounds and formats values for display. Error analysis
// always works on unrounded values.
package numfmt

import (
	"math"
	"strconv"
)

const DefaultPrecision = 5

// beyond this magnitude a float64 has no fractional part left to round
const maxExact = 1 << 52

// Round rounds v to precision decimal places, halves away from zero.
// Non-finite values and values too large to carry the requested precision
// are returned unchanged.
func Round(v float64, precision int) float64 {
	if precision < 0 {
		precision = 0
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	scale := math.Pow(10, float64(precision))
	if v == 0 || math.IsInf(scale, 0) {
		return v
	}
	scaled := v * scale
	if math.IsInf(scaled, 0) || math.Abs(scaled) >= maxExact {
		return v
	}
	return math.Round(scaled) / scale
}

// Format renders the rounded value with exactly precision decimals.
func Format(v float64, precision int) string {
	if precision < 0 {
		precision = 0
	}
	return strconv.FormatFloat(Round(v, precision), 'f', precision, 64)
}
