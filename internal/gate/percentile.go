package gate

import "math"

// Percentile approximates a z-score's percentile via the standard
// normal CDF: 0.5*(1+erf(z/√2))*100 (spec.md §4.6.5). Go's math.Erf is
// the exact special function here, so no rational approximation is
// needed the way internal/strike needs one for the inverse.
func Percentile(z float64) float64 {
	return 0.5 * (1 + math.Erf(z/math.Sqrt2)) * 100
}
