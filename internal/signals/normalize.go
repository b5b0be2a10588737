// Package signals converts a features.Features bundle into the signed
// signal scores and long/short composite scores named by spec.md §4.3,
// grounded on original_source/signals/scorer.py and normalizer.py and
// structured after internal/score/composite's normalization boundary.
package signals

import "math"

// zscore computes (value-mean)/std, clipped to +/-clip (no default is
// applied for clip<=0; callers always supply 3). std<=0 returns 0
// rather than dividing by zero (spec.md §4.3 cold-start placeholders).
func zscore(value, mean, std, clip float64) float64 {
	if std <= 0 {
		return 0
	}
	z := (value - mean) / std
	if z > clip {
		return clip
	}
	if z < -clip {
		return -clip
	}
	return z
}

func indicator(condition bool, ifTrue, ifFalse float64) float64 {
	if condition {
		return ifTrue
	}
	return ifFalse
}

func winsorize(value, lower, upper float64) float64 {
	return math.Max(lower, math.Min(upper, value))
}

func maxZero(v float64) float64 {
	return math.Max(0, v)
}
