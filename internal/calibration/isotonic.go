package calibration

import (
	"math"
	"sort"
)

// IsotonicModel is a monotone score-to-probability lookup table fitted
// by pool-adjacent-violators regression, adapted from
// sawpanic-cryptorun/internal/score/calibration/isotonic.go's
// IsotonicCalibrator (its regime-aware metadata and refresh-scheduling
// fields are dropped — this engine persists samples per (symbol,
// direction) via internal/calibstore rather than keeping calibrator
// state resident, so only the fitted curve survives here).
type IsotonicModel struct {
	scores []float64
	probs  []float64
}

// FitIsotonic bins samples by score and pools adjacent bins that
// violate monotonicity, producing a non-decreasing score->probability
// curve (spec.md §4.4: "piecewise-linear table ... produced by
// isotonic fit").
func FitIsotonic(samples []Sample) IsotonicModel {
	if len(samples) == 0 {
		return IsotonicModel{}
	}

	sorted := make([]Sample, len(samples))
	copy(sorted, samples)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Score < sorted[j].Score })

	numBins := optimalBinCount(len(sorted))
	binSize := len(sorted) / numBins
	if binSize < 1 {
		binSize = 1
	}

	var scores, probs, weights []float64
	for i := 0; i < len(sorted); i += binSize {
		end := i + binSize
		if end > len(sorted) {
			end = len(sorted)
		}
		if end <= i {
			break
		}
		bucket := sorted[i:end]
		scoreSum, positives := 0.0, 0
		for _, s := range bucket {
			scoreSum += s.Score
			if s.Outcome {
				positives++
			}
		}
		scores = append(scores, scoreSum/float64(len(bucket)))
		probs = append(probs, float64(positives)/float64(len(bucket)))
		weights = append(weights, float64(len(bucket)))
	}

	poolAdjacentViolators(scores, probs, weights)

	return IsotonicModel{scores: scores, probs: probs}
}

func optimalBinCount(n int) int {
	base := int(math.Ceil(math.Log2(float64(n)))) + 1
	if base < 5 {
		base = 5
	}
	if base > 50 {
		base = 50
	}
	if byTen := n / 10; byTen >= 5 && base > byTen {
		base = byTen
	}
	return base
}

// poolAdjacentViolators merges adjacent bins whose probability
// decreases, restoring monotonicity in place.
func poolAdjacentViolators(scores, probs, weights []float64) {
	for i := 1; i < len(probs); i++ {
		if probs[i] >= probs[i-1] {
			continue
		}
		start, end := i-1, i
		for start > 0 && probs[start] < probs[start-1] {
			start--
		}
		totalWeight, weightedProb, weightedScore := 0.0, 0.0, 0.0
		for j := start; j <= end; j++ {
			totalWeight += weights[j]
			weightedProb += weights[j] * probs[j]
			weightedScore += weights[j] * scores[j]
		}
		pooledProb := weightedProb / totalWeight
		pooledScore := weightedScore / totalWeight
		for j := start; j <= end; j++ {
			probs[j] = pooledProb
			scores[j] = pooledScore
		}
		i = 0
	}
}

// Predict linearly interpolates between bracketing anchors, clamping
// at the endpoints (spec.md §4.4).
func (m IsotonicModel) Predict(score float64) float64 {
	if len(m.scores) == 0 {
		return 0.5
	}
	if score <= m.scores[0] {
		return m.probs[0]
	}
	if score >= m.scores[len(m.scores)-1] {
		return m.probs[len(m.probs)-1]
	}
	for i := 1; i < len(m.scores); i++ {
		if score <= m.scores[i] {
			x0, x1 := m.scores[i-1], m.scores[i]
			y0, y1 := m.probs[i-1], m.probs[i]
			weight := (score - x0) / (x1 - x0)
			return y0 + weight*(y1-y0)
		}
	}
	return m.probs[len(m.probs)-1]
}

// IsotonicEstimate wraps Predict into a full Estimate, with a
// fixed-width interval since the underlying curve carries no per-point
// confidence band (consistent with spec.md §4.4's "linear
// interpolation... clamp at endpoints").
func (m IsotonicModel) IsotonicEstimate(score float64) Estimate {
	point := clamp01(m.Predict(score))
	return Estimate{
		Point:      point,
		Lower:      clamp01(point - 0.05),
		Upper:      clamp01(point + 0.05),
		Method:     MethodIsotonic,
		Confidence: math.Min(0.9, 0.5+0.15*math.Abs(score)),
	}
}
