package calibration

import "math"

// PlattModel is a fitted 1-D logistic regression point = sigma(a*score+b)
// (spec.md §4.4). No pack example fits a logistic regression, so the
// Newton-Raphson solver below is hand-written against the closed-form
// IRLS update for a single predictor plus intercept — justified in
// DESIGN.md as stdlib-only because no example repo or original_source
// file implements maximum-likelihood logistic fitting.
type PlattModel struct {
	A, B float64
}

func sigmoid(x float64) float64 {
	return 1.0 / (1.0 + math.Exp(-x))
}

// FitPlatt fits (a,b) by Newton-Raphson on the logistic log-likelihood.
func FitPlatt(samples []Sample) PlattModel {
	a, b := 0.0, 0.0
	const maxIter = 50
	for iter := 0; iter < maxIter; iter++ {
		var g0, g1, h00, h01, h11 float64
		for _, s := range samples {
			p := sigmoid(b + a*s.Score)
			y := 0.0
			if s.Outcome {
				y = 1.0
			}
			g0 += y - p
			g1 += (y - p) * s.Score
			w := p * (1 - p)
			h00 += w
			h01 += w * s.Score
			h11 += w * s.Score * s.Score
		}
		det := h00*h11 - h01*h01
		if math.Abs(det) < 1e-12 {
			break
		}
		db := (h11*g0 - h01*g1) / det
		da := (h00*g1 - h01*g0) / det
		a += da
		b += db
		if math.Abs(da) < 1e-9 && math.Abs(db) < 1e-9 {
			break
		}
	}
	return PlattModel{A: a, B: b}
}

// Predict implements spec.md §4.4's Platt method: point=sigma(a*score+b);
// the confidence interval is built from a bootstrap standard error, as
// the spec explicitly permits ("a simple ±1.96·SE is acceptable").
func (m PlattModel) Predict(score float64, samples []Sample, bootstrapN int) Estimate {
	point := sigmoid(m.A*score + m.B)

	se := bootstrapSE(samples, score, bootstrapN)
	lower := clamp01(point - 1.96*se)
	upper := clamp01(point + 1.96*se)
	if lower > point {
		lower = point
	}
	if upper < point {
		upper = point
	}

	return Estimate{
		Point:      point,
		Lower:      lower,
		Upper:      upper,
		Method:     MethodPlatt,
		Confidence: math.Min(0.9, 0.5+0.15*math.Abs(score)),
	}
}

// bootstrapSE resamples samples with replacement bootstrapN times,
// refits, and returns the standard deviation of the resulting point
// predictions at score. rngState is a tiny xorshift so this stays
// deterministic without pulling math/rand (spec.md §2's ordering
// guarantee requires byte-identical output for fixed inputs).
func bootstrapSE(samples []Sample, score float64, bootstrapN int) float64 {
	if len(samples) < 2 || bootstrapN <= 1 {
		return 0.05
	}

	preds := make([]float64, 0, bootstrapN)
	state := uint64(88172645463325252)
	next := func(n int) int {
		state ^= state << 13
		state ^= state >> 7
		state ^= state << 17
		return int(state % uint64(n))
	}

	for b := 0; b < bootstrapN; b++ {
		resample := make([]Sample, len(samples))
		for i := range resample {
			resample[i] = samples[next(len(samples))]
		}
		model := FitPlatt(resample)
		preds = append(preds, sigmoid(model.A*score+model.B))
	}

	mean := 0.0
	for _, p := range preds {
		mean += p
	}
	mean /= float64(len(preds))

	variance := 0.0
	for _, p := range preds {
		variance += (p - mean) * (p - mean)
	}
	variance /= float64(len(preds))

	return math.Sqrt(variance)
}

func clamp01(v float64) float64 {
	return math.Max(0.01, math.Min(0.99, v))
}
