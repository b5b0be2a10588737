package calibration

import "math"

// coldStartAnchor pins (score, lower, upper) triples; point is always
// the anchor's midpoint (spec.md §4.4: "interpolate midpoints for point
// and endpoints for lower/upper").
type coldStartAnchor struct {
	score, lower, upper float64
}

// coldStartAnchors are the spec-fixed piece boundaries. The score=0
// anchor degenerates to a point estimate of 0.50 ("extrapolate linearly
// toward (score 0, point 0.50)"); negative scores are clamped to 0
// before lookup since spec.md never defines a score<0 cold-start shape.
var coldStartAnchors = []coldStartAnchor{
	{score: 0.0, lower: 0.50, upper: 0.50},
	{score: 1.0, lower: 0.55, upper: 0.60},
	{score: 1.5, lower: 0.60, upper: 0.65},
	{score: 2.0, lower: 0.65, upper: 0.70},
}

// ColdStart implements spec.md §4.4's piecewise-linear default
// estimator. Confidence = min(0.9, 0.5+0.15*score).
func ColdStart(score float64) Estimate {
	s := math.Max(0, score)

	var lower, upper float64
	switch {
	case s >= 2.0:
		base := coldStartAnchors[len(coldStartAnchors)-1]
		extra := math.Min(0.05, (s-2.0)*0.02)
		lower = base.lower + extra
		upper = math.Min(0.85, base.upper+extra)
	default:
		lo, hi := coldStartAnchors[0], coldStartAnchors[len(coldStartAnchors)-1]
		for i := 0; i < len(coldStartAnchors)-1; i++ {
			if s >= coldStartAnchors[i].score && s <= coldStartAnchors[i+1].score {
				lo, hi = coldStartAnchors[i], coldStartAnchors[i+1]
				break
			}
		}
		weight := 0.0
		if hi.score > lo.score {
			weight = (s - lo.score) / (hi.score - lo.score)
		}
		lower = lo.lower + weight*(hi.lower-lo.lower)
		upper = lo.upper + weight*(hi.upper-lo.upper)
	}

	point := (lower + upper) / 2

	return Estimate{
		Point:      point,
		Lower:      lower,
		Upper:      upper,
		Method:     MethodColdStart,
		Confidence: math.Min(0.9, 0.5+0.15*s),
	}
}
