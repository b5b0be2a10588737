package strike

import "math"

// invNormCDF approximates the standard normal quantile function Φ⁻¹(p)
// via the Abramowitz-Stegun rational approximation (formula 26.2.23),
// accurate to about 4.5e-4. p is clamped away from the 0/1 endpoints
// before the rational approximation is applied.
func invNormCDF(p float64) float64 {
	const eps = 1e-12
	if p < eps {
		p = eps
	}
	if p > 1-eps {
		p = 1 - eps
	}

	const (
		c0, c1, c2 = 2.515517, 0.802853, 0.010328
		d1, d2, d3 = 1.432788, 0.189269, 0.001308
	)

	rational := func(t float64) float64 {
		return t - (c0+c1*t+c2*t*t)/(1+d1*t+d2*t*t+d3*t*t*t)
	}

	if p < 0.5 {
		t := math.Sqrt(-2 * math.Log(p))
		return -rational(t)
	}
	q := 1 - p
	t := math.Sqrt(-2 * math.Log(q))
	return rational(t)
}

// clampDelta clamps Φ⁻¹'s output to ±4, per spec.md §4.6.3.
func clampDelta(d1 float64) float64 {
	if d1 > 4 {
		return 4
	}
	if d1 < -4 {
		return -4
	}
	return d1
}
