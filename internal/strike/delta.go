package strike

import "math"

// TimeToExpiry converts a days-to-expiration count to years, floored at
// 0.01 (spec.md §4.6.3) so a same-day/zero-DTE leg doesn't blow up the
// delta inversion.
func TimeToExpiry(dte int) float64 {
	t := float64(dte) / 365.0
	if t < 0.01 {
		t = 0.01
	}
	return t
}

// FromDelta inverts the Black-Scholes delta to a strike:
// K = S * exp(-Φ⁻¹(δ)*σ*√T + 0.5*σ²*T) for calls, with the sign of
// Φ⁻¹(δ) flipped for puts (spec.md §4.6.3). delta is the target's
// magnitude in (0, 1); sigma is iv_atm.
//
// The closed form spec.md gives omits a risk-free-rate drift term
// (unlike original_source/core/strike_calculator.py's full bs_delta,
// which carries r); we follow spec.md's formula literally here, so
// config.DeltaTargetsConfig.RiskFreeRate plays no role in this
// computation (see DESIGN.md).
func FromDelta(spot, delta, sigma float64, dte int, isCall bool) float64 {
	t := TimeToExpiry(dte)
	d1 := invNormCDF(delta)
	if !isCall {
		d1 = -d1
	}
	d1 = clampDelta(d1)

	sqrtT := math.Sqrt(t)
	return spot * math.Exp(-d1*sigma*sqrtT+0.5*sigma*sigma*t)
}
