package ev

import "math"

// StraddleInputs is the long-straddle/long-strangle EV formula's inputs
// (spec.md §4.6.4).
type StraddleInputs struct {
	Spot            float64
	IVATM           float64
	HV20            float64
	DTE             int
	SpreadATM       float64
	SlippagePct     float64
	CostPerContract float64
	PWin            float64
	TargetRRMin     float64
	IsStrangle      bool
}

// LongStraddle implements spec.md §4.6.4's long straddle/strangle
// closed form: premium_pct ≈ 0.8·iv_atm·√T (0.5 for a strangle),
// expected_profit scaled by the RV/IV ratio, a fixed 80% expected loss
// of premium, and round-trip costs across 2 contracts.
func LongStraddle(in StraddleInputs) Result {
	t := float64(in.DTE) / 365.0
	sqrtT := math.Sqrt(t)

	premiumPct := 0.8 * in.IVATM * sqrtT
	if in.IsStrangle {
		premiumPct = 0.5 * in.IVATM * sqrtT
	}
	premium := in.Spot * premiumPct
	breakeven := premium / in.Spot

	expectedProfit := premium * (1.5 - 1) * (in.HV20 / in.IVATM)
	expectedLoss := 0.8 * premium
	costs := in.SpreadATM*premium + in.SlippagePct*premium + 2*in.CostPerContract

	r := finish(expectedProfit, expectedLoss, costs, in.PWin, in.TargetRRMin)
	r.Premium = f(premium)
	r.BreakevenMovePct = f(breakeven)
	return r
}
