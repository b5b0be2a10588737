package ev

import "math"

// CondorInputs is the iron condor EV formula's inputs (spec.md §4.6.4).
type CondorInputs struct {
	Spot            float64
	IVATM           float64
	DTE             int
	WingWidth       float64
	SpreadATM       float64
	SlippagePct     float64
	CostPerContract float64
	PWin            float64
	TargetRRMin     float64
}

// IronCondor implements spec.md §4.6.4's iron condor closed form:
// credit = spot·0.15·iv_atm·√T, max_loss = wing_width − credit,
// expected_win = 0.6·credit, expected_loss = 0.7·max_loss, costs
// scaled by 4 contracts (two credit spreads).
func IronCondor(in CondorInputs) Result {
	t := float64(in.DTE) / 365.0
	sqrtT := math.Sqrt(t)

	credit := in.Spot * 0.15 * in.IVATM * sqrtT
	maxLoss := in.WingWidth - credit

	expectedWin := 0.6 * credit
	expectedLoss := 0.7 * maxLoss
	costs := in.SpreadATM*credit + in.SlippagePct*credit + 4*in.CostPerContract

	r := finish(expectedWin, expectedLoss, costs, in.PWin, in.TargetRRMin)
	r.Credit = f(credit)
	r.MaxLoss = f(maxLoss)

	// A credit structure's RR is credit/max_loss (spec.md §3.2, §4.6.4),
	// not expected_win/expected_loss — override finish's default.
	rr := 0.0
	if maxLoss != 0 {
		rr = credit / maxLoss
	}
	r.RRRatio = rr
	r.TargetRRMet = rr >= in.TargetRRMin
	return r
}
