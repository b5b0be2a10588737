// Package ev is the EV Estimator (spec.md §4.6.4): closed-form expected-
// value and reward/risk formulas per strategy family. Grounded on
// spec.md's own formulas (original_source carries no equivalent EV
// module — the original renders strategies without estimating edge),
// structured the way sawpanic-cryptorun/internal/score/composite keeps
// one pure scoring function per concern file.
package ev

// Result is the common output shape every family formula returns
// (spec.md §4.6.4's closing paragraph: every family returns
// target_rr_met and ev_positive alongside its own intermediate terms).
type Result struct {
	ExpectedWin    float64 // "expected_profit" for straddle/strangle
	ExpectedLoss   float64
	Costs          float64
	NetEV          float64
	RRRatio        float64
	TargetRRMet    bool
	EVPositive     bool

	// Family-specific intermediates, populated only by the family that
	// produces them; nil elsewhere.
	Premium          *float64
	BreakevenMovePct *float64
	Credit           *float64
	MaxLoss          *float64
	Debit            *float64
	MaxProfit        *float64
	TermSlope        *float64
}

func finish(expectedWin, expectedLoss, costs, pWin, targetRRMin float64) Result {
	netEV := pWin*expectedWin - (1-pWin)*expectedLoss - costs
	rr := 0.0
	if expectedLoss != 0 {
		rr = expectedWin / expectedLoss
	}
	return Result{
		ExpectedWin:  expectedWin,
		ExpectedLoss: expectedLoss,
		Costs:        costs,
		NetEV:        netEV,
		RRRatio:      rr,
		TargetRRMet:  rr >= targetRRMin,
		EVPositive:   netEV > 0,
	}
}

func f(v float64) *float64 { return &v }
