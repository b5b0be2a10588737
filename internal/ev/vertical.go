package ev

import "math"

// VerticalInputs is the vertical debit/credit spread EV formula's
// inputs (spec.md §4.6.4). Shared by bull_call_spread and
// debit_vertical_call, which spec.md and original_source give no
// distinct payoff math for.
type VerticalInputs struct {
	LongStrike      float64
	ShortStrike     float64
	SpreadATM       float64
	SlippagePct     float64
	CostPerContract float64
	PWin            float64
	TargetRRMin     float64
	IsDebit         bool
}

// Vertical implements spec.md §4.6.4's vertical spread closed form:
// width from the two strikes, debit ≈ 0.4·width (credit ≈ 0.3·width for
// a credit spread), max_profit/max_loss derived from the net outlay,
// expected_win = 0.7·max_profit, expected_loss = 0.8·max_loss.
func Vertical(in VerticalInputs) Result {
	width := math.Abs(in.ShortStrike - in.LongStrike)

	var maxProfit, maxLoss, outlay float64
	var debitPtr, creditPtr *float64
	if in.IsDebit {
		debit := 0.4 * width
		maxProfit = width - debit
		maxLoss = debit
		outlay = debit
		debitPtr = f(debit)
	} else {
		credit := 0.3 * width
		maxProfit = credit
		maxLoss = width - credit
		outlay = credit
		creditPtr = f(credit)
	}

	expectedWin := 0.7 * maxProfit
	expectedLoss := 0.8 * maxLoss
	costs := in.SpreadATM*outlay + in.SlippagePct*outlay + 2*in.CostPerContract

	r := finish(expectedWin, expectedLoss, costs, in.PWin, in.TargetRRMin)
	r.MaxProfit = f(maxProfit)
	r.MaxLoss = f(maxLoss)
	r.Debit = debitPtr
	r.Credit = creditPtr

	if !in.IsDebit {
		// A credit spread's RR is credit/max_loss (spec.md §3.2,
		// §4.6.4); the debit side keeps finish's expected_profit/
		// expected_loss form per §4.6.4.
		rr := 0.0
		if maxLoss != 0 {
			rr = *creditPtr / maxLoss
		}
		r.RRRatio = rr
		r.TargetRRMet = rr >= in.TargetRRMin
	}
	return r
}
