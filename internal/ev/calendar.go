package ev

// CalendarInputs is the calendar spread EV formula's inputs (spec.md
// §4.6.4).
type CalendarInputs struct {
	Spot            float64
	TermSlope       float64
	SpreadATM       float64
	SlippagePct     float64
	CostPerContract float64
	PWin            float64
	TargetRRMin     float64
}

// Calendar implements spec.md §4.6.4's calendar spread closed form:
// debit ≈ 0.02·spot, max_profit = 1.5·debit, max_loss = debit,
// expected_win = 0.6·max_profit, expected_loss = 0.7·max_loss. Exposes
// term_slope since a calendar's edge is driven by term structure, not
// the debit itself.
func Calendar(in CalendarInputs) Result {
	debit := 0.02 * in.Spot
	maxProfit := 1.5 * debit
	maxLoss := debit

	expectedWin := 0.6 * maxProfit
	expectedLoss := 0.7 * maxLoss
	costs := in.SpreadATM*debit + in.SlippagePct*debit + 2*in.CostPerContract

	r := finish(expectedWin, expectedLoss, costs, in.PWin, in.TargetRRMin)
	r.Debit = f(debit)
	r.MaxProfit = f(maxProfit)
	r.MaxLoss = f(maxLoss)
	r.TermSlope = f(in.TermSlope)
	return r
}
