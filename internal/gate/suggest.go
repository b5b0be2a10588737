package gate

// SuggestAdjustments maps each failure code to a human parameter hint
// (spec.md §4.6.5). It never mutates the candidate; callers decide
// whether and how to re-run with adjusted parameters.
func SuggestAdjustments(failures []Failure) []string {
	var hints []string
	for _, f := range failures {
		switch f.Code {
		case CodeEVNegative:
			hints = append(hints, "widen strikes or reduce cost assumptions to recover positive EV")
		case CodeRRInsufficient:
			hints = append(hints, "widen the spread or move strikes further out-of-the-money to raise reward/risk")
		case CodeSpreadHigh:
			hints = append(hints, "wait for a tighter at-the-money spread or trade a more liquid expiration")
		case CodeIVAskHigh:
			hints = append(hints, "wait for IV ask premium to compress before entering")
		case CodePoorLiquidity:
			hints = append(hints, "downgrade to a balanced or conservative tier, or reduce size")
		case CodeConservativeProbLow:
			hints = append(hints, "require a higher calibrated probability or downgrade the tier")
		case CodeTierRRMismatch:
			hints = append(hints, "adjust strikes so reward/risk matches this tier's target band")
		case CodeZeroDTE:
			hints = append(hints, "select a later expiration")
		case CodeNegativeGammaShort:
			hints = append(hints, "switch to a long-vol template until the gamma regime flips positive")
		case CodeEventWeekConservativeShort:
			hints = append(hints, "wait until after the event to run conservative short-vol premium strategies")
		}
	}
	return hints
}
