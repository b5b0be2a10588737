package ev

// Inputs bundles every field any family formula might need, so the
// dispatcher can stay a flat switch without per-family structs leaking
// into callers that don't know which template was picked yet.
type Inputs struct {
	Spot            float64
	IVATM           float64
	HV20            float64
	DTE             int
	TermSlope       float64
	WingWidth       float64
	LongStrike      float64
	ShortStrike     float64
	SpreadATM       float64
	SlippagePct     float64
	CostPerContract float64
	PWin            float64
	TargetRRMin     float64
}

// Estimate dispatches to the closed-form EV formula for a given
// strategy template name (spec.md §4.6.4). bull_call_spread and
// debit_vertical_call both route through Vertical in debit mode
// (DESIGN.md open-question decision #3); spec.md gives no distinct
// closed form for short_strangle, so it falls through to Generic along
// with any other unrecognized template.
func Estimate(template string, in Inputs) Result {
	switch template {
	case "long_straddle":
		return LongStraddle(StraddleInputs{
			Spot: in.Spot, IVATM: in.IVATM, HV20: in.HV20, DTE: in.DTE,
			SpreadATM: in.SpreadATM, SlippagePct: in.SlippagePct,
			CostPerContract: in.CostPerContract, PWin: in.PWin,
			TargetRRMin: in.TargetRRMin, IsStrangle: false,
		})
	case "long_strangle":
		return LongStraddle(StraddleInputs{
			Spot: in.Spot, IVATM: in.IVATM, HV20: in.HV20, DTE: in.DTE,
			SpreadATM: in.SpreadATM, SlippagePct: in.SlippagePct,
			CostPerContract: in.CostPerContract, PWin: in.PWin,
			TargetRRMin: in.TargetRRMin, IsStrangle: true,
		})
	case "iron_condor":
		return IronCondor(CondorInputs{
			Spot: in.Spot, IVATM: in.IVATM, DTE: in.DTE, WingWidth: in.WingWidth,
			SpreadATM: in.SpreadATM, SlippagePct: in.SlippagePct,
			CostPerContract: in.CostPerContract, PWin: in.PWin, TargetRRMin: in.TargetRRMin,
		})
	case "bull_call_spread", "debit_vertical_call":
		return Vertical(VerticalInputs{
			LongStrike: in.LongStrike, ShortStrike: in.ShortStrike,
			SpreadATM: in.SpreadATM, SlippagePct: in.SlippagePct,
			CostPerContract: in.CostPerContract, PWin: in.PWin,
			TargetRRMin: in.TargetRRMin, IsDebit: true,
		})
	case "credit_spread":
		return Vertical(VerticalInputs{
			LongStrike: in.LongStrike, ShortStrike: in.ShortStrike,
			SpreadATM: in.SpreadATM, SlippagePct: in.SlippagePct,
			CostPerContract: in.CostPerContract, PWin: in.PWin,
			TargetRRMin: in.TargetRRMin, IsDebit: false,
		})
	case "calendar_spread":
		return Calendar(CalendarInputs{
			Spot: in.Spot, TermSlope: in.TermSlope,
			SpreadATM: in.SpreadATM, SlippagePct: in.SlippagePct,
			CostPerContract: in.CostPerContract, PWin: in.PWin, TargetRRMin: in.TargetRRMin,
		})
	default:
		return Generic(GenericInputs{Spot: in.Spot, PWin: in.PWin, TargetRRMin: in.TargetRRMin})
	}
}
