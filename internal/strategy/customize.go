package strategy

// ReferenceLevels pins the price anchors a customized candidate's
// strike calculation will key off.
type ReferenceLevels struct {
	GammaWallCall *float64
	GammaWallPut  *float64
	VolTrigger    float64
	Spot          float64
}

// Customized is a template after customize_parameters has tightened
// its DTE window and attached reference levels (spec.md §4.6.2).
type Customized struct {
	Candidate
	ReferenceLevels ReferenceLevels
}

// CustomizeParameters implements spec.md §4.6.2's customize_parameters:
// under is_event_week the DTE window tightens into [5,20] (clamped
// against the template's own range), and gamma-wall/vol-trigger/spot
// reference levels are always attached.
func CustomizeParameters(c Candidate, ctx Context) Customized {
	dte := c.DTERange
	if ctx.IsEventWeek {
		min := dte.Min
		if min < 5 {
			min = 5
		}
		max := dte.Max
		if max > 20 {
			max = 20
		}
		if max < min {
			max = min
		}
		dte = DTERange{Min: min, Max: max}
	}
	c.DTERange = dte

	return Customized{
		Candidate: c,
		ReferenceLevels: ReferenceLevels{
			GammaWallCall: ctx.GammaWallCall,
			GammaWallPut:  ctx.GammaWallPut,
			VolTrigger:    ctx.VolTrigger,
			Spot:          ctx.Spot,
		},
	}
}
