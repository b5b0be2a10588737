package ev

// GenericInputs is the fallback EV formula's inputs, used for any
// template family the other closed forms don't cover (spec.md §4.6.4).
type GenericInputs struct {
	Spot        float64
	PWin        float64
	TargetRRMin float64
}

// Generic implements spec.md §4.6.4's fallback: profit = 0.05·spot,
// loss = 0.03·spot, no cost term.
func Generic(in GenericInputs) Result {
	profit := 0.05 * in.Spot
	loss := 0.03 * in.Spot
	return finish(profit, loss, 0, in.PWin, in.TargetRRMin)
}
