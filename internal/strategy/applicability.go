package strategy

// RIM thresholds from spec.md §4.6.2 (confirmed against
// original_source/config/settings.py's RIMSettings.weak_threshold=0.4,
// active_threshold=0.6).
const (
	RIMLowThreshold  = 0.40
	RIMHighThreshold = 0.60
)

// Context is the subset of decision context the Strategy Mapper's
// applicability and scoring rules key off (spec.md §4.6.2).
type Context struct {
	RegimeState    string // positive_gamma | negative_gamma | neutral
	RIM            *float64
	LiquidityFlag  string // good | fair | poor
	IsEventWeek    bool
	Probability    float64
	TermRegime     string // contango | backwardation | flat
	SkewRegime     string // steep_put | call_rich | balanced
	GammaWallCall  *float64
	GammaWallPut   *float64
	VolTrigger     float64
	Spot           float64
}

// CheckApplicability implements spec.md §4.6.2's deterministic rule
// table. Reasons accumulate even after the first rejection so callers
// can surface every contraindication, not just the first.
func CheckApplicability(c Candidate, ctx Context) (applicable bool, reasons []string) {
	applicable = true

	if c.Direction == DirectionLongVol {
		if ctx.RegimeState == "positive_gamma" && c.Tier == TierAggressive {
			applicable = false
			reasons = append(reasons, "positive gamma regime unfavorable for aggressive long vol")
		}
	} else {
		if ctx.RegimeState == "negative_gamma" {
			applicable = false
			reasons = append(reasons, "negative gamma regime unfavorable for short vol")
		}
	}

	if ctx.RIM != nil {
		rim := *ctx.RIM
		if c.Direction == DirectionLongVol && rim < RIMLowThreshold && c.Tier == TierAggressive {
			applicable = false
			reasons = append(reasons, "rim too low for aggressive long vol")
		} else if c.Direction == DirectionShortVol && rim > RIMHighThreshold {
			applicable = false
			reasons = append(reasons, "rim too high for short vol")
		}
	}

	if ctx.LiquidityFlag == "poor" && c.Tier == TierAggressive {
		applicable = false
		reasons = append(reasons, "poor liquidity unsuitable for aggressive strategies")
	}

	if ctx.IsEventWeek && (c.Name == "iron_condor" || c.Name == "short_strangle") {
		applicable = false
		reasons = append(reasons, "event week unsuitable for short vol premium strategies")
	}

	return applicable, reasons
}

// Candidates implements spec.md §4.6.2's get_candidates: filters the
// static catalogue by direction and applicability, then orders
// long-vol results aggressive->balanced->conservative (and the reverse
// for short-vol).
func Candidates(direction string, ctx Context) []Candidate {
	var out []Candidate
	for _, name := range sortedTemplateNames() {
		c := Templates[name]
		if c.Direction != direction {
			continue
		}
		if ok, _ := CheckApplicability(c, ctx); ok {
			out = append(out, c)
		}
	}

	order := map[Tier]int{TierAggressive: 0, TierBalanced: 1, TierConservative: 2}
	if direction == DirectionShortVol {
		order = map[Tier]int{TierConservative: 0, TierBalanced: 1, TierAggressive: 2}
	}
	sortCandidatesByTier(out, order)
	return out
}

func sortedTemplateNames() []string {
	names := make([]string, 0, len(Templates))
	for name := range Templates {
		names = append(names, name)
	}
	// Stable, deterministic iteration (spec.md §2's byte-identical
	// output guarantee forbids relying on Go's randomized map order).
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && names[j-1] > names[j]; j-- {
			names[j-1], names[j] = names[j], names[j-1]
		}
	}
	return names
}

func sortCandidatesByTier(candidates []Candidate, order map[Tier]int) {
	for i := 1; i < len(candidates); i++ {
		for j := i; j > 0 && order[candidates[j-1].Tier] > order[candidates[j].Tier]; j-- {
			candidates[j-1], candidates[j] = candidates[j], candidates[j-1]
		}
	}
}
