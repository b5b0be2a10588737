package gate

import "github.com/foreverwb/volquant/internal/schema"

// Input is everything a single candidate's gate run needs (spec.md
// §4.6.5). RRMin/RRTarget/RR{Tier}Min/Max and the liquidity percentile
// caps come from config.EdgeConfig; the rest is per-candidate.
type Input struct {
	NetEV       float64
	RRRatio     float64
	Tier        string // "aggressive" | "balanced" | "conservative"
	Direction   string // "long_vol" | "short_vol"
	Probability float64
	SpreadZ     float64
	IVAskZ      float64
	LiquidityFlag schema.LiquidityFlag
	DTE         int
	RegimeState string // "positive_gamma" | "negative_gamma" | "neutral"
	IsEventWeek bool

	RRMin             float64
	RRTarget          float64
	SpreadMaxPctl     float64
	IVAskMaxPctl      float64
	ConservativeProbMin float64
	RRAggressiveMin   float64
	RRBalancedMin     float64
	RRBalancedMax     float64
	RRConservativeMin float64
	RRConservativeMax float64
}

// Result is the outcome of a single candidate's gate run.
type Result struct {
	Passed   bool
	Failures []Failure
	Warnings []Warning
}

// Evaluate runs all six hard gates (spec.md §4.6.5) and collects every
// failure rather than stopping at the first, so a caller can surface
// the complete rejection reason set.
func Evaluate(in Input) Result {
	var failures []Failure
	var warnings []Warning

	// Gate 1: net EV must be positive.
	if !(in.NetEV > 0) {
		failures = append(failures, fail(CodeEVNegative))
	}

	// Gate 2: RR floor, with a non-blocking warning below target.
	if in.RRRatio < in.RRMin {
		failures = append(failures, fail(CodeRRInsufficient))
	} else if in.RRRatio < in.RRTarget {
		warnings = append(warnings, warn(CodeRRInsufficient))
	}

	// Gate 3: liquidity percentiles, plus a poor-liquidity aggressive block.
	spreadPctl := Percentile(in.SpreadZ)
	ivAskPctl := Percentile(in.IVAskZ)
	if spreadPctl > in.SpreadMaxPctl {
		failures = append(failures, fail(CodeSpreadHigh))
	}
	if ivAskPctl > in.IVAskMaxPctl {
		failures = append(failures, fail(CodeIVAskHigh))
	}
	if in.LiquidityFlag == schema.LiquidityPoor {
		if in.Tier == "aggressive" {
			failures = append(failures, fail(CodePoorLiquidity))
		} else {
			warnings = append(warnings, Warning{Code: CodePoorLiquidity, Message: "reduce position size for poor liquidity"})
		}
	}

	// Gate 4: conservative-tier probability floor.
	if in.Tier == "conservative" && in.Probability < in.ConservativeProbMin {
		failures = append(failures, fail(CodeConservativeProbLow))
	}

	// Gate 5: tier/RR consistency — a warning in spirit, surfaced as a
	// failure label per spec.md §4.6.5 point 5's "warning, not block, in
	// implementation but surfaced as failure label".
	if !tierRRConsistent(in) {
		failures = append(failures, fail(CodeTierRRMismatch))
	}

	// Gate 6: context gates.
	if in.DTE == 0 {
		failures = append(failures, fail(CodeZeroDTE))
	}
	if in.RegimeState == "negative_gamma" && in.Direction == "short_vol" {
		failures = append(failures, fail(CodeNegativeGammaShort))
	}
	if in.IsEventWeek && in.Tier == "conservative" && in.Direction == "short_vol" {
		failures = append(failures, fail(CodeEventWeekConservativeShort))
	}

	return Result{
		Passed:   len(failures) == 0,
		Failures: failures,
		Warnings: warnings,
	}
}

func tierRRConsistent(in Input) bool {
	switch in.Tier {
	case "aggressive":
		return in.RRRatio >= in.RRAggressiveMin
	case "balanced":
		return in.RRRatio >= in.RRBalancedMin && in.RRRatio <= in.RRBalancedMax
	case "conservative":
		return in.RRRatio >= in.RRConservativeMin && in.RRRatio <= in.RRConservativeMax
	default:
		return true
	}
}
