// Package decision is the Decision Classifier (spec.md §4.5): the hard
// LONG_VOL/SHORT_VOL gates, context invalidation (poor liquidity,
// conservative mode), tie-break between both sides passing, and the
// winning side's confidence formula. Grounded on spec.md §4.5 directly;
// structured after sawpanic-cryptorun/internal/score's
// threshold-gate-then-classify shape.
package decision

import (
	"github.com/foreverwb/volquant/internal/calibration"
	"github.com/foreverwb/volquant/internal/config"
	"github.com/foreverwb/volquant/internal/schema"
)

// Side is the classifier's three-way output.
type Side string

const (
	SideLongVol    Side = "LONG_VOL"
	SideShortVol   Side = "SHORT_VOL"
	SideStandAside Side = "STAND_ASIDE"
)

// Result is the classifier's verdict.
type Result struct {
	Side        Side
	Confidence  float64
	IsPreferred bool
	Reasons     []string
}

// Input bundles every field the classifier's gates key off.
type Input struct {
	LongScore        float64
	ShortScore       float64
	PLong            calibration.Estimate
	PShort           calibration.Estimate
	LiquidityFlag    schema.LiquidityFlag
	ConservativeMode bool
}

type sideEval struct {
	passed      bool
	isPreferred bool
	reasons     []string
}

// Classify implements spec.md §4.5: evaluate both sides' hard gates,
// apply context invalidation, tie-break if both pass, and compute the
// winning side's confidence.
func Classify(in Input, cfg config.DecisionConfig) Result {
	long := evaluateLong(in, cfg)
	short := evaluateShort(in, cfg)

	switch {
	case long.passed && short.passed:
		return tieBreak(in, cfg, long, short)
	case long.passed:
		return Result{
			Side:        SideLongVol,
			IsPreferred: long.isPreferred,
			Confidence:  confidence(in.PLong, long.isPreferred, scoreMargin(in)),
		}
	case short.passed:
		return Result{
			Side:        SideShortVol,
			IsPreferred: short.isPreferred,
			Confidence:  confidence(in.PShort, short.isPreferred, scoreMargin(in)),
		}
	default:
		return Result{
			Side:    SideStandAside,
			Reasons: append(append([]string{}, long.reasons...), short.reasons...),
		}
	}
}

func evaluateLong(in Input, cfg config.DecisionConfig) sideEval {
	var reasons []string
	passed := true

	if in.LongScore < cfg.LongScoreMin {
		passed = false
		reasons = append(reasons, "long composite score below threshold")
	}
	if in.ShortScore > cfg.LongOpposingMax {
		passed = false
		reasons = append(reasons, "opposing short score too high")
	}
	if in.PLong.Point < cfg.LongProbMin {
		passed = false
		reasons = append(reasons, "calibrated long probability below threshold")
	}
	if in.LiquidityFlag == schema.LiquidityPoor {
		passed = false
		reasons = append(reasons, "poor liquidity invalidates long side")
	}
	if in.ConservativeMode && in.PLong.Point < cfg.ConservativeProbMin {
		passed = false
		reasons = append(reasons, "conservative mode requires higher calibrated probability")
	}

	isPreferred := passed && in.LongScore >= cfg.PreferredLongMin && in.PLong.Point >= cfg.PreferredLongProb
	return sideEval{passed: passed, isPreferred: isPreferred, reasons: reasons}
}

func evaluateShort(in Input, cfg config.DecisionConfig) sideEval {
	var reasons []string
	passed := true

	if in.ShortScore < cfg.ShortScoreMin {
		passed = false
		reasons = append(reasons, "short composite score below threshold")
	}
	if in.LongScore > cfg.ShortOpposingMax {
		passed = false
		reasons = append(reasons, "opposing long score too high")
	}
	if in.PShort.Point < cfg.ShortProbMin {
		passed = false
		reasons = append(reasons, "calibrated short probability below threshold")
	}
	if in.LiquidityFlag == schema.LiquidityPoor {
		passed = false
		reasons = append(reasons, "poor liquidity invalidates short side")
	}
	if in.ConservativeMode && in.PShort.Point < cfg.ConservativeProbMin {
		passed = false
		reasons = append(reasons, "conservative mode requires higher calibrated probability")
	}

	isPreferred := passed && in.ShortScore >= cfg.PreferredShortMin && in.PShort.Point >= cfg.PreferredShortProb
	return sideEval{passed: passed, isPreferred: isPreferred, reasons: reasons}
}

func tieBreak(in Input, cfg config.DecisionConfig, long, short sideEval) Result {
	margin := scoreMargin(in)
	if in.LongScore >= in.ShortScore {
		return Result{
			Side:        SideLongVol,
			IsPreferred: long.isPreferred,
			Confidence:  confidence(in.PLong, long.isPreferred, margin) * 0.8,
		}
	}
	return Result{
		Side:        SideShortVol,
		IsPreferred: short.isPreferred,
		Confidence:  confidence(in.PShort, short.isPreferred, margin) * 0.8,
	}
}

func scoreMargin(in Input) float64 {
	d := in.LongScore - in.ShortScore
	if d < 0 {
		d = -d
	}
	return d
}

// confidence implements spec.md §4.5's winning-side confidence formula:
// min(1, prob.confidence * prob.point * (1.1 if preferred) * (0.9 if
// score_margin < 0.5)).
func confidence(p calibration.Estimate, isPreferred bool, margin float64) float64 {
	c := p.Confidence * p.Point
	if isPreferred {
		c *= 1.1
	}
	if margin < 0.5 {
		c *= 0.9
	}
	if c > 1 {
		c = 1
	}
	return c
}
