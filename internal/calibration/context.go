package calibration

import (
	"math"

	"github.com/foreverwb/volquant/internal/schema"
)

// AdjustmentInput carries the cross-cutting facts spec.md §4.4's
// context-adjustment table keys off: event-week flag, the detected
// gamma regime, its trigger distance, and the liquidity flag.
type AdjustmentInput struct {
	IsEventWeek        bool
	RegimeState        string
	TriggerDistancePct float64
	LiquidityFlag      schema.LiquidityFlag
}

// ApplyContext implements spec.md §4.4's additive context-adjustment
// table, applied to point/lower/upper then re-clamped to (0.01,0.99).
// Confidence is scaled by 0.95 whenever any adjustment actually fired.
func ApplyContext(est Estimate, in AdjustmentInput, isLong bool) Estimate {
	delta := 0.0
	adjusted := false

	if in.IsEventWeek {
		if isLong {
			delta += 0.02
		} else {
			delta += -0.01
		}
		adjusted = true
	}

	switch in.RegimeState {
	case "negative_gamma":
		if isLong {
			delta += math.Min(0.03, 2*in.TriggerDistancePct)
			adjusted = true
		}
	case "positive_gamma":
		if !isLong {
			delta += math.Min(0.03, 2*in.TriggerDistancePct)
			adjusted = true
		}
	}

	if in.LiquidityFlag == schema.LiquidityPoor {
		delta += -0.03
		adjusted = true
	}

	out := est
	out.Point = clamp01(est.Point + delta)
	out.Lower = clamp01(est.Lower + delta)
	out.Upper = clamp01(est.Upper + delta)
	if out.Lower > out.Point {
		out.Lower = out.Point
	}
	if out.Upper < out.Point {
		out.Upper = out.Point
	}
	if adjusted {
		out.Confidence = est.Confidence * 0.95
	}
	return out
}
