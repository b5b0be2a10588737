package features

import (
	"math"

	"github.com/foreverwb/volquant/internal/schema"
)

const (
	RegimePositiveGamma = "positive_gamma"
	RegimeNegativeGamma = "negative_gamma"
	RegimeNeutral       = "neutral"

	FlipRiskHigh     = "high"
	FlipRiskModerate = "moderate"
	FlipRiskLow      = "low"
)

// Regime is the central-rule feature bundle (spec.md §4.2).
type Regime struct {
	State                string
	TriggerDistancePct   float64
	SignConsistent       bool
	IsPinRisk            bool
	NearestWall          string // "call" | "put" | ""
	NearestWallDistance  *float64
	FlipRisk             string
}

// ComputeRegime implements spec.md §4.2's central rule: d =
// (spot-vol_trigger)/vol_trigger; |d|<=neutralPct is neutral, otherwise
// positive_gamma when spot>=vol_trigger else negative_gamma. The
// caller-supplied net_gex_sign is cross-checked but never overrides the
// computed state. is_pin_risk requires positive_gamma AND proximity<=
// pinPct. flip_risk is high within 0.005, moderate within 0.01, else low.
func ComputeRegime(s *schema.InputSnapshot, neutralPct, pinPct float64) Regime {
	d := (s.Market.Spot - s.Market.VolTrigger) / s.Market.VolTrigger
	absD := math.Abs(d)

	state := RegimeNeutral
	if absD > neutralPct {
		if s.Market.Spot >= s.Market.VolTrigger {
			state = RegimePositiveGamma
		} else {
			state = RegimeNegativeGamma
		}
	}

	expectedSign := 0
	if state == RegimePositiveGamma {
		expectedSign = 1
	} else if state == RegimeNegativeGamma {
		expectedSign = -1
	}
	signConsistent := int(s.Regime.NetGEXSign) == expectedSign

	isPinRisk := state == RegimePositiveGamma && s.Regime.GammaWallProximityPct <= pinPct

	flipRisk := FlipRiskLow
	switch {
	case absD <= 0.005:
		flipRisk = FlipRiskHigh
	case absD <= 0.01:
		flipRisk = FlipRiskModerate
	}

	nearestWall := ""
	var nearestDist *float64
	if s.Regime.GammaWallCall != nil && s.Regime.GammaWallPut != nil {
		callDist := math.Abs(*s.Regime.GammaWallCall-s.Market.Spot) / s.Market.Spot
		putDist := math.Abs(s.Market.Spot-*s.Regime.GammaWallPut) / s.Market.Spot
		if callDist <= putDist {
			nearestWall, nearestDist = "call", &callDist
		} else {
			nearestWall, nearestDist = "put", &putDist
		}
	} else if s.Regime.GammaWallCall != nil {
		d := math.Abs(*s.Regime.GammaWallCall-s.Market.Spot) / s.Market.Spot
		nearestWall, nearestDist = "call", &d
	} else if s.Regime.GammaWallPut != nil {
		d := math.Abs(s.Market.Spot-*s.Regime.GammaWallPut) / s.Market.Spot
		nearestWall, nearestDist = "put", &d
	}

	return Regime{
		State:               state,
		TriggerDistancePct:  absD,
		SignConsistent:      signConsistent,
		IsPinRisk:           isPinRisk,
		NearestWall:         nearestWall,
		NearestWallDistance: nearestDist,
		FlipRisk:            flipRisk,
	}
}

// Significance classifies a regime-change transition (spec.md §4.2,
// used by the update path's regime-change detector).
type Significance string

const (
	SignificanceNone  Significance = "none"
	SignificanceMinor Significance = "minor"
	SignificanceMajor Significance = "major"
)

// DetectRegimeChange compares the current and previous regime state
// (spec.md §4.2, §8.4 scenario 5): changed iff they differ;
// significance is major across a positive<->negative gamma flip, minor
// when either side is neutral, none otherwise.
func DetectRegimeChange(previous, current string) (changed bool, significance Significance) {
	if previous == current {
		return false, SignificanceNone
	}
	isFlip := (previous == RegimePositiveGamma && current == RegimeNegativeGamma) ||
		(previous == RegimeNegativeGamma && current == RegimePositiveGamma)
	if isFlip {
		return true, SignificanceMajor
	}
	if previous == RegimeNeutral || current == RegimeNeutral {
		return true, SignificanceMinor
	}
	return true, SignificanceNone
}
