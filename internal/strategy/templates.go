// Package strategy is the Strategy Mapper (spec.md §4.6.1-4.6.2): a
// static template catalogue, deterministic applicability filtering, a
// context-fit scorer for select_best, and customize_parameters.
// Grounded on original_source/decision/strategy_mapper.py's TEMPLATES
// table and _check_applicability/_score_candidate/customize_parameters
// methods, structured the way sawpanic-cryptorun/internal/score/factors
// keeps one static rule table per factor file.
package strategy

// Tier is the three strategy tiers named in spec.md §4.6.1.
type Tier string

const (
	TierAggressive   Tier = "aggressive"
	TierBalanced     Tier = "balanced"
	TierConservative Tier = "conservative"
)

const (
	DirectionLongVol  = "long_vol"
	DirectionShortVol = "short_vol"
)

// DTERange is an inclusive [Min, Max] days-to-expiration window.
type DTERange struct {
	Min, Max int
}

// Candidate is one static strategy template (spec.md §4.6.1).
type Candidate struct {
	Name              string
	Tier              Tier
	Direction         string
	DTERange          DTERange
	DeltaTargets      map[string]string // leg -> delta descriptor (some legs are ranges, kept as text)
	StrikeAnchors     map[string]string // leg -> anchor descriptor
	TargetRRMin       float64
	TargetRRMax       float64
	EntryTriggers     []string
	ExitTriggers      []string
	ApplicableNotes   []string
	Contraindications []string
}

// Templates is the full static catalogue (spec.md §4.6.1's
// representative entries plus the complete set from
// original_source/decision/strategy_mapper.py's TEMPLATES dict, which
// the spec's distillation only sampled).
var Templates = map[string]Candidate{
	"long_straddle": {
		Name: "long_straddle", Tier: TierAggressive, Direction: DirectionLongVol,
		DTERange:      DTERange{5, 20},
		DeltaTargets:  map[string]string{"buy_call": "0.50", "buy_put": "0.50"},
		StrikeAnchors: map[string]string{"buy_call": "atm", "buy_put": "atm"},
		TargetRRMin:   2.0, TargetRRMax: 4.0,
		EntryTriggers: []string{
			"RIM >= 0.6", "Spot < VOL_TRIGGER or just broke below",
			"Distance to positive gamma wall > 0.5-1%",
		},
		ExitTriggers: []string{
			"RV/IV ratio normalizes", "RR target achieved",
			"Spot returns above VOL_TRIGGER", "Touches reverse gamma wall",
		},
		ApplicableNotes:   []string{"Event week (5-20 DTE)", "Negative gamma regime", "High VEX negativity"},
		Contraindications: []string{"Positive gamma regime with pin risk", "Poor liquidity"},
	},
	"long_strangle": {
		Name: "long_strangle", Tier: TierAggressive, Direction: DirectionLongVol,
		DTERange:      DTERange{30, 45},
		DeltaTargets:  map[string]string{"buy_call": "0.325", "buy_put": "0.325"},
		StrikeAnchors: map[string]string{"buy_call": "30-35d_call", "buy_put": "30-35d_put"},
		TargetRRMin:   2.0, TargetRRMax: 5.0,
		EntryTriggers: []string{
			"RIM >= 0.6", "Spot < VOL_TRIGGER", "Steep put skew (structure_preference=put_wing)",
		},
		ExitTriggers:      []string{"RV/IV normalizes", "RR achieved", "Regime flip to positive gamma"},
		ApplicableNotes:   []string{"Non-event period (30-45 DTE)", "Negative gamma regime", "Elevated skew asymmetry"},
		Contraindications: []string{"Flat term structure", "Low VVIX"},
	},
	"bull_call_spread": {
		Name: "bull_call_spread", Tier: TierAggressive, Direction: DirectionLongVol,
		DTERange:      DTERange{14, 35},
		DeltaTargets:  map[string]string{"buy": "0.35", "sell": "0.15-0.25"},
		StrikeAnchors: map[string]string{"buy": "25-35d or 0.5-0.8x implied_move_upper", "sell": "resistance or next gamma_wall, 1.0-1.8x ATR away"},
		TargetRRMin:   2.0, TargetRRMax: 3.0,
		EntryTriggers:     []string{"Directional bias up", "Spot breaking above key level"},
		ExitTriggers:      []string{"Lock 50-70% of spread width", "Failure: fall below wall + RIM < 0.4"},
		ApplicableNotes:   []string{"Bullish directional view", "Moderate IV environment"},
		Contraindications: []string{"Strong put skew", "Negative momentum"},
	},
	"calendar_spread": {
		Name: "calendar_spread", Tier: TierBalanced, Direction: DirectionLongVol,
		DTERange:      DTERange{7, 60},
		DeltaTargets:  map[string]string{"sell_near": "0.50", "buy_far": "0.50"},
		StrikeAnchors: map[string]string{"sell_near": "atm", "buy_far": "atm_or_slight_otm"},
		TargetRRMin:   1.2, TargetRRMax: 1.8,
		EntryTriggers:     []string{"term_slope <= 0 (backwardation)", "Event week elevated, expect post-event crush"},
		ExitTriggers:      []string{"Term structure normalizes", "Near month expires"},
		ApplicableNotes:   []string{"Event-driven term structure dislocation", "Backwardation in near term"},
		Contraindications: []string{"Strong contango", "Directional breakout expected"},
	},
	"debit_vertical_call": {
		Name: "debit_vertical_call", Tier: TierBalanced, Direction: DirectionLongVol,
		DTERange:      DTERange{21, 45},
		DeltaTargets:  map[string]string{"buy": "0.35", "sell": "0.175"},
		StrikeAnchors: map[string]string{"buy": "35d", "sell": "15-20d or resistance"},
		TargetRRMin:   1.2, TargetRRMax: 1.8,
		EntryTriggers:     []string{"Bullish bias", "Cost control desired"},
		ExitTriggers:      []string{"Target achieved", "Direction invalidated"},
		ApplicableNotes:   []string{"Moderate bullish view", "Want defined risk"},
		Contraindications: []string{"Expecting large move beyond sold strike"},
	},
	"iron_condor": {
		Name: "iron_condor", Tier: TierConservative, Direction: DirectionShortVol,
		DTERange: DTERange{14, 45},
		DeltaTargets: map[string]string{
			"sell_call": "0.15", "sell_put": "0.15", "buy_call": "0.04", "buy_put": "0.04",
		},
		StrikeAnchors: map[string]string{
			"sell_call": "10-20d_call", "sell_put": "10-20d_put",
			"buy_call": "3-5d_call", "buy_put": "3-5d_put",
		},
		TargetRRMin: 0.8, TargetRRMax: 1.2,
		EntryTriggers: []string{
			"Spot >= VOL_TRIGGER", "GammaWallProx <= 0.5-1.0%", "RIM <= 0.4", "VVIX falling",
		},
		ExitTriggers: []string{
			"Collect 50-70% of credit", "Break below VOL_TRIGGER -> reduce or hedge", "Break gamma wall -> exit",
		},
		ApplicableNotes:   []string{"Positive gamma regime", "Pin risk environment", "Post-event (T to T+1)", "Low realized volatility"},
		Contraindications: []string{"Negative gamma regime", "High RIM", "Event approaching", "Poor liquidity"},
	},
	"short_strangle": {
		Name: "short_strangle", Tier: TierConservative, Direction: DirectionShortVol,
		DTERange:      DTERange{14, 45},
		DeltaTargets:  map[string]string{"sell_call": "0.15", "sell_put": "0.15"},
		StrikeAnchors: map[string]string{"sell_call": "10-20d_call", "sell_put": "10-20d_put"},
		TargetRRMin:   0.8, TargetRRMax: 1.2,
		EntryTriggers:     []string{"Spot >= VOL_TRIGGER", "Very low RIM", "Strong pin expectation"},
		ExitTriggers:      []string{"Collect 50-70% of credit", "Any directional breakout"},
		ApplicableNotes:   []string{"Strong positive gamma", "Very low vol expectation", "High premium collection opportunity"},
		Contraindications: []string{"Any event risk", "Negative gamma", "High vanna exposure"},
	},
	"credit_spread": {
		Name: "credit_spread", Tier: TierConservative, Direction: DirectionShortVol,
		DTERange:      DTERange{14, 45},
		DeltaTargets:  map[string]string{"sell": "0.15", "buy": "0.04"},
		StrikeAnchors: map[string]string{"sell": "near positive gamma wall +/-0.5-1%", "buy": "1.0-1.5x ATR from sold"},
		TargetRRMin:   0.8, TargetRRMax: 1.2,
		EntryTriggers:     []string{"Anchor to gamma wall", "High premium near resistance/support"},
		ExitTriggers:      []string{"Collect target credit", "Wall breached"},
		ApplicableNotes:   []string{"Clear gamma wall anchor", "Range-bound expectation"},
		Contraindications: []string{"Breakout expected", "Weak wall (low OI)"},
	},
}
