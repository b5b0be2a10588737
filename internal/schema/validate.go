package schema

import (
	"encoding/json"
	"fmt"
	"regexp"
	"time"
)

var symbolPattern = regexp.MustCompile(`^[A-Z]{1,10}$`)

// rawSnapshot mirrors the on-disk grouping exactly; every field is a
// pointer so Validate can tell "missing" apart from "zero".
type rawSnapshot struct {
	Meta struct {
		Symbol   *string `json:"symbol"`
		Datetime *string `json:"datetime"`
	} `json:"meta"`
	Market struct {
		Spot       *float64 `json:"spot"`
		VolTrigger *float64 `json:"vol_trigger"`
	} `json:"market"`
	Regime struct {
		NetGEXSign            *int     `json:"net_gex_sign"`
		GammaWallCall         *float64 `json:"gamma_wall_call"`
		GammaWallPut          *float64 `json:"gamma_wall_put"`
		GammaWallProximityPct *float64 `json:"gamma_wall_proximity_pct"`
	} `json:"regime"`
	Volatility struct {
		IVEventATM *float64 `json:"iv_event_atm"`
		IVM1ATM    *float64 `json:"iv_m1_atm"`
		IVM2ATM    *float64 `json:"iv_m2_atm"`
		HV10       *float64 `json:"hv10"`
		HV20       *float64 `json:"hv20"`
		HV60       *float64 `json:"hv60"`
	} `json:"volatility"`
	Structure struct {
		TermSlope     *float64 `json:"term_slope"`
		TermCurvature *float64 `json:"term_curvature"`
		SkewAsymmetry *float64 `json:"skew_asymmetry"`
		VexNet5_60    *float64 `json:"vex_net_5_60"`
		VannaATMAbs   *float64 `json:"vanna_atm_abs"`
	} `json:"structure"`
	Liquidity struct {
		SpreadATM       *float64 `json:"spread_atm"`
		IVAskPremiumPct *float64 `json:"iv_ask_premium_pct"`
		LiquidityFlag   *string  `json:"liquidity_flag"`
	} `json:"liquidity"`
}

// Validate performs structural/enum/numeric-bound checks on raw input
// JSON with no silent coercion (spec.md §4.1). On success it returns
// the fully-populated InputSnapshot.
func Validate(raw []byte) (*InputSnapshot, []string) {
	var r rawSnapshot
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, []string{fmt.Sprintf("malformed JSON: %v", err)}
	}

	var errs []string
	req := func(ok bool, field string) {
		if !ok {
			errs = append(errs, field+": required field missing")
		}
	}

	req(r.Meta.Symbol != nil, "meta.symbol")
	req(r.Meta.Datetime != nil, "meta.datetime")
	req(r.Market.Spot != nil, "market.spot")
	req(r.Market.VolTrigger != nil, "market.vol_trigger")
	req(r.Regime.NetGEXSign != nil, "regime.net_gex_sign")
	req(r.Regime.GammaWallProximityPct != nil, "regime.gamma_wall_proximity_pct")
	req(r.Volatility.IVM1ATM != nil, "volatility.iv_m1_atm")
	req(r.Volatility.HV10 != nil, "volatility.hv10")
	req(r.Volatility.HV20 != nil, "volatility.hv20")
	req(r.Volatility.HV60 != nil, "volatility.hv60")
	req(r.Structure.TermSlope != nil, "structure.term_slope")
	req(r.Structure.TermCurvature != nil, "structure.term_curvature")
	req(r.Structure.SkewAsymmetry != nil, "structure.skew_asymmetry")
	req(r.Structure.VexNet5_60 != nil, "structure.vex_net_5_60")
	req(r.Structure.VannaATMAbs != nil, "structure.vanna_atm_abs")
	req(r.Liquidity.SpreadATM != nil, "liquidity.spread_atm")
	req(r.Liquidity.IVAskPremiumPct != nil, "liquidity.iv_ask_premium_pct")
	req(r.Liquidity.LiquidityFlag != nil, "liquidity.liquidity_flag")

	if len(errs) > 0 {
		return nil, errs
	}

	if !symbolPattern.MatchString(*r.Meta.Symbol) {
		errs = append(errs, "meta.symbol: must be short upper-case alpha")
	}
	if _, err := time.Parse(time.RFC3339, normalizeISO(*r.Meta.Datetime)); err != nil {
		errs = append(errs, "meta.datetime: must be ISO8601")
	}
	if *r.Market.Spot <= 0 {
		errs = append(errs, "market.spot: must be positive")
	}
	if *r.Market.VolTrigger <= 0 {
		errs = append(errs, "market.vol_trigger: must be positive")
	}
	if *r.Regime.NetGEXSign < -1 || *r.Regime.NetGEXSign > 1 {
		errs = append(errs, "regime.net_gex_sign: must be -1, 0, or 1")
	}
	if *r.Regime.GammaWallProximityPct < 0 {
		errs = append(errs, "regime.gamma_wall_proximity_pct: must be >= 0")
	}
	for _, f := range []struct {
		name string
		val  *float64
	}{
		{"volatility.iv_m1_atm", r.Volatility.IVM1ATM},
		{"volatility.hv10", r.Volatility.HV10},
		{"volatility.hv20", r.Volatility.HV20},
		{"volatility.hv60", r.Volatility.HV60},
		{"liquidity.spread_atm", r.Liquidity.SpreadATM},
	} {
		if *f.val < 0 {
			errs = append(errs, f.name+": must be >= 0")
		}
	}
	if r.Volatility.IVEventATM != nil && *r.Volatility.IVEventATM < 0 {
		errs = append(errs, "volatility.iv_event_atm: must be >= 0")
	}
	if r.Volatility.IVM2ATM != nil && *r.Volatility.IVM2ATM < 0 {
		errs = append(errs, "volatility.iv_m2_atm: must be >= 0")
	}
	flag := LiquidityFlag(*r.Liquidity.LiquidityFlag)
	if !flag.Valid() {
		errs = append(errs, "liquidity.liquidity_flag: must be good, fair, or poor")
	}

	if len(errs) > 0 {
		return nil, errs
	}

	snap := &InputSnapshot{
		Meta: MetaFields{Symbol: *r.Meta.Symbol, Datetime: *r.Meta.Datetime},
		Market: MarketFields{
			Spot:       *r.Market.Spot,
			VolTrigger: *r.Market.VolTrigger,
		},
		Regime: RegimeFields{
			NetGEXSign:            GEXSign(*r.Regime.NetGEXSign),
			GammaWallCall:         r.Regime.GammaWallCall,
			GammaWallPut:          r.Regime.GammaWallPut,
			GammaWallProximityPct: *r.Regime.GammaWallProximityPct,
		},
		Vol: VolatilityFields{
			IVEventATM: r.Volatility.IVEventATM,
			IVM1ATM:    *r.Volatility.IVM1ATM,
			IVM2ATM:    r.Volatility.IVM2ATM,
			HV10:       *r.Volatility.HV10,
			HV20:       *r.Volatility.HV20,
			HV60:       *r.Volatility.HV60,
		},
		Structure: StructureFields{
			TermSlope:     *r.Structure.TermSlope,
			TermCurvature: *r.Structure.TermCurvature,
			SkewAsymmetry: *r.Structure.SkewAsymmetry,
			VexNet5_60:    *r.Structure.VexNet5_60,
			VannaATMAbs:   *r.Structure.VannaATMAbs,
		},
		Liquidity: LiquidityFields{
			SpreadATM:       *r.Liquidity.SpreadATM,
			IVAskPremiumPct: *r.Liquidity.IVAskPremiumPct,
			Flag:            flag,
		},
	}
	return snap, nil
}

// normalizeISO tolerates a bare "YYYY-MM-DDTHH:MM:SS" without a zone by
// treating it as UTC, matching the scenarios in spec.md §8.4.
func normalizeISO(s string) string {
	if len(s) == 19 {
		return s + "Z"
	}
	return s
}

// EmptyTemplate produces the template JSON with null value holders,
// for the `cmd` subcommand to write when no input file exists yet
// (spec.md §4.1, §8.2).
func EmptyTemplate(symbol, isoDatetime string) []byte {
	tmpl := map[string]any{
		"meta": map[string]any{
			"symbol":   symbol,
			"datetime": isoDatetime,
		},
		"market": map[string]any{
			"spot":        nil,
			"vol_trigger": nil,
		},
		"regime": map[string]any{
			"net_gex_sign":             nil,
			"gamma_wall_call":          nil,
			"gamma_wall_put":           nil,
			"gamma_wall_proximity_pct": nil,
		},
		"volatility": map[string]any{
			"iv_event_atm": nil,
			"iv_m1_atm":    nil,
			"iv_m2_atm":    nil,
			"hv10":         nil,
			"hv20":         nil,
			"hv60":         nil,
		},
		"structure": map[string]any{
			"term_slope":     nil,
			"term_curvature": nil,
			"skew_asymmetry": nil,
			"vex_net_5_60":   nil,
			"vanna_atm_abs":  nil,
		},
		"liquidity": map[string]any{
			"spread_atm":         nil,
			"iv_ask_premium_pct": nil,
			"liquidity_flag":     nil,
		},
	}
	out, _ := json.MarshalIndent(tmpl, "", "  ")
	return out
}
