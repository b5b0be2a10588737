// Package gexbot generates the data-collection command list that
// spec.md §3.1/§6.2 calls gexbot_commands (SPEC_FULL.md §8's
// supplemented feature). Grounded on
// original_source/cli/gexbot.py's GexbotCommandGenerator and the
// "schema_core" entry of its DEFAULT_TEMPLATES table, which is the
// template set that specifically refreshes this engine's 22 required
// input fields (5/60-day VEX and vanna, ATM/NTM skew, NTM
// spread/IV-mid/IV-ask liquidity surfaces) rather than the broader
// operator dashboards the other contexts (event, intraday, diagnostic,
// ...) target.
package gexbot

import "strconv"

// Params mirrors the subset of original_source/core/gexbot_params.py's
// GexbotParams fields the schema_core templates actually render.
type Params struct {
	Strikes            int
	DTEVex560          int
	DTEVannaATM560     int
	DTESkew            int
	DTELiquidity       int
}

// DefaultParams returns the literal defaults original_source ships for
// its schema_core context.
func DefaultParams() Params {
	return Params{
		Strikes:        10,
		DTEVex560:      5,
		DTEVannaATM560: 5,
		DTESkew:        30,
		DTELiquidity:   30,
	}
}

// Commands renders the schema_core template list for symbol, in the
// fixed order original_source's DEFAULT_TEMPLATES["schema_core"] lists
// them.
func Commands(symbol string, p Params) []string {
	strikes := strconv.Itoa(p.Strikes)
	vex := strconv.Itoa(p.DTEVex560)
	vanna := strconv.Itoa(p.DTEVannaATM560)
	skew := strconv.Itoa(p.DTESkew)
	liq := strconv.Itoa(p.DTELiquidity)

	return []string{
		"!vexn " + symbol + " " + strikes + " " + vex + " all",
		"!vanna " + symbol + " atm " + vanna + " all",
		"!skew " + symbol + " ivmid atm " + skew,
		"!skew " + symbol + " ivmid ntm " + skew,
		"!surface " + symbol + " spread ntm " + liq,
		"!surface " + symbol + " ivmid ntm " + liq,
		"!surface " + symbol + " ivask ntm " + liq,
	}
}
