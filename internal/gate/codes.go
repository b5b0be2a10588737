// Package gate is the Execution Gate (spec.md §4.6.5): six hard gates a
// candidate trade must clear, each carrying a machine-readable failure
// code plus a human description, with suggest_adjustments mapping codes
// to parameter hints without mutating the trade. Grounded on spec.md
// §4.6.5 directly and structured after
// sawpanic-cryptorun/internal/gates' multi-rule-with-codes shape.
package gate

// Code is a machine-readable gate-failure identifier (spec.md §4.6.5).
type Code string

const (
	CodeEVNegative         Code = "EV_NEGATIVE"
	CodeRRInsufficient     Code = "RR_INSUFFICIENT"
	CodeSpreadHigh         Code = "SPREAD_HIGH"
	CodeIVAskHigh          Code = "IVASK_HIGH"
	CodePoorLiquidity      Code = "POOR_LIQUIDITY"
	CodeConservativeProbLow Code = "CONSERVATIVE_PROB_LOW"
	CodeTierRRMismatch     Code = "TIER_RR_MISMATCH"
	CodeZeroDTE            Code = "0DTE_EXCLUDED"
	CodeNegativeGammaShort Code = "NEGATIVE_GAMMA_SHORT_VOL"
	CodeEventWeekConservativeShort Code = "EVENT_WEEK_CONSERVATIVE_SHORT"
)

var descriptions = map[Code]string{
	CodeEVNegative:                 "net expected value is not positive",
	CodeRRInsufficient:             "reward/risk ratio is below the configured minimum",
	CodeSpreadHigh:                 "at-the-money spread sits above the 80th liquidity percentile",
	CodeIVAskHigh:                  "IV ask premium sits above the 80th liquidity percentile",
	CodePoorLiquidity:              "poor liquidity flag blocks an aggressive-tier candidate",
	CodeConservativeProbLow:        "conservative tier requires calibrated probability >= 0.70",
	CodeTierRRMismatch:             "reward/risk ratio is inconsistent with the candidate's tier",
	CodeZeroDTE:                    "zero days to expiration is blocked",
	CodeNegativeGammaShort:         "negative gamma regime blocks a short-vol candidate",
	CodeEventWeekConservativeShort: "event week blocks a conservative short-vol candidate",
}

// Warning is a non-blocking advisory attached to a passing gate run.
type Warning struct {
	Code    Code
	Message string
}

// Failure is one failed hard gate.
type Failure struct {
	Code    Code
	Message string
}

func fail(code Code) Failure {
	return Failure{Code: code, Message: descriptions[code]}
}

func warn(code Code) Warning {
	return Warning{Code: code, Message: descriptions[code]}
}
