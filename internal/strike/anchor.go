// Package strike is the Strike Calculator (spec.md §4.6.3): per-leg
// anchor parsing plus ATM/delta-inversion/wall/ATR-implied-move strike
// resolution and price-level rounding. Grounded on
// original_source/core/strike_calculator.py's calculate_strike method
// (keyword-matched anchor descriptors, percentage-token parsing), with
// the delta method replaced by spec.md §4.6.3's closed-form Abramowitz-
// Stegun inversion in place of the original's brentq root search.
package strike

import (
	"regexp"
	"strconv"
	"strings"
)

// Kind is the anchor family a leg's strike-anchor descriptor resolves
// to (spec.md §4.6.1's "atm" / "{d}d_call/put" / "gamma_wall" /
// "atr_{k}x" / "implied_move_{k}x" descriptor vocabulary).
type Kind int

const (
	KindATM Kind = iota
	KindDelta
	KindWall
	KindATR
	KindImpliedMove
)

// Anchor is a parsed strike-anchor descriptor.
type Anchor struct {
	Kind       Kind
	Delta      float64 // magnitude in (0,1), KindDelta only
	Multiplier float64 // m, KindATR/KindImpliedMove only
	IsCall     bool    // true if the descriptor names a call leg
}

// Unsigned: anchor descriptors use '-' as a range separator ("10-20d_put"),
// not a minus sign, so a signed pattern would misparse ranges.
var numberPattern = regexp.MustCompile(`[0-9]+(?:\.[0-9]+)?`)

func numbers(s string) []float64 {
	matches := numberPattern.FindAllString(s, -1)
	out := make([]float64, 0, len(matches))
	for _, m := range matches {
		if v, err := strconv.ParseFloat(m, 64); err == nil {
			out = append(out, v)
		}
	}
	return out
}

func mean(vs []float64) float64 {
	if len(vs) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range vs {
		sum += v
	}
	return sum / float64(len(vs))
}

// ParseAnchor parses a strike-anchor descriptor string into a
// structured Anchor. Delta descriptors may give a single percentage
// ("30d_call") or a range ("10-20d_put"), in which case the midpoint is
// used. ATR/implied-move descriptors use the first numeric token as the
// multiplier, per spec.md §4.6.3.
func ParseAnchor(desc string) Anchor {
	lower := strings.ToLower(desc)

	switch {
	case strings.Contains(lower, "atr"):
		ns := numbers(lower)
		m := 1.0
		if len(ns) > 0 {
			m = ns[0]
		}
		return Anchor{Kind: KindATR, Multiplier: m, IsCall: !strings.Contains(lower, "put")}

	case strings.Contains(lower, "implied_move") || strings.Contains(lower, "implied move"):
		ns := numbers(lower)
		m := 1.0
		if len(ns) > 0 {
			m = ns[0]
		}
		return Anchor{Kind: KindImpliedMove, Multiplier: m, IsCall: !strings.Contains(lower, "put")}

	case strings.Contains(lower, "gamma") || strings.Contains(lower, "wall"):
		return Anchor{Kind: KindWall, IsCall: strings.Contains(lower, "call") && !strings.Contains(lower, "put")}

	case strings.Contains(lower, "d_call") || strings.Contains(lower, "d_put"),
		strings.Contains(lower, "delta"):
		ns := numbers(lower)
		delta := mean(ns) / 100.0
		if delta <= 0 {
			delta = 0.5
		}
		if delta > 1 {
			delta = 1
		}
		return Anchor{Kind: KindDelta, Delta: delta, IsCall: strings.Contains(lower, "call")}

	default:
		return Anchor{Kind: KindATM}
	}
}
