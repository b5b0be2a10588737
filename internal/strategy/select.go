package strategy

import "strings"

// ScoreCandidate implements spec.md §4.6.2's select_best scoring:
// probability/tier alignment, regime-direction alignment, a
// calendar/backwardation bonus, and a put-wing/steep_put bonus.
func ScoreCandidate(c Candidate, ctx Context) float64 {
	score := 0.0

	switch {
	case ctx.Probability >= 0.70:
		if c.Tier == TierConservative {
			score += 2.0
		} else if c.Tier == TierBalanced {
			score += 1.5
		}
	case ctx.Probability >= 0.60:
		if c.Tier == TierBalanced {
			score += 2.0
		} else {
			score += 1.0
		}
	default:
		if c.Tier == TierAggressive {
			score += 2.0
		}
	}

	if c.Direction == DirectionLongVol && ctx.RegimeState == "negative_gamma" {
		score += 1.0
	} else if c.Direction == DirectionShortVol && ctx.RegimeState == "positive_gamma" {
		score += 1.0
	}

	if c.Name == "calendar_spread" && ctx.TermRegime == "backwardation" {
		score += 1.5
	}

	if strings.Contains(c.Name, "put") && ctx.SkewRegime == "steep_put" {
		score += 0.5
	}

	return score
}

// SelectBest implements spec.md §4.6.2's select_best: optionally
// restricts to a preferred tier (if any candidate matches it), then
// returns the highest-scoring remaining candidate. A stable scan
// (rather than sort.Slice) keeps tie-breaks deterministic on the
// catalogue's name order.
func SelectBest(candidates []Candidate, ctx Context, preference *Tier) (Candidate, bool) {
	if len(candidates) == 0 {
		return Candidate{}, false
	}

	pool := candidates
	if preference != nil {
		var preferred []Candidate
		for _, c := range candidates {
			if c.Tier == *preference {
				preferred = append(preferred, c)
			}
		}
		if len(preferred) > 0 {
			pool = preferred
		}
	}

	best := pool[0]
	bestScore := ScoreCandidate(best, ctx)
	for _, c := range pool[1:] {
		s := ScoreCandidate(c, ctx)
		if s > bestScore {
			best, bestScore = c, s
		}
	}
	return best, true
}
