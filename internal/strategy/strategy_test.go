package strategy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCandidates_LongVolOrderedAggressiveFirst(t *testing.T) {
	cands := Candidates(DirectionLongVol, Context{RegimeState: "negative_gamma"})
	require.NotEmpty(t, cands)
	assert.Equal(t, TierAggressive, cands[0].Tier)
}

func TestCandidates_ShortVolOrderedConservativeFirst(t *testing.T) {
	cands := Candidates(DirectionShortVol, Context{RegimeState: "positive_gamma"})
	require.NotEmpty(t, cands)
	assert.Equal(t, TierConservative, cands[0].Tier)
}

func TestCheckApplicability_PositiveGammaRejectsAggressiveLongVol(t *testing.T) {
	ok, reasons := CheckApplicability(Templates["long_straddle"], Context{RegimeState: "positive_gamma"})
	assert.False(t, ok)
	assert.NotEmpty(t, reasons)
}

func TestCheckApplicability_NegativeGammaRejectsShortVol(t *testing.T) {
	ok, _ := CheckApplicability(Templates["iron_condor"], Context{RegimeState: "negative_gamma"})
	assert.False(t, ok)
}

func TestCheckApplicability_EventWeekRejectsIronCondorAndShortStrangle(t *testing.T) {
	ok1, _ := CheckApplicability(Templates["iron_condor"], Context{IsEventWeek: true, RegimeState: "positive_gamma"})
	ok2, _ := CheckApplicability(Templates["short_strangle"], Context{IsEventWeek: true, RegimeState: "positive_gamma"})
	assert.False(t, ok1)
	assert.False(t, ok2)
}

func TestCheckApplicability_RIMThresholds(t *testing.T) {
	low := 0.3
	ok, _ := CheckApplicability(Templates["long_straddle"], Context{RegimeState: "negative_gamma", RIM: &low})
	assert.False(t, ok)

	high := 0.7
	ok2, _ := CheckApplicability(Templates["iron_condor"], Context{RegimeState: "positive_gamma", RIM: &high})
	assert.False(t, ok2)
}

func TestSelectBest_PrefersConservativeAtHighProbability(t *testing.T) {
	cands := Candidates(DirectionShortVol, Context{RegimeState: "positive_gamma", Probability: 0.75})
	best, ok := SelectBest(cands, Context{RegimeState: "positive_gamma", Probability: 0.75}, nil)
	require.True(t, ok)
	assert.Equal(t, TierConservative, best.Tier)
}

func TestSelectBest_CalendarBonusUnderBackwardation(t *testing.T) {
	ctx := Context{RegimeState: "negative_gamma", Probability: 0.65, TermRegime: "backwardation"}
	cands := Candidates(DirectionLongVol, ctx)
	calendarScore := ScoreCandidate(Templates["calendar_spread"], ctx)
	debitScore := ScoreCandidate(Templates["debit_vertical_call"], ctx)
	assert.Greater(t, calendarScore, debitScore)
	_ = cands
}

func TestCustomizeParameters_EventWeekTightensDTE(t *testing.T) {
	c := CustomizeParameters(Templates["credit_spread"], Context{IsEventWeek: true})
	assert.LessOrEqual(t, c.DTERange.Max, 20)
	assert.GreaterOrEqual(t, c.DTERange.Min, 5)
}

func TestCustomizeParameters_EventWeekFloorGuardWhenMinAboveTwenty(t *testing.T) {
	c := CustomizeParameters(Templates["long_strangle"], Context{IsEventWeek: true})
	assert.Equal(t, c.DTERange.Min, c.DTERange.Max)
	assert.GreaterOrEqual(t, c.DTERange.Min, 5)
}

func TestCustomizeParameters_AttachesReferenceLevels(t *testing.T) {
	wall := 105.0
	c := CustomizeParameters(Templates["iron_condor"], Context{GammaWallCall: &wall, Spot: 100, VolTrigger: 102})
	require.NotNil(t, c.ReferenceLevels.GammaWallCall)
	assert.Equal(t, 105.0, *c.ReferenceLevels.GammaWallCall)
	assert.Equal(t, 100.0, c.ReferenceLevels.Spot)
}

func TestSelectBest_EmptyCandidatesReturnsFalse(t *testing.T) {
	_, ok := SelectBest(nil, Context{}, nil)
	assert.False(t, ok)
}
