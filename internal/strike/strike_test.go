package strike

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInvNormCDF_MedianIsZero(t *testing.T) {
	assert.InDelta(t, 0.0, invNormCDF(0.5), 1e-3)
}

func TestInvNormCDF_KnownQuantiles(t *testing.T) {
	assert.InDelta(t, -1.0, invNormCDF(0.1587), 5e-3)
	assert.InDelta(t, 1.0, invNormCDF(0.8413), 5e-3)
}

func TestClampDelta_BoundsToFour(t *testing.T) {
	assert.Equal(t, 4.0, clampDelta(10))
	assert.Equal(t, -4.0, clampDelta(-10))
	assert.Equal(t, 1.5, clampDelta(1.5))
}

func TestTimeToExpiry_FloorsAtPointZeroOne(t *testing.T) {
	assert.Equal(t, 0.01, TimeToExpiry(0))
	assert.InDelta(t, 30.0/365.0, TimeToExpiry(30), 1e-9)
}

func TestFromDelta_FiftyDeltaCallIsApproximatelyATMForward(t *testing.T) {
	k := FromDelta(100, 0.50, 0.30, 30, true)
	// at delta=0.5, Φ⁻¹(0.5)=0, so K = S*exp(0.5*σ²*T), slightly above spot.
	assert.Greater(t, k, 100.0)
	assert.Less(t, k, 102.0)
}

func TestFromDelta_LowerDeltaCallGivesHigherStrike(t *testing.T) {
	atTheMoney := FromDelta(100, 0.50, 0.30, 30, true)
	otm := FromDelta(100, 0.20, 0.30, 30, true)
	assert.Greater(t, otm, atTheMoney)
}

func TestFromDelta_LowerDeltaPutGivesLowerStrike(t *testing.T) {
	atTheMoney := FromDelta(100, 0.50, 0.30, 30, false)
	otm := FromDelta(100, 0.20, 0.30, 30, false)
	assert.Less(t, otm, atTheMoney)
}

func TestIncrement_Tiers(t *testing.T) {
	assert.Equal(t, 0.5, Increment(25))
	assert.Equal(t, 1.0, Increment(100))
	assert.Equal(t, 2.5, Increment(300))
	assert.Equal(t, 5.0, Increment(600))
}

func TestRound_SnapsToIncrement(t *testing.T) {
	assert.Equal(t, 100.0, Round(100.2))
	assert.Equal(t, 302.5, Round(301.3))
}

func TestRound_SnapsLowPriceToHalf(t *testing.T) {
	assert.Equal(t, 25.5, Round(25.3))
}

func TestParseAnchor_ATM(t *testing.T) {
	a := ParseAnchor("atm")
	assert.Equal(t, KindATM, a.Kind)
}

func TestParseAnchor_DeltaSingle(t *testing.T) {
	a := ParseAnchor("30d_call")
	assert.Equal(t, KindDelta, a.Kind)
	assert.InDelta(t, 0.30, a.Delta, 1e-9)
	assert.True(t, a.IsCall)
}

func TestParseAnchor_DeltaRangeUsesMidpoint(t *testing.T) {
	a := ParseAnchor("10-20d_put")
	assert.Equal(t, KindDelta, a.Kind)
	assert.InDelta(t, 0.15, a.Delta, 1e-9)
	assert.False(t, a.IsCall)
}

func TestParseAnchor_Wall(t *testing.T) {
	a := ParseAnchor("gamma_wall")
	assert.Equal(t, KindWall, a.Kind)
}

func TestParseAnchor_ATRMultiplier(t *testing.T) {
	a := ParseAnchor("atr_1.5x")
	assert.Equal(t, KindATR, a.Kind)
	assert.InDelta(t, 1.5, a.Multiplier, 1e-9)
}

func TestParseAnchor_ImpliedMoveMultiplier(t *testing.T) {
	a := ParseAnchor("implied_move_0.8x")
	assert.Equal(t, KindImpliedMove, a.Kind)
	assert.InDelta(t, 0.8, a.Multiplier, 1e-9)
}

func TestResolve_ATM(t *testing.T) {
	k := Resolve("atm", Inputs{Spot: 103})
	assert.Equal(t, Round(103), k)
}

func TestResolve_WallFallsBackToATMWhenMissing(t *testing.T) {
	k := Resolve("gamma_wall_call", Inputs{Spot: 100})
	assert.Equal(t, Round(100), k)
}

func TestResolve_WallUsesGammaWallCall(t *testing.T) {
	wall := 105.3
	k := Resolve("gamma_wall_call", Inputs{Spot: 100, GammaWallCall: &wall})
	assert.Equal(t, Round(105.3), k)
}

func TestResolve_ATRUpsideAddsAboveSpot(t *testing.T) {
	atr := 2.0
	k := Resolve("atr_1x", Inputs{Spot: 100, ATR: &atr, Upside: true})
	assert.Greater(t, k, 100.0)
}

func TestResolve_ATRDownsideSubtractsBelowSpot(t *testing.T) {
	atr := 2.0
	k := Resolve("atr_1x", Inputs{Spot: 100, ATR: &atr, Upside: false})
	assert.Less(t, k, 100.0)
}

func TestResolve_ImpliedMoveFallsBackWithoutInput(t *testing.T) {
	k := Resolve("implied_move_1x", Inputs{Spot: 100, Upside: true})
	assert.Equal(t, Round(100), k)
}

func TestResolve_DeltaAnchor(t *testing.T) {
	k := Resolve("30d_call", Inputs{Spot: 100, IVATM: 0.30, DTE: 30})
	expected := Round(FromDelta(100, 0.30, 0.30, 30, true))
	assert.Equal(t, expected, k)
}

func TestMean_EmptyIsZero(t *testing.T) {
	assert.Equal(t, 0.0, mean(nil))
}
