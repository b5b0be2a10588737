package features

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foreverwb/volquant/internal/config"
	"github.com/foreverwb/volquant/internal/schema"
)

func fptr(f float64) *float64 { return &f }

func scenario1() *schema.InputSnapshot {
	return &schema.InputSnapshot{
		Meta:   schema.MetaFields{Symbol: "AAPL", Datetime: "2025-01-15T14:00:00Z"},
		Market: schema.MarketFields{Spot: 100, VolTrigger: 102},
		Regime: schema.RegimeFields{
			NetGEXSign: schema.GEXNegative, GammaWallCall: fptr(105), GammaWallPut: fptr(95),
			GammaWallProximityPct: 0.05,
		},
		Vol: schema.VolatilityFields{
			IVEventATM: fptr(0.40), IVM1ATM: 0.30, IVM2ATM: fptr(0.28),
			HV10: 0.18, HV20: 0.20, HV60: 0.22,
		},
		Structure: schema.StructureFields{
			TermSlope: -0.06, TermCurvature: 0.002, SkewAsymmetry: 0.04,
			VexNet5_60: -0.8, VannaATMAbs: 0.1,
		},
		Liquidity: schema.LiquidityFields{SpreadATM: 0.02, IVAskPremiumPct: 0.5, Flag: schema.LiquidityGood},
	}
}

func TestComputeRegime_NegativeGamma(t *testing.T) {
	s := scenario1()
	r := ComputeRegime(s, 0.002, 0.005)
	assert.Equal(t, RegimeNegativeGamma, r.State)
}

func TestComputeRegime_NeutralAtExactTrigger(t *testing.T) {
	s := scenario1()
	s.Market.Spot = 102
	s.Market.VolTrigger = 102
	s.Regime.NetGEXSign = schema.GEXFlat
	r := ComputeRegime(s, 0.002, 0.005)
	assert.Equal(t, RegimeNeutral, r.State)
}

func TestComputeRegime_InvariantNeutralBand(t *testing.T) {
	// spec.md §8.1 invariant 1: |spot-vol_trigger|/vol_trigger <= 0.002 iff neutral.
	cases := []struct {
		spot, trigger float64
		wantNeutral   bool
	}{
		{100, 100, true},
		{100, 100.19, true},
		{100, 100.21, false},
		{100.21, 100, false},
	}
	for _, c := range cases {
		s := scenario1()
		s.Market.Spot, s.Market.VolTrigger = c.spot, c.trigger
		r := ComputeRegime(s, 0.002, 0.005)
		assert.Equal(t, c.wantNeutral, r.State == RegimeNeutral, "spot=%v trigger=%v", c.spot, c.trigger)
	}
}

func TestComputeTerm_EventSpike(t *testing.T) {
	term := ComputeTerm(scenario1())
	assert.True(t, term.EventSpike)
	assert.Equal(t, TermBackwardation, term.Regime)
}

func TestComputeVRP_EventContextSelectsEventValue(t *testing.T) {
	vrp := ComputeVRP(scenario1())
	assert.InDelta(t, 0.40-0.18, vrp.Selected, 1e-9)
}

func TestComputeVRP_NoM2AbsentIsNil(t *testing.T) {
	s := scenario1()
	s.Vol.IVM2ATM = nil
	vrp := ComputeVRP(s)
	assert.Nil(t, vrp.D60)
}

func TestComputeRVMomentum_ZeroHV60(t *testing.T) {
	s := scenario1()
	s.Vol.HV60 = 0
	assert.Zero(t, ComputeRVMomentum(s))
}

func TestComputeLiquidity_ZeroSpreadNoReward(t *testing.T) {
	s := scenario1()
	s.Liquidity.SpreadATM = 0
	s.Liquidity.IVAskPremiumPct = 0
	liq := ComputeLiquidity(s)
	assert.Zero(t, liq.Penalty)
}

func TestCalculator_Compute(t *testing.T) {
	calc := NewCalculator(config.Default())
	f := calc.Compute(scenario1())
	require.Equal(t, RegimeNegativeGamma, f.Regime.State)
	assert.True(t, f.Term.EventSpike)
}

func TestDetectRegimeChange_MajorFlip(t *testing.T) {
	changed, sig := DetectRegimeChange(RegimeNegativeGamma, RegimePositiveGamma)
	assert.True(t, changed)
	assert.Equal(t, SignificanceMajor, sig)
}

func TestDetectRegimeChange_NoChange(t *testing.T) {
	changed, _ := DetectRegimeChange(RegimeNeutral, RegimeNeutral)
	assert.False(t, changed)
}
