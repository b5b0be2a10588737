package features

import "github.com/foreverwb/volquant/internal/schema"

// Liquidity is the liquidity-penalty feature bundle (spec.md §4.2).
type Liquidity struct {
	SpreadZ         float64
	IVAskPremiumZ   float64
	Penalty         float64
	Flag            schema.LiquidityFlag
}

// ComputeLiquidity implements spec.md §4.2's placeholder normalization:
// spread_z = spread_atm/0.05, ivask_premium_z = iv_ask_premium_pct/2.0;
// penalty = max(0,spread_z) + 0.5*max(0,ivask_premium_z), scaled 1.5x
// under poor and 1.2x under fair liquidity flags.
func ComputeLiquidity(s *schema.InputSnapshot) Liquidity {
	spreadZ := s.Liquidity.SpreadATM / 0.05
	ivAskZ := s.Liquidity.IVAskPremiumPct / 2.0

	penalty := maxFloat(0, spreadZ) + 0.5*maxFloat(0, ivAskZ)
	switch s.Liquidity.Flag {
	case schema.LiquidityPoor:
		penalty *= 1.5
	case schema.LiquidityFair:
		penalty *= 1.2
	}

	return Liquidity{
		SpreadZ:       spreadZ,
		IVAskPremiumZ: ivAskZ,
		Penalty:       penalty,
		Flag:          s.Liquidity.Flag,
	}
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// ComputeRVMomentum implements spec.md §4.2: (hv10/hv60)-1 when hv60>0,
// else 0 (spec.md §8.3 boundary: never infinity or NaN).
func ComputeRVMomentum(s *schema.InputSnapshot) float64 {
	if s.Vol.HV60 <= 0 {
		return 0
	}
	return s.Vol.HV10/s.Vol.HV60 - 1
}
