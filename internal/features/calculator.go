package features

import (
	"github.com/foreverwb/volquant/internal/config"
	"github.com/foreverwb/volquant/internal/schema"
)

// Features is the full derived feature set (spec.md §3.2), computed
// deterministically from an InputSnapshot alone.
type Features struct {
	VRP        VRP
	Term       Term
	Skew       Skew
	Regime     Regime
	RVMomentum float64
	Liquidity  Liquidity
	VexNet5_60 float64
	VannaATMAbs float64
}

// Calculator is the component boundary named in spec.md §4.2; it holds
// no state beyond the config thresholds it was constructed with.
type Calculator struct {
	cfg *config.Config
}

func NewCalculator(cfg *config.Config) *Calculator {
	return &Calculator{cfg: cfg}
}

// Compute runs the full feature set (task path). Light runs only the
// subset needed by the update path's regime-change detector.
func (c *Calculator) Compute(s *schema.InputSnapshot) Features {
	return Features{
		VRP:         ComputeVRP(s),
		Term:        ComputeTerm(s),
		Skew:        ComputeSkew(s),
		Regime:      ComputeRegime(s, c.cfg.Regime.VolTriggerNeutralPct, c.cfg.Regime.GammaWallPinPct),
		RVMomentum:  ComputeRVMomentum(s),
		Liquidity:   ComputeLiquidity(s),
		VexNet5_60:  s.Structure.VexNet5_60,
		VannaATMAbs: s.Structure.VannaATMAbs,
	}
}

// ComputeLight runs only the regime calculation, used by the `updated`
// CLI subcommand which must not run the full graph (spec.md §6.1).
func (c *Calculator) ComputeLight(s *schema.InputSnapshot) Regime {
	return ComputeRegime(s, c.cfg.Regime.VolTriggerNeutralPct, c.cfg.Regime.GammaWallPinPct)
}
