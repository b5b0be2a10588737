package signals

import (
	"github.com/foreverwb/volquant/internal/config"
	"github.com/foreverwb/volquant/internal/features"
)

// priors are the cold-start historical mean/std pairs for z-score
// normalization (spec.md §4.3, §9 Design Notes: "a real deployment must
// supply them"). Grounded on original_source/signals/scorer.py's
// self._stats literal table.
type priors struct {
	mean, std float64
}

var (
	priorVRP         = priors{mean: 0.02, std: 0.05}
	priorTermSlope   = priors{mean: 0.01, std: 0.02}
	priorTermCurv    = priors{mean: 0.0, std: 0.01}
	priorSkew        = priors{mean: 0.02, std: 0.03}
	priorVex         = priors{mean: 0.0, std: 1.0}
	priorVanna       = priors{mean: 0.0, std: 1.0}
	priorRVMomentum  = priors{mean: 0.0, std: 0.3}
)

const clipZ = 3.0

// Scores holds every individual signal named in spec.md §4.3, all in
// the "positive favors long-vol" convention.
type Scores struct {
	SVRP   float64
	SCarry float64
	SSkew  float64
	SGEX   float64
	SVex   float64
	SVanna float64
	SRV    float64
	SLiq   float64
}

// Composite holds the aggregated long/short vol scores (spec.md §4.3).
type Composite struct {
	Long  float64
	Short float64
}

// Compute implements spec.md §4.3's eight signal formulas exactly.
func Compute(f features.Features) Scores {
	sVRP := -zscore(f.VRP.Selected, priorVRP.mean, priorVRP.std, clipZ)

	zSlope := zscore(f.Term.Slope, priorTermSlope.mean, priorTermSlope.std, clipZ)
	zCurv := zscore(f.Term.Curvature, priorTermCurv.mean, priorTermCurv.std, clipZ)
	sCarry := -zSlope - 0.5*zCurv

	sSkew := zscore(f.Skew.Asymmetry, priorSkew.mean, priorSkew.std, clipZ)

	sGEX := gexSignal(f.Regime)

	sVex := zscore(-f.VexNet5_60, priorVex.mean, priorVex.std, clipZ)

	sVanna := -zscore(f.VannaATMAbs, priorVanna.mean, priorVanna.std, clipZ)

	sRV := zscore(f.RVMomentum, priorRVMomentum.mean, priorRVMomentum.std, clipZ)

	sLiq := -(maxZero(f.Liquidity.SpreadZ) + 0.5*maxZero(f.Liquidity.IVAskPremiumZ))

	return Scores{
		SVRP:   sVRP,
		SCarry: sCarry,
		SSkew:  sSkew,
		SGEX:   sGEX,
		SVex:   sVex,
		SVanna: sVanna,
		SRV:    sRV,
		SLiq:   sLiq,
	}
}

// gexSignal implements spec.md §4.3's s_gex = gex_level + pin_penalty:
// gex_level is +1 under negative_gamma, -1 under positive_gamma, 0
// neutral, scaled by trigger-distance intensity (capped at 1.0, full
// intensity at 2% distance); pin_penalty subtracts 1 when is_pin_risk
// holds under positive_gamma. Grounded on
// original_source/signals/scorer.py's _compute_gex_signal.
func gexSignal(r features.Regime) float64 {
	level := 0.0
	switch r.State {
	case features.RegimeNegativeGamma:
		level = 1.0
	case features.RegimePositiveGamma:
		level = -1.0
	}

	intensity := r.TriggerDistancePct / 0.02
	if intensity > 1.0 {
		intensity = 1.0
	}
	level *= intensity

	pinPenalty := 0.0
	if r.IsPinRisk && r.State == features.RegimePositiveGamma {
		pinPenalty = -1.0
	}

	return level + pinPenalty
}

// ComputeComposite implements spec.md §4.3's weighted aggregation: L
// applies w_long plus single_stock_boost on s_gex/s_vex/s_skew (spec.md
// §9 Design Notes: the boost applies to exactly these three); S negates
// every signal except s_liq, which keeps its sign, and adds the
// index-only s_corr_idx/flow_putcrowd terms when isIndex holds.
func ComputeComposite(s Scores, w config.WeightsLong, ws config.WeightsShort, isSingleStock, isIndex bool, corrIdx, flowPutCrowd *float64) Composite {
	boost := 0.0
	if isSingleStock {
		boost = w.SingleStockBoost
	}

	long := w.VRP*s.SVRP +
		(w.GEX+boost)*s.SGEX +
		(w.VEX+boost)*s.SVex +
		w.Carry*s.SCarry +
		(w.Skew+boost)*s.SSkew +
		w.Vanna*s.SVanna +
		w.RV*s.SRV +
		w.Liq*s.SLiq

	short := ws.VRP*(-s.SVRP) +
		ws.GEX*(-s.SGEX) +
		ws.VEX*(-s.SVex) +
		ws.Carry*(-s.SCarry) +
		ws.Skew*(-s.SSkew) +
		ws.RV*(-s.SRV) +
		ws.Liq*s.SLiq

	if isIndex && corrIdx != nil {
		short += ws.CorrIdx * (*corrIdx)
	}
	if isIndex && flowPutCrowd != nil {
		short += ws.FlowPutCrowd * (*flowPutCrowd)
	}

	return Composite{Long: long, Short: short}
}
