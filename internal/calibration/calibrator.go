package calibration

import (
	"context"

	"github.com/foreverwb/volquant/internal/config"
)

// Calibrator is the component boundary named in spec.md §4.4. Estimate
// picks among the LLM, isotonic and cold-start methods per call (Platt
// is reachable only through EstimatePlatt) and always finishes with the
// same context-adjustment pass.
type Calibrator struct {
	cfg    *config.Config
	oracle Oracle
}

func NewCalibrator(cfg *config.Config, oracle Oracle) *Calibrator {
	return &Calibrator{cfg: cfg, oracle: oracle}
}

// Result pairs the long and short ProbabilityEstimates spec.md §4.4
// requires per call.
type Result struct {
	Long  Estimate
	Short Estimate
}

// Estimate runs the Probability Calibrator for one symbol/date: LLM
// first when an oracle is configured and responds well-formed JSON
// (spec.md §4.4), else a historical fit once enough samples exist
// (isotonic, since it makes no parametric assumption; Platt is not
// tried here — see DESIGN.md Open Question decisions), else
// cold-start. Every path ends with the same ApplyContext pass.
func (c *Calibrator) Estimate(ctx context.Context, longScore, shortScore float64, longSamples, shortSamples []Sample, adjustment AdjustmentInput, contextSummary, signalBreakdown string) Result {
	var longEst, shortEst Estimate

	if longE, shortE, ok := LLMEstimate(ctx, c.oracle, longScore, shortScore, contextSummary, signalBreakdown); ok {
		longEst, shortEst = longE, shortE
	} else {
		longEst = c.fitOrColdStart(longScore, longSamples)
		shortEst = c.fitOrColdStart(shortScore, shortSamples)
	}

	return Result{
		Long:  ApplyContext(longEst, adjustment, true),
		Short: ApplyContext(shortEst, adjustment, false),
	}
}

func (c *Calibrator) fitOrColdStart(score float64, samples []Sample) Estimate {
	min := c.cfg.CalibrationStore.MinSamplesForFit
	if min <= 0 || len(samples) < min {
		return ColdStart(score)
	}

	isotonic := FitIsotonic(samples)
	return isotonic.IsotonicEstimate(score)
}

// EstimatePlatt is exposed separately (spec.md §4.4 lists Platt as an
// independent method, not merely a fallback from isotonic) for callers
// that explicitly want a parametric fit, e.g. when validating isotonic
// results against it.
func (c *Calibrator) EstimatePlatt(score float64, samples []Sample) Estimate {
	if len(samples) < 2 {
		return ColdStart(score)
	}
	model := FitPlatt(samples)
	return model.Predict(score, samples, c.cfg.CalibrationStore.BootstrapResamples)
}
