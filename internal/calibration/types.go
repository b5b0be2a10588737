// Package calibration implements the Probability Calibrator (spec.md
// §4.4): it turns a long/short composite score pair into two
// ProbabilityEstimate values, via cold-start priors, optional Platt or
// isotonic fits, or an LLM oracle hook, each followed by the same
// context-adjustment table. Grounded on
// sawpanic-cryptorun/internal/score/calibration/isotonic.go for the
// isotonic fit/predict shape and original_source/calibration/*.py for
// the cold-start and Platt formulas the teacher doesn't otherwise cover.
package calibration

import "context"

// Method tags which estimator produced a ProbabilityEstimate.
type Method string

const (
	MethodColdStart Method = "cold_start"
	MethodPlatt     Method = "platt"
	MethodIsotonic  Method = "isotonic"
	MethodLLM       Method = "llm"
)

// Estimate is spec.md §3's ProbabilityEstimate: point/lower/upper are
// always within [0.01, 0.99] with lower<=point<=upper, confidence in
// [0,1].
type Estimate struct {
	Point      float64
	Lower      float64
	Upper      float64
	Method     Method
	Confidence float64
}

// Sample is one historical (score, realized-outcome) pair used to fit
// Platt or isotonic curves, grounded on the teacher's CalibrationSample
// shape but trimmed to the fields this engine actually persists (see
// internal/calibstore).
type Sample struct {
	Score   float64
	Outcome bool
}

// Oracle is the narrow interface the calibrator needs from the LLM
// side-oracle (spec.md §6.4); the concrete resilient client lives in
// internal/oracle and is injected here to avoid a cyclic import.
type Oracle interface {
	Chat(ctx context.Context, prompt, system string) (string, error)
}
