package features

import "github.com/foreverwb/volquant/internal/schema"

const (
	TermContango      = "contango"
	TermBackwardation = "backwardation"
	TermFlat          = "flat"

	CurvatureConvex  = "convex"
	CurvatureConcave = "concave"
	CurvatureLinear  = "linear"
)

// Term is the term-structure feature bundle (spec.md §4.2).
type Term struct {
	Slope              float64
	Curvature          float64
	Regime             string
	CurvatureRegime    string
	CalendarOpportunity bool
	EventSpike         bool
}

// ComputeTerm implements spec.md §4.2's term-structure thresholds:
// contango above 0.02, backwardation below -0.02, else flat; convex
// above 0.01, concave below -0.01, else linear; calendar_opportunity
// requires slope > 0.03 and curvature > 0.005; event_spike is
// slope < -0.05.
func ComputeTerm(s *schema.InputSnapshot) Term {
	slope := s.Structure.TermSlope
	curvature := s.Structure.TermCurvature

	regime := TermFlat
	switch {
	case slope > 0.02:
		regime = TermContango
	case slope < -0.02:
		regime = TermBackwardation
	}

	curvatureRegime := CurvatureLinear
	switch {
	case curvature > 0.01:
		curvatureRegime = CurvatureConvex
	case curvature < -0.01:
		curvatureRegime = CurvatureConcave
	}

	return Term{
		Slope:               slope,
		Curvature:           curvature,
		Regime:              regime,
		CurvatureRegime:     curvatureRegime,
		CalendarOpportunity: slope > 0.03 && curvature > 0.005,
		EventSpike:          slope < -0.05,
	}
}
