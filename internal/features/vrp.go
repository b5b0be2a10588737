// Package features turns a validated schema.InputSnapshot into the
// derived Features value (spec.md §4.2). Every function here is a pure
// function of the snapshot alone, grounded on the selection rules and
// thresholds of original_source/features/vrp.py, term_structure.py,
// skew.py, and regime.py, and on analysis/features/*.py's structuring.
package features

import "github.com/foreverwb/volquant/internal/schema"

// VRP is the variance-risk-premium feature bundle (spec.md §4.2).
type VRP struct {
	EventWeek      *float64
	D30            float64
	D60            *float64
	Selected       float64
	Normalized     float64
	Regime         string // high_premium | discount | fair
}

const (
	VRPHighPremium = "high_premium"
	VRPDiscount    = "discount"
	VRPFair        = "fair"
)

// ComputeVRP implements spec.md §4.2's VRP rules exactly:
// vrp_30d = iv_m1_atm - hv20; vrp_60d (if iv_m2_atm present) = iv_m2_atm - hv60;
// vrp_event (if iv_event_atm present) = iv_event_atm - hv10; selected is
// vrp_event under event context (iv_event_atm non-null), else vrp_30d.
func ComputeVRP(s *schema.InputSnapshot) VRP {
	d30 := s.Vol.IVM1ATM - s.Vol.HV20

	var d60 *float64
	if s.Vol.IVM2ATM != nil {
		v := *s.Vol.IVM2ATM - s.Vol.HV60
		d60 = &v
	}

	var eventVal *float64
	isEventContext := s.Vol.IVEventATM != nil
	if isEventContext {
		v := *s.Vol.IVEventATM - s.Vol.HV10
		eventVal = &v
	}

	selected := d30
	if isEventContext {
		selected = *eventVal
	}

	normalized := 0.0
	if s.Vol.HV20 > 0 {
		normalized = d30 / s.Vol.HV20
	}

	regime := VRPFair
	switch {
	case selected > 0.05:
		regime = VRPHighPremium
	case selected < -0.05:
		regime = VRPDiscount
	}

	return VRP{
		EventWeek:  eventVal,
		D30:        d30,
		D60:        d60,
		Selected:   selected,
		Normalized: normalized,
		Regime:     regime,
	}
}
