package pipeline

// FullAnalysis is the task path's full_analysis payload (spec.md §3.2's
// DecisionResult/StrategyCandidate/CalculatedStrikes/EVEstimate/
// GateResult entities, composed into the single object output.go's
// SetFullAnalysis marshals into OutputFile.FullAnalysis).
type FullAnalysis struct {
	Decision      DecisionSummary `json:"decision"`
	Strategy      *StrategyDetail `json:"strategy,omitempty"`
	NoTradeReason *string         `json:"no_trade_reason,omitempty"`
}

// DecisionSummary mirrors spec.md §3.2's DecisionResult.
type DecisionSummary struct {
	Decision    string   `json:"decision"`
	Confidence  float64  `json:"confidence"`
	IsPreferred bool     `json:"is_preferred"`
	Reasons     []string `json:"reasons"`
}

// StrategyCandidateSummary mirrors spec.md §3.2's StrategyCandidate.
type StrategyCandidateSummary struct {
	Name                 string            `json:"name"`
	Tier                 string            `json:"tier"`
	Direction            string            `json:"direction"`
	DTERangeMin          int               `json:"dte_range_min"`
	DTERangeMax          int               `json:"dte_range_max"`
	DeltaTargets         map[string]string `json:"delta_targets"`
	StrikeAnchors        map[string]string `json:"strike_anchors"`
	TargetRRMin          float64           `json:"target_rr_min"`
	TargetRRMax          float64           `json:"target_rr_max"`
	EntryTriggers        []string          `json:"entry_triggers"`
	ExitTriggers         []string          `json:"exit_triggers"`
	ApplicableConditions []string          `json:"applicable_conditions"`
	Contraindications    []string          `json:"contraindications"`
}

// CalculatedStrikesSummary mirrors spec.md §3.2's CalculatedStrikes.
type CalculatedStrikesSummary struct {
	Strikes   map[string]float64 `json:"strikes"`
	Rationale map[string]string  `json:"rationale"`
	Spot      float64            `json:"spot"`
}

// EVSummary mirrors spec.md §3.2's EVEstimate.
type EVSummary struct {
	PremiumOrCredit  *float64 `json:"premium_or_credit,omitempty"`
	MaxProfit        *float64 `json:"max_profit,omitempty"`
	MaxLoss          *float64 `json:"max_loss,omitempty"`
	Debit            *float64 `json:"debit,omitempty"`
	BreakevenMovePct *float64 `json:"breakeven_move_pct,omitempty"`
	TermSlope        *float64 `json:"term_slope,omitempty"`
	WinRate          float64  `json:"win_rate"`
	ExpectedProfit   float64  `json:"expected_profit"`
	ExpectedLoss     float64  `json:"expected_loss"`
	TotalCosts       float64  `json:"total_costs"`
	GrossEV          float64  `json:"gross_ev"`
	NetEV            float64  `json:"net_ev"`
	RRRatio          float64  `json:"rr_ratio"`
	EVPositive       bool     `json:"ev_positive"`
	TargetRRMet      bool     `json:"target_rr_met"`
}

// GateSummary mirrors spec.md §3.2's GateResult.
type GateSummary struct {
	Passes      bool     `json:"passes"`
	FailedGates []string `json:"failed_gates"`
	Warnings    []string `json:"warnings"`
}

// StrategyDetail bundles the chosen candidate with its resolved
// strikes, EV estimate, and gate outcome.
type StrategyDetail struct {
	Candidate StrategyCandidateSummary  `json:"candidate"`
	Strikes   CalculatedStrikesSummary  `json:"strikes"`
	EV        EVSummary                 `json:"ev"`
	Gate      GateSummary               `json:"gate"`
}
