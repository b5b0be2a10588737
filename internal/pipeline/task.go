package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/foreverwb/volquant/internal/calibration"
	"github.com/foreverwb/volquant/internal/calibstore"
	"github.com/foreverwb/volquant/internal/decision"
	"github.com/foreverwb/volquant/internal/errs"
	"github.com/foreverwb/volquant/internal/ev"
	"github.com/foreverwb/volquant/internal/features"
	"github.com/foreverwb/volquant/internal/gate"
	"github.com/foreverwb/volquant/internal/gexbot"
	"github.com/foreverwb/volquant/internal/obslog"
	"github.com/foreverwb/volquant/internal/schema"
	"github.com/foreverwb/volquant/internal/signals"
	"github.com/foreverwb/volquant/internal/strategy"
	"github.com/foreverwb/volquant/internal/strike"

	"github.com/rs/zerolog"
)

// RunTask implements the `task` CLI subcommand (spec.md §6.1): the full
// dataflow graph from feature calculation through the execution gate,
// persisted as full_analysis. replay is accepted and reserved for
// backtest mode; per spec.md §6.1 it currently changes nothing in the
// core.
func (o *Orchestrator) RunTask(ctx context.Context, inputPath, outputPath string, cctx schema.Context, replay bool) (*schema.OutputFile, error) {
	stop := o.recordStep("task")
	result := "error"
	defer func() { stop(result) }()

	snap, err := readAndValidate(inputPath)
	if err != nil {
		return nil, err
	}

	log := obslog.Stage("task", snap.Meta.Symbol, snap.Meta.Datetime)
	log.Debug().Bool("replay", replay).Msg("task started")

	handle, err := o.locker.Acquire(ctx, outputLockName(outputPath))
	if err != nil {
		return nil, errs.IOError("acquire output lock", err)
	}
	defer handle.Release(ctx)

	obj, err := schema.LoadOrInit(outputPath, snap.Meta.Symbol, dateFromDatetime(snap.Meta.Datetime))
	if err != nil {
		return nil, err
	}

	feats := o.calc.Compute(snap)
	scores := signals.Compute(feats)

	isIndex := o.cfg.IsIndexSymbol(snap.Meta.Symbol)
	composite := signals.ComputeComposite(scores, o.cfg.WeightsLong, o.cfg.WeightsShort, !isIndex, isIndex, nil, nil)

	longSamples, err := o.samplesOrEmpty(ctx, snap.Meta.Symbol, calibstore.DirectionLong)
	if err != nil {
		return nil, err
	}
	shortSamples, err := o.samplesOrEmpty(ctx, snap.Meta.Symbol, calibstore.DirectionShort)
	if err != nil {
		return nil, err
	}

	adjustment := calibration.AdjustmentInput{
		IsEventWeek:        cctx.IsEventWeek,
		RegimeState:        feats.Regime.State,
		TriggerDistancePct: feats.Regime.TriggerDistancePct,
		LiquidityFlag:      snap.Liquidity.Flag,
	}
	contextSummary := fmt.Sprintf("regime=%s event_week=%t liquidity=%s", feats.Regime.State, cctx.IsEventWeek, snap.Liquidity.Flag)
	signalBreakdown := fmt.Sprintf(
		"vrp=%.3f gex=%.3f vex=%.3f carry=%.3f skew=%.3f vanna=%.3f rv=%.3f liq=%.3f",
		scores.SVRP, scores.SGEX, scores.SVex, scores.SCarry, scores.SSkew, scores.SVanna, scores.SRV, scores.SLiq,
	)

	probEst := o.calibrator.Estimate(ctx, composite.Long, composite.Short, longSamples, shortSamples, adjustment, contextSummary, signalBreakdown)

	decResult := decision.Classify(decision.Input{
		LongScore:        composite.Long,
		ShortScore:       composite.Short,
		PLong:            probEst.Long,
		PShort:           probEst.Short,
		LiquidityFlag:    snap.Liquidity.Flag,
		ConservativeMode: cctx.ConservativeMode,
	}, o.cfg.Decision)

	analysis := FullAnalysis{
		Decision: DecisionSummary{
			Decision:    string(decResult.Side),
			Confidence:  decResult.Confidence,
			IsPreferred: decResult.IsPreferred,
			Reasons:     decResult.Reasons,
		},
	}

	if decResult.Side == decision.SideStandAside {
		reason := "no side cleared the hard gates"
		analysis.NoTradeReason = &reason
	} else {
		detail, noTradeReason := o.resolveStrategy(snap, cctx, feats, decResult, probEst)
		if detail != nil {
			analysis.Strategy = detail
		} else {
			analysis.NoTradeReason = &noTradeReason
		}
	}

	if err := schema.SetFullAnalysis(obj, analysis); err != nil {
		return nil, err
	}
	schema.SetGexbotCommands(obj, gexbot.Commands(snap.Meta.Symbol, gexbot.DefaultParams()))

	if err := schema.Persist(outputPath, obj); err != nil {
		return nil, err
	}

	if o.metrics != nil {
		o.metrics.RecordDecision(string(decResult.Side), snap.Meta.Symbol)
	}

	if decResult.Side != decision.SideStandAside {
		o.recordCalibrationSample(ctx, log, snap, decResult, composite)
	}

	log.Debug().Str("decision", string(decResult.Side)).Msg("task finished")
	result = "success"
	return obj, nil
}

// resolveStrategy runs the Strategy Mapper through the Execution Gate
// for the classifier's winning side. A nil detail paired with a
// non-empty reason means no candidate survived selection or none could
// be resolved into a trade, not an error (spec.md §7: "NO TRADE when
// none executable").
func (o *Orchestrator) resolveStrategy(snap *schema.InputSnapshot, cctx schema.Context, feats features.Features, decResult decision.Result, probEst calibration.Result) (*StrategyDetail, string) {
	direction := strategy.DirectionLongVol
	chosenProb := probEst.Long.Point
	if decResult.Side == decision.SideShortVol {
		direction = strategy.DirectionShortVol
		chosenProb = probEst.Short.Point
	}

	stratCtx := strategy.Context{
		RegimeState:   feats.Regime.State,
		RIM:           cctx.RIM,
		LiquidityFlag: string(snap.Liquidity.Flag),
		IsEventWeek:   cctx.IsEventWeek,
		Probability:   chosenProb,
		TermRegime:    feats.Term.Regime,
		SkewRegime:    feats.Skew.Regime,
		GammaWallCall: snap.Regime.GammaWallCall,
		GammaWallPut:  snap.Regime.GammaWallPut,
		VolTrigger:    snap.Market.VolTrigger,
		Spot:          snap.Market.Spot,
	}

	candidates := strategy.Candidates(direction, stratCtx)
	best, ok := strategy.SelectBest(candidates, stratCtx, nil)
	if !ok {
		return nil, "no strategy template is applicable to the current context"
	}

	customized := strategy.CustomizeParameters(best, stratCtx)

	strikes := make(map[string]float64, len(customized.StrikeAnchors))
	rationale := make(map[string]string, len(customized.StrikeAnchors))
	for leg, desc := range customized.StrikeAnchors {
		strikes[leg] = strike.Resolve(desc, strike.Inputs{
			Spot:          snap.Market.Spot,
			IVATM:         snap.Vol.IVM1ATM,
			DTE:           cctx.DTE,
			GammaWallCall: snap.Regime.GammaWallCall,
			GammaWallPut:  snap.Regime.GammaWallPut,
			Upside:        legUpside(leg),
		})
		rationale[leg] = desc
	}

	wingWidth, longStrike, shortStrike := evInputsFor(customized.Name, strikes)

	evResult := ev.Estimate(customized.Name, ev.Inputs{
		Spot:            snap.Market.Spot,
		IVATM:           snap.Vol.IVM1ATM,
		HV20:            snap.Vol.HV20,
		DTE:             cctx.DTE,
		TermSlope:       feats.Term.Slope,
		WingWidth:       wingWidth,
		LongStrike:      longStrike,
		ShortStrike:     shortStrike,
		SpreadATM:       snap.Liquidity.SpreadATM,
		SlippagePct:     o.cfg.Costs.SlippagePct,
		CostPerContract: o.cfg.Costs.CostPerContract,
		PWin:            chosenProb,
		TargetRRMin:     customized.TargetRRMin,
	})

	gateResult := gate.Evaluate(gate.Input{
		NetEV:               evResult.NetEV,
		RRRatio:             evResult.RRRatio,
		Tier:                string(customized.Tier),
		Direction:           direction,
		Probability:         chosenProb,
		SpreadZ:             feats.Liquidity.SpreadZ,
		IVAskZ:              feats.Liquidity.IVAskPremiumZ,
		LiquidityFlag:       snap.Liquidity.Flag,
		DTE:                 cctx.DTE,
		RegimeState:         feats.Regime.State,
		IsEventWeek:         cctx.IsEventWeek,
		RRMin:               o.cfg.Edge.RRMin,
		RRTarget:            o.cfg.Edge.RRTarget,
		SpreadMaxPctl:       o.cfg.Edge.SpreadMaxPctl,
		IVAskMaxPctl:        o.cfg.Edge.IVAskMaxPctl,
		ConservativeProbMin: o.cfg.Decision.ConservativeProbMin,
		RRAggressiveMin:     o.cfg.Edge.RRAggressiveMin,
		RRBalancedMin:       o.cfg.Edge.RRBalancedMin,
		RRBalancedMax:       o.cfg.Edge.RRBalancedMax,
		RRConservativeMin:   o.cfg.Edge.RRConservativeMin,
		RRConservativeMax:   o.cfg.Edge.RRConservativeMax,
	})

	if o.metrics != nil {
		o.metrics.RecordGateResult(gateFailureCodes(gateResult), gateWarningCodes(gateResult))
	}

	return &StrategyDetail{
		Candidate: StrategyCandidateSummary{
			Name:                 customized.Name,
			Tier:                 string(customized.Tier),
			Direction:            customized.Direction,
			DTERangeMin:          customized.DTERange.Min,
			DTERangeMax:          customized.DTERange.Max,
			DeltaTargets:         customized.DeltaTargets,
			StrikeAnchors:        customized.StrikeAnchors,
			TargetRRMin:          customized.TargetRRMin,
			TargetRRMax:          customized.TargetRRMax,
			EntryTriggers:        customized.EntryTriggers,
			ExitTriggers:         customized.ExitTriggers,
			ApplicableConditions: customized.ApplicableNotes,
			Contraindications:    customized.Contraindications,
		},
		Strikes: CalculatedStrikesSummary{Strikes: strikes, Rationale: rationale, Spot: snap.Market.Spot},
		EV:      evSummaryFrom(evResult, chosenProb),
		Gate:    gateSummaryFrom(gateResult),
	}, ""
}

// legUpside decides whether a leg anchors above spot (calls) or below
// (puts) when its anchor is an ATR/implied-move descriptor; ATM/delta/
// wall anchors ignore it. Leg role, not anchor text, decides this
// (strike.Inputs.Upside's contract).
func legUpside(leg string) bool {
	return !strings.Contains(strings.ToLower(leg), "put")
}

// evInputsFor extracts the per-family geometry ev.Estimate needs from a
// resolved leg->strike map: iron_condor's call-wing width, or the
// long/short strike pair the vertical/credit-spread families share
// (both use "buy"/"sell" leg names per strategy.Templates).
func evInputsFor(templateName string, strikes map[string]float64) (wingWidth, longStrike, shortStrike float64) {
	switch templateName {
	case "iron_condor":
		wingWidth = strikes["buy_call"] - strikes["sell_call"]
		if wingWidth < 0 {
			wingWidth = -wingWidth
		}
	case "bull_call_spread", "debit_vertical_call", "credit_spread":
		longStrike = strikes["buy"]
		shortStrike = strikes["sell"]
	}
	return wingWidth, longStrike, shortStrike
}

func gateFailureCodes(r gate.Result) []string {
	codes := make([]string, 0, len(r.Failures))
	for _, f := range r.Failures {
		codes = append(codes, string(f.Code))
	}
	return codes
}

func gateWarningCodes(r gate.Result) []string {
	codes := make([]string, 0, len(r.Warnings))
	for _, w := range r.Warnings {
		codes = append(codes, string(w.Code))
	}
	return codes
}

func gateSummaryFrom(r gate.Result) GateSummary {
	failures := make([]string, 0, len(r.Failures))
	for _, f := range r.Failures {
		failures = append(failures, f.Message)
	}
	warnings := make([]string, 0, len(r.Warnings))
	for _, w := range r.Warnings {
		warnings = append(warnings, w.Message)
	}
	return GateSummary{Passes: r.Passed, FailedGates: failures, Warnings: warnings}
}

// evSummaryFrom folds an ev.Result into the FullAnalysis EVEstimate
// shape; gross_ev is recovered as net_ev+costs since ev.Result only
// stores the post-cost figure (spec.md §3.2: "costs subtracted exactly
// once").
func evSummaryFrom(r ev.Result, pWin float64) EVSummary {
	premiumOrCredit := r.Premium
	if premiumOrCredit == nil {
		premiumOrCredit = r.Credit
	}
	return EVSummary{
		PremiumOrCredit:  premiumOrCredit,
		MaxProfit:        r.MaxProfit,
		MaxLoss:          r.MaxLoss,
		Debit:            r.Debit,
		BreakevenMovePct: r.BreakevenMovePct,
		TermSlope:        r.TermSlope,
		WinRate:          pWin,
		ExpectedProfit:   r.ExpectedWin,
		ExpectedLoss:     r.ExpectedLoss,
		TotalCosts:       r.Costs,
		GrossEV:          r.NetEV + r.Costs,
		NetEV:            r.NetEV,
		RRRatio:          r.RRRatio,
		EVPositive:       r.EVPositive,
		TargetRRMet:      r.TargetRRMet,
	}
}

// samplesOrEmpty fetches historical calibration samples, tolerating a
// nil store (e.g. in tests that construct an Orchestrator directly).
func (o *Orchestrator) samplesOrEmpty(ctx context.Context, symbol string, dir calibstore.Direction) ([]calibration.Sample, error) {
	if o.store == nil {
		return nil, nil
	}
	return o.store.Samples(ctx, symbol, dir)
}

// recordCalibrationSample persists the composite score the winning
// side was decided on, with its outcome left false pending a later
// RecordOutcome backfill. Best-effort: a recording failure is logged,
// not propagated, since the calibration store is an ambient
// enhancement (spec.md §7 carries no failure row for it).
func (o *Orchestrator) recordCalibrationSample(ctx context.Context, log zerolog.Logger, snap *schema.InputSnapshot, decResult decision.Result, composite signals.Composite) {
	if o.store == nil {
		return
	}

	dir := calibstore.DirectionLong
	score := composite.Long
	if decResult.Side == decision.SideShortVol {
		dir = calibstore.DirectionShort
		score = composite.Short
	}

	rec := calibstore.Record{
		Symbol:    snap.Meta.Symbol,
		Direction: dir,
		Score:     score,
		Outcome:   false,
		Timestamp: sampleTimestamp(snap.Meta.Datetime),
	}
	if err := o.store.Record(ctx, rec); err != nil {
		log.Warn().Err(err).Msg("failed to record calibration sample")
	}
}

// sampleTimestamp parses the snapshot's own datetime so calibration
// samples carry the observation time rather than the wall clock;
// falls back to now only if the input's datetime somehow isn't
// RFC3339 despite having passed schema.Validate.
func sampleTimestamp(datetime string) time.Time {
	if t, err := time.Parse(time.RFC3339, datetime); err == nil {
		return t
	}
	return time.Now().UTC()
}
