package pipeline

import (
	"context"
	"fmt"

	"github.com/foreverwb/volquant/internal/errs"
	"github.com/foreverwb/volquant/internal/features"
	"github.com/foreverwb/volquant/internal/obslog"
	"github.com/foreverwb/volquant/internal/schema"
)

// RunUpdate implements the `updated` CLI subcommand (spec.md §6.1):
// validate the input, run FeatureCalculator(light) plus the
// regime-change detector, append an update record, persist. It must
// never touch probability, strategy, or strike components.
func (o *Orchestrator) RunUpdate(ctx context.Context, inputPath, outputPath string) (*schema.OutputFile, error) {
	stop := o.recordStep("update")
	result := "error"
	defer func() { stop(result) }()

	snap, err := readAndValidate(inputPath)
	if err != nil {
		return nil, err
	}

	log := obslog.Stage("update", snap.Meta.Symbol, snap.Meta.Datetime)
	log.Debug().Msg("update started")

	handle, err := o.locker.Acquire(ctx, outputLockName(outputPath))
	if err != nil {
		return nil, errs.IOError("acquire output lock", err)
	}
	defer handle.Release(ctx)

	obj, err := schema.LoadOrInit(outputPath, snap.Meta.Symbol, dateFromDatetime(snap.Meta.Datetime))
	if err != nil {
		return nil, err
	}

	previousState := lastRegimeState(obj)
	regime := o.calc.ComputeLight(snap)
	changed, significance := features.DetectRegimeChange(previousState, regime.State)
	// A fresh output file has no previous update to compare against;
	// the detector would otherwise report every first observation as a
	// changed regime purely from the empty-string sentinel.
	if previousState == "" {
		changed, significance = false, features.SignificanceNone
	}

	vrp := features.ComputeVRP(snap)

	var alerts []string
	if significance == features.SignificanceMajor {
		alerts = append(alerts, fmt.Sprintf("REGIME FLIP: %s -> %s", previousState, regime.State))
	}

	record := schema.UpdateRecord{
		Timestamp:             snap.Meta.Datetime,
		RegimeState:           regime.State,
		RegimeChanged:         changed,
		VolTrigger:            snap.Market.VolTrigger,
		Spot:                  snap.Market.Spot,
		GammaWallProximityPct: snap.Regime.GammaWallProximityPct,
		KeyMetrics: schema.KeyMetrics{
			VRP30d:             &vrp.D30,
			TriggerDistancePct: regime.TriggerDistancePct,
			FlipRisk:           regime.FlipRisk,
			NetGEXSign:         int(snap.Regime.NetGEXSign),
		},
		Alerts: alerts,
	}

	schema.AppendUpdate(obj, record)

	if err := schema.Persist(outputPath, obj); err != nil {
		return nil, err
	}

	if o.metrics != nil && changed {
		o.metrics.RecordRegimeSwitch(previousState, regime.State, snap.Meta.Symbol)
	}

	log.Debug().Bool("regime_changed", changed).Str("significance", string(significance)).Msg("update finished")
	result = "success"
	return obj, nil
}

// lastRegimeState returns the most recently appended update's regime
// state, or "" when no update has been recorded yet.
func lastRegimeState(obj *schema.OutputFile) string {
	if len(obj.Updates) == 0 {
		return ""
	}
	return obj.Updates[len(obj.Updates)-1].RegimeState
}
