// Package pipeline is the Orchestration layer named in SPEC_FULL.md §4:
// the update path (schema validation, light feature calculation, regime-
// change detection, an appended update record) and the task path (the
// full dataflow graph from spec.md §2 through the execution gate,
// persisted as full_analysis). Grounded on spec.md §2's dataflow
// diagram and structured after
// sawpanic-cryptorun/internal/application's single-orchestrator-struct-
// wiring-every-component shape.
package pipeline

import (
	"fmt"
	"os"

	"github.com/foreverwb/volquant/internal/calibration"
	"github.com/foreverwb/volquant/internal/calibstore"
	"github.com/foreverwb/volquant/internal/config"
	"github.com/foreverwb/volquant/internal/errs"
	"github.com/foreverwb/volquant/internal/features"
	"github.com/foreverwb/volquant/internal/lock"
	"github.com/foreverwb/volquant/internal/schema"
	"github.com/foreverwb/volquant/internal/telemetry"
)

// Orchestrator wires every deterministic-core component plus the three
// ambient collaborators (lock, calibration store, metrics) the update
// and task paths need. It holds no per-run state; one Orchestrator
// serves every (symbol, date) invocation.
type Orchestrator struct {
	cfg        *config.Config
	calc       *features.Calculator
	calibrator *calibration.Calibrator
	store      *calibstore.Store
	locker     lock.Locker
	metrics    *telemetry.Registry
}

// New builds an Orchestrator. store may be a disabled (no-op) Store;
// metrics may be nil, in which case step/outcome recording is skipped.
func New(cfg *config.Config, calibrator *calibration.Calibrator, store *calibstore.Store, locker lock.Locker, metrics *telemetry.Registry) *Orchestrator {
	return &Orchestrator{
		cfg:        cfg,
		calc:       features.NewCalculator(cfg),
		calibrator: calibrator,
		store:      store,
		locker:     locker,
		metrics:    metrics,
	}
}

func (o *Orchestrator) recordStep(step string) func(result string) {
	if o.metrics == nil {
		return func(string) {}
	}
	timer := o.metrics.StartStepTimer(step)
	return timer.Stop
}

// outputLockName derives the advisory lock key from the output path
// alone (spec.md §5: "the output file is the only shared-mutation
// resource"; both the update and task paths serialize on it).
func outputLockName(outputPath string) string {
	return "output:" + outputPath
}

// readAndValidate loads raw input JSON from path and runs it through
// schema.Validate, shared by both the update and task paths (spec.md
// §6.1: both subcommands validate their -i input the same way).
func readAndValidate(inputPath string) (*schema.InputSnapshot, error) {
	raw, err := os.ReadFile(inputPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.NotFound(fmt.Sprintf("input file %s not found", inputPath))
		}
		return nil, errs.IOError("read input file", err)
	}

	snap, verrs := schema.Validate(raw)
	if verrs != nil {
		return nil, errs.ValidationError(verrs)
	}
	return snap, nil
}

// dateFromDatetime extracts the YYYY-MM-DD date portion spec.md §3.1's
// output filename and OutputFile.Date expect from an ISO8601 datetime.
func dateFromDatetime(datetime string) string {
	if len(datetime) >= 10 {
		return datetime[:10]
	}
	return datetime
}
