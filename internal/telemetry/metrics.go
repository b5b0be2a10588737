// Package telemetry is the Monitoring surface (SPEC_FULL §5.8): a
// Prometheus metrics registry covering pipeline step durations, gate
// failures, decisions by side, and oracle circuit state, plus a small
// gorilla/mux HTTP server exposing /healthz and /metrics for the
// `monitor` CLI subcommand. Grounded on
// sawpanic-cryptorun/internal/interfaces/http/metrics.go's
// MetricsRegistry shape (typed Histogram/Counter/Gauge fields built in
// one constructor, then registered together) and server.go's
// mux.Router + middleware server shape.
package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds every metric the engine emits.
type Registry struct {
	StepDuration    *prometheus.HistogramVec
	PipelineRuns    *prometheus.CounterVec
	PipelineErrors  *prometheus.CounterVec
	Decisions       *prometheus.CounterVec
	GateFailures    *prometheus.CounterVec
	GateWarnings    *prometheus.CounterVec
	RegimeSwitches  *prometheus.CounterVec
	ActiveRegime    prometheus.Gauge
	OracleCalls     *prometheus.CounterVec
	OracleBreaker   prometheus.Gauge
	LockWaitSeconds *prometheus.HistogramVec
}

// NewRegistry builds and registers every metric with reg (pass
// prometheus.NewRegistry() in tests to avoid polluting the global
// default registry; pass prometheus.DefaultRegisterer in production).
func NewRegistry(reg prometheus.Registerer) *Registry {
	r := &Registry{
		StepDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "volquant_step_duration_seconds",
				Help:    "Duration of each pipeline step in seconds",
				Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
			[]string{"step", "result"},
		),
		PipelineRuns: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "volquant_pipeline_runs_total",
				Help: "Total number of pipeline runs by path and result",
			},
			[]string{"path", "result"},
		),
		PipelineErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "volquant_pipeline_errors_total",
				Help: "Total number of pipeline errors by step",
			},
			[]string{"step"},
		),
		Decisions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "volquant_decisions_total",
				Help: "Total number of classifier decisions by side",
			},
			[]string{"side", "symbol"},
		),
		GateFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "volquant_gate_failures_total",
				Help: "Total number of execution gate failures by code",
			},
			[]string{"code"},
		),
		GateWarnings: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "volquant_gate_warnings_total",
				Help: "Total number of execution gate warnings by code",
			},
			[]string{"code"},
		),
		RegimeSwitches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "volquant_regime_switches_total",
				Help: "Total number of gamma regime transitions",
			},
			[]string{"from", "to", "symbol"},
		),
		ActiveRegime: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "volquant_active_regime",
				Help: "Current gamma regime (0=negative_gamma, 1=positive_gamma)",
			},
		),
		OracleCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "volquant_oracle_calls_total",
				Help: "Total number of oracle calls by outcome",
			},
			[]string{"outcome"},
		),
		OracleBreaker: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "volquant_oracle_breaker_state",
				Help: "Oracle circuit breaker state (0=closed, 1=half_open, 2=open)",
			},
		),
		LockWaitSeconds: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "volquant_lock_wait_seconds",
				Help:    "Time spent waiting to acquire the output lock",
				Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 30},
			},
			[]string{"name"},
		),
	}

	reg.MustRegister(
		r.StepDuration,
		r.PipelineRuns,
		r.PipelineErrors,
		r.Decisions,
		r.GateFailures,
		r.GateWarnings,
		r.RegimeSwitches,
		r.ActiveRegime,
		r.OracleCalls,
		r.OracleBreaker,
		r.LockWaitSeconds,
	)

	return r
}

// RecordGateResult increments failure/warning counters for each code
// a gate.Result carried. Codes are passed as plain strings so this
// package never imports internal/gate (avoiding a cyclic dependency
// with the pipeline orchestrator that imports both).
func (r *Registry) RecordGateResult(failureCodes, warningCodes []string) {
	for _, c := range failureCodes {
		r.GateFailures.WithLabelValues(c).Inc()
	}
	for _, c := range warningCodes {
		r.GateWarnings.WithLabelValues(c).Inc()
	}
}

// RecordDecision increments the decisions counter for side/symbol.
func (r *Registry) RecordDecision(side, symbol string) {
	r.Decisions.WithLabelValues(side, symbol).Inc()
}

// RecordRegimeSwitch records a transition and updates the active gauge.
func (r *Registry) RecordRegimeSwitch(from, to, symbol string) {
	r.RegimeSwitches.WithLabelValues(from, to, symbol).Inc()
	if to == "positive_gamma" {
		r.ActiveRegime.Set(1)
	} else {
		r.ActiveRegime.Set(0)
	}
}

// RecordOracleOutcome increments the oracle-calls counter and sets the
// breaker gauge from breakerState ("closed"/"half-open"/"open").
func (r *Registry) RecordOracleOutcome(outcome, breakerState string) {
	r.OracleCalls.WithLabelValues(outcome).Inc()
	switch breakerState {
	case "half-open":
		r.OracleBreaker.Set(1)
	case "open":
		r.OracleBreaker.Set(2)
	default:
		r.OracleBreaker.Set(0)
	}
}

// StepTimer times one pipeline step and records it on Stop.
type StepTimer struct {
	reg   *Registry
	step  string
	start time.Time
}

// StartStepTimer begins timing step.
func (r *Registry) StartStepTimer(step string) *StepTimer {
	return &StepTimer{reg: r, step: step, start: time.Now()}
}

// Stop records the elapsed duration and run outcome for this step.
func (t *StepTimer) Stop(result string) {
	t.reg.StepDuration.WithLabelValues(t.step, result).Observe(time.Since(t.start).Seconds())
}
