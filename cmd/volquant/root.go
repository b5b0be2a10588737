package main

import (
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/foreverwb/volquant/internal/calibration"
	"github.com/foreverwb/volquant/internal/calibstore"
	"github.com/foreverwb/volquant/internal/config"
	"github.com/foreverwb/volquant/internal/lock"
	"github.com/foreverwb/volquant/internal/oracle"
	"github.com/foreverwb/volquant/internal/pipeline"
	"github.com/foreverwb/volquant/internal/telemetry"
)

// engine bundles everything newEngine wires, so the monitor
// subcommand can share the same metrics registry and oracle breaker
// the update/task subcommands run against.
type engine struct {
	cfg        *config.Config
	orch       *pipeline.Orchestrator
	metrics    *telemetry.Registry
	oracle     *oracle.Client
	store      *calibstore.Store
}

// newEngine loads config and wires every collaborator the CLI
// subcommands need. The oracle is only constructed when
// VOLQUANT_ORACLE_ENDPOINT is set; otherwise the calibrator runs
// cold-start/historical-fit only, per spec.md §4.4's "LLM first when
// configured" fallback chain.
func newEngine() (*engine, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	store, err := calibstore.Open(cfg.CalibrationStore)
	if err != nil {
		return nil, err
	}

	var oracleClient *oracle.Client
	var llmOracle calibration.Oracle
	if endpoint := os.Getenv("VOLQUANT_ORACLE_ENDPOINT"); endpoint != "" {
		transport := oracle.NewHTTPTransport(endpoint, os.Getenv("VOLQUANT_ORACLE_API_KEY"), os.Getenv("VOLQUANT_ORACLE_MODEL"))
		oracleClient = oracle.New(transport, cfg.Oracle)
		llmOracle = oracleClient
	}

	calibrator := calibration.NewCalibrator(cfg, llmOracle)
	locker := lock.New(cfg.Lock)
	metrics := telemetry.NewRegistry(prometheus.DefaultRegisterer)

	orch := pipeline.New(cfg, calibrator, store, locker, metrics)

	return &engine{cfg: cfg, orch: orch, metrics: metrics, oracle: oracleClient, store: store}, nil
}
