package pipeline

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foreverwb/volquant/internal/calibration"
	"github.com/foreverwb/volquant/internal/calibstore"
	"github.com/foreverwb/volquant/internal/config"
	"github.com/foreverwb/volquant/internal/lock"
	"github.com/foreverwb/volquant/internal/schema"
	"github.com/foreverwb/volquant/internal/telemetry"
)

// rawSnapshot builds a complete, schema-valid input document. Callers
// mutate the decoded map via opts before it's re-marshalled, so each
// test can nudge a single field without repeating all 22.
func rawSnapshot(t *testing.T, opts func(m map[string]any)) []byte {
	t.Helper()

	doc := map[string]any{
		"meta": map[string]any{
			"symbol":   "SPX",
			"datetime": "2026-08-01T14:30:00Z",
		},
		"market": map[string]any{
			"spot":        5000.0,
			"vol_trigger": 5010.0,
		},
		"regime": map[string]any{
			"net_gex_sign":             1,
			"gamma_wall_call":          5050.0,
			"gamma_wall_put":           4950.0,
			"gamma_wall_proximity_pct": 0.01,
		},
		"volatility": map[string]any{
			"iv_event_atm": 0.18,
			"iv_m1_atm":    0.16,
			"iv_m2_atm":    0.155,
			"hv10":         0.12,
			"hv20":         0.13,
			"hv60":         0.14,
		},
		"structure": map[string]any{
			"term_slope":      0.01,
			"term_curvature":  0.002,
			"skew_asymmetry":  -0.05,
			"vex_net_5_60":    0.2,
			"vanna_atm_abs":   0.03,
		},
		"liquidity": map[string]any{
			"spread_atm":          0.05,
			"iv_ask_premium_pct":  0.02,
			"liquidity_flag":      "good",
		},
	}

	if opts != nil {
		opts(doc)
	}

	raw, err := json.Marshal(doc)
	require.NoError(t, err)
	return raw
}

// newOrchestrator wires a real Orchestrator against in-process/no-op
// collaborators: a LocalLock (no Redis), a disabled calibration store
// (no Postgres), no LLM oracle (forces cold-start), and a private
// prometheus registry so metric registration never collides across
// tests.
func newOrchestrator(t *testing.T) *Orchestrator {
	t.Helper()

	cfg := config.Default()

	store, err := calibstore.Open(config.CalibrationStoreConfig{Enabled: false})
	require.NoError(t, err)

	calibrator := calibration.NewCalibrator(cfg, nil)
	metrics := telemetry.NewRegistry(prometheus.NewRegistry())

	return New(cfg, calibrator, store, lock.NewLocalLock(), metrics)
}

func writeInput(t *testing.T, dir string, raw []byte) string {
	t.Helper()
	path := filepath.Join(dir, "input.json")
	require.NoError(t, os.WriteFile(path, raw, 0o644))
	return path
}

func TestRunUpdate_FreshOutputFileHasNoRegimeChange(t *testing.T) {
	dir := t.TempDir()
	o := newOrchestrator(t)

	inputPath := writeInput(t, dir, rawSnapshot(t, nil))
	outputPath := filepath.Join(dir, "output.json")

	obj, err := o.RunUpdate(context.Background(), inputPath, outputPath)
	require.NoError(t, err)
	require.Len(t, obj.Updates, 1)

	rec := obj.Updates[0]
	assert.False(t, rec.RegimeChanged)
	assert.Equal(t, "2026-08-01T14:30:00Z", rec.Timestamp)
	assert.Equal(t, "SPX", obj.Symbol)
	assert.Equal(t, "2026-08-01", obj.Date)
}

func TestRunUpdate_SecondCallAppendsAndDetectsRegimeChange(t *testing.T) {
	dir := t.TempDir()
	o := newOrchestrator(t)
	outputPath := filepath.Join(dir, "output.json")

	firstInput := writeInput(t, dir, rawSnapshot(t, func(m map[string]any) {
		m["regime"].(map[string]any)["net_gex_sign"] = 1
		m["market"].(map[string]any)["vol_trigger"] = 5500.0
		m["market"].(map[string]any)["spot"] = 5000.0
	}))
	_, err := o.RunUpdate(context.Background(), firstInput, outputPath)
	require.NoError(t, err)

	secondInput := writeInput(t, dir, rawSnapshot(t, func(m map[string]any) {
		m["meta"].(map[string]any)["datetime"] = "2026-08-01T15:30:00Z"
		m["regime"].(map[string]any)["net_gex_sign"] = -1
		m["market"].(map[string]any)["vol_trigger"] = 4500.0
		m["market"].(map[string]any)["spot"] = 5000.0
	}))
	obj, err := o.RunUpdate(context.Background(), secondInput, outputPath)
	require.NoError(t, err)

	require.Len(t, obj.Updates, 2)
	assert.NotEqual(t, obj.Updates[0].RegimeState, obj.Updates[1].RegimeState)
}

func TestRunUpdate_MissingInputFileIsNotFound(t *testing.T) {
	dir := t.TempDir()
	o := newOrchestrator(t)

	_, err := o.RunUpdate(context.Background(), filepath.Join(dir, "missing.json"), filepath.Join(dir, "out.json"))
	require.Error(t, err)
}

func TestRunTask_ProducesFullAnalysisAndPersistsOutput(t *testing.T) {
	dir := t.TempDir()
	o := newOrchestrator(t)

	inputPath := writeInput(t, dir, rawSnapshot(t, nil))
	outputPath := filepath.Join(dir, "output.json")

	cctx := schema.Context{IsEventWeek: false, ConservativeMode: false, DTE: 30}

	obj, err := o.RunTask(context.Background(), inputPath, outputPath, cctx, false)
	require.NoError(t, err)
	require.NotNil(t, obj)
	assert.NotEqual(t, "null", string(obj.FullAnalysis))

	var analysis FullAnalysis
	require.NoError(t, json.Unmarshal(obj.FullAnalysis, &analysis))
	assert.NotEmpty(t, analysis.Decision.Decision)
	assert.Len(t, obj.GexbotCommands, 7)

	// Re-running task must overwrite full_analysis but not touch updates.
	obj2, err := o.RunTask(context.Background(), inputPath, outputPath, cctx, false)
	require.NoError(t, err)
	assert.Equal(t, len(obj.Updates), len(obj2.Updates))
}

func TestRunTask_StandAsideSetsNoTradeReason(t *testing.T) {
	dir := t.TempDir()
	o := newOrchestrator(t)

	// A flat, unremarkable snapshot should fail both sides' hard score
	// gates and land on STAND_ASIDE.
	inputPath := writeInput(t, dir, rawSnapshot(t, func(m map[string]any) {
		m["market"].(map[string]any)["vol_trigger"] = 5000.0
		m["structure"].(map[string]any)["term_slope"] = 0.0
		m["structure"].(map[string]any)["skew_asymmetry"] = 0.0
		m["structure"].(map[string]any)["vex_net_5_60"] = 0.0
		m["structure"].(map[string]any)["vanna_atm_abs"] = 0.0
		m["volatility"].(map[string]any)["hv10"] = 0.15
		m["volatility"].(map[string]any)["hv20"] = 0.15
		m["volatility"].(map[string]any)["hv60"] = 0.15
		m["volatility"].(map[string]any)["iv_m1_atm"] = 0.15
	}))
	outputPath := filepath.Join(dir, "output.json")

	obj, err := o.RunTask(context.Background(), inputPath, outputPath, schema.Context{DTE: 30}, false)
	require.NoError(t, err)

	var analysis FullAnalysis
	require.NoError(t, json.Unmarshal(obj.FullAnalysis, &analysis))
	if analysis.Decision.Decision == "STAND_ASIDE" {
		require.NotNil(t, analysis.NoTradeReason)
		assert.Nil(t, analysis.Strategy)
	}
}

func TestEvInputsFor_IronCondorUsesCallWingWidth(t *testing.T) {
	strikes := map[string]float64{"buy_call": 5120, "sell_call": 5080, "buy_put": 4880, "sell_put": 4920}
	wing, long, short := evInputsFor("iron_condor", strikes)
	assert.Equal(t, 40.0, wing)
	assert.Equal(t, 0.0, long)
	assert.Equal(t, 0.0, short)
}

func TestEvInputsFor_VerticalUsesBuySellStrikes(t *testing.T) {
	strikes := map[string]float64{"buy": 5100, "sell": 5200}
	wing, long, short := evInputsFor("bull_call_spread", strikes)
	assert.Equal(t, 0.0, wing)
	assert.Equal(t, 5100.0, long)
	assert.Equal(t, 5200.0, short)
}

func TestLegUpside_PutLegsAnchorBelowSpot(t *testing.T) {
	assert.False(t, legUpside("sell_put"))
	assert.False(t, legUpside("buy_put"))
	assert.True(t, legUpside("buy_call"))
	assert.True(t, legUpside("buy"))
}
