package telemetry

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry(t *testing.T) (*Registry, *prometheus.Registry) {
	t.Helper()
	promReg := prometheus.NewRegistry()
	return NewRegistry(promReg), promReg
}

func counterValue(t *testing.T, c prometheus.Collector) float64 {
	t.Helper()
	metricCh := make(chan prometheus.Metric, 1)
	c.Collect(metricCh)
	m := &dto.Metric{}
	require.NoError(t, (<-metricCh).Write(m))
	return m.GetCounter().GetValue()
}

func gaugeValue(t *testing.T, g prometheus.Gauge) float64 {
	t.Helper()
	m := &dto.Metric{}
	require.NoError(t, g.Write(m))
	return m.GetGauge().GetValue()
}

func TestRecordGateResult_IncrementsFailureAndWarningCounters(t *testing.T) {
	r, _ := newTestRegistry(t)
	r.RecordGateResult([]string{"ev_negative", "ev_negative"}, []string{"spread_high"})

	assert.Equal(t, 2.0, counterValue(t, r.GateFailures.WithLabelValues("ev_negative")))
	assert.Equal(t, 1.0, counterValue(t, r.GateWarnings.WithLabelValues("spread_high")))
}

func TestRecordDecision_IncrementsBySideAndSymbol(t *testing.T) {
	r, _ := newTestRegistry(t)
	r.RecordDecision("LONG_VOL", "SPX")
	r.RecordDecision("LONG_VOL", "SPX")

	assert.Equal(t, 2.0, counterValue(t, r.Decisions.WithLabelValues("LONG_VOL", "SPX")))
}

func TestRecordRegimeSwitch_UpdatesActiveGauge(t *testing.T) {
	r, _ := newTestRegistry(t)
	r.RecordRegimeSwitch("negative_gamma", "positive_gamma", "SPX")
	assert.Equal(t, 1.0, gaugeValue(t, r.ActiveRegime))

	r.RecordRegimeSwitch("positive_gamma", "negative_gamma", "SPX")
	assert.Equal(t, 0.0, gaugeValue(t, r.ActiveRegime))
}

func TestRecordOracleOutcome_SetsBreakerGaugeByState(t *testing.T) {
	r, _ := newTestRegistry(t)

	r.RecordOracleOutcome("success", "closed")
	assert.Equal(t, 0.0, gaugeValue(t, r.OracleBreaker))

	r.RecordOracleOutcome("failure", "half-open")
	assert.Equal(t, 1.0, gaugeValue(t, r.OracleBreaker))

	r.RecordOracleOutcome("failure", "open")
	assert.Equal(t, 2.0, gaugeValue(t, r.OracleBreaker))
	assert.Equal(t, 2.0, counterValue(t, r.OracleCalls.WithLabelValues("failure")))
}

func TestStepTimer_RecordsObservation(t *testing.T) {
	r, _ := newTestRegistry(t)
	timer := r.StartStepTimer("strike_resolve")
	time.Sleep(time.Millisecond)
	timer.Stop("success")

	metricCh := make(chan prometheus.Metric, 1)
	r.StepDuration.WithLabelValues("strike_resolve", "success").Collect(metricCh)
	m := &dto.Metric{}
	require.NoError(t, (<-metricCh).Write(m))
	assert.EqualValues(t, 1, m.GetHistogram().GetSampleCount())
}

func TestServer_HealthzReportsOK(t *testing.T) {
	r, promReg := newTestRegistry(t)
	_ = promReg
	srv := NewServer(ServerConfig{Host: "127.0.0.1", Port: 0}, r, func() HealthStatus {
		return HealthStatus{Status: "ok", OracleBreaker: "closed", LockBackend: "local"}
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	srv.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var status HealthStatus
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&status))
	assert.Equal(t, "ok", status.Status)
}

func TestServer_HealthzReportsServiceUnavailableWhenDegraded(t *testing.T) {
	r, _ := newTestRegistry(t)
	srv := NewServer(ServerConfig{Host: "127.0.0.1", Port: 0}, r, func() HealthStatus {
		return HealthStatus{Status: "degraded", OracleBreaker: "open", LockBackend: "redis"}
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	srv.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestServer_MetricsEndpointServesPrometheusFormat(t *testing.T) {
	r, _ := newTestRegistry(t)
	r.RecordDecision("SHORT_VOL", "NDX")

	srv := NewServer(ServerConfig{Host: "127.0.0.1", Port: 0}, r, func() HealthStatus {
		return HealthStatus{Status: "ok"}
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	srv.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "promhttp_metric_handler")
}

func TestServer_ShutdownSucceedsWhenNotStarted(t *testing.T) {
	r, _ := newTestRegistry(t)
	srv := NewServer(ServerConfig{Host: "127.0.0.1", Port: 0}, r, func() HealthStatus {
		return HealthStatus{Status: "ok"}
	})
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, srv.Shutdown(ctx))
}
