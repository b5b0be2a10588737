package calibration

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foreverwb/volquant/internal/config"
	"github.com/foreverwb/volquant/internal/schema"
)

func TestColdStart_AnchorsMatchSpec(t *testing.T) {
	e := ColdStart(1.0)
	assert.InDelta(t, 0.55, e.Lower, 1e-9)
	assert.InDelta(t, 0.60, e.Upper, 1e-9)
	assert.InDelta(t, 0.575, e.Point, 1e-9)

	e2 := ColdStart(2.0)
	assert.InDelta(t, 0.65, e2.Lower, 1e-9)
	assert.InDelta(t, 0.70, e2.Upper, 1e-9)
}

func TestColdStart_ZeroScoreIsHalf(t *testing.T) {
	e := ColdStart(0)
	assert.InDelta(t, 0.50, e.Point, 1e-9)
}

func TestColdStart_AboveTwoAddsBoundedExtraAndCapsUpper(t *testing.T) {
	e := ColdStart(4.0) // (4-2)*0.02 = 0.04 < 0.05 cap
	assert.InDelta(t, 0.65+0.04, e.Lower, 1e-9)
	assert.InDelta(t, 0.70+0.04, e.Upper, 1e-9)

	e2 := ColdStart(10.0) // extra clipped to 0.05; upper = 0.70+0.05, under the 0.85 cap
	assert.InDelta(t, 0.75, e2.Upper, 1e-9)
}

func TestColdStart_MonotoneAcrossPieces(t *testing.T) {
	prev := ColdStart(0).Point
	for _, s := range []float64{0.5, 1.0, 1.2, 1.5, 1.8, 2.0, 2.5, 3.0} {
		cur := ColdStart(s).Point
		assert.GreaterOrEqual(t, cur, prev)
		prev = cur
	}
}

func TestFitIsotonic_MonotoneOutput(t *testing.T) {
	samples := make([]Sample, 0, 200)
	for i := 0; i < 200; i++ {
		score := float64(i) / 20.0
		samples = append(samples, Sample{Score: score, Outcome: i%3 == 0 || score > 5})
	}
	m := FitIsotonic(samples)
	require.NotEmpty(t, m.scores)
	prev := m.Predict(m.scores[0])
	for _, s := range m.scores {
		cur := m.Predict(s)
		assert.GreaterOrEqual(t, cur, prev-1e-9)
		prev = cur
	}
}

func TestFitPlatt_SeparatesClasses(t *testing.T) {
	var samples []Sample
	for i := 0; i < 50; i++ {
		samples = append(samples, Sample{Score: -2, Outcome: false})
		samples = append(samples, Sample{Score: 2, Outcome: true})
	}
	model := FitPlatt(samples)
	assert.Greater(t, sigmoid(model.A*2+model.B), 0.9)
	assert.Less(t, sigmoid(model.A*-2+model.B), 0.1)
}

func TestApplyContext_EventWeekAsymmetric(t *testing.T) {
	base := Estimate{Point: 0.6, Lower: 0.55, Upper: 0.65, Confidence: 0.8}
	longAdj := ApplyContext(base, AdjustmentInput{IsEventWeek: true}, true)
	shortAdj := ApplyContext(base, AdjustmentInput{IsEventWeek: true}, false)
	assert.InDelta(t, 0.62, longAdj.Point, 1e-9)
	assert.InDelta(t, 0.59, shortAdj.Point, 1e-9)
	assert.InDelta(t, 0.8*0.95, longAdj.Confidence, 1e-9)
}

func TestApplyContext_PoorLiquidityBothDirections(t *testing.T) {
	base := Estimate{Point: 0.6, Lower: 0.55, Upper: 0.65, Confidence: 0.8}
	longAdj := ApplyContext(base, AdjustmentInput{LiquidityFlag: schema.LiquidityPoor}, true)
	shortAdj := ApplyContext(base, AdjustmentInput{LiquidityFlag: schema.LiquidityPoor}, false)
	assert.InDelta(t, 0.57, longAdj.Point, 1e-9)
	assert.InDelta(t, 0.57, shortAdj.Point, 1e-9)
}

func TestApplyContext_ReclampsIntoBounds(t *testing.T) {
	base := Estimate{Point: 0.99, Lower: 0.97, Upper: 0.99, Confidence: 0.5}
	adj := ApplyContext(base, AdjustmentInput{IsEventWeek: true}, true)
	assert.LessOrEqual(t, adj.Point, 0.99)
	assert.LessOrEqual(t, adj.Lower, adj.Point)
	assert.GreaterOrEqual(t, adj.Upper, adj.Point)
}

type fakeOracle struct {
	response string
	err      error
}

func (f fakeOracle) Chat(ctx context.Context, prompt, system string) (string, error) {
	return f.response, f.err
}

func TestLLMEstimate_ClampsIntoRange(t *testing.T) {
	o := fakeOracle{response: `{"p_long": 0.95, "p_short": 0.05, "confidence": 0.7}`}
	longE, shortE, ok := LLMEstimate(context.Background(), o, 1.0, -1.0, "ctx", "signals")
	require.True(t, ok)
	assert.Equal(t, 0.75, longE.Point)
	assert.Equal(t, 0.40, shortE.Point)
	assert.Equal(t, MethodLLM, longE.Method)
}

func TestLLMEstimate_FallsBackOnError(t *testing.T) {
	o := fakeOracle{err: errors.New("timeout")}
	_, _, ok := LLMEstimate(context.Background(), o, 1.0, -1.0, "ctx", "signals")
	assert.False(t, ok)
}

func TestLLMEstimate_FallsBackOnMalformedJSON(t *testing.T) {
	o := fakeOracle{response: "not json"}
	_, _, ok := LLMEstimate(context.Background(), o, 1.0, -1.0, "ctx", "signals")
	assert.False(t, ok)
}

func TestCalibrator_UsesColdStartWithoutOracleOrSamples(t *testing.T) {
	c := NewCalibrator(config.Default(), nil)
	res := c.Estimate(context.Background(), 1.0, -1.0, nil, nil, AdjustmentInput{}, "", "")
	assert.Equal(t, MethodColdStart, res.Long.Method)
	assert.Equal(t, MethodColdStart, res.Short.Method)
}

func TestCalibrator_UsesLLMWhenOracleAnswers(t *testing.T) {
	o := fakeOracle{response: `{"p_long": 0.6, "p_short": 0.45, "confidence": 0.8}`}
	c := NewCalibrator(config.Default(), o)
	res := c.Estimate(context.Background(), 1.0, -1.0, nil, nil, AdjustmentInput{}, "", "")
	assert.Equal(t, MethodLLM, res.Long.Method)
}
