package calibration

import (
	"context"
	"encoding/json"
	"fmt"
)

// oracleResponse is the parsed shape spec.md §4.4 expects back from the
// LLM: {p_long, p_short, confidence}. Malformed JSON or an oracle error
// both fall back to cold-start silently, per spec.md §7's Oracle
// failure row.
type oracleResponse struct {
	PLong      float64 `json:"p_long"`
	PShort     float64 `json:"p_short"`
	Confidence float64 `json:"confidence"`
}

const oracleSystemPrompt = "You calibrate directional volatility probabilities. " +
	"Respond with strict JSON: {\"p_long\": number, \"p_short\": number, \"confidence\": number}."

// LLMEstimate implements spec.md §4.4's LLM method: format a prompt
// with (L, S, context, signal_breakdown), parse {p_long, p_short,
// confidence}, clamp point into [0.40, 0.75], build a +/-0.05 interval,
// tag method=llm. Returns ok=false on any failure so the caller falls
// back to ColdStart.
func LLMEstimate(ctx context.Context, oracle Oracle, longScore, shortScore float64, contextSummary, signalBreakdown string) (longEst, shortEst Estimate, ok bool) {
	if oracle == nil {
		return Estimate{}, Estimate{}, false
	}

	prompt := fmt.Sprintf(
		"L=%.4f S=%.4f\ncontext: %s\nsignals: %s\n",
		longScore, shortScore, contextSummary, signalBreakdown,
	)

	raw, err := oracle.Chat(ctx, prompt, oracleSystemPrompt)
	if err != nil {
		return Estimate{}, Estimate{}, false
	}

	var resp oracleResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return Estimate{}, Estimate{}, false
	}

	longEst = llmClampedEstimate(resp.PLong, resp.Confidence)
	shortEst = llmClampedEstimate(resp.PShort, resp.Confidence)
	return longEst, shortEst, true
}

func llmClampedEstimate(point, confidence float64) Estimate {
	if point < 0.40 {
		point = 0.40
	}
	if point > 0.75 {
		point = 0.75
	}
	return Estimate{
		Point:      point,
		Lower:      clamp01(point - 0.05),
		Upper:      clamp01(point + 0.05),
		Method:     MethodLLM,
		Confidence: confidence,
	}
}
