// Package oracle is the resilience wrapper around the LLM side-oracle
// (spec.md §6.4, SPEC_FULL §5.7): a token-bucket rate limiter
// (golang.org/x/time/rate, grounded on
// sawpanic-cryptorun/internal/net/ratelimit.Limiter), a circuit breaker
// (sony/gobreaker, grounded on
// sawpanic-cryptorun/internal/infrastructure/providers.CircuitBreakerManager),
// and bounded retries with exponential backoff (grounded on
// sawpanic-cryptorun/internal/infrastructure/httpclient.ClientPool). It
// implements the calibration.Oracle interface; the Probability
// Calibrator is the only component that calls it.
package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/foreverwb/volquant/internal/config"
)

// Transport is the narrow seam over the underlying LLM HTTP API. The
// production implementation posts to a chat-completions endpoint;
// tests inject a fake.
type Transport interface {
	Do(ctx context.Context, prompt, system string) (string, error)
}

// Client is the resilient oracle: every call passes through the rate
// limiter, then the circuit breaker, then bounded retries around the
// underlying Transport.
type Client struct {
	transport Transport
	limiter   *rate.Limiter
	breaker   *gobreaker.CircuitBreaker
	cfg       config.OracleConfig
}

// New builds a Client around transport using cfg's rate, breaker, and
// retry settings (config.Default().Oracle unless overridden).
func New(transport Transport, cfg config.OracleConfig) *Client {
	settings := gobreaker.Settings{
		Name:        "oracle",
		MaxRequests: 1,
		Interval:    0,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.BreakerMaxFails
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("oracle circuit breaker state change")
		},
	}

	return &Client{
		transport: transport,
		limiter:   rate.NewLimiter(rate.Limit(cfg.RequestsPerSec), cfg.Burst),
		breaker:   gobreaker.NewCircuitBreaker(settings),
		cfg:       cfg,
	}
}

// Chat satisfies calibration.Oracle: wait for a rate-limit token, run
// the call through the circuit breaker, retrying transient failures
// with exponential backoff up to cfg.MaxRetries times.
func (c *Client) Chat(ctx context.Context, prompt, system string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("oracle rate limit wait: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt <= c.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := c.backoff(attempt)
			log.Debug().Int("attempt", attempt).Dur("backoff", backoff).Msg("retrying oracle call")
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}

		callCtx, cancel := context.WithTimeout(ctx, time.Duration(c.cfg.TimeoutMs)*time.Millisecond)
		result, err := c.breaker.Execute(func() (interface{}, error) {
			return c.transport.Do(callCtx, prompt, system)
		})
		cancel()

		if err == nil {
			return result.(string), nil
		}

		lastErr = err
		if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
			return "", fmt.Errorf("oracle circuit open: %w", err)
		}
	}

	return "", fmt.Errorf("oracle call failed after %d attempts: %w", c.cfg.MaxRetries+1, lastErr)
}

func (c *Client) backoff(attempt int) time.Duration {
	base := 250 * time.Millisecond
	d := base * time.Duration(1<<uint(attempt))
	if d > 5*time.Second {
		d = 5 * time.Second
	}
	jitter := time.Duration(rand.Float64() * 0.2 * float64(d))
	return d + jitter
}

// State reports the breaker's current state name, for health/monitor
// surfaces (SPEC_FULL §5.8).
func (c *Client) State() string {
	return c.breaker.State().String()
}

// httpTransport is the production Transport: a JSON chat-completions
// POST against an OpenAI-compatible endpoint.
type httpTransport struct {
	endpoint string
	apiKey   string
	model    string
	client   *http.Client
}

// NewHTTPTransport builds the default production Transport.
func NewHTTPTransport(endpoint, apiKey, model string) Transport {
	return &httpTransport{
		endpoint: endpoint,
		apiKey:   apiKey,
		model:    model,
		client:   &http.Client{},
	}
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (t *httpTransport) Do(ctx context.Context, prompt, system string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: t.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal oracle request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build oracle request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+t.apiKey)

	resp, err := t.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("oracle http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("oracle http status %d", resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode oracle response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("oracle response had no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}
