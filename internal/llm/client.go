// Copyright 2026 The Bigo Authors
// SPDX-License-Identifier: MIT

package llm

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Config controls model selection and sampling for a Client.
type Config struct {
	// Model is the primary model. Empty means the provider's default.
	Model string
	// FallbackModel is tried after the primary fails. Empty disables fallback.
	FallbackModel string
	// MaxTokens caps the response length.
	MaxTokens int
	// Temperature is the sampling temperature.
	Temperature float64
	// RateLimitCooldown is the wait before retrying a rate-limited model.
	RateLimitCooldown time.Duration
}

// DefaultConfig returns the Groq defaults: llama-3.3-70b-versatile with
// llama-3.1-8b-instant as fallback, 4096 tokens, temperature 0.1 and a 2s
// rate-limit cooldown.
func DefaultConfig() Config {
	return Config{
		Model:             DefaultGroqModel,
		FallbackModel:     DefaultGroqFallbackModel,
		MaxTokens:         defaultMaxTokens,
		Temperature:       0.1,
		RateLimitCooldown: 2 * time.Second,
	}
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithSleep replaces the cooldown sleep. Tests use it to avoid real waits.
func WithSleep(fn func(ctx context.Context, d time.Duration) error) ClientOption {
	return func(c *Client) {
		c.sleep = fn
	}
}

// Stats summarises the work a Client has done.
type Stats struct {
	TotalTokens   int    `json:"total_tokens"`
	Requests      int    `json:"requests"`
	Model         string `json:"model"`
	FallbackModel string `json:"fallback_model,omitempty"`
}

// CompleteRequest is a single logical completion, independent of which model
// ends up serving it.
type CompleteRequest struct {
	Prompt       string
	SystemPrompt string
	JSONMode     bool
	// NoFallback restricts the request to the primary model.
	NoFallback bool
}

// Client sends completions through a Provider, waiting out rate limits and
// falling back to a secondary model when the primary fails.
type Client struct {
	provider Provider
	cfg      Config
	sleep    func(ctx context.Context, d time.Duration) error

	mu    sync.Mutex
	stats Stats
}

// NewClient wraps provider. An empty Model defaults to the provider's own
// model, and a FallbackModel equal to Model disables fallback.
func NewClient(provider Provider, cfg Config, opts ...ClientOption) *Client {
	if cfg.Model == "" {
		if mn, ok := provider.(modelNamer); ok {
			cfg.Model = mn.Model()
		}
	}
	if cfg.FallbackModel == cfg.Model {
		cfg.FallbackModel = ""
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = defaultMaxTokens
	}

	c := &Client{
		provider: provider,
		cfg:      cfg,
		sleep:    sleepContext,
		stats: Stats{
			Model:         cfg.Model,
			FallbackModel: cfg.FallbackModel,
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Complete runs req against the primary model, then the fallback model, and
// returns the whitespace-trimmed content of the first success.
func (c *Client) Complete(ctx context.Context, req CompleteRequest) (string, error) {
	models := []string{c.cfg.Model}
	if !req.NoFallback && c.cfg.FallbackModel != "" {
		models = append(models, c.cfg.FallbackModel)
	}

	requestID := uuid.NewString()
	logger := slog.With("request_id", requestID)
	temp := c.cfg.Temperature

	state := newFallbackState(models)
	for {
		switch state.phase {
		case phaseTryPrimary, phaseTryFallback:
			model := state.model()
			logger.Debug("sending completion", "model", model, "phase", state.phase)

			resp, err := c.provider.Complete(ctx, Request{
				Prompt:       req.Prompt,
				SystemPrompt: req.SystemPrompt,
				Model:        model,
				MaxTokens:    c.cfg.MaxTokens,
				Temperature:  &temp,
				JSONMode:     req.JSONMode,
			})
			if ctxErr := ctx.Err(); ctxErr != nil {
				return "", ctxErr
			}
			state.observe(err)
			if err != nil {
				logger.Warn("completion failed", "model", model, "error", err)
				continue
			}
			c.record(resp.Usage)
			return strings.TrimSpace(resp.Content), nil

		case phaseRateLimitWait:
			logger.Info("rate limited, waiting before retry", "model", state.model(), "wait", c.cfg.RateLimitCooldown)
			if err := c.sleep(ctx, c.cfg.RateLimitCooldown); err != nil {
				return "", err
			}
			state.resume()

		default:
			return "", &APIError{Message: "all models failed", Err: state.lastErr}
		}
	}
}

// CompleteJSON requests JSON output and decodes it with ExtractJSON.
func (c *Client) CompleteJSON(ctx context.Context, prompt, system string) (map[string]any, error) {
	text, err := c.Complete(ctx, CompleteRequest{
		Prompt:       prompt,
		SystemPrompt: system,
		JSONMode:     true,
	})
	if err != nil {
		return nil, err
	}
	return ExtractJSON(text)
}

func (c *Client) record(u Usage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.stats.TotalTokens += u.Total()
	c.stats.Requests++
}

// Stats returns a snapshot of usage counters.
func (c *Client) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stats
}

// Close releases the provider's connections when it holds any.
func (c *Client) Close() error {
	if closer, ok := c.provider.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
