// Copyright 2026 The Bigo Authors
// SPDX-License-Identifier: MIT

package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
)

const (
	// DefaultGroqModel is the primary Groq model.
	DefaultGroqModel = "llama-3.3-70b-versatile"

	// DefaultGroqFallbackModel is the faster model tried when the primary fails.
	DefaultGroqFallbackModel = "llama-3.1-8b-instant"

	// defaultGroqBaseURL is the OpenAI-compatible API root.
	defaultGroqBaseURL = "https://api.groq.com/openai/v1"

	// defaultMaxTokens is the default maximum output tokens per request.
	defaultMaxTokens = 4096
)

// GroqProvider implements Provider against Groq's OpenAI-compatible
// chat-completions endpoint.
type GroqProvider struct {
	apiKey  string
	model   string
	baseURL string
	cfg     providerConfig

	mu        sync.Mutex
	client    *http.Client
	transport *http.Transport
}

// Compile-time check that GroqProvider satisfies the Provider interface.
var _ Provider = (*GroqProvider)(nil)

// NewGroqProvider creates a new Groq provider.
// It returns an error if no API key is available (neither via option nor env).
func NewGroqProvider(opts ...Option) (*GroqProvider, error) {
	cfg := newProviderConfig(DefaultGroqModel, opts)

	apiKey := cfg.apiKey
	if apiKey == "" {
		apiKey = os.Getenv("GROQ_API_KEY")
	}
	if apiKey == "" {
		return nil, errors.New("llm: GROQ_API_KEY not set and no API key provided")
	}

	baseURL := cfg.baseURL
	if baseURL == "" {
		baseURL = defaultGroqBaseURL
	}

	return &GroqProvider{
		apiKey:  apiKey,
		model:   cfg.model,
		baseURL: strings.TrimRight(baseURL, "/"),
		cfg:     cfg,
	}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	MaxTokens      int             `json:"max_tokens"`
	Temperature    *float64        `json:"temperature,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type chatResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// Complete sends a chat-completion request. Connection failures and timeouts
// are retried with exponential backoff; HTTP errors are returned as
// *APIError without retrying.
func (p *GroqProvider) Complete(ctx context.Context, req Request) (*Response, error) {
	model := p.model
	if req.Model != "" {
		model = req.Model
	}

	maxTokens := defaultMaxTokens
	if req.MaxTokens > 0 {
		maxTokens = req.MaxTokens
	}

	body := chatRequest{
		Model:       model,
		MaxTokens:   maxTokens,
		Temperature: req.Temperature,
	}
	if req.SystemPrompt != "" {
		body.Messages = append(body.Messages, chatMessage{Role: "system", Content: req.SystemPrompt})
	}
	body.Messages = append(body.Messages, chatMessage{Role: "user", Content: req.Prompt})
	if req.JSONMode {
		body.ResponseFormat = &responseFormat{Type: "json_object"}
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("groq: marshal request: %w", err)
	}

	var result chatResponse
	err = retryTransient(ctx, p.cfg.retry, func() error {
		result = chatResponse{}
		return p.roundTrip(ctx, payload, &result)
	})
	if err != nil {
		return nil, fmt.Errorf("groq: completion failed: %w", err)
	}

	if len(result.Choices) == 0 {
		return nil, &APIError{StatusCode: http.StatusOK, Message: "no choices in response"}
	}

	served := result.Model
	if served == "" {
		served = model
	}
	return &Response{
		Content: result.Choices[0].Message.Content,
		Model:   served,
		Usage: Usage{
			InputTokens:  result.Usage.PromptTokens,
			OutputTokens: result.Usage.CompletionTokens,
			TotalTokens:  result.Usage.TotalTokens,
		},
	}, nil
}

func (p *GroqProvider) roundTrip(ctx context.Context, payload []byte, out *chatResponse) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	httpReq.Header.Set("Authorization", "Bearer "+p.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient().Do(httpReq)
	if err != nil {
		return err
	}
	defer resp.Body.Close() //nolint:errcheck // read-only body

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    "rate limit exceeded, please wait and retry",
		}
	case resp.StatusCode != http.StatusOK:
		return &APIError{
			StatusCode: resp.StatusCode,
			Message:    errorDetail(body),
		}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// errorDetail extracts error.message from an OpenAI-style error body, falling
// back to the raw body text.
func errorDetail(body []byte) string {
	var envelope struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Message != "" {
		return envelope.Error.Message
	}
	return strings.TrimSpace(string(body))
}

// httpClient returns the shared HTTP client, opening it if it was never
// created or was closed.
func (p *GroqProvider) httpClient() *http.Client {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.client == nil {
		p.transport = http.DefaultTransport.(*http.Transport).Clone()
		p.client = &http.Client{
			Timeout:   p.cfg.timeout,
			Transport: p.transport,
		}
	}
	return p.client
}

// Connected reports whether an HTTP client is currently open.
func (p *GroqProvider) Connected() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.client != nil
}

// Close releases pooled connections. It is safe to call repeatedly; a later
// Complete reopens the client.
func (p *GroqProvider) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.transport != nil {
		p.transport.CloseIdleConnections()
	}
	p.client = nil
	p.transport = nil
	return nil
}

// Model returns the default model configured for this provider.
func (p *GroqProvider) Model() string {
	return p.model
}

// MaxRetries returns the configured number of transport attempts.
func (p *GroqProvider) MaxRetries() int {
	return p.cfg.retry.MaxAttempts
}
