package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"sync"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const (
	// DefaultAnthropicModel is the model used when no override is provided.
	DefaultAnthropicModel = "claude-sonnet-4-5-20250929"

	// DefaultAnthropicFallbackModel is tried when the primary model fails.
	DefaultAnthropicFallbackModel = "claude-haiku-4-5"
)

// AnthropicProvider implements Provider using the official Anthropic SDK.
// The SDK's own retry loop is disabled so that retries follow the same
// transport-only policy as every other provider.
type AnthropicProvider struct {
	apiKey string
	model  string
	cfg    providerConfig

	mu        sync.Mutex
	client    *anthropic.Client
	transport *http.Transport
}

// Compile-time check that AnthropicProvider satisfies the Provider interface.
var _ Provider = (*AnthropicProvider)(nil)

// NewAnthropicProvider creates a new Anthropic provider.
// It returns an error if no API key is available (neither via option nor env).
func NewAnthropicProvider(opts ...Option) (*AnthropicProvider, error) {
	cfg := newProviderConfig(DefaultAnthropicModel, opts)

	apiKey := cfg.apiKey
	if apiKey == "" {
		apiKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if apiKey == "" {
		return nil, errors.New("llm: ANTHROPIC_API_KEY not set and no API key provided")
	}

	return &AnthropicProvider{
		apiKey: apiKey,
		model:  cfg.model,
		cfg:    cfg,
	}, nil
}

// Complete sends a completion request to the Anthropic Messages API.
func (p *AnthropicProvider) Complete(ctx context.Context, req Request) (*Response, error) {
	model := p.model
	if req.Model != "" {
		model = req.Model
	}

	maxTokens := int64(defaultMaxTokens)
	if req.MaxTokens > 0 {
		maxTokens = int64(req.MaxTokens)
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
	}

	if req.SystemPrompt != "" {
		params.System = []anthropic.TextBlockParam{
			{Text: req.SystemPrompt},
		}
	}

	if req.Temperature != nil {
		params.Temperature = anthropic.Float(*req.Temperature)
	}

	client := p.sdkClient()
	var msg *anthropic.Message
	err := retryTransient(ctx, p.cfg.retry, func() error {
		var err error
		msg, err = client.Messages.New(ctx, params)
		return asAPIError(err)
	})
	if err != nil {
		return nil, fmt.Errorf("anthropic: completion failed: %w", err)
	}

	// Extract text from content blocks.
	var content string
	for _, block := range msg.Content {
		if variant, ok := block.AsAny().(anthropic.TextBlock); ok {
			content += variant.Text
		}
	}

	return &Response{
		Content: content,
		Model:   string(msg.Model),
		Usage: Usage{
			InputTokens:  int(msg.Usage.InputTokens),
			OutputTokens: int(msg.Usage.OutputTokens),
		},
	}, nil
}

// asAPIError maps SDK status errors onto *APIError so rate limiting and
// fallback behave the same across providers.
func asAPIError(err error) error {
	if err == nil {
		return nil
	}
	var sdkErr *anthropic.Error
	if errors.As(err, &sdkErr) {
		msg := http.StatusText(sdkErr.StatusCode)
		if sdkErr.StatusCode == http.StatusTooManyRequests {
			msg = "rate limit exceeded, please wait and retry"
		}
		return &APIError{StatusCode: sdkErr.StatusCode, Message: msg, Err: err}
	}
	return err
}

func (p *AnthropicProvider) sdkClient() *anthropic.Client {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.client == nil {
		p.transport = http.DefaultTransport.(*http.Transport).Clone()
		clientOpts := []option.RequestOption{
			option.WithAPIKey(p.apiKey),
			option.WithMaxRetries(0),
			option.WithHTTPClient(&http.Client{
				Timeout:   p.cfg.timeout,
				Transport: p.transport,
			}),
		}
		if p.cfg.baseURL != "" {
			clientOpts = append(clientOpts, option.WithBaseURL(p.cfg.baseURL))
		}
		c := anthropic.NewClient(clientOpts...)
		p.client = &c
	}
	return p.client
}

// Close releases pooled connections. A later Complete reopens the client.
func (p *AnthropicProvider) Close() error {
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
func (p *AnthropicProvider) Model() string {
	return p.model
}

// MaxRetries returns the configured number of transport attempts.
func (p *AnthropicProvider) MaxRetries() int {
	return p.cfg.retry.MaxAttempts
}
