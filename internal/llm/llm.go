// Package llm provides a provider-agnostic chat-completion interface, the
// concrete HTTP providers, and the Client that layers rate-limit handling,
// model fallback, and JSON recovery on top of them.
package llm

import "context"

// Provider abstracts an LLM API behind a single synchronous completion method.
// A provider performs one logical request, retrying transient transport
// failures internally; it never switches models on its own.
type Provider interface {
	// Complete sends a prompt to the LLM and returns the response.
	// Implementations must respect context cancellation and deadlines.
	Complete(ctx context.Context, req Request) (*Response, error)
}

// Request describes a single completion request.
type Request struct {
	// Prompt is the user message to send.
	Prompt string

	// Model overrides the provider's default model. If empty, the provider
	// uses its configured default.
	Model string

	// MaxTokens limits the response length. If zero, the provider uses its
	// own default.
	MaxTokens int

	// Temperature controls randomness. If nil, the provider uses its default.
	Temperature *float64

	// SystemPrompt sets the system instruction for the completion.
	SystemPrompt string

	// JSONMode asks the provider to constrain output to a single JSON object
	// where the API supports it.
	JSONMode bool
}

// Response holds the result of a completion call.
type Response struct {
	// Content is the text returned by the model.
	Content string

	// Model is the model that actually served the request.
	Model string

	// Usage reports token consumption.
	Usage Usage
}

// Usage tracks token counts for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// Total returns TotalTokens when the API reported it, otherwise the sum of
// input and output tokens.
func (u Usage) Total() int {
	if u.TotalTokens > 0 {
		return u.TotalTokens
	}
	return u.InputTokens + u.OutputTokens
}

// modelNamer is implemented by providers that expose their default model.
type modelNamer interface {
	Model() string
}
