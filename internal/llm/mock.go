package llm

import (
	"context"
	"sync"
)

// MockResponse defines a canned response for the mock provider.
type MockResponse struct {
	Content string
	Err     error
	// Usage overrides the default usage of 10 input and 5 output tokens.
	Usage *Usage
}

// MockProvider is a test double that returns pre-configured responses in
// sequence. After all responses are exhausted, it keeps returning the last one.
// It records every request for later assertion.
type MockProvider struct {
	mu        sync.Mutex
	model     string
	responses []MockResponse
	calls     []Request
	idx       int
	closed    int
}

// Compile-time check that MockProvider satisfies the Provider interface.
var _ Provider = (*MockProvider)(nil)

// NewMockProvider creates a mock that returns the given responses in order.
// If no responses are provided, Complete returns an empty Response.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{
		model:     "mock",
		responses: responses,
	}
}

// Complete returns the next canned response and records the request.
// It respects context cancellation.
func (m *MockProvider) Complete(ctx context.Context, req Request) (*Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = append(m.calls, req)

	model := m.model
	if req.Model != "" {
		model = req.Model
	}

	if len(m.responses) == 0 {
		return &Response{Content: "", Model: model}, nil
	}

	r := m.responses[m.idx]
	if m.idx < len(m.responses)-1 {
		m.idx++
	}

	if r.Err != nil {
		return nil, r.Err
	}

	usage := Usage{InputTokens: 10, OutputTokens: 5}
	if r.Usage != nil {
		usage = *r.Usage
	}
	return &Response{
		Content: r.Content,
		Model:   model,
		Usage:   usage,
	}, nil
}

// Calls returns a copy of all requests received by this mock.
func (m *MockProvider) Calls() []Request {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Request, len(m.calls))
	copy(out, m.calls)
	return out
}

// Models returns the model requested by each recorded call, in order.
func (m *MockProvider) Models() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]string, len(m.calls))
	for i, c := range m.calls {
		out[i] = c.Model
	}
	return out
}

// Model returns "mock", the mock's default model name.
func (m *MockProvider) Model() string {
	return m.model
}

// Close counts calls so tests can check that resources were released.
func (m *MockProvider) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed++
	return nil
}

// Closed returns the number of times Close was called.
func (m *MockProvider) Closed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Reset clears call history and resets the response index to zero.
func (m *MockProvider) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls = nil
	m.idx = 0
}
