package llm

import "time"

// Option configures a provider.
type Option func(*providerConfig)

type providerConfig struct {
	apiKey  string
	model   string
	baseURL string
	timeout time.Duration
	retry   RetryPolicy
}

func newProviderConfig(model string, opts []Option) providerConfig {
	cfg := providerConfig{
		model:   model,
		timeout: defaultTimeout,
		retry:   DefaultRetryPolicy(),
	}
	for _, o := range opts {
		o(&cfg)
	}
	return cfg
}

// defaultTimeout is the overall deadline for a single HTTP request.
const defaultTimeout = 60 * time.Second

// WithAPIKey sets the API key. If not provided, the provider reads its
// environment variable (GROQ_API_KEY or ANTHROPIC_API_KEY).
func WithAPIKey(key string) Option {
	return func(c *providerConfig) {
		c.apiKey = key
	}
}

// WithModel overrides the default model for all requests.
func WithModel(model string) Option {
	return func(c *providerConfig) {
		if model != "" {
			c.model = model
		}
	}
}

// WithMaxRetries sets the total number of transport attempts per request.
// Values below 1 mean a single attempt.
func WithMaxRetries(n int) Option {
	return func(c *providerConfig) {
		c.retry.MaxAttempts = n
	}
}

// WithRetryDelays overrides the exponential backoff base and cap.
func WithRetryDelays(base, maxDelay time.Duration) Option {
	return func(c *providerConfig) {
		c.retry.BaseDelay = base
		c.retry.MaxDelay = maxDelay
	}
}

// WithBaseURL points the provider at a different API root, e.g. a proxy or a
// test server.
func WithBaseURL(url string) Option {
	return func(c *providerConfig) {
		c.baseURL = url
	}
}

// WithTimeout sets the per-request deadline.
func WithTimeout(d time.Duration) Option {
	return func(c *providerConfig) {
		if d > 0 {
			c.timeout = d
		}
	}
}
