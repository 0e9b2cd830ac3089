package llm

import (
	"fmt"
	"sort"
	"strings"
)

// Provider names accepted by NewProvider.
const (
	ProviderGroq      = "groq"
	ProviderAnthropic = "anthropic"
)

// ProviderNames returns the supported provider names, sorted.
func ProviderNames() []string {
	names := []string{ProviderGroq, ProviderAnthropic}
	sort.Strings(names)
	return names
}

// NewProvider constructs the named provider. An empty name selects Groq.
func NewProvider(name string, opts ...Option) (Provider, error) {
	switch strings.ToLower(name) {
	case "", ProviderGroq:
		return NewGroqProvider(opts...)
	case ProviderAnthropic:
		return NewAnthropicProvider(opts...)
	default:
		return nil, fmt.Errorf("llm: unknown provider %q (valid: %s)", name, strings.Join(ProviderNames(), ", "))
	}
}

// DefaultModels returns the primary and fallback model for a provider.
func DefaultModels(name string) (primary, fallback string) {
	if strings.EqualFold(name, ProviderAnthropic) {
		return DefaultAnthropicModel, DefaultAnthropicFallbackModel
	}
	return DefaultGroqModel, DefaultGroqFallbackModel
}
