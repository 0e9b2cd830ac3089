package config

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/davetashner/bigo/internal/llm"
	"github.com/davetashner/bigo/internal/output"
)

// Validate checks all fields in the config and returns all errors at once.
func Validate(cfg *Config) error {
	var errs []string

	if cfg.Provider != "" && !slices.Contains(llm.ProviderNames(), strings.ToLower(cfg.Provider)) {
		errs = append(errs, fmt.Sprintf("provider: unknown provider %q (valid: %s)", cfg.Provider, strings.Join(llm.ProviderNames(), ", ")))
	}

	if cfg.Format != "" {
		if _, err := output.GetFormatter(strings.ToLower(cfg.Format)); err != nil {
			errs = append(errs, fmt.Sprintf("format: %v", err))
		}
	}

	if cfg.MaxTokens < 0 {
		errs = append(errs, fmt.Sprintf("max_tokens: must be non-negative, got %d", cfg.MaxTokens))
	}

	if cfg.Temperature != nil && (*cfg.Temperature < 0 || *cfg.Temperature > 2) {
		errs = append(errs, fmt.Sprintf("temperature: must be between 0.0 and 2.0, got %g", *cfg.Temperature))
	}

	if cfg.MaxRetries != nil && *cfg.MaxRetries < 0 {
		errs = append(errs, fmt.Sprintf("max_retries: must be non-negative, got %d", *cfg.MaxRetries))
	}

	for _, d := range []struct {
		key      string
		raw      string
		positive bool
	}{
		{"timeout", cfg.Timeout, true},
		{"rate_limit_cooldown", cfg.RateLimitCooldown, false},
		{"cache_ttl", cfg.CacheTTL, true},
		{"batch_delay", cfg.BatchDelay, false},
	} {
		if d.raw == "" {
			continue
		}
		v, err := time.ParseDuration(d.raw)
		switch {
		case err != nil:
			errs = append(errs, fmt.Sprintf("%s: invalid duration %q", d.key, d.raw))
		case d.positive && v <= 0:
			errs = append(errs, fmt.Sprintf("%s: must be positive, got %s", d.key, d.raw))
		case v < 0:
			errs = append(errs, fmt.Sprintf("%s: must be non-negative, got %s", d.key, d.raw))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
