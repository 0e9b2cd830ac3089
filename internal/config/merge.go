package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"

	"github.com/davetashner/bigo/internal/llm"
)

// Merge layers configs in order; a non-zero field in a later config
// overrides earlier ones. Nil configs are skipped.
func Merge(layers ...*Config) *Config {
	merged := &Config{}
	for _, c := range layers {
		if c == nil {
			continue
		}
		if c.Provider != "" {
			merged.Provider = c.Provider
		}
		if c.Model != "" {
			merged.Model = c.Model
		}
		if c.FallbackModel != "" {
			merged.FallbackModel = c.FallbackModel
		}
		if c.MaxTokens != 0 {
			merged.MaxTokens = c.MaxTokens
		}
		if c.Temperature != nil {
			merged.Temperature = c.Temperature
		}
		if c.Timeout != "" {
			merged.Timeout = c.Timeout
		}
		if c.MaxRetries != nil {
			merged.MaxRetries = c.MaxRetries
		}
		if c.RateLimitCooldown != "" {
			merged.RateLimitCooldown = c.RateLimitCooldown
		}
		if c.CacheTTL != "" {
			merged.CacheTTL = c.CacheTTL
		}
		if c.NoCache {
			merged.NoCache = true
		}
		if c.BatchDelay != "" {
			merged.BatchDelay = c.BatchDelay
		}
		if c.Format != "" {
			merged.Format = c.Format
		}
		if c.Language != "" {
			merged.Language = c.Language
		}
	}
	return merged
}

// Flag names read by FromFlags. Commands register whichever apply to them.
const (
	FlagProvider      = "provider"
	FlagModel         = "model"
	FlagFallbackModel = "fallback-model"
	FlagMaxTokens     = "max-tokens"
	FlagTemperature   = "temperature"
	FlagTimeout       = "timeout"
	FlagMaxRetries    = "max-retries"
	FlagNoCache       = "no-cache"
	FlagBatchDelay    = "batch-delay"
	FlagFormat        = "format"
	FlagLanguage      = "language"
)

// FromFlags builds a Config from the flags the user explicitly set, so that
// flag defaults never mask file values.
func FromFlags(flags *pflag.FlagSet) (*Config, error) {
	cfg := &Config{}
	changed := func(name string) bool {
		return flags.Lookup(name) != nil && flags.Changed(name)
	}

	var err error
	str := func(name string, dst *string) {
		if err == nil && changed(name) {
			*dst, err = flags.GetString(name)
		}
	}
	dur := func(name string, dst *string) {
		if err == nil && changed(name) {
			var d time.Duration
			d, err = flags.GetDuration(name)
			*dst = d.String()
		}
	}

	str(FlagProvider, &cfg.Provider)
	str(FlagModel, &cfg.Model)
	str(FlagFallbackModel, &cfg.FallbackModel)
	str(FlagFormat, &cfg.Format)
	str(FlagLanguage, &cfg.Language)
	dur(FlagTimeout, &cfg.Timeout)
	dur(FlagBatchDelay, &cfg.BatchDelay)
	if err == nil && changed(FlagMaxTokens) {
		cfg.MaxTokens, err = flags.GetInt(FlagMaxTokens)
	}
	if err == nil && changed(FlagTemperature) {
		var t float64
		t, err = flags.GetFloat64(FlagTemperature)
		cfg.Temperature = &t
	}
	if err == nil && changed(FlagMaxRetries) {
		var n int
		n, err = flags.GetInt(FlagMaxRetries)
		cfg.MaxRetries = &n
	}
	if err == nil && changed(FlagNoCache) {
		cfg.NoCache, err = flags.GetBool(FlagNoCache)
	}
	if err != nil {
		return nil, fmt.Errorf("reading flags: %w", err)
	}
	return cfg, nil
}

// Resolve validates cfg and applies it over Defaults. Models left unset
// follow the provider's defaults; fallback_model "none" disables fallback.
func Resolve(cfg *Config) (Settings, error) {
	if err := Validate(cfg); err != nil {
		return Settings{}, err
	}

	s := Defaults()
	if cfg.Provider != "" {
		s.Provider = strings.ToLower(cfg.Provider)
	}
	s.Model, s.FallbackModel = llm.DefaultModels(s.Provider)
	if cfg.Model != "" {
		s.Model = cfg.Model
	}
	switch {
	case strings.EqualFold(cfg.FallbackModel, NoFallback):
		s.FallbackModel = ""
	case cfg.FallbackModel != "":
		s.FallbackModel = cfg.FallbackModel
	}
	if cfg.MaxTokens != 0 {
		s.MaxTokens = cfg.MaxTokens
	}
	if cfg.Temperature != nil {
		s.Temperature = *cfg.Temperature
	}
	if cfg.MaxRetries != nil {
		s.MaxRetries = *cfg.MaxRetries
	}
	s.NoCache = cfg.NoCache
	if cfg.Format != "" {
		s.Format = strings.ToLower(cfg.Format)
	}
	s.Language = cfg.Language

	// Durations were checked by Validate.
	for _, d := range []struct {
		raw string
		dst *time.Duration
	}{
		{cfg.Timeout, &s.Timeout},
		{cfg.RateLimitCooldown, &s.RateLimitCooldown},
		{cfg.CacheTTL, &s.CacheTTL},
		{cfg.BatchDelay, &s.BatchDelay},
	} {
		if d.raw != "" {
			*d.dst, _ = time.ParseDuration(d.raw)
		}
	}
	return s, nil
}
