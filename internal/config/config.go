// Package config handles .bigo.yaml and .bigo.toml configuration files and
// resolves them, together with command-line flags, into Settings.
package config

import (
	"time"

	"github.com/davetashner/bigo/internal/llm"
)

// FileName is the project config file looked up in the working directory.
const FileName = ".bigo.yaml"

// TOMLFileName is the TOML alternative to FileName. When both exist,
// FileName wins.
const TOMLFileName = ".bigo.toml"

// Config represents the contents of a config file. Zero values mean "not
// set" so that layered files can be merged field by field. Durations are
// written as Go duration strings ("60s", "500ms").
type Config struct {
	Provider          string   `yaml:"provider,omitempty" toml:"provider,omitempty"`
	Model             string   `yaml:"model,omitempty" toml:"model,omitempty"`
	FallbackModel     string   `yaml:"fallback_model,omitempty" toml:"fallback_model,omitempty"`
	MaxTokens         int      `yaml:"max_tokens,omitempty" toml:"max_tokens,omitempty"`
	Temperature       *float64 `yaml:"temperature,omitempty" toml:"temperature,omitempty"`
	Timeout           string   `yaml:"timeout,omitempty" toml:"timeout,omitempty"`
	MaxRetries        *int     `yaml:"max_retries,omitempty" toml:"max_retries,omitempty"`
	RateLimitCooldown string   `yaml:"rate_limit_cooldown,omitempty" toml:"rate_limit_cooldown,omitempty"`
	CacheTTL          string   `yaml:"cache_ttl,omitempty" toml:"cache_ttl,omitempty"`
	NoCache           bool     `yaml:"no_cache,omitempty" toml:"no_cache,omitempty"`
	BatchDelay        string   `yaml:"batch_delay,omitempty" toml:"batch_delay,omitempty"`
	Format            string   `yaml:"format,omitempty" toml:"format,omitempty"`
	Language          string   `yaml:"language,omitempty" toml:"language,omitempty"`
}

// NoFallback is the fallback_model value that disables model fallback.
const NoFallback = "none"

// Settings is the fully resolved configuration used by the commands.
type Settings struct {
	Provider          string
	Model             string
	FallbackModel     string
	MaxTokens         int
	Temperature       float64
	Timeout           time.Duration
	MaxRetries        int
	RateLimitCooldown time.Duration
	CacheTTL          time.Duration
	NoCache           bool
	BatchDelay        time.Duration
	Format            string
	Language          string
}

// Defaults returns the built-in settings. Only an API key is needed on top
// of these.
func Defaults() Settings {
	model, fallback := llm.DefaultModels(llm.ProviderGroq)
	return Settings{
		Provider:          llm.ProviderGroq,
		Model:             model,
		FallbackModel:     fallback,
		MaxTokens:         4096,
		Temperature:       0.1,
		Timeout:           60 * time.Second,
		MaxRetries:        3,
		RateLimitCooldown: 2 * time.Second,
		CacheTTL:          60 * time.Minute,
		BatchDelay:        500 * time.Millisecond,
		Format:            "rich",
	}
}

// ClientConfig returns the completion client configuration.
func (s Settings) ClientConfig() llm.Config {
	return llm.Config{
		Model:             s.Model,
		FallbackModel:     s.FallbackModel,
		MaxTokens:         s.MaxTokens,
		Temperature:       s.Temperature,
		RateLimitCooldown: s.RateLimitCooldown,
	}
}

// ProviderOptions returns the options for llm.NewProvider.
func (s Settings) ProviderOptions() []llm.Option {
	return []llm.Option{
		llm.WithModel(s.Model),
		llm.WithMaxRetries(s.MaxRetries),
		llm.WithTimeout(s.Timeout),
	}
}

// Config converts s back to its file representation, for display.
func (s Settings) Config() *Config {
	temp := s.Temperature
	retries := s.MaxRetries
	fallback := s.FallbackModel
	if fallback == "" {
		fallback = NoFallback
	}
	return &Config{
		Provider:          s.Provider,
		Model:             s.Model,
		FallbackModel:     fallback,
		MaxTokens:         s.MaxTokens,
		Temperature:       &temp,
		Timeout:           s.Timeout.String(),
		MaxRetries:        &retries,
		RateLimitCooldown: s.RateLimitCooldown.String(),
		CacheTTL:          s.CacheTTL.String(),
		NoCache:           s.NoCache,
		BatchDelay:        s.BatchDelay.String(),
		Format:            s.Format,
		Language:          s.Language,
	}
}
