package config

import (
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestMerge_LaterLayerWins(t *testing.T) {
	global := &Config{Provider: "anthropic", Format: "markdown", MaxTokens: 100, Temperature: ptr(0.5)}
	project := &Config{Format: "json", MaxRetries: ptr(1)}
	flags := &Config{Format: "table", NoCache: true}

	got := Merge(global, project, flags)
	assert.Equal(t, "anthropic", got.Provider)
	assert.Equal(t, "table", got.Format)
	assert.Equal(t, 100, got.MaxTokens)
	assert.InDelta(t, 0.5, *got.Temperature, 1e-9)
	assert.Equal(t, 1, *got.MaxRetries)
	assert.True(t, got.NoCache)
}

func TestMerge_ZeroValuesFallThrough(t *testing.T) {
	got := Merge(&Config{Model: "m", CacheTTL: "5m"}, &Config{}, nil)
	assert.Equal(t, "m", got.Model)
	assert.Equal(t, "5m", got.CacheTTL)
}

func TestMerge_ExplicitZeroPointerOverrides(t *testing.T) {
	got := Merge(&Config{Temperature: ptr(0.7)}, &Config{Temperature: ptr(0.0)})
	require.NotNil(t, got.Temperature)
	assert.Zero(t, *got.Temperature)
}

func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String(FlagProvider, "groq", "")
	fs.String(FlagModel, "", "")
	fs.String(FlagFormat, "rich", "")
	fs.Int(FlagMaxTokens, 4096, "")
	fs.Float64(FlagTemperature, 0.1, "")
	fs.Int(FlagMaxRetries, 3, "")
	fs.Duration(FlagTimeout, time.Minute, "")
	fs.Bool(FlagNoCache, false, "")
	return fs
}

func TestFromFlags_OnlyChanged(t *testing.T) {
	fs := newFlagSet()
	require.NoError(t, fs.Parse([]string{"--format", "json", "--timeout", "30s", "--temperature", "0", "--no-cache"}))

	cfg, err := FromFlags(fs)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, "30s", cfg.Timeout)
	require.NotNil(t, cfg.Temperature)
	assert.Zero(t, *cfg.Temperature)
	assert.True(t, cfg.NoCache)

	assert.Empty(t, cfg.Provider, "unchanged flag defaults must not leak")
	assert.Zero(t, cfg.MaxTokens)
	assert.Nil(t, cfg.MaxRetries)
}

func TestFromFlags_UnregisteredFlagsIgnored(t *testing.T) {
	fs := pflag.NewFlagSet("bare", pflag.ContinueOnError)
	cfg, err := FromFlags(fs)
	require.NoError(t, err)
	assert.Equal(t, &Config{}, cfg)
}

func TestResolve_Defaults(t *testing.T) {
	s, err := Resolve(&Config{})
	require.NoError(t, err)
	assert.Equal(t, Defaults(), s)
}

func TestResolve_ProviderDefaultsModels(t *testing.T) {
	s, err := Resolve(&Config{Provider: "Anthropic"})
	require.NoError(t, err)
	assert.Equal(t, "anthropic", s.Provider)
	assert.Equal(t, "claude-sonnet-4-5-20250929", s.Model)
	assert.Equal(t, "claude-haiku-4-5", s.FallbackModel)
}

func TestResolve_Overrides(t *testing.T) {
	s, err := Resolve(&Config{
		Model:             "custom",
		FallbackModel:     "NONE",
		MaxTokens:         1000,
		Temperature:       ptr(0.0),
		Timeout:           "15s",
		MaxRetries:        ptr(0),
		RateLimitCooldown: "0s",
		CacheTTL:          "5m",
		NoCache:           true,
		BatchDelay:        "0s",
		Format:            "JSON",
		Language:          "Rust",
	})
	require.NoError(t, err)
	assert.Equal(t, "custom", s.Model)
	assert.Empty(t, s.FallbackModel)
	assert.Equal(t, 1000, s.MaxTokens)
	assert.Zero(t, s.Temperature)
	assert.Equal(t, 15*time.Second, s.Timeout)
	assert.Zero(t, s.MaxRetries)
	assert.Zero(t, s.RateLimitCooldown)
	assert.Equal(t, 5*time.Minute, s.CacheTTL)
	assert.True(t, s.NoCache)
	assert.Zero(t, s.BatchDelay)
	assert.Equal(t, "json", s.Format)
	assert.Equal(t, "Rust", s.Language)
}

func TestResolve_InvalidConfig(t *testing.T) {
	_, err := Resolve(&Config{Provider: "openai"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "provider")
}
