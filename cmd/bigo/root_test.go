package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootHelp(t *testing.T) {
	cmd, stdout, _ := newTestCmd(t)
	cmd.SetArgs([]string{"--help"})
	require.NoError(t, cmd.Execute())

	out := stdout.String()
	assert.Contains(t, out, "Big-O time and space")
	for _, sub := range []string{"analyze", "compare", "batch", "functions", "interactive", "mcp", "config", "version"} {
		assert.Contains(t, out, sub)
	}
}

func TestGlobalFlags(t *testing.T) {
	for _, name := range []string{"verbose", "quiet", "no-color", "api-key", "provider", "model", "fallback-model", "max-tokens", "temperature", "timeout", "max-retries", "no-cache"} {
		t.Run(name, func(t *testing.T) {
			assert.NotNil(t, rootCmd.PersistentFlags().Lookup(name), "global flag --%s not registered", name)
		})
	}

	v := rootCmd.PersistentFlags().ShorthandLookup("v")
	require.NotNil(t, v)
	assert.Equal(t, "verbose", v.Name)
	q := rootCmd.PersistentFlags().ShorthandLookup("q")
	require.NotNil(t, q)
	assert.Equal(t, "quiet", q.Name)
}

func TestVersionDefault(t *testing.T) {
	assert.Equal(t, "dev", Version)
}

func TestVersionSubcommand(t *testing.T) {
	cmd, stdout, _ := newTestCmd(t)
	cmd.SetArgs([]string{"version"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, "bigo dev", strings.TrimSpace(stdout.String()))
}
