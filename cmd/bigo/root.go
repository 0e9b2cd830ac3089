package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/davetashner/bigo/internal/config"
	bigolog "github.com/davetashner/bigo/internal/log"
	"github.com/davetashner/bigo/internal/redact"
)

// Global flag values.
var (
	verbose bool
	quiet   bool
	noColor bool
	apiKey  string
)

// rootCmd is the base command for bigo.
var rootCmd = &cobra.Command{
	Use:   "bigo",
	Short: "Estimate the time and space complexity of code with an LLM",
	Long: `Bigo asks a large language model to estimate the Big-O time and space
complexity of source code in any language. It reports overall and
per-function complexity, explains its reasoning and suggests optimizations.

Set GROQ_API_KEY (or ANTHROPIC_API_KEY with --provider anthropic) before use.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		bigolog.Setup(verbose, quiet)
		if noColor {
			color.NoColor = true
		}
		if apiKey != "" {
			redact.Add(apiKey)
		}
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	pf.BoolVarP(&quiet, "quiet", "q", false, "suppress non-essential output")
	pf.BoolVar(&noColor, "no-color", false, "disable colored output")
	pf.StringVar(&apiKey, "api-key", "", "API key for the provider (default: from the provider's environment variable)")

	pf.String(config.FlagProvider, "", "LLM provider (anthropic, groq)")
	pf.String(config.FlagModel, "", "primary model (default: the provider's)")
	pf.String(config.FlagFallbackModel, "", `model tried when the primary fails ("none" disables fallback)`)
	pf.Int(config.FlagMaxTokens, 0, "maximum tokens per response (default 4096)")
	pf.Float64(config.FlagTemperature, 0, "sampling temperature, 0-2 (default 0.1)")
	pf.Duration(config.FlagTimeout, 0, "per-request timeout (default 60s)")
	pf.Int(config.FlagMaxRetries, 0, "attempts per request on transient errors (default 3)")
	pf.Bool(config.FlagNoCache, false, "disable the in-memory result cache")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(functionsCmd)
	rootCmd.AddCommand(interactiveCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}
