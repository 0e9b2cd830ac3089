// Copyright 2026 The Bigo Authors
// SPDX-License-Identifier: MIT

package main

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/davetashner/bigo/internal/analyzer"
	"github.com/davetashner/bigo/internal/cache"
	"github.com/davetashner/bigo/internal/config"
	"github.com/davetashner/bigo/internal/llm"
	"github.com/davetashner/bigo/internal/output"
)

// newAnalyzer builds the analyzer for resolved settings. Tests replace it to
// inject a mock provider.
var newAnalyzer = func(s config.Settings) (*analyzer.Analyzer, error) {
	opts := s.ProviderOptions()
	if apiKey != "" {
		opts = append(opts, llm.WithAPIKey(apiKey))
	}
	provider, err := llm.NewProvider(s.Provider, opts...)
	if err != nil {
		return nil, err
	}

	aopts := []analyzer.Option{
		analyzer.WithBatchDelay(s.BatchDelay),
		analyzer.WithFileSystem(cmdFS),
	}
	if s.NoCache {
		aopts = append(aopts, analyzer.WithoutCache())
	} else {
		aopts = append(aopts, analyzer.WithCache(cache.New(s.CacheTTL)))
	}
	return analyzer.New(llm.NewClient(provider, s.ClientConfig()), aopts...), nil
}

// addFormatFlags registers -f/--format and -o/--output on cmd.
func addFormatFlags(cmd *cobra.Command, outputPath *string) {
	cmd.Flags().StringP(config.FlagFormat, "f", "", "output format: "+formatList()+" (default rich)")
	cmd.Flags().StringVarP(outputPath, "output", "o", "", "write output to a file instead of stdout")
}

func formatList() string {
	return strings.Join(output.Names(), ", ")
}

// loadSettings layers built-in defaults, the global config, the project
// config and the flags the user set on cmd.
func loadSettings(cmd *cobra.Command) (config.Settings, error) {
	fileCfg, src, err := config.LoadAll(workDir)
	if err != nil {
		return config.Settings{}, fail(err)
	}
	flagCfg, err := config.FromFlags(cmd.Flags())
	if err != nil {
		return config.Settings{}, fail(err)
	}
	s, err := config.Resolve(config.Merge(fileCfg, flagCfg))
	if err != nil {
		return config.Settings{}, exitError(ExitError, "bigo: invalid configuration: %v", err)
	}
	slog.Debug("settings resolved",
		"global", src.Global, "project", src.Project,
		"provider", s.Provider, "model", s.Model, "fallback", s.FallbackModel)
	return s, nil
}

// setup resolves settings, the output format and the analyzer for a command.
// The caller must Close the analyzer.
func setup(cmd *cobra.Command, outputPath string) (config.Settings, output.Formatter, *analyzer.Analyzer, error) {
	s, err := loadSettings(cmd)
	if err != nil {
		return s, nil, nil, err
	}
	f, err := output.Resolve(s.Format, !color.NoColor && outputPath == "")
	if err != nil {
		return s, nil, nil, fail(err)
	}
	a, err := newAnalyzer(s)
	if err != nil {
		return s, nil, nil, fail(err)
	}
	return s, f, a, nil
}

// writeOutput renders with write and sends the result to path, or to the
// command's stdout when path is empty.
func writeOutput(cmd *cobra.Command, path string, write func(w io.Writer) error) error {
	if path == "" {
		if err := write(cmd.OutOrStdout()); err != nil {
			return exitError(ExitError, "bigo: formatting failed (%v)", err)
		}
		return nil
	}

	var buf bytes.Buffer
	if err := write(&buf); err != nil {
		return exitError(ExitError, "bigo: formatting failed (%v)", err)
	}
	if err := cmdFS.WriteFile(path, buf.Bytes(), 0o644); err != nil { //nolint:gosec // report file, not a secret
		return exitError(ExitError, "bigo: cannot write output file %q (%v)", path, err)
	}
	if !quiet {
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Output written to %s\n", path)
	}
	return nil
}

// logUsage reports token usage at debug level once a command is done.
func logUsage(a *analyzer.Analyzer) {
	st := a.Stats()
	slog.Debug("usage",
		"requests", st.Requests, "tokens", st.TotalTokens,
		"cache_enabled", st.CacheEnabled, "cache_entries", st.CacheEntries)
}
