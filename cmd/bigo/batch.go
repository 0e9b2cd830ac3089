// Copyright 2026 The Bigo Authors
// SPDX-License-Identifier: MIT

package main

import (
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/davetashner/bigo/internal/analyzer"
	"github.com/davetashner/bigo/internal/config"
	"github.com/davetashner/bigo/internal/gitchanges"
	"github.com/davetashner/bigo/internal/model"
	"github.com/davetashner/bigo/internal/output"
)

// Batch-specific flag values.
var (
	batchChanged       bool
	batchUntracked     bool
	batchStrict        bool
	batchNoFunctions   bool
	batchNoSuggestions bool
	batchOutput        string
)

// batchCmd analyzes several files one after another.
var batchCmd = &cobra.Command{
	Use:   "batch [file...]",
	Short: "Analyze several files in sequence",
	Long: `Analyze several files one after another, pausing between requests to
respect provider rate limits. A failing file is reported in place and does
not stop the batch.

With --changed, the files modified in the current git working tree are
analyzed (deleted files and files of unknown language are skipped).`,
	Example: `  bigo batch a.py b.go c.rs
  bigo batch --changed --strict -f markdown -o complexity.md`,
	RunE: runBatch,
}

func init() {
	f := batchCmd.Flags()
	f.BoolVar(&batchChanged, "changed", false, "analyze files changed in the git working tree")
	f.BoolVar(&batchUntracked, "untracked", false, "with --changed, include untracked files")
	f.BoolVar(&batchStrict, "strict", false, "exit with code 2 when any item fails")
	f.BoolVar(&batchNoFunctions, "no-functions", false, "skip per-function analysis")
	f.BoolVar(&batchNoSuggestions, "no-suggestions", false, "skip optimization suggestions")
	f.Duration(config.FlagBatchDelay, 0, "pause between items (default 500ms)")
	addFormatFlags(batchCmd, &batchOutput)
}

func runBatch(cmd *cobra.Command, args []string) error {
	paths, err := batchPaths(args)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		if batchChanged {
			_, _ = io.WriteString(cmd.ErrOrStderr(), "No changed files to analyze.\n")
			return nil
		}
		return exitError(ExitError, "bigo: no input: give files or --changed")
	}

	_, f, a, err := setup(cmd, batchOutput)
	if err != nil {
		return err
	}
	defer a.Close() //nolint:errcheck // best-effort close
	defer logUsage(a)

	opts := model.DefaultOptions()
	opts.AnalyzeFunctions = !batchNoFunctions
	opts.IncludeSuggestions = !batchNoSuggestions

	snippets := make([]analyzer.Snippet, len(paths))
	for i, p := range paths {
		snippets[i] = analyzer.Snippet{Path: p, Source: displayPath(p)}
	}

	slog.Info("batch started", "items", len(snippets))
	items, err := a.AnalyzeBatch(cmd.Context(), snippets, opts)
	if err != nil {
		return err
	}

	if err := writeOutput(cmd, batchOutput, func(w io.Writer) error {
		return output.WriteBatch(f, items, w)
	}); err != nil {
		return err
	}

	ok, failed := output.BatchCounts(items)
	slog.Info("batch complete", "analyzed", ok, "failed", failed)
	switch {
	case failed > 0 && ok == 0:
		return exitError(ExitError, "bigo: all %d items failed", failed)
	case failed > 0 && batchStrict:
		return exitError(ExitPartialFailure, "bigo: %d of %d items failed", failed, len(items))
	}
	return nil
}

// batchPaths combines the file arguments with the changed files when
// --changed is set, dropping duplicates.
func batchPaths(args []string) ([]string, error) {
	paths := append([]string(nil), args...)
	if batchChanged {
		changed, err := gitchanges.ChangedFiles(cmdGit, workDir, gitchanges.Options{
			IncludeUntracked:   batchUntracked,
			KnownLanguagesOnly: true,
		})
		if err != nil {
			return nil, fail(err)
		}
		slog.Debug("changed files", "count", len(changed))
		paths = append(paths, changed...)
	}

	seen := make(map[string]bool, len(paths))
	out := paths[:0]
	for _, p := range paths {
		key := p
		if abs, err := cmdFS.Abs(p); err == nil {
			key = abs
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, p)
	}
	return out, nil
}

// displayPath shortens absolute paths under the working directory.
func displayPath(p string) string {
	if !filepath.IsAbs(p) {
		return p
	}
	base, err := cmdFS.Abs(workDir)
	if err != nil {
		return p
	}
	rel, err := filepath.Rel(base, p)
	if err != nil || strings.HasPrefix(rel, "..") {
		return p
	}
	return rel
}
