package main

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/davetashner/bigo/internal/config"
	"github.com/davetashner/bigo/internal/lang"
	"github.com/davetashner/bigo/internal/model"
)

// Analyze-specific flag values.
var (
	analyzeCode          string
	analyzeQuick         bool
	analyzeNoFunctions   bool
	analyzeNoSuggestions bool
	analyzeBestWorst     bool
	analyzeOutput        string
)

// analyzeCmd estimates the complexity of a file or inline snippet.
var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Estimate the time and space complexity of code",
	Long: `Estimate the Big-O time and space complexity of a source file or an
inline snippet given with --code.

The language is detected from the file extension unless --language is set.`,
	Example: `  bigo analyze solution.py
  bigo analyze -c "for i in range(n): print(i)"
  bigo analyze sort.cpp -f json -o sort.json
  bigo analyze --quick --no-suggestions main.go`,
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	f := analyzeCmd.Flags()
	f.StringVarP(&analyzeCode, "code", "c", "", "code to analyze instead of a file")
	f.StringP(config.FlagLanguage, "l", "", "language of the code (default: detected)")
	f.BoolVar(&analyzeQuick, "quick", false, "quick analysis: overall complexity only")
	f.BoolVar(&analyzeNoFunctions, "no-functions", false, "skip per-function analysis")
	f.BoolVar(&analyzeNoSuggestions, "no-suggestions", false, "skip optimization suggestions")
	f.BoolVar(&analyzeBestWorst, "best-worst", false, "include best, average and worst case per function")
	addFormatFlags(analyzeCmd, &analyzeOutput)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	code, path, err := sourceInput(args, analyzeCode)
	if err != nil {
		return err
	}

	s, f, a, err := setup(cmd, analyzeOutput)
	if err != nil {
		return err
	}
	defer a.Close() //nolint:errcheck // best-effort close
	defer logUsage(a)

	opts := model.DefaultOptions()
	opts.AnalyzeFunctions = !analyzeNoFunctions
	opts.IncludeSuggestions = !analyzeNoSuggestions
	opts.IncludeBestWorstCase = analyzeBestWorst
	opts.DetailedMode = verbose || !analyzeQuick
	opts.LanguageHint = s.Language

	ctx := cmd.Context()
	var r *model.Result
	switch {
	case path != "" && analyzeQuick:
		printFileInfo(cmd, path)
		slog.Info("analyzing", "file", filepath.Base(path), "mode", "quick")
		if code, err = a.ReadFile(path); err != nil {
			return fail(err)
		}
		r, err = a.AnalyzeQuick(ctx, code)
	case path != "":
		printFileInfo(cmd, path)
		slog.Info("analyzing", "file", filepath.Base(path))
		r, err = a.AnalyzeFile(ctx, path, opts)
	case analyzeQuick:
		r, err = a.AnalyzeQuick(ctx, code)
	default:
		r, err = a.Analyze(ctx, code, opts)
	}
	if err != nil {
		return fail(err)
	}

	return writeOutput(cmd, analyzeOutput, func(w io.Writer) error {
		return f.Format(r, w)
	})
}

// sourceInput picks the positional file argument or the inline code flag.
// Exactly one must be given.
func sourceInput(args []string, code string) (text, path string, err error) {
	hasCode := strings.TrimSpace(code) != ""
	switch {
	case len(args) > 0 && hasCode:
		return "", "", exitError(ExitError, "bigo: give either a file or --code, not both")
	case len(args) > 0:
		return "", args[0], nil
	case hasCode:
		return code, "", nil
	default:
		return "", "", exitError(ExitError, "bigo: no input: give a file or --code (or run 'bigo interactive')")
	}
}

// printFileInfo describes path on stderr in verbose mode.
func printFileInfo(cmd *cobra.Command, path string) {
	if !verbose {
		return
	}
	info, err := lang.Info(cmdFS, path)
	if err != nil {
		slog.Debug("file info unavailable", "path", path, "error", err)
		return
	}
	language := info.Language
	if language == "" {
		language = "unknown language"
	}
	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s, %d lines (%d code), %d bytes\n",
		info.Name, language, info.TotalLines, info.CodeLines, info.SizeBytes)
}
