package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/davetashner/bigo/internal/analyzer"
	"github.com/davetashner/bigo/internal/config"
	"github.com/davetashner/bigo/internal/model"
	"github.com/davetashner/bigo/internal/output"
	"github.com/davetashner/bigo/internal/redact"
	"github.com/davetashner/bigo/internal/report"
)

// maxSnippetBytes bounds a single pasted line.
const maxSnippetBytes = 1 << 20

// interactiveCmd runs a read-analyze-print loop on stdin.
var interactiveCmd = &cobra.Command{
	Use:     "interactive",
	Aliases: []string{"repl"},
	Short:   "Analyze snippets typed or pasted at a prompt",
	Long: `Start an interactive session. Paste or type code, then enter an empty
line to analyze it. Type 'help' for commands and 'exit' or 'quit' to leave.`,
	Args: cobra.NoArgs,
	RunE: runInteractive,
}

func init() {
	interactiveCmd.Flags().StringP(config.FlagFormat, "f", "", "output format: "+formatList()+" (default rich)")
	interactiveCmd.Flags().StringP(config.FlagLanguage, "l", "", "language of the snippets (default: detected)")
}

func runInteractive(cmd *cobra.Command, _ []string) error {
	s, f, a, err := setup(cmd, "")
	if err != nil {
		return err
	}
	defer a.Close() //nolint:errcheck // best-effort close
	defer logUsage(a)

	opts := model.DefaultOptions()
	opts.LanguageHint = s.Language

	r := &repl{
		ctx:  cmd.Context(),
		out:  cmd.OutOrStdout(),
		errw: cmd.ErrOrStderr(),
		f:    f,
		a:    a,
		opts: opts,
	}
	printBanner(r.out, s)
	_, _ = fmt.Fprintln(r.out, "Interactive mode: enter code snippets for analysis.")
	_, _ = fmt.Fprintln(r.out, "Type 'exit' or 'quit' to leave, 'help' for commands.")
	return r.run(cmd.InOrStdin())
}

type repl struct {
	ctx  context.Context
	out  io.Writer
	errw io.Writer
	f    output.Formatter
	a    *analyzer.Analyzer
	opts model.AnalysisOptions
}

func (r *repl) run(in io.Reader) error {
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), maxSnippetBytes)

	var lines []string
	r.prompt()
	for sc.Scan() {
		line := sc.Text()
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "exit", "quit":
			_, _ = fmt.Fprintln(r.out, "Goodbye!")
			return nil
		case "help":
			printInteractiveHelp(r.out)
			continue
		}

		if line != "" {
			lines = append(lines, line)
			continue
		}
		if len(lines) == 0 {
			continue
		}
		if err := r.analyze(strings.Join(lines, "\n")); err != nil {
			return err
		}
		lines = nil
		r.prompt()
	}
	if err := sc.Err(); err != nil {
		return fail(err)
	}
	if len(lines) > 0 {
		return r.analyze(strings.Join(lines, "\n"))
	}
	return nil
}

func (r *repl) prompt() {
	_, _ = fmt.Fprintln(r.out, "\nEnter code (empty line to analyze):")
}

// analyze reports a failed snippet and carries on; only cancellation ends
// the session.
func (r *repl) analyze(code string) error {
	if strings.TrimSpace(code) == "" {
		return nil
	}
	_, _ = fmt.Fprintln(r.errw, "Analyzing...")
	res, err := r.a.Analyze(r.ctx, code, r.opts)
	if err != nil {
		if errors.Is(err, context.Canceled) || r.ctx.Err() != nil {
			return err
		}
		_, _ = fmt.Fprintf(r.errw, "%s %s\n", report.ColorError("Error:"), redact.String(err.Error()))
		return nil
	}
	_, _ = fmt.Fprintln(r.out)
	if err := r.f.Format(res, r.out); err != nil {
		return exitError(ExitError, "bigo: formatting failed (%v)", err)
	}
	return nil
}

func printBanner(w io.Writer, s config.Settings) {
	b := report.NewBox(report.DefaultBoxWidth)
	b.Line("")
	b.Title("CODE COMPLEXITY ANALYZER")
	b.Line("")
	b.Title("Analyze time & space complexity of any code")
	b.Title("Powered by " + s.Provider + " (" + s.Model + ")")
	b.Line("")
	_ = b.Render(w)
}

func printInteractiveHelp(w io.Writer) {
	_, _ = fmt.Fprint(w, `
Commands:
  exit, quit  Leave interactive mode
  help        Show this help

To analyze code:
  1. Paste or type your code
  2. Press Enter on an empty line to start the analysis

Snippets may span many lines and be in any language.
`)
}
