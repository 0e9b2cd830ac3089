package main

import (
	"io"
	"log/slog"

	"github.com/spf13/cobra"
)

var compareOutput string

// compareCmd asks which of two implementations is more efficient.
var compareCmd = &cobra.Command{
	Use:   "compare <file1> <file2>",
	Short: "Compare the complexity of two implementations",
	Long: `Compare the time and space complexity of two source files and report
which one is more efficient, with the model's reasoning and a recommendation.`,
	Example: `  bigo compare v1.py v2.py
  bigo compare old.go new.go -f json`,
	Args: cobra.ExactArgs(2),
	RunE: runCompare,
}

func init() {
	addFormatFlags(compareCmd, &compareOutput)
}

func runCompare(cmd *cobra.Command, args []string) error {
	_, f, a, err := setup(cmd, compareOutput)
	if err != nil {
		return err
	}
	defer a.Close() //nolint:errcheck // best-effort close
	defer logUsage(a)

	codeA, err := a.ReadFile(args[0])
	if err != nil {
		return fail(err)
	}
	codeB, err := a.ReadFile(args[1])
	if err != nil {
		return fail(err)
	}

	slog.Info("comparing", "a", args[0], "b", args[1])
	c, err := a.Compare(cmd.Context(), codeA, codeB)
	if err != nil {
		return fail(err)
	}

	return writeOutput(cmd, compareOutput, func(w io.Writer) error {
		return f.FormatComparison(c, args[0], args[1], w)
	})
}
