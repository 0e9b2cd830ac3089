package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/davetashner/bigo/internal/output"
)

var (
	functionsCode   string
	functionsOutput string
)

// functionsCmd lists the functions defined in a file or snippet.
var functionsCmd = &cobra.Command{
	Use:   "functions [file]",
	Short: "List the functions defined in code",
	Long:  "Ask the model to list the functions defined in a source file or inline snippet, with their line ranges.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runFunctions,
}

func init() {
	functionsCmd.Flags().StringVarP(&functionsCode, "code", "c", "", "code to inspect instead of a file")
	addFormatFlags(functionsCmd, &functionsOutput)
}

func runFunctions(cmd *cobra.Command, args []string) error {
	code, path, err := sourceInput(args, functionsCode)
	if err != nil {
		return err
	}

	_, f, a, err := setup(cmd, functionsOutput)
	if err != nil {
		return err
	}
	defer a.Close() //nolint:errcheck // best-effort close
	defer logUsage(a)

	if path != "" {
		printFileInfo(cmd, path)
		if code, err = a.ReadFile(path); err != nil {
			return fail(err)
		}
	}

	l, err := a.ExtractFunctions(cmd.Context(), code)
	if err != nil {
		return fail(err)
	}
	return writeOutput(cmd, functionsOutput, func(w io.Writer) error {
		return output.WriteListing(f, l, w)
	})
}
