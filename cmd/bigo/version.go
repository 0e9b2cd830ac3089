package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// versionCmd prints the bigo version.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  "Print the version of the bigo binary.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "bigo %s\n", Version)
	},
}
