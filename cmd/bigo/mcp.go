// Copyright 2026 The Bigo Authors
// SPDX-License-Identifier: MIT

package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/davetashner/bigo/internal/mcpserver"
)

// mcpCmd is the parent command for MCP-related subcommands.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Model Context Protocol server commands",
	Long:  "Commands for running bigo as an MCP server, exposing complexity analysis tools to AI agents.",
}

// mcpServeCmd runs the MCP server over stdio.
var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server over stdio",
	Long: `Start an MCP server on stdin/stdout, exposing bigo's tools:
  - analyze:           Full complexity analysis of a snippet or file
  - analyze_quick:     Overall time and space complexity only
  - compare:           Which of two snippets is more efficient
  - extract_functions: Functions defined in a snippet or file

The server communicates using the Model Context Protocol (MCP) over stdio
transport, enabling AI agents to call bigo tools directly. Logs go to stderr.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		s, err := loadSettings(cmd)
		if err != nil {
			return err
		}
		a, err := newAnalyzer(s)
		if err != nil {
			return fail(err)
		}
		defer a.Close() //nolint:errcheck // best-effort close
		return mcpserver.Run(cmd.Context(), Version, a, &mcp.StdioTransport{})
	},
}

func init() {
	mcpCmd.AddCommand(mcpServeCmd)
}
