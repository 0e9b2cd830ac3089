// Copyright 2026 The Bigo Authors
// SPDX-License-Identifier: MIT

package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// New creates a new MCP server with bigo's tools registered against a.
func New(version string, a Analyzer) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "bigo",
		Title:   "bigo: LLM code complexity analysis",
		Version: version,
	}, nil)

	registerTools(server, a)
	return server
}

// Run creates an MCP server and runs it on the given transport.
// It blocks until the client disconnects or the context is cancelled.
func Run(ctx context.Context, version string, a Analyzer, transport mcp.Transport) error {
	server := New(version, a)
	return server.Run(ctx, transport)
}
