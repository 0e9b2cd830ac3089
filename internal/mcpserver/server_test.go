package mcpserver

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davetashner/bigo/internal/llm"
)

func connect(t *testing.T, ctx context.Context, server *mcp.Server) *mcp.ClientSession {
	t.Helper()
	serverTransport, clientTransport := mcp.NewInMemoryTransports()

	go func() {
		_ = server.Run(ctx, serverTransport)
	}()

	client := mcp.NewClient(&mcp.Implementation{
		Name:    "test-client",
		Version: "v1.0.0",
	}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = session.Close() })
	return session
}

func TestNew_ReturnsServer(t *testing.T) {
	server := New("v1.0.0-test", newTestAnalyzer(t, llm.NewMockProvider()))
	assert.NotNil(t, server)
}

func TestRun_WithInMemoryTransport(t *testing.T) {
	serverTransport, clientTransport := mcp.NewInMemoryTransports()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a := newTestAnalyzer(t, llm.NewMockProvider())
	errCh := make(chan error, 1)
	go func() {
		errCh <- Run(ctx, "v1.0.0-test", a, serverTransport)
	}()

	client := mcp.NewClient(&mcp.Implementation{
		Name:    "test-client",
		Version: "v1.0.0",
	}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	defer session.Close() //nolint:errcheck // best-effort close in test

	result, err := session.ListTools(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, result.Tools, 4)

	cancel()
}

func TestServer_ListsTools(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	session := connect(t, ctx, New("v1.0.0-test", newTestAnalyzer(t, llm.NewMockProvider())))

	result, err := session.ListTools(ctx, nil)
	require.NoError(t, err)
	require.Len(t, result.Tools, 4)

	names := make(map[string]bool)
	for _, tool := range result.Tools {
		names[tool.Name] = true
		require.NotNil(t, tool.Annotations, "tool %s should be annotated", tool.Name)
		assert.True(t, tool.Annotations.ReadOnlyHint, "tool %s should be read-only", tool.Name)
	}
	for _, want := range []string{"analyze", "analyze_quick", "compare", "extract_functions"} {
		assert.True(t, names[want], "should have %s tool", want)
	}
}

func TestServer_CallAnalyze(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := llm.NewMockProvider(llm.MockResponse{Content: linearJSON})
	session := connect(t, ctx, New("v1.0.0-test", newTestAnalyzer(t, m)))

	res, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "analyze",
		Arguments: map[string]any{"code": "def total(xs):\n    return sum(xs)\n"},
	})
	require.NoError(t, err)
	require.False(t, res.IsError)
	require.Len(t, res.Content, 1)
	assert.Contains(t, res.Content[0].(*mcp.TextContent).Text, `"overall_time_complexity": "O(n)"`)
}

func TestServer_CallWithoutInputIsToolError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	m := llm.NewMockProvider()
	session := connect(t, ctx, New("v1.0.0-test", newTestAnalyzer(t, m)))

	res, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "analyze_quick",
		Arguments: map[string]any{},
	})
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Empty(t, m.Calls())
}
