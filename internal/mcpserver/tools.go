package mcpserver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/davetashner/bigo/internal/lang"
	"github.com/davetashner/bigo/internal/model"
	"github.com/davetashner/bigo/internal/output"
	"github.com/davetashner/bigo/internal/redact"
)

// Analyzer is the subset of *analyzer.Analyzer the tools call.
type Analyzer interface {
	Analyze(ctx context.Context, code string, opts model.AnalysisOptions) (*model.Result, error)
	AnalyzeQuick(ctx context.Context, code string) (*model.Result, error)
	Compare(ctx context.Context, codeA, codeB string) (model.Comparison, error)
	ExtractFunctions(ctx context.Context, code string) (*model.FunctionListing, error)
	ReadFile(path string) (string, error)
}

// AnalyzeInput is the input schema for the analyze MCP tool.
type AnalyzeInput struct {
	Code        string `json:"code,omitempty" jsonschema:"Source code to analyze. Either code or path is required."`
	Path        string `json:"path,omitempty" jsonschema:"Path of a source file to analyze instead of inline code"`
	Language    string `json:"language,omitempty" jsonschema:"Language hint (detected from the file extension when a path is given)"`
	Format      string `json:"format,omitempty" jsonschema:"Output format: json, markdown or table (default: json)"`
	Functions   *bool  `json:"functions,omitempty" jsonschema:"Include per-function analysis (default: true)"`
	Suggestions *bool  `json:"suggestions,omitempty" jsonschema:"Include optimization suggestions (default: true)"`
	BestWorst   bool   `json:"best_worst,omitempty" jsonschema:"Include best, average and worst case complexity per function"`
}

// QuickInput is the input schema for the analyze_quick MCP tool.
type QuickInput struct {
	Code   string `json:"code,omitempty" jsonschema:"Source code to analyze. Either code or path is required."`
	Path   string `json:"path,omitempty" jsonschema:"Path of a source file to analyze instead of inline code"`
	Format string `json:"format,omitempty" jsonschema:"Output format: json, markdown or table (default: json)"`
}

// CompareInput is the input schema for the compare MCP tool.
type CompareInput struct {
	CodeA  string `json:"code_a,omitempty" jsonschema:"First snippet. Either code_a or path_a is required."`
	PathA  string `json:"path_a,omitempty" jsonschema:"Path of the first source file"`
	CodeB  string `json:"code_b,omitempty" jsonschema:"Second snippet. Either code_b or path_b is required."`
	PathB  string `json:"path_b,omitempty" jsonschema:"Path of the second source file"`
	Format string `json:"format,omitempty" jsonschema:"Output format: json, markdown or table (default: json)"`
}

// FunctionsInput is the input schema for the extract_functions MCP tool.
type FunctionsInput struct {
	Code   string `json:"code,omitempty" jsonschema:"Source code to inspect. Either code or path is required."`
	Path   string `json:"path,omitempty" jsonschema:"Path of a source file to inspect instead of inline code"`
	Format string `json:"format,omitempty" jsonschema:"Output format: json, markdown or table (default: json)"`
}

// boolPtr returns a pointer to a bool.
func boolPtr(b bool) *bool { return &b }

// registerTools adds all bigo tools to the MCP server.
func registerTools(server *mcp.Server, a Analyzer) {
	h := &handlers{a: a}
	annotations := &mcp.ToolAnnotations{
		ReadOnlyHint:    true,
		DestructiveHint: boolPtr(false),
		OpenWorldHint:   boolPtr(true),
	}

	mcp.AddTool(server, &mcp.Tool{
		Name:        "analyze",
		Description: "Estimate the time and space complexity (Big-O) of a code snippet or source file, with per-function breakdown and optimization suggestions.",
		Annotations: annotations,
	}, h.analyze)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "analyze_quick",
		Description: "Quickly estimate the overall time and space complexity of a code snippet or source file.",
		Annotations: annotations,
	}, h.analyzeQuick)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "compare",
		Description: "Compare the complexity of two snippets and report which one is more efficient.",
		Annotations: annotations,
	}, h.compare)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "extract_functions",
		Description: "List the functions defined in a snippet or source file with their line ranges.",
		Annotations: annotations,
	}, h.extractFunctions)
}

type handlers struct {
	a Analyzer
}

func (h *handlers) analyze(ctx context.Context, _ *mcp.CallToolRequest, input AnalyzeInput) (*mcp.CallToolResult, any, error) {
	f, err := formatter(input.Format)
	if err != nil {
		return nil, nil, err
	}
	code, label, err := source(h.a, input.Code, input.Path, "analyze")
	if err != nil {
		return nil, nil, toolError(err)
	}

	opts := model.DefaultOptions()
	if input.Functions != nil {
		opts.AnalyzeFunctions = *input.Functions
	}
	if input.Suggestions != nil {
		opts.IncludeSuggestions = *input.Suggestions
	}
	opts.IncludeBestWorstCase = input.BestWorst
	opts.LanguageHint = input.Language
	if opts.LanguageHint == "" && label != "" {
		opts.LanguageHint = lang.Detect(label)
	}

	r, err := h.a.Analyze(ctx, code, opts)
	if err != nil {
		return nil, nil, toolError(err)
	}
	return render(func(buf *bytes.Buffer) error { return f.Format(r, buf) })
}

func (h *handlers) analyzeQuick(ctx context.Context, _ *mcp.CallToolRequest, input QuickInput) (*mcp.CallToolResult, any, error) {
	f, err := formatter(input.Format)
	if err != nil {
		return nil, nil, err
	}
	code, _, err := source(h.a, input.Code, input.Path, "analyze_quick")
	if err != nil {
		return nil, nil, toolError(err)
	}

	r, err := h.a.AnalyzeQuick(ctx, code)
	if err != nil {
		return nil, nil, toolError(err)
	}
	return render(func(buf *bytes.Buffer) error { return f.Format(r, buf) })
}

func (h *handlers) compare(ctx context.Context, _ *mcp.CallToolRequest, input CompareInput) (*mcp.CallToolResult, any, error) {
	f, err := formatter(input.Format)
	if err != nil {
		return nil, nil, err
	}
	codeA, labelA, err := source(h.a, input.CodeA, input.PathA, "a")
	if err != nil {
		return nil, nil, toolError(err)
	}
	codeB, labelB, err := source(h.a, input.CodeB, input.PathB, "b")
	if err != nil {
		return nil, nil, toolError(err)
	}

	c, err := h.a.Compare(ctx, codeA, codeB)
	if err != nil {
		return nil, nil, toolError(err)
	}
	return render(func(buf *bytes.Buffer) error { return f.FormatComparison(c, labelA, labelB, buf) })
}

func (h *handlers) extractFunctions(ctx context.Context, _ *mcp.CallToolRequest, input FunctionsInput) (*mcp.CallToolResult, any, error) {
	f, err := formatter(input.Format)
	if err != nil {
		return nil, nil, err
	}
	code, _, err := source(h.a, input.Code, input.Path, "extract_functions")
	if err != nil {
		return nil, nil, toolError(err)
	}

	l, err := h.a.ExtractFunctions(ctx, code)
	if err != nil {
		return nil, nil, toolError(err)
	}
	return render(func(buf *bytes.Buffer) error { return output.WriteListing(f, l, buf) })
}

// formatter resolves a tool's output format. MCP clients never get ANSI
// color, so "rich" is served as "table".
func formatter(name string) (output.Formatter, error) {
	if name == "" {
		name = "json"
	}
	f, err := output.Resolve(name, false)
	if err != nil {
		return nil, fmt.Errorf("unsupported format %q", name)
	}
	return f, nil
}

func render(write func(buf *bytes.Buffer) error) (*mcp.CallToolResult, any, error) {
	var buf bytes.Buffer
	if err := write(&buf); err != nil {
		return nil, nil, fmt.Errorf("formatting failed: %w", err)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: buf.String()},
		},
	}, nil, nil
}

// toolError strips secrets from an error before it reaches the client.
func toolError(err error) error {
	slog.Debug("tool call failed", "error", err)
	return errors.New(redact.String(err.Error()))
}
