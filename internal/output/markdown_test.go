package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davetashner/bigo/internal/model"
)

func TestMarkdownFormatterName(t *testing.T) {
	assert.Equal(t, "markdown", NewMarkdownFormatter().Name())
}

func TestMarkdownFormatter_Format(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewMarkdownFormatter().Format(sampleResult(), &buf))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "# Code Complexity Analysis\n\n## Overview\n\n| Metric | Value |\n"))
	assert.Contains(t, out, "| **Language** | Python |")
	assert.Contains(t, out, "| **Time Complexity** | `O(n²)` |")
	assert.Contains(t, out, "| **Space Complexity** | `O(1)` |")
	assert.Contains(t, out, "| **Confidence** | 90% |")
	assert.Contains(t, out, "## Summary\n\nNested loops over the input list.\n")
	assert.Contains(t, out, "## Detailed Analysis\n\n")
	assert.Contains(t, out, "| `bubble_sort` | `O(n²)` | `O(1)` |")
	assert.Contains(t, out, "### `bubble_sort`\n\nCompares adjacent pairs.\n")
	assert.Contains(t, out, "- **Best case:** `O(n)`")
	assert.Contains(t, out, "**Variables:**\n- `arr`: input list\n- `n`: length of arr\n")
	assert.NotContains(t, out, "### `helper`")
	assert.Contains(t, out, "## Optimization Suggestions\n\n1. Use the built-in sort.\n2. Stop early when no swaps occur.\n")
}

func TestMarkdownFormatter_MinimalResult(t *testing.T) {
	var buf bytes.Buffer
	r := &model.Result{Language: "Go", OverallTimeComplexity: "O(1)", OverallSpaceComplexity: "O(1)", Summary: "s", ConfidenceScore: 0.5}
	require.NoError(t, NewMarkdownFormatter().Format(r, &buf))
	out := buf.String()

	assert.Contains(t, out, "| **Confidence** | 50% |")
	assert.NotContains(t, out, "## Detailed Analysis")
	assert.NotContains(t, out, "## Function Analysis")
	assert.NotContains(t, out, "## Optimization Suggestions")
}

func TestMarkdownFormatter_EscapesPipes(t *testing.T) {
	var buf bytes.Buffer
	r := &model.Result{Language: "a|b", OverallTimeComplexity: "O(|V|)"}
	require.NoError(t, NewMarkdownFormatter().Format(r, &buf))
	assert.Contains(t, buf.String(), `| **Language** | a\|b |`)
	assert.Contains(t, buf.String(), "`O(\\|V\\|)`")
}

func TestMarkdownFormatter_Comparison(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewMarkdownFormatter().FormatComparison(sampleComparison(), "a.py", "", &buf))
	out := buf.String()

	assert.Contains(t, out, "# Complexity Comparison")
	assert.Contains(t, out, "| **A** (`a.py`) | `O(n)` | `O(1)` |")
	assert.Contains(t, out, "| **B** | `O(n²)` | `O(1)` |")
	assert.Contains(t, out, "**Winner:** A")
	assert.Contains(t, out, "## Comparison\n\nA makes a single pass.")
	assert.Contains(t, out, "## Recommendation\n\nPrefer A.")
}

func TestMarkdownFormatter_ComparisonMissingFields(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewMarkdownFormatter().FormatComparison(model.Comparison{}, "", "", &buf))
	out := buf.String()
	assert.Contains(t, out, "| **A** | `?` | `?` |")
	assert.NotContains(t, out, "Winner")
}

func TestMarkdownFormatter_Batch(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewMarkdownFormatter().FormatBatch(sampleBatch(), &buf))
	out := buf.String()

	assert.Contains(t, out, "**Analyzed:** 2 | **Failed:** 1")
	assert.Contains(t, out, "## a.py\n\n| Metric | Value |")
	assert.Contains(t, out, "## b.py\n\n**Error** (`APIError`): boom")
	assert.Contains(t, out, "## item 3")
}

func TestMarkdownFormatter_Listing(t *testing.T) {
	var buf bytes.Buffer
	l := &model.FunctionListing{Language: "Go", Functions: []model.ExtractedFunction{{Name: "main", LineStart: 1, LineEnd: 4}}}
	require.NoError(t, NewMarkdownFormatter().FormatListing(l, &buf))
	assert.Contains(t, buf.String(), "| `main` | 1-4 |")

	buf.Reset()
	require.NoError(t, NewMarkdownFormatter().FormatListing(&model.FunctionListing{}, &buf))
	assert.Contains(t, buf.String(), "No functions found.")
}
