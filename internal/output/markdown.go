package output

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/davetashner/bigo/internal/model"
)

func init() {
	RegisterFormatter(NewMarkdownFormatter())
}

// MarkdownFormatter writes results as a Markdown report.
type MarkdownFormatter struct{}

// Compile-time interface checks.
var (
	_ BatchFormatter   = (*MarkdownFormatter)(nil)
	_ ListingFormatter = (*MarkdownFormatter)(nil)
)

// NewMarkdownFormatter returns a new MarkdownFormatter.
func NewMarkdownFormatter() *MarkdownFormatter {
	return &MarkdownFormatter{}
}

// Name returns the format name.
func (m *MarkdownFormatter) Name() string {
	return "markdown"
}

// Format writes r as a Markdown document.
//
// The output includes:
//   - An overview table (language, time, space, confidence)
//   - The summary and, when present, the detailed analysis
//   - A function table followed by per-function explanations
//   - A numbered list of optimization suggestions
func (m *MarkdownFormatter) Format(r *model.Result, w io.Writer) error {
	var b strings.Builder
	b.WriteString("# Code Complexity Analysis\n\n")
	b.WriteString("## Overview\n\n")
	writeOverview(&b, r)
	fmt.Fprintf(&b, "## Summary\n\n%s\n\n", r.Summary)

	if r.DetailedExplanation != "" {
		fmt.Fprintf(&b, "## Detailed Analysis\n\n%s\n\n", r.DetailedExplanation)
	}

	if len(r.Functions) > 0 {
		writeFunctionSection(&b, r.Functions)
	}

	if len(r.OptimizationSuggestions) > 0 {
		b.WriteString("## Optimization Suggestions\n\n")
		for i, s := range r.OptimizationSuggestions {
			fmt.Fprintf(&b, "%d. %s\n", i+1, s)
		}
		b.WriteString("\n")
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}
	return nil
}

// FormatComparison writes a side-by-side table, the verdict and the model's
// reasoning.
func (m *MarkdownFormatter) FormatComparison(c model.Comparison, labelA, labelB string, w io.Writer) error {
	var b strings.Builder
	b.WriteString("# Complexity Comparison\n\n")
	b.WriteString("| Code | Time | Space |\n")
	b.WriteString("|------|------|-------|\n")
	for _, side := range []struct{ key, name, label string }{
		{"code_a", "A", labelA},
		{"code_b", "B", labelB},
	} {
		timeC, spaceC := c.Side(side.key)
		name := "**" + side.name + "**"
		if side.label != "" {
			name += " (`" + mdCell(side.label) + "`)"
		}
		fmt.Fprintf(&b, "| %s | `%s` | `%s` |\n", name, mdCell(timeC), mdCell(spaceC))
	}
	b.WriteString("\n")

	if winner := c.Winner(); winner != "" {
		fmt.Fprintf(&b, "**Winner:** %s\n\n", winner)
	}
	if text := c.Text("comparison"); text != "" {
		fmt.Fprintf(&b, "## Comparison\n\n%s\n\n", text)
	}
	if text := c.Text("recommendation"); text != "" {
		fmt.Fprintf(&b, "## Recommendation\n\n%s\n\n", text)
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}
	return nil
}

// FormatBatch writes one overview section per item.
func (m *MarkdownFormatter) FormatBatch(items []model.BatchItem, w io.Writer) error {
	ok, failed := BatchCounts(items)

	var b strings.Builder
	b.WriteString("# Batch Complexity Analysis\n\n")
	fmt.Fprintf(&b, "**Analyzed:** %d | **Failed:** %d\n\n", ok, failed)
	for _, item := range items {
		fmt.Fprintf(&b, "## %s\n\n", itemLabel(item))
		if !item.OK() {
			if item.Err != nil {
				fmt.Fprintf(&b, "**Error** (`%s`): %s\n\n", item.Err.ErrorType, item.Err.Message)
			} else {
				b.WriteString("**Error:** no result\n\n")
			}
			continue
		}
		writeOverview(&b, item.Result)
		if item.Result.Summary != "" {
			fmt.Fprintf(&b, "%s\n\n", item.Result.Summary)
		}
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}
	return nil
}

// FormatListing writes the listing as a Markdown table.
func (m *MarkdownFormatter) FormatListing(l *model.FunctionListing, w io.Writer) error {
	var b strings.Builder
	b.WriteString("# Functions\n\n")
	fmt.Fprintf(&b, "**Language:** %s\n\n", l.Language)
	if len(l.Functions) == 0 {
		b.WriteString("No functions found.\n")
	} else {
		b.WriteString("| Function | Lines |\n")
		b.WriteString("|----------|-------|\n")
		for _, fn := range l.Functions {
			fmt.Fprintf(&b, "| `%s` | %s |\n", mdCell(fn.Name), listingLines(fn))
		}
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write markdown: %w", err)
	}
	return nil
}

func writeOverview(b *strings.Builder, r *model.Result) {
	b.WriteString("| Metric | Value |\n")
	b.WriteString("|--------|-------|\n")
	fmt.Fprintf(b, "| **Language** | %s |\n", mdCell(r.Language))
	fmt.Fprintf(b, "| **Time Complexity** | `%s` |\n", mdCell(r.OverallTimeComplexity))
	fmt.Fprintf(b, "| **Space Complexity** | `%s` |\n", mdCell(r.OverallSpaceComplexity))
	fmt.Fprintf(b, "| **Confidence** | %s |\n\n", r.ConfidencePercent())
}

func writeFunctionSection(b *strings.Builder, fns []model.FunctionComplexity) {
	b.WriteString("## Function Analysis\n\n")
	b.WriteString("| Function | Time | Space |\n")
	b.WriteString("|----------|------|-------|\n")
	for _, fn := range fns {
		fmt.Fprintf(b, "| `%s` | `%s` | `%s` |\n", mdCell(fn.Name), mdCell(fn.TimeComplexity), mdCell(fn.SpaceComplexity))
	}
	b.WriteString("\n")

	for _, fn := range fns {
		if fn.Explanation == "" {
			continue
		}
		fmt.Fprintf(b, "### `%s`\n\n%s\n\n", fn.Name, fn.Explanation)
		if cases := caseLines(fn); len(cases) > 0 {
			for _, c := range cases {
				fmt.Fprintf(b, "- %s\n", c)
			}
			b.WriteString("\n")
		}
		if len(fn.Variables) > 0 {
			b.WriteString("**Variables:**\n")
			for _, name := range sortedKeys(fn.Variables) {
				fmt.Fprintf(b, "- `%s`: %s\n", name, fn.Variables[name])
			}
			b.WriteString("\n")
		}
	}
}

// caseLines lists the best/average/worst case complexities that are set.
func caseLines(fn model.FunctionComplexity) []string {
	var out []string
	for _, c := range []struct {
		label string
		val   *string
	}{
		{"Best case", fn.BestCase},
		{"Average case", fn.AverageCase},
		{"Worst case", fn.WorstCase},
	} {
		if c.val != nil && *c.val != "" {
			out = append(out, fmt.Sprintf("**%s:** `%s`", c.label, *c.val))
		}
	}
	return out
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// mdCell escapes pipes so a value cannot break a table row.
func mdCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
