// Copyright 2026 The Bigo Authors
// SPDX-License-Identifier: MIT

package output

import (
	"fmt"
	"io"

	"github.com/davetashner/bigo/internal/model"
	"github.com/davetashner/bigo/internal/report"
)

func init() {
	RegisterFormatter(NewTableFormatter())
}

// TableFormatter writes results as a framed plain-text summary. It uses no
// color and is the fallback for "rich" on non-terminals.
type TableFormatter struct {
	// Width is the inner width of the frame. Zero means report.DefaultBoxWidth.
	Width int
}

// Compile-time interface check.
var _ Formatter = (*TableFormatter)(nil)

// NewTableFormatter returns a TableFormatter using the default width.
func NewTableFormatter() *TableFormatter {
	return &TableFormatter{}
}

// Name returns the format name.
func (f *TableFormatter) Name() string {
	return "table"
}

// Format writes the overview, summary, functions and suggestions of r.
func (f *TableFormatter) Format(r *model.Result, w io.Writer) error {
	b := report.NewBox(f.Width)
	b.Title(" CODE COMPLEXITY ANALYSIS ")
	b.Rule()
	b.Line(" Language: " + r.Language)
	b.Line(" Time Complexity: " + r.OverallTimeComplexity)
	b.Line(" Space Complexity: " + r.OverallSpaceComplexity)
	b.Line(" Confidence: " + r.ConfidencePercent())
	b.Rule()
	b.Line(" Summary:")
	b.Paragraph(" ", r.Summary)

	if len(r.Functions) > 0 {
		b.Rule()
		b.Line(" Functions:")
		for _, fn := range r.Functions {
			b.Line(fmt.Sprintf("  • %s: Time=%s, Space=%s", fn.Name, fn.TimeComplexity, fn.SpaceComplexity))
		}
	}

	if len(r.OptimizationSuggestions) > 0 {
		b.Rule()
		b.Line(" Optimization Suggestions:")
		for i, s := range r.OptimizationSuggestions {
			b.Paragraph(" ", fmt.Sprintf("%d. %s", i+1, s))
		}
	}

	return b.Render(w)
}

// FormatComparison writes both sides, the winner and the model's reasoning.
func (f *TableFormatter) FormatComparison(c model.Comparison, labelA, labelB string, w io.Writer) error {
	b := report.NewBox(f.Width)
	b.Title(" COMPLEXITY COMPARISON ")
	b.Rule()
	for _, side := range []struct{ key, name, label string }{
		{"code_a", "A", labelA},
		{"code_b", "B", labelB},
	} {
		timeC, spaceC := c.Side(side.key)
		head := " " + side.name
		if side.label != "" {
			head += " (" + side.label + ")"
		}
		b.Line(head + ":")
		b.Line(fmt.Sprintf("   Time=%s, Space=%s", timeC, spaceC))
	}

	if winner := c.Winner(); winner != "" {
		b.Rule()
		b.Line(" Winner: " + winner)
	}
	if text := c.Text("comparison"); text != "" {
		b.Rule()
		b.Line(" Comparison:")
		b.Paragraph(" ", text)
	}
	if text := c.Text("recommendation"); text != "" {
		b.Rule()
		b.Line(" Recommendation:")
		b.Paragraph(" ", text)
	}

	return b.Render(w)
}
