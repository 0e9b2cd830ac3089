package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/davetashner/bigo/internal/model"
	"github.com/davetashner/bigo/internal/report"
)

func init() {
	RegisterFormatter(NewRichFormatter())
}

const richWrapWidth = 76

// RichFormatter writes colored terminal output. Use Resolve to select it so
// that it degrades to the table format when color is disabled.
type RichFormatter struct{}

// Compile-time interface check.
var _ Formatter = (*RichFormatter)(nil)

// NewRichFormatter returns a new RichFormatter.
func NewRichFormatter() *RichFormatter {
	return &RichFormatter{}
}

// Name returns the format name.
func (f *RichFormatter) Name() string {
	return "rich"
}

// Format writes r with complexity classes colored by growth rate.
func (f *RichFormatter) Format(r *model.Result, w io.Writer) error {
	var b strings.Builder
	b.WriteString(report.SectionTitle("Code Complexity Analysis") + "\n\n")
	writeInfo(&b, [][2]string{
		{"Language", r.Language},
		{"Time Complexity", report.ColorComplexity(r.OverallTimeComplexity)},
		{"Space Complexity", report.ColorComplexity(r.OverallSpaceComplexity)},
		{"Confidence", report.ColorConfidence(r.ConfidenceScore, r.ConfidencePercent())},
	})

	writeRichSection(&b, "Summary", r.Summary)
	if r.DetailedExplanation != "" {
		writeRichSection(&b, "Detailed Analysis", r.DetailedExplanation)
	}
	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write rich: %w", err)
	}

	if len(r.Functions) > 0 {
		if _, err := fmt.Fprintf(w, "\n%s\n", report.SectionTitle("Functions")); err != nil {
			return fmt.Errorf("write rich: %w", err)
		}
		tbl := report.NewTable(
			report.Column{Header: "Function"},
			report.Column{Header: "Lines", Align: report.AlignRight},
			report.Column{Header: "Time", Color: report.ColorComplexity},
			report.Column{Header: "Space", Color: report.ColorComplexity},
		)
		for _, fn := range r.Functions {
			tbl.AddRow(fn.Name, fn.LineRange(), fn.TimeComplexity, fn.SpaceComplexity)
		}
		if err := tbl.Render(w); err != nil {
			return err
		}
	}

	if len(r.OptimizationSuggestions) > 0 {
		b.Reset()
		b.WriteString("\n" + report.SectionTitle("Optimization Suggestions") + "\n")
		for i, s := range r.OptimizationSuggestions {
			prefix := fmt.Sprintf("  %d. ", i+1)
			indent := strings.Repeat(" ", len(prefix))
			for j, line := range report.Wrap(s, richWrapWidth-len(prefix)) {
				if j == 0 {
					b.WriteString(prefix + line + "\n")
				} else {
					b.WriteString(indent + line + "\n")
				}
			}
		}
		if _, err := io.WriteString(w, b.String()); err != nil {
			return fmt.Errorf("write rich: %w", err)
		}
	}
	return nil
}

// FormatComparison writes a side table followed by the verdict.
func (f *RichFormatter) FormatComparison(c model.Comparison, labelA, labelB string, w io.Writer) error {
	if _, err := fmt.Fprintf(w, "%s\n\n", report.SectionTitle("Complexity Comparison")); err != nil {
		return fmt.Errorf("write rich: %w", err)
	}
	tbl := report.NewTable(
		report.Column{Header: "Code"},
		report.Column{Header: "Source"},
		report.Column{Header: "Time", Color: report.ColorComplexity},
		report.Column{Header: "Space", Color: report.ColorComplexity},
	)
	timeA, spaceA := c.Side("code_a")
	timeB, spaceB := c.Side("code_b")
	tbl.AddRow("A", labelOr(labelA), timeA, spaceA)
	tbl.AddRow("B", labelOr(labelB), timeB, spaceB)
	if err := tbl.Render(w); err != nil {
		return err
	}

	var b strings.Builder
	b.WriteString("\n")
	if winner := c.Winner(); winner != "" {
		writeInfo(&b, [][2]string{{"Winner", report.ColorWinner(winner)}})
	}
	if text := c.Text("comparison"); text != "" {
		writeRichSection(&b, "Comparison", text)
	}
	if text := c.Text("recommendation"); text != "" {
		writeRichSection(&b, "Recommendation", text)
	}
	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write rich: %w", err)
	}
	return nil
}

// writeInfo writes label/value rows with labels padded to a common width.
func writeInfo(b *strings.Builder, rows [][2]string) {
	width := 0
	for _, r := range rows {
		width = max(width, len(r[0]))
	}
	for _, r := range rows {
		pad := strings.Repeat(" ", width-len(r[0]))
		fmt.Fprintf(b, "  %s%s  %s\n", report.Label(r[0]), pad, r[1])
	}
}

func writeRichSection(b *strings.Builder, title, text string) {
	b.WriteString("\n" + report.SectionTitle(title) + "\n")
	for _, line := range report.Wrap(text, richWrapWidth-2) {
		b.WriteString("  " + line + "\n")
	}
}

func labelOr(label string) string {
	if label == "" {
		return "-"
	}
	return label
}
