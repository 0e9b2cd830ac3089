// Package model defines the data types shared by the analyzer, the output
// formatters, and the CLI.
package model

import (
	"fmt"
	"strings"
)

// AnalysisOptions controls which parts of an analysis the model is asked for.
type AnalysisOptions struct {
	AnalyzeFunctions     bool   `json:"analyze_functions"`
	IncludeSuggestions   bool   `json:"include_suggestions"`
	DetailedMode         bool   `json:"detailed_mode"`
	DetectLanguage       bool   `json:"detect_language"`
	IncludeBestWorstCase bool   `json:"include_best_worst_case"`
	LanguageHint         string `json:"language_hint,omitempty"`
}

// DefaultOptions returns the options used when the caller supplies none.
func DefaultOptions() AnalysisOptions {
	return AnalysisOptions{
		AnalyzeFunctions:   true,
		IncludeSuggestions: true,
		DetailedMode:       true,
		DetectLanguage:     true,
	}
}

// FunctionComplexity is the per-function breakdown reported by the model.
type FunctionComplexity struct {
	Name            string            `json:"name"`
	TimeComplexity  string            `json:"time_complexity"`
	SpaceComplexity string            `json:"space_complexity"`
	Explanation     string            `json:"explanation"`
	LineStart       *int              `json:"line_start,omitempty"`
	LineEnd         *int              `json:"line_end,omitempty"`
	Variables       map[string]string `json:"variables,omitempty"`
	BestCase        *string           `json:"best_case,omitempty"`
	WorstCase       *string           `json:"worst_case,omitempty"`
	AverageCase     *string           `json:"average_case,omitempty"`
}

// LineRange renders "start-end", "start", or "-" when no lines are known.
func (f FunctionComplexity) LineRange() string {
	switch {
	case f.LineStart == nil:
		return "-"
	case f.LineEnd == nil:
		return fmt.Sprintf("%d", *f.LineStart)
	default:
		return fmt.Sprintf("%d-%d", *f.LineStart, *f.LineEnd)
	}
}

// Result is the complete complexity analysis for one code snippet.
// A Result is never modified after the analyzer returns it.
type Result struct {
	Language                string               `json:"language"`
	OverallTimeComplexity   string               `json:"overall_time_complexity"`
	OverallSpaceComplexity  string               `json:"overall_space_complexity"`
	Summary                 string               `json:"summary"`
	DetailedExplanation     string               `json:"detailed_explanation"`
	Functions               []FunctionComplexity `json:"functions"`
	OptimizationSuggestions []string             `json:"optimization_suggestions"`
	ConfidenceScore         float64              `json:"confidence_score"`
}

// Clone returns a copy of r whose Functions and OptimizationSuggestions
// slices are not shared with r.
func (r *Result) Clone() *Result {
	if r == nil {
		return nil
	}
	c := *r
	if r.Functions != nil {
		c.Functions = append([]FunctionComplexity{}, r.Functions...)
	}
	if r.OptimizationSuggestions != nil {
		c.OptimizationSuggestions = append([]string{}, r.OptimizationSuggestions...)
	}
	return &c
}

// ConfidencePercent formats the confidence score as a whole percentage.
func (r *Result) ConfidencePercent() string {
	return fmt.Sprintf("%.0f%%", r.ConfidenceScore*100)
}

// SummaryString returns a short plain-text summary of the result.
func (r *Result) SummaryString() string {
	lines := []string{
		"Language: " + r.Language,
		"Time Complexity: " + r.OverallTimeComplexity,
		"Space Complexity: " + r.OverallSpaceComplexity,
		"Confidence: " + r.ConfidencePercent(),
		"",
		"Summary:",
		r.Summary,
	}
	return strings.Join(lines, "\n")
}

// AnalysisError describes a failed item inside a batch.
type AnalysisError struct {
	ErrorType   string `json:"error_type"`
	Message     string `json:"message"`
	Recoverable bool   `json:"recoverable"`
}

func (e *AnalysisError) Error() string {
	return e.ErrorType + ": " + e.Message
}

// BatchItem holds the outcome of one batch entry. Exactly one of Result and
// Err is set.
type BatchItem struct {
	Index  int            `json:"index"`
	Source string         `json:"source,omitempty"`
	Result *Result        `json:"result,omitempty"`
	Err    *AnalysisError `json:"error,omitempty"`
}

// OK reports whether the item succeeded.
func (b BatchItem) OK() bool { return b.Err == nil && b.Result != nil }

// Comparison is the model's verdict on two snippets. Its shape is looser than
// Result and is returned as decoded JSON without validation.
type Comparison map[string]any

// Side returns the time and space complexity reported for "code_a" or
// "code_b", using "?" for anything missing.
func (c Comparison) Side(key string) (timeC, spaceC string) {
	timeC, spaceC = "?", "?"
	side, ok := c[key].(map[string]any)
	if !ok {
		return timeC, spaceC
	}
	if s, ok := side["time_complexity"].(string); ok {
		timeC = s
	}
	if s, ok := side["space_complexity"].(string); ok {
		spaceC = s
	}
	return timeC, spaceC
}

// Text returns a top-level string field, or "" if absent or not a string.
func (c Comparison) Text(key string) string {
	s, _ := c[key].(string)
	return s
}

// Winner normalizes the "winner" field to "A", "B", "tie", or "".
func (c Comparison) Winner() string {
	w := strings.TrimSpace(c.Text("winner"))
	switch strings.ToUpper(w) {
	case "A":
		return "A"
	case "B":
		return "B"
	case "":
		return ""
	default:
		return "tie"
	}
}

// ExtractedFunction is one entry of a function listing.
type ExtractedFunction struct {
	Name      string `json:"name"`
	LineStart int    `json:"line_start,omitempty"`
	LineEnd   int    `json:"line_end,omitempty"`
	Code      string `json:"code,omitempty"`
}

// FunctionListing is the model's inventory of functions in a snippet.
type FunctionListing struct {
	Language  string              `json:"language"`
	Functions []ExtractedFunction `json:"functions"`
}
