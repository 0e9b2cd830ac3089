package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(n int) *int { return &n }

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	assert.True(t, opts.AnalyzeFunctions)
	assert.True(t, opts.IncludeSuggestions)
	assert.True(t, opts.DetailedMode)
	assert.True(t, opts.DetectLanguage)
	assert.False(t, opts.IncludeBestWorstCase)
	assert.Empty(t, opts.LanguageHint)
}

func TestFunctionComplexity_LineRange(t *testing.T) {
	assert.Equal(t, "-", FunctionComplexity{}.LineRange())
	assert.Equal(t, "3", FunctionComplexity{LineStart: intPtr(3)}.LineRange())
	assert.Equal(t, "3-9", FunctionComplexity{LineStart: intPtr(3), LineEnd: intPtr(9)}.LineRange())
}

func TestResult_SummaryString(t *testing.T) {
	r := &Result{
		Language:               "Python",
		OverallTimeComplexity:  "O(n)",
		OverallSpaceComplexity: "O(1)",
		Summary:                "Single pass.",
		ConfidenceScore:        0.9,
	}
	s := r.SummaryString()
	assert.Contains(t, s, "Language: Python")
	assert.Contains(t, s, "Time Complexity: O(n)")
	assert.Contains(t, s, "Confidence: 90%")
	assert.Contains(t, s, "Single pass.")
}

func TestResult_Clone(t *testing.T) {
	r := &Result{
		Language:                "Go",
		Functions:               []FunctionComplexity{{Name: "f"}},
		OptimizationSuggestions: []string{"memoize"},
	}
	c := r.Clone()
	c.Language = "Rust"
	c.Functions[0].Name = "g"
	c.OptimizationSuggestions[0] = "cache"

	assert.Equal(t, "Go", r.Language)
	assert.Equal(t, "f", r.Functions[0].Name)
	assert.Equal(t, []string{"memoize"}, r.OptimizationSuggestions)
	assert.Nil(t, (*Result)(nil).Clone())
}

func TestAnalysisError_Error(t *testing.T) {
	e := &AnalysisError{ErrorType: "APIError", Message: "boom", Recoverable: true}
	assert.Equal(t, "APIError: boom", e.Error())
}

func TestBatchItem_OK(t *testing.T) {
	assert.True(t, BatchItem{Result: &Result{}}.OK())
	assert.False(t, BatchItem{Err: &AnalysisError{}}.OK())
	assert.False(t, BatchItem{}.OK())
}

func TestComparison_Accessors(t *testing.T) {
	c := Comparison{
		"code_a":         map[string]any{"time_complexity": "O(n)", "space_complexity": "O(1)"},
		"code_b":         map[string]any{"time_complexity": "O(n²)"},
		"comparison":     "A is faster",
		"winner":         " a ",
		"recommendation": 42,
	}

	tc, sc := c.Side("code_a")
	assert.Equal(t, "O(n)", tc)
	assert.Equal(t, "O(1)", sc)

	tc, sc = c.Side("code_b")
	assert.Equal(t, "O(n²)", tc)
	assert.Equal(t, "?", sc)

	tc, sc = c.Side("code_c")
	assert.Equal(t, "?", tc)
	assert.Equal(t, "?", sc)

	assert.Equal(t, "A is faster", c.Text("comparison"))
	assert.Empty(t, c.Text("recommendation"))
	assert.Equal(t, "A", c.Winner())
}

func TestComparison_Winner(t *testing.T) {
	tests := []struct {
		raw  any
		want string
	}{
		{"B", "B"},
		{"tie", "tie"},
		{"Tie", "tie"},
		{"both equal", "tie"},
		{nil, ""},
	}
	for _, tt := range tests {
		c := Comparison{}
		if tt.raw != nil {
			c["winner"] = tt.raw
		}
		assert.Equal(t, tt.want, c.Winner(), "winner %v", tt.raw)
	}
}

func TestParseComplexityClass(t *testing.T) {
	tests := []struct {
		in   string
		want ComplexityClass
	}{
		{"O(1)", Constant},
		{"o(log n)", Logarithmic},
		{"O(n)", Linear},
		{"O(n log n)", Linearithmic},
		{"O(n^2)", Quadratic},
		{"O(n²)", Quadratic},
		{"cubic", Cubic},
		{"O(2^n)", Exponential},
		{"O(n!)", Factorial},
		{"O(n * m)", Unknown},
		{"", Unknown},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseComplexityClass(tt.in))
		})
	}
}

func TestComplexityClass_Rank(t *testing.T) {
	assert.Equal(t, 0, Constant.Rank())
	assert.Less(t, Linear.Rank(), Quadratic.Rank())
	assert.Equal(t, -1, Unknown.Rank())
}
