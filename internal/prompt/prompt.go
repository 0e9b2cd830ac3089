// Copyright 2026 The Bigo Authors
// SPDX-License-Identifier: MIT

// Package prompt renders the prompts sent to the model. Every function is
// pure: identical inputs always produce identical text.
package prompt

import (
	"fmt"
	"strings"

	"github.com/davetashner/bigo/internal/model"
)

// SystemPrompt establishes the analyst persona and the rules the model should
// follow for full analyses.
const SystemPrompt = `You are an expert computer scientist and algorithm analyst specializing in computational complexity theory.

Your task is to analyze code and determine its time and space complexity using Big-O notation.

## Your Expertise Includes:
- Algorithm analysis and complexity theory
- Data structure operations and their complexities
- Loop analysis (nested, dependent, independent)
- Recursive algorithm analysis (Master theorem, recurrence relations)
- Amortized analysis
- Space complexity including auxiliary and input space

## Analysis Guidelines:
1. **Identify Variables**: Clearly define what n represents (array length, input size, etc.)
2. **Loop Analysis**:
   - Single loop over n elements: O(n)
   - Nested loops: Multiply complexities
   - Loops with logarithmic increments (i*=2): O(log n)
3. **Recursive Analysis**:
   - Identify recurrence relation
   - Apply Master theorem when applicable
4. **Space Analysis**:
   - Count auxiliary data structures
   - Consider recursion stack depth
   - Note if space is input-dependent

## Big-O Classes (from best to worst):
- O(1): Constant - hash table lookup, array access
- O(log n): Logarithmic - binary search
- O(n): Linear - single loop, linear search
- O(n log n): Linearithmic - merge sort, heap sort
- O(n²): Quadratic - nested loops, bubble sort
- O(n³): Cubic - triple nested loops
- O(2^n): Exponential - recursive fibonacci without memoization
- O(n!): Factorial - permutation generation

Always provide your analysis in the exact JSON format requested.`

// QuickSystemPrompt is the minimal system prompt used for quick analyses.
const QuickSystemPrompt = "You are an algorithm complexity analyst. Respond with JSON only."

// CompareSystemPrompt is the system prompt used for comparisons.
const CompareSystemPrompt = "You are an algorithm complexity analyst. Compare the two implementations. JSON only."

// ExtractSystemPrompt is the system prompt used for function extraction.
const ExtractSystemPrompt = "You are a source code indexer. Respond with JSON only."

const resultShape = `{
    "language": "detected programming language",
    "overall_time_complexity": "O(...)",
    "overall_space_complexity": "O(...)",
    "summary": "Brief 1-2 sentence summary",
    "detailed_explanation": "Detailed step-by-step analysis explaining how you determined the complexity. Include variable definitions, loop analysis, and any relevant observations.",
    "functions": [
        {
            "name": "function_name",
            "time_complexity": "O(...)",
            "space_complexity": "O(...)",
            "explanation": "Why this function has this complexity",
            "line_start": 1,
            "line_end": 10,
            "variables": {"n": "length of input array"},
            "best_case": "O(...) if different",
            "worst_case": "O(...) if different",
            "average_case": "O(...) if different"
        }
    ],
    "optimization_suggestions": [
        "Specific suggestion 1",
        "Specific suggestion 2"
    ],
    "confidence_score": 0.95
}`

// BuildAnalysisPrompt constructs the full analysis prompt. Optional clauses
// are appended according to opts.
func BuildAnalysisPrompt(code string, opts model.AnalysisOptions) string {
	var b strings.Builder

	b.WriteString("Analyze the following code and determine its time and space complexity.\n")
	if opts.LanguageHint != "" {
		fmt.Fprintf(&b, "The code is written in %s.\n", opts.LanguageHint)
	}
	b.WriteString("\n## Code to Analyze:\n")
	writeFenced(&b, code)

	b.WriteString("\n## Required Analysis:\n")
	step := 1
	if opts.DetectLanguage || opts.LanguageHint == "" {
		fmt.Fprintf(&b, "%d. Detect the programming language\n", step)
		step++
	}
	fmt.Fprintf(&b, "%d. Determine the overall time complexity (Big-O notation)\n", step)
	fmt.Fprintf(&b, "%d. Determine the overall space complexity (Big-O notation)\n", step+1)
	fmt.Fprintf(&b, "%d. Provide a clear summary of the analysis\n", step+2)
	if opts.DetailedMode {
		fmt.Fprintf(&b, "%d. Give a detailed explanation of how you arrived at the complexity\n", step+3)
	} else {
		fmt.Fprintf(&b, "%d. Keep the detailed explanation to a few sentences\n", step+3)
	}

	if opts.AnalyzeFunctions {
		b.WriteString("- For EACH function/method in the code, provide individual analysis in the \"functions\" array\n")
		b.WriteString("- Include function name, its specific time/space complexity, and explanation\n")
	} else {
		b.WriteString("- Leave the \"functions\" array empty\n")
	}
	if opts.IncludeSuggestions {
		b.WriteString("- Provide practical optimization suggestions if the complexity can be improved\n")
	}
	if opts.IncludeBestWorstCase {
		b.WriteString("- For each function, include best_case, worst_case, and average_case complexity when they differ\n")
	}

	b.WriteString("\n## Response Format (JSON):\n")
	b.WriteString("Return your analysis as a JSON object with this exact structure:\n\n")
	b.WriteString(resultShape)
	b.WriteString("\n\nImportant:\n")
	b.WriteString("- Use standard Big-O notation (O(1), O(n), O(n²), O(log n), O(n log n), etc.)\n")
	b.WriteString("- Be precise - if it's O(n+m), say so; if it's O(n*m), say that\n")
	b.WriteString("- The confidence_score should reflect how certain you are (0.0 to 1.0)\n")
	b.WriteString("- If multiple complexities exist (branching), give the worst case as overall\n")
	b.WriteString("- Consider both auxiliary space and input space for space complexity\n")
	b.WriteString("\nRespond ONLY with valid JSON, no additional text.")

	return b.String()
}

// BuildQuickAnalysisPrompt constructs the shorter prompt used for quick
// analyses. It has no options.
func BuildQuickAnalysisPrompt(code string) string {
	var b strings.Builder
	b.WriteString("Quickly analyze this code's complexity:\n\n")
	writeFenced(&b, code)
	b.WriteString(`
Respond with JSON:
{
    "language": "language name",
    "overall_time_complexity": "O(...)",
    "overall_space_complexity": "O(...)",
    "summary": "Brief explanation",
    "detailed_explanation": "How you determined this",
    "functions": [],
    "optimization_suggestions": [],
    "confidence_score": 0.8
}

Be concise but accurate. JSON only.`)
	return b.String()
}

// BuildComparisonPrompt embeds both snippets and asks for a verdict.
func BuildComparisonPrompt(codeA, codeB string) string {
	var b strings.Builder
	b.WriteString("Compare the complexity of these two code implementations:\n\n")
	b.WriteString("## Code A:\n")
	writeFenced(&b, codeA)
	b.WriteString("\n## Code B:\n")
	writeFenced(&b, codeB)
	b.WriteString(`
Respond with JSON:
{
    "code_a": {
        "time_complexity": "O(...)",
        "space_complexity": "O(...)"
    },
    "code_b": {
        "time_complexity": "O(...)",
        "space_complexity": "O(...)"
    },
    "comparison": "Which is better and why",
    "winner": "A or B or tie",
    "recommendation": "Which to use in what scenarios"
}

JSON only.`)
	return b.String()
}

// BuildFunctionExtractionPrompt asks the model to list the functions in code.
func BuildFunctionExtractionPrompt(code string) string {
	var b strings.Builder
	b.WriteString("Extract all functions/methods from this code:\n\n")
	writeFenced(&b, code)
	b.WriteString(`
Respond with JSON:
{
    "language": "detected language",
    "functions": [
        {
            "name": "function_name",
            "line_start": 1,
            "line_end": 10,
            "code": "the function code"
        }
    ]
}

JSON only.`)
	return b.String()
}

func writeFenced(b *strings.Builder, code string) {
	b.WriteString("```\n")
	b.WriteString(code)
	if !strings.HasSuffix(code, "\n") {
		b.WriteString("\n")
	}
	b.WriteString("```\n")
}
