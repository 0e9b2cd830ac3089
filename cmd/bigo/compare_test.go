package main

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davetashner/bigo/internal/llm"
	"github.com/davetashner/bigo/internal/prompt"
)

const compareJSON = `{
  "code_a": {"time_complexity": "O(n^2)", "space_complexity": "O(1)"},
  "code_b": {"time_complexity": "O(n)", "space_complexity": "O(n)"},
  "winner": "B",
  "comparison": "B trades memory for a single pass.",
  "recommendation": "Prefer B for large inputs."
}`

func TestRunCompare_JSON(t *testing.T) {
	cmd, stdout, _ := newTestCmd(t)
	m, _ := withMockAnalyzer(t, llm.MockResponse{Content: compareJSON})
	dir := tempDir(t)
	a := writeTestFile(t, dir, "v1.py", "for a in xs:\n    for b in xs:\n        pass\n")
	b := writeTestFile(t, dir, "v2.py", "seen = set(xs)\n")
	cmd.SetArgs([]string{"compare", a, b, "-f", "json"})

	require.NoError(t, cmd.Execute())

	var doc struct {
		LabelA string         `json:"label_a"`
		LabelB string         `json:"label_b"`
		Result map[string]any `json:"result"`
	}
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &doc))
	assert.Equal(t, a, doc.LabelA)
	assert.Equal(t, b, doc.LabelB)
	assert.Equal(t, "B", doc.Result["winner"])

	calls := m.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, prompt.CompareSystemPrompt, calls[0].SystemPrompt)
	assert.Contains(t, calls[0].Prompt, "seen = set(xs)")
}

func TestRunCompare_Table(t *testing.T) {
	cmd, stdout, _ := newTestCmd(t)
	withMockAnalyzer(t, llm.MockResponse{Content: compareJSON})
	dir := tempDir(t)
	a := writeTestFile(t, dir, "v1.py", "x = 1\n")
	b := writeTestFile(t, dir, "v2.py", "y = 2\n")
	cmd.SetArgs([]string{"compare", a, b, "-f", "table"})

	require.NoError(t, cmd.Execute())
	out := stdout.String()
	assert.Contains(t, out, "COMPLEXITY COMPARISON")
	assert.Contains(t, out, "Winner: B")
}

func TestRunCompare_MissingFile(t *testing.T) {
	cmd, _, _ := newTestCmd(t)
	m, _ := withMockAnalyzer(t)
	a := writeTestFile(t, tempDir(t), "v1.py", "x = 1\n")
	cmd.SetArgs([]string{"compare", a, filepath.Join(tempDir(t), "nope.py")})

	err := cmd.Execute()
	assert.ErrorContains(t, err, "file not found")
	assert.Empty(t, m.Calls())
}

func TestRunCompare_RequiresTwoArgs(t *testing.T) {
	cmd, _, _ := newTestCmd(t)
	cmd.SetArgs([]string{"compare", "only-one.py"})
	assert.Error(t, cmd.Execute())
}
