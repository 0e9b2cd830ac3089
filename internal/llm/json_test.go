package llm_test

import (
	"strings"
	"testing"

	"github.com/davetashner/bigo/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want map[string]any
	}{
		{"plain", `{"a": 1}`, map[string]any{"a": float64(1)}},
		{"prose around", `Sure! {"a": "x"} Hope this helps.`, map[string]any{"a": "x"}},
		{"fenced", "```json\n{\"a\": true}\n```", map[string]any{"a": true}},
		{"nested braces", `note {"a": {"b": 2}} end`, map[string]any{"a": map[string]any{"b": float64(2)}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := llm.ExtractJSON(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractJSON_Failures(t *testing.T) {
	for _, in := range []string{"", "no json here", "null", "[1,2]", "} backwards {", `{"a": }`} {
		_, err := llm.ExtractJSON(in)
		var parseErr *llm.ParseError
		require.ErrorAs(t, err, &parseErr, "input %q", in)
		assert.Contains(t, err.Error(), "failed to parse JSON response")
	}
}

func TestExtractJSON_PreviewTruncated(t *testing.T) {
	in := strings.Repeat("é", 500)
	_, err := llm.ExtractJSON(in)
	var parseErr *llm.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, 200, len([]rune(parseErr.Preview)))
}
