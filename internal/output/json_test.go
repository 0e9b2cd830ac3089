// Copyright 2026 The Bigo Authors
// SPDX-License-Identifier: MIT

package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davetashner/bigo/internal/model"
)

func TestJSONFormatterName(t *testing.T) {
	assert.Equal(t, "json", NewJSONFormatter().Name())
}

func TestJSONFormatter_Format(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONFormatter().Format(sampleResult(), &buf))

	out := buf.String()
	assert.True(t, strings.HasSuffix(out, "}\n"))
	assert.Contains(t, out, "\n  \"language\": \"Python\"")

	var got model.Result
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, *sampleResult(), got)
}

func TestJSONFormatter_AllFieldsPresent(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONFormatter().Format(&model.Result{Functions: []model.FunctionComplexity{}, OptimizationSuggestions: []string{}}, &buf))

	var raw map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &raw))
	for _, key := range []string{
		"language", "overall_time_complexity", "overall_space_complexity", "summary",
		"detailed_explanation", "functions", "optimization_suggestions", "confidence_score",
	} {
		assert.Contains(t, raw, key)
	}
}

func TestJSONFormatter_Compact(t *testing.T) {
	f := &JSONFormatter{Compact: true}
	var buf bytes.Buffer
	require.NoError(t, f.Format(sampleResult(), &buf))
	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
}

func TestJSONFormatter_Comparison(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONFormatter().FormatComparison(sampleComparison(), "a.py", "b.py", &buf))

	var got JSONComparison
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "a.py", got.LabelA)
	assert.Equal(t, "b.py", got.LabelB)
	assert.Equal(t, "A", got.Result["winner"])

	buf.Reset()
	require.NoError(t, NewJSONFormatter().FormatComparison(nil, "", "", &buf))
	assert.JSONEq(t, `{"result": {}}`, buf.String())
}

func TestJSONFormatter_Batch(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewJSONFormatter().FormatBatch(sampleBatch(), &buf))

	var got JSONBatch
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got.Items, 3)
	assert.Equal(t, 2, got.Succeeded)
	assert.Equal(t, 1, got.Failed)
	assert.NotNil(t, got.Items[0].Result)
	require.NotNil(t, got.Items[1].Err)
	assert.Equal(t, "APIError", got.Items[1].Err.ErrorType)
	assert.True(t, got.Items[1].Err.Recoverable)

	buf.Reset()
	require.NoError(t, NewJSONFormatter().FormatBatch(nil, &buf))
	assert.JSONEq(t, `{"items": [], "succeeded": 0, "failed": 0}`, buf.String())
}

type failWriter struct{}

func (failWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestJSONFormatter_WriteError(t *testing.T) {
	err := NewJSONFormatter().Format(sampleResult(), failWriter{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "write json")
}
