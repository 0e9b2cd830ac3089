// Copyright 2026 The Bigo Authors
// SPDX-License-Identifier: MIT

package main

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/go-git/go-git/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davetashner/bigo/internal/llm"
	"github.com/davetashner/bigo/internal/testable"
)

type batchDoc struct {
	Items []struct {
		Index  int            `json:"index"`
		Source string         `json:"source"`
		Result map[string]any `json:"result"`
		Error  *struct {
			ErrorType string `json:"error_type"`
		} `json:"error"`
	} `json:"items"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

func withMockGit(t *testing.T, opener testable.GitOpener) {
	t.Helper()
	orig := cmdGit
	cmdGit = opener
	t.Cleanup(func() { cmdGit = orig })
}

func TestRunBatch_PartialFailure(t *testing.T) {
	cmd, stdout, _ := newTestCmd(t)
	m, _ := withMockAnalyzer(t, llm.MockResponse{Content: linearJSON})
	dir := tempDir(t)
	a := writeTestFile(t, dir, "a.py", "x = 1\n")
	c := writeTestFile(t, dir, "c.go", "package c\n")
	cmd.SetArgs([]string{"batch", a, filepath.Join(dir, "missing.py"), c, "-f", "json"})

	require.NoError(t, cmd.Execute())

	var doc batchDoc
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &doc))
	require.Len(t, doc.Items, 3)
	assert.Equal(t, 2, doc.Succeeded)
	assert.Equal(t, 1, doc.Failed)
	assert.NotNil(t, doc.Items[0].Result)
	require.NotNil(t, doc.Items[1].Error)
	assert.Equal(t, "InputError", doc.Items[1].Error.ErrorType)
	assert.NotNil(t, doc.Items[2].Result)
	assert.Len(t, m.Calls(), 2)
}

func TestRunBatch_StrictPartialFailure(t *testing.T) {
	cmd, _, _ := newTestCmd(t)
	withMockAnalyzer(t, llm.MockResponse{Content: linearJSON})
	dir := tempDir(t)
	a := writeTestFile(t, dir, "a.py", "x = 1\n")
	cmd.SetArgs([]string{"batch", a, filepath.Join(dir, "missing.py"), "--strict", "-f", "json"})

	err := cmd.Execute()
	require.Error(t, err)

	var ece *exitCodeError
	require.True(t, errors.As(err, &ece))
	assert.Equal(t, ExitPartialFailure, ece.ExitCode())
	assert.Contains(t, ece.Error(), "1 of 2 items failed")
}

func TestRunBatch_AllFailed(t *testing.T) {
	cmd, stdout, _ := newTestCmd(t)
	withMockAnalyzer(t)
	dir := tempDir(t)
	cmd.SetArgs([]string{"batch", filepath.Join(dir, "x.py"), filepath.Join(dir, "y.py"), "-f", "markdown"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Equal(t, ExitError, exitCode(err, false))
	assert.Contains(t, stdout.String(), "**Analyzed:** 0 | **Failed:** 2")
}

func TestRunBatch_TableFallbackTotals(t *testing.T) {
	cmd, stdout, _ := newTestCmd(t)
	withMockAnalyzer(t, llm.MockResponse{Content: linearJSON})
	a := writeTestFile(t, tempDir(t), "a.py", "x = 1\n")
	cmd.SetArgs([]string{"batch", a, "-f", "table"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, stdout.String(), "1 analyzed, 0 failed")
}

func TestRunBatch_NoInput(t *testing.T) {
	cmd, _, _ := newTestCmd(t)
	withMockAnalyzer(t)
	cmd.SetArgs([]string{"batch"})
	assert.ErrorContains(t, cmd.Execute(), "no input")
}

func TestRunBatch_Changed(t *testing.T) {
	cmd, stdout, _ := newTestCmd(t)
	m, _ := withMockAnalyzer(t, llm.MockResponse{Content: linearJSON})
	writeTestFile(t, workDir, "main.go", "package main\n")
	writeTestFile(t, workDir, "pkg/sort.py", "xs.sort()\n")

	withMockGit(t, &testable.MockGitOpener{Repo: &testable.MockGitRepository{
		RootDir: workDir,
		WorktreeStatus: git.Status{
			"main.go":     {Staging: git.Unmodified, Worktree: git.Modified},
			"pkg/sort.py": {Staging: git.Added, Worktree: git.Unmodified},
			"gone.rs":     {Staging: git.Unmodified, Worktree: git.Deleted},
			"notes.xyz":   {Staging: git.Modified, Worktree: git.Unmodified},
		},
	}})
	cmd.SetArgs([]string{"batch", "--changed", "-f", "json"})

	require.NoError(t, cmd.Execute())

	var doc batchDoc
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &doc))
	require.Len(t, doc.Items, 2)
	assert.Equal(t, "main.go", doc.Items[0].Source)
	assert.Equal(t, filepath.Join("pkg", "sort.py"), doc.Items[1].Source)
	assert.Len(t, m.Calls(), 2)
}

func TestRunBatch_ChangedNothing(t *testing.T) {
	cmd, stdout, stderr := newTestCmd(t)
	m, _ := withMockAnalyzer(t)
	withMockGit(t, &testable.MockGitOpener{Repo: &testable.MockGitRepository{RootDir: workDir}})
	cmd.SetArgs([]string{"batch", "--changed"})

	require.NoError(t, cmd.Execute())
	assert.Empty(t, stdout.String())
	assert.Contains(t, stderr.String(), "No changed files")
	assert.Empty(t, m.Calls())
}

func TestRunBatch_ChangedNotARepo(t *testing.T) {
	cmd, _, _ := newTestCmd(t)
	withMockAnalyzer(t)
	withMockGit(t, &testable.MockGitOpener{})
	cmd.SetArgs([]string{"batch", "--changed"})

	assert.ErrorContains(t, cmd.Execute(), "open git repository")
}

func TestBatchPaths_Deduplicates(t *testing.T) {
	resetFlags(rootCmd)
	dir := tempDir(t)
	a := filepath.Join(dir, "a.py")

	got, err := batchPaths([]string{a, a, filepath.Join(dir, ".", "a.py")})
	require.NoError(t, err)
	assert.Equal(t, []string{a}, got)
}

func TestDisplayPath(t *testing.T) {
	orig := workDir
	workDir = tempDir(t)
	t.Cleanup(func() { workDir = orig })

	assert.Equal(t, "rel.go", displayPath("rel.go"))
	assert.Equal(t, filepath.Join("sub", "x.go"), displayPath(filepath.Join(workDir, "sub", "x.go")))

	outside := filepath.Join(filepath.Dir(workDir), "elsewhere.go")
	assert.Equal(t, outside, displayPath(outside))
}
