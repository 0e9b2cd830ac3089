package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/davetashner/bigo/internal/analyzer"
	"github.com/davetashner/bigo/internal/config"
	"github.com/davetashner/bigo/internal/llm"
	"github.com/davetashner/bigo/internal/testable"
)

const linearJSON = `{
  "language": "Python",
  "overall_time_complexity": "O(n)",
  "overall_space_complexity": "O(1)",
  "summary": "Single pass over the input.",
  "functions": [{"name": "total", "time_complexity": "O(n)", "space_complexity": "O(1)", "explanation": "one loop", "line_start": 1, "line_end": 3}],
  "optimization_suggestions": ["Use the built-in sum"],
  "confidence_score": 0.9
}`

// newTestCmd isolates the command tree from the user's environment and
// redirects its I/O. The global rootCmd is reused, so every flag is reset to
// its default first.
func newTestCmd(t *testing.T) (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	resetFlags(rootCmd)

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	origDir := workDir
	workDir = tempDir(t)
	t.Cleanup(func() { workDir = origDir })

	origNoColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = origNoColor })

	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetIn(strings.NewReader(""))
	rootCmd.SetContext(context.Background())
	return rootCmd, stdout, stderr
}

// resetFlags restores every flag in the tree to its default and clears its
// changed state, so config.FromFlags only sees what a test sets.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// withMockAnalyzer makes commands analyze through a mock provider. The
// returned settings pointer holds what the command resolved.
func withMockAnalyzer(t *testing.T, responses ...llm.MockResponse) (*llm.MockProvider, *config.Settings) {
	t.Helper()
	m := llm.NewMockProvider(responses...)
	got := &config.Settings{}

	orig := newAnalyzer
	newAnalyzer = func(s config.Settings) (*analyzer.Analyzer, error) {
		*got = s
		client := llm.NewClient(m, llm.Config{Model: s.Model}, llm.WithSleep(noSleep))
		return analyzer.New(client,
			analyzer.WithoutCache(),
			analyzer.WithSleep(noSleep),
			analyzer.WithFileSystem(cmdFS),
		), nil
	}
	t.Cleanup(func() { newAnalyzer = orig })
	return m, got
}

// withMockFS swaps cmdFS with the given mock and restores it on test cleanup.
func withMockFS(t *testing.T, mock *testable.MockFileSystem) {
	t.Helper()
	orig := cmdFS
	cmdFS = mock
	t.Cleanup(func() { cmdFS = orig })
}

func noSleep(ctx context.Context, _ time.Duration) error {
	return ctx.Err()
}

func tempDir(t *testing.T) string {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	return dir
}

func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}
