// Package gitchanges lists source files that differ from HEAD in a git
// working tree, so a batch run can cover just the files being edited.
package gitchanges

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/go-git/go-git/v5"

	"github.com/davetashner/bigo/internal/lang"
	"github.com/davetashner/bigo/internal/testable"
)

// Options controls which changed files are reported.
type Options struct {
	// IncludeUntracked adds files git does not track yet.
	IncludeUntracked bool
	// KnownLanguagesOnly drops files whose language lang.Detect cannot name.
	KnownLanguagesOnly bool
}

// ChangedFiles returns the absolute paths of added, modified, renamed and
// (optionally) untracked files in the repository containing dir, sorted.
// Deleted files are skipped since there is nothing left to analyze.
func ChangedFiles(opener testable.GitOpener, dir string, opts Options) ([]string, error) {
	if opener == nil {
		opener = testable.DefaultGitOpener
	}
	repo, err := opener.PlainOpen(dir)
	if err != nil {
		return nil, fmt.Errorf("open git repository at %s: %w", dir, err)
	}
	root, err := repo.Root()
	if err != nil {
		return nil, fmt.Errorf("resolve worktree root: %w", err)
	}
	status, err := repo.Status()
	if err != nil {
		return nil, fmt.Errorf("read worktree status: %w", err)
	}

	var files []string
	for path, st := range status {
		if !include(st, opts) {
			continue
		}
		if opts.KnownLanguagesOnly && lang.Detect(path) == "" {
			continue
		}
		files = append(files, filepath.Join(root, filepath.FromSlash(path)))
	}
	sort.Strings(files)
	return files, nil
}

func include(st *git.FileStatus, opts Options) bool {
	if st == nil {
		return false
	}
	if st.Worktree == git.Deleted || st.Staging == git.Deleted {
		return false
	}
	if st.Worktree == git.Untracked {
		return opts.IncludeUntracked
	}
	return st.Worktree != git.Unmodified || st.Staging != git.Unmodified
}
