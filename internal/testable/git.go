package testable

import (
	"github.com/go-git/go-git/v5"
)

// GitOpener abstracts opening a git repository. Production code uses
// RealGitOpener; tests inject a mock to avoid filesystem dependencies.
type GitOpener interface {
	PlainOpen(path string) (GitRepository, error)
}

// GitRepository abstracts the subset of repository operations bigo uses to
// find changed files.
type GitRepository interface {
	// Root returns the absolute path of the working tree.
	Root() (string, error)
	// Status returns the working tree status.
	Status() (git.Status, error)
}

// RealGitOpener is the production implementation of GitOpener.
// It opens the repository containing path, searching parent directories.
type RealGitOpener struct{}

// PlainOpen opens the git repository containing path.
func (RealGitOpener) PlainOpen(path string) (GitRepository, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, err
	}
	return &RealGitRepository{repo: repo}, nil
}

// RealGitRepository wraps *git.Repository to satisfy GitRepository.
type RealGitRepository struct {
	repo *git.Repository
}

// Root returns the worktree's root directory.
func (r *RealGitRepository) Root() (string, error) {
	wt, err := r.repo.Worktree()
	if err != nil {
		return "", err
	}
	return wt.Filesystem.Root(), nil
}

// Status returns the worktree status.
func (r *RealGitRepository) Status() (git.Status, error) {
	wt, err := r.repo.Worktree()
	if err != nil {
		return nil, err
	}
	return wt.Status()
}

// DefaultGitOpener is the production GitOpener used as default.
var DefaultGitOpener GitOpener = RealGitOpener{}

// Compile-time interface checks.
var _ GitOpener = RealGitOpener{}
var _ GitRepository = (*RealGitRepository)(nil)
