package testable

import (
	"github.com/go-git/go-git/v5"
)

// MockGitOpener is a test double for GitOpener.
// Set OpenFunc to control PlainOpen behavior. If nil, PlainOpen returns
// the Repo field (or ErrRepositoryNotExists if Repo is nil).
type MockGitOpener struct {
	// Repo is the repository returned by PlainOpen when OpenFunc is nil.
	Repo GitRepository

	// OpenErr is the error returned by PlainOpen when OpenFunc is nil.
	OpenErr error

	// OpenFunc, if set, is called instead of using Repo/OpenErr.
	OpenFunc func(path string) (GitRepository, error)

	// OpenCalls records the paths passed to PlainOpen.
	OpenCalls []string
}

// PlainOpen records the call and delegates to OpenFunc or returns Repo/OpenErr.
func (m *MockGitOpener) PlainOpen(path string) (GitRepository, error) {
	m.OpenCalls = append(m.OpenCalls, path)
	if m.OpenFunc != nil {
		return m.OpenFunc(path)
	}
	if m.OpenErr != nil {
		return nil, m.OpenErr
	}
	if m.Repo != nil {
		return m.Repo, nil
	}
	return nil, git.ErrRepositoryNotExists
}

// MockGitRepository is a test double for GitRepository.
type MockGitRepository struct {
	// RootDir is returned by Root().
	RootDir string
	// RootErr is the error returned by Root().
	RootErr error

	// WorktreeStatus is returned by Status().
	WorktreeStatus git.Status
	// StatusErr is the error returned by Status().
	StatusErr error
}

// Root returns RootDir and RootErr.
func (m *MockGitRepository) Root() (string, error) {
	return m.RootDir, m.RootErr
}

// Status returns WorktreeStatus and StatusErr.
func (m *MockGitRepository) Status() (git.Status, error) {
	return m.WorktreeStatus, m.StatusErr
}

// Compile-time interface checks.
var _ GitOpener = (*MockGitOpener)(nil)
var _ GitRepository = (*MockGitRepository)(nil)
