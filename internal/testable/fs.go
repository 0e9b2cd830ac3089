// Package testable provides interfaces for abstracting OS-level operations,
// enabling mock injection in tests without modifying production behavior.
package testable

import (
	"os"
	"path/filepath"
)

// FileSystem is the file access bigo needs: resolving and reading source
// files, and writing rendered reports.
type FileSystem interface {
	// Abs returns an absolute representation of path.
	Abs(path string) (string, error)

	// Stat returns a FileInfo describing the named file.
	Stat(name string) (os.FileInfo, error)

	// ReadFile reads the named file and returns the contents.
	ReadFile(name string) ([]byte, error)

	// WriteFile writes data to the named file. Missing parent directories
	// are created.
	WriteFile(name string, data []byte, perm os.FileMode) error
}

// OsFileSystem implements FileSystem on the local disk.
type OsFileSystem struct{}

// Abs wraps filepath.Abs.
func (OsFileSystem) Abs(path string) (string, error) {
	return filepath.Abs(path)
}

// Stat wraps os.Stat.
func (OsFileSystem) Stat(name string) (os.FileInfo, error) {
	return os.Stat(name)
}

// ReadFile wraps os.ReadFile.
func (OsFileSystem) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name) //nolint:gosec // caller controls path
}

// WriteFile creates the parent directory of name, then writes data.
func (OsFileSystem) WriteFile(name string, data []byte, perm os.FileMode) error {
	if dir := filepath.Dir(name); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return err
		}
	}
	return os.WriteFile(name, data, perm) //nolint:gosec // caller controls path and perms
}

// DefaultFS is used whenever no FileSystem is injected.
var DefaultFS FileSystem = OsFileSystem{}
