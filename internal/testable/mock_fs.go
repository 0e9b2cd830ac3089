package testable

import (
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// MockFileSystem is a test double for FileSystem.
//
// Lookups go, in order, to the matching function field, then to Files (an
// in-memory set of source files keyed by cleaned path), then to the real
// disk. Writes that reach the default path are recorded in Written instead
// of touching the disk.
type MockFileSystem struct {
	AbsFn       func(path string) (string, error)
	StatFn      func(name string) (os.FileInfo, error)
	ReadFileFn  func(name string) ([]byte, error)
	WriteFileFn func(name string, data []byte, perm os.FileMode) error

	// Files holds in-memory file contents.
	Files map[string][]byte

	mu      sync.Mutex
	written map[string][]byte
}

var real OsFileSystem

// Abs calls AbsFn if set, otherwise delegates to OsFileSystem.
func (m *MockFileSystem) Abs(path string) (string, error) {
	if m.AbsFn != nil {
		return m.AbsFn(path)
	}
	return real.Abs(path)
}

// Stat calls StatFn if set. Otherwise it describes an in-memory file, or
// falls through to the disk.
func (m *MockFileSystem) Stat(name string) (os.FileInfo, error) {
	if m.StatFn != nil {
		return m.StatFn(name)
	}
	if data, ok := m.Files[filepath.Clean(name)]; ok {
		return memFileInfo{name: filepath.Base(name), size: int64(len(data))}, nil
	}
	return real.Stat(name)
}

// ReadFile calls ReadFileFn if set. Otherwise it returns the in-memory
// contents, or reads from disk.
func (m *MockFileSystem) ReadFile(name string) ([]byte, error) {
	if m.ReadFileFn != nil {
		return m.ReadFileFn(name)
	}
	if data, ok := m.Files[filepath.Clean(name)]; ok {
		return append([]byte(nil), data...), nil
	}
	return real.ReadFile(name)
}

// WriteFile calls WriteFileFn if set, otherwise records data for Written.
func (m *MockFileSystem) WriteFile(name string, data []byte, perm os.FileMode) error {
	if m.WriteFileFn != nil {
		return m.WriteFileFn(name, data, perm)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.written == nil {
		m.written = make(map[string][]byte)
	}
	m.written[filepath.Clean(name)] = append([]byte(nil), data...)
	return nil
}

// Written returns what was last written to name, and whether anything was.
func (m *MockFileSystem) Written(name string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.written[filepath.Clean(name)]
	return data, ok
}

// Compile-time interface check.
var _ FileSystem = (*MockFileSystem)(nil)

type memFileInfo struct {
	name string
	size int64
}

func (i memFileInfo) Name() string       { return i.name }
func (i memFileInfo) Size() int64        { return i.size }
func (i memFileInfo) Mode() fs.FileMode  { return 0o644 }
func (i memFileInfo) ModTime() time.Time { return time.Time{} }
func (i memFileInfo) IsDir() bool        { return false }
func (i memFileInfo) Sys() any           { return nil }
