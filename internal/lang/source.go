package lang

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"

	"github.com/davetashner/bigo/internal/testable"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Decode converts raw file bytes to text. A UTF-8 byte order mark is
// dropped; bytes that are not valid UTF-8 are decoded as Windows-1252.
func Decode(data []byte) (string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if utf8.Valid(data) {
		return string(data), nil
	}
	out, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("decode source: %w", err)
	}
	return string(out), nil
}

// ReadSource reads and decodes the file at path.
func ReadSource(fsys testable.FileSystem, path string) (string, error) {
	if fsys == nil {
		fsys = testable.DefaultFS
	}
	data, err := fsys.ReadFile(path)
	if err != nil {
		return "", err
	}
	return Decode(data)
}

// FileInfo describes a source file.
type FileInfo struct {
	Path       string `json:"path"`
	Name       string `json:"name"`
	Extension  string `json:"extension"`
	Language   string `json:"language,omitempty"`
	SizeBytes  int64  `json:"size_bytes"`
	TotalLines int    `json:"total_lines"`
	CodeLines  int    `json:"code_lines"`
	Empty      bool   `json:"is_empty"`
}

// commentPrefixes mark lines that are not counted as code.
var commentPrefixes = []string{"#", "//", "/*", "*", "--"}

// Info reads path and counts its lines. Code lines are non-blank lines that
// do not start with a common comment marker.
func Info(fsys testable.FileSystem, path string) (*FileInfo, error) {
	if fsys == nil {
		fsys = testable.DefaultFS
	}
	st, err := fsys.Stat(path)
	if err != nil {
		return nil, err
	}
	text, err := ReadSource(fsys, path)
	if err != nil {
		return nil, err
	}
	abs, err := fsys.Abs(path)
	if err != nil {
		abs = path
	}

	info := &FileInfo{
		Path:      abs,
		Name:      filepath.Base(path),
		Extension: filepath.Ext(path),
		Language:  Detect(path),
		SizeBytes: st.Size(),
		Empty:     strings.TrimSpace(text) == "",
	}
	for _, line := range splitLines(text) {
		info.TotalLines++
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || hasAnyPrefix(trimmed, commentPrefixes) {
			continue
		}
		info.CodeLines++
	}
	return info, nil
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}
