// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes bigo's analyses as tools over stdio transport.
package mcpserver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ResolveFile resolves a source path to an absolute, symlink-resolved path.
// It returns an error if the path does not exist or is not a regular file.
func ResolveFile(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", errors.New("path is empty")
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("cannot resolve path %q: %w", path, err)
	}

	absPath, err = filepath.EvalSymlinks(absPath)
	if err != nil {
		return "", fmt.Errorf("path %q does not exist", path)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return "", fmt.Errorf("path %q does not exist", path)
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("%q is not a regular file", path)
	}
	return absPath, nil
}

// source picks the code to analyze: inline code or the contents of path.
// Exactly one of the two must be given. The returned label names the input
// in output.
func source(a Analyzer, code, path, field string) (text, label string, err error) {
	hasCode := strings.TrimSpace(code) != ""
	hasPath := strings.TrimSpace(path) != ""
	switch {
	case hasCode && hasPath:
		return "", "", fmt.Errorf("%s: give either code or a path, not both", field)
	case hasCode:
		return code, "", nil
	case hasPath:
		abs, err := ResolveFile(path)
		if err != nil {
			return "", "", err
		}
		text, err := a.ReadFile(abs)
		if err != nil {
			return "", "", err
		}
		return text, path, nil
	default:
		return "", "", fmt.Errorf("%s: code or path is required", field)
	}
}
