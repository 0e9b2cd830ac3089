// Copyright 2026 The Bigo Authors
// SPDX-License-Identifier: MIT

// Package redact provides utilities to strip sensitive values from strings
// before they appear in output, logs, or error messages.
package redact

import (
	"os"
	"strings"
	"sync"
)

// sensitiveEnvVars lists environment variable names whose values must never
// appear in output. Add new entries here as providers are added.
var sensitiveEnvVars = []string{
	"GROQ_API_KEY",
	"ANTHROPIC_API_KEY",
	"BIGO_API_KEY",
}

var (
	mu            sync.RWMutex
	cachedSecrets []string
	cacheOnce     sync.Once
)

func loadSecrets() {
	for _, envVar := range sensitiveEnvVars {
		val := os.Getenv(envVar)
		if val != "" && len(val) >= 4 {
			cachedSecrets = append(cachedSecrets, val)
		}
	}
}

// resetCache resets the cached secrets. Used by tests that change env vars
// between calls.
func resetCache() {
	mu.Lock()
	defer mu.Unlock()
	cachedSecrets = nil
	cacheOnce = sync.Once{}
}

// Add registers an extra secret, such as a key passed on the command line,
// for redaction. Values shorter than four characters are ignored.
func Add(secret string) {
	cacheOnce.Do(loadSecrets)
	if len(secret) >= 4 {
		mu.Lock()
		cachedSecrets = append(cachedSecrets, secret)
		mu.Unlock()
	}
}

// ResetForTest resets the cached secrets so tests in other packages can
// verify redaction behavior after setting env vars with t.Setenv.
func ResetForTest() { resetCache() }

// String replaces any occurrence of a known sensitive environment variable
// value with "[REDACTED]". Returns the original string if no secrets are found.
// Secret values are cached on first call for performance.
func String(s string) string {
	cacheOnce.Do(loadSecrets)
	mu.RLock()
	defer mu.RUnlock()
	for _, secret := range cachedSecrets {
		s = strings.ReplaceAll(s, secret, "[REDACTED]")
	}
	return s
}
