// Copyright 2026 The Bigo Authors
// SPDX-License-Identifier: MIT

package llm

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError is returned for non-200 responses, for exhausted transport
// retries, and when every candidate model has failed.
type APIError struct {
	// StatusCode is the HTTP status, or 0 when no response was received.
	StatusCode int
	// Message is the server-provided detail or a description of the failure.
	Message string
	// Err is the underlying cause, if any.
	Err error
}

func (e *APIError) Error() string {
	msg := "API error"
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("API error (%d)", e.StatusCode)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *APIError) Unwrap() error { return e.Err }

// IsRateLimited reports whether err, or any APIError it wraps, carries an
// HTTP 429 status.
func IsRateLimited(err error) bool {
	for err != nil {
		var apiErr *APIError
		if !errors.As(err, &apiErr) {
			return false
		}
		if apiErr.StatusCode == http.StatusTooManyRequests {
			return true
		}
		err = apiErr.Err
	}
	return false
}

// previewLen is the number of characters of unparseable output kept in a
// ParseError.
const previewLen = 200

// ParseError is returned when a response that should contain a JSON object
// cannot be decoded, even after trying to recover an embedded {...} span.
type ParseError struct {
	// Preview holds at most the first 200 characters of the raw text.
	Preview string
	Err     error
}

func newParseError(text string, err error) *ParseError {
	runes := []rune(text)
	if len(runes) > previewLen {
		runes = runes[:previewLen]
	}
	return &ParseError{Preview: string(runes), Err: err}
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse JSON response: %s...", e.Preview)
}

func (e *ParseError) Unwrap() error { return e.Err }
