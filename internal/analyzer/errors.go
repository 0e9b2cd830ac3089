package analyzer

import (
	"errors"

	"github.com/davetashner/bigo/internal/llm"
	"github.com/davetashner/bigo/internal/model"
)

// Input errors. They are detected before any network call and never retried.
var (
	ErrEmptyCode    = errors.New("code cannot be empty")
	ErrFileNotFound = errors.New("file not found")
	ErrNotAFile     = errors.New("not a file")
)

// IsInputError reports whether err was caused by invalid caller input.
func IsInputError(err error) bool {
	return errors.Is(err, ErrEmptyCode) || errors.Is(err, ErrFileNotFound) || errors.Is(err, ErrNotAFile)
}

// Error type tags used in batch results.
const (
	ErrorTypeInput     = "InputError"
	ErrorTypeRateLimit = "RateLimitError"
	ErrorTypeAPI       = "APIError"
	ErrorTypeParse     = "ParseError"
	ErrorTypeOther     = "Error"
)

// ErrorType returns the tag describing err's kind.
func ErrorType(err error) string {
	var parseErr *llm.ParseError
	var apiErr *llm.APIError
	switch {
	case IsInputError(err):
		return ErrorTypeInput
	case llm.IsRateLimited(err):
		return ErrorTypeRateLimit
	case errors.As(err, &parseErr):
		return ErrorTypeParse
	case errors.As(err, &apiErr):
		return ErrorTypeAPI
	default:
		return ErrorTypeOther
	}
}

// toAnalysisError converts err into the per-item failure recorded in a batch.
func toAnalysisError(err error) *model.AnalysisError {
	return &model.AnalysisError{
		ErrorType:   ErrorType(err),
		Message:     err.Error(),
		Recoverable: true,
	}
}
