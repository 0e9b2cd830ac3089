package main

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExitError_WithMessage(t *testing.T) {
	err := exitError(ExitError, "bad path %q", "/foo")
	assert.Equal(t, `bad path "/foo"`, err.Error())
	assert.Equal(t, ExitError, err.ExitCode())
}

func TestExitError_EmptyMessage(t *testing.T) {
	tests := []struct {
		code int
		want string
	}{
		{ExitPartialFailure, "bigo: some items failed"},
		{ExitInterrupted, "bigo: interrupted"},
		{99, "bigo: error"},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.code), func(t *testing.T) {
			err := exitError(tt.code, "")
			assert.Equal(t, tt.want, err.Error())
			assert.Equal(t, tt.code, err.ExitCode())
		})
	}
}

func TestExitCodeError_AsType(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", exitError(ExitPartialFailure, "partial"))
	var ece *exitCodeError
	require.True(t, errors.As(err, &ece))
	assert.Equal(t, ExitPartialFailure, ece.ExitCode())
	assert.Equal(t, "partial", ece.Error())
}

func TestFail(t *testing.T) {
	err := fail(errors.New("boom"))
	assert.Equal(t, "bigo: boom", err.Error())
	assert.Equal(t, ExitError, err.ExitCode())
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, ExitOK, exitCode(nil, false))
	assert.Equal(t, ExitError, exitCode(errors.New("plain"), false))
	assert.Equal(t, ExitPartialFailure, exitCode(exitError(ExitPartialFailure, ""), false))
	assert.Equal(t, ExitInterrupted, exitCode(nil, true))
	assert.Equal(t, ExitInterrupted, exitCode(fmt.Errorf("analyze: %w", context.Canceled), false))
}
