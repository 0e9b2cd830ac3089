package llm

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"syscall"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// RetryPolicy controls transport-level retries. Only connection failures and
// timeouts are retried; HTTP status errors never are.
type RetryPolicy struct {
	// MaxAttempts is the total number of attempts, including the first.
	MaxAttempts int
	// BaseDelay is the wait before the second attempt; it doubles after that.
	BaseDelay time.Duration
	// MaxDelay caps the wait between attempts.
	MaxDelay time.Duration
}

// DefaultRetryPolicy returns 3 attempts with 1s base and 10s cap.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxAttempts: 3,
		BaseDelay:   time.Second,
		MaxDelay:    10 * time.Second,
	}
}

func (p RetryPolicy) backOff(ctx context.Context) backoff.BackOff {
	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = p.BaseDelay
	eb.MaxInterval = p.MaxDelay
	eb.Multiplier = 2
	eb.RandomizationFactor = 0
	eb.MaxElapsedTime = 0
	eb.Reset()

	var retries uint64
	if p.MaxAttempts > 1 {
		retries = uint64(p.MaxAttempts - 1)
	}
	return backoff.WithContext(backoff.WithMaxRetries(eb, retries), ctx)
}

// retryTransient runs op until it succeeds, fails with a non-transient error,
// or the policy's attempts are used up. Exhausted transient failures are
// escalated to an *APIError.
func retryTransient(ctx context.Context, policy RetryPolicy, op func() error) error {
	attempts := 0
	err := backoff.RetryNotify(func() error {
		attempts++
		err := op()
		if err == nil {
			return nil
		}
		if !isTransient(ctx, err) {
			return backoff.Permanent(err)
		}
		return err
	}, policy.backOff(ctx), func(err error, wait time.Duration) {
		slog.Debug("transient transport error, retrying", "attempt", attempts, "wait", wait, "error", err)
	})
	if err == nil {
		return nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if isTransient(ctx, err) {
		return &APIError{
			Message: fmt.Sprintf("request failed after %d attempt(s)", attempts),
			Err:     err,
		}
	}
	return err
}

// isTransient reports whether err is a connection-level failure or timeout
// worth retrying. Cancellation of the caller's context is never transient.
func isTransient(ctx context.Context, err error) bool {
	if err == nil || ctx.Err() != nil {
		return false
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) ||
		errors.Is(err, syscall.ECONNRESET) || errors.Is(err, syscall.ECONNREFUSED) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
