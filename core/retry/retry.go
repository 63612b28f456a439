// Package retry wraps fallible backend calls with bounded retries and linear backoff.
package retry

import (
	"context"
	"time"

	"object-gateway/core/metrics"
	"object-gateway/core/storage"

	"go.uber.org/zap"
)

const (
	// MaxAttempts is the total number of attempts, the first one included.
	MaxAttempts = 3
	// BaseDelay is multiplied by the attempt index to get the wait before the next attempt.
	BaseDelay = 1000 * time.Millisecond
)

// SleepFunc waits for d or returns early with an error when ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Executor runs operations under the gateway retry policy.
// It is safe for concurrent use.
type Executor struct {
	maxAttempts int
	baseDelay   time.Duration
	logger      *zap.Logger
	retryable   func(error) bool
	sleep       SleepFunc
}

// Option customizes an Executor.
type Option func(*Executor)

// WithSleep replaces the wait implementation. Tests use it to observe backoff.
func WithSleep(fn SleepFunc) Option {
	return func(e *Executor) {
		e.sleep = fn
	}
}

// WithRetryable replaces the error classifier. By default only backend errors are retried.
func WithRetryable(fn func(error) bool) Option {
	return func(e *Executor) {
		e.retryable = fn
	}
}

// New creates an Executor with the fixed policy (3 attempts, 1s linear backoff).
func New(logger *zap.Logger, opts ...Option) *Executor {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Executor{
		maxAttempts: MaxAttempts,
		baseDelay:   BaseDelay,
		logger:      logger,
		retryable:   storage.IsBackend,
		sleep:       Sleep,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Sleep is the default SleepFunc.
func Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Backoff returns the wait after the given failed attempt (1-based).
func (e *Executor) Backoff(attempt int) time.Duration {
	return time.Duration(attempt) * e.baseDelay
}

// Do executes fn, retrying backend-classified failures.
// Non-retryable errors are returned immediately and untouched. After the last
// attempt the last error is returned. A cancelled wait yields an interrupted
// error and stops retrying.
func Do[T any](ctx context.Context, e *Executor, operation string, fn func() (T, error)) (T, error) {
	var zero T
	var lastErr error

	for attempt := 1; attempt <= e.maxAttempts; attempt++ {
		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !e.retryable(err) {
			return zero, err
		}
		if attempt == e.maxAttempts {
			break
		}

		wait := e.Backoff(attempt)
		e.logger.Warn("Storage operation failed, retrying",
			zap.String("operation", operation),
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", e.maxAttempts),
			zap.Duration("backoff", wait),
			zap.Error(err))
		metrics.RecordRetry(operation)

		if err := e.sleep(ctx, wait); err != nil {
			return zero, storage.Interrupted(operation, err)
		}
	}

	return zero, lastErr
}

// Run is Do for operations without a result.
func Run(ctx context.Context, e *Executor, operation string, fn func() error) error {
	_, err := Do(ctx, e, operation, func() (struct{}, error) {
		return struct{}{}, fn()
	})
	return err
}
