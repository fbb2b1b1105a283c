package common

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Veraticus/bankwallet/internal/service"
)

var (
	// ErrRateLimit indicates that the API rate limit has been exceeded.
	ErrRateLimit = errors.New("rate limit exceeded")
	// ErrMaxRetries indicates that all retry attempts have been exhausted.
	ErrMaxRetries = errors.New("max retries exceeded")
)

// RetryableError marks whether a failure is worth another attempt.
// After, when set, is the wait the remote side asked for.
type RetryableError struct {
	Err       error
	Retryable bool
	After     time.Duration
}

func (e *RetryableError) Error() string {
	return e.Err.Error()
}

func (e *RetryableError) Unwrap() error {
	return e.Err
}

// RateLimited builds a retryable ErrRateLimit honoring the server's wait hint.
func RateLimited(after time.Duration) error {
	return &RetryableError{Err: ErrRateLimit, Retryable: true, After: after}
}

// Permanent wraps err so WithRetry gives up on it immediately.
func Permanent(err error) error {
	return &RetryableError{Err: err, Retryable: false}
}

type backoff struct {
	opts service.RetryOptions
	next time.Duration
}

func newBackoff(opts service.RetryOptions) *backoff {
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = 3
	}
	if opts.InitialDelay <= 0 {
		opts.InitialDelay = 100 * time.Millisecond
	}
	if opts.MaxDelay <= 0 {
		opts.MaxDelay = 30 * time.Second
	}
	if opts.Multiplier <= 0 {
		opts.Multiplier = 2.0
	}
	return &backoff{opts: opts, next: opts.InitialDelay}
}

// delayFor returns how long to sleep after err. Server hints win over the
// exponential schedule but never exceed MaxDelay.
func (b *backoff) delayFor(err error) time.Duration {
	delay := b.next
	b.next = min(time.Duration(float64(b.next)*b.opts.Multiplier), b.opts.MaxDelay)

	var retryable *RetryableError
	switch {
	case errors.As(err, &retryable) && retryable.After > 0:
		return min(retryable.After, b.opts.MaxDelay)
	case errors.Is(err, ErrRateLimit):
		return b.opts.MaxDelay
	}
	return delay
}

// WithRetry runs op until it succeeds, returns a permanent error, or runs
// out of attempts. Cancellation of ctx aborts the wait between attempts.
func WithRetry(ctx context.Context, opts service.RetryOptions, op func(ctx context.Context) error) error {
	b := newBackoff(opts)

	for attempt := 1; ; attempt++ {
		err := op(ctx)
		if err == nil {
			return nil
		}

		var retryable *RetryableError
		if errors.As(err, &retryable) && !retryable.Retryable {
			return err
		}
		if errors.Is(err, context.Canceled) {
			return err
		}
		if attempt >= b.opts.MaxAttempts {
			return fmt.Errorf("%w after %d attempts: %w", ErrMaxRetries, attempt, err)
		}

		delay := b.delayFor(err)
		slog.Warn("Request failed, backing off",
			"attempt", attempt,
			"max_attempts", b.opts.MaxAttempts,
			"delay", delay,
			"error", err)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}
