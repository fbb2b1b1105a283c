package common

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Veraticus/bankwallet/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastRetry(attempts int) service.RetryOptions {
	return service.RetryOptions{
		MaxAttempts:  attempts,
		InitialDelay: time.Millisecond,
		MaxDelay:     2 * time.Millisecond,
		Multiplier:   2,
	}
}

func TestWithRetry(t *testing.T) {
	errTransient := errors.New("transient")

	tests := []struct {
		name      string
		failures  int
		err       error
		attempts  int
		wantCalls int
		wantErrIs error
	}{
		{
			name:      "succeeds first time",
			failures:  0,
			attempts:  3,
			wantCalls: 1,
		},
		{
			name:      "succeeds after transient failures",
			failures:  2,
			err:       errTransient,
			attempts:  3,
			wantCalls: 3,
		},
		{
			name:      "exhausts attempts",
			failures:  5,
			err:       errTransient,
			attempts:  3,
			wantCalls: 3,
			wantErrIs: ErrMaxRetries,
		},
		{
			name:      "non retryable stops immediately",
			failures:  5,
			err:       &RetryableError{Err: errTransient, Retryable: false},
			attempts:  3,
			wantCalls: 1,
			wantErrIs: errTransient,
		},
		{
			name:      "rate limit keeps retrying",
			failures:  1,
			err:       ErrRateLimit,
			attempts:  3,
			wantCalls: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := WithRetry(context.Background(), fastRetry(tt.attempts), func(context.Context) error {
				calls++
				if calls <= tt.failures {
					return tt.err
				}
				return nil
			})

			assert.Equal(t, tt.wantCalls, calls)
			if tt.wantErrIs == nil {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErrIs)
		})
	}
}

func TestWithRetry_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := WithRetry(ctx, service.RetryOptions{MaxAttempts: 3, InitialDelay: time.Second}, func(context.Context) error {
		return errors.New("boom")
	})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestBackoff_DelayFor(t *testing.T) {
	opts := service.RetryOptions{
		MaxAttempts:  5,
		InitialDelay: 100 * time.Millisecond,
		MaxDelay:     time.Second,
		Multiplier:   3,
	}

	t.Run("exponential and capped", func(t *testing.T) {
		b := newBackoff(opts)
		plain := errors.New("plain")
		assert.Equal(t, 100*time.Millisecond, b.delayFor(plain))
		assert.Equal(t, 300*time.Millisecond, b.delayFor(plain))
		assert.Equal(t, 900*time.Millisecond, b.delayFor(plain))
		assert.Equal(t, time.Second, b.delayFor(plain))
	})

	t.Run("server hint wins", func(t *testing.T) {
		b := newBackoff(opts)
		assert.Equal(t, 400*time.Millisecond, b.delayFor(RateLimited(400*time.Millisecond)))
		assert.Equal(t, time.Second, b.delayFor(RateLimited(time.Minute)))
	})

	t.Run("rate limit without hint waits longest", func(t *testing.T) {
		b := newBackoff(opts)
		assert.Equal(t, time.Second, b.delayFor(RateLimited(0)))
	})
}

func TestPermanent(t *testing.T) {
	cause := errors.New("bad request")
	calls := 0
	err := WithRetry(context.Background(), fastRetry(3), func(context.Context) error {
		calls++
		return Permanent(cause)
	})

	assert.Equal(t, 1, calls)
	assert.ErrorIs(t, err, cause)
	assert.False(t, IsRetryable(err))
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(ErrRateLimit))
	assert.True(t, IsRetryable(RateLimited(time.Second)))
	assert.True(t, IsRetryable(context.DeadlineExceeded))
	assert.True(t, IsRetryable(&RetryableError{Err: errors.New("x"), Retryable: true}))
	assert.False(t, IsRetryable(&RetryableError{Err: errors.New("x"), Retryable: false}))
	assert.False(t, IsRetryable(errors.New("plain")))
}

func TestUserMessage(t *testing.T) {
	err := NewUserError("Could not load favorites", errors.New("dial tcp: refused"))

	assert.Equal(t, "Could not load favorites", UserMessage(err))
	assert.Equal(t, "Could not load favorites: dial tcp: refused", err.Error())
	assert.Equal(t, "plain", UserMessage(errors.New("plain")))
	assert.Empty(t, UserMessage(nil))
}
