package common

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Veraticus/octobadge/internal/service"
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
	errPermanent := errors.New("permanent")

	tests := []struct {
		failures  int
		err       error
		name      string
		wantCalls int
		wantErr   bool
	}{
		{name: "succeeds first time", failures: 0, wantCalls: 1},
		{name: "retries rate limit then succeeds", failures: 2, err: ErrRateLimit, wantCalls: 3},
		{name: "gives up after max attempts", failures: 5, err: ErrRateLimit, wantCalls: 3, wantErr: true},
		{name: "does not retry permanent errors", failures: 5, err: errPermanent, wantCalls: 1, wantErr: true},
		{
			name:      "retryable wrapper is honored",
			failures:  1,
			err:       &RetryableError{Err: errPermanent, Retryable: true},
			wantCalls: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := WithRetry(context.Background(), func() error {
				calls++
				if calls <= tt.failures {
					return tt.err
				}
				return nil
			}, fastRetry(3))

			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.wantCalls, calls)
		})
	}
}

func TestWithRetry_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	opts := fastRetry(3)
	opts.InitialDelay = time.Hour
	opts.MaxDelay = time.Hour

	err := WithRetry(ctx, func() error { return ErrRateLimit }, opts)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestUserMessage(t *testing.T) {
	wrapped := NewUserError("User not found or API limit exceeded", ErrUserNotFound)

	assert.Equal(t, "User not found or API limit exceeded", UserMessage(wrapped))
	assert.ErrorIs(t, wrapped, ErrUserNotFound)
	assert.Equal(t, "boom", UserMessage(errors.New("boom")))
	assert.Empty(t, UserMessage(nil))
}

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, "DEBUG", level.String())

	_, err = ParseLevel("loud")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(ErrRateLimit))
	assert.True(t, IsRetryable(context.DeadlineExceeded))
	assert.False(t, IsRetryable(errors.New("other")))
	assert.False(t, IsRetryable(&RetryableError{Err: ErrRateLimit, Retryable: false}))
	assert.True(t, IsRetryable(&RetryableError{Err: errors.New("503"), Retryable: true}))
}
