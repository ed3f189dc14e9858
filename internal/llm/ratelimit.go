package llm

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// newRateLimiter creates a token bucket allowing requestsPerMinute calls with
// a full minute of burst.
func newRateLimiter(requestsPerMinute int) *rate.Limiter {
	if requestsPerMinute <= 0 {
		requestsPerMinute = 60
	}
	return rate.NewLimiter(rate.Limit(float64(requestsPerMinute)/60.0), requestsPerMinute)
}

// waitForToken blocks until limiter grants a token or ctx is canceled.
func waitForToken(ctx context.Context, limiter *rate.Limiter) error {
	if err := limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter canceled: %w", err)
	}
	return nil
}
