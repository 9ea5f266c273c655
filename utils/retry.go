package utils

import (
	"context"
	"fmt"
	"time"
)

// RetryConfig holds the parameters for the retry strategy.
type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Logger      *Logger
}

// Do executes fn with exponential back-off retry logic. With MaxAttempts <= 1
// fn runs exactly once and its error is returned unwrapped.
func (r *RetryConfig) Do(ctx context.Context, operationName string, fn func(ctx context.Context) error) error {
	if r.MaxAttempts <= 1 {
		return fn(ctx)
	}

	var lastErr error
	delay := r.BaseDelay

	for attempt := 1; attempt <= r.MaxAttempts; attempt++ {
		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}

		if attempt < r.MaxAttempts {
			r.Logger.Warn("[retry] %s failed (attempt %d/%d): %v, retrying in %v",
				operationName, attempt, r.MaxAttempts, lastErr, delay)
			select {
			case <-ctx.Done():
				return fmt.Errorf("%s cancelled after %d attempts: %w", operationName, attempt, ctx.Err())
			case <-time.After(delay):
			}
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, r.MaxAttempts, lastErr)
}
