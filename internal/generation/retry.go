package generation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"time"
)

// Retry defaults
const (
	DefaultMaxRetries = 3
	DefaultBaseDelay  = 2 * time.Second
)

// RetryPolicy configures Retry.
type RetryPolicy struct {
	// MaxRetries is the number of retries after the first attempt.
	MaxRetries int
	// BaseDelay is doubled after every attempt and scaled by a jitter factor
	// in [0.5, 1.0).
	BaseDelay time.Duration
}

// Retry calls fn until it succeeds, returns an error that does not wrap
// ErrTransientFailure, or runs out of retries.
func Retry(ctx context.Context, policy RetryPolicy, logger *slog.Logger, fn func(ctx context.Context) error) error {
	if logger == nil {
		logger = slog.Default()
	}
	if policy.MaxRetries < 0 {
		logger.WarnContext(ctx, "invalid max retries value, using default", "max_retries", DefaultMaxRetries)
		policy.MaxRetries = DefaultMaxRetries
	}
	if policy.BaseDelay <= 0 {
		policy.BaseDelay = DefaultBaseDelay
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	for attempt := 0; ; attempt++ {
		err := fn(ctx)
		if err == nil {
			return nil
		}

		if !errors.Is(err, ErrTransientFailure) {
			logger.WarnContext(ctx, "permanent error occurred, not retrying",
				"attempt", attempt+1,
				"error", err)
			return err
		}

		if attempt >= policy.MaxRetries {
			logger.WarnContext(ctx, "maximum retry attempts reached",
				"max_retries", policy.MaxRetries,
				"error", err)
			return fmt.Errorf("exceeded maximum retry attempts (%d): %w", policy.MaxRetries, err)
		}

		// delay = baseDelay * 2^attempt * [0.5, 1.0)
		backoff := float64(policy.BaseDelay) * math.Pow(2, float64(attempt))
		delay := time.Duration(backoff * (0.5 + rng.Float64()*0.5))

		logger.InfoContext(ctx, "retrying after delay",
			"attempt", attempt+1,
			"delay", delay,
			"error", err)

		timer := time.NewTimer(delay)
		select {
		case <-timer.C:
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("%w: %v", ErrTransientFailure, ctx.Err())
		}
	}
}
