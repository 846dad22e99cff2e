package assets

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Retry policy defaults.
const (
	DefaultAttempts = 3
	DefaultBackoff  = 200 * time.Millisecond
)

// RetrySource retries failed fetches with exponential backoff. Missing assets
// are not retried.
type RetrySource struct {
	Source   Source
	Attempts int
	Backoff  time.Duration
}

// WithRetry wraps src with the default retry policy.
func WithRetry(src Source) RetrySource {
	return RetrySource{Source: src, Attempts: DefaultAttempts, Backoff: DefaultBackoff}
}

// Fetch tries up to Attempts times, doubling the wait after each failure.
func (s RetrySource) Fetch(ctx context.Context, name string) ([]byte, error) {
	attempts := s.Attempts
	if attempts <= 0 {
		attempts = 1
	}
	wait := s.Backoff
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		data, err := s.Source.Fetch(ctx, name)
		if err == nil {
			return data, nil
		}
		lastErr = err
		if errors.Is(err, ErrNotFound) || ctx.Err() != nil || attempt == attempts {
			break
		}
		tracer().Infof("fetch %s failed (attempt %d/%d): %v", name, attempt, attempts, err)
		if wait > 0 {
			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return nil, fmt.Errorf("failed to fetch %s: %w", name, ctx.Err())
			case <-timer.C:
			}
			wait *= 2
		}
	}
	return nil, lastErr
}
