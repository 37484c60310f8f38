package agent

import (
	"context"
	"time"
)

// Default retry budget for one agent call: 3 attempts with a short fixed
// pause between them.
const (
	DefaultMaxAttempts = 3
	DefaultBackoff     = 1200 * time.Millisecond
)

// RetryPolicy is a bounded fixed-backoff retry, decoupled from the business
// logic it guards. Retries must not mutate caller-visible state before
// success; fn is expected to be self-contained.
type RetryPolicy struct {
	MaxAttempts int
	Backoff     time.Duration
}

// NewRetryPolicy returns a policy with the given attempt budget, applying
// defaults for non-positive values.
func NewRetryPolicy(maxAttempts int) RetryPolicy {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return RetryPolicy{MaxAttempts: maxAttempts, Backoff: DefaultBackoff}
}

// Do runs fn up to MaxAttempts times, sleeping Backoff between attempts.
// Context cancellation aborts immediately, both between attempts and (via
// the context handed to fn) during one.
func (p RetryPolicy) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	attempts := p.MaxAttempts
	if attempts <= 0 {
		attempts = DefaultMaxAttempts
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if lastErr = fn(ctx); lastErr == nil {
			return nil
		}
		if attempt == attempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(p.Backoff):
		}
	}
	return lastErr
}
