package agent

import (
	"fmt"
	"strconv"
	"time"

	"sovbridge/internal/domain"
)

// ExtractionError indicates an agent call failed for good after exhausting
// its retry budget. It wraps domain.ErrExtractionService so callers can match
// with errors.Is.
type ExtractionError struct {
	Provider string
	Attempts int
	Err      error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("%s extraction failed after %d attempts: %v", e.Provider, e.Attempts, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return domain.ErrExtractionService
}

// NewExtractionError creates an ExtractionError.
func NewExtractionError(provider string, attempts int, err error) *ExtractionError {
	return &ExtractionError{Provider: provider, Attempts: attempts, Err: err}
}

// RateLimitError indicates an agent provider returned HTTP 429.
type RateLimitError struct {
	Err        error
	RetryAfter time.Duration
	Provider   string
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("%s rate limited (retry after %s): %v", e.Provider, e.RetryAfter, e.Err)
}

func (e *RateLimitError) Unwrap() error {
	return e.Err
}

// NewRateLimitError creates a RateLimitError. If retryAfterSecs is 0, defaults to 60s.
func NewRateLimitError(provider string, err error, retryAfterSecs int) *RateLimitError {
	if retryAfterSecs <= 0 {
		retryAfterSecs = 60
	}
	return &RateLimitError{
		Err:        err,
		RetryAfter: time.Duration(retryAfterSecs) * time.Second,
		Provider:   provider,
	}
}

// ParseRetryAfterHeader parses a Retry-After header value into seconds.
// Returns 0 if the value is empty or not a valid integer.
func ParseRetryAfterHeader(val string) int {
	if val == "" {
		return 0
	}
	secs, err := strconv.Atoi(val)
	if err != nil {
		return 0
	}
	return secs
}
