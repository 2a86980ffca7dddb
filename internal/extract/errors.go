package extract

import (
	"fmt"
	"strconv"
	"time"
)

// AuthError indicates a missing or rejected API credential. It is never
// retried; the caller goes straight to the fallback generator.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("completion API auth failed: %v", e.Err)
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// TimeoutError indicates the configured budget elapsed before the
// completion API responded.
type TimeoutError struct {
	Budget time.Duration
	Err    error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("completion API timed out after %s: %v", e.Budget, e.Err)
}

func (e *TimeoutError) Unwrap() error {
	return e.Err
}

// TransportError indicates a network, DNS, or TLS failure reaching the
// completion API.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("completion API transport error: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// UpstreamError indicates a non-2xx status from the completion API.
// RetryAfter is populated from the Retry-After header on 429 responses
// for the caller's information; this component itself never retries.
type UpstreamError struct {
	StatusCode int
	RetryAfter time.Duration
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("completion API error (status %d): %s", e.StatusCode, e.Body)
}

// NormalizationError indicates the model responded but its output could
// not be turned into a valid typed record.
type NormalizationError struct {
	Reason string
	Raw    string
}

func (e *NormalizationError) Error() string {
	return fmt.Sprintf("normalization failed: %s (raw: %s)", e.Reason, truncate(e.Raw, 200))
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

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
