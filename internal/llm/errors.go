package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

var (
	// ErrUnavailable wraps transport failures and 5xx replies.
	ErrUnavailable = errors.New("llm provider unavailable")

	// ErrRejected wraps 4xx replies other than 429. Retrying will not help.
	ErrRejected = errors.New("llm request rejected")

	// ErrTruncated means the reply hit the token limit before it finished.
	ErrTruncated = errors.New("llm reply truncated at max tokens")
)

// RateLimitError is returned for HTTP 429 replies.
type RateLimitError struct {
	RetryAfter time.Duration
	Err        error
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("llm rate limited, retry after %s: %v", e.RetryAfter, e.Err)
	}
	return fmt.Sprintf("llm rate limited: %v", e.Err)
}

func (e *RateLimitError) Unwrap() error { return e.Err }

// SchemaError means the reply was not JSON matching the requested schema.
type SchemaError struct {
	Schema string
	Raw    []byte
	Err    error
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("llm reply does not match schema %q: %v", e.Schema, e.Err)
}

func (e *SchemaError) Unwrap() error { return e.Err }

// classify maps an SDK error and its HTTP status (0 when unknown) onto the
// errors above. Context errors pass through untouched.
func classify(status int, err error) error {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	case status == http.StatusTooManyRequests:
		return &RateLimitError{Err: err}
	case status >= 400 && status < 500:
		return fmt.Errorf("%w (%d): %w", ErrRejected, status, err)
	default:
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
}

// transient reports whether err is worth another attempt.
func transient(err error) bool {
	var rl *RateLimitError
	return errors.As(err, &rl) || errors.Is(err, ErrUnavailable)
}
