package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/quizbank/internal/store"
)

// Kind classifies a failure for retry and user messaging decisions.
type Kind int

const (
	KindUnclassified Kind = iota
	KindMissingCredential
	KindRateLimited
	KindOverloaded
	KindInvalidResponseFormat
	KindEmptyResponse
	KindStorageWriteFailure
)

func (k Kind) String() string {
	switch k {
	case KindMissingCredential:
		return "missing_credential"
	case KindRateLimited:
		return "rate_limited"
	case KindOverloaded:
		return "overloaded"
	case KindInvalidResponseFormat:
		return "invalid_response_format"
	case KindEmptyResponse:
		return "empty_response"
	case KindStorageWriteFailure:
		return "storage_write_failure"
	}
	return "unclassified"
}

// Retryable reports whether the generation client retries this kind.
// Only capacity exhaustion and rate limiting are transient.
func (k Kind) Retryable() bool {
	return k == KindRateLimited || k == KindOverloaded
}

var (
	// ErrMissingCredential is returned before any network call when no API
	// key is available.
	ErrMissingCredential = errors.New("API key is not set")

	// ErrEmptyResponse means the provider returned no text at all.
	ErrEmptyResponse = errors.New("empty response from model")

	// ErrRetriesExhausted is returned when the retry budget ran out without
	// a recorded error.
	ErrRetriesExhausted = errors.New("exhausted retries")
)

// ErrRateLimit indicates the provider returned a rate limit or quota error (429).
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited (retry after %s): %v", e.RetryAfter, e.Err)
	}
	return fmt.Sprintf("rate limited: %v", e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrOverloaded indicates the model is at capacity (503).
type ErrOverloaded struct {
	Err error
}

func (e *ErrOverloaded) Error() string {
	return fmt.Sprintf("model overloaded: %v", e.Err)
}

func (e *ErrOverloaded) Unwrap() error { return e.Err }

// ErrInvalidResponse indicates the model returned content that is not JSON
// or does not conform to the requested schema.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid response format: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrProviderUnavailable wraps any other provider failure (network errors,
// 4xx/5xx without a specific meaning).
type ErrProviderUnavailable struct {
	StatusCode int
	Err        error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err == nil {
		return "LLM provider unavailable"
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("LLM provider error (status %d): %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("LLM provider unavailable: %v", e.Err)
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrMaxTokensExceeded indicates the response was truncated because it
// hit the MaxTokens limit.
type ErrMaxTokensExceeded struct {
	Content json.RawMessage
}

func (e *ErrMaxTokensExceeded) Error() string {
	return "LLM response truncated: max tokens exceeded"
}

// KindOf classifies err. Typed errors win; otherwise the message is matched
// against the status/phrase heuristics providers use in free text.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnclassified
	}

	var (
		rl  *ErrRateLimit
		ovl *ErrOverloaded
		inv *ErrInvalidResponse
	)
	switch {
	case errors.Is(err, ErrMissingCredential):
		return KindMissingCredential
	case errors.Is(err, ErrEmptyResponse):
		return KindEmptyResponse
	case errors.Is(err, store.ErrWriteFailed):
		return KindStorageWriteFailure
	case errors.As(err, &rl):
		return KindRateLimited
	case errors.As(err, &ovl):
		return KindOverloaded
	case errors.As(err, &inv):
		return KindInvalidResponseFormat
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "429") || strings.Contains(msg, "quota") || strings.Contains(msg, "resource_exhausted"):
		return KindRateLimited
	case strings.Contains(msg, "503") || strings.Contains(msg, "overloaded") || strings.Contains(err.Error(), "UNAVAILABLE"):
		return KindOverloaded
	}
	return KindUnclassified
}
