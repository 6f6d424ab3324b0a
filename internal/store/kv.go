package store

import (
	"context"
	"errors"
)

// The persisted store holds exactly two entries.
const (
	// KeyBank holds the whole question bank as one flat JSON array.
	KeyBank = "quizbank.items"

	// KeyCredential holds the generation service API key.
	KeyCredential = "quizbank.api_key"
)

// ErrWriteFailed is wrapped by every Put or Delete failure so callers can
// classify storage errors without knowing the backend.
var ErrWriteFailed = errors.New("storage write failed")

// KV is client-local key/value storage.
type KV interface {
	// Get returns the value for key. A missing key is not an error.
	Get(ctx context.Context, key string) (string, bool, error)

	Put(ctx context.Context, key, value string) error

	// Delete removes the keys. Missing keys are ignored.
	Delete(ctx context.Context, keys ...string) error

	Close() error
}
