// Package triviatest builds offline trivia services for tests.
package triviatest

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/abhisek/quizbank/internal/config"
	"github.com/abhisek/quizbank/internal/llm"
	"github.com/abhisek/quizbank/internal/store"
	"github.com/abhisek/quizbank/internal/trivia"
)

// NoSleep skips auto-fill pauses but still honors cancellation.
type NoSleep struct{}

func (NoSleep) Sleep(ctx context.Context, _ time.Duration) error { return ctx.Err() }

// Config returns an in-memory configuration for provider.
func Config(provider string) *config.Config {
	llmCfg := llm.DefaultConfig()
	llmCfg.Provider = provider
	llmCfg.Retry.MaxRetries = 0
	return &config.Config{
		Store: "memory",
		LLM:   llmCfg,
		Bank:  config.Bank{Cap: 100, ReviewSize: 5},
		AutoFill: config.AutoFill{
			BatchSize:      10,
			Pause:          time.Second,
			RateLimitPause: time.Second,
			OverloadPause:  time.Second,
			ErrorPause:     time.Second,
		},
	}
}

// New returns a service backed by the mock provider and an in-memory KV.
func New(t testing.TB) *trivia.Service {
	t.Helper()
	return NewWith(t, Config("mock"), trivia.Deps{})
}

// NewWith fills in the KV, sleeper and logger that deps leaves empty.
func NewWith(t testing.TB, cfg *config.Config, deps trivia.Deps) *trivia.Service {
	t.Helper()
	if deps.KV == nil {
		deps.KV = store.NewMemoryKV()
	}
	if deps.Sleeper == nil {
		deps.Sleeper = NoSleep{}
	}
	deps.Logger = zerolog.Nop()
	return trivia.New(context.Background(), cfg, deps)
}
