package llm

import (
	"context"
	"fmt"

	"github.com/abhisek/quizbank/internal/store"
	"github.com/rs/zerolog"
)

// Options wires the optional decorators around a provider.
type Options struct {
	Logger zerolog.Logger

	// Events receives one record per attempt. Nil disables the event log.
	Events store.EventRepo

	// Metrics observes every attempt. Nil disables metrics.
	Metrics Recorder

	// MockFallback answers requests for the "mock" provider.
	MockFallback func(Request) MockResponse
}

// NewProvider creates the configured provider for apiKey and wraps it as
// caller → retry → metrics → logging → base. The mock provider ignores
// the key.
func NewProvider(ctx context.Context, cfg Config, apiKey string, opts Options) (Provider, error) {
	var (
		base Provider
		err  error
	)

	cfg = cfg.WithAPIKey(apiKey)
	switch cfg.Provider {
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		m := NewMockProvider()
		m.Fallback = opts.MockFallback
		base = m
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	p := base
	if opts.Events != nil {
		p = WithLogging(p, cfg.Provider, opts.Events, opts.Logger)
	}
	if opts.Metrics != nil {
		p = WithMetrics(p, cfg.Provider, opts.Metrics)
	}
	return WithRetry(p, cfg.Retry, opts.Logger), nil
}
