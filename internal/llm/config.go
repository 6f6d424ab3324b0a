package llm

import (
	"fmt"
	"os"
	"slices"
	"strings"
)

// Providers lists the accepted values of Config.Provider. "mock" answers
// offline with synthetic questions.
var Providers = []string{"gemini", "openai", "anthropic", "openrouter", "mock"}

// Config holds provider selection and per-provider model settings. API
// keys come from the stored credential and are set per call with
// WithAPIKey.
type Config struct {
	Provider string `env:"QUIZBANK_LLM_PROVIDER" envDefault:"gemini"`

	Gemini     GeminiConfig
	OpenAI     OpenAIConfig
	Anthropic  AnthropicConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig
}

type GeminiConfig struct {
	APIKey string
	Model  string `env:"QUIZBANK_GEMINI_MODEL" envDefault:"gemini-flash"`
}

type OpenAIConfig struct {
	APIKey  string
	Model   string `env:"QUIZBANK_OPENAI_MODEL" envDefault:"gpt-mini"`
	BaseURL string `env:"QUIZBANK_OPENAI_BASE_URL"`
}

type AnthropicConfig struct {
	APIKey string
	Model  string `env:"QUIZBANK_ANTHROPIC_MODEL" envDefault:"claude-haiku"`
}

type OpenRouterConfig struct {
	APIKey  string
	Model   string `env:"QUIZBANK_OPENROUTER_MODEL" envDefault:"google/gemini-2.5-flash"`
	BaseURL string `env:"QUIZBANK_OPENROUTER_BASE_URL"`
}

// DefaultConfig matches the envDefault tags, for callers that skip env
// parsing.
func DefaultConfig() Config {
	return Config{
		Provider:   "gemini",
		Gemini:     GeminiConfig{Model: "gemini-flash"},
		OpenAI:     OpenAIConfig{Model: "gpt-mini"},
		Anthropic:  AnthropicConfig{Model: "claude-haiku"},
		OpenRouter: OpenRouterConfig{Model: "google/gemini-2.5-flash"},
		Retry:      DefaultRetryConfig(),
	}
}

// WithAPIKey returns a copy of c with key set on the selected provider.
func (c Config) WithAPIKey(key string) Config {
	switch c.Provider {
	case "gemini":
		c.Gemini.APIKey = key
	case "openai":
		c.OpenAI.APIKey = key
	case "anthropic":
		c.Anthropic.APIKey = key
	case "openrouter":
		c.OpenRouter.APIKey = key
	}
	return c
}

// DiscoverKey reads the provider's conventional key variable, e.g.
// GEMINI_API_KEY. It is the fallback when no credential is stored.
func DiscoverKey(provider string) string {
	if provider == "" || provider == "mock" || !slices.Contains(Providers, provider) {
		return ""
	}
	return os.Getenv(strings.ToUpper(provider) + "_API_KEY")
}

func (c Config) Validate() error {
	if !slices.Contains(Providers, c.Provider) {
		return fmt.Errorf("unknown LLM provider %q (want one of %s)", c.Provider, strings.Join(Providers, ", "))
	}
	return nil
}
