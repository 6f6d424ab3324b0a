// Package config loads quizbank settings from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/abhisek/quizbank/internal/llm"
	"github.com/abhisek/quizbank/internal/store"
	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds all runtime configuration.
type Config struct {
	// DBPath overrides the SQLite location. Empty means store.DefaultDBPath.
	DBPath string `env:"QUIZBANK_DB"`

	// Store selects the KV backend: "sqlite" or "redis".
	Store string `env:"QUIZBANK_STORE" envDefault:"sqlite"`

	Redis store.RedisConfig
	LLM   llm.Config

	Bank     Bank
	AutoFill AutoFill

	LogLevel    string `env:"QUIZBANK_LOG_LEVEL" envDefault:"info"`
	MetricsAddr string `env:"QUIZBANK_METRICS_ADDR"`
}

// Bank sizes the question bank and sessions.
type Bank struct {
	// Cap is the maximum number of items kept per level.
	Cap        int `env:"QUIZBANK_BANK_CAP" envDefault:"1000"`
	ReviewSize int `env:"QUIZBANK_REVIEW_SIZE" envDefault:"10"`
}

// AutoFill paces the auto-fill loop.
type AutoFill struct {
	BatchSize      int           `env:"QUIZBANK_BATCH_SIZE" envDefault:"10"`
	Pause          time.Duration `env:"QUIZBANK_AUTOFILL_PAUSE" envDefault:"5s"`
	RateLimitPause time.Duration `env:"QUIZBANK_RATELIMIT_PAUSE" envDefault:"60s"`
	OverloadPause  time.Duration `env:"QUIZBANK_OVERLOAD_PAUSE" envDefault:"10s"`
	ErrorPause     time.Duration `env:"QUIZBANK_ERROR_PAUSE" envDefault:"5s"`
}

// Load reads the given .env files (missing files are ignored) and then
// parses the environment. Variables already set win over .env values.
func Load(envFiles ...string) (*Config, error) {
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the core cannot run with.
func (c *Config) Validate() error {
	switch c.Store {
	case "sqlite", "redis", "memory":
	default:
		return fmt.Errorf("unknown store backend: %q", c.Store)
	}
	if err := c.LLM.Validate(); err != nil {
		return err
	}
	if c.Bank.Cap <= 0 {
		return fmt.Errorf("QUIZBANK_BANK_CAP must be positive, got %d", c.Bank.Cap)
	}
	if c.AutoFill.BatchSize <= 0 {
		return fmt.Errorf("QUIZBANK_BATCH_SIZE must be positive, got %d", c.AutoFill.BatchSize)
	}
	if c.LLM.Retry.MaxRetries < 0 {
		return fmt.Errorf("QUIZBANK_MAX_RETRIES must not be negative")
	}
	return nil
}
