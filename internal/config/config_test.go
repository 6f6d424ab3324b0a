package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Store != "sqlite" {
		t.Errorf("Store = %q, want sqlite", cfg.Store)
	}
	if cfg.Bank.Cap != 1000 || cfg.Bank.ReviewSize != 10 {
		t.Errorf("unexpected bank config: %+v", cfg.Bank)
	}
	want := AutoFill{
		BatchSize:      10,
		Pause:          5 * time.Second,
		RateLimitPause: 60 * time.Second,
		OverloadPause:  10 * time.Second,
		ErrorPause:     5 * time.Second,
	}
	if cfg.AutoFill != want {
		t.Errorf("AutoFill = %+v, want %+v", cfg.AutoFill, want)
	}
	if cfg.LLM.Provider != "gemini" || cfg.LLM.Gemini.Model != "gemini-flash" {
		t.Errorf("unexpected LLM config: %+v", cfg.LLM)
	}
	if cfg.LLM.Retry.MaxRetries != 5 || cfg.LLM.Retry.Policy.Base != time.Second {
		t.Errorf("unexpected retry config: %+v", cfg.LLM.Retry)
	}
	if cfg.Redis.Prefix != "quizbank:" {
		t.Errorf("Redis.Prefix = %q", cfg.Redis.Prefix)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("QUIZBANK_BANK_CAP", "50")
	t.Setenv("QUIZBANK_LLM_PROVIDER", "openai")
	t.Setenv("QUIZBANK_RATELIMIT_PAUSE", "2s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Bank.Cap != 50 {
		t.Errorf("Cap = %d, want 50", cfg.Bank.Cap)
	}
	if cfg.LLM.Provider != "openai" {
		t.Errorf("Provider = %q", cfg.LLM.Provider)
	}
	if cfg.AutoFill.RateLimitPause != 2*time.Second {
		t.Errorf("RateLimitPause = %s", cfg.AutoFill.RateLimitPause)
	}
}

func TestLoad_DotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("QUIZBANK_REVIEW_SIZE=3\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	// godotenv sets real process env; t.Setenv restores it afterwards.
	t.Setenv("QUIZBANK_REVIEW_SIZE", "")
	os.Unsetenv("QUIZBANK_REVIEW_SIZE")

	cfg, err := Load(path, filepath.Join(t.TempDir(), "missing.env"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Bank.ReviewSize != 3 {
		t.Errorf("ReviewSize = %d, want 3", cfg.Bank.ReviewSize)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"unknown store", "QUIZBANK_STORE", "postgres"},
		{"unknown provider", "QUIZBANK_LLM_PROVIDER", "nope"},
		{"zero cap", "QUIZBANK_BANK_CAP", "0"},
		{"bad duration", "QUIZBANK_AUTOFILL_PAUSE", "soon"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
