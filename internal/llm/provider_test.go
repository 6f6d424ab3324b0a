package llm

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/abhisek/quizbank/internal/store"
	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
)

func TestMockProvider_ReturnsCannedResponses(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`[1]`), Usage: Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}},
		MockResponse{Content: json.RawMessage(`[2]`)},
	)

	resp1, err := mock.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "first"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp1.Content) != `[1]` {
		t.Fatalf("expected [1], got %s", resp1.Content)
	}
	if resp1.Usage.InputTokens != 10 {
		t.Fatalf("expected 10 input tokens, got %d", resp1.Usage.InputTokens)
	}

	resp2, err := mock.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp2.Content) != `[2]` {
		t.Fatalf("expected [2], got %s", resp2.Content)
	}
}

func TestMockProvider_EmptyQueueReturnsError(t *testing.T) {
	mock := NewMockProvider()
	_, err := mock.Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got: %T", err)
	}
}

func TestMockProvider_Fallback(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`"queued"`)})
	mock.Fallback = func(req Request) MockResponse {
		return MockResponse{Content: json.RawMessage(`"fallback"`)}
	}

	for _, want := range []string{`"queued"`, `"fallback"`, `"fallback"`} {
		resp, err := mock.Generate(context.Background(), Request{})
		if err != nil {
			t.Fatal(err)
		}
		if string(resp.Content) != want {
			t.Errorf("got %s, want %s", resp.Content, want)
		}
	}
	if mock.CallCount() != 3 {
		t.Errorf("expected 3 calls, got %d", mock.CallCount())
	}
}

func TestPurposeContext(t *testing.T) {
	ctx := context.Background()
	if p := PurposeFrom(ctx); p != "unknown" {
		t.Fatalf("expected 'unknown', got %q", p)
	}

	ctx = WithTag(ctx, Tag{Purpose: "manual", Level: "expert", Batch: "b-9"})
	ctx = WithPurpose(ctx, "autofill")
	if p := PurposeFrom(ctx); p != "autofill" {
		t.Fatalf("expected 'autofill', got %q", p)
	}
	if tag := TagFrom(ctx); tag.Level != "expert" || tag.Batch != "b-9" {
		t.Fatalf("WithPurpose dropped the rest of the tag: %+v", tag)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		provider string
		wantErr  bool
	}{
		{"gemini", false},
		{"openai", false},
		{"anthropic", false},
		{"openrouter", false},
		{"mock", false},
		{"unknown", true},
		{"", true},
	}
	for _, tt := range tests {
		t.Run(tt.provider, func(t *testing.T) {
			err := Config{Provider: tt.provider}.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_WithAPIKey(t *testing.T) {
	cfg := DefaultConfig().WithAPIKey("k1")
	if cfg.Gemini.APIKey != "k1" {
		t.Errorf("expected gemini key set, got %q", cfg.Gemini.APIKey)
	}
	if cfg.OpenAI.APIKey != "" {
		t.Error("other providers must not receive the key")
	}
}

func TestDiscoverKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "from-env")
	if got := DiscoverKey("gemini"); got != "from-env" {
		t.Errorf("DiscoverKey(gemini) = %q", got)
	}
	if got := DiscoverKey("mock"); got != "" {
		t.Errorf("DiscoverKey(mock) = %q", got)
	}
}

func TestNewProvider_MissingCredential(t *testing.T) {
	for _, name := range []string{"gemini", "openai", "anthropic", "openrouter"} {
		cfg := DefaultConfig()
		cfg.Provider = name
		_, err := NewProvider(context.Background(), cfg, "", Options{Logger: zerolog.Nop()})
		if !errors.Is(err, ErrMissingCredential) {
			t.Errorf("%s: expected ErrMissingCredential, got %v", name, err)
		}
		if KindOf(err) != KindMissingCredential {
			t.Errorf("%s: expected kind missing_credential, got %s", name, KindOf(err))
		}
	}
}

type recordingRepo struct {
	store.NopEventRepo
	mu     sync.Mutex
	events []store.LLMRequestEventData
}

func (r *recordingRepo) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, data)
	return nil
}

type recordingMetrics struct {
	outcomes []string
}

func (r *recordingMetrics) ObserveLLMRequest(provider, outcome string, _ time.Duration) {
	r.outcomes = append(r.outcomes, provider+":"+outcome)
}

func TestNewProvider_DecoratorsSeeEveryAttempt(t *testing.T) {
	repo := &recordingRepo{}
	rec := &recordingMetrics{}

	calls := 0
	cfg := DefaultConfig()
	cfg.Provider = "mock"
	cfg.Retry.Policy = RetryPolicy{Base: time.Millisecond}
	p, err := NewProvider(context.Background(), cfg, "", Options{
		Logger:  zerolog.Nop(),
		Events:  repo,
		Metrics: rec,
		MockFallback: func(Request) MockResponse {
			calls++
			if calls == 1 {
				return MockResponse{Err: &ErrOverloaded{Err: errors.New("503")}}
			}
			return MockResponse{Content: json.RawMessage(`[]`), Usage: Usage{InputTokens: 7}}
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	ctx := WithTag(context.Background(), Tag{Purpose: "batch-gen", Level: "advanced", Batch: "b-1"})
	if _, err := p.Generate(ctx, Request{System: "sys"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.events) != 2 {
		t.Fatalf("expected 2 logged attempts, got %d", len(repo.events))
	}
	if repo.events[0].Success || repo.events[0].ErrorMessage == "" || repo.events[0].ErrorKind != "overloaded" {
		t.Errorf("first attempt should be logged as failed: %+v", repo.events[0])
	}
	last := repo.events[1]
	if !last.Success || last.Purpose != "batch-gen" || last.Provider != "mock" || last.InputTokens != 7 ||
		last.Level != "advanced" || last.BatchID != "b-1" || last.ErrorKind != "" {
		t.Errorf("unexpected second event: %+v", last)
	}

	want := []string{"mock:overloaded", "mock:ok"}
	if len(rec.outcomes) != 2 || rec.outcomes[0] != want[0] || rec.outcomes[1] != want[1] {
		t.Errorf("outcomes = %v, want %v", rec.outcomes, want)
	}
}

func TestSerializeRequest(t *testing.T) {
	got := serializeRequest(Request{
		System:   "be brief",
		Messages: []Message{{Role: RoleUser, Content: "hi"}},
		Schema:   &Schema{Name: "s", Definition: map[string]any{"type": "array"}},
	})
	want := "[system]\nbe brief\n\n[user]\nhi\n\n[schema: s]\n{\"type\":\"array\"}\n"
	if got != want {
		t.Errorf("serializeRequest = %q, want %q", got, want)
	}
}

func TestMapOpenAIError(t *testing.T) {
	tests := []struct {
		status int
		want   Kind
	}{
		{429, KindRateLimited},
		{503, KindOverloaded},
		{401, KindUnclassified},
	}
	for _, tt := range tests {
		err := mapOpenAIError(&openai.APIError{HTTPStatusCode: tt.status, Message: "boom"})
		if got := KindOf(err); got != tt.want {
			t.Errorf("status %d: kind = %s, want %s", tt.status, got, tt.want)
		}
	}
}

func TestLookupCost(t *testing.T) {
	c := LookupCost("gemini-2.5-flash")
	if c == nil {
		t.Fatal("expected pricing for gemini-2.5-flash")
	}
	if got := c.Cost(1_000_000, 1_000_000); math.Abs(got-2.8) > 1e-9 {
		t.Errorf("cost = %v, want 2.8", got)
	}
	if LookupCost("no-such-model") != nil {
		t.Error("expected nil for unknown model")
	}
}
