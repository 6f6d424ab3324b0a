package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func retryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries: 5,
		Policy: RetryPolicy{
			Base:       time.Millisecond,
			HintBuffer: time.Millisecond,
		},
	}
}

func TestRetry_SucceedsOnFirstAttempt(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`[]`)},
	)
	p := WithRetry(mock, retryConfig(), zerolog.Nop())

	resp, err := p.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != `[]` {
		t.Fatalf("unexpected content: %s", resp.Content)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
}

func TestRetry_OverloadedThenSuccess(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrOverloaded{Err: errors.New("503 The model is overloaded")}},
		MockResponse{Err: &ErrRateLimit{Err: errors.New("429 quota exceeded")}},
		MockResponse{Content: json.RawMessage(`[]`)},
	)
	p := WithRetry(mock, retryConfig(), zerolog.Nop())

	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mock.CallCount() != 3 {
		t.Fatalf("expected 3 calls, got %d", mock.CallCount())
	}
}

func TestRetry_ExhaustsBudget(t *testing.T) {
	mock := NewMockProvider()
	for i := range 10 {
		mock.AddResponse(MockResponse{Err: &ErrOverloaded{Err: fmt.Errorf("overloaded #%d", i)}})
	}
	p := WithRetry(mock, retryConfig(), zerolog.Nop())

	_, err := p.Generate(context.Background(), Request{})
	if err == nil {
		t.Fatal("expected error")
	}
	// First attempt plus five retries.
	if mock.CallCount() != 6 {
		t.Fatalf("expected 6 calls, got %d", mock.CallCount())
	}
	if err.Error() != "model overloaded: overloaded #5" {
		t.Fatalf("expected last error to surface, got %v", err)
	}
}

func TestRetry_NonRetryableSurfacesImmediately(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"invalid response", &ErrInvalidResponse{Err: errors.New("not an array")}},
		{"empty response", ErrEmptyResponse},
		{"missing credential", ErrMissingCredential},
		{"unclassified", &ErrProviderUnavailable{StatusCode: 400, Err: errors.New("bad request")}},
		{"max tokens", &ErrMaxTokensExceeded{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockProvider(
				MockResponse{Err: tt.err},
				MockResponse{Content: json.RawMessage(`[]`)},
			)
			p := WithRetry(mock, retryConfig(), zerolog.Nop())

			_, err := p.Generate(context.Background(), Request{})
			if !errors.Is(err, tt.err) {
				t.Fatalf("expected %v, got %v", tt.err, err)
			}
			if mock.CallCount() != 1 {
				t.Fatalf("expected 1 call (no retry), got %d", mock.CallCount())
			}
		})
	}
}

func TestRetry_MessageHeuristicsAreRetried(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: errors.New("googleapi: Error 429: You exceeded your current quota")},
		MockResponse{Content: json.RawMessage(`[]`)},
	)
	p := WithRetry(mock, retryConfig(), zerolog.Nop())

	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mock.CallCount() != 2 {
		t.Fatalf("expected 2 calls, got %d", mock.CallCount())
	}
}

func TestRetry_ContextCancellation(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrOverloaded{Err: errors.New("down")}},
		MockResponse{Content: json.RawMessage(`[]`)},
	)
	cfg := retryConfig()
	cfg.Policy.Base = time.Hour
	p := WithRetry(mock, cfg, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Generate(ctx, Request{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
}

func TestRetry_NoAttemptsBudget(t *testing.T) {
	p := WithRetry(NewMockProvider(), RetryConfig{MaxRetries: -1}, zerolog.Nop())
	_, err := p.Generate(context.Background(), Request{})
	if !errors.Is(err, ErrRetriesExhausted) {
		t.Fatalf("expected ErrRetriesExhausted, got %v", err)
	}
}

func TestRetry_ModelIDDelegates(t *testing.T) {
	p := WithRetry(NewMockProvider(), retryConfig(), zerolog.Nop())
	if p.ModelID() != "mock" {
		t.Fatalf("expected 'mock', got %q", p.ModelID())
	}
}

func TestRetryPolicy_ServerHintWins(t *testing.T) {
	policy := DefaultRetryConfig().Policy
	err := errors.New("Error 429: Resource has been exhausted, please retry in 3.5s")

	for attempt := range 5 {
		if got := policy.Wait(attempt, err); got != 4500*time.Millisecond {
			t.Fatalf("attempt %d: expected 4.5s, got %s", attempt, got)
		}
	}
}

func TestRetryPolicy_ExponentialWithJitter(t *testing.T) {
	policy := DefaultRetryConfig().Policy
	err := &ErrOverloaded{Err: errors.New("503")}

	for attempt := range 5 {
		base := time.Duration(1<<attempt) * time.Second
		got := policy.Wait(attempt, err)
		if got < base || got >= base+time.Second {
			t.Fatalf("attempt %d: wait %s outside [%s, %s)", attempt, got, base, base+time.Second)
		}
	}
}

func TestRetryPolicy_RetryAfterField(t *testing.T) {
	policy := RetryPolicy{Base: time.Second, HintBuffer: time.Second}
	got := policy.Wait(3, &ErrRateLimit{RetryAfter: 2 * time.Second, Err: errors.New("slow down")})
	if got != 3*time.Second {
		t.Fatalf("expected 3s, got %s", got)
	}
}

func TestServerRetryHint(t *testing.T) {
	tests := []struct {
		msg  string
		want time.Duration
		ok   bool
	}{
		{"please retry in 3.5s", 3500 * time.Millisecond, true},
		{"Please Retry In 12s.", 12 * time.Second, true},
		{"retry later", 0, false},
		{"retry in soon", 0, false},
	}
	for _, tt := range tests {
		got, ok := ServerRetryHint(errors.New(tt.msg))
		if ok != tt.ok || got != tt.want {
			t.Errorf("ServerRetryHint(%q) = %s, %v; want %s, %v", tt.msg, got, ok, tt.want, tt.ok)
		}
	}
}

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"nil", nil, KindUnclassified},
		{"missing credential", fmt.Errorf("generate: %w", ErrMissingCredential), KindMissingCredential},
		{"typed rate limit", &ErrRateLimit{Err: errors.New("x")}, KindRateLimited},
		{"quota text", errors.New("quota exceeded for metric"), KindRateLimited},
		{"typed overloaded", &ErrOverloaded{Err: errors.New("x")}, KindOverloaded},
		{"overloaded text", errors.New("The model is overloaded. Please try again later."), KindOverloaded},
		{"503 text", errors.New("Error 503"), KindOverloaded},
		{"invalid", &ErrInvalidResponse{Err: errors.New("x")}, KindInvalidResponseFormat},
		{"empty", ErrEmptyResponse, KindEmptyResponse},
		{"other", errors.New("connection reset by peer"), KindUnclassified},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf(%v) = %s, want %s", tt.err, got, tt.want)
			}
		})
	}
}

func TestRetry_StopSignalEndsWait(t *testing.T) {
	mock := NewMockProvider()
	mock.Fallback = func(Request) MockResponse {
		return MockResponse{Err: &ErrRateLimit{Err: errors.New("429 please retry in 0.3s")}}
	}
	p := WithRetry(mock, RetryConfig{MaxRetries: 5}, zerolog.Nop())

	stop := make(chan struct{})
	time.AfterFunc(100*time.Millisecond, func() { close(stop) })

	start := time.Now()
	_, err := p.Generate(WithStop(context.Background(), stop), Request{})
	if !errors.Is(err, ErrStopped) {
		t.Fatalf("expected ErrStopped, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > 250*time.Millisecond {
		t.Errorf("wait was not cut short: %s", elapsed)
	}

	calls := mock.CallCount()
	time.Sleep(500 * time.Millisecond)
	if calls != 1 || mock.CallCount() != calls {
		t.Fatalf("calls = %d then %d, want 1 and no more after stop", calls, mock.CallCount())
	}
}

func TestRetry_StopBeforeFirstAttempt(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`[]`)})
	p := WithRetry(mock, retryConfig(), zerolog.Nop())

	stop := make(chan struct{})
	close(stop)
	if _, err := p.Generate(WithStop(context.Background(), stop), Request{}); !errors.Is(err, ErrStopped) {
		t.Fatalf("expected ErrStopped, got %v", err)
	}
	if mock.CallCount() != 0 {
		t.Fatalf("expected no calls, got %d", mock.CallCount())
	}
}

func TestStopped(t *testing.T) {
	if Stopped(context.Background()) {
		t.Error("context without a stop signal reports stopped")
	}
	stop := make(chan struct{})
	ctx := WithStop(context.Background(), stop)
	if Stopped(ctx) {
		t.Error("open stop signal reports stopped")
	}
	close(stop)
	if !Stopped(ctx) {
		t.Error("closed stop signal not reported")
	}
}
