package trivia

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizbank/internal/autofill"
	"github.com/abhisek/quizbank/internal/config"
	"github.com/abhisek/quizbank/internal/generator"
	"github.com/abhisek/quizbank/internal/llm"
	"github.com/abhisek/quizbank/internal/quiz"
	"github.com/abhisek/quizbank/internal/session"
	"github.com/abhisek/quizbank/internal/store"
)

func testConfig(provider string) *config.Config {
	llmCfg := llm.DefaultConfig()
	llmCfg.Provider = provider
	llmCfg.Retry.MaxRetries = 0
	return &config.Config{
		Store: "memory",
		LLM:   llmCfg,
		Bank:  config.Bank{Cap: 100, ReviewSize: 4},
		AutoFill: config.AutoFill{
			BatchSize:      10,
			Pause:          time.Second,
			RateLimitPause: time.Second,
			OverloadPause:  time.Second,
			ErrorPause:     time.Second,
		},
	}
}

type noSleep struct{}

func (noSleep) Sleep(ctx context.Context, _ time.Duration) error { return ctx.Err() }

func newService(t *testing.T, cfg *config.Config, deps Deps) *Service {
	t.Helper()
	if deps.KV == nil {
		deps.KV = store.NewMemoryKV()
	}
	if deps.Sleeper == nil {
		deps.Sleeper = noSleep{}
	}
	deps.Logger = zerolog.Nop()
	return New(context.Background(), cfg, deps)
}

func TestGenerateOffline(t *testing.T) {
	s := newService(t, testConfig("mock"), Deps{})

	b, err := s.Generate(context.Background(), generator.Config{Level: quiz.LevelBeginner, Count: 5})
	require.NoError(t, err)
	assert.Len(t, b.Items, 5)
	assert.Equal(t, 5, b.Merge.Added)
	assert.NoError(t, b.SaveErr)
	assert.Equal(t, 5, s.Bank().Count(quiz.LevelBeginner))

	sess, err := s.Challenge(b)
	require.NoError(t, err)
	assert.Equal(t, 5, sess.Len())
	assert.Equal(t, session.ProvenanceNew, sess.Provenance)
}

func TestGenerateMissingCredential(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	s := newService(t, testConfig("gemini"), Deps{})

	_, err := s.Generate(context.Background(), generator.Config{Level: quiz.LevelBeginner})
	require.Error(t, err)
	assert.Equal(t, llm.KindMissingCredential, llm.KindOf(err))
	assert.Contains(t, UserMessage(err), "API key")
}

func TestGenerateStorageFailureKeepsBatch(t *testing.T) {
	kv := store.NewMemoryKV()
	kv.FailWrites = true
	s := newService(t, testConfig("mock"), Deps{KV: kv})

	b, err := s.Generate(context.Background(), generator.Config{Level: quiz.LevelExpert, Count: 3})
	require.NoError(t, err)
	assert.ErrorIs(t, b.SaveErr, store.ErrWriteFailed)
	assert.Equal(t, 3, s.Bank().Count(quiz.LevelExpert))
}

func TestCredentialPrecedence(t *testing.T) {
	ctx := context.Background()

	t.Run("stored wins", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "from-env")
		s := newService(t, testConfig("gemini"), Deps{})
		require.NoError(t, s.Bank().SetCredential(ctx, "stored"))

		got, err := s.Credential(ctx)
		require.NoError(t, err)
		assert.Equal(t, "stored", got)
	})
	t.Run("env fallback", func(t *testing.T) {
		t.Setenv("GEMINI_API_KEY", "from-env")
		s := newService(t, testConfig("gemini"), Deps{})

		got, err := s.Credential(ctx)
		require.NoError(t, err)
		assert.Equal(t, "from-env", got)
	})
	t.Run("mock needs none", func(t *testing.T) {
		s := newService(t, testConfig("mock"), Deps{})

		got, err := s.Credential(ctx)
		require.NoError(t, err)
		assert.Equal(t, offlineCredential, got)
	})
	t.Run("nothing", func(t *testing.T) {
		t.Setenv("OPENAI_API_KEY", "")
		s := newService(t, testConfig("openai"), Deps{})

		got, err := s.Credential(ctx)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

// blockingProvider holds every call until release is closed.
type blockingProvider struct {
	started chan struct{}
	release chan struct{}
	once    sync.Once
}

func (p *blockingProvider) Generate(ctx context.Context, req llm.Request) (*llm.Response, error) {
	p.once.Do(func() { close(p.started) })
	<-p.release
	resp := generator.Synthetic()(req)
	return &llm.Response{Content: resp.Content}, nil
}

func (p *blockingProvider) ModelID() string { return "blocking" }

func TestSingleGenerationInFlight(t *testing.T) {
	p := &blockingProvider{started: make(chan struct{}), release: make(chan struct{})}
	s := newService(t, testConfig("mock"), Deps{
		Factory: func(context.Context, string) (llm.Provider, error) { return p, nil },
	})
	ctx := context.Background()

	done := make(chan error, 1)
	go func() {
		_, err := s.Generate(ctx, generator.Config{Level: quiz.LevelAdvanced, Count: 2})
		done <- err
	}()
	<-p.started

	_, err := s.Generate(ctx, generator.Config{Level: quiz.LevelAdvanced})
	assert.ErrorIs(t, err, ErrBusy)
	_, err = s.StartAutoFill(ctx, quiz.LevelAdvanced, 10, nil)
	assert.ErrorIs(t, err, ErrBusy)
	assert.ErrorIs(t, s.Reset(ctx), ErrBusy)
	_, err = s.Import(ctx, nil, 0)
	assert.ErrorIs(t, err, ErrBusy)

	close(p.release)
	require.NoError(t, <-done)

	_, err = s.Generate(ctx, generator.Config{Level: quiz.LevelAdvanced, Count: 2})
	assert.NoError(t, err, "semaphore must be released after the first call")
}

func TestStartAutoFill(t *testing.T) {
	s := newService(t, testConfig("mock"), Deps{})

	var last autofill.Progress
	res, err := s.StartAutoFill(context.Background(), quiz.LevelIntermediate, 15, func(p autofill.Progress) { last = p })
	require.NoError(t, err)
	assert.Equal(t, autofill.ReasonTargetReached, res.Reason)
	assert.Equal(t, 15, res.Count)
	assert.Equal(t, 2, res.Batches)
	assert.Equal(t, autofill.StatusTargetReached, last.Status)
	assert.Equal(t, autofill.StateIdle, s.AutoFillState())
}

func TestReview(t *testing.T) {
	s := newService(t, testConfig("mock"), Deps{})
	ctx := context.Background()

	_, err := s.Review(quiz.LevelBeginner, 0)
	assert.ErrorIs(t, err, session.ErrNothingToReview)
	assert.Contains(t, UserMessage(err), "no saved questions")

	_, err = s.Generate(ctx, generator.Config{Level: quiz.LevelBeginner, Count: 6})
	require.NoError(t, err)

	sess, err := s.Review(quiz.LevelBeginner, 0)
	require.NoError(t, err)
	assert.Equal(t, 4, sess.Len(), "configured review size")
	assert.Equal(t, session.ProvenanceReview, sess.Provenance)

	sess, err = s.Review(quiz.LevelBeginner, 20)
	require.NoError(t, err)
	assert.Equal(t, 6, sess.Len())
}

type recordingMetrics struct {
	mu       sync.Mutex
	requests []string
	batches  []string
	counts   []map[quiz.Level]int
}

func (m *recordingMetrics) ObserveLLMRequest(provider, outcome string, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = append(m.requests, provider+":"+outcome)
}

func (m *recordingMetrics) AutoFillBatch(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.batches = append(m.batches, outcome)
}

func (m *recordingMetrics) BankChanged(counts map[quiz.Level]int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counts = append(m.counts, counts)
}

func TestMetricsWiring(t *testing.T) {
	m := &recordingMetrics{}
	s := newService(t, testConfig("mock"), Deps{Metrics: m})

	_, err := s.StartAutoFill(context.Background(), quiz.LevelBeginner, 3, nil)
	require.NoError(t, err)

	m.mu.Lock()
	defer m.mu.Unlock()
	assert.Equal(t, []string{"mock:ok"}, m.requests)
	assert.Equal(t, []string{"merged"}, m.batches)
	require.NotEmpty(t, m.counts)
	assert.Equal(t, 3, m.counts[len(m.counts)-1][quiz.LevelBeginner])
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"busy", ErrBusy, "already running"},
		{"missing key", llm.ErrMissingCredential, "No API key"},
		{"quota", errors.New("Error 429, Message: quota exceeded"), "quota"},
		{"overloaded", &llm.ErrOverloaded{}, "overloaded"},
		{"bad format", &llm.ErrInvalidResponse{Err: errors.New("not an array")}, "unexpected format"},
		{"empty", llm.ErrEmptyResponse, "empty answer"},
		{"storage", store.ErrWriteFailed, "could not be saved"},
		{"other", errors.New("boom"), "Generation failed: boom"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := UserMessage(tt.err)
			if tt.want == "" {
				assert.Empty(t, got)
				return
			}
			assert.True(t, strings.Contains(got, tt.want), "UserMessage(%v) = %q", tt.err, got)
		})
	}
}

func TestMaskKey(t *testing.T) {
	assert.Equal(t, "", MaskKey(""))
	assert.Equal(t, "******", MaskKey("abcdef"))
	assert.Equal(t, "AIza****wxyz", MaskKey("AIza1234wxyz"))
}
